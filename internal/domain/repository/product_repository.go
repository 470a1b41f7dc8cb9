package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Exists valida existencia referencial sin cargar la fila completa;
	// el motor del ledger lo usa antes de cada append.
	Exists(ctx context.Context, id string) (bool, error)
}
