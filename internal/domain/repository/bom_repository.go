package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// BOMRepository define el puerto de persistencia para BOM y sus items.
type BOMRepository interface {
	// Create persiste el BOM con sus items en una sola operación.
	Create(ctx context.Context, bom *entity.BOM) error
	// GetByID devuelve el BOM con sus items ordenados por sequence.
	GetByID(ctx context.Context, id string) (*entity.BOM, error)
	List(ctx context.Context, limit, offset int) ([]*entity.BOM, error)
}
