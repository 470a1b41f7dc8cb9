package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para órdenes
// de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para que
	// la secuencia verificar-estado-luego-transicionar no se cruce con otra
	// transición concurrente de la misma orden.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// UpdateStatus persiste la transición de estado y QtyProduced.
	UpdateStatus(ctx context.Context, order *entity.ProductionOrder) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionOrder, error)
}
