package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de
// venta y sus líneas.
type SalesOrderRepository interface {
	Create(ctx context.Context, so *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	GetItemByID(ctx context.Context, itemID string) (*entity.SalesOrderItem, error)
	// GetItemForUpdate bloquea la línea para que pendiente-por-despachar se
	// verifique y decremente sin carreras entre despachos concurrentes.
	GetItemForUpdate(ctx context.Context, itemID string) (*entity.SalesOrderItem, error)
	UpdateItemShipped(ctx context.Context, item *entity.SalesOrderItem) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error)
}
