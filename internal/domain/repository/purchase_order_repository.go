package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus items.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetItemByID(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error)
	// GetItemForUpdate bloquea la línea (SELECT FOR UPDATE) para que el
	// chequeo de cantidad pendiente y su decremento sean atómicos frente a
	// recepciones concurrentes de la misma línea.
	GetItemForUpdate(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error)
	// UpdateItemReceived persiste QtyReceived de la línea.
	UpdateItemReceived(ctx context.Context, item *entity.PurchaseOrderItem) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
