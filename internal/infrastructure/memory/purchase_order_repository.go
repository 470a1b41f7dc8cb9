package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// PurchaseOrderRepository implementa repository.PurchaseOrderRepository en
// memoria. Las cabeceras y las líneas se guardan por separado y GetByID
// las rearma, igual que el adaptador PostgreSQL.
type PurchaseOrderRepository struct {
	store *Store
}

// NewPurchaseOrderRepository crea el repo sobre el store.
func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{store: store}
}

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	header := *po
	header.Items = nil
	r.store.purchaseOrders[po.ID] = &header
	for _, it := range po.Items {
		c := it
		r.store.poItems[it.ID] = &c
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	header, ok := r.store.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	po := *header
	for _, it := range r.store.poItems {
		if it.POID == id {
			po.Items = append(po.Items, *it)
		}
	}
	sort.Slice(po.Items, func(i, j int) bool { return po.Items[i].ID < po.Items[j].ID })
	return &po, nil
}

// GetItemByID devuelve la línea o nil si no existe.
func (r *PurchaseOrderRepository) GetItemByID(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if it, ok := r.store.poItems[itemID]; ok {
		c := *it
		return &c, nil
	}
	return nil, nil
}

// GetItemForUpdate devuelve la línea. Las transacciones corren una a la
// vez, no hace falta lock de fila.
func (r *PurchaseOrderRepository) GetItemForUpdate(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	return r.GetItemByID(ctx, itemID)
}

// UpdateItemReceived persiste QtyReceived de la línea.
func (r *PurchaseOrderRepository) UpdateItemReceived(ctx context.Context, it *entity.PurchaseOrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.poItems[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.QtyReceived = it.QtyReceived
	return nil
}

// UpdateStatus persiste el estado de la orden.
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	header, ok := r.store.purchaseOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	header.Status = status
	return nil
}

// List devuelve cabeceras paginadas, opcionalmente por estado.
func (r *PurchaseOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []*entity.PurchaseOrder
	for _, po := range r.store.purchaseOrders {
		if status != "" && po.Status != status {
			continue
		}
		c := *po
		orders = append(orders, &c)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return paginate(orders, limit, offset), nil
}
