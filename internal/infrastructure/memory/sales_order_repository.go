package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// SalesOrderRepository implementa repository.SalesOrderRepository en
// memoria.
type SalesOrderRepository struct {
	store *Store
}

// NewSalesOrderRepository crea el repo sobre el store.
func NewSalesOrderRepository(store *Store) *SalesOrderRepository {
	return &SalesOrderRepository{store: store}
}

// Create persiste la orden con sus líneas.
func (r *SalesOrderRepository) Create(ctx context.Context, so *entity.SalesOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	header := *so
	header.Items = nil
	r.store.salesOrders[so.ID] = &header
	for _, it := range so.Items {
		c := it
		r.store.soItems[it.ID] = &c
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *SalesOrderRepository) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	header, ok := r.store.salesOrders[id]
	if !ok {
		return nil, nil
	}
	so := *header
	for _, it := range r.store.soItems {
		if it.SOID == id {
			so.Items = append(so.Items, *it)
		}
	}
	sort.Slice(so.Items, func(i, j int) bool { return so.Items[i].ID < so.Items[j].ID })
	return &so, nil
}

// GetItemByID devuelve la línea o nil si no existe.
func (r *SalesOrderRepository) GetItemByID(ctx context.Context, itemID string) (*entity.SalesOrderItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if it, ok := r.store.soItems[itemID]; ok {
		c := *it
		return &c, nil
	}
	return nil, nil
}

// GetItemForUpdate devuelve la línea. Las transacciones corren una a la
// vez, no hace falta lock de fila.
func (r *SalesOrderRepository) GetItemForUpdate(ctx context.Context, itemID string) (*entity.SalesOrderItem, error) {
	return r.GetItemByID(ctx, itemID)
}

// UpdateItemShipped persiste QtyShipped de la línea.
func (r *SalesOrderRepository) UpdateItemShipped(ctx context.Context, it *entity.SalesOrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.soItems[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.QtyShipped = it.QtyShipped
	return nil
}

// UpdateStatus persiste el estado de la orden.
func (r *SalesOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	header, ok := r.store.salesOrders[id]
	if !ok {
		return domain.ErrNotFound
	}
	header.Status = status
	return nil
}

// List devuelve cabeceras paginadas, opcionalmente por estado.
func (r *SalesOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []*entity.SalesOrder
	for _, so := range r.store.salesOrders {
		if status != "" && so.Status != status {
			continue
		}
		c := *so
		orders = append(orders, &c)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return paginate(orders, limit, offset), nil
}
