package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductionOrderRepository implementa
// repository.ProductionOrderRepository en memoria.
type ProductionOrderRepository struct {
	store *Store
}

// NewProductionOrderRepository crea el repo sobre el store.
func NewProductionOrderRepository(store *Store) *ProductionOrderRepository {
	return &ProductionOrderRepository{store: store}
}

// Create inserta la orden.
func (r *ProductionOrderRepository) Create(ctx context.Context, o *entity.ProductionOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := *o
	r.store.productionOrders[o.ID] = &c
	return nil
}

// GetByID devuelve la orden o nil si no existe.
func (r *ProductionOrderRepository) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if o, ok := r.store.productionOrders[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, nil
}

// GetForUpdate devuelve la orden. Las transacciones del store corren una a
// la vez, así que no hace falta lock de fila.
func (r *ProductionOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus persiste estado y QtyProduced.
func (r *ProductionOrderRepository) UpdateStatus(ctx context.Context, o *entity.ProductionOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.productionOrders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = o.Status
	existing.QtyProduced = o.QtyProduced
	return nil
}

// List devuelve órdenes paginadas, opcionalmente por estado.
func (r *ProductionOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var orders []*entity.ProductionOrder
	for _, o := range r.store.productionOrders {
		if status != "" && o.Status != status {
			continue
		}
		c := *o
		orders = append(orders, &c)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return paginate(orders, limit, offset), nil
}
