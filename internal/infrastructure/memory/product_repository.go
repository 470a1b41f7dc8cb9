package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	store *Store
}

// NewProductRepository crea el repo sobre el store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create inserta el producto; SKU duplicado retorna domain.ErrDuplicate.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.products {
		if existing.SKU == p.SKU {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, p.SKU)
		}
	}
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if p, ok := r.store.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

// GetBySKU devuelve el producto o nil si no existe.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

// List devuelve productos paginados por nombre.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		c := *p
		products = append(products, &c)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return paginate(products, limit, offset), nil
}

// Exists verifica existencia por ID.
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.products[id]
	return ok, nil
}
