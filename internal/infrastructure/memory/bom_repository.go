package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// BOMRepository implementa repository.BOMRepository en memoria.
type BOMRepository struct {
	store *Store
}

// NewBOMRepository crea el repo sobre el store.
func NewBOMRepository(store *Store) *BOMRepository {
	return &BOMRepository{store: store}
}

func copyBOM(b *entity.BOM) *entity.BOM {
	c := *b
	c.Items = append([]entity.BOMItem(nil), b.Items...)
	return &c
}

// Create persiste el BOM con sus items.
func (r *BOMRepository) Create(ctx context.Context, b *entity.BOM) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.boms[b.ID] = copyBOM(b)
	return nil
}

// GetByID devuelve el BOM con sus items, o nil si no existe.
func (r *BOMRepository) GetByID(ctx context.Context, id string) (*entity.BOM, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if b, ok := r.store.boms[id]; ok {
		return copyBOM(b), nil
	}
	return nil, nil
}

// List devuelve BOMs paginados por nombre.
func (r *BOMRepository) List(ctx context.Context, limit, offset int) ([]*entity.BOM, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	boms := make([]*entity.BOM, 0, len(r.store.boms))
	for _, b := range r.store.boms {
		boms = append(boms, copyBOM(b))
	}
	sort.Slice(boms, func(i, j int) bool { return boms[i].Name < boms[j].Name })
	return paginate(boms, limit, offset), nil
}
