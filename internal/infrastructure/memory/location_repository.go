package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// LocationRepository implementa repository.LocationRepository en memoria.
type LocationRepository struct {
	store *Store
}

// NewLocationRepository crea el repo sobre el store.
func NewLocationRepository(store *Store) *LocationRepository {
	return &LocationRepository{store: store}
}

// Create inserta la ubicación; código duplicado retorna domain.ErrDuplicate.
func (r *LocationRepository) Create(ctx context.Context, l *entity.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.locations {
		if existing.Code == l.Code {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
		}
	}
	c := *l
	r.store.locations[l.ID] = &c
	return nil
}

// GetByID devuelve la ubicación o nil si no existe.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if l, ok := r.store.locations[id]; ok {
		c := *l
		return &c, nil
	}
	return nil, nil
}

// List devuelve ubicaciones paginadas por código.
func (r *LocationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	locations := make([]*entity.Location, 0, len(r.store.locations))
	for _, l := range r.store.locations {
		c := *l
		locations = append(locations, &c)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Code < locations[j].Code })
	return paginate(locations, limit, offset), nil
}

// Exists verifica existencia por ID.
func (r *LocationRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.locations[id]
	return ok, nil
}
