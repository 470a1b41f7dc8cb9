package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// LedgerRepository implementa repository.LedgerRepository en memoria.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository crea el repo sobre el store.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Insert agrega una entrada al ledger.
func (r *LedgerRepository) Insert(ctx context.Context, e *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := *e
	r.store.ledger = append(r.store.ledger, &c)
	return nil
}

// List devuelve entradas filtradas, más reciente primero.
func (r *LedgerRepository) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.LedgerEntry
	for _, e := range r.store.ledger {
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if f.LocationID != "" && e.LocationID != f.LocationID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.RefType != "" && e.RefType != f.RefType {
			continue
		}
		if f.RefID != "" && e.RefID != f.RefID {
			continue
		}
		c := *e
		matched = append(matched, &c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return paginate(matched, f.Limit, f.Offset), nil
}

// SumByPair suma los deltas del par (producto, ubicación).
func (r *LedgerRepository) SumByPair(ctx context.Context, productID, locationID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	for _, e := range r.store.ledger {
		if e.ProductID == productID && e.LocationID == locationID {
			sum += e.Qty
		}
	}
	return sum, nil
}
