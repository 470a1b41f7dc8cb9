package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// StockBalanceRepository implementa repository.StockBalanceRepository en
// memoria.
type StockBalanceRepository struct {
	store *Store
}

// NewStockBalanceRepository crea el repo sobre el store.
func NewStockBalanceRepository(store *Store) *StockBalanceRepository {
	return &StockBalanceRepository{store: store}
}

// Get devuelve el balance del par; balance en cero si no existe fila.
func (r *StockBalanceRepository) Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if b, ok := r.store.balances[pairKey{productID, locationID}]; ok {
		c := *b
		return &c, nil
	}
	return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
}

// ApplyDelta aplica el incremento al par, creando la fila si no existe.
func (r *StockBalanceRepository) ApplyDelta(ctx context.Context, productID, locationID string, delta int64) (*entity.StockBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := pairKey{productID, locationID}
	b, ok := r.store.balances[key]
	if !ok {
		b = &entity.StockBalance{ProductID: productID, LocationID: locationID}
		r.store.balances[key] = b
	}
	b.CurrentQty += delta
	b.LastUpdated = time.Now().UTC()

	c := *b
	return &c, nil
}

// List devuelve balances filtrados, ordenados por par.
func (r *StockBalanceRepository) List(ctx context.Context, f repository.BalanceFilter) ([]*entity.StockBalance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.StockBalance
	for _, b := range r.store.balances {
		if f.ProductID != "" && b.ProductID != f.ProductID {
			continue
		}
		if f.LocationID != "" && b.LocationID != f.LocationID {
			continue
		}
		if f.MaxQty != nil && b.CurrentQty > *f.MaxQty {
			continue
		}
		c := *b
		matched = append(matched, &c)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ProductID != matched[j].ProductID {
			return matched[i].ProductID < matched[j].ProductID
		}
		return matched[i].LocationID < matched[j].LocationID
	})
	return paginate(matched, f.Limit, f.Offset), nil
}
