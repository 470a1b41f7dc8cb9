package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// LedgerRepository implementa repository.LedgerRepository sobre PostgreSQL.
// La tabla stock_ledgers es append-only: este adaptador no expone UPDATE ni
// DELETE, y la tabla tampoco debería concederlos al rol de la app.
type LedgerRepository struct {
	db Querier
}

// NewLedgerRepository acepta un pool o una transacción.
func NewLedgerRepository(db Querier) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Insert agrega una entrada confirmada al ledger.
func (r *LedgerRepository) Insert(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_ledgers (id, product_id, location_id, type, qty, ref_type, ref_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))`

	_, err := r.db.Exec(ctx, query,
		e.ID, e.ProductID, e.LocationID, e.Type, e.Qty, e.RefType, e.RefID, e.CreatedAt, e.CreatedBy)
	if err != nil {
		return fmt.Errorf("insertar entrada de ledger: %w", err)
	}
	return nil
}

// List devuelve entradas según filtros, más reciente primero.
func (r *LedgerRepository) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, product_id, location_id, type, qty, ref_type, ref_id, created_at, COALESCE(created_by, '')
		FROM stock_ledgers
		WHERE ($1 = '' OR product_id = $1::uuid)
		  AND ($2 = '' OR location_id = $2::uuid)
		  AND ($3 = '' OR type = $3)
		  AND ($4 = '' OR ref_type = $4)
		  AND ($5 = '' OR ref_id = $5)
		ORDER BY created_at DESC, id DESC
		LIMIT $6 OFFSET $7`

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query,
		f.ProductID, f.LocationID, f.Type, f.RefType, f.RefID, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar ledger: %w", err)
	}
	defer rows.Close()

	var entries []*entity.LedgerEntry
	for rows.Next() {
		e := &entity.LedgerEntry{}
		if err := rows.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.Type, &e.Qty,
			&e.RefType, &e.RefID, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan entrada de ledger: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SumByPair suma los deltas confirmados del par (producto, ubicación).
func (r *LedgerRepository) SumByPair(ctx context.Context, productID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(qty), 0)
		FROM stock_ledgers
		WHERE product_id = $1 AND location_id = $2`

	var sum int64
	if err := r.db.QueryRow(ctx, query, productID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sumar ledger del par: %w", err)
	}
	return sum, nil
}
