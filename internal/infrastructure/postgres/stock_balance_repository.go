package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// StockBalanceRepository implementa repository.StockBalanceRepository sobre
// PostgreSQL. Solo el proyector de balances escribe aquí, siempre dentro de
// la misma transacción que el append del ledger.
type StockBalanceRepository struct {
	db Querier
}

// NewStockBalanceRepository acepta un pool o una transacción.
func NewStockBalanceRepository(db Querier) *StockBalanceRepository {
	return &StockBalanceRepository{db: db}
}

// Get devuelve el balance del par; si la fila no existe devuelve un balance
// en cero (la fila se crea perezosamente con el primer delta).
func (r *StockBalanceRepository) Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, location_id, current_qty, last_updated
		FROM stock_balances
		WHERE product_id = $1 AND location_id = $2`

	b := &entity.StockBalance{}
	err := r.db.QueryRow(ctx, query, productID, locationID).
		Scan(&b.ProductID, &b.LocationID, &b.CurrentQty, &b.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar balance: %w", err)
	}
	return b, nil
}

// ApplyDelta aplica el incremento atómico al par. El upsert toma el lock de
// fila y lo retiene hasta el fin de la transacción, así el caller verifica
// no-negatividad sobre el valor retornado y puede abortar sin ventana de
// carrera.
func (r *StockBalanceRepository) ApplyDelta(ctx context.Context, productID, locationID string, delta int64) (*entity.StockBalance, error) {
	query := `
		INSERT INTO stock_balances (product_id, location_id, current_qty, last_updated)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET current_qty = stock_balances.current_qty + EXCLUDED.current_qty,
		              last_updated = now()
		RETURNING product_id, location_id, current_qty, last_updated`

	b := &entity.StockBalance{}
	err := r.db.QueryRow(ctx, query, productID, locationID, delta).
		Scan(&b.ProductID, &b.LocationID, &b.CurrentQty, &b.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("aplicar delta al balance: %w", err)
	}
	return b, nil
}

// List devuelve balances según filtros, ordenados por par.
func (r *StockBalanceRepository) List(ctx context.Context, f repository.BalanceFilter) ([]*entity.StockBalance, error) {
	query := `
		SELECT product_id, location_id, current_qty, last_updated
		FROM stock_balances
		WHERE ($1 = '' OR product_id = $1::uuid)
		  AND ($2 = '' OR location_id = $2::uuid)
		  AND ($3::bigint IS NULL OR current_qty <= $3)
		ORDER BY product_id, location_id
		LIMIT $4 OFFSET $5`

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, f.ProductID, f.LocationID, f.MaxQty, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar balances: %w", err)
	}
	defer rows.Close()

	var balances []*entity.StockBalance
	for rows.Next() {
		b := &entity.StockBalance{}
		if err := rows.Scan(&b.ProductID, &b.LocationID, &b.CurrentQty, &b.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
