package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// BOMRepository implementa repository.BOMRepository sobre PostgreSQL.
// Cabecera e items se persisten juntos; el caller decide la transacción.
type BOMRepository struct {
	db Querier
}

// NewBOMRepository acepta un pool o una transacción.
func NewBOMRepository(db Querier) *BOMRepository {
	return &BOMRepository{db: db}
}

// Create persiste el BOM con sus items.
func (r *BOMRepository) Create(ctx context.Context, b *entity.BOM) error {
	query := `
		INSERT INTO boms (id, name, output_product_id, output_qty_per_batch, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.OutputProductID, b.OutputQtyPerBatch, b.IsActive, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("crear BOM: %w", err)
	}

	itemQuery := `
		INSERT INTO bom_items (id, bom_id, sequence, component_product_id, qty_per_batch)
		VALUES ($1, $2, $3, $4, $5)`

	for _, it := range b.Items {
		if _, err := r.db.Exec(ctx, itemQuery,
			it.ID, it.BOMID, it.Sequence, it.ComponentProductID, it.QtyPerBatch); err != nil {
			return fmt.Errorf("crear item de BOM: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el BOM con sus items ordenados por sequence, o nil si no
// existe.
func (r *BOMRepository) GetByID(ctx context.Context, id string) (*entity.BOM, error) {
	query := `
		SELECT id, name, output_product_id, output_qty_per_batch, is_active, created_at, updated_at
		FROM boms
		WHERE id = $1`

	b := &entity.BOM{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.OutputProductID, &b.OutputQtyPerBatch, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar BOM: %w", err)
	}

	items, err := r.loadItems(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return b, nil
}

// List devuelve BOMs paginados con sus items.
func (r *BOMRepository) List(ctx context.Context, limit, offset int) ([]*entity.BOM, error) {
	query := `
		SELECT id, name, output_product_id, output_qty_per_batch, is_active, created_at, updated_at
		FROM boms
		ORDER BY name
		LIMIT $1 OFFSET $2`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar BOMs: %w", err)
	}
	defer rows.Close()

	var boms []*entity.BOM
	for rows.Next() {
		b := &entity.BOM{}
		if err := rows.Scan(&b.ID, &b.Name, &b.OutputProductID, &b.OutputQtyPerBatch,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan BOM: %w", err)
		}
		boms = append(boms, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range boms {
		items, err := r.loadItems(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return boms, nil
}

func (r *BOMRepository) loadItems(ctx context.Context, bomID string) ([]entity.BOMItem, error) {
	query := `
		SELECT id, bom_id, sequence, component_product_id, qty_per_batch
		FROM bom_items
		WHERE bom_id = $1
		ORDER BY sequence`

	rows, err := r.db.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("listar items de BOM: %w", err)
	}
	defer rows.Close()

	var items []entity.BOMItem
	for rows.Next() {
		var it entity.BOMItem
		if err := rows.Scan(&it.ID, &it.BOMID, &it.Sequence, &it.ComponentProductID, &it.QtyPerBatch); err != nil {
			return nil, fmt.Errorf("scan item de BOM: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
