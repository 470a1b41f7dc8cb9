package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductionOrderRepository implementa
// repository.ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepository struct {
	db Querier
}

// NewProductionOrderRepository acepta un pool o una transacción.
func NewProductionOrderRepository(db Querier) *ProductionOrderRepository {
	return &ProductionOrderRepository{db: db}
}

const productionOrderColumns = `id, order_number, bom_id, location_id, qty_planned, qty_produced, status, COALESCE(created_by::text, ''), created_at, updated_at`

// Create inserta la orden en estado draft.
func (r *ProductionOrderRepository) Create(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, order_number, bom_id, location_id, qty_planned, qty_produced, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		o.ID, o.OrderNumber, o.BOMID, o.LocationID, o.QtyPlanned, o.QtyProduced,
		o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("crear orden de producción: %w", err)
	}
	return nil
}

// GetByID devuelve la orden o nil si no existe.
func (r *ProductionOrderRepository) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la fila de la orden para transicionar sin carreras.
func (r *ProductionOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, id, true)
}

func (r *ProductionOrderRepository) get(ctx context.Context, id string, forUpdate bool) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	o := &entity.ProductionOrder{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.BOMID, &o.LocationID, &o.QtyPlanned, &o.QtyProduced,
		&o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar orden de producción: %w", err)
	}
	return o, nil
}

// UpdateStatus persiste la transición de estado y QtyProduced.
func (r *ProductionOrderRepository) UpdateStatus(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET status = $2, qty_produced = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, o.ID, o.Status, o.QtyProduced)
	if err != nil {
		return fmt.Errorf("actualizar orden de producción: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve órdenes paginadas, opcionalmente filtradas por estado.
func (r *ProductionOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + `
		FROM production_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes de producción: %w", err)
	}
	defer rows.Close()

	var orders []*entity.ProductionOrder
	for rows.Next() {
		o := &entity.ProductionOrder{}
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.BOMID, &o.LocationID, &o.QtyPlanned,
			&o.QtyProduced, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden de producción: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
