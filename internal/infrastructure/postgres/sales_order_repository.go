package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// SalesOrderRepository implementa repository.SalesOrderRepository sobre
// PostgreSQL.
type SalesOrderRepository struct {
	db Querier
}

// NewSalesOrderRepository acepta un pool o una transacción.
func NewSalesOrderRepository(db Querier) *SalesOrderRepository {
	return &SalesOrderRepository{db: db}
}

// Create persiste la orden con sus líneas.
func (r *SalesOrderRepository) Create(ctx context.Context, so *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, so_number, customer_id, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		so.ID, so.SONumber, so.CustomerID, so.Status, so.Notes, so.CreatedBy, so.CreatedAt, so.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, so.SONumber)
		}
		return fmt.Errorf("crear orden de venta: %w", err)
	}

	itemQuery := `
		INSERT INTO sales_order_items (id, so_id, product_id, qty_ordered, qty_shipped, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, it := range so.Items {
		if _, err := r.db.Exec(ctx, itemQuery,
			it.ID, it.SOID, it.ProductID, it.QtyOrdered, it.QtyShipped, it.UnitPrice); err != nil {
			return fmt.Errorf("crear línea de venta: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *SalesOrderRepository) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	query := `
		SELECT id, so_number, customer_id, status, COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at, updated_at
		FROM sales_orders
		WHERE id = $1`

	so := &entity.SalesOrder{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&so.ID, &so.SONumber, &so.CustomerID, &so.Status, &so.Notes, &so.CreatedBy, &so.CreatedAt, &so.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar orden de venta: %w", err)
	}

	items, err := r.loadItems(ctx, so.ID)
	if err != nil {
		return nil, err
	}
	so.Items = items
	return so, nil
}

// GetItemByID devuelve la línea o nil si no existe.
func (r *SalesOrderRepository) GetItemByID(ctx context.Context, itemID string) (*entity.SalesOrderItem, error) {
	return r.getItem(ctx, itemID, false)
}

// GetItemForUpdate bloquea la línea para despachar sin carreras.
func (r *SalesOrderRepository) GetItemForUpdate(ctx context.Context, itemID string) (*entity.SalesOrderItem, error) {
	return r.getItem(ctx, itemID, true)
}

func (r *SalesOrderRepository) getItem(ctx context.Context, itemID string, forUpdate bool) (*entity.SalesOrderItem, error) {
	query := `
		SELECT id, so_id, product_id, qty_ordered, qty_shipped, unit_price
		FROM sales_order_items
		WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	it := &entity.SalesOrderItem{}
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&it.ID, &it.SOID, &it.ProductID, &it.QtyOrdered, &it.QtyShipped, &it.UnitPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar línea de venta: %w", err)
	}
	return it, nil
}

// UpdateItemShipped persiste QtyShipped de la línea.
func (r *SalesOrderRepository) UpdateItemShipped(ctx context.Context, it *entity.SalesOrderItem) error {
	query := `UPDATE sales_order_items SET qty_shipped = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, it.ID, it.QtyShipped)
	if err != nil {
		return fmt.Errorf("actualizar línea de venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste el estado derivado de la orden.
func (r *SalesOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE sales_orders SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("actualizar orden de venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve órdenes paginadas (sin líneas), opcionalmente por estado.
func (r *SalesOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, so_number, customer_id, status, COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at, updated_at
		FROM sales_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes de venta: %w", err)
	}
	defer rows.Close()

	var orders []*entity.SalesOrder
	for rows.Next() {
		so := &entity.SalesOrder{}
		if err := rows.Scan(&so.ID, &so.SONumber, &so.CustomerID, &so.Status,
			&so.Notes, &so.CreatedBy, &so.CreatedAt, &so.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden de venta: %w", err)
		}
		orders = append(orders, so)
	}
	return orders, rows.Err()
}

func (r *SalesOrderRepository) loadItems(ctx context.Context, soID string) ([]entity.SalesOrderItem, error) {
	query := `
		SELECT id, so_id, product_id, qty_ordered, qty_shipped, unit_price
		FROM sales_order_items
		WHERE so_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, soID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de venta: %w", err)
	}
	defer rows.Close()

	var items []entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.SOID, &it.ProductID, &it.QtyOrdered, &it.QtyShipped, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan línea de venta: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
