package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// PurchaseOrderRepository implementa repository.PurchaseOrderRepository
// sobre PostgreSQL.
type PurchaseOrderRepository struct {
	db Querier
}

// NewPurchaseOrderRepository acepta un pool o una transacción.
func NewPurchaseOrderRepository(db Querier) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, po_number, supplier_id, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		po.ID, po.PONumber, po.SupplierID, po.Status, po.Notes, po.CreatedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, po.PONumber)
		}
		return fmt.Errorf("crear orden de compra: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (id, po_id, product_id, qty_ordered, qty_received, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, it := range po.Items {
		if _, err := r.db.Exec(ctx, itemQuery,
			it.ID, it.POID, it.ProductID, it.QtyOrdered, it.QtyReceived, it.UnitPrice); err != nil {
			return fmt.Errorf("crear línea de compra: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, supplier_id, status, COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at, updated_at
		FROM purchase_orders
		WHERE id = $1`

	po := &entity.PurchaseOrder{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.PONumber, &po.SupplierID, &po.Status, &po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar orden de compra: %w", err)
	}

	items, err := r.loadItems(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return po, nil
}

// GetItemByID devuelve la línea o nil si no existe.
func (r *PurchaseOrderRepository) GetItemByID(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	return r.getItem(ctx, itemID, false)
}

// GetItemForUpdate bloquea la línea para recibir sin carreras.
func (r *PurchaseOrderRepository) GetItemForUpdate(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	return r.getItem(ctx, itemID, true)
}

func (r *PurchaseOrderRepository) getItem(ctx context.Context, itemID string, forUpdate bool) (*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_id, product_id, qty_ordered, qty_received, unit_price
		FROM purchase_order_items
		WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	it := &entity.PurchaseOrderItem{}
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&it.ID, &it.POID, &it.ProductID, &it.QtyOrdered, &it.QtyReceived, &it.UnitPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar línea de compra: %w", err)
	}
	return it, nil
}

// UpdateItemReceived persiste QtyReceived de la línea.
func (r *PurchaseOrderRepository) UpdateItemReceived(ctx context.Context, it *entity.PurchaseOrderItem) error {
	query := `UPDATE purchase_order_items SET qty_received = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, it.ID, it.QtyReceived)
	if err != nil {
		return fmt.Errorf("actualizar línea de compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste el estado derivado de la orden.
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("actualizar orden de compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve órdenes paginadas (sin líneas), opcionalmente por estado.
func (r *PurchaseOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, supplier_id, status, COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at, updated_at
		FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes de compra: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		po := &entity.PurchaseOrder{}
		if err := rows.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.Status,
			&po.Notes, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden de compra: %w", err)
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (r *PurchaseOrderRepository) loadItems(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_id, product_id, qty_ordered, qty_received, unit_price
		FROM purchase_order_items
		WHERE po_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de compra: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.POID, &it.ProductID, &it.QtyOrdered, &it.QtyReceived, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan línea de compra: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
