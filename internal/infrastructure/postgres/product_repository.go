package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository sobre PostgreSQL.
type ProductRepository struct {
	db Querier
}

// NewProductRepository acepta un pool o una transacción.
func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserta el producto. SKU duplicado retorna domain.ErrDuplicate.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, category, uom, unit_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Category, p.UOM, p.UnitPrice, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySKU devuelve el producto o nil si no existe.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getBy(ctx, "sku", sku)
}

func (r *ProductRepository) getBy(ctx context.Context, column, value string) (*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, sku, name, category, uom, unit_price, is_active, created_at, updated_at
		FROM products
		WHERE %s = $1`, column)

	p := &entity.Product{}
	err := r.db.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.UOM, &p.UnitPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, uom = $4, unit_price = $5, is_active = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.UOM, p.UnitPrice, p.IsActive, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos paginados por nombre.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, sku, name, category, uom, unit_price, is_active, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p := &entity.Product{}
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.UOM,
			&p.UnitPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Exists verifica existencia sin cargar la fila completa.
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar producto: %w", err)
	}
	return exists, nil
}
