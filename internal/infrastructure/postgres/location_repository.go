package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// LocationRepository implementa repository.LocationRepository sobre
// PostgreSQL.
type LocationRepository struct {
	db Querier
}

// NewLocationRepository acepta un pool o una transacción.
func NewLocationRepository(db Querier) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create inserta la ubicación. Código duplicado retorna domain.ErrDuplicate.
func (r *LocationRepository) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, code, name, type, parent_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		l.ID, l.Code, l.Name, l.Type, l.ParentID, l.IsActive, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, l.Code)
		}
		return fmt.Errorf("crear ubicación: %w", err)
	}
	return nil
}

// GetByID devuelve la ubicación o nil si no existe.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `
		SELECT id, code, name, type, COALESCE(parent_id::text, ''), is_active, created_at
		FROM locations
		WHERE id = $1`

	l := &entity.Location{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Code, &l.Name, &l.Type, &l.ParentID, &l.IsActive, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consultar ubicación: %w", err)
	}
	return l, nil
}

// List devuelve ubicaciones paginadas por código.
func (r *LocationRepository) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, code, name, type, COALESCE(parent_id::text, ''), is_active, created_at
		FROM locations
		ORDER BY code
		LIMIT $1 OFFSET $2`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		l := &entity.Location{}
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.ParentID, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ubicación: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Exists verifica existencia sin cargar la fila completa.
func (r *LocationRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM locations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar ubicación: %w", err)
	}
	return exists, nil
}
