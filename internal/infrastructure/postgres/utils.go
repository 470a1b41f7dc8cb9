package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta violación de restricción UNIQUE (SQLSTATE 23505),
// usada para mapear SKU/códigos/emails duplicados a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isSerializationFailure detecta fallas de aislamiento serializable
// (SQLSTATE 40001) y deadlocks (40P01). Ambos casos son reintentables por el
// caller y se mapean a domain.ErrConcurrencyConflict.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
