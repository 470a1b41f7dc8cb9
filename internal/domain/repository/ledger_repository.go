package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// LedgerFilter filtros para listar entradas del ledger.
type LedgerFilter struct {
	ProductID  string
	LocationID string
	Type       string
	RefType    string
	RefID      string
	Limit      int
	Offset     int
}

// LedgerRepository define el puerto del stock ledger (append-only).
// No existe Update ni Delete: las entradas son inmutables una vez
// confirmadas y las correcciones son nuevas entradas compensatorias.
type LedgerRepository interface {
	Insert(ctx context.Context, entry *entity.LedgerEntry) error
	List(ctx context.Context, f LedgerFilter) ([]*entity.LedgerEntry, error)
	// SumByPair suma los deltas confirmados del par; usado por reportes y
	// por los tests del invariante ledger == balance.
	SumByPair(ctx context.Context, productID, locationID string) (int64, error)
}
