package repository

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// BalanceFilter filtros para listar balances.
type BalanceFilter struct {
	ProductID  string
	LocationID string
	// MaxQty filtra balances con CurrentQty <= MaxQty (reporte de stock bajo).
	MaxQty *int64
	Limit  int
	Offset int
}

// StockBalanceRepository define el puerto del agregado de balances.
// Solo el proyector de balances escribe aquí, y siempre dentro de la misma
// transacción que el append del ledger.
type StockBalanceRepository interface {
	// Get devuelve el balance del par; si no existe fila devuelve un balance
	// en cero (la fila se crea perezosamente con el primer delta).
	Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	// ApplyDelta aplica un incremento atómico al par (upsert con
	// current_qty = current_qty + delta) y devuelve el balance resultante.
	// La fila queda bloqueada hasta el fin de la transacción, así el caller
	// puede verificar no-negatividad y abortar sin ventana de carrera.
	ApplyDelta(ctx context.Context, productID, locationID string, delta int64) (*entity.StockBalance, error)
	List(ctx context.Context, f BalanceFilter) ([]*entity.StockBalance, error)
}
