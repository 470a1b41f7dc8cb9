package entity

import "time"

// StockBalance es el agregado derivado del ledger: cantidad actual por
// (producto, ubicación). Invariante central del subsistema: CurrentQty ==
// suma de Qty de todas las LedgerEntry confirmadas para ese par. La fila se
// crea perezosamente con la primera entrada del par y solo la escribe el
// proyector de balances dentro de la misma transacción del append.
type StockBalance struct {
	ProductID   string
	LocationID  string
	CurrentQty  int64
	LastUpdated time.Time
}
