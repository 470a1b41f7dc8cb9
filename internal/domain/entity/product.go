package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto según su rol en manufactura.
const (
	CategoryMaterial     = "material"
	CategoryParts        = "parts"
	CategoryWIP          = "wip"
	CategoryFinishedGood = "finished_good"
)

// Product representa un producto o SKU (dato maestro). El stock nunca vive
// aquí: se deriva del ledger por (producto, ubicación) en StockBalance.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Category  string // material, parts, wip, finished_good
	UOM       string // unidad de medida (pcs, kg, m)
	UnitPrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
