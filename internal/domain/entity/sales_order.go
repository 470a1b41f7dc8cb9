package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	SOStatusDraft     = "draft"
	SOStatusConfirmed = "confirmed"
	SOStatusPartial   = "partial"
	SOStatusShipped   = "shipped"
	SOStatusCancelled = "cancelled"
)

// SalesOrder es el documento de venta; cada despacho de línea dispara
// exactamente una emisión de salida (sale) al ledger.
type SalesOrder struct {
	ID         string
	SONumber   string // único
	CustomerID string
	Status     string
	Notes      string
	Items      []SalesOrderItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SalesOrderItem lleva lo pedido y lo despachado por producto.
// Invariante: 0 <= QtyShipped <= QtyOrdered.
type SalesOrderItem struct {
	ID         string
	SOID       string
	ProductID  string
	QtyOrdered int64 // > 0
	QtyShipped int64
	UnitPrice  decimal.Decimal
}

// Remaining devuelve la cantidad pendiente por despachar.
func (i *SalesOrderItem) Remaining() int64 {
	return i.QtyOrdered - i.QtyShipped
}
