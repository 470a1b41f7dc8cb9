package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusConfirmed = "confirmed"
	POStatusPartial   = "partial"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder es el documento de compra; cada recepción de línea dispara
// exactamente una emisión de entrada (purchase) al ledger.
type PurchaseOrder struct {
	ID         string
	PONumber   string // único
	SupplierID string
	Status     string
	Notes      string
	Items      []PurchaseOrderItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderItem lleva lo pedido y lo recibido por producto.
// Invariante: 0 <= QtyReceived <= QtyOrdered.
type PurchaseOrderItem struct {
	ID          string
	POID        string
	ProductID   string
	QtyOrdered  int64 // > 0
	QtyReceived int64
	UnitPrice   decimal.Decimal
}

// Remaining devuelve la cantidad pendiente por recibir.
func (i *PurchaseOrderItem) Remaining() int64 {
	return i.QtyOrdered - i.QtyReceived
}
