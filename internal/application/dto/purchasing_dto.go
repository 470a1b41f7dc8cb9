package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePOItemRequest línea de una orden de compra nueva.
type CreatePOItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	QtyOrdered int64           `json:"qty_ordered" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreatePORequest body para POST /api/purchase-orders.
type CreatePORequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Notes      string                `json:"notes"`
	Items      []CreatePOItemRequest `json:"items" validate:"required,min=1"`
}

// ReceiveRequest body para recibir una línea de compra.
type ReceiveRequest struct {
	LocationID string `json:"location_id" validate:"required"`
	Qty        int64  `json:"qty" validate:"required,gt=0"`
}

// POItemResponse línea de orden de compra.
type POItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	QtyOrdered  int64           `json:"qty_ordered"`
	QtyReceived int64           `json:"qty_received"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// POResponse orden de compra con sus líneas.
type POResponse struct {
	ID         string           `json:"id"`
	PONumber   string           `json:"po_number"`
	SupplierID string           `json:"supplier_id"`
	Status     string           `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	Items      []POItemResponse `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}
