package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSOItemRequest línea de una orden de venta nueva.
type CreateSOItemRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	QtyOrdered int64           `json:"qty_ordered" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateSORequest body para POST /api/sales-orders.
type CreateSORequest struct {
	CustomerID string                `json:"customer_id" validate:"required"`
	Notes      string                `json:"notes"`
	Items      []CreateSOItemRequest `json:"items" validate:"required,min=1"`
}

// ShipRequest body para despachar una línea de venta.
type ShipRequest struct {
	LocationID string `json:"location_id" validate:"required"`
	Qty        int64  `json:"qty" validate:"required,gt=0"`
}

// SOItemResponse línea de orden de venta.
type SOItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	QtyOrdered int64           `json:"qty_ordered"`
	QtyShipped int64           `json:"qty_shipped"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// SOResponse orden de venta con sus líneas.
type SOResponse struct {
	ID         string           `json:"id"`
	SONumber   string           `json:"so_number"`
	CustomerID string           `json:"customer_id"`
	Status     string           `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	Items      []SOItemResponse `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}
