package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU       string          `json:"sku" validate:"required,min=1,max=50"`
	Name      string          `json:"name" validate:"required,min=1,max=255"`
	Category  string          `json:"category" validate:"required"`
	UOM       string          `json:"uom" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Category  *string          `json:"category"`
	UOM       *string          `json:"uom"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	IsActive  *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UOM       string          `json:"uom"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Code     string `json:"code" validate:"required,min=1,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Type     string `json:"type" validate:"required"`
	ParentID string `json:"parent_id,omitempty"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
	IsActive bool   `json:"is_active"`
}
