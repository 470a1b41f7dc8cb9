package dto

import "time"

// CreateBOMItemRequest línea de componente de un BOM nuevo.
type CreateBOMItemRequest struct {
	ComponentProductID string `json:"component_product_id" validate:"required"`
	QtyPerBatch        int64  `json:"qty_per_batch" validate:"required,gt=0"`
}

// CreateBOMRequest body para POST /api/production/boms.
type CreateBOMRequest struct {
	Name              string                 `json:"name"`
	OutputProductID   string                 `json:"output_product_id" validate:"required"`
	OutputQtyPerBatch int64                  `json:"output_qty_per_batch" validate:"required,gt=0"`
	Items             []CreateBOMItemRequest `json:"items" validate:"required,min=1"`
}

// BOMItemResponse línea de componente.
type BOMItemResponse struct {
	ID                 string `json:"id"`
	Sequence           int    `json:"sequence"`
	ComponentProductID string `json:"component_product_id"`
	QtyPerBatch        int64  `json:"qty_per_batch"`
}

// BOMResponse BOM con sus componentes.
type BOMResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name,omitempty"`
	OutputProductID   string            `json:"output_product_id"`
	OutputQtyPerBatch int64             `json:"output_qty_per_batch"`
	IsActive          bool              `json:"is_active"`
	Items             []BOMItemResponse `json:"items"`
}

// CreateProductionOrderRequest body para POST /api/production/orders.
type CreateProductionOrderRequest struct {
	BOMID      string `json:"bom_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	QtyPlanned int64  `json:"qty_planned" validate:"required,gt=0"`
}

// CancelProductionOrderRequest body para cancelar una orden.
// ReverseConsumption=true sintetiza ajustes que compensan lo ya consumido.
type CancelProductionOrderRequest struct {
	ReverseConsumption bool `json:"reverse_consumption"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	BOMID       string    `json:"bom_id"`
	LocationID  string    `json:"location_id"`
	QtyPlanned  int64     `json:"qty_planned"`
	QtyProduced int64     `json:"qty_produced"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
