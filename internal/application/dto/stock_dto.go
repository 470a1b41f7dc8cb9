package dto

import "time"

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	FromLocationID string `json:"from_location_id" validate:"required"`
	ToLocationID   string `json:"to_location_id" validate:"required"`
	Qty            int64  `json:"qty" validate:"required,gt=0"`
}

// AdjustRequest body para POST /api/inventory/adjustments.
// Qty firmado: positivo suma, negativo resta.
type AdjustRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Qty        int64  `json:"qty" validate:"required"`
}

// ReturnRequest body para POST /api/inventory/returns.
type ReturnRequest struct {
	Category   string `json:"category" validate:"required,oneof=customer supplier"`
	RefItemID  string `json:"ref_item_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Qty        int64  `json:"qty" validate:"required,gt=0"`
}

// BalanceResponse balance actual de un par (producto, ubicación).
type BalanceResponse struct {
	ProductID   string    `json:"product_id"`
	LocationID  string    `json:"location_id"`
	CurrentQty  int64     `json:"current_qty"`
	LastUpdated time.Time `json:"last_updated"`
}

// LedgerEntryResponse una entrada confirmada del stock ledger.
type LedgerEntryResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Type       string    `json:"type"`
	Qty        int64     `json:"qty"`
	RefType    string    `json:"ref_type,omitempty"`
	RefID      string    `json:"ref_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MovementResponse resultado de una emisión: entradas confirmadas más los
// balances resultantes.
type MovementResponse struct {
	Entries  []LedgerEntryResponse `json:"entries"`
	Balances []BalanceResponse     `json:"balances"`
}
