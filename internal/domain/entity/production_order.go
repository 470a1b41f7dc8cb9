package entity

import "time"

// Estados de una orden de producción. completed y cancelled son terminales.
const (
	ProductionDraft      = "draft"
	ProductionInProgress = "in_progress"
	ProductionCompleted  = "completed"
	ProductionCancelled  = "cancelled"
)

// ProductionOrder orquesta el consumo de componentes (explosión del BOM al
// iniciar) y la salida de producto terminado (al completar). La orden nunca
// escribe ledger ni balances directamente: sus transiciones disparan los
// emisores de transacciones.
type ProductionOrder struct {
	ID          string
	OrderNumber string // único, ej. OP-2026-000123
	BOMID       string
	LocationID  string // ubicación donde se consume y se produce
	QtyPlanned  int64  // > 0
	QtyProduced int64
	Status      string // draft, in_progress, completed, cancelled
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransition indica si la transición de estado está permitida:
// draft→in_progress, in_progress→completed, draft|in_progress→cancelled.
func (o *ProductionOrder) CanTransition(to string) bool {
	switch to {
	case ProductionInProgress:
		return o.Status == ProductionDraft
	case ProductionCompleted:
		return o.Status == ProductionInProgress
	case ProductionCancelled:
		return o.Status == ProductionDraft || o.Status == ProductionInProgress
	default:
		return false
	}
}
