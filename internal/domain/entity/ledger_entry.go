package entity

import "time"

// Tipos de transacción del ledger (origen de negocio del movimiento).
const (
	TxTypePurchase   = "purchase"
	TxTypeSale       = "sale"
	TxTypeTransfer   = "transfer"
	TxTypeAdjustment = "adjustment"
	TxTypeProduction = "production"
	TxTypeReturn     = "return"
)

// Tipos de documento de referencia (back-pointer al documento origen).
const (
	RefPurchaseOrderItem = "purchase_order_item"
	RefSalesOrderItem    = "sales_order_item"
	RefProductionOrder   = "production_order"
	RefTransfer          = "transfer"
	RefAdjustment        = "adjustment"
	RefReturn            = "return"
)

// LedgerEntry es un registro inmutable del stock ledger (append-only).
// Qty es el delta firmado: positivo = entrada de stock, negativo = salida.
// Una vez confirmado nunca se actualiza ni se borra; las correcciones son
// siempre nuevas entradas que compensan, jamás mutación.
type LedgerEntry struct {
	ID        string // UUIDv7, ordenado en el tiempo, asignado al confirmar
	ProductID string
	LocationID string
	Type      string // purchase, sale, transfer, adjustment, production, return
	Qty       int64  // delta firmado, nunca cero
	RefType   string
	RefID     string // documento origen (PO item, SO item, orden de producción, lote de traslado)
	CreatedAt time.Time
	CreatedBy string // UserID, opcional
}
