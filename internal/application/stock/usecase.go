package stock

import (
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
)

// Emitters traduce cada flujo de negocio (recepción de compra, despacho de
// venta, traslado, ajuste, devolución) en drafts del ledger con el signo y
// tipo de transacción correctos, y los confirma vía append-and-project.
// Un emisor por tipo de transacción; el documento origen se actualiza en la
// misma transacción que el ledger.
type Emitters struct {
	txRunner ledger.TxRunner
}

// NewEmitters construye los emisores de transacciones de stock.
func NewEmitters(txRunner ledger.TxRunner) *Emitters {
	return &Emitters{txRunner: txRunner}
}
