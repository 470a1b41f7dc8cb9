package ledger

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Los emisores actualizan sus documentos (líneas de PO/SO, órdenes de
// producción) con los mismos repos, así el documento y el ledger confirman
// o se revierten juntos.
type TxRepos struct {
	Ledger          repository.LedgerRepository
	Balance         repository.StockBalanceRepository
	Product         repository.ProductRepository
	Location        repository.LocationRepository
	PurchaseOrder   repository.PurchaseOrderRepository
	SalesOrder      repository.SalesOrderRepository
	BOM             repository.BOMRepository
	ProductionOrder repository.ProductionOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción serializable de la BD,
// pasando repositorios atados a esa tx. Commit si fn devuelve nil; Rollback
// si devuelve error o si el contexto del caller se cancela. Un fallo de
// serialización se reporta como domain.ErrConcurrencyConflict y el caller
// puede reintentar: nada quedó confirmado.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
