package memory

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
)

// TxRunner ejecuta unidades de trabajo sobre el Store con semántica
// transaccional: las transacciones corren una a la vez y un error revierte
// todo al snapshot previo. Es el equivalente en memoria del runner
// serializable de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el snapshot, ejecuta fn con los repos del store y restaura el
// snapshot si fn falla o el contexto se cancela.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ledger.TxRepos) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := r.store.takeSnapshot()

	repos := ledger.TxRepos{
		Ledger:          NewLedgerRepository(r.store),
		Balance:         NewStockBalanceRepository(r.store),
		Product:         NewProductRepository(r.store),
		Location:        NewLocationRepository(r.store),
		PurchaseOrder:   NewPurchaseOrderRepository(r.store),
		SalesOrder:      NewSalesOrderRepository(r.store),
		BOM:             NewBOMRepository(r.store),
		ProductionOrder: NewProductionOrderRepository(r.store),
	}

	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
