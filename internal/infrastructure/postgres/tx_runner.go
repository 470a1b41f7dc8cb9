package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
)

// TxRunner ejecuta unidades de trabajo en una transacción SERIALIZABLE.
// Todo append al ledger + proyección de balances + actualización de
// documento origen ocurre dentro de una sola transacción: o se confirma
// todo o no queda rastro de nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner crea el runner transaccional sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre la transacción, construye los repositorios atados a ella y
// ejecuta fn. Si fn retorna error se hace rollback. Las fallas de
// serialización y los deadlocks se traducen a domain.ErrConcurrencyConflict
// para que el caller decida reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ledger.TxRepos) error) error {
	pgxTx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer pgxTx.Rollback(ctx) //nolint:errcheck // no-op si ya hubo commit

	repos := ledger.TxRepos{
		Ledger:          NewLedgerRepository(pgxTx),
		Balance:         NewStockBalanceRepository(pgxTx),
		Product:         NewProductRepository(pgxTx),
		Location:        NewLocationRepository(pgxTx),
		PurchaseOrder:   NewPurchaseOrderRepository(pgxTx),
		SalesOrder:      NewSalesOrderRepository(pgxTx),
		BOM:             NewBOMRepository(pgxTx),
		ProductionOrder: NewProductionOrderRepository(pgxTx),
	}

	if err := fn(repos); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
