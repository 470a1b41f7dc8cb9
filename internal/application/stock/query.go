package stock

import (
	"context"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
)

// QueryUseCase lecturas de inventario (balances y ledger). Consumidor de
// solo lectura: nunca escribe.
type QueryUseCase struct {
	balanceRepo repository.StockBalanceRepository
	ledgerRepo  repository.LedgerRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(balanceRepo repository.StockBalanceRepository, ledgerRepo repository.LedgerRepository) *QueryUseCase {
	return &QueryUseCase{balanceRepo: balanceRepo, ledgerRepo: ledgerRepo}
}

// Balance devuelve el balance actual del par (cero si no hay historia).
func (uc *QueryUseCase) Balance(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	return uc.balanceRepo.Get(ctx, productID, locationID)
}

// Balances lista balances con filtros opcionales.
func (uc *QueryUseCase) Balances(ctx context.Context, f repository.BalanceFilter) ([]*entity.StockBalance, error) {
	return uc.balanceRepo.List(ctx, f)
}

// LowStock lista los pares con balance por debajo del umbral.
func (uc *QueryUseCase) LowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.StockBalance, error) {
	return uc.balanceRepo.List(ctx, repository.BalanceFilter{MaxQty: &threshold, Limit: limit, Offset: offset})
}

// Ledger lista entradas del ledger con filtros opcionales, más recientes primero.
func (uc *QueryUseCase) Ledger(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	return uc.ledgerRepo.List(ctx, f)
}
