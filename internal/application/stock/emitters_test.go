package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
	"github.com/jhoicas/manufactura-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store    *memory.Store
	emitters *stock.Emitters
	ctx      context.Context

	product   string
	warehouse string // WH-A
	secondary string // WH-B
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	e := &env{
		store:     store,
		emitters:  stock.NewEmitters(memory.NewTxRunner(store)),
		ctx:       ctx,
		product:   uuid.New().String(),
		warehouse: uuid.New().String(),
		secondary: uuid.New().String(),
	}

	require.NoError(t, memory.NewProductRepository(store).Create(ctx, &entity.Product{
		ID: e.product, SKU: "FG-100", Name: "Silla ensamblada", Category: entity.CategoryFinishedGood,
		UOM: "pcs", UnitPrice: decimal.NewFromInt(45), IsActive: true,
	}))
	locations := memory.NewLocationRepository(store)
	require.NoError(t, locations.Create(ctx, &entity.Location{
		ID: e.warehouse, Code: "WH-A", Name: "Bodega principal", Type: entity.LocationWarehouse, IsActive: true,
	}))
	require.NoError(t, locations.Create(ctx, &entity.Location{
		ID: e.secondary, Code: "WH-B", Name: "Bodega secundaria", Type: entity.LocationWarehouse, IsActive: true,
	}))
	return e
}

// seedPOItem crea una orden de compra confirmada con una línea y devuelve
// el ID de la línea.
func (e *env) seedPOItem(t *testing.T, qtyOrdered int64) string {
	t.Helper()
	poID := uuid.New().String()
	itemID := uuid.New().String()
	require.NoError(t, memory.NewPurchaseOrderRepository(e.store).Create(e.ctx, &entity.PurchaseOrder{
		ID: poID, PONumber: "OC-" + poID[:8], SupplierID: uuid.New().String(),
		Status: entity.POStatusConfirmed,
		Items: []entity.PurchaseOrderItem{{
			ID: itemID, POID: poID, ProductID: e.product, QtyOrdered: qtyOrdered,
			UnitPrice: decimal.NewFromInt(20),
		}},
	}))
	return itemID
}

// seedSOItem crea una orden de venta confirmada con una línea.
func (e *env) seedSOItem(t *testing.T, qtyOrdered int64) string {
	t.Helper()
	soID := uuid.New().String()
	itemID := uuid.New().String()
	require.NoError(t, memory.NewSalesOrderRepository(e.store).Create(e.ctx, &entity.SalesOrder{
		ID: soID, SONumber: "OV-" + soID[:8], CustomerID: uuid.New().String(),
		Status: entity.SOStatusConfirmed,
		Items: []entity.SalesOrderItem{{
			ID: itemID, SOID: soID, ProductID: e.product, QtyOrdered: qtyOrdered,
			UnitPrice: decimal.NewFromInt(45),
		}},
	}))
	return itemID
}

func (e *env) balance(t *testing.T, locationID string) int64 {
	t.Helper()
	b, err := memory.NewStockBalanceRepository(e.store).Get(e.ctx, e.product, locationID)
	require.NoError(t, err)
	return b.CurrentQty
}

func (e *env) ledgerEntries(t *testing.T, locationID string) []*entity.LedgerEntry {
	t.Helper()
	entries, err := memory.NewLedgerRepository(e.store).List(e.ctx, repository.LedgerFilter{
		ProductID: e.product, LocationID: locationID, Limit: 1000,
	})
	require.NoError(t, err)
	return entries
}

func (e *env) requireInvariant(t *testing.T, locationID string) {
	t.Helper()
	sum, err := memory.NewLedgerRepository(e.store).SumByPair(e.ctx, e.product, locationID)
	require.NoError(t, err)
	require.Equal(t, sum, e.balance(t, locationID),
		"el balance debe ser exactamente la suma del ledger del par")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: recibir, despachar, trasladar, ajustar
// ──────────────────────────────────────────────────────────────────────────────

// Recorre el ciclo de vida del stock y verifica balances y entradas:
// recibir 100 en WH-A, despachar 30, trasladar 20 a WH-B, ajustar −5.
// WH-A termina en 45 con 4 entradas; WH-B en 20 con 1 entrada.
func TestFlujoInventarioCompleto(t *testing.T) {
	e := newEnv(t)
	poItem := e.seedPOItem(t, 100)
	soItem := e.seedSOItem(t, 30)

	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 100,
	})
	require.NoError(t, err)

	_, err = e.emitters.ShipSale(e.ctx, stock.ShipInput{
		SOItemID: soItem, LocationID: e.warehouse, Qty: 30,
	})
	require.NoError(t, err)

	_, err = e.emitters.Transfer(e.ctx, stock.TransferInput{
		ProductID: e.product, FromLocationID: e.warehouse, ToLocationID: e.secondary, Qty: 20,
	})
	require.NoError(t, err)

	_, err = e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: -5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(45), e.balance(t, e.warehouse), "100 - 30 - 20 - 5 = 45")
	assert.Equal(t, int64(20), e.balance(t, e.secondary))
	assert.Len(t, e.ledgerEntries(t, e.warehouse), 4)
	assert.Len(t, e.ledgerEntries(t, e.secondary), 1)
	e.requireInvariant(t, e.warehouse)
	e.requireInvariant(t, e.secondary)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivePurchase_ActualizaLineaYEstado(t *testing.T) {
	e := newEnv(t)
	poItem := e.seedPOItem(t, 10)

	// Recepción parcial: la orden queda partial.
	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 4,
	})
	require.NoError(t, err)

	poRepo := memory.NewPurchaseOrderRepository(e.store)
	item, err := poRepo.GetItemByID(e.ctx, poItem)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.QtyReceived)

	po, err := poRepo.GetByID(e.ctx, item.POID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartial, po.Status)

	// Completar la línea: la orden queda received.
	_, err = e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 6,
	})
	require.NoError(t, err)

	po, err = poRepo.GetByID(e.ctx, item.POID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, po.Status)
	assert.Equal(t, int64(10), e.balance(t, e.warehouse))
}

func TestReceivePurchase_ExcederPendienteRechazado(t *testing.T) {
	e := newEnv(t)
	poItem := e.seedPOItem(t, 10)

	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(0), e.balance(t, e.warehouse), "nada debe quedar escrito")
}

func TestReceivePurchase_CantidadNoPositivaRechazada(t *testing.T) {
	e := newEnv(t)
	poItem := e.seedPOItem(t, 10)

	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReceivePurchase_LineaInexistente(t *testing.T) {
	e := newEnv(t)

	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: uuid.New().String(), LocationID: e.warehouse, Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despachos
// ──────────────────────────────────────────────────────────────────────────────

// Un despacho que falla la guarda de stock no deja NINGÚN rastro: ni entrada
// de ledger, ni cambio de balance, ni avance en la línea.
func TestShipSale_StockInsuficienteNoDejaRastro(t *testing.T) {
	e := newEnv(t)
	soItem := e.seedSOItem(t, 30)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 10,
	})
	require.NoError(t, err)

	_, err = e.emitters.ShipSale(e.ctx, stock.ShipInput{
		SOItemID: soItem, LocationID: e.warehouse, Qty: 30,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), e.balance(t, e.warehouse))
	item, err := memory.NewSalesOrderRepository(e.store).GetItemByID(e.ctx, soItem)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.QtyShipped, "la línea no debe avanzar si el ledger abortó")
	e.requireInvariant(t, e.warehouse)
}

func TestShipSale_ExcederPendienteRechazado(t *testing.T) {
	e := newEnv(t)
	soItem := e.seedSOItem(t, 5)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 100,
	})
	require.NoError(t, err)

	_, err = e.emitters.ShipSale(e.ctx, stock.ShipInput{
		SOItemID: soItem, LocationID: e.warehouse, Qty: 6,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// N despachos concurrentes compiten por 50 unidades. Deben tener éxito
// exactamente los que el stock cubre; el resto falla con stock insuficiente
// y el balance jamás queda negativo.
func TestShipSale_ConcurrenciaNoSobregira(t *testing.T) {
	e := newEnv(t)
	soItem := e.seedSOItem(t, 100)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 50,
	})
	require.NoError(t, err)

	const workers = 10
	const qtyEach = 10

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.emitters.ShipSale(e.ctx, stock.ShipInput{
				SOItemID: soItem, LocationID: e.warehouse, Qty: qtyEach,
			})
		}(i)
	}
	wg.Wait()

	var okCount, failCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			failCount++
		}
	}
	assert.Equal(t, 5, okCount, "solo 5 despachos de 10 caben en 50 unidades")
	assert.Equal(t, 5, failCount)

	assert.Equal(t, int64(0), e.balance(t, e.warehouse))
	item, err := memory.NewSalesOrderRepository(e.store).GetItemByID(e.ctx, soItem)
	require.NoError(t, err)
	assert.Equal(t, int64(50), item.QtyShipped)
	e.requireInvariant(t, e.warehouse)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_DebeSerAtomico(t *testing.T) {
	e := newEnv(t)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 15,
	})
	require.NoError(t, err)

	// Trasladar más de lo disponible: ni el débito ni el crédito se escriben.
	_, err = e.emitters.Transfer(e.ctx, stock.TransferInput{
		ProductID: e.product, FromLocationID: e.warehouse, ToLocationID: e.secondary, Qty: 20,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(15), e.balance(t, e.warehouse))
	assert.Equal(t, int64(0), e.balance(t, e.secondary))

	// Traslado válido: ambas entradas comparten RefID.
	res, err := e.emitters.Transfer(e.ctx, stock.TransferInput{
		ProductID: e.product, FromLocationID: e.warehouse, ToLocationID: e.secondary, Qty: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, res.Entries[0].RefID, res.Entries[1].RefID,
		"las dos patas del traslado comparten el documento de referencia")
	assert.Equal(t, int64(-10), res.Entries[0].Qty)
	assert.Equal(t, int64(10), res.Entries[1].Qty)

	assert.Equal(t, int64(5), e.balance(t, e.warehouse))
	assert.Equal(t, int64(10), e.balance(t, e.secondary))
	e.requireInvariant(t, e.warehouse)
	e.requireInvariant(t, e.secondary)
}

func TestTransfer_MismaUbicacionRechazada(t *testing.T) {
	e := newEnv(t)

	_, err := e.emitters.Transfer(e.ctx, stock.TransferInput{
		ProductID: e.product, FromLocationID: e.warehouse, ToLocationID: e.warehouse, Qty: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_CantidadCeroRechazada(t *testing.T) {
	e := newEnv(t)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// El ajuste negativo no lleva guarda: reconcilia contra el conteo físico
// aunque el sistema quede temporalmente negativo.
func TestAdjust_PermiteBalanceNegativo(t *testing.T) {
	e := newEnv(t)

	res, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: -8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-8), res.Balances[0].CurrentQty)
	e.requireInvariant(t, e.warehouse)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_ClienteSumaStock(t *testing.T) {
	e := newEnv(t)
	soItem := e.seedSOItem(t, 10)

	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: e.product, LocationID: e.warehouse, Qty: 10,
	})
	require.NoError(t, err)
	_, err = e.emitters.ShipSale(e.ctx, stock.ShipInput{
		SOItemID: soItem, LocationID: e.warehouse, Qty: 10,
	})
	require.NoError(t, err)

	res, err := e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: stock.ReturnCustomer, RefItemID: soItem, LocationID: e.warehouse, Qty: 3,
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, entity.TxTypeReturn, res.Entries[0].Type)
	assert.Equal(t, int64(3), res.Entries[0].Qty, "la devolución de cliente entra positiva")
	assert.Equal(t, int64(3), e.balance(t, e.warehouse))
	e.requireInvariant(t, e.warehouse)
}

func TestReturn_ProveedorRestaConGuarda(t *testing.T) {
	e := newEnv(t)
	poItem := e.seedPOItem(t, 10)

	_, err := e.emitters.ReceivePurchase(e.ctx, stock.ReceiveInput{
		POItemID: poItem, LocationID: e.warehouse, Qty: 10,
	})
	require.NoError(t, err)

	// Devolver más de lo que hay en la ubicación: la guarda bloquea.
	_, err = e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: stock.ReturnSupplier, RefItemID: poItem, LocationID: e.warehouse, Qty: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	res, err := e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: stock.ReturnSupplier, RefItemID: poItem, LocationID: e.warehouse, Qty: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), res.Entries[0].Qty, "la devolución a proveedor sale negativa")
	assert.Equal(t, int64(6), e.balance(t, e.warehouse))
	e.requireInvariant(t, e.warehouse)
}

func TestReturn_LineaSinMovimientoRechazada(t *testing.T) {
	e := newEnv(t)
	soItem := e.seedSOItem(t, 10) // nunca despachó
	poItem := e.seedPOItem(t, 10) // nunca recibió

	_, err := e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: stock.ReturnCustomer, RefItemID: soItem, LocationID: e.warehouse, Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: stock.ReturnSupplier, RefItemID: poItem, LocationID: e.warehouse, Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturn_CategoriaInvalida(t *testing.T) {
	e := newEnv(t)

	_, err := e.emitters.Return(e.ctx, stock.ReturnInput{
		Category: "warranty", RefItemID: uuid.New().String(), LocationID: e.warehouse, Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
