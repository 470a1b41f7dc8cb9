package production_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-erp/internal/application/production"
	"github.com/jhoicas/manufactura-erp/internal/application/stock"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
	"github.com/jhoicas/manufactura-erp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: BOM de sillas (1 silla = 2 patas + 3 tornillos por lote de 1)
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store    *memory.Store
	uc       *production.UseCase
	emitters *stock.Emitters
	ctx      context.Context

	chair    string // producto de salida
	leg      string // componente
	screw    string // componente
	bomID    string
	floor    string // ubicación de producción
	operator string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ctx := context.Background()

	e := &env{
		store:    store,
		uc:       production.NewUseCase(runner, memory.NewProductionOrderRepository(store)),
		emitters: stock.NewEmitters(runner),
		ctx:      ctx,
		chair:    uuid.New().String(),
		leg:      uuid.New().String(),
		screw:    uuid.New().String(),
		bomID:    uuid.New().String(),
		floor:    uuid.New().String(),
		operator: uuid.New().String(),
	}

	products := memory.NewProductRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: e.chair, SKU: "FG-CHAIR", Name: "Silla", Category: entity.CategoryFinishedGood, UOM: "pcs", IsActive: true,
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: e.leg, SKU: "MAT-LEG", Name: "Pata", Category: entity.CategoryMaterial, UOM: "pcs", IsActive: true,
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: e.screw, SKU: "MAT-SCREW", Name: "Tornillo", Category: entity.CategoryMaterial, UOM: "pcs", IsActive: true,
	}))
	require.NoError(t, memory.NewLocationRepository(store).Create(ctx, &entity.Location{
		ID: e.floor, Code: "PLANTA-1", Name: "Planta de ensamble", Type: entity.LocationProductionFloor, IsActive: true,
	}))
	require.NoError(t, memory.NewBOMRepository(store).Create(ctx, &entity.BOM{
		ID: e.bomID, Name: "Silla estándar", OutputProductID: e.chair, OutputQtyPerBatch: 1, IsActive: true,
		Items: []entity.BOMItem{
			{ID: uuid.New().String(), BOMID: e.bomID, Sequence: 1, ComponentProductID: e.leg, QtyPerBatch: 2},
			{ID: uuid.New().String(), BOMID: e.bomID, Sequence: 2, ComponentProductID: e.screw, QtyPerBatch: 3},
		},
	}))
	return e
}

// stockUp carga stock del componente en la planta vía ajuste.
func (e *env) stockUp(t *testing.T, productID string, qty int64) {
	t.Helper()
	_, err := e.emitters.Adjust(e.ctx, stock.AdjustInput{
		ProductID: productID, LocationID: e.floor, Qty: qty, UserID: e.operator,
	})
	require.NoError(t, err)
}

func (e *env) balance(t *testing.T, productID string) int64 {
	t.Helper()
	b, err := memory.NewStockBalanceRepository(e.store).Get(e.ctx, productID, e.floor)
	require.NoError(t, err)
	return b.CurrentQty
}

func (e *env) orderEntries(t *testing.T, orderID string) []*entity.LedgerEntry {
	t.Helper()
	entries, err := memory.NewLedgerRepository(e.store).List(e.ctx, repository.LedgerFilter{
		RefType: entity.RefProductionOrder, RefID: orderID, Limit: 1000,
	})
	require.NoError(t, err)
	return entries
}

func (e *env) createOrder(t *testing.T, qty int64) *entity.ProductionOrder {
	t.Helper()
	order, err := e.uc.Create(e.ctx, production.CreateInput{
		BOMID: e.bomID, LocationID: e.floor, QtyPlanned: qty, UserID: e.operator,
	})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenEnBorrador(t *testing.T) {
	e := newEnv(t)

	order := e.createOrder(t, 5)
	assert.Equal(t, entity.ProductionDraft, order.Status)
	assert.Equal(t, int64(5), order.QtyPlanned)
	assert.Equal(t, int64(0), order.QtyProduced)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Contains(t, order.OrderNumber, "OP-")

	// Crear no toca el ledger.
	assert.Empty(t, e.orderEntries(t, order.ID))
}

func TestCreate_CantidadNoPositivaRechazada(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(e.ctx, production.CreateInput{
		BOMID: e.bomID, LocationID: e.floor, QtyPlanned: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreate_BOMInexistenteRechazado(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Create(e.ctx, production.CreateInput{
		BOMID: uuid.New().String(), LocationID: e.floor, QtyPlanned: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Start: explosión y consumo
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_ConsumeComponentesSegunExplosion(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 20)
	e.stockUp(t, e.screw, 20)

	order := e.createOrder(t, 5) // requiere 10 patas y 15 tornillos

	started, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionInProgress, started.Status)

	assert.Equal(t, int64(10), e.balance(t, e.leg), "20 - 10 = 10")
	assert.Equal(t, int64(5), e.balance(t, e.screw), "20 - 15 = 5")

	entries := e.orderEntries(t, order.ID)
	require.Len(t, entries, 2, "un consumo por componente")
	for _, entry := range entries {
		assert.Equal(t, entity.TxTypeProduction, entry.Type)
		assert.Negative(t, entry.Qty)
	}
}

// Si un solo componente no alcanza, NINGÚN componente se consume y la orden
// permanece en draft.
func TestStart_FaltanteBloqueaTodoElConsumo(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 20)  // alcanza (requiere 10)
	e.stockUp(t, e.screw, 8) // no alcanza (requiere 15)

	order := e.createOrder(t, 5)

	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(20), e.balance(t, e.leg), "el componente suficiente tampoco se consume")
	assert.Equal(t, int64(8), e.balance(t, e.screw))
	assert.Empty(t, e.orderEntries(t, order.ID))

	current, err := e.uc.GetByID(e.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionDraft, current.Status, "la orden sigue en borrador")
}

func TestStart_DobleInicioRechazado(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 100)
	e.stockUp(t, e.screw, 100)

	order := e.createOrder(t, 2)
	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)

	_, err = e.uc.Start(e.ctx, order.ID, e.operator)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_EmiteSalidaDeProductoTerminado(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 10)
	e.stockUp(t, e.screw, 15)

	order := e.createOrder(t, 5)
	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)

	completed, err := e.uc.Complete(e.ctx, order.ID, e.operator)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionCompleted, completed.Status)
	assert.Equal(t, int64(5), completed.QtyProduced)

	assert.Equal(t, int64(5), e.balance(t, e.chair), "salida por la cantidad planeada")
	assert.Equal(t, int64(0), e.balance(t, e.leg))
	assert.Equal(t, int64(0), e.balance(t, e.screw))

	entries := e.orderEntries(t, order.ID)
	assert.Len(t, entries, 3, "2 consumos + 1 salida")
}

func TestComplete_DesdeBorradorRechazado(t *testing.T) {
	e := newEnv(t)
	order := e.createOrder(t, 1)

	_, err := e.uc.Complete(e.ctx, order.ID, e.operator)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel: la reversión del consumo es política del caller
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_BorradorSinEntradas(t *testing.T) {
	e := newEnv(t)
	order := e.createOrder(t, 3)

	cancelled, err := e.uc.Cancel(e.ctx, order.ID, e.operator, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionCancelled, cancelled.Status)
	assert.Empty(t, e.orderEntries(t, order.ID))
}

// Sin reversión: lo consumido queda consumido.
func TestCancel_EnProgresoSinReversion(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 10)
	e.stockUp(t, e.screw, 15)

	order := e.createOrder(t, 5)
	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)

	cancelled, err := e.uc.Cancel(e.ctx, order.ID, e.operator, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionCancelled, cancelled.Status)

	assert.Equal(t, int64(0), e.balance(t, e.leg), "el consumo no se compensa")
	assert.Equal(t, int64(0), e.balance(t, e.screw))
	assert.Len(t, e.orderEntries(t, order.ID), 2, "solo los consumos originales")
}

// Con reversión: se sintetizan ajustes positivos que compensan cada consumo;
// los consumos originales permanecen intactos en el ledger.
func TestCancel_EnProgresoConReversion(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 10)
	e.stockUp(t, e.screw, 15)

	order := e.createOrder(t, 5)
	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)

	cancelled, err := e.uc.Cancel(e.ctx, order.ID, e.operator, true)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionCancelled, cancelled.Status)

	assert.Equal(t, int64(10), e.balance(t, e.leg), "el stock vuelve al nivel previo")
	assert.Equal(t, int64(15), e.balance(t, e.screw))

	entries := e.orderEntries(t, order.ID)
	require.Len(t, entries, 4, "2 consumos + 2 compensaciones")

	var consumos, compensaciones int
	for _, entry := range entries {
		switch entry.Type {
		case entity.TxTypeProduction:
			assert.Negative(t, entry.Qty)
			consumos++
		case entity.TxTypeAdjustment:
			assert.Positive(t, entry.Qty)
			compensaciones++
		}
	}
	assert.Equal(t, 2, consumos, "los consumos originales nunca se borran ni mutan")
	assert.Equal(t, 2, compensaciones)
}

func TestCancel_OrdenCompletadaRechazada(t *testing.T) {
	e := newEnv(t)
	e.stockUp(t, e.leg, 2)
	e.stockUp(t, e.screw, 3)

	order := e.createOrder(t, 1)
	_, err := e.uc.Start(e.ctx, order.ID, e.operator)
	require.NoError(t, err)
	_, err = e.uc.Complete(e.ctx, order.ID, e.operator)
	require.NoError(t, err)

	_, err = e.uc.Cancel(e.ctx, order.ID, e.operator, false)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
