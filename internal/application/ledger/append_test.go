package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-erp/internal/application/ledger"
	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
	"github.com/jhoicas/manufactura-erp/internal/domain/repository"
	"github.com/jhoicas/manufactura-erp/internal/infrastructure/memory"
)

func ledgerFilterAll() repository.LedgerFilter {
	return repository.LedgerFilter{Limit: 1000}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store   *memory.Store
	service *ledger.Service
	ctx     context.Context

	productA  string
	productB  string
	locationA string
	locationB string
}

// newEnv arma un store en memoria con dos productos y dos ubicaciones.
func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	e := &env{
		store:     store,
		service:   ledger.NewService(memory.NewTxRunner(store)),
		ctx:       ctx,
		productA:  uuid.New().String(),
		productB:  uuid.New().String(),
		locationA: uuid.New().String(),
		locationB: uuid.New().String(),
	}

	products := memory.NewProductRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: e.productA, SKU: "MAT-001", Name: "Tornillo M4", Category: entity.CategoryMaterial, UOM: "pcs", IsActive: true,
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: e.productB, SKU: "MAT-002", Name: "Tuerca M4", Category: entity.CategoryMaterial, UOM: "pcs", IsActive: true,
	}))

	locations := memory.NewLocationRepository(store)
	require.NoError(t, locations.Create(ctx, &entity.Location{
		ID: e.locationA, Code: "WH-A", Name: "Bodega A", Type: entity.LocationWarehouse, IsActive: true,
	}))
	require.NoError(t, locations.Create(ctx, &entity.Location{
		ID: e.locationB, Code: "WH-B", Name: "Bodega B", Type: entity.LocationWarehouse, IsActive: true,
	}))
	return e
}

// balance lee el balance actual del par.
func (e *env) balance(t *testing.T, productID, locationID string) int64 {
	t.Helper()
	b, err := memory.NewStockBalanceRepository(e.store).Get(e.ctx, productID, locationID)
	require.NoError(t, err)
	return b.CurrentQty
}

// ledgerSum suma los deltas confirmados del par.
func (e *env) ledgerSum(t *testing.T, productID, locationID string) int64 {
	t.Helper()
	sum, err := memory.NewLedgerRepository(e.store).SumByPair(e.ctx, productID, locationID)
	require.NoError(t, err)
	return sum
}

// requireInvariant verifica que el balance proyectado coincide con la suma
// del ledger para el par.
func (e *env) requireInvariant(t *testing.T, productID, locationID string) {
	t.Helper()
	require.Equal(t, e.ledgerSum(t, productID, locationID), e.balance(t, productID, locationID),
		"el balance debe ser exactamente la suma del ledger del par")
}

// ──────────────────────────────────────────────────────────────────────────────
// Append: proyección y validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_ProyectaBalanceYConservaInvariante(t *testing.T) {
	e := newEnv(t)

	res, err := e.service.Append(e.ctx, []ledger.Draft{{
		ProductID:  e.productA,
		LocationID: e.locationA,
		Type:       entity.TxTypePurchase,
		Qty:        100,
		RefType:    entity.RefPurchaseOrderItem,
		RefID:      uuid.New().String(),
	}}, ledger.Options{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	require.Len(t, res.Balances, 1)

	assert.Equal(t, int64(100), res.Balances[0].CurrentQty)
	assert.NotEmpty(t, res.Entries[0].ID, "la entrada confirmada debe tener ID asignado")
	assert.False(t, res.Entries[0].CreatedAt.IsZero())

	e.requireInvariant(t, e.productA, e.locationA)
}

func TestAppend_BatchVacioRechazado(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, nil, ledger.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_CantidadCeroRechazada(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{{
		ProductID:  e.productA,
		LocationID: e.locationA,
		Type:       entity.TxTypeAdjustment,
		Qty:        0,
	}}, ledger.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(0), e.balance(t, e.productA, e.locationA), "nada debe quedar escrito")
}

func TestAppend_TipoDesconocidoRechazado(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{{
		ProductID:  e.productA,
		LocationID: e.locationA,
		Type:       "teleport",
		Qty:        1,
	}}, ledger.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_ProductoInexistenteRechazado(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{{
		ProductID:  uuid.New().String(),
		LocationID: e.locationA,
		Type:       entity.TxTypePurchase,
		Qty:        10,
	}}, ledger.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_UbicacionInexistenteRechazada(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{{
		ProductID:  e.productA,
		LocationID: uuid.New().String(),
		Type:       entity.TxTypePurchase,
		Qty:        10,
	}}, ledger.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Append: agregación por par y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Un batch con varias entradas del mismo par proyecta el delta neto una sola
// vez pero conserva cada entrada individual en el ledger.
func TestAppend_AgregaDeltasPorPar(t *testing.T) {
	e := newEnv(t)

	res, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: 10},
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: -4},
		{ProductID: e.productB, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: 7},
	}, ledger.Options{})
	require.NoError(t, err)

	assert.Len(t, res.Entries, 3, "cada draft produce su propia entrada")
	assert.Len(t, res.Balances, 2, "un balance por par")

	assert.Equal(t, int64(6), e.balance(t, e.productA, e.locationA))
	assert.Equal(t, int64(7), e.balance(t, e.productB, e.locationA))
	e.requireInvariant(t, e.productA, e.locationA)
	e.requireInvariant(t, e.productB, e.locationA)
}

// La guarda evalúa el delta NETO del par: una salida cubierta por una
// entrada del mismo batch no debe fallar.
func TestAppend_GuardaSobreDeltaNeto(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypePurchase, Qty: 50},
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeSale, Qty: -20},
	}, ledger.Options{EnforceNonNegative: true})
	require.NoError(t, err, "el neto +30 no viola la guarda")
	assert.Equal(t, int64(30), e.balance(t, e.productA, e.locationA))
}

func TestAppend_GuardaBloqueaSobregiro(t *testing.T) {
	e := newEnv(t)

	// Stock inicial: 5 unidades.
	_, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: 5},
	}, ledger.Options{})
	require.NoError(t, err)

	// Intentar sacar 10 con guarda: aborta sin dejar rastro.
	_, err = e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeSale, Qty: -10},
	}, ledger.Options{EnforceNonNegative: true})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), e.balance(t, e.productA, e.locationA), "el balance no debe cambiar")
	entries, lerr := memory.NewLedgerRepository(e.store).List(e.ctx, ledgerFilterAll())
	require.NoError(t, lerr)
	assert.Len(t, entries, 1, "solo la entrada inicial debe existir")
	e.requireInvariant(t, e.productA, e.locationA)
}

// Si un par del batch falla la guarda, NINGÚN par queda escrito: el batch
// entero se revierte.
func TestAppend_FalloDeUnParRevierteTodoElBatch(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productB, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: 100},
	}, ledger.Options{})
	require.NoError(t, err)

	_, err = e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productB, LocationID: e.locationA, Type: entity.TxTypeTransfer, Qty: -10}, // alcanzaría
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeTransfer, Qty: -10}, // sin stock
	}, ledger.Options{EnforceNonNegative: true})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(100), e.balance(t, e.productB, e.locationA), "el par que sí alcanzaba tampoco debe moverse")
	assert.Equal(t, int64(0), e.balance(t, e.productA, e.locationA))
	e.requireInvariant(t, e.productA, e.locationA)
	e.requireInvariant(t, e.productB, e.locationA)
}

// Sin guarda (ajustes) el balance puede quedar negativo: el ajuste
// reconcilia contra el mundo físico, no contra el sistema.
func TestAppend_SinGuardaPermiteNegativo(t *testing.T) {
	e := newEnv(t)

	res, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: -15},
	}, ledger.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(-15), res.Balances[0].CurrentQty)
	e.requireInvariant(t, e.productA, e.locationA)
}

// Leer el balance de un par sin historia devuelve cero y no crea la fila;
// lecturas repetidas no alteran nada.
func TestBalance_LecturaIdempotente(t *testing.T) {
	e := newEnv(t)
	balances := memory.NewStockBalanceRepository(e.store)

	for i := 0; i < 3; i++ {
		b, err := balances.Get(e.ctx, e.productA, e.locationA)
		require.NoError(t, err)
		assert.Equal(t, int64(0), b.CurrentQty)
	}

	all, err := balances.List(e.ctx, repository.BalanceFilter{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, all, "la lectura no debe materializar filas")
}

// Las entradas de un batch comparten el mismo CreatedAt y se confirman en el
// orden de entrada.
func TestAppend_BatchCompartesTimestamp(t *testing.T) {
	e := newEnv(t)

	res, err := e.service.Append(e.ctx, []ledger.Draft{
		{ProductID: e.productA, LocationID: e.locationA, Type: entity.TxTypeAdjustment, Qty: 1},
		{ProductID: e.productB, LocationID: e.locationB, Type: entity.TxTypeAdjustment, Qty: 2},
	}, ledger.Options{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.True(t, res.Entries[0].CreatedAt.Equal(res.Entries[1].CreatedAt),
		"el batch entero comparte timestamp de confirmación")
	assert.WithinDuration(t, time.Now().UTC(), res.Entries[0].CreatedAt, 5*time.Second)
	assert.Equal(t, int64(1), res.Entries[0].Qty)
	assert.Equal(t, int64(2), res.Entries[1].Qty)
}
