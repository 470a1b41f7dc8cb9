package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-erp/internal/application/production"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// El redondeo de lotes siempre es hacia arriba: unidades enteras discretas.
func TestRequiredBatches_RedondeaHaciaArriba(t *testing.T) {
	cases := []struct {
		name     string
		target   int64
		perBatch int64
		want     int64
	}{
		{"exacto", 10, 5, 2},
		{"con residuo", 5, 2, 3},
		{"una unidad", 1, 10, 1},
		{"lote unitario", 7, 1, 7},
		{"residuo minimo", 11, 10, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, production.RequiredBatches(tc.target, tc.perBatch))
		})
	}
}

// Producir 5 unidades con un BOM que rinde 1 por lote y consume 2A + 3B por
// lote requiere exactamente 10A y 15B.
func TestExplode_CantidadesPorComponente(t *testing.T) {
	bom := &entity.BOM{
		OutputProductID:   "silla",
		OutputQtyPerBatch: 1,
		Items: []entity.BOMItem{
			{ComponentProductID: "pata", QtyPerBatch: 2, Sequence: 1},
			{ComponentProductID: "tornillo", QtyPerBatch: 3, Sequence: 2},
		},
	}

	reqs := production.Explode(bom, 5)
	require.Len(t, reqs, 2)
	assert.Equal(t, "pata", reqs[0].ComponentProductID)
	assert.Equal(t, int64(10), reqs[0].Qty)
	assert.Equal(t, "tornillo", reqs[1].ComponentProductID)
	assert.Equal(t, int64(15), reqs[1].Qty)
}

// Misma entrada, misma salida, mismo orden: la explosión es determinista.
func TestExplode_Determinista(t *testing.T) {
	bom := &entity.BOM{
		OutputProductID:   "mesa",
		OutputQtyPerBatch: 4,
		Items: []entity.BOMItem{
			{ComponentProductID: "tablero", QtyPerBatch: 1, Sequence: 1},
			{ComponentProductID: "pata", QtyPerBatch: 4, Sequence: 2},
			{ComponentProductID: "tornillo", QtyPerBatch: 16, Sequence: 3},
		},
	}

	first := production.Explode(bom, 10)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, production.Explode(bom, 10))
	}
	// 10 sobre lotes de 4 = 3 lotes.
	assert.Equal(t, int64(3), first[0].Qty)
	assert.Equal(t, int64(12), first[1].Qty)
	assert.Equal(t, int64(48), first[2].Qty)
}
