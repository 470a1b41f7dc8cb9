package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// Matriz completa de transiciones: completed y cancelled son terminales.
func TestProductionOrder_CanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.ProductionDraft, entity.ProductionInProgress, true},
		{entity.ProductionDraft, entity.ProductionCancelled, true},
		{entity.ProductionDraft, entity.ProductionCompleted, false},
		{entity.ProductionInProgress, entity.ProductionCompleted, true},
		{entity.ProductionInProgress, entity.ProductionCancelled, true},
		{entity.ProductionInProgress, entity.ProductionInProgress, false},
		{entity.ProductionCompleted, entity.ProductionCancelled, false},
		{entity.ProductionCompleted, entity.ProductionInProgress, false},
		{entity.ProductionCancelled, entity.ProductionInProgress, false},
		{entity.ProductionCancelled, entity.ProductionCompleted, false},
		{entity.ProductionDraft, "estado_desconocido", false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_a_"+tc.to, func(t *testing.T) {
			order := &entity.ProductionOrder{Status: tc.from}
			assert.Equal(t, tc.want, order.CanTransition(tc.to))
		})
	}
}

func TestBOM_Validate(t *testing.T) {
	valid := func() *entity.BOM {
		return &entity.BOM{
			OutputProductID:   "silla",
			OutputQtyPerBatch: 1,
			Items: []entity.BOMItem{
				{ComponentProductID: "pata", QtyPerBatch: 4, Sequence: 1},
			},
		}
	}

	t.Run("bom valido", func(t *testing.T) {
		assert.True(t, valid().Validate())
	})

	t.Run("sin producto de salida", func(t *testing.T) {
		b := valid()
		b.OutputProductID = ""
		assert.False(t, b.Validate())
	})

	t.Run("rendimiento no positivo", func(t *testing.T) {
		b := valid()
		b.OutputQtyPerBatch = 0
		assert.False(t, b.Validate())
	})

	t.Run("sin componentes", func(t *testing.T) {
		b := valid()
		b.Items = nil
		assert.False(t, b.Validate())
	})

	t.Run("cantidad de componente no positiva", func(t *testing.T) {
		b := valid()
		b.Items[0].QtyPerBatch = 0
		assert.False(t, b.Validate())
	})

	t.Run("componente igual a la salida", func(t *testing.T) {
		b := valid()
		b.Items[0].ComponentProductID = b.OutputProductID
		assert.False(t, b.Validate())
	})
}
