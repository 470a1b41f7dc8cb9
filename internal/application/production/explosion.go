package production

import "github.com/jhoicas/manufactura-erp/internal/domain/entity"

// Requirement es la cantidad requerida de un componente para una orden.
type Requirement struct {
	ComponentProductID string
	Qty                int64
}

// RequiredBatches es el único punto de política de redondeo de la
// explosión: los lotes se redondean hacia arriba porque las cantidades son
// unidades enteras discretas (producir 5 con lotes de 2 requiere 3 lotes).
func RequiredBatches(targetQty, outputQtyPerBatch int64) int64 {
	return (targetQty + outputQtyPerBatch - 1) / outputQtyPerBatch
}

// Explode expande el BOM a cantidades concretas de componentes para
// producir targetQty unidades. Un solo nivel: los componentes no se
// re-explotan. Determinista: mismo BOM y cantidad, mismas requisiciones en
// el mismo orden (el orden de los items del BOM).
func Explode(bom *entity.BOM, targetQty int64) []Requirement {
	batches := RequiredBatches(targetQty, bom.OutputQtyPerBatch)
	reqs := make([]Requirement, 0, len(bom.Items))
	for _, it := range bom.Items {
		reqs = append(reqs, Requirement{
			ComponentProductID: it.ComponentProductID,
			Qty:                it.QtyPerBatch * batches,
		})
	}
	return reqs
}
