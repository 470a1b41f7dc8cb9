package entity

import "time"

// BOM (bill of materials) define cómo producir OutputQtyPerBatch unidades
// de OutputProductID a partir de sus componentes. Explosión de un solo
// nivel: un componente no puede ser el propio producto de salida.
type BOM struct {
	ID                string
	Name              string
	OutputProductID   string
	OutputQtyPerBatch int64 // > 0
	IsActive          bool
	Items             []BOMItem // ordenados por Sequence
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BOMItem es una línea de componente de un BOM.
type BOMItem struct {
	ID                 string
	BOMID              string
	Sequence           int
	ComponentProductID string
	QtyPerBatch        int64 // > 0
}

// Validate verifica los invariantes del BOM: cantidades positivas y
// componentes distintos del producto de salida.
func (b *BOM) Validate() bool {
	if b.OutputProductID == "" || b.OutputQtyPerBatch <= 0 || len(b.Items) == 0 {
		return false
	}
	for _, it := range b.Items {
		if it.ComponentProductID == "" || it.QtyPerBatch <= 0 {
			return false
		}
		if it.ComponentProductID == b.OutputProductID {
			return false
		}
	}
	return true
}
