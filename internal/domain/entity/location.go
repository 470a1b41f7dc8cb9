package entity

import "time"

// Tipos de ubicación.
const (
	LocationWarehouse       = "warehouse"
	LocationProductionFloor = "production_floor"
	LocationSubcontract     = "subcontract"
	LocationTransit         = "transit"
)

// Location representa una ubicación física de inventario (bodega, planta,
// tránsito). Forma un árbol vía ParentID; el balance de stock se lleva por
// ubicación hoja, nunca agregado por ancestros.
type Location struct {
	ID        string
	Code      string // código único
	Name      string
	Type      string // warehouse, production_floor, subcontract, transit
	ParentID  string // vacío = raíz
	IsActive  bool
	CreatedAt time.Time
}
