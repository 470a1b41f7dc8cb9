package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"  // opera inventario y recepciones
	RoleVendedor   = "vendedor"   // opera despachos de venta
	RoleProduccion = "produccion" // opera órdenes de producción
)

// User representa un usuario del sistema (frontera de autenticación;
// el motor de inventario asume que el caller ya fue autorizado).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, vendedor, produccion
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
