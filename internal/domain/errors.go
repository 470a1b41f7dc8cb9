package domain

import "errors"

// Errores de dominio (sin dependencias externas). El motor de inventario
// los detecta antes de escribir en el ledger; cualquier fallo dentro de un
// batch aborta el batch completo.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidState        = errors.New("transición de estado no permitida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
)
