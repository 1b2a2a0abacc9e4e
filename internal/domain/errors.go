package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidState         = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente en el lote")
)

// InsufficientStockError detalla cuánto stock había frente a lo requerido.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type InsufficientStockError struct {
	Available int64
	Required  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d sacos, requerido %d sacos", e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
