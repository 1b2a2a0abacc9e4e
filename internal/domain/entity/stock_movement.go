package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementAddition  = "ADDITION"  // recepción de un lote
	MovementDeduction = "DEDUCTION" // salida (aprobación de orden o manual)
	MovementTransfer  = "TRANSFER"  // cambio de ubicación, sin cantidad
	MovementDamage    = "DAMAGE"    // pérdida o daño
)

// StockMovement es el registro de auditoría de un cambio sobre un lote.
// Una vez creado no se modifica ni se elimina.
// Las cantidades son deltas con signo: negativas en DEDUCTION/DAMAGE, cero en TRANSFER.
type StockMovement struct {
	ID           string
	StockLotID   string
	Type         string
	QuantityBags int64
	QuantityTons decimal.Decimal
	OrderID      *string
	Reason       string
	PerformedBy  string // UserID
	CreatedAt    time.Time
}

// IsValidMovementType valida el tipo de movimiento.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementAddition, MovementDeduction, MovementTransfer, MovementDamage:
		return true
	}
	return false
}
