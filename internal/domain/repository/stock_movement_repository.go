package repository

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
type MovementFilter struct {
	StockLotID string
	OrderID    string
	Type       string
	Limit      int
	Offset     int
}

// StockMovementRepository puerto del libro de movimientos. Solo inserción y lectura:
// no existe Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}
