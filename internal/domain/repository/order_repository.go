package repository

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// OrderFilter filtros para listar órdenes.
type OrderFilter struct {
	CustomerID string
	ProductID  string
	Status     string
	Limit      int
	Offset     int
}

// OrderRepository define el puerto de persistencia para Order (DIP).
// Create y Update recalculan TotalPrice antes de guardar.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden dentro de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}
