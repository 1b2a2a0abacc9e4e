package repository

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductStock stock agregado de un producto (suma de todos sus lotes).
type ProductStock struct {
	TotalBags int64
	TotalTons decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	CurrentStock(ctx context.Context, id string) (ProductStock, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
