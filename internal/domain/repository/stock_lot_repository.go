package repository

import (
	"context"
	"time"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// StockLotFilter filtros para listar lotes.
type StockLotFilter struct {
	ProductID         string
	WarehouseLocation string
	SourceType        string
	Limit             int
	Offset            int
}

// StockLotRepository define el puerto de persistencia de lotes (DIP).
// Los métodos ...ForUpdate bloquean filas (SELECT FOR UPDATE) y solo tienen sentido dentro de una tx.
// GetByID y GetForUpdate devuelven (nil, nil) si el lote no existe.
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	GetByID(ctx context.Context, id string) (*entity.StockLot, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockLot, error)
	// ListAvailableForUpdate lotes del producto con sacos > 0, más antiguo primero, bloqueados.
	ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error)
	// SumAvailable total de sacos del producto (índice product_id, received_at).
	SumAvailable(ctx context.Context, productID string) (int64, error)
	UpdateQuantities(ctx context.Context, lot *entity.StockLot) error
	UpdateLocation(ctx context.Context, lot *entity.StockLot) error
	ExistsForProduct(ctx context.Context, productID string) (bool, error)
	List(ctx context.Context, f StockLotFilter) ([]*entity.StockLot, error)
	ListLowStock(ctx context.Context, thresholdBags int64) ([]*entity.StockLot, error)
	// ListExpiringBetween lotes con expiry_alert_date en [from, to] (fechas inclusivas).
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.StockLot, error)
	ListExpiredBefore(ctx context.Context, date time.Time) ([]*entity.StockLot, error)
}
