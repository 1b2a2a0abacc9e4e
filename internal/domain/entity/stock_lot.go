package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un lote de stock.
const (
	SourceFarmer         = "FARMER"          // entrega de un agricultor
	SourceMarketPurchase = "MARKET_PURCHASE" // compra en mercado
)

// LowStockThresholdBags umbral por defecto de alerta de stock bajo (sacos).
const LowStockThresholdBags = 100

// TonsPrecision decimales con los que se guardan las toneladas (NUMERIC(10,3)).
const TonsPrecision = 3

// StockLot representa un lote recibido de un producto. Nunca se borra:
// un lote con cero sacos simplemente deja de participar en la asignación FIFO.
type StockLot struct {
	ID                string
	ProductID         string
	QuantityBags      int64
	QuantityTons      decimal.Decimal
	SourceType        string  // FARMER, MARKET_PURCHASE
	FarmerID          *string // solo si SourceType == FARMER
	QualityGrade      string
	MoistureContent   decimal.Decimal // porcentaje de humedad
	WarehouseLocation string
	CostPrice         decimal.Decimal
	ReceivedAt        time.Time
	ExpiryAlertDate   *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el lote está por debajo del umbral de alerta.
func (l *StockLot) IsLowStock() bool {
	return l.QuantityBags < LowStockThresholdBags
}

// IsValidSourceType valida el origen de un lote.
func IsValidSourceType(s string) bool {
	return s == SourceFarmer || s == SourceMarketPurchase
}
