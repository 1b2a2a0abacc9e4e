package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest body para POST /api/stock/receive (compra en mercado o entrega de agricultor).
type ReceiveStockRequest struct {
	ProductID         string          `json:"product_id"`
	QuantityBags      int64           `json:"quantity_bags"`
	QuantityTons      decimal.Decimal `json:"quantity_tons"`
	SourceType        string          `json:"source_type"` // FARMER, MARKET_PURCHASE
	FarmerID          string          `json:"farmer_id,omitempty"`
	QualityGrade      string          `json:"quality_grade,omitempty"`
	MoistureContent   decimal.Decimal `json:"moisture_content"`
	WarehouseLocation string          `json:"warehouse_location"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	ReceivedAt        *time.Time      `json:"received_at,omitempty"` // vacío = ahora
	ExpiryAlertDate   *time.Time      `json:"expiry_alert_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// DeductStockRequest body para POST /api/stock/deduct.
type DeductStockRequest struct {
	StockID      string          `json:"stock_id"`
	QuantityBags int64           `json:"quantity_bags"`
	QuantityTons decimal.Decimal `json:"quantity_tons"`
	Type         string          `json:"type,omitempty"` // DEDUCTION (defecto) o DAMAGE
	Reason       string          `json:"reason"`
}

// TransferStockRequest body para POST /api/stock/transfer.
type TransferStockRequest struct {
	StockID     string `json:"stock_id"`
	NewLocation string `json:"new_location"`
	Reason      string `json:"reason,omitempty"`
}

// StockLotResponse salida de un lote.
type StockLotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	QuantityBags      int64           `json:"quantity_bags"`
	QuantityTons      decimal.Decimal `json:"quantity_tons"`
	SourceType        string          `json:"source_type"`
	FarmerID          *string         `json:"farmer_id,omitempty"`
	QualityGrade      string          `json:"quality_grade"`
	MoistureContent   decimal.Decimal `json:"moisture_content"`
	WarehouseLocation string          `json:"warehouse_location"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	ReceivedAt        time.Time       `json:"received_at"`
	ExpiryAlertDate   *time.Time      `json:"expiry_alert_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	IsLowStock        bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockLotListResponse lista paginada de lotes.
type StockLotListResponse struct {
	Items []StockLotResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockMovementResponse salida de un movimiento del libro.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	StockID      string          `json:"stock_id"`
	Type         string          `json:"movement_type"`
	QuantityBags int64           `json:"quantity_bags"`
	QuantityTons decimal.Decimal `json:"quantity_tons"`
	OrderID      *string         `json:"order_id,omitempty"`
	Reason       string          `json:"reason"`
	PerformedBy  string          `json:"performed_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockAlertsResponse salida de GET /api/stock/alerts.
type StockAlertsResponse struct {
	LowStock     []StockLotResponse `json:"low_stock"`
	ExpiringSoon []StockLotResponse `json:"expiring_soon"`
}

// StockReport datos del reporte de stock (PDF y CLI de alertas).
type StockReport struct {
	GeneratedAt  time.Time
	TotalBags    int64
	TotalTons    decimal.Decimal
	LotsChecked  int
	StockValue   decimal.Decimal // a costo de compra
	AvgCostBag   decimal.Decimal
	LowStock     []StockLotResponse
	ExpiringSoon []StockLotResponse
	Expired      []StockLotResponse
}

// StockMutationResponse lote resultante y el movimiento que lo registró.
type StockMutationResponse struct {
	Stock    StockLotResponse      `json:"stock"`
	Movement StockMovementResponse `json:"movement"`
}
