package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders (cliente).
type CreateOrderRequest struct {
	ProductID       string          `json:"product_id"`
	QuantityBags    int64           `json:"quantity_bags"`
	QuantityTons    decimal.Decimal `json:"quantity_tons"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DeliveryMethod  string          `json:"delivery_method"` // PICKUP, DELIVERY
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	PaymentOption   string          `json:"payment_option"` // CASH, BANK_TRANSFER, MOBILE_MONEY
	CustomerNotes   string          `json:"customer_notes,omitempty"`
}

// CancelOrderRequest body para POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_id"`
	CustomerID      string          `json:"customer_id"`
	ProductID       string          `json:"product_id"`
	QuantityBags    int64           `json:"quantity_bags"`
	QuantityTons    decimal.Decimal `json:"quantity_tons"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	DeliveryMethod  string          `json:"delivery_method"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	PaymentOption   string          `json:"payment_option"`
	Status          string          `json:"order_status"`
	CustomerNotes   string          `json:"customer_notes,omitempty"`
	AdminNotes      string          `json:"admin_notes,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ApproveOrderResponse orden aprobada más los movimientos generados (uno por lote tocado).
type ApproveOrderResponse struct {
	Message   string                  `json:"message"`
	Order     OrderResponse           `json:"order"`
	Movements []StockMovementResponse `json:"movements"`
}
