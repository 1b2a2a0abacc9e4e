package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetAvailabilityRequest body para PATCH /api/products/:id/availability.
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// ProductResponse salida de un producto con su stock agregado.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PackagingSizes []string        `json:"packaging_sizes"`
	IsAvailable    bool            `json:"is_available"`
	StockBags      int64           `json:"current_stock_bags"`
	StockTons      decimal.Decimal `json:"current_stock_tons"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
