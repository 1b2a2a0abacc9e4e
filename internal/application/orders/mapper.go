package orders

import (
	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// ToOrderResponse convierte una orden a DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		ProductID:       o.ProductID,
		QuantityBags:    o.QuantityBags,
		QuantityTons:    o.QuantityTons,
		UnitPrice:       o.UnitPrice,
		TotalPrice:      o.TotalPrice,
		DeliveryMethod:  o.DeliveryMethod,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		PaymentOption:   o.PaymentOption,
		Status:          o.Status,
		CustomerNotes:   o.CustomerNotes,
		AdminNotes:      o.AdminNotes,
		ApprovedBy:      o.ApprovedBy,
		ApprovedAt:      o.ApprovedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
