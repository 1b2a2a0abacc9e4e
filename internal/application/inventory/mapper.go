package inventory

import (
	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// ToStockLotResponse convierte un lote a DTO; lowThreshold decide is_low_stock.
func ToStockLotResponse(l *entity.StockLot, lowThreshold int64) dto.StockLotResponse {
	return dto.StockLotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		QuantityBags:      l.QuantityBags,
		QuantityTons:      l.QuantityTons,
		SourceType:        l.SourceType,
		FarmerID:          l.FarmerID,
		QualityGrade:      l.QualityGrade,
		MoistureContent:   l.MoistureContent,
		WarehouseLocation: l.WarehouseLocation,
		CostPrice:         l.CostPrice,
		ReceivedAt:        l.ReceivedAt,
		ExpiryAlertDate:   l.ExpiryAlertDate,
		Notes:             l.Notes,
		IsLowStock:        l.QuantityBags < lowThreshold,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

// ToMovementResponse convierte un movimiento a DTO.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:           m.ID,
		StockID:      m.StockLotID,
		Type:         m.Type,
		QuantityBags: m.QuantityBags,
		QuantityTons: m.QuantityTons,
		OrderID:      m.OrderID,
		Reason:       m.Reason,
		PerformedBy:  m.PerformedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func toLotResponses(lots []*entity.StockLot, lowThreshold int64) []dto.StockLotResponse {
	out := make([]dto.StockLotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, ToStockLotResponse(l, lowThreshold))
	}
	return out
}
