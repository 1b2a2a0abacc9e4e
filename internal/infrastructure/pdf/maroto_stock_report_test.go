package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/pdf"
)

func TestMarotoStockReport_GeneraPDF(t *testing.T) {
	exp := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	report := &dto.StockReport{
		GeneratedAt: time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
		TotalBags:   12500,
		TotalTons:   decimal.RequireFromString("625.000"),
		LotsChecked: 14,
		LowStock: []dto.StockLotResponse{
			{ID: "6f1c2b9e-0000-4000-8000-000000000001", WarehouseLocation: "A1", QualityGrade: "Grade A", QuantityBags: 40, QuantityTons: decimal.NewFromInt(2), IsLowStock: true},
		},
		ExpiringSoon: []dto.StockLotResponse{
			{ID: "lot-2", WarehouseLocation: "B3", QuantityBags: 300, QuantityTons: decimal.NewFromInt(15), ExpiryAlertDate: &exp},
		},
	}

	out, err := pdf.NewMarotoStockReport("Maize Point").RenderStockReport(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
