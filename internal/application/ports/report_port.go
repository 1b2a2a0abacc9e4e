package ports

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
)

// StockReportRenderer genera el documento del reporte de stock.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report *dto.StockReport) ([]byte, error)
}
