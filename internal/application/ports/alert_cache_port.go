package ports

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
)

// AlertCache cache de corta duración para GET /api/stock/alerts.
// Un fallo de cache nunca es un error para el llamador: Get devuelve (nil, false).
type AlertCache interface {
	Get(ctx context.Context) (*dto.StockAlertsResponse, bool)
	Set(ctx context.Context, alerts *dto.StockAlertsResponse)
	Invalidate(ctx context.Context)
}
