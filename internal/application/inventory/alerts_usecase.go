package inventory

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	domaininv "github.com/jhoicas/maizepoint-api/internal/domain/inventory"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// Alerts lotes con pocos sacos y lotes cuya fecha de alerta de vencimiento cae en [hoy, hoy+ventana].
// Usa la cache si está configurada; un fallo de cache se trata como miss.
func (uc *StockUseCase) Alerts(ctx context.Context) (*dto.StockAlertsResponse, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	low, err := uc.lotRepo.ListLowStock(ctx, uc.cfg.LowThresholdBags)
	if err != nil {
		return nil, err
	}
	today := startOfDay(uc.now())
	expiring, err := uc.lotRepo.ListExpiringBetween(ctx, today, today.AddDate(0, 0, uc.cfg.ExpiryWindowDays))
	if err != nil {
		return nil, err
	}

	out := &dto.StockAlertsResponse{
		LowStock:     toLotResponses(low, uc.cfg.LowThresholdBags),
		ExpiringSoon: toLotResponses(expiring, uc.cfg.LowThresholdBags),
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, out)
	}
	return out, nil
}

// Report resumen para el PDF y el comando de alertas: totales, bajo stock, por vencer y vencidos.
func (uc *StockUseCase) Report(ctx context.Context) (*dto.StockReport, error) {
	now := uc.now()
	lots, err := uc.lotRepo.List(ctx, repository.StockLotFilter{})
	if err != nil {
		return nil, err
	}
	active := make([]*entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.QuantityBags > 0 {
			active = append(active, l)
		}
	}
	bags, tons := sumLots(active)
	value := domaininv.Value(active)

	low, err := uc.lotRepo.ListLowStock(ctx, uc.cfg.LowThresholdBags)
	if err != nil {
		return nil, err
	}
	today := startOfDay(now)
	expiring, err := uc.lotRepo.ListExpiringBetween(ctx, today, today.AddDate(0, 0, uc.cfg.ExpiryWindowDays))
	if err != nil {
		return nil, err
	}
	expired, err := uc.lotRepo.ListExpiredBefore(ctx, today)
	if err != nil {
		return nil, err
	}

	return &dto.StockReport{
		GeneratedAt:  now,
		TotalBags:    bags,
		TotalTons:    tons,
		LotsChecked:  len(active),
		StockValue:   value.TotalValue,
		AvgCostBag:   value.AvgCostPerBag,
		LowStock:     toLotResponses(low, uc.cfg.LowThresholdBags),
		ExpiringSoon: toLotResponses(expiring, uc.cfg.LowThresholdBags),
		Expired:      toLotResponses(expired, uc.cfg.LowThresholdBags),
	}, nil
}
