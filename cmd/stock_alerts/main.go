// Command stock_alerts imprime los lotes con bajo stock, próximos a vencer y vencidos.
// Pensado para cron: sale con código 1 si hay lotes vencidos.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/postgres"
	"github.com/jhoicas/maizepoint-api/pkg/config"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "stock_alerts"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	stockUC := inventory.NewStockUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewStockLotRepository(pool),
		postgres.NewStockMovementRepository(pool),
		productRepo,
		postgres.NewFarmerRepository(pool),
		log,
		inventory.WithSettings(inventory.StockSettings{
			LowThresholdBags: cfg.Stock.LowThresholdBags,
			ExpiryWindowDays: cfg.Stock.ExpiryWindowDays,
		}),
	)

	report, err := stockUC.Report(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("calcular alertas de stock")
	}

	names := newProductNames(ctx, productRepo)
	writeReport(os.Stdout, report, names.lookup)

	if len(report.Expired) > 0 {
		pool.Close()
		os.Exit(1)
	}
}
