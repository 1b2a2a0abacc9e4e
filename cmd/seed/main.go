// Command seed aplica las migraciones y carga productos y lotes de ejemplo.
// Es idempotente: no duplica productos por nombre ni agrega lotes a un producto que ya tiene.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/maizepoint-api/internal/application/usecase"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/postgres"
	"github.com/jhoicas/maizepoint-api/pkg/config"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("migrations", applied).Msg("esquema al día")

	s := &seeder{
		products: usecase.NewProductUseCase(postgres.NewProductRepository(pool)),
		tx:       postgres.NewTxRunner(pool),
		log:      log,
		now:      time.Now(),
	}
	if err := s.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("datos de ejemplo listos")
}
