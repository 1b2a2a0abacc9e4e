package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/application/orders"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/internal/application/usecase"
	infracache "github.com/jhoicas/maizepoint-api/internal/infrastructure/cache"
	inframetrics "github.com/jhoicas/maizepoint-api/internal/infrastructure/metrics"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/notification"
	infrapdf "github.com/jhoicas/maizepoint-api/internal/infrastructure/pdf"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/maizepoint-api/internal/interfaces/http"
	"github.com/jhoicas/maizepoint-api/pkg/config"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
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

	// Métricas: registro propio + collectors del runtime
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := inframetrics.NewCollector(registry)

	// Notificaciones: Kafka si hay brokers; si no, solo log
	var notifier ports.Notifier = notification.NewLogNotifier(log.Component("notifier"))
	if cfg.Kafka.Enabled() {
		kafkaNotifier := notification.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.NotificationsTopic).Msg("notificaciones por Kafka")
	}

	// Cache de alertas opcional
	var alertCache ports.AlertCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde; las alertas se calcularán sin cache")
		}
		alertCache = infracache.NewRedisAlertCache(redisClient, cfg.Redis.AlertsCacheTTL, log.Component("alert_cache"))
	}

	lotRepo := postgres.NewStockLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	farmerRepo := postgres.NewFarmerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockOpts := []inventory.StockOption{
		inventory.WithMetrics(collector),
		inventory.WithSettings(inventory.StockSettings{
			LowThresholdBags: cfg.Stock.LowThresholdBags,
			ExpiryWindowDays: cfg.Stock.ExpiryWindowDays,
		}),
	}
	fulfillmentOpts := []orders.Option{orders.WithMetrics(collector)}
	if alertCache != nil {
		stockOpts = append(stockOpts, inventory.WithAlertCache(alertCache))
		fulfillmentOpts = append(fulfillmentOpts, orders.WithAlertCache(alertCache))
	}

	stockUC := inventory.NewStockUseCase(txRunner, lotRepo, movementRepo, productRepo, farmerRepo, log.Component("stock"), stockOpts...)
	fulfillmentUC := orders.NewFulfillmentUseCase(txRunner, orderRepo, productRepo, customerRepo, notifier, log.Component("orders"), fulfillmentOpts...)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), collector))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Maize Point API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		StockUC:       stockUC,
		FulfillmentUC: fulfillmentUC,
		StockReport:   infrapdf.NewMarotoStockReport(cfg.App.Name),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
