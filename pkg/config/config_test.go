package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "maizepoint-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int64(100), cfg.Stock.LowThresholdBags)
	assert.Equal(t, 30, cfg.Stock.ExpiryWindowDays)
	assert.Equal(t, 30*time.Second, cfg.Redis.AlertsCacheTTL)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "order-notifications", cfg.Kafka.NotificationsTopic)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("STOCK_LOW_THRESHOLD_BAGS", "250")
	t.Setenv("ALERTS_CACHE_TTL_SECONDS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, int64(250), cfg.Stock.LowThresholdBags)
	assert.Equal(t, 5*time.Second, cfg.Redis.AlertsCacheTTL)
}

func TestLoad_ProductionExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "maize", Password: "p@ss:word", DBName: "mp", SSLMode: "disable"}
	assert.Equal(t, "postgres://maize:p%40ss%3Aword@db:5432/mp?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
