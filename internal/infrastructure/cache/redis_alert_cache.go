// Package cache guarda en Redis las alertas de stock calculadas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// AlertsKey clave única; las alertas no dependen del usuario.
const AlertsKey = "maizepoint:stock:alerts"

var _ ports.AlertCache = (*RedisAlertCache)(nil)

// RedisAlertCache implementa ports.AlertCache. Cualquier error de Redis se registra y se trata como miss.
type RedisAlertCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisAlertCache crea la cache con el TTL dado (30s si es <= 0).
func NewRedisAlertCache(client redis.UniversalClient, ttl time.Duration, log *logger.Logger) *RedisAlertCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisAlertCache{client: client, ttl: ttl, log: log}
}

func (c *RedisAlertCache) Get(ctx context.Context) (*dto.StockAlertsResponse, bool) {
	raw, err := c.client.Get(ctx, AlertsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("leer alertas de cache")
		}
		return nil, false
	}
	var out dto.StockAlertsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn().Err(err).Msg("alertas en cache corruptas")
		return nil, false
	}
	return &out, true
}

func (c *RedisAlertCache) Set(ctx context.Context, alerts *dto.StockAlertsResponse) {
	if alerts == nil {
		return
	}
	raw, err := json.Marshal(alerts)
	if err != nil {
		c.log.Warn().Err(err).Msg("serializar alertas")
		return
	}
	if err := c.client.Set(ctx, AlertsKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("guardar alertas en cache")
	}
}

func (c *RedisAlertCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, AlertsKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidar alertas en cache")
	}
}
