package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/cache"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// Redis caído: la cache se comporta como un miss permanente y no entra en pánico.
func TestRedisAlertCache_RedisNoDisponible(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := cache.NewRedisAlertCache(client, 0, logger.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c.Set(ctx, &dto.StockAlertsResponse{})
	got, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
}
