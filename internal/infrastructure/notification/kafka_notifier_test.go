package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

func TestNewMessage_ClavePorOrden(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	msg, err := newMessage("esi@example.com", ports.TemplateOrderStatusChanged, map[string]any{
		"order_id":     "ORD0A1B2C3D4E",
		"order_status": "PROCESSING",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "ORD0A1B2C3D4E", string(msg.Key))
	assert.Equal(t, now, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ports.TemplateOrderStatusChanged, string(msg.Headers[0].Value))

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "esi@example.com", ev.Recipient)
	assert.Equal(t, "PROCESSING", ev.Data["order_status"])
}

func TestNewMessage_SinOrdenUsaDestinatario(t *testing.T) {
	msg, err := newMessage("+233200000000", ports.TemplateOrderCreated, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "+233200000000", string(msg.Key))
}

func TestNewMessage_SinDestinatario(t *testing.T) {
	_, err := newMessage("", ports.TemplateOrderCreated, nil, time.Now())
	assert.Error(t, err)
}

func TestLogNotifier_NuncaFalla(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.NoError(t, n.Notify(context.Background(), "x@example.com", ports.TemplateOrderCreated, map[string]any{"a": 1}))
}
