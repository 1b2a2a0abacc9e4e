package notification

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier solo registra la notificación (sin Kafka configurado).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, recipient, template string, data map[string]any) error {
	n.log.Info().
		Str("recipient", recipient).
		Str("template", template).
		Interface("data", data).
		Msg("notificación al cliente")
	return nil
}
