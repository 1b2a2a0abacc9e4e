// Package notification entrega avisos al cliente fuera de la transacción.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/maizepoint-api/internal/application/ports"
)

var _ ports.Notifier = (*KafkaNotifier)(nil)

// Event mensaje publicado en el topic de notificaciones; lo consume el servicio de correo/SMS.
type Event struct {
	Recipient  string         `json:"recipient"`
	Template   string         `json:"template"`
	Data       map[string]any `json:"data"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// KafkaNotifier publica cada notificación como un mensaje JSON.
type KafkaNotifier struct {
	writer *kafka.Writer
	now    func() time.Time
}

// NewKafkaNotifier crea el writer hacia los brokers y topic indicados.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaNotifier{writer: writer, now: time.Now}
}

// Notify publica el evento. La clave es el número de orden (mismo orden por orden) o el destinatario.
func (n *KafkaNotifier) Notify(ctx context.Context, recipient, template string, data map[string]any) error {
	msg, err := newMessage(recipient, template, data, n.now())
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar notificación %s: %w", template, err)
	}
	return nil
}

// Close libera el writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func newMessage(recipient, template string, data map[string]any, now time.Time) (kafka.Message, error) {
	if recipient == "" {
		return kafka.Message{}, fmt.Errorf("notificación %s sin destinatario", template)
	}
	value, err := json.Marshal(Event{Recipient: recipient, Template: template, Data: data, OccurredAt: now})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("serializar notificación: %w", err)
	}
	key := recipient
	if id, ok := data["order_id"].(string); ok && id != "" {
		key = id
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "template", Value: []byte(template)},
		},
	}, nil
}
