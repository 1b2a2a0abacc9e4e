package ports

import "context"

// Plantillas de notificación al cliente.
const (
	TemplateOrderCreated       = "order_created"
	TemplateOrderStatusChanged = "order_status_changed"
)

// Notifier puerto de salida para avisar al cliente (correo, SMS, cola...).
// Se invoca después del commit; un error solo se registra en el log y nunca revierte la operación.
type Notifier interface {
	Notify(ctx context.Context, recipient, template string, data map[string]any) error
}
