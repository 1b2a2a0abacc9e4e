package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusDispatched = "DISPATCHED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// Métodos de entrega.
const (
	DeliveryPickup   = "PICKUP"
	DeliveryDelivery = "DELIVERY"
)

// Opciones de pago.
const (
	PaymentCash         = "CASH"
	PaymentBankTransfer = "BANK_TRANSFER"
	PaymentMobileMoney  = "MOBILE_MONEY"
)

// Order representa una solicitud de compra de un cliente.
// TotalPrice = UnitPrice × QuantityBags; se recalcula en cada guardado.
type Order struct {
	ID              string
	OrderNumber     string // ORD + 10 hex en mayúsculas, único
	CustomerID      string
	ProductID       string
	QuantityBags    int64
	QuantityTons    decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	DeliveryMethod  string
	DeliveryAddress string
	DeliveryDate    *time.Time
	PaymentOption   string
	Status          string
	CustomerNotes   string
	AdminNotes      string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrderNumber genera el identificador visible de la orden.
func NewOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("ORD%s", strings.ToUpper(hex[:10]))
}

// RecalculateTotal aplica el invariante TotalPrice = UnitPrice × QuantityBags.
func (o *Order) RecalculateTotal() {
	o.TotalPrice = o.UnitPrice.Mul(decimal.NewFromInt(o.QuantityBags))
}

// IsTerminal indica si la orden ya no admite transiciones (DELIVERED o CANCELLED).
func (o *Order) IsTerminal() bool {
	return IsTerminalOrderStatus(o.Status)
}

// AppendAdminNotes agrega notas administrativas sin perder las anteriores.
func (o *Order) AppendAdminNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return
	}
	if o.AdminNotes == "" {
		o.AdminNotes = notes
		return
	}
	o.AdminNotes = o.AdminNotes + "\n" + notes
}

// IsTerminalOrderStatus DELIVERED y CANCELLED son estados finales.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsValidOrderStatus valida un valor de estado.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDispatched,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidDeliveryMethod valida el método de entrega.
func IsValidDeliveryMethod(s string) bool {
	return s == DeliveryPickup || s == DeliveryDelivery
}

// IsValidPaymentOption valida la opción de pago.
func IsValidPaymentOption(s string) bool {
	switch s {
	case PaymentCash, PaymentBankTransfer, PaymentMobileMoney:
		return true
	}
	return false
}
