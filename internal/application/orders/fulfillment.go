package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	domaininv "github.com/jhoicas/maizepoint-api/internal/domain/inventory"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// FulfillmentUseCase ciclo de vida de las órdenes: creación, aprobación con descuento FIFO,
// cancelación y cambio manual de estado.
//
// La aprobación es atómica: bloquea la orden y los lotes del producto (SELECT FOR UPDATE),
// verifica stock, descuenta lote por lote y registra un movimiento por lote en la misma tx.
// Notificaciones y métricas van después del commit y nunca revierten nada.
type FulfillmentUseCase struct {
	txRunner     inventory.TxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	notifier     ports.Notifier
	metrics      ports.Metrics
	cache        ports.AlertCache
	log          *logger.Logger
	now          func() time.Time
}

// Option configura el caso de uso.
type Option func(*FulfillmentUseCase)

// WithMetrics reporta aprobaciones y fallos.
func WithMetrics(m ports.Metrics) Option {
	return func(uc *FulfillmentUseCase) { uc.metrics = m }
}

// WithAlertCache invalida la cache de alertas tras descontar stock.
func WithAlertCache(c ports.AlertCache) Option {
	return func(uc *FulfillmentUseCase) { uc.cache = c }
}

// WithClock reloj para tests.
func WithClock(now func() time.Time) Option {
	return func(uc *FulfillmentUseCase) { uc.now = now }
}

// NewFulfillmentUseCase construye el orquestador.
func NewFulfillmentUseCase(
	txRunner inventory.TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	notifier ports.Notifier,
	log *logger.Logger,
	opts ...Option,
) *FulfillmentUseCase {
	uc := &FulfillmentUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		metrics:      ports.NoopMetrics{},
		log:          log,
		now:          time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// Create registra una orden PENDING para el cliente autenticado.
func (uc *FulfillmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor.Role != entity.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	customer, err := uc.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.IsActive {
		return nil, domain.ErrForbidden
	}
	in.QuantityTons = in.QuantityTons.Round(entity.TonsPrecision)
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsAvailable {
		return nil, fmt.Errorf("%w: el producto %s no está disponible", domain.ErrInvalidInput, product.Name)
	}

	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		OrderNumber:     entity.NewOrderNumber(),
		CustomerID:      customer.ID,
		ProductID:       product.ID,
		QuantityBags:    in.QuantityBags,
		QuantityTons:    in.QuantityTons,
		UnitPrice:       in.UnitPrice,
		DeliveryMethod:  in.DeliveryMethod,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		DeliveryDate:    in.DeliveryDate,
		PaymentOption:   in.PaymentOption,
		Status:          entity.OrderStatusPending,
		CustomerNotes:   in.CustomerNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.OrderNumber).
		Str("product_id", order.ProductID).
		Int64("bags", order.QuantityBags).
		Str("actor", actor.UserID).
		Msg("orden creada")
	uc.notify(ctx, order, ports.TemplateOrderCreated, customer)
	out := ToOrderResponse(order)
	return &out, nil
}

func validateCreate(in dto.CreateOrderRequest) error {
	if in.ProductID == "" || in.QuantityBags <= 0 || !in.QuantityTons.IsPositive() || !in.UnitPrice.IsPositive() {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidDeliveryMethod(in.DeliveryMethod) || !entity.IsValidPaymentOption(in.PaymentOption) {
		return domain.ErrInvalidInput
	}
	if in.DeliveryMethod == entity.DeliveryDelivery && strings.TrimSpace(in.DeliveryAddress) == "" {
		return fmt.Errorf("%w: delivery_address es obligatorio para entregas a domicilio", domain.ErrInvalidInput)
	}
	return nil
}

// Approve aprueba una orden PENDING y descuenta su cantidad del stock en orden FIFO.
// Errores: ErrNotFound, ErrInvalidState (no PENDING), *InsufficientStockError. En cualquier
// fallo no queda ningún lote descontado ni movimiento registrado.
func (uc *FulfillmentUseCase) Approve(ctx context.Context, orderID string, actor entity.Actor) (*dto.ApproveOrderResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}

	var order *entity.Order
	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: solo se aprueban órdenes PENDING (orden %s en %s)", domain.ErrInvalidState, o.OrderNumber, o.Status)
		}

		ledger := inventory.NewTxLedger(repos)
		lots, err := ledger.LockAvailable(ctx, o.ProductID)
		if err != nil {
			return err
		}
		available, err := ledger.SumAvailable(ctx, o.ProductID)
		if err != nil {
			return err
		}
		if available < o.QuantityBags {
			return &domain.InsufficientStockError{Available: available, Required: o.QuantityBags}
		}

		allocs, err := domaininv.AllocateFIFO(lots, o.QuantityBags, o.QuantityTons)
		if err != nil {
			return err
		}
		orderRef := o.ID
		reason := fmt.Sprintf("Order %s approved", o.OrderNumber)
		for _, a := range allocs {
			_, mov, err := ledger.Deduct(ctx, a.Lot, a.Bags, a.Tons, inventory.MovementMeta{
				Type:        entity.MovementDeduction,
				OrderID:     &orderRef,
				Reason:      reason,
				PerformedBy: actor.UserID,
			})
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}

		now := uc.now()
		approver := actor.UserID
		o.Status = entity.OrderStatusProcessing
		o.ApprovedBy = &approver
		o.ApprovedAt = &now
		o.UpdatedAt = now
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		uc.metrics.ApprovalFailed(failureReason(err))
		uc.log.Warn().Err(err).Str("order", orderID).Str("actor", actor.UserID).Msg("aprobación rechazada")
		return nil, err
	}

	uc.metrics.OrderApproved(order.ProductID, order.QuantityBags)
	for _, m := range movements {
		uc.metrics.MovementRecorded(m.Type)
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
	uc.log.Info().
		Str("order_id", order.OrderNumber).
		Str("product_id", order.ProductID).
		Int64("bags", order.QuantityBags).
		Int("lots", len(movements)).
		Str("actor", actor.UserID).
		Msg("orden aprobada y stock descontado")
	uc.notify(ctx, order, ports.TemplateOrderStatusChanged, nil)

	out := &dto.ApproveOrderResponse{
		Message:   "Order approved and stock deducted successfully.",
		Order:     ToOrderResponse(order),
		Movements: make([]dto.StockMovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, inventory.ToMovementResponse(m))
	}
	return out, nil
}

// Cancel pasa la orden a CANCELLED. El stock ya descontado no se repone.
// Admin y staff cancelan cualquier orden; un cliente solo las suyas.
func (uc *FulfillmentUseCase) Cancel(ctx context.Context, orderID string, actor entity.Actor, adminNotes string) (*dto.OrderResponse, error) {
	ownerID, err := uc.ownerScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil || (ownerID != "" && o.CustomerID != ownerID) {
			return domain.ErrNotFound
		}
		if o.IsTerminal() {
			return fmt.Errorf("%w: no se puede cancelar una orden %s", domain.ErrInvalidState, o.Status)
		}
		o.Status = entity.OrderStatusCancelled
		o.AppendAdminNotes(adminNotes)
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.OrderNumber).Str("actor", actor.UserID).Msg("orden cancelada")
	uc.notify(ctx, order, ports.TemplateOrderStatusChanged, nil)
	out := ToOrderResponse(order)
	return &out, nil
}

// UpdateStatus cambio manual de estado (solo admin/staff). No valida el grafo de transiciones
// ni toca stock; solo impide salir de un estado terminal.
func (uc *FulfillmentUseCase) UpdateStatus(ctx context.Context, orderID, newStatus string, actor entity.Actor, adminNotes string) (*dto.OrderResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}
	newStatus = strings.ToUpper(strings.TrimSpace(newStatus))
	if !entity.IsValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	var order *entity.Order
	var previous string
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.IsTerminal() {
			return fmt.Errorf("%w: la orden %s ya está %s", domain.ErrInvalidState, o.OrderNumber, o.Status)
		}
		previous = o.Status
		o.Status = newStatus
		o.AppendAdminNotes(adminNotes)
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.OrderNumber).
		Str("from", previous).
		Str("to", order.Status).
		Str("actor", actor.UserID).
		Msg("estado de orden actualizado")
	uc.notify(ctx, order, ports.TemplateOrderStatusChanged, nil)
	out := ToOrderResponse(order)
	return &out, nil
}

// GetByID devuelve una orden; un cliente solo ve las suyas.
func (uc *FulfillmentUseCase) GetByID(ctx context.Context, orderID string, actor entity.Actor) (*dto.OrderResponse, error) {
	ownerID, err := uc.ownerScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || (ownerID != "" && o.CustomerID != ownerID) {
		return nil, domain.ErrNotFound
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// List lista órdenes, más recientes primero; un cliente solo ve las suyas.
func (uc *FulfillmentUseCase) List(ctx context.Context, actor entity.Actor, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	ownerID, err := uc.ownerScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if ownerID != "" {
		f.CustomerID = ownerID
	}
	if f.Status != "" && !entity.IsValidOrderStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	list, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// ownerScope "" para admin/staff; el ID de perfil de cliente para un cliente.
func (uc *FulfillmentUseCase) ownerScope(ctx context.Context, actor entity.Actor) (string, error) {
	if actor.IsBackOffice() {
		return "", nil
	}
	if actor.Role != entity.RoleCustomer {
		return "", domain.ErrForbidden
	}
	c, err := uc.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.ErrForbidden
	}
	return c.ID, nil
}

// notify avisa al cliente; un fallo solo se registra.
func (uc *FulfillmentUseCase) notify(ctx context.Context, order *entity.Order, template string, customer *entity.Customer) {
	if uc.notifier == nil {
		return
	}
	if customer == nil {
		c, err := uc.customerRepo.GetByID(ctx, order.CustomerID)
		if err != nil || c == nil {
			uc.log.Warn().Err(err).Str("order_id", order.OrderNumber).Msg("cliente no encontrado para notificar")
			return
		}
		customer = c
	}
	recipient := customer.Email
	if recipient == "" {
		recipient = customer.Phone
	}
	data := map[string]any{
		"order_id":      order.OrderNumber,
		"customer_name": customer.FullName,
		"order_status":  order.Status,
		"quantity_bags": order.QuantityBags,
		"total_price":   order.TotalPrice.StringFixed(2),
	}
	if err := uc.notifier.Notify(ctx, recipient, template, data); err != nil {
		uc.log.Error().Err(err).
			Str("order_id", order.OrderNumber).
			Str("template", template).
			Msg("fallo al notificar al cliente")
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "insufficient_quantity"
	default:
		return "error"
	}
}
