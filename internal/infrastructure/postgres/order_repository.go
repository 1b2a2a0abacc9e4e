package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_id, product_id, quantity_bags, quantity_tons, unit_price, total_price,
	delivery_method, delivery_address, delivery_date, payment_option, status, customer_notes, admin_notes,
	approved_by, approved_at, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row scanner) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.ProductID, &o.QuantityBags, &o.QuantityTons, &o.UnitPrice,
		&o.TotalPrice, &o.DeliveryMethod, &o.DeliveryAddress, &o.DeliveryDate, &o.PaymentOption, &o.Status,
		&o.CustomerNotes, &o.AdminNotes, &o.ApprovedBy, &o.ApprovedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una orden nueva (recalcula el total).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	o.RecalculateTotal()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.CustomerID, o.ProductID, o.QuantityBags, o.QuantityTons, o.UnitPrice,
		o.TotalPrice, o.DeliveryMethod, o.DeliveryAddress, o.DeliveryDate, o.PaymentOption, o.Status,
		o.CustomerNotes, o.AdminNotes, o.ApprovedBy, o.ApprovedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update guarda estado, notas, aprobación y cantidades (recalcula el total).
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	o.RecalculateTotal()
	query := `
		UPDATE orders SET
			quantity_bags = $2, quantity_tons = $3, unit_price = $4, total_price = $5,
			delivery_method = $6, delivery_address = $7, delivery_date = $8, payment_option = $9,
			status = $10, customer_notes = $11, admin_notes = $12, approved_by = $13, approved_at = $14,
			updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.QuantityBags, o.QuantityTons, o.UnitPrice, o.TotalPrice,
		o.DeliveryMethod, o.DeliveryAddress, o.DeliveryDate, o.PaymentOption,
		o.Status, o.CustomerNotes, o.AdminNotes, o.ApprovedBy, o.ApprovedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List órdenes filtradas, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CustomerID != "" {
		add("customer_id = $%d", f.CustomerID)
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	query, args = paginate(query, args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders scan: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
