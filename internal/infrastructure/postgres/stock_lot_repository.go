package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

const lotColumns = `id, product_id, quantity_bags, quantity_tons, source_type, farmer_id, quality_grade,
	moisture_content, warehouse_location, cost_price, received_at, expiry_alert_date, notes, created_at, updated_at`

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

func scanLot(row scanner) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.QuantityBags, &l.QuantityTons, &l.SourceType, &l.FarmerID, &l.QualityGrade,
		&l.MoistureContent, &l.WarehouseLocation, &l.CostPrice, &l.ReceivedAt, &l.ExpiryAlertDate, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *StockLotRepo) queryLots(ctx context.Context, op, query string, args ...any) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Create persiste un lote nuevo.
func (r *StockLotRepo) Create(ctx context.Context, l *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ProductID, l.QuantityBags, l.QuantityTons, l.SourceType, l.FarmerID, l.QualityGrade,
		l.MoistureContent, l.WarehouseLocation, l.CostPrice, l.ReceivedAt, l.ExpiryAlertDate, l.Notes,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; (nil, nil) si no existe.
func (r *StockLotRepo) GetByID(ctx context.Context, id string) (*entity.StockLot, error) {
	return r.getOne(ctx, `SELECT `+lotColumns+` FROM stock_lots WHERE id = $1`, id)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *StockLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLot, error) {
	return r.getOne(ctx, `SELECT `+lotColumns+` FROM stock_lots WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockLotRepo) getOne(ctx context.Context, query, id string) (*entity.StockLot, error) {
	l, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return l, nil
}

// ListAvailableForUpdate lotes con sacos del producto en orden FIFO, bloqueados hasta el fin de la tx.
// El orden del bloqueo es el mismo en todas las aprobaciones, así no hay deadlocks entre ellas.
func (r *StockLotRepo) ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1 AND quantity_bags > 0
		ORDER BY received_at, id
		FOR UPDATE`
	return r.queryLots(ctx, "list available lots", query, productID)
}

// SumAvailable total de sacos del producto.
func (r *StockLotRepo) SumAvailable(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_bags), 0)::BIGINT FROM stock_lots WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum available: %w", err)
	}
	return total, nil
}

// UpdateQuantities guarda sacos y toneladas del lote.
func (r *StockLotRepo) UpdateQuantities(ctx context.Context, l *entity.StockLot) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_lots SET quantity_bags = $2, quantity_tons = $3, updated_at = $4 WHERE id = $1`,
		l.ID, l.QuantityBags, l.QuantityTons, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLocation guarda la ubicación del lote.
func (r *StockLotRepo) UpdateLocation(ctx context.Context, l *entity.StockLot) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_lots SET warehouse_location = $2, updated_at = $3 WHERE id = $1`,
		l.ID, l.WarehouseLocation, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsForProduct indica si el producto tiene algún lote (el seed no duplica stock).
func (r *StockLotRepo) ExistsForProduct(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stock_lots WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists lots: %w", err)
	}
	return exists, nil
}

// List lotes filtrados, más recientes primero. Limit 0 = sin límite.
func (r *StockLotRepo) List(ctx context.Context, f repository.StockLotFilter) ([]*entity.StockLot, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.WarehouseLocation != "" {
		add("warehouse_location = $%d", f.WarehouseLocation)
	}
	if f.SourceType != "" {
		add("source_type = $%d", f.SourceType)
	}
	query := `SELECT ` + lotColumns + ` FROM stock_lots`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY received_at DESC, id"
	query, args = paginate(query, args, f.Limit, f.Offset)
	return r.queryLots(ctx, "list lots", query, args...)
}

// ListLowStock lotes con menos sacos que el umbral (incluye los agotados).
func (r *StockLotRepo) ListLowStock(ctx context.Context, thresholdBags int64) ([]*entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE quantity_bags < $1 ORDER BY quantity_bags, id`
	return r.queryLots(ctx, "list low stock", query, thresholdBags)
}

// ListExpiringBetween lotes con fecha de alerta en [from, to].
func (r *StockLotRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM stock_lots
		WHERE expiry_alert_date >= $1::date AND expiry_alert_date <= $2::date
		ORDER BY expiry_alert_date, id`
	return r.queryLots(ctx, "list expiring", query, from, to)
}

// ListExpiredBefore lotes con fecha de alerta anterior a date.
func (r *StockLotRepo) ListExpiredBefore(ctx context.Context, date time.Time) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM stock_lots
		WHERE expiry_alert_date < $1::date
		ORDER BY expiry_alert_date, id`
	return r.queryLots(ctx, "list expired", query, date)
}
