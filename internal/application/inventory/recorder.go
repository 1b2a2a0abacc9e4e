package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// MovementMeta datos de auditoría que acompañan a un cambio de stock.
type MovementMeta struct {
	Type        string  // si está vacío, el Ledger pone el tipo por defecto de la operación
	OrderID     *string // solo en deducciones por aprobación de orden
	Reason      string
	PerformedBy string
}

// Recorder agrega registros inmutables al libro de movimientos.
type Recorder struct {
	repo repository.StockMovementRepository
	now  func() time.Time
}

// NewRecorder construye el recorder sobre el repositorio (normalmente atado a una tx).
func NewRecorder(repo repository.StockMovementRepository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// Record persiste un movimiento con los deltas indicados (con signo).
func (r *Recorder) Record(
	ctx context.Context,
	lotID string,
	bagsDelta int64,
	tonsDelta decimal.Decimal,
	meta MovementMeta,
) (*entity.StockMovement, error) {
	if lotID == "" || !entity.IsValidMovementType(meta.Type) {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		StockLotID:   lotID,
		Type:         meta.Type,
		QuantityBags: bagsDelta,
		QuantityTons: tonsDelta,
		OrderID:      meta.OrderID,
		Reason:       meta.Reason,
		PerformedBy:  meta.PerformedBy,
		CreatedAt:    r.now(),
	}
	if err := r.repo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
