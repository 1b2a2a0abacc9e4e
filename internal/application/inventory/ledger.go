package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// Ledger es el único componente que escribe cantidades de lotes.
// Cada mutación registra su movimiento en la misma tx; si el registro falla, la mutación también.
type Ledger struct {
	lots     repository.StockLotRepository
	recorder *Recorder
	now      func() time.Time
}

// NewLedger construye el libro sobre repositorios de una misma transacción.
func NewLedger(lots repository.StockLotRepository, recorder *Recorder) *Ledger {
	return &Ledger{lots: lots, recorder: recorder, now: time.Now}
}

// NewTxLedger atajo: Ledger + Recorder sobre los repos de la tx.
func NewTxLedger(repos TxRepos) *Ledger {
	return NewLedger(repos.Lots, NewRecorder(repos.Movements))
}

// ReceiveInput datos de un lote recibido.
type ReceiveInput struct {
	ProductID         string
	QuantityBags      int64
	QuantityTons      decimal.Decimal
	SourceType        string
	FarmerID          *string
	QualityGrade      string
	MoistureContent   decimal.Decimal
	WarehouseLocation string
	CostPrice         decimal.Decimal
	ReceivedAt        time.Time
	ExpiryAlertDate   *time.Time
	Notes             string
}

// SumAvailable total de sacos del producto.
func (l *Ledger) SumAvailable(ctx context.Context, productID string) (int64, error) {
	return l.lots.SumAvailable(ctx, productID)
}

// LockAvailable bloquea y devuelve los lotes con stock del producto, más antiguo primero.
func (l *Ledger) LockAvailable(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	return l.lots.ListAvailableForUpdate(ctx, productID)
}

// Deduct descuenta sacos y toneladas de un lote y registra el movimiento (DEDUCTION o DAMAGE).
// Devuelve ErrInsufficientQuantity si alguna cantidad quedaría negativa.
// El lote recibido no se modifica; se devuelve una copia actualizada.
func (l *Ledger) Deduct(
	ctx context.Context,
	lot *entity.StockLot,
	bags int64,
	tons decimal.Decimal,
	meta MovementMeta,
) (*entity.StockLot, *entity.StockMovement, error) {
	if lot == nil {
		return nil, nil, domain.ErrNotFound
	}
	if meta.Type == "" {
		meta.Type = entity.MovementDeduction
	}
	if meta.Type != entity.MovementDeduction && meta.Type != entity.MovementDamage {
		return nil, nil, domain.ErrInvalidInput
	}
	// las columnas guardan 3 decimales; se valida lo que realmente se persiste
	tons = tons.Round(entity.TonsPrecision)
	if bags < 0 || tons.IsNegative() || (bags == 0 && tons.IsZero()) {
		return nil, nil, domain.ErrInvalidInput
	}
	if lot.QuantityBags < bags || lot.QuantityTons.LessThan(tons) {
		return nil, nil, fmt.Errorf("%w: lote %s tiene %d sacos / %s t, se piden %d / %s",
			domain.ErrInsufficientQuantity, lot.ID, lot.QuantityBags, lot.QuantityTons.StringFixed(entity.TonsPrecision),
			bags, tons.StringFixed(entity.TonsPrecision))
	}

	updated := *lot
	updated.QuantityBags -= bags
	updated.QuantityTons = lot.QuantityTons.Sub(tons)
	updated.UpdatedAt = l.now()
	if err := l.lots.UpdateQuantities(ctx, &updated); err != nil {
		return nil, nil, err
	}
	mov, err := l.recorder.Record(ctx, lot.ID, -bags, tons.Neg(), meta)
	if err != nil {
		return nil, nil, err
	}
	return &updated, mov, nil
}

// Transfer cambia la ubicación del lote; registra un TRANSFER sin cantidades.
func (l *Ledger) Transfer(
	ctx context.Context,
	lot *entity.StockLot,
	newLocation string,
	meta MovementMeta,
) (*entity.StockLot, *entity.StockMovement, error) {
	if lot == nil {
		return nil, nil, domain.ErrNotFound
	}
	newLocation = strings.TrimSpace(newLocation)
	if newLocation == "" || newLocation == lot.WarehouseLocation {
		return nil, nil, domain.ErrInvalidInput
	}
	reason := strings.TrimSpace(meta.Reason)
	if reason == "" {
		reason = "Warehouse transfer"
	}
	meta.Type = entity.MovementTransfer
	meta.Reason = fmt.Sprintf("Transfer from %s to %s: %s", lot.WarehouseLocation, newLocation, reason)

	updated := *lot
	updated.WarehouseLocation = newLocation
	updated.UpdatedAt = l.now()
	if err := l.lots.UpdateLocation(ctx, &updated); err != nil {
		return nil, nil, err
	}
	mov, err := l.recorder.Record(ctx, lot.ID, 0, decimal.Zero, meta)
	if err != nil {
		return nil, nil, err
	}
	return &updated, mov, nil
}

// Receive crea un lote nuevo y registra la entrada (ADDITION).
func (l *Ledger) Receive(ctx context.Context, in ReceiveInput, meta MovementMeta) (*entity.StockLot, *entity.StockMovement, error) {
	in.QuantityTons = in.QuantityTons.Round(entity.TonsPrecision)
	if err := validateReceive(in); err != nil {
		return nil, nil, err
	}
	now := l.now()
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}
	grade := strings.TrimSpace(in.QualityGrade)
	if grade == "" {
		grade = "Standard"
	}
	lot := &entity.StockLot{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		QuantityBags:      in.QuantityBags,
		QuantityTons:      in.QuantityTons,
		SourceType:        in.SourceType,
		FarmerID:          in.FarmerID,
		QualityGrade:      grade,
		MoistureContent:   in.MoistureContent,
		WarehouseLocation: strings.TrimSpace(in.WarehouseLocation),
		CostPrice:         in.CostPrice,
		ReceivedAt:        receivedAt,
		ExpiryAlertDate:   in.ExpiryAlertDate,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := l.lots.Create(ctx, lot); err != nil {
		return nil, nil, err
	}

	meta.Type = entity.MovementAddition
	if strings.TrimSpace(meta.Reason) == "" {
		meta.Reason = defaultReceiveReason(in.SourceType)
	}
	mov, err := l.recorder.Record(ctx, lot.ID, lot.QuantityBags, lot.QuantityTons, meta)
	if err != nil {
		return nil, nil, err
	}
	return lot, mov, nil
}

func validateReceive(in ReceiveInput) error {
	if in.ProductID == "" || strings.TrimSpace(in.WarehouseLocation) == "" {
		return domain.ErrInvalidInput
	}
	if in.QuantityBags <= 0 || !in.QuantityTons.IsPositive() {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidSourceType(in.SourceType) {
		return domain.ErrInvalidInput
	}
	if in.SourceType == entity.SourceFarmer && (in.FarmerID == nil || *in.FarmerID == "") {
		return domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.MoistureContent.IsNegative() || in.MoistureContent.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func defaultReceiveReason(source string) string {
	if source == entity.SourceFarmer {
		return "Farmer supply received"
	}
	return "Market purchase received"
}
