package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// StockUseCase operaciones manuales sobre lotes: recepción, deducción, traslado y consultas.
// Toda mutación pasa por el Ledger dentro de una transacción (TxRunner).
type StockUseCase struct {
	txRunner     TxRunner
	lotRepo      repository.StockLotRepository
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	farmerRepo   repository.FarmerRepository
	cache        ports.AlertCache
	metrics      ports.Metrics
	log          *logger.Logger
	cfg          StockSettings
	now          func() time.Time
}

// StockSettings umbrales para alertas y para is_low_stock.
type StockSettings struct {
	LowThresholdBags int64
	ExpiryWindowDays int
}

// DefaultStockSettings umbral de 100 sacos y ventana de 30 días.
func DefaultStockSettings() StockSettings {
	return StockSettings{LowThresholdBags: entity.LowStockThresholdBags, ExpiryWindowDays: 30}
}

// StockOption configura el caso de uso.
type StockOption func(*StockUseCase)

// WithAlertCache activa la cache de alertas.
func WithAlertCache(c ports.AlertCache) StockOption {
	return func(uc *StockUseCase) { uc.cache = c }
}

// WithMetrics reporta movimientos registrados.
func WithMetrics(m ports.Metrics) StockOption {
	return func(uc *StockUseCase) { uc.metrics = m }
}

// WithSettings sobreescribe umbrales.
func WithSettings(s StockSettings) StockOption {
	return func(uc *StockUseCase) { uc.cfg = s }
}

// WithClock reloj para tests.
func WithClock(now func() time.Time) StockOption {
	return func(uc *StockUseCase) { uc.now = now }
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	lotRepo repository.StockLotRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	farmerRepo repository.FarmerRepository,
	log *logger.Logger,
	opts ...StockOption,
) *StockUseCase {
	uc := &StockUseCase{
		txRunner:     txRunner,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		farmerRepo:   farmerRepo,
		metrics:      ports.NoopMetrics{},
		log:          log,
		cfg:          DefaultStockSettings(),
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

// Receive registra la entrada de un lote (compra en mercado o entrega de agricultor).
func (uc *StockUseCase) Receive(ctx context.Context, actor entity.Actor, in dto.ReceiveStockRequest) (*dto.StockMutationResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var farmerID *string
	if in.SourceType == entity.SourceFarmer {
		if in.FarmerID == "" {
			return nil, domain.ErrInvalidInput
		}
		farmer, err := uc.farmerRepo.GetByID(ctx, in.FarmerID)
		if err != nil {
			return nil, err
		}
		if farmer == nil || !farmer.CanSupply() {
			return nil, domain.ErrInvalidInput
		}
		farmerID = &farmer.ID
	}

	input := ReceiveInput{
		ProductID:         product.ID,
		QuantityBags:      in.QuantityBags,
		QuantityTons:      in.QuantityTons,
		SourceType:        in.SourceType,
		FarmerID:          farmerID,
		QualityGrade:      in.QualityGrade,
		MoistureContent:   in.MoistureContent,
		WarehouseLocation: in.WarehouseLocation,
		CostPrice:         in.CostPrice,
		ExpiryAlertDate:   in.ExpiryAlertDate,
		Notes:             in.Notes,
	}
	input.ReceivedAt = uc.now()
	if in.ReceivedAt != nil {
		input.ReceivedAt = *in.ReceivedAt
	}

	var lot *entity.StockLot
	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		lot, mov, err = NewTxLedger(repos).Receive(ctx, input, MovementMeta{PerformedBy: actor.UserID})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, mov)
	uc.log.Info().
		Str("lot_id", lot.ID).
		Str("product_id", lot.ProductID).
		Int64("bags", lot.QuantityBags).
		Str("source", lot.SourceType).
		Str("actor", actor.UserID).
		Msg("lote recibido")
	return uc.mutationResponse(lot, mov), nil
}

// Deduct descuenta manualmente de un lote (DEDUCTION o DAMAGE).
func (uc *StockUseCase) Deduct(ctx context.Context, actor entity.Actor, in dto.DeductStockRequest) (*dto.StockMutationResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}
	if in.StockID == "" {
		return nil, domain.ErrInvalidInput
	}
	movType := strings.ToUpper(strings.TrimSpace(in.Type))
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "Manual deduction"
	}

	var lot *entity.StockLot
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		current, err := repos.Lots.GetForUpdate(ctx, in.StockID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		lot, mov, err = NewTxLedger(repos).Deduct(ctx, current, in.QuantityBags, in.QuantityTons, MovementMeta{
			Type:        movType,
			Reason:      reason,
			PerformedBy: actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, mov)
	uc.log.Info().
		Str("lot_id", lot.ID).
		Str("type", mov.Type).
		Int64("bags", in.QuantityBags).
		Str("actor", actor.UserID).
		Msg("deducción manual de stock")
	return uc.mutationResponse(lot, mov), nil
}

// Transfer mueve un lote a otra ubicación de bodega.
func (uc *StockUseCase) Transfer(ctx context.Context, actor entity.Actor, in dto.TransferStockRequest) (*dto.StockMutationResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}
	if in.StockID == "" {
		return nil, domain.ErrInvalidInput
	}

	var lot *entity.StockLot
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		current, err := repos.Lots.GetForUpdate(ctx, in.StockID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		lot, mov, err = NewTxLedger(repos).Transfer(ctx, current, in.NewLocation, MovementMeta{
			Reason:      in.Reason,
			PerformedBy: actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, mov)
	uc.log.Info().
		Str("lot_id", lot.ID).
		Str("location", lot.WarehouseLocation).
		Str("actor", actor.UserID).
		Msg("traslado de lote")
	return uc.mutationResponse(lot, mov), nil
}

// GetByID devuelve un lote.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockLotResponse, error) {
	lot, err := uc.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	out := ToStockLotResponse(lot, uc.cfg.LowThresholdBags)
	return &out, nil
}

// List lista lotes con filtros y paginación.
func (uc *StockUseCase) List(ctx context.Context, f repository.StockLotFilter) (*dto.StockLotListResponse, error) {
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset
	lots, err := uc.lotRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.StockLotListResponse{
		Items: toLotResponses(lots, uc.cfg.LowThresholdBags),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// ListMovements historial del libro, más reciente primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) (*dto.StockMovementListResponse, error) {
	if f.Type != "" && !entity.IsValidMovementType(f.Type) {
		return nil, domain.ErrInvalidInput
	}
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset
	movs, err := uc.movementRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func (uc *StockUseCase) afterMutation(ctx context.Context, mov *entity.StockMovement) {
	uc.metrics.MovementRecorded(mov.Type)
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

func (uc *StockUseCase) mutationResponse(lot *entity.StockLot, mov *entity.StockMovement) *dto.StockMutationResponse {
	return &dto.StockMutationResponse{
		Stock:    ToStockLotResponse(lot, uc.cfg.LowThresholdBags),
		Movement: ToMovementResponse(mov),
	}
}

// startOfDay fecha local sin hora.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sumLots(lots []*entity.StockLot) (int64, decimal.Decimal) {
	var bags int64
	tons := decimal.Zero
	for _, l := range lots {
		bags += l.QuantityBags
		tons = tons.Add(l.QuantityTons)
	}
	return bags, tons
}
