package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/memory"
)

var received = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedLot(store *memory.Store, id string, bags int64, tons string) *entity.StockLot {
	l := &entity.StockLot{
		ID:                id,
		ProductID:         "white",
		QuantityBags:      bags,
		QuantityTons:      dec(tons),
		SourceType:        entity.SourceMarketPurchase,
		QualityGrade:      "Grade A",
		WarehouseLocation: "A1",
		ReceivedAt:        received,
	}
	store.PutLot(l)
	return l
}

func TestLedger_DeductRegistraMovimientoNegativo(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 100, "5.000")
	ledger := inventory.NewTxLedger(store.Repos())

	updated, mov, err := ledger.Deduct(context.Background(), lot, 30, dec("1.5"), inventory.MovementMeta{
		Reason:      "Sacos rotos",
		PerformedBy: "staff-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(70), updated.QuantityBags)
	assert.True(t, updated.QuantityTons.Equal(dec("3.5")))
	assert.Equal(t, int64(100), lot.QuantityBags, "el lote de entrada no se modifica")

	assert.Equal(t, entity.MovementDeduction, mov.Type)
	assert.Equal(t, int64(-30), mov.QuantityBags)
	assert.True(t, mov.QuantityTons.Equal(dec("-1.5")))
	assert.Equal(t, "staff-1", mov.PerformedBy)

	persisted := store.Lot("L1")
	assert.Equal(t, int64(70), persisted.QuantityBags)
	require.Len(t, store.Movements(), 1)
}

func TestLedger_DeductDamage(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 10, "0.5")

	_, mov, err := inventory.NewTxLedger(store.Repos()).Deduct(context.Background(), lot, 2, dec("0.1"),
		inventory.MovementMeta{Type: entity.MovementDamage, Reason: "Humedad"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementDamage, mov.Type)
}

func TestLedger_DeductNoDejaCantidadNegativa(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 10, "0.5")
	ledger := inventory.NewTxLedger(store.Repos())

	_, _, err := ledger.Deduct(context.Background(), lot, 11, dec("0.5"), inventory.MovementMeta{})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	_, _, err = ledger.Deduct(context.Background(), lot, 10, dec("0.501"), inventory.MovementMeta{})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	assert.Equal(t, int64(10), store.Lot("L1").QuantityBags)
	assert.Empty(t, store.Movements())
}

// Las toneladas se redondean a 3 decimales antes de validar y de persistir.
func TestLedger_DeductRedondeaToneladas(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 10, "0.5")
	ledger := inventory.NewTxLedger(store.Repos())

	_, _, err := ledger.Deduct(context.Background(), lot, 0, dec("0.0004"), inventory.MovementMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "0.0004 t se guardaría como 0.000")
	assert.Empty(t, store.Movements())

	updated, mov, err := ledger.Deduct(context.Background(), lot, 1, dec("0.0506"), inventory.MovementMeta{})
	require.NoError(t, err)
	assert.True(t, mov.QuantityTons.Equal(dec("-0.051")), "got %s", mov.QuantityTons)
	assert.True(t, updated.QuantityTons.Equal(dec("0.449")), "got %s", updated.QuantityTons)
}

func TestLedger_DeductTipoInvalido(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 10, "0.5")

	_, _, err := inventory.NewTxLedger(store.Repos()).Deduct(context.Background(), lot, 1, dec("0.05"),
		inventory.MovementMeta{Type: entity.MovementAddition})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_TransferSoloCambiaUbicacion(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 40, "2")

	updated, mov, err := inventory.NewTxLedger(store.Repos()).Transfer(context.Background(), lot, "B7",
		inventory.MovementMeta{Reason: "Reorganización", PerformedBy: "staff-1"})
	require.NoError(t, err)

	assert.Equal(t, "B7", updated.WarehouseLocation)
	assert.Equal(t, int64(40), updated.QuantityBags)
	assert.Equal(t, entity.MovementTransfer, mov.Type)
	assert.Equal(t, int64(0), mov.QuantityBags)
	assert.True(t, mov.QuantityTons.IsZero())
	assert.Equal(t, "Transfer from A1 to B7: Reorganización", mov.Reason)
	assert.Equal(t, "B7", store.Lot("L1").WarehouseLocation)
}

func TestLedger_TransferMismaUbicacion(t *testing.T) {
	store := memory.NewStore()
	lot := seedLot(store, "L1", 40, "2")

	_, _, err := inventory.NewTxLedger(store.Repos()).Transfer(context.Background(), lot, "A1", inventory.MovementMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_ReceiveCreaLoteYAdicion(t *testing.T) {
	store := memory.NewStore()
	farmer := "farmer-1"

	lot, mov, err := inventory.NewTxLedger(store.Repos()).Receive(context.Background(), inventory.ReceiveInput{
		ProductID:         "white",
		QuantityBags:      120,
		QuantityTons:      dec("6"),
		SourceType:        entity.SourceFarmer,
		FarmerID:          &farmer,
		WarehouseLocation: "C2",
		CostPrice:         dec("250.00"),
		ReceivedAt:        received,
	}, inventory.MovementMeta{PerformedBy: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, "Standard", lot.QualityGrade)
	assert.Equal(t, received, lot.ReceivedAt)
	assert.Equal(t, entity.MovementAddition, mov.Type)
	assert.Equal(t, int64(120), mov.QuantityBags)
	assert.True(t, mov.QuantityTons.Equal(dec("6")))
	assert.Equal(t, "Farmer supply received", mov.Reason)
	assert.NotNil(t, store.Lot(lot.ID))
}

func TestLedger_ReceiveValidaEntrada(t *testing.T) {
	ledger := inventory.NewTxLedger(memory.NewStore().Repos())
	base := inventory.ReceiveInput{
		ProductID:         "white",
		QuantityBags:      10,
		QuantityTons:      dec("0.5"),
		SourceType:        entity.SourceMarketPurchase,
		WarehouseLocation: "A1",
	}

	cases := map[string]func(in *inventory.ReceiveInput){
		"sin sacos":            func(in *inventory.ReceiveInput) { in.QuantityBags = 0 },
		"toneladas cero":       func(in *inventory.ReceiveInput) { in.QuantityTons = decimal.Zero },
		"origen desconocido":   func(in *inventory.ReceiveInput) { in.SourceType = "GIFT" },
		"agricultor sin id":    func(in *inventory.ReceiveInput) { in.SourceType = entity.SourceFarmer },
		"sin ubicación":        func(in *inventory.ReceiveInput) { in.WarehouseLocation = " " },
		"humedad mayor a 100%": func(in *inventory.ReceiveInput) { in.MoistureContent = dec("101") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, _, err := ledger.Receive(context.Background(), in, inventory.MovementMeta{})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Si el libro no puede registrar el movimiento, la mutación del lote se revierte con la tx.
func TestLedger_FalloDelRecorderRevierteLaTx(t *testing.T) {
	store := memory.NewStore()
	seedLot(store, "L1", 50, "2.5")
	boom := errors.New("disco lleno")
	store.FailMovementsWith(boom)

	err := store.Run(context.Background(), func(repos inventory.TxRepos) error {
		lot, err := repos.Lots.GetForUpdate(context.Background(), "L1")
		if err != nil {
			return err
		}
		_, _, err = inventory.NewTxLedger(repos).Deduct(context.Background(), lot, 10, dec("0.5"), inventory.MovementMeta{})
		return err
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(50), store.Lot("L1").QuantityBags)
	assert.True(t, store.Lot("L1").QuantityTons.Equal(dec("2.5")))
	assert.Empty(t, store.Movements())
}
