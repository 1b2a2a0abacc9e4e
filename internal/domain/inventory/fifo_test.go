package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/inventory"
)

var day0 = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func lot(id string, bags int64, tons string, day int) *entity.StockLot {
	return &entity.StockLot{
		ID:           id,
		ProductID:    "yellow",
		QuantityBags: bags,
		QuantityTons: decimal.RequireFromString(tons),
		ReceivedAt:   day0.AddDate(0, 0, day),
	}
}

func sumTons(allocs []inventory.Allocation) decimal.Decimal {
	s := decimal.Zero
	for _, a := range allocs {
		s = s.Add(a.Tons)
	}
	return s
}

func sumBags(allocs []inventory.Allocation) int64 {
	var s int64
	for _, a := range allocs {
		s += a.Bags
	}
	return s
}

// El lote más antiguo se agota antes de tocar el siguiente.
func TestAllocateFIFO_OrdenPorFechaDeRecepcion(t *testing.T) {
	l1 := lot("L1", 50, "2.500", 1)
	l2 := lot("L2", 80, "4.000", 5)

	// desordenados a propósito
	allocs, err := inventory.AllocateFIFO([]*entity.StockLot{l2, l1}, 60, decimal.RequireFromString("3.000"))
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, "L1", allocs[0].Lot.ID)
	assert.Equal(t, int64(50), allocs[0].Bags)
	assert.Equal(t, "L2", allocs[1].Lot.ID)
	assert.Equal(t, int64(10), allocs[1].Bags)

	assert.True(t, allocs[0].Tons.Equal(decimal.RequireFromString("2.5")), "tons L1: %s", allocs[0].Tons)
	assert.True(t, allocs[1].Tons.Equal(decimal.RequireFromString("0.5")), "tons L2: %s", allocs[1].Tons)

	// no modifica los lotes
	assert.Equal(t, int64(50), l1.QuantityBags)
	assert.Equal(t, int64(80), l2.QuantityBags)
}

func TestAllocateFIFO_EscenarioYellowMaize(t *testing.T) {
	lots := []*entity.StockLot{lot("L1", 100, "5", 1), lot("L2", 200, "10", 10)}

	allocs, err := inventory.AllocateFIFO(lots, 150, decimal.RequireFromString("7.5"))
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, int64(100), allocs[0].Bags)
	assert.Equal(t, int64(50), allocs[1].Bags)
	assert.True(t, allocs[0].Tons.Equal(decimal.NewFromInt(5)))
	assert.True(t, allocs[1].Tons.Equal(decimal.RequireFromString("2.5")))
}

// Conservación: la suma de toneladas coincide exactamente aunque el prorrateo no sea exacto.
func TestAllocateFIFO_RedondeoAcumulado(t *testing.T) {
	lots := []*entity.StockLot{
		lot("A", 1, "1", 1),
		lot("B", 1, "1", 2),
		lot("C", 5, "5", 3),
	}
	required := decimal.RequireFromString("1.000")

	allocs, err := inventory.AllocateFIFO(lots, 3, required)
	require.NoError(t, err)
	require.Len(t, allocs, 3)

	// acumulados 0.333, 0.667, 1.000
	assert.True(t, allocs[0].Tons.Equal(decimal.RequireFromString("0.333")), "got %s", allocs[0].Tons)
	assert.True(t, allocs[1].Tons.Equal(decimal.RequireFromString("0.334")), "got %s", allocs[1].Tons)
	assert.True(t, allocs[2].Tons.Equal(decimal.RequireFromString("0.333")), "got %s", allocs[2].Tons)

	assert.Equal(t, int64(3), sumBags(allocs))
	assert.True(t, sumTons(allocs).Equal(required))
}

func TestAllocateFIFO_RedondeoHalfUp(t *testing.T) {
	lots := []*entity.StockLot{lot("A", 1, "1", 1), lot("B", 7, "7", 2)}

	// 1 saco de 8 con 0.012 t → 0.0015 → 0.002
	allocs, err := inventory.AllocateFIFO(lots, 8, decimal.RequireFromString("0.012"))
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.True(t, allocs[0].Tons.Equal(decimal.RequireFromString("0.002")), "got %s", allocs[0].Tons)
	assert.True(t, allocs[1].Tons.Equal(decimal.RequireFromString("0.010")), "got %s", allocs[1].Tons)
}

// Con varios lotes que redondean hacia arriba ninguna porción queda negativa.
func TestAllocateFIFO_PorcionesNoNegativas(t *testing.T) {
	lots := []*entity.StockLot{
		lot("A", 1, "0.05", 1),
		lot("B", 1, "0.05", 2),
		lot("C", 1, "0.05", 3),
		lot("D", 1, "0.05", 4),
	}
	required := decimal.RequireFromString("0.002")

	allocs, err := inventory.AllocateFIFO(lots, 4, required)
	require.NoError(t, err)
	require.Len(t, allocs, 4)
	for _, a := range allocs {
		assert.False(t, a.Tons.IsNegative(), "lote %s: %s", a.Lot.ID, a.Tons)
	}
	assert.True(t, sumTons(allocs).Equal(required))

	for _, n := range []int64{3, 7, 11, 13} {
		many := make([]*entity.StockLot, 0, n)
		for i := int64(0); i < n; i++ {
			many = append(many, lot(string(rune('a'+i)), 1, "1", int(i)))
		}
		req := decimal.RequireFromString("0.005")
		allocs, err := inventory.AllocateFIFO(many, n, req)
		require.NoError(t, err)
		for _, a := range allocs {
			assert.False(t, a.Tons.IsNegative(), "n=%d lote %s: %s", n, a.Lot.ID, a.Tons)
		}
		assert.True(t, sumTons(allocs).Equal(req), "n=%d", n)
	}
}

func TestAllocateFIFO_IgnoraLotesVacios(t *testing.T) {
	lots := []*entity.StockLot{lot("viejo", 0, "0", 0), lot("nuevo", 10, "0.5", 3)}

	allocs, err := inventory.AllocateFIFO(lots, 10, decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "nuevo", allocs[0].Lot.ID)
}

func TestAllocateFIFO_CeroSacosEsNoOp(t *testing.T) {
	allocs, err := inventory.AllocateFIFO([]*entity.StockLot{lot("A", 10, "1", 1)}, 0, decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, allocs)
}

func TestAllocateFIFO_StockInsuficiente(t *testing.T) {
	lots := []*entity.StockLot{lot("A", 100, "5", 1), lot("B", 200, "10", 10)}

	allocs, err := inventory.AllocateFIFO(lots, 400, decimal.NewFromInt(20))
	require.Error(t, err)
	assert.Nil(t, allocs)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, int64(300), ise.Available)
	assert.Equal(t, int64(400), ise.Required)
}

func TestAllocateFIFO_EmpateDeFechaPorID(t *testing.T) {
	a := lot("b-lot", 5, "1", 1)
	b := lot("a-lot", 5, "1", 1)

	allocs, err := inventory.AllocateFIFO([]*entity.StockLot{a, b}, 5, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "a-lot", allocs[0].Lot.ID)
}

func TestAllocateFIFO_EntradaNegativa(t *testing.T) {
	_, err := inventory.AllocateFIFO(nil, -1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
