package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	got := inventory.WeightedAverageCost(decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.NewFromInt(300), decimal.NewFromInt(240))
	assert.True(t, got.Equal(decimal.NewFromInt(230)), "got %s", got)

	assert.True(t, inventory.WeightedAverageCost(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5)).IsZero())
}

func TestValue(t *testing.T) {
	a := lot("A", 100, "5", 1)
	a.CostPrice = decimal.NewFromInt(200)
	b := lot("B", 300, "15", 2)
	b.CostPrice = decimal.NewFromInt(240)
	vacio := lot("C", 0, "0", 3)
	vacio.CostPrice = decimal.NewFromInt(999)

	v := inventory.Value([]*entity.StockLot{a, b, vacio, nil})
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(92000)), "total %s", v.TotalValue)
	assert.True(t, v.AvgCostPerBag.Equal(decimal.NewFromInt(230)), "promedio %s", v.AvgCostPerBag)

	empty := inventory.Value(nil)
	assert.True(t, empty.TotalValue.IsZero())
	assert.True(t, empty.AvgCostPerBag.IsZero())
}
