package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado tras sumar una entrada al stock (servicio de dominio).
// Nuevo = ((stock × costo) + (entrada × costoEntrada)) / (stock + entrada)
func WeightedAverageCost(stock, cost, incoming, incomingCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(incoming)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return stock.Mul(cost).Add(incoming.Mul(incomingCost)).Div(sum)
}

// Valuation valor del inventario a costo de compra.
type Valuation struct {
	TotalValue    decimal.Decimal // Σ sacos × costo por saco
	AvgCostPerBag decimal.Decimal
}

// Value valoriza los lotes con sacos; CostPrice es por saco. Montos a 2 decimales.
func Value(lots []*entity.StockLot) Valuation {
	bags := decimal.Zero
	avg := decimal.Zero
	total := decimal.Zero
	for _, l := range lots {
		if l == nil || l.QuantityBags <= 0 {
			continue
		}
		q := decimal.NewFromInt(l.QuantityBags)
		avg = WeightedAverageCost(bags, avg, q, l.CostPrice)
		bags = bags.Add(q)
		total = total.Add(q.Mul(l.CostPrice))
	}
	return Valuation{TotalValue: total.Round(2), AvgCostPerBag: avg.Round(2)}
}
