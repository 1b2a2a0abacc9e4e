package inventory

import (
	"sort"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation cuánto se descuenta de un lote concreto.
type Allocation struct {
	Lot  *entity.StockLot
	Bags int64
	Tons decimal.Decimal
}

// AllocateFIFO reparte requiredBags entre los lotes, el más antiguo primero (servicio de dominio).
//
// Las toneladas de cada lote se prorratean con la relación sacos/toneladas de la orden,
// no la del lote. Se redondea half-up a 3 decimales el acumulado:
// tons_i = r(cum_i × T / B) − r(cum_{i-1} × T / B), así tons_i >= 0 y Σ tons_i == T.
//
// No modifica los lotes. Si la suma de sacos no alcanza devuelve *domain.InsufficientStockError
// sin asignación parcial; el llamador debería haberlo comprobado antes.
func AllocateFIFO(lots []*entity.StockLot, requiredBags int64, requiredTons decimal.Decimal) ([]Allocation, error) {
	if requiredBags < 0 || requiredTons.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if requiredBags == 0 {
		return []Allocation{}, nil
	}

	candidates := make([]*entity.StockLot, 0, len(lots))
	var available int64
	for _, l := range lots {
		if l == nil || l.QuantityBags <= 0 {
			continue
		}
		candidates = append(candidates, l)
		available += l.QuantityBags
	}
	if available < requiredBags {
		return nil, &domain.InsufficientStockError{Available: available, Required: requiredBags}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		return a.ID < b.ID
	})

	requiredTons = requiredTons.Round(entity.TonsPrecision)
	total := decimal.NewFromInt(requiredBags)
	remaining := requiredBags
	var cumBags int64
	prevCum := decimal.Zero
	out := make([]Allocation, 0, len(candidates))

	for _, lot := range candidates {
		if remaining == 0 {
			break
		}
		bags := lot.QuantityBags
		if remaining < bags {
			bags = remaining
		}
		remaining -= bags
		cumBags += bags

		// se redondea el acumulado, no la porción: ninguna porción queda negativa
		cum := requiredTons
		if remaining > 0 {
			cum = decimal.NewFromInt(cumBags).Mul(requiredTons).Div(total).Round(entity.TonsPrecision)
		}
		out = append(out, Allocation{Lot: lot, Bags: bags, Tons: cum.Sub(prevCum)})
		prevCum = cum
	}
	return out, nil
}

// SumBags suma los sacos disponibles de los lotes.
func SumBags(lots []*entity.StockLot) int64 {
	var n int64
	for _, l := range lots {
		if l != nil && l.QuantityBags > 0 {
			n += l.QuantityBags
		}
	}
	return n
}
