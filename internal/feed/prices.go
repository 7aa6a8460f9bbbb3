package feed

import (
	"fmt"

	"github.com/shopspring/decimal"

	"channelfeed/internal/models"
)

// PriceAmounts is one normalized tier price. Net values pass through as
// stored; gross values are derived at this boundary.
type PriceAmounts struct {
	PriceNetto        float64 `json:"priceNetto"`
	PriceBrutto       float64 `json:"priceBrutto"`
	PseudoPriceNetto  float64 `json:"pseudoPriceNetto"`
	PseudoPriceBrutto float64 `json:"pseudoPriceBrutto"`
}

// PriceTable maps sanitized customer-group key to tier key ("from_1_to_any")
// to amounts.
type PriceTable map[string]map[string]PriceAmounts

// GrossAmount applies the tax rate to a net amount and rounds to two decimal
// places: round(net * (rate+100) / 100, 2). Decimal arithmetic keeps the
// externally reported figure free of float artifacts.
func GrossAmount(net, taxRate float64) float64 {
	gross := decimal.NewFromFloat(net).
		Mul(decimal.NewFromFloat(taxRate).Add(decimal.NewFromInt(100))).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := gross.Float64()
	return f
}

// NormalizePrices converts ordered price rows into the exported two-level
// table. When gross is false the gross price equals the net price unchanged;
// the pseudo ("was") price is always reported with tax applied.
//
// An empty input yields an empty table. Downstream treats a missing price
// block as "no price available", not as an error.
func NormalizePrices(entries []models.Price, taxRate float64, gross bool) PriceTable {
	table := PriceTable{}
	for _, entry := range entries {
		amounts := PriceAmounts{
			PriceNetto:        entry.Price,
			PriceBrutto:       entry.Price,
			PseudoPriceNetto:  entry.PseudoPrice,
			PseudoPriceBrutto: GrossAmount(entry.PseudoPrice, taxRate),
		}
		if gross {
			amounts.PriceBrutto = GrossAmount(entry.Price, taxRate)
		}

		groupKey := SanitizeKey(entry.CustomerGroupKey)
		tierKey := fmt.Sprintf("from_%d_to_%s", entry.FromQty, entry.To)

		if table[groupKey] == nil {
			table[groupKey] = map[string]PriceAmounts{}
		}
		table[groupKey][tierKey] = amounts
	}
	return table
}

// Merge folds other into the table without overwriting existing group blocks'
// tiers; additional price lists are merged, not replaced.
func (t PriceTable) Merge(other PriceTable) {
	for group, tiers := range other {
		if t[group] == nil {
			t[group] = map[string]PriceAmounts{}
		}
		for tier, amounts := range tiers {
			if _, exists := t[group][tier]; !exists {
				t[group][tier] = amounts
			}
		}
	}
}
