package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PricingConfig holds the per-market rate settings applied when deriving the
// market sale price from a supplier base price. Rates are percentages.
type PricingConfig struct {
	MarginRate     float64
	CommissionRate float64
	DiscountRate   float64
}

// CalculatePrice derives the market sale price from a base price: margin on
// top, then gross-up for the marketplace commission, then the advertised
// discount. Result is rounded to whole won.
func CalculatePrice(basePrice float64, cfg PricingConfig) float64 {
	price := decimal.NewFromFloat(basePrice)
	hundred := decimal.NewFromInt(100)

	if cfg.MarginRate != 0 {
		margin := decimal.NewFromFloat(cfg.MarginRate).Div(hundred)
		price = price.Mul(decimal.NewFromInt(1).Add(margin))
	}
	if cfg.CommissionRate != 0 {
		commission := decimal.NewFromFloat(cfg.CommissionRate).Div(hundred)
		price = price.Div(decimal.NewFromInt(1).Sub(commission))
	}
	if cfg.DiscountRate != 0 {
		discount := decimal.NewFromFloat(cfg.DiscountRate).Div(hundred)
		price = price.Mul(decimal.NewFromInt(1).Sub(discount))
	}

	f, _ := price.Round(0).Float64()
	return f
}

// PriceTier is one row of a VLOOKUP-style price table.
type PriceTier struct {
	Price  float64
	Result float64
}

// LookupPrice resolves a base price against a tier table: exact match first,
// otherwise the tier with the greatest price not exceeding basePrice. Returns
// false when the table is empty or basePrice is below every tier.
func LookupPrice(basePrice float64, table []PriceTier) (float64, bool) {
	if len(table) == 0 {
		return 0, false
	}

	sorted := make([]PriceTier, len(table))
	copy(sorted, table)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	found := false
	var result float64
	for _, tier := range sorted {
		if tier.Price == basePrice {
			return tier.Result, true
		}
		if tier.Price < basePrice {
			result = tier.Result
			found = true
			continue
		}
		break
	}
	return result, found
}
