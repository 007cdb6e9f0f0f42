package pricing

import (
	"github.com/shopspring/decimal"

	"printshop-core/models"
)

// DefaultMarginPct is the markup used when no margin profile or tier applies
const DefaultMarginPct = 50.0

// MarginResult is the outcome of applying a margin profile to a cost
type MarginResult struct {
	SellPrice float64
	MarginPct float64
	Basis     float64
	Matched   bool // false when the default margin was used
}

// ApplyMargin selects the tier for the quantity or area basis and computes the sell price.
// A nil profile, or a basis outside every tier, falls back to a DefaultMarginPct markup.
func ApplyMargin(totalCost float64, quantity int, widthMm, heightMm float64, profile *models.MarginProfile) MarginResult {
	if profile == nil {
		return MarginResult{
			SellPrice: totalCost * (1 + DefaultMarginPct/100),
			MarginPct: DefaultMarginPct,
			Basis:     float64(quantity),
		}
	}

	basis := float64(quantity)
	if profile.TierBasis == models.TierBasisArea {
		basis = float64(quantity) * widthMm * heightMm / 1e6
	}

	result := MarginResult{MarginPct: DefaultMarginPct, Basis: basis}
	for _, tier := range profile.Tiers {
		if tier.Contains(basis) {
			result.MarginPct = tier.Value
			result.Matched = true
			break
		}
	}

	// 100% target margin divides by zero; treated as a configuration error upstream
	if profile.Mode == models.MarginModeTarget {
		result.SellPrice = totalCost / (1 - result.MarginPct/100)
	} else {
		result.SellPrice = totalCost * (1 + result.MarginPct/100)
	}

	if profile.RoundingStep > 0 {
		result.SellPrice = RoundUpToStep(result.SellPrice, profile.RoundingStep)
	}
	return result
}

// RoundUpToStep rounds price up to the next multiple of step
func RoundUpToStep(price, step float64) float64 {
	if step <= 0 {
		return price
	}
	s := decimal.NewFromFloat(step)
	return decimal.NewFromFloat(price).Div(s).Ceil().Mul(s).InexactFloat64()
}
