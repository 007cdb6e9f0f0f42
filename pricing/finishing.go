package pricing

import (
	"log"

	"printshop-core/models"
)

// FinishCost sums the cost of all finishing options for one quote line.
// areaM2 is the finished product surface (quantity × width × height).
func FinishCost(finishes []models.FinishOption, quantity, totalSheets int, areaM2 float64) float64 {
	var total float64
	for _, f := range finishes {
		var cost float64
		switch f.PricingBasis {
		case models.FinishBasisPerUnit:
			cost = f.Price * float64(quantity)
		case models.FinishBasisPerSheet:
			cost = f.Price * float64(totalSheets)
		case models.FinishBasisPerM2:
			cost = f.Price * areaM2
		default:
			log.Printf("⚠️  FinishCost: unknown pricing basis %q for finish %s, charging setup fee only", f.PricingBasis, f.ID)
		}
		total += cost + f.SetupFee
	}
	return total
}

// NumberingCost returns the consecutive numbering surcharge, 0 when disabled
func NumberingCost(cfg *models.ProductConfig, quantity int) float64 {
	if cfg == nil || !cfg.NumberingEnabled {
		return 0
	}
	return cfg.NumberingSetupFee + cfg.NumberingPricePerUnit*float64(cfg.NumberingPositions)*float64(quantity)
}
