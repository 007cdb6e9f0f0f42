package models

// Material pricing modes
const (
	MaterialPricingPerSheet = "PER_SHEET"
	MaterialPricingPerM2    = "PER_M2"
)

// Material is a substrate that can be printed on
type Material struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	PricingMode   string  `json:"pricing_mode" yaml:"pricing_mode"`
	PricePerSheet float64 `json:"price_per_sheet" yaml:"price_per_sheet"`
	PricePerM2    float64 `json:"price_per_m2" yaml:"price_per_m2"`
}

// InkSet describes ink consumption and price for a press
type InkSet struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	MlPerM2At100Pct float64 `json:"ml_per_m2_at_100pct" yaml:"ml_per_m2_at_100pct"`
	PricePerMl      float64 `json:"price_per_ml" yaml:"price_per_ml"`
}

// Finish pricing bases
const (
	FinishBasisPerUnit  = "PER_UNIT"
	FinishBasisPerSheet = "PER_SHEET"
	FinishBasisPerM2    = "PER_M2"
)

// FinishOption is a post-press finishing step (lamination, cutting, folding...)
type FinishOption struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	PricingBasis string  `json:"pricing_basis" yaml:"pricing_basis"`
	Price        float64 `json:"price" yaml:"price"`
	SetupFee     float64 `json:"setup_fee" yaml:"setup_fee"`
}
