package models

// PricingProfile groups the presses and ink set used to price a product
type PricingProfile struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Machines []Machine `json:"machines" yaml:"machines"`
	InkSet   *InkSet   `json:"ink_set" yaml:"ink_set"`
}

// ProductConfig holds per-product pricing settings
type ProductConfig struct {
	ProductID             string  `json:"product_id" yaml:"product_id"`
	PricingProfileID      string  `json:"pricing_profile_id" yaml:"pricing_profile_id"`
	MarginProfileID       string  `json:"margin_profile_id" yaml:"margin_profile_id"` // empty: default margin
	BleedMm               float64 `json:"bleed_mm" yaml:"bleed_mm"`
	GapMm                 float64 `json:"gap_mm" yaml:"gap_mm"`
	NumberingEnabled      bool    `json:"numbering_enabled" yaml:"numbering_enabled"`
	NumberingSetupFee     float64 `json:"numbering_setup_fee" yaml:"numbering_setup_fee"`
	NumberingPricePerUnit float64 `json:"numbering_price_per_unit" yaml:"numbering_price_per_unit"`
	NumberingPositions    int     `json:"numbering_positions" yaml:"numbering_positions"`
}
