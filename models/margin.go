package models

// Margin modes
const (
	MarginModeTarget = "TARGET_MARGIN"
	MarginModeMarkup = "MARKUP"
)

// Tier bases
const (
	TierBasisQuantity = "QUANTITY"
	TierBasisArea     = "AREA"
)

// MarginProfileTier maps an inclusive basis range to a margin percentage.
// QtyTo == nil means the range is open ended.
type MarginProfileTier struct {
	QtyFrom float64  `json:"qty_from" yaml:"qty_from"`
	QtyTo   *float64 `json:"qty_to,omitempty" yaml:"qty_to,omitempty"`
	Value   float64  `json:"value" yaml:"value"`
}

// Contains reports whether basis falls inside the tier range
func (t MarginProfileTier) Contains(basis float64) bool {
	if basis < t.QtyFrom {
		return false
	}
	return t.QtyTo == nil || basis <= *t.QtyTo
}

// MarginProfile turns a base cost into a sell price
type MarginProfile struct {
	ID           string              `json:"id" yaml:"id"`
	Name         string              `json:"name" yaml:"name"`
	Mode         string              `json:"mode" yaml:"mode"`
	TierBasis    string              `json:"tier_basis" yaml:"tier_basis"`
	RoundingStep float64             `json:"rounding_step" yaml:"rounding_step"` // 0 disables rounding
	Tiers        []MarginProfileTier `json:"tiers" yaml:"tiers"`
}
