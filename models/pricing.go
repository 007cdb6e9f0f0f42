package models

// PricingRequest is the canonical price request used by the pricing engine.
// Singular and plural request forms are normalised into this shape at the HTTP boundary.
type PricingRequest struct {
	ProductID   string
	Quantities  []int
	MaterialIDs []string
	Width       float64 // mm
	Height      float64 // mm
	Sides       int     // physical printed sides: 1 or 2
	FinishIDs   []string
	Coverage    float64  // ink coverage percentage 0-100
	BleedMm     *float64 // overrides product default when set
	GapMm       *float64 // overrides product default when set
	Batch       bool     // plural request form, answered with {results: [...]}
}

// CostBreakdown represents the cost composition of one quote line
type CostBreakdown struct {
	MaterialCost  float64 `json:"materialCost"`
	InkCost       float64 `json:"inkCost"`
	MachineCost   float64 `json:"machineCost"`
	TotalBaseCost float64 `json:"totalBaseCost"` // material + ink + machine
	TotalSheets   int     `json:"totalSheets"`
	TotalArea     float64 `json:"totalArea"` // m² of media consumed
	NetSheets     int     `json:"netSheets"`
	WasteSheets   int     `json:"wasteSheets"`
	RuntimeMin    float64 `json:"runtimeMin"`
	PrintedArea   float64 `json:"printedArea"` // m² of printed item surface, all sides
	FinishCost    float64 `json:"finishCost"`
	NumberingCost float64 `json:"numberingCost"`
	MarginPct     float64 `json:"marginPct"`
	SellPrice     float64 `json:"sellPrice"` // margin applied, before numbering
}

// PriceResult is one priced material × quantity pair
type PriceResult struct {
	MaterialID   string            `json:"materialId"`
	MaterialName string            `json:"materialName"`
	Quantity     int               `json:"quantity"`
	TotalPrice   float64           `json:"totalPrice"`
	UnitPrice    float64           `json:"unitPrice"`
	Breakdown    CostBreakdown     `json:"breakdown"`
	Imposition   *ImpositionResult `json:"imposition"`
}
