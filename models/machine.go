package models

// Press modes
const (
	MachineModeSheet = "SHEET"
	MachineModeRoll  = "ROLL"
)

// Machine represents a press definition attached to a pricing profile.
// All dimensions are in millimetres. A zero throughput value means "not set".
type Machine struct {
	ID                 string  `json:"id" yaml:"id"`
	Name               string  `json:"name" yaml:"name"`
	Mode               string  `json:"mode" yaml:"mode"`                     // SHEET or ROLL
	SheetWidthMm       float64 `json:"sheet_width_mm" yaml:"sheet_width_mm"` // SHEET only
	SheetHeightMm      float64 `json:"sheet_height_mm" yaml:"sheet_height_mm"`
	RollWidthMm        float64 `json:"roll_width_mm" yaml:"roll_width_mm"` // ROLL only
	MarginTopMm        float64 `json:"margin_top_mm" yaml:"margin_top_mm"`
	MarginRightMm      float64 `json:"margin_right_mm" yaml:"margin_right_mm"`
	MarginBottomMm     float64 `json:"margin_bottom_mm" yaml:"margin_bottom_mm"`
	MarginLeftMm       float64 `json:"margin_left_mm" yaml:"margin_left_mm"`
	SetupWasteSheets   int     `json:"setup_waste_sheets" yaml:"setup_waste_sheets"`
	RunWastePct        float64 `json:"run_waste_pct" yaml:"run_waste_pct"`
	SheetsPerHour      float64 `json:"sheets_per_hour" yaml:"sheets_per_hour"`
	M2PerHour          float64 `json:"m2_per_hour" yaml:"m2_per_hour"`
	SetupTimeMin       float64 `json:"setup_time_min" yaml:"setup_time_min"`
	MachineRatePerHour float64 `json:"machine_rate_per_hour" yaml:"machine_rate_per_hour"`
}

// IsRoll reports whether the press prints on a roll
func (m Machine) IsRoll() bool {
	return m.Mode == MachineModeRoll
}

// ImpositionResult is the best-fit layout of an item on a sheet or roll strip
type ImpositionResult struct {
	Ups         int     `json:"ups"`
	Rotation    int     `json:"rotation"` // 0 or 90
	Cols        int     `json:"cols"`
	Rows        int     `json:"rows"`
	PWidth      float64 `json:"pWidth"`  // printable width
	PHeight     float64 `json:"pHeight"` // printable height (strip item height for ROLL)
	ItemWidth   float64 `json:"itemWidth"`
	ItemHeight  float64 `json:"itemHeight"`
	SheetWidth  float64 `json:"sheetWidth"`
	SheetHeight float64 `json:"sheetHeight"`
	MachineID   string  `json:"machineId"`
	Mode        string  `json:"mode"`
}
