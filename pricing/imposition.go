package pricing

import (
	"fmt"
	"math"

	"printshop-core/models"
)

// fitEpsilon absorbs float noise so 3 × 226.666… still counts as 3 items.
// It is relative to the item count, far below any printable tolerance.
const fitEpsilon = 1e-9

// fitCount returns how many items of size fit in avail. Sheet and roll
// layouts both go through it so they share the same tolerance.
func fitCount(avail, size float64) int {
	if avail <= 0 || size <= 0 {
		return 0
	}
	return int(math.Floor(avail/size + fitEpsilon))
}

// ComputeImposition returns the machine layout with the most ups for the item.
// Ties keep the first machine found. ErrNoFit is returned when no machine was
// evaluated or the best layout holds zero items.
func ComputeImposition(machines []models.Machine, itemWidthMm, itemHeightMm float64) (*models.ImpositionResult, error) {
	if itemWidthMm <= 0 || itemHeightMm <= 0 {
		return nil, fmt.Errorf("%w: item size must be positive (got %.2fx%.2f)", ErrInvalidRequest, itemWidthMm, itemHeightMm)
	}

	var best *models.ImpositionResult
	for _, machine := range machines {
		var candidate *models.ImpositionResult
		if machine.IsRoll() {
			candidate = imposeRoll(machine, itemWidthMm, itemHeightMm)
		} else {
			candidate = imposeSheet(machine, itemWidthMm, itemHeightMm)
		}
		if candidate == nil {
			continue
		}
		if best == nil || candidate.Ups > best.Ups {
			best = candidate
		}
	}

	if best == nil || best.Ups == 0 {
		return nil, fmt.Errorf("%w: %.2fx%.2f mm on %d machine(s)", ErrNoFit, itemWidthMm, itemHeightMm, len(machines))
	}
	return best, nil
}

// imposeSheet lays the item out as a grid, trying both orientations
func imposeSheet(machine models.Machine, w, h float64) *models.ImpositionResult {
	pWidth := machine.SheetWidthMm - machine.MarginLeftMm - machine.MarginRightMm
	pHeight := machine.SheetHeightMm - machine.MarginTopMm - machine.MarginBottomMm

	naturalCols, naturalRows := fitCount(pWidth, w), fitCount(pHeight, h)
	rotatedCols, rotatedRows := fitCount(pWidth, h), fitCount(pHeight, w)

	result := &models.ImpositionResult{
		PWidth:      pWidth,
		PHeight:     pHeight,
		SheetWidth:  machine.SheetWidthMm,
		SheetHeight: machine.SheetHeightMm,
		MachineID:   machine.ID,
		Mode:        models.MachineModeSheet,
	}

	if naturalCols*naturalRows >= rotatedCols*rotatedRows {
		result.Cols, result.Rows = naturalCols, naturalRows
		result.ItemWidth, result.ItemHeight = w, h
		result.Rotation = 0
	} else {
		result.Cols, result.Rows = rotatedCols, rotatedRows
		result.ItemWidth, result.ItemHeight = h, w
		result.Rotation = 90
	}
	result.Ups = result.Cols * result.Rows
	return result
}

// imposeRoll places items side by side across the roll width.
// Returns nil when the item fits in neither orientation.
func imposeRoll(machine models.Machine, w, h float64) *models.ImpositionResult {
	pWidth := machine.RollWidthMm - machine.MarginLeftMm - machine.MarginRightMm

	var fitW, fitH float64
	var rotation int
	switch {
	case fitCount(pWidth, w) >= 1:
		fitW, fitH = w, h
	case fitCount(pWidth, h) >= 1:
		fitW, fitH, rotation = h, w, 90
	default:
		return nil
	}

	cols := fitCount(pWidth, fitW)
	return &models.ImpositionResult{
		Ups:         cols,
		Rotation:    rotation,
		Cols:        cols,
		Rows:        1,
		PWidth:      pWidth,
		PHeight:     fitH,
		ItemWidth:   fitW,
		ItemHeight:  fitH,
		SheetWidth:  machine.RollWidthMm,
		SheetHeight: fitH + machine.MarginTopMm + machine.MarginBottomMm,
		MachineID:   machine.ID,
		Mode:        models.MachineModeRoll,
	}
}
