package pricing

import (
	"fmt"
	"math"

	"printshop-core/models"
)

// CostInput holds everything needed to cost one imposed job
type CostInput struct {
	Quantity    int
	Sides       int
	Imposition  *models.ImpositionResult
	Machines    []models.Machine
	Material    models.Material
	InkSet      *models.InkSet
	CoveragePct float64
}

// CalculateCost computes material, ink and machine cost for an imposed job.
// It fails with ErrInvalidImposition when the imposition is missing or holds no items.
func CalculateCost(in CostInput) (*models.CostBreakdown, error) {
	imp := in.Imposition
	if imp == nil || imp.Ups == 0 {
		return nil, ErrInvalidImposition
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
	}

	machine, ok := findMachine(in.Machines, imp.MachineID)
	if !ok {
		return nil, fmt.Errorf("%w: machine %q is not part of the pricing profile", ErrInvalidImposition, imp.MachineID)
	}

	netSheets := ceilDiv(in.Quantity, imp.Ups)
	wasteSheets := machine.SetupWasteSheets + int(math.Ceil(float64(netSheets)*machine.RunWastePct/100))
	totalSheets := netSheets + wasteSheets
	totalArea := float64(totalSheets) * (imp.SheetWidth * imp.SheetHeight) / 1e6

	var materialCost float64
	if in.Material.PricingMode == models.MaterialPricingPerSheet {
		materialCost = float64(totalSheets) * in.Material.PricePerSheet
	} else {
		materialCost = totalArea * in.Material.PricePerM2
	}

	printedArea := float64(in.Quantity) * float64(in.Sides) * (imp.ItemWidth * imp.ItemHeight) / 1e6
	var inkCost float64
	if in.InkSet != nil {
		inkCost = printedArea * in.InkSet.MlPerM2At100Pct * (in.CoveragePct / 100) * in.InkSet.PricePerMl
	}

	var runtimeMin float64
	switch {
	case machine.IsRoll() && machine.M2PerHour > 0:
		runtimeMin = (totalArea / machine.M2PerHour) * 60
	case machine.SheetsPerHour > 0:
		runtimeMin = (float64(totalSheets) / machine.SheetsPerHour) * 60
	}
	machineCost := ((machine.SetupTimeMin + runtimeMin) / 60) * machine.MachineRatePerHour

	return &models.CostBreakdown{
		MaterialCost:  materialCost,
		InkCost:       inkCost,
		MachineCost:   machineCost,
		TotalBaseCost: materialCost + inkCost + machineCost,
		TotalSheets:   totalSheets,
		TotalArea:     totalArea,
		NetSheets:     netSheets,
		WasteSheets:   wasteSheets,
		RuntimeMin:    runtimeMin,
		PrintedArea:   printedArea,
	}, nil
}

func findMachine(machines []models.Machine, id string) (models.Machine, bool) {
	for _, m := range machines {
		if m.ID == id {
			return m, true
		}
	}
	return models.Machine{}, false
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
