package pricing

import (
	"context"
	"errors"
	"fmt"
	"log"

	"printshop-core/models"
	"printshop-core/repository"
)

// Engine prices print jobs: imposition, cost, finishing, margin and numbering
// for every requested material × quantity pair.
type Engine struct {
	repo repository.PricingRepositoryInterface
}

// NewEngine creates a new pricing engine reading reference data from repo
func NewEngine(repo repository.PricingRepositoryInterface) *Engine {
	return &Engine{repo: repo}
}

// quoteContext is the reference data fetched once per request
type quoteContext struct {
	product  *models.ProductConfig
	profile  *models.PricingProfile
	margin   *models.MarginProfile
	finishes []models.FinishOption
	bleedMm  float64
	gapMm    float64
}

// Calculate prices every material × quantity pair of req.
// Pairs that cannot be imposed are skipped; ErrNoResults is returned when none remain.
func (e *Engine) Calculate(ctx context.Context, req models.PricingRequest) ([]models.PriceResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	qc, err := e.loadQuoteContext(ctx, req)
	if err != nil {
		return nil, err
	}

	materials, err := e.repo.GetMaterials(ctx, req.MaterialIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("%w: none of materials %v exist", ErrConfigNotFound, req.MaterialIDs)
	}
	byID := make(map[string]models.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	effWidth := req.Width + 2*qc.bleedMm + qc.gapMm
	effHeight := req.Height + 2*qc.bleedMm + qc.gapMm
	log.Printf("💰 Calculate: product=%s size=%.1fx%.1f (effective %.1fx%.1f) sides=%d materials=%d quantities=%d",
		req.ProductID, req.Width, req.Height, effWidth, effHeight, req.Sides, len(req.MaterialIDs), len(req.Quantities))

	imposition, impErr := ComputeImposition(qc.profile.Machines, effWidth, effHeight)
	if impErr != nil {
		log.Printf("⚠️  Calculate: no imposition for product %s: %v", req.ProductID, impErr)
	}

	results := make([]models.PriceResult, 0, len(req.MaterialIDs)*len(req.Quantities))
	for _, materialID := range req.MaterialIDs {
		material, ok := byID[materialID]
		if !ok {
			log.Printf("⚠️  Calculate: material %s not found, skipping", materialID)
			continue
		}
		for _, qty := range req.Quantities {
			result, err := e.priceLine(qc, req, material, qty, imposition)
			if err != nil {
				log.Printf("⚠️  Calculate: skipping material=%s qty=%d: %v", materialID, qty, err)
				continue
			}
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w (%.1fx%.1f mm)", ErrNoResults, req.Width, req.Height)
	}

	log.Printf("✅ Calculate: product=%s priced %d line(s)", req.ProductID, len(results))
	return results, nil
}

// priceLine prices a single material × quantity pair
func (e *Engine) priceLine(qc *quoteContext, req models.PricingRequest, material models.Material, qty int, imposition *models.ImpositionResult) (*models.PriceResult, error) {
	breakdown, err := CalculateCost(CostInput{
		Quantity:    qty,
		Sides:       req.Sides,
		Imposition:  imposition,
		Machines:    qc.profile.Machines,
		Material:    material,
		InkSet:      qc.profile.InkSet,
		CoveragePct: req.Coverage,
	})
	if err != nil {
		return nil, err
	}

	finishedArea := float64(qty) * req.Width * req.Height / 1e6
	breakdown.FinishCost = FinishCost(qc.finishes, qty, breakdown.TotalSheets, finishedArea)

	margin := ApplyMargin(breakdown.TotalBaseCost+breakdown.FinishCost, qty, req.Width, req.Height, qc.margin)
	breakdown.MarginPct = margin.MarginPct
	breakdown.SellPrice = margin.SellPrice
	breakdown.NumberingCost = NumberingCost(qc.product, qty)

	total := margin.SellPrice + breakdown.NumberingCost
	return &models.PriceResult{
		MaterialID:   material.ID,
		MaterialName: material.Name,
		Quantity:     qty,
		TotalPrice:   total,
		UnitPrice:    total / float64(qty),
		Breakdown:    *breakdown,
		Imposition:   imposition,
	}, nil
}

// loadQuoteContext fetches product, pricing profile, margin profile and finishes
func (e *Engine) loadQuoteContext(ctx context.Context, req models.PricingRequest) (*quoteContext, error) {
	product, err := e.repo.GetProductConfig(ctx, req.ProductID)
	if err != nil {
		return nil, configError("product config", err)
	}

	profile, err := e.repo.GetPricingProfile(ctx, product.PricingProfileID)
	if err != nil {
		return nil, configError("pricing profile", err)
	}
	if len(profile.Machines) == 0 {
		return nil, fmt.Errorf("%w: pricing profile %s has no machines", ErrConfigNotFound, profile.ID)
	}

	var margin *models.MarginProfile
	if product.MarginProfileID != "" {
		margin, err = e.repo.GetMarginProfile(ctx, product.MarginProfileID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load margin profile: %w", err)
		}
	}
	if margin == nil {
		log.Printf("⚠️  Calculate: product %s has no margin profile, using default %.0f%% markup", req.ProductID, DefaultMarginPct)
	}

	finishes, err := e.repo.GetFinishOptions(ctx, req.FinishIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load finish options: %w", err)
	}

	qc := &quoteContext{
		product:  product,
		profile:  profile,
		margin:   margin,
		finishes: finishes,
		bleedMm:  product.BleedMm,
		gapMm:    product.GapMm,
	}
	if req.BleedMm != nil {
		qc.bleedMm = *req.BleedMm
	}
	if req.GapMm != nil {
		qc.gapMm = *req.GapMm
	}
	return qc, nil
}

func configError(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func validateRequest(req models.PricingRequest) error {
	if req.ProductID == "" {
		return fmt.Errorf("%w: productId is required", ErrInvalidRequest)
	}
	if len(req.Quantities) == 0 {
		return fmt.Errorf("%w: at least one quantity is required", ErrInvalidRequest)
	}
	for _, q := range req.Quantities {
		if q <= 0 {
			return fmt.Errorf("%w: quantity must be positive (got %d)", ErrInvalidRequest, q)
		}
	}
	if len(req.MaterialIDs) == 0 {
		return fmt.Errorf("%w: at least one material is required", ErrInvalidRequest)
	}
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidRequest)
	}
	if req.Sides != 1 && req.Sides != 2 {
		return fmt.Errorf("%w: sides must be 1 or 2 (got %d)", ErrInvalidRequest, req.Sides)
	}
	if req.Coverage < 0 || req.Coverage > 100 {
		return fmt.Errorf("%w: coverage must be between 0 and 100", ErrInvalidRequest)
	}
	return nil
}

// Calculator prices pricing requests
type Calculator interface {
	Calculate(ctx context.Context, req models.PricingRequest) ([]models.PriceResult, error)
}

// Ensure Engine implements Calculator
var _ Calculator = (*Engine)(nil)
