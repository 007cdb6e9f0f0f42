package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"printshop-core/db"
	"printshop-core/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// PricingRepository reads pricing reference data (machines, materials, margins) from PostgreSQL
// Implements PricingRepositoryInterface
type PricingRepository struct{}

// NewPricingRepository creates a new PricingRepository
func NewPricingRepository() *PricingRepository {
	return &PricingRepository{}
}

// Ensure PricingRepository implements PricingRepositoryInterface
var _ PricingRepositoryInterface = (*PricingRepository)(nil)

// GetProductConfig retrieves the pricing settings of a product
func (r *PricingRepository) GetProductConfig(ctx context.Context, productID string) (*models.ProductConfig, error) {
	query := `
		SELECT product_id, pricing_profile_id,
		       COALESCE(margin_profile_id::text, '') as margin_profile_id,
		       bleed_mm, gap_mm,
		       numbering_enabled, numbering_setup_fee, numbering_price_per_unit, numbering_positions
		FROM product_pricing_configs
		WHERE product_id = $1
	`

	var cfg models.ProductConfig
	err := db.DB.QueryRowContext(ctx, query, productID).Scan(
		&cfg.ProductID,
		&cfg.PricingProfileID,
		&cfg.MarginProfileID,
		&cfg.BleedMm,
		&cfg.GapMm,
		&cfg.NumberingEnabled,
		&cfg.NumberingSetupFee,
		&cfg.NumberingPricePerUnit,
		&cfg.NumberingPositions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product config %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product config: %w", err)
	}
	return &cfg, nil
}

// GetPricingProfile retrieves a pricing profile joined with its ink set and machines
func (r *PricingRepository) GetPricingProfile(ctx context.Context, id string) (*models.PricingProfile, error) {
	query := `
		SELECT pp.id, pp.name,
		       ink.id::text, ink.name, ink.ml_per_m2_at_100pct, ink.price_per_ml
		FROM pricing_profiles pp
		LEFT JOIN ink_sets ink ON ink.id = pp.ink_set_id
		WHERE pp.id = $1
	`

	var profile models.PricingProfile
	var inkID, inkName sql.NullString
	var inkMl, inkPrice sql.NullFloat64
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&inkID,
		&inkName,
		&inkMl,
		&inkPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pricing profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing profile: %w", err)
	}
	if inkID.Valid {
		profile.InkSet = &models.InkSet{
			ID:              inkID.String,
			Name:            inkName.String,
			MlPerM2At100Pct: inkMl.Float64,
			PricePerMl:      inkPrice.Float64,
		}
	}

	machines, err := r.getMachines(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.Machines = machines

	log.Printf("🔍 GetPricingProfile: %s has %d machine(s), inkSet=%v", id, len(machines), profile.InkSet != nil)
	return &profile, nil
}

func (r *PricingRepository) getMachines(ctx context.Context, pricingProfileID string) ([]models.Machine, error) {
	query := `
		SELECT m.id, m.name, m.mode,
		       COALESCE(m.sheet_width_mm, 0), COALESCE(m.sheet_height_mm, 0), COALESCE(m.roll_width_mm, 0),
		       m.margin_top_mm, m.margin_right_mm, m.margin_bottom_mm, m.margin_left_mm,
		       m.setup_waste_sheets, m.run_waste_pct,
		       COALESCE(m.sheets_per_hour, 0), COALESCE(m.m2_per_hour, 0),
		       m.setup_time_min, m.machine_rate_per_hour
		FROM machines m
		INNER JOIN pricing_profile_machines ppm ON ppm.machine_id = m.id
		WHERE ppm.pricing_profile_id = $1 AND m.is_active = true
		ORDER BY ppm.sort_order ASC, m.name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, pricingProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query machines: %w", err)
	}
	defer rows.Close()

	var machines []models.Machine
	for rows.Next() {
		var m models.Machine
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Mode,
			&m.SheetWidthMm, &m.SheetHeightMm, &m.RollWidthMm,
			&m.MarginTopMm, &m.MarginRightMm, &m.MarginBottomMm, &m.MarginLeftMm,
			&m.SetupWasteSheets, &m.RunWastePct,
			&m.SheetsPerHour, &m.M2PerHour,
			&m.SetupTimeMin, &m.MachineRatePerHour,
		); err != nil {
			return nil, fmt.Errorf("failed to scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	return machines, rows.Err()
}

// GetMarginProfile retrieves a margin profile with its tiers in evaluation order
func (r *PricingRepository) GetMarginProfile(ctx context.Context, id string) (*models.MarginProfile, error) {
	query := `
		SELECT id, name, mode, tier_basis, COALESCE(rounding_step, 0)
		FROM margin_profiles
		WHERE id = $1
	`

	var profile models.MarginProfile
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Mode,
		&profile.TierBasis,
		&profile.RoundingStep,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("margin profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get margin profile: %w", err)
	}

	tierQuery := `
		SELECT qty_from, qty_to, value
		FROM margin_profile_tiers
		WHERE margin_profile_id = $1
		ORDER BY sort_order ASC, qty_from ASC
	`
	rows, err := db.DB.QueryContext(ctx, tierQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query margin tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier models.MarginProfileTier
		var qtyTo sql.NullFloat64
		if err := rows.Scan(&tier.QtyFrom, &qtyTo, &tier.Value); err != nil {
			return nil, fmt.Errorf("failed to scan margin tier: %w", err)
		}
		if qtyTo.Valid {
			v := qtyTo.Float64
			tier.QtyTo = &v
		}
		profile.Tiers = append(profile.Tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMaterials retrieves the materials with the given ids. Unknown ids are ignored.
func (r *PricingRepository) GetMaterials(ctx context.Context, ids []string) ([]models.Material, error) {
	query := `
		SELECT id, name, pricing_mode, COALESCE(price_per_sheet, 0), COALESCE(price_per_m2, 0)
		FROM materials
		WHERE id::text = ANY($1)
	`

	rows, err := db.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.PricingMode, &m.PricePerSheet, &m.PricePerM2); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// GetFinishOptions retrieves the finishing options with the given ids
func (r *PricingRepository) GetFinishOptions(ctx context.Context, ids []string) ([]models.FinishOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, pricing_basis, price, setup_fee
		FROM finish_options
		WHERE id::text = ANY($1)
	`

	rows, err := db.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query finish options: %w", err)
	}
	defer rows.Close()

	var finishes []models.FinishOption
	for rows.Next() {
		var f models.FinishOption
		if err := rows.Scan(&f.ID, &f.Name, &f.PricingBasis, &f.Price, &f.SetupFee); err != nil {
			return nil, fmt.Errorf("failed to scan finish option: %w", err)
		}
		finishes = append(finishes, f)
	}
	return finishes, rows.Err()
}
