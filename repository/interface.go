package repository

import (
	"context"

	"printshop-core/models"
)

// PricingRepositoryInterface defines the read-only pricing data the engine consumes
type PricingRepositoryInterface interface {
	GetProductConfig(ctx context.Context, productID string) (*models.ProductConfig, error)
	GetPricingProfile(ctx context.Context, id string) (*models.PricingProfile, error)
	GetMarginProfile(ctx context.Context, id string) (*models.MarginProfile, error)
	GetMaterials(ctx context.Context, ids []string) ([]models.Material, error)
	GetFinishOptions(ctx context.Context, ids []string) ([]models.FinishOption, error)
}

// ColorProfileRepositoryInterface defines the contract for ICC profile storage
type ColorProfileRepositoryInterface interface {
	List(ctx context.Context) ([]models.ColorProfile, error)
	GetByID(ctx context.Context, id string) (*models.ColorProfile, error)
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	Insert(ctx context.Context, profile *models.ColorProfile) error
}
