package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"printshop-core/models"
)

// PricingFixture is an in-memory pricing catalogue, loadable from YAML
type PricingFixture struct {
	Products        []models.ProductConfig  `yaml:"products"`
	PricingProfiles []models.PricingProfile `yaml:"pricing_profiles"`
	MarginProfiles  []models.MarginProfile  `yaml:"margin_profiles"`
	Materials       []models.Material       `yaml:"materials"`
	Finishes        []models.FinishOption   `yaml:"finishes"`
}

// LoadPricingFixture reads a YAML pricing catalogue
func LoadPricingFixture(path string) (PricingFixture, error) {
	var fixture PricingFixture
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture, fmt.Errorf("failed to read pricing fixture: %w", err)
	}
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fixture, fmt.Errorf("failed to parse pricing fixture %s: %w", path, err)
	}
	if len(fixture.Products) == 0 {
		return fixture, fmt.Errorf("pricing fixture %s defines no products", path)
	}
	return fixture, nil
}

// StaticPricingRepository serves pricing data from a PricingFixture.
// Used by the CLI for offline quotes and by tests.
type StaticPricingRepository struct {
	fixture PricingFixture
}

// NewStaticPricingRepository creates a repository backed by fixture
func NewStaticPricingRepository(fixture PricingFixture) *StaticPricingRepository {
	return &StaticPricingRepository{fixture: fixture}
}

var _ PricingRepositoryInterface = (*StaticPricingRepository)(nil)

func (r *StaticPricingRepository) GetProductConfig(_ context.Context, productID string) (*models.ProductConfig, error) {
	for i := range r.fixture.Products {
		if r.fixture.Products[i].ProductID == productID {
			cfg := r.fixture.Products[i]
			return &cfg, nil
		}
	}
	return nil, fmt.Errorf("product config %s: %w", productID, ErrNotFound)
}

func (r *StaticPricingRepository) GetPricingProfile(_ context.Context, id string) (*models.PricingProfile, error) {
	for i := range r.fixture.PricingProfiles {
		if r.fixture.PricingProfiles[i].ID == id {
			profile := r.fixture.PricingProfiles[i]
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("pricing profile %s: %w", id, ErrNotFound)
}

func (r *StaticPricingRepository) GetMarginProfile(_ context.Context, id string) (*models.MarginProfile, error) {
	for i := range r.fixture.MarginProfiles {
		if r.fixture.MarginProfiles[i].ID == id {
			profile := r.fixture.MarginProfiles[i]
			return &profile, nil
		}
	}
	return nil, fmt.Errorf("margin profile %s: %w", id, ErrNotFound)
}

func (r *StaticPricingRepository) GetMaterials(_ context.Context, ids []string) ([]models.Material, error) {
	var out []models.Material
	for _, m := range r.fixture.Materials {
		if containsID(ids, m.ID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *StaticPricingRepository) GetFinishOptions(_ context.Context, ids []string) ([]models.FinishOption, error) {
	var out []models.FinishOption
	for _, f := range r.fixture.Finishes {
		if containsID(ids, f.ID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
