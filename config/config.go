// Package config loads service settings from a YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Proofing ProofingConfig `yaml:"proofing"`
	Quote    QuoteConfig    `yaml:"quote"`
	Drive    DriveConfig    `yaml:"drive"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins, "*" allows any
}

// DatabaseConfig contains Postgres settings
type DatabaseConfig struct {
	URL           string `yaml:"url"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// PricingConfig contains request defaults applied at the HTTP boundary
type PricingConfig struct {
	DefaultCoverage float64 `yaml:"default_coverage"` // percent, used when a request omits it
	DefaultColor    string  `yaml:"default_color"`    // "4+0" or "4+4"
}

// ProofingConfig contains soft-proofing settings
type ProofingConfig struct {
	Enabled           bool   `yaml:"enabled"`
	InputProfileID    string `yaml:"input_profile_id"` // used when a request omits input_profile_id
	GamutWarningColor string `yaml:"gamut_warning_color"`
	MaxImageDimension int    `yaml:"max_image_dimension"` // larger previews are downscaled before proofing
	MaxUploadBytes    int64  `yaml:"max_upload_bytes"`
}

// QuoteConfig contains quote sheet rendering settings
type QuoteConfig struct {
	ShopName       string `yaml:"shop_name"`
	Currency       string `yaml:"currency"`
	ChromePath     string `yaml:"chrome_path"` // empty uses chromedp's default lookup
	PDFTimeoutSecs int    `yaml:"pdf_timeout_secs"`
}

// DriveConfig contains Google Drive ICC import settings
type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	ProfilesFolder  string `yaml:"profiles_folder"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Pricing: PricingConfig{
			DefaultCoverage: 10,
			DefaultColor:    "4+0",
		},
		Proofing: ProofingConfig{
			Enabled:           true,
			InputProfileID:    "builtin:srgb",
			GamutWarningColor: "#FF00FF",
			MaxImageDimension: 2048,
			MaxUploadBytes:    32 << 20,
		},
		Quote: QuoteConfig{
			ShopName:       "Print Shop",
			Currency:       "EUR",
			PDFTimeoutSecs: 30,
		},
	}
}

// Load reads the YAML file at path on top of Default and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MIGRATIONS"); v != "" {
		run, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIGRATIONS must be a boolean, got %q", v)
		}
		cfg.Database.RunMigrations = run
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Drive.CredentialsFile = v
	}
	if v := os.Getenv("DRIVE_PROFILES_FOLDER"); v != "" {
		cfg.Drive.ProfilesFolder = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.Quote.ChromePath = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	return nil
}

// Validate checks a configuration for values the service cannot run with
func Validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", cfg.Server.Port)
	}
	if c := cfg.Pricing.DefaultCoverage; c < 0 || c > 100 {
		return fmt.Errorf("pricing.default_coverage must be between 0 and 100, got %v", c)
	}
	if cfg.Pricing.DefaultColor != "4+0" && cfg.Pricing.DefaultColor != "4+4" {
		return fmt.Errorf("pricing.default_color must be 4+0 or 4+4, got %q", cfg.Pricing.DefaultColor)
	}
	if cfg.Proofing.MaxImageDimension < 0 {
		return errors.New("proofing.max_image_dimension must not be negative")
	}
	if cfg.Quote.PDFTimeoutSecs <= 0 {
		return errors.New("quote.pdf_timeout_secs must be positive")
	}
	return nil
}
