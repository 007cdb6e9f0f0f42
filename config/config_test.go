package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "MIGRATIONS", "GOOGLE_APPLICATION_CREDENTIALS",
		"DRIVE_PROFILES_FOLDER", "CHROME_PATH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
pricing:
  default_coverage: 25
  default_color: "4+4"
proofing:
  input_profile_id: abc
quote:
  shop_name: Imprenta Sur
`)
	clearEnv(t)
	t.Setenv("PORT", ":7000")
	t.Setenv("DATABASE_URL", "postgres://localhost/print")
	t.Setenv("MIGRATIONS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/print", cfg.Database.URL)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, 25.0, cfg.Pricing.DefaultCoverage)
	assert.Equal(t, "4+4", cfg.Pricing.DefaultColor)
	assert.Equal(t, "abc", cfg.Proofing.InputProfileID)
	assert.Equal(t, "Imprenta Sur", cfg.Quote.ShopName)
	// untouched keys keep their defaults
	assert.Equal(t, "EUR", cfg.Quote.Currency)
	assert.Equal(t, 2048, cfg.Proofing.MaxImageDimension)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "pricing:\n  default_coverage: 140\n"))
	assert.ErrorContains(t, err, "default_coverage")

	_, err = Load(writeConfig(t, "pricing:\n  default_color: \"1+1\"\n"))
	assert.ErrorContains(t, err, "default_color")

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadRejectsMalformedMigrationsFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIGRATIONS", "yes")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "MIGRATIONS must be a boolean")

	t.Setenv("MIGRATIONS", "0")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.Database.RunMigrations)
}
