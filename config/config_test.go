package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/movie-rentals/config"
	"github.com/warp/movie-rentals/rental"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RENTALS_DB", "RENTALS_FORMAT", "RENTALS_TARIFF_FILE", "RENTALS_METRICS_FILE", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "rentals.db", cfg.DBPath)
	assert.Equal(t, rental.FormatText, cfg.Format)
	assert.Empty(t, cfg.TariffFile)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RENTALS_DB", "/tmp/shop.db")
	t.Setenv("RENTALS_FORMAT", "HTML")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shop.db", cfg.DBPath)
	assert.Equal(t, rental.FormatHTML, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	// GIVEN: A .env file and one variable already set in the process
	// WHEN: Loading
	// THEN: The file fills gaps, the process environment wins
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RENTALS_DB=from-file.db\nRENTALS_TARIFF_FILE=tariffs.json\n"), 0o600))
	t.Setenv("RENTALS_DB", "from-env.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DBPath)
	assert.Equal(t, "tariffs.json", cfg.TariffFile)
}

func TestLoad_UnknownFormatIsReportedByValidate(t *testing.T) {
	// GIVEN: An environment naming a format nobody registered
	// WHEN: Loading, then validating
	// THEN: Load keeps the raw value so a flag can still replace it
	clearEnv(t)
	t.Setenv("RENTALS_FORMAT", "pdf")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, rental.Format("pdf"), cfg.Format)
	assert.ErrorIs(t, cfg.Validate(), rental.ErrUnknownFormat)

	cfg.Format = rental.FormatHTML
	assert.NoError(t, cfg.Validate())
}
