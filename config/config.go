/*
Package config loads statement tool settings from the environment.

PURPOSE:
  Settings come from process environment variables, optionally seeded
  from a .env file (godotenv never overrides variables already set).
  Command-line flags override whatever Load returns; Validate runs on
  the merged result, so a bad environment value is harmless when a flag
  replaces it.

KEYS:
  RENTALS_DB            SQLite path              (default "rentals.db")
  RENTALS_FORMAT        Statement format         (default "text")
  RENTALS_TARIFF_FILE   JSON tariff table        (default: house tariffs)
  RENTALS_METRICS_FILE  Prometheus textfile path (default: none)
  LOG_LEVEL             zap level                (default "info")
*/
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/warp/movie-rentals/rental"
)

// Config holds statement tool settings.
type Config struct {
	DBPath      string
	Format      rental.Format
	TariffFile  string
	MetricsFile string
	LogLevel    string
}

// Load reads configuration from environment variables and the given .env
// files. Missing .env files are ignored; with no files, ".env" is tried.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		DBPath:      valueOrDefault(k.String("RENTALS_DB"), "rentals.db"),
		Format:      rental.Format(strings.ToLower(valueOrDefault(k.String("RENTALS_FORMAT"), "text"))),
		TariffFile:  strings.TrimSpace(k.String("RENTALS_TARIFF_FILE")),
		MetricsFile: strings.TrimSpace(k.String("RENTALS_METRICS_FILE")),
		LogLevel:    valueOrDefault(k.String("LOG_LEVEL"), "info"),
	}

	return cfg, nil
}

// Validate checks settings that can be verified without side effects.
// Callers run it after applying command-line overrides.
func (c *Config) Validate() error {
	if _, err := rental.LookupFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}

func valueOrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
