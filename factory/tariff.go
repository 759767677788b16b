/*
Package factory provides JSON to Go conversion for tariff tables and
rental ledger imports.

PURPOSE:
  Converts JSON definitions into rental.PricingPolicy values and rental
  histories. Prices can then change without a code change: a store
  manager edits a tariff file, the statement tool picks it up.

TARIFF JSON SCHEMA:
  {
    "name": "summer-2025",
    "tariffs": [
      {"category": "regular", "base_charge": "2.0", "included_days": 2,
       "daily_rate": "1.5", "base_points": 1},
      {"category": "new_release", "daily_rate": "3.0", "base_points": 1,
       "bonus_points": 1, "bonus_after_days": 1},
      {"category": "children", "base_charge": "1.5", "included_days": 3,
       "daily_rate": "1.5", "base_points": 1}
    ]
  }

  Amounts may be JSON strings or numbers. Categories accept the aliases
  rental.ParseCategory understands.

KEY FEATURES:
  - Struct-tag validation (go-playground/validator)
  - Categories resolved through rental.ParseCategory
  - Negative amounts and duplicates rejected by rental.NewPricingPolicy
  - Round trip: ToJSON(policy) parses back into an identical table

USAGE:
  f := factory.New()
  policy, err := f.ParseTariffs(jsonBytes)
  c := rental.NewCustomer("Curly", rental.WithPolicy(policy))

SEE ALSO:
  - rental/pricing.go: Tariff and PricingPolicy
  - ledger.go: Import fixtures
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/movie-rentals/rental"
)

// ErrInvalidDefinition wraps every JSON shape or validation failure.
var ErrInvalidDefinition = errors.New("invalid definition")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// TariffTableJSON is the JSON representation of a pricing policy.
type TariffTableJSON struct {
	Name    string       `json:"name"`
	Tariffs []TariffJSON `json:"tariffs" validate:"required,min=1,dive"`
}

// TariffJSON represents one category's rule.
type TariffJSON struct {
	Category       string          `json:"category" validate:"required"`
	BaseCharge     decimal.Decimal `json:"base_charge"`
	IncludedDays   int             `json:"included_days" validate:"gte=0"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	BasePoints     int             `json:"base_points" validate:"gte=0"`
	BonusPoints    int             `json:"bonus_points,omitempty" validate:"gte=0"`
	BonusAfterDays int             `json:"bonus_after_days,omitempty" validate:"gte=0"`
}

// =============================================================================
// FACTORY
// =============================================================================

// Factory converts JSON definitions to domain values.
type Factory struct {
	validate *validator.Validate
}

// New creates a factory.
func New() *Factory {
	return &Factory{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (f *Factory) check(v any) error {
	if err := f.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return nil
}

// ParseTariffs parses a JSON tariff table into a pricing policy.
func (f *Factory) ParseTariffs(data []byte) (*rental.PricingPolicy, error) {
	var tj TariffTableJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tariff JSON: %w", ErrInvalidDefinition, err)
	}
	return f.FromJSON(tj)
}

// FromJSON converts a TariffTableJSON into a pricing policy.
func (f *Factory) FromJSON(tj TariffTableJSON) (*rental.PricingPolicy, error) {
	if err := f.check(tj); err != nil {
		return nil, err
	}

	tariffs := make([]rental.Tariff, 0, len(tj.Tariffs))
	for i, t := range tj.Tariffs {
		category, err := rental.ParseCategory(t.Category)
		if err != nil {
			return nil, fmt.Errorf("tariff %d: %w", i, err)
		}
		tariffs = append(tariffs, rental.Tariff{
			Category:       category,
			BaseCharge:     t.BaseCharge,
			IncludedDays:   t.IncludedDays,
			DailyRate:      t.DailyRate,
			BasePoints:     t.BasePoints,
			BonusPoints:    t.BonusPoints,
			BonusAfterDays: t.BonusAfterDays,
		})
	}

	name := tj.Name
	if name == "" {
		name = "custom"
	}
	return rental.NewPricingPolicy(name, tariffs...)
}

// ToJSON converts a policy back to its JSON representation.
func (f *Factory) ToJSON(p *rental.PricingPolicy) TariffTableJSON {
	tj := TariffTableJSON{Name: p.Name()}
	for _, t := range p.Tariffs() {
		tj.Tariffs = append(tj.Tariffs, TariffJSON{
			Category:       string(t.Category),
			BaseCharge:     t.BaseCharge,
			IncludedDays:   t.IncludedDays,
			DailyRate:      t.DailyRate,
			BasePoints:     t.BasePoints,
			BonusPoints:    t.BonusPoints,
			BonusAfterDays: t.BonusAfterDays,
		})
	}
	return tj
}

// =============================================================================
// PRESETS
// =============================================================================

// StandardTariffsJSON returns the house tariff table as indented JSON,
// a starting point for custom tariff files.
func StandardTariffsJSON() string {
	data, err := json.MarshalIndent(New().ToJSON(rental.StandardPolicy()), "", "  ")
	if err != nil {
		panic(err)
	}
	return string(data)
}
