/*
pricing.go - Tariffs and the pricing policy

PURPOSE:
  Maps (price category, days rented) to a charge and a number of frequent
  renter points. The rules live in a table of Tariffs, one per category,
  so pricing stays centralized and can be replaced wholesale (see
  factory/tariff.go for JSON-defined tables).

TARIFF SHAPE:
  charge = BaseCharge + DailyRate * max(0, days - IncludedDays)
  points = BasePoints + BonusPoints   if BonusAfterDays > 0 && days > BonusAfterDays
         = BasePoints                 otherwise

STANDARD TABLE:
  Category     BaseCharge  IncludedDays  DailyRate  Points
  regular      2.0         2             1.5        1
  new_release  0           0             3.0        1 (+1 when days > 1)
  children     1.5         3             1.5        1

PURITY:
  Every operation is a pure function of (category, days). The policy holds
  no customer state and is safe to share once built.

EXAMPLE:
  policy := rental.StandardPolicy()
  q, err := policy.Quote(rental.NewRelease, 2)
  // q.Charge = 6.0, q.Points = 2

SEE ALSO:
  - customer.go: Aggregates quotes over a customer's rentals
  - factory/tariff.go: JSON tariff tables
*/
package rental

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TARIFF - Pricing rule for one category
// =============================================================================

// Tariff holds the charge and points rule for a single category.
type Tariff struct {
	Category     PriceCategory
	BaseCharge   decimal.Decimal
	IncludedDays int
	DailyRate    decimal.Decimal

	BasePoints     int
	BonusPoints    int
	BonusAfterDays int // 0 disables the bonus
}

// Charge returns the amount owed for days. Callers validate days first.
func (t Tariff) Charge(days int) decimal.Decimal {
	extra := days - t.IncludedDays
	if extra <= 0 {
		return t.BaseCharge
	}
	return t.BaseCharge.Add(t.DailyRate.Mul(decimal.NewFromInt(int64(extra))))
}

// Points returns the frequent renter points earned for days.
func (t Tariff) Points(days int) int {
	if t.BonusAfterDays > 0 && days > t.BonusAfterDays {
		return t.BasePoints + t.BonusPoints
	}
	return t.BasePoints
}

func (t Tariff) validate() error {
	if !t.Category.Valid() {
		return &CategoryError{Category: t.Category}
	}
	if t.BaseCharge.IsNegative() || t.DailyRate.IsNegative() {
		return fmt.Errorf("%w: %s has a negative amount", ErrInvalidTariff, t.Category)
	}
	if t.IncludedDays < 0 || t.BasePoints < 0 || t.BonusPoints < 0 || t.BonusAfterDays < 0 {
		return fmt.Errorf("%w: %s has a negative day or point count", ErrInvalidTariff, t.Category)
	}
	return nil
}

// =============================================================================
// QUOTE - Priced result for one (category, days) pair
// =============================================================================

type Quote struct {
	Category   PriceCategory
	DaysRented int
	Charge     decimal.Decimal
	Points     int
}

// =============================================================================
// PRICING POLICY
// =============================================================================

// PricingPolicy is an immutable tariff table keyed by category.
type PricingPolicy struct {
	name    string
	tariffs map[PriceCategory]Tariff
}

// NewPricingPolicy builds a policy from tariffs. Each category may appear at
// most once. A policy may omit categories; pricing an omitted one fails with
// ErrTariffMissing.
func NewPricingPolicy(name string, tariffs ...Tariff) (*PricingPolicy, error) {
	p := &PricingPolicy{name: name, tariffs: make(map[PriceCategory]Tariff, len(tariffs))}
	for _, t := range tariffs {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := p.tariffs[t.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate tariff for %s", ErrInvalidTariff, t.Category)
		}
		p.tariffs[t.Category] = t
	}
	return p, nil
}

// StandardTariffs returns the house pricing table.
func StandardTariffs() []Tariff {
	return []Tariff{
		{
			Category:     Regular,
			BaseCharge:   decimal.RequireFromString("2.0"),
			IncludedDays: 2,
			DailyRate:    decimal.RequireFromString("1.5"),
			BasePoints:   1,
		},
		{
			Category:       NewRelease,
			BaseCharge:     decimal.Zero,
			IncludedDays:   0,
			DailyRate:      decimal.RequireFromString("3.0"),
			BasePoints:     1,
			BonusPoints:    1,
			BonusAfterDays: 1,
		},
		{
			Category:     Children,
			BaseCharge:   decimal.RequireFromString("1.5"),
			IncludedDays: 3,
			DailyRate:    decimal.RequireFromString("1.5"),
			BasePoints:   1,
		},
	}
}

// StandardPolicy returns a policy built from StandardTariffs.
func StandardPolicy() *PricingPolicy {
	p, err := NewPricingPolicy("standard", StandardTariffs()...)
	if err != nil {
		panic(err) // the built-in table is always valid
	}
	return p
}

func (p *PricingPolicy) Name() string { return p.name }

// Tariffs returns the configured tariffs in category display order.
func (p *PricingPolicy) Tariffs() []Tariff {
	out := make([]Tariff, 0, len(p.tariffs))
	for _, c := range Categories() {
		if t, ok := p.tariffs[c]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Tariff looks up the rule for a category.
func (p *PricingPolicy) Tariff(c PriceCategory) (Tariff, error) {
	if !c.Valid() {
		return Tariff{}, &CategoryError{Category: c}
	}
	t, ok := p.tariffs[c]
	if !ok {
		return Tariff{}, &TariffError{Category: c}
	}
	return t, nil
}

// Quote prices a (category, days) pair.
func (p *PricingPolicy) Quote(c PriceCategory, days int) (Quote, error) {
	t, err := p.Tariff(c)
	if err != nil {
		return Quote{}, err
	}
	if days < 1 {
		return Quote{}, &DurationError{Days: days}
	}
	return Quote{
		Category:   c,
		DaysRented: days,
		Charge:     t.Charge(days),
		Points:     t.Points(days),
	}, nil
}

// Charge returns only the amount owed for a (category, days) pair.
func (p *PricingPolicy) Charge(c PriceCategory, days int) (decimal.Decimal, error) {
	q, err := p.Quote(c, days)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Charge, nil
}

// Points returns only the frequent renter points for a (category, days) pair.
func (p *PricingPolicy) Points(c PriceCategory, days int) (int, error) {
	q, err := p.Quote(c, days)
	if err != nil {
		return 0, err
	}
	return q.Points, nil
}

// Price quotes a rental.
func (p *PricingPolicy) Price(r Rental) (Quote, error) {
	return p.Quote(r.Category(), r.DaysRented())
}
