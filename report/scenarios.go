/*
scenarios.go - Demo data sets for trying out the statement tool

AVAILABLE SCENARIOS:
  worked-example: One customer, one rental per category (15.5 owed, 4 points)
  boundaries:     Rentals on both sides of every tariff threshold
  household:      Several customers, one with no rentals, one with
                  HTML-sensitive titles

HOW SCENARIOS WORK:
  1. Reset the store (clear all data)
  2. Parse the embedded ledger JSON via factory.ParseLedger
  3. Import it

ADDING NEW SCENARIOS:
  1. Drop a ledger file in scenarios/<id>.json
  2. Add an entry to the scenarios slice

NOTE:
  Loading a scenario wipes the store. Only use against demo databases.
*/
package report

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/warp/movie-rentals/factory"
)

//go:embed scenarios/*.json
var scenarioFS embed.FS

var (
	// ErrUnknownScenario is returned for an ID not in Scenarios().
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrResetUnsupported is returned when the store cannot be wiped.
	ErrResetUnsupported = errors.New("store does not support reset")
)

// Scenario describes a demo data set.
type Scenario struct {
	ID          string
	Name        string
	Description string
}

var scenarios = []Scenario{
	{
		ID:          "worked-example",
		Name:        "Worked Example",
		Description: "Curly rents one movie per category",
	},
	{
		ID:          "boundaries",
		Name:        "Tariff Boundaries",
		Description: "Rentals just inside and just past each included-days threshold",
	},
	{
		ID:          "household",
		Name:        "Household",
		Description: "Three customers, including an empty history and escaped titles",
	},
}

// Scenarios returns the available demo data sets.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Resetter is implemented by stores that can be wiped.
type Resetter interface {
	Reset(ctx context.Context) error
}

// LoadScenario wipes the store and imports the scenario's ledger.
func (s *Service) LoadScenario(ctx context.Context, id string) (factory.ImportSummary, error) {
	known := false
	for _, sc := range scenarios {
		if sc.ID == id {
			known = true
			break
		}
	}
	if !known {
		return factory.ImportSummary{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}

	data, err := scenarioFS.ReadFile("scenarios/" + id + ".json")
	if err != nil {
		return factory.ImportSummary{}, fmt.Errorf("read scenario %q: %w", id, err)
	}

	r, ok := s.store.(Resetter)
	if !ok {
		return factory.ImportSummary{}, ErrResetUnsupported
	}
	if err := r.Reset(ctx); err != nil {
		return factory.ImportSummary{}, fmt.Errorf("reset store: %w", err)
	}
	return s.Import(ctx, data)
}
