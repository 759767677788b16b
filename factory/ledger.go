/*
ledger.go - JSON import fixtures for the movie catalog and rental history

PURPOSE:
  Seeds a store from a single JSON document so demo data and acceptance
  fixtures do not need hand-written SQL.

LEDGER JSON SCHEMA:
  {
    "movies": [
      {"title": "Jaws", "category": "regular"},
      {"title": "Dune", "category": "new_release"}
    ],
    "customers": [
      {"name": "Curly", "rentals": [
        {"title": "Jaws", "days": 4},
        {"title": "Dune", "days": 2}
      ]}
    ]
  }

RULES:
  - Every rental title must be declared in "movies"
  - days must be at least 1
  - A title declared twice must carry the same category
  - Rentals keep document order; it becomes statement row order

SEE ALSO:
  - rental/store.go: Store interface written by Import
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/warp/movie-rentals/rental"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LedgerJSON is the import document.
type LedgerJSON struct {
	Movies    []MovieJSON    `json:"movies" validate:"dive"`
	Customers []CustomerJSON `json:"customers" validate:"dive"`
}

// MovieJSON is a catalog entry.
type MovieJSON struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// CustomerJSON is a customer and their rentals.
type CustomerJSON struct {
	Name    string       `json:"name" validate:"required"`
	Rentals []RentalJSON `json:"rentals" validate:"dive"`
}

// RentalJSON references a declared movie by title.
type RentalJSON struct {
	Title string `json:"title" validate:"required"`
	Days  int    `json:"days" validate:"min=1"`
}

// =============================================================================
// LEDGER
// =============================================================================

// CustomerRentals is one customer's history ready for import.
type CustomerRentals struct {
	Name    string
	Rentals []rental.Rental
}

// Ledger is a validated import document.
type Ledger struct {
	Movies    []rental.Movie
	Customers []CustomerRentals
}

// ImportSummary counts what Import wrote.
type ImportSummary struct {
	Movies    int
	Customers int
	Rentals   int
}

// ParseLedger parses and validates an import document.
func (f *Factory) ParseLedger(data []byte) (*Ledger, error) {
	var lj LedgerJSON
	if err := json.Unmarshal(data, &lj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ledger JSON: %w", ErrInvalidDefinition, err)
	}
	return f.LedgerFromJSON(lj)
}

// LedgerFromJSON validates lj and resolves rental titles against its catalog.
func (f *Factory) LedgerFromJSON(lj LedgerJSON) (*Ledger, error) {
	if err := f.check(lj); err != nil {
		return nil, err
	}

	ledger := &Ledger{}
	catalog := make(map[string]rental.Movie, len(lj.Movies))
	for _, mj := range lj.Movies {
		category, err := rental.ParseCategory(mj.Category)
		if err != nil {
			return nil, fmt.Errorf("movie %q: %w", mj.Title, err)
		}
		movie, err := rental.NewMovie(mj.Title, category)
		if err != nil {
			return nil, fmt.Errorf("movie %q: %w", mj.Title, err)
		}
		if prev, ok := catalog[movie.Title()]; ok {
			if prev.Category() != movie.Category() {
				return nil, fmt.Errorf("%w: movie %q declared as %s and %s",
					ErrInvalidDefinition, movie.Title(), prev.Category(), movie.Category())
			}
			continue
		}
		catalog[movie.Title()] = movie
		ledger.Movies = append(ledger.Movies, movie)
	}

	for _, cj := range lj.Customers {
		cr := CustomerRentals{Name: cj.Name}
		for i, rj := range cj.Rentals {
			movie, ok := catalog[rj.Title]
			if !ok {
				return nil, fmt.Errorf("customer %q rental %d %q: %w", cj.Name, i, rj.Title, rental.ErrMovieNotFound)
			}
			r, err := rental.NewRental(movie, rj.Days)
			if err != nil {
				return nil, fmt.Errorf("customer %q rental %d: %w", cj.Name, i, err)
			}
			cr.Rentals = append(cr.Rentals, r)
		}
		ledger.Customers = append(ledger.Customers, cr)
	}
	return ledger, nil
}

// Import writes the ledger to s: catalog first, then each customer's
// rentals in document order.
func (l *Ledger) Import(ctx context.Context, s rental.Store) (ImportSummary, error) {
	var sum ImportSummary
	for _, m := range l.Movies {
		if err := s.SaveMovie(ctx, m); err != nil {
			return sum, err
		}
		sum.Movies++
	}
	for _, c := range l.Customers {
		if err := s.SaveCustomer(ctx, c.Name); err != nil {
			return sum, err
		}
		sum.Customers++
		for _, r := range c.Rentals {
			if err := s.AppendRental(ctx, c.Name, r); err != nil {
				return sum, fmt.Errorf("import %q: %w", c.Name, err)
			}
			sum.Rentals++
		}
	}
	return sum, nil
}
