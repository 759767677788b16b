/*
store.go - Persistence interface for movies, customers and rentals

PURPOSE:
  The engine itself is in-memory and pure. Store is the boundary to
  whatever keeps catalog and rental history between runs, and
  LoadCustomer rebuilds a Customer ledger from it.

APPEND-ONLY CONTRACT:
  Rentals are immutable once written. Store has no method to update or
  delete a rental; Rentals() must return them in the order they were
  appended, because that order becomes statement row order.

IMPLEMENTATIONS:
  - rental/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite with embedded migrations

EXAMPLE:
  st := store.NewMemory()
  _ = st.SaveMovie(ctx, jaws)
  _ = st.SaveCustomer(ctx, "Curly")
  _ = st.AppendRental(ctx, "Curly", r)
  c, err := rental.LoadCustomer(ctx, st, "Curly")
*/
package rental

import (
	"context"
	"fmt"
)

// Store handles persistence of the catalog and rental history.
type Store interface {
	// SaveMovie inserts or replaces a catalog entry keyed by title.
	SaveMovie(ctx context.Context, m Movie) error

	// Movie returns the catalog entry for title, or ErrMovieNotFound.
	Movie(ctx context.Context, title string) (Movie, error)

	// SaveCustomer registers a customer. Saving an existing name is a no-op.
	SaveCustomer(ctx context.Context, name string) error

	// AppendRental adds r to the end of the customer's history.
	// Returns ErrCustomerNotFound for an unregistered customer.
	AppendRental(ctx context.Context, customer string, r Rental) error

	// Rentals returns the customer's history in insertion order.
	Rentals(ctx context.Context, customer string) ([]Rental, error)

	// Customers returns every registered customer name, sorted.
	Customers(ctx context.Context) ([]string, error)
}

// LoadCustomer rebuilds a customer ledger from s.
func LoadCustomer(ctx context.Context, s Store, name string, opts ...Option) (*Customer, error) {
	rentals, err := s.Rentals(ctx, name)
	if err != nil {
		return nil, err
	}
	c := NewCustomer(name, opts...)
	for i, r := range rentals {
		if err := c.AddRental(r); err != nil {
			return nil, fmt.Errorf("rental %d of %s: %w", i, name, err)
		}
	}
	return c, nil
}
