// Package store provides rental.Store implementations.
package store

import (
	"context"
	"sort"

	"github.com/warp/movie-rentals/rental"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is not safe for concurrent use. The zero value is ready to use.
type Memory struct {
	movies    map[string]rental.Movie
	customers map[string][]rental.Rental
}

func NewMemory() *Memory {
	return &Memory{
		movies:    make(map[string]rental.Movie),
		customers: make(map[string][]rental.Rental),
	}
}

func (m *Memory) init() {
	if m.movies == nil {
		m.movies = make(map[string]rental.Movie)
	}
	if m.customers == nil {
		m.customers = make(map[string][]rental.Rental)
	}
}

func (m *Memory) SaveMovie(_ context.Context, movie rental.Movie) error {
	if movie.Title() == "" {
		return rental.ErrEmptyTitle
	}
	m.init()
	m.movies[movie.Title()] = movie
	return nil
}

func (m *Memory) Movie(_ context.Context, title string) (rental.Movie, error) {
	movie, ok := m.movies[title]
	if !ok {
		return rental.Movie{}, rental.ErrMovieNotFound
	}
	return movie, nil
}

func (m *Memory) SaveCustomer(_ context.Context, name string) error {
	m.init()
	if _, ok := m.customers[name]; !ok {
		m.customers[name] = []rental.Rental{}
	}
	return nil
}

// AppendRental adds a rental. Append-only. Unknown movies join the catalog.
func (m *Memory) AppendRental(_ context.Context, customer string, r rental.Rental) error {
	recs, ok := m.customers[customer]
	if !ok {
		return rental.ErrCustomerNotFound
	}
	m.init()
	if _, known := m.movies[r.Title()]; !known {
		m.movies[r.Title()] = r.Movie()
	}
	m.customers[customer] = append(recs, r)
	return nil
}

func (m *Memory) Rentals(_ context.Context, customer string) ([]rental.Rental, error) {
	recs, ok := m.customers[customer]
	if !ok {
		return nil, rental.ErrCustomerNotFound
	}
	out := make([]rental.Rental, len(recs))
	copy(out, recs)
	return out, nil
}

func (m *Memory) Customers(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.customers))
	for name := range m.customers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Reset drops everything.
func (m *Memory) Reset(_ context.Context) error {
	m.movies = make(map[string]rental.Movie)
	m.customers = make(map[string][]rental.Rental)
	return nil
}

var _ rental.Store = (*Memory)(nil)
