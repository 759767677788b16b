/*
Package rental provides the pricing and statement engine for movie rentals.

PURPOSE:
  Computes what a customer owes for their rentals and how many frequent
  renter points they earned, then renders the result as a statement.
  Pricing is a table keyed by price category; rendering is a single
  traversal parameterized by a small template interface, so every output
  format shares the same aggregation.

KEY CONCEPTS IN THIS FILE (types.go):
  - PriceCategory: Closed set of categories driving the tariff lookup
  - Movie: A title with its immutable price category
  - Rental: A movie rented for a number of days (always >= 1)

DESIGN PRINCIPLES:
  1. Immutability: Movies and rentals cannot change after construction
  2. Precision: Charges use decimal.Decimal, never float64
  3. Validation at the edge: Constructors reject bad input, so the rest of
     the engine only ever sees well-formed values

USAGE:
  movie, _ := rental.NewMovie("Jaws", rental.Regular)
  r, _ := rental.NewRental(movie, 3)

SEE ALSO:
  - pricing.go: Tariffs and the pricing policy
  - customer.go: The customer ledger
  - statement.go: Statement rendering
*/
package rental

import "strings"

// =============================================================================
// PRICE CATEGORY
// =============================================================================

// PriceCategory classifies a movie for pricing purposes.
type PriceCategory string

const (
	Regular    PriceCategory = "regular"
	NewRelease PriceCategory = "new_release"
	Children   PriceCategory = "children"
)

// Categories returns every known category in display order.
func Categories() []PriceCategory {
	return []PriceCategory{Regular, NewRelease, Children}
}

// Valid reports whether c is one of the known categories.
func (c PriceCategory) Valid() bool {
	switch c {
	case Regular, NewRelease, Children:
		return true
	}
	return false
}

func (c PriceCategory) String() string { return string(c) }

// ParseCategory accepts the canonical names plus a few spellings seen in
// imported catalogs ("new-release", "NEW_RELEASE", "childrens").
func ParseCategory(s string) (PriceCategory, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.ReplaceAll(norm, " ", "_")
	switch norm {
	case "regular":
		return Regular, nil
	case "new_release", "newrelease":
		return NewRelease, nil
	case "children", "childrens", "kids":
		return Children, nil
	}
	return "", &CategoryError{Category: PriceCategory(s)}
}

// =============================================================================
// MOVIE
// =============================================================================

// Movie is a catalog entry. Rentals reference movies, they never own them.
type Movie struct {
	title    string
	category PriceCategory
}

// NewMovie creates a movie. The title must not be blank.
func NewMovie(title string, category PriceCategory) (Movie, error) {
	if strings.TrimSpace(title) == "" {
		return Movie{}, ErrEmptyTitle
	}
	if !category.Valid() {
		return Movie{}, &CategoryError{Category: category}
	}
	return Movie{title: title, category: category}, nil
}

// MustMovie is NewMovie for fixtures and tests. Panics on invalid input.
func MustMovie(title string, category PriceCategory) Movie {
	m, err := NewMovie(title, category)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Movie) Title() string { return m.title }
func (m Movie) Category() PriceCategory { return m.category }

// =============================================================================
// RENTAL
// =============================================================================

// Rental binds a movie to a rental duration in days.
type Rental struct {
	movie      Movie
	daysRented int
}

// NewRental creates a rental. Durations below one day are rejected for
// every category alike.
func NewRental(movie Movie, daysRented int) (Rental, error) {
	if movie.title == "" || !movie.category.Valid() {
		return Rental{}, ErrInvalidMovie
	}
	if daysRented < 1 {
		return Rental{}, &DurationError{Days: daysRented}
	}
	return Rental{movie: movie, daysRented: daysRented}, nil
}

func (r Rental) Movie() Movie { return r.movie }
func (r Rental) DaysRented() int { return r.daysRented }
func (r Rental) Title() string { return r.movie.title }

// Category is the price category of the rented movie.
func (r Rental) Category() PriceCategory { return r.movie.category }
