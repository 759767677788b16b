/*
customer.go - The customer ledger

PURPOSE:
  A Customer owns an ordered, append-only sequence of rentals and derives
  totals from it through a PricingPolicy. Totals are never cached: every
  call re-reduces the current sequence, so adding a rental between calls
  is always reflected.

INVARIANTS:
  1. APPEND-ONLY: Rentals are added at the end, never removed or edited
  2. ORDERED: Insertion order is preserved and drives statement row order
  3. DERIVED: TotalCharge/TotalPoints are sums of per-rental quotes

CONCURRENCY:
  A Customer is not safe for concurrent use. Callers that share one across
  goroutines must serialize AddRental against reads and rendering.

EXAMPLE:
  c := rental.NewCustomer("Curly")
  _ = c.Rent(rental.MustMovie("Jaws", rental.Regular), 4)
  total, _ := c.TotalCharge() // 5.0
  text, _ := c.Statement()

SEE ALSO:
  - pricing.go: Per-rental quotes
  - statement.go: Rendering
  - store.go: Rebuilding a customer from storage
*/
package rental

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CUSTOMER
// =============================================================================

type Customer struct {
	name    string
	policy  *PricingPolicy
	rentals []Rental
}

// Option configures a Customer.
type Option func(*Customer)

// WithPolicy prices the customer's rentals with p instead of StandardPolicy.
func WithPolicy(p *PricingPolicy) Option {
	return func(c *Customer) {
		if p != nil {
			c.policy = p
		}
	}
}

// NewCustomer creates a customer with no rentals.
func NewCustomer(name string, opts ...Option) *Customer {
	c := &Customer{name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		c.policy = StandardPolicy()
	}
	return c
}

func (c *Customer) Name() string { return c.name }

func (c *Customer) Policy() *PricingPolicy { return c.policy }

// AddRental appends r to the end of the rental sequence.
func (c *Customer) AddRental(r Rental) error {
	if r.movie.title == "" || r.daysRented < 1 {
		return ErrInvalidMovie
	}
	c.rentals = append(c.rentals, r)
	return nil
}

// Rent records that the customer rented movie for days.
func (c *Customer) Rent(movie Movie, days int) error {
	r, err := NewRental(movie, days)
	if err != nil {
		return err
	}
	return c.AddRental(r)
}

// Rentals returns a copy of the rental sequence in insertion order.
func (c *Customer) Rentals() []Rental {
	out := make([]Rental, len(c.rentals))
	copy(out, c.rentals)
	return out
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Quotes prices every rental in insertion order.
func (c *Customer) Quotes() ([]Quote, error) {
	quotes := make([]Quote, 0, len(c.rentals))
	for _, r := range c.rentals {
		q, err := c.policy.Price(r)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// TotalCharge is the sum of every rental's charge.
func (c *Customer) TotalCharge() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range c.rentals {
		q, err := c.policy.Price(r)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(q.Charge)
	}
	return total, nil
}

// TotalPoints is the sum of every rental's frequent renter points.
func (c *Customer) TotalPoints() (int, error) {
	total := 0
	for _, r := range c.rentals {
		q, err := c.policy.Price(r)
		if err != nil {
			return 0, err
		}
		total += q.Points
	}
	return total, nil
}
