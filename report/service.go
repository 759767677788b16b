/*
Package report renders customer statements from a store.

PURPOSE:
  Glue between persistence and the pure rental engine. A Service loads a
  customer's history, prices it with one pricing policy, renders it in
  the requested format, then logs and counts the result.

FLOW (per statement):
  1. Resolve format template (unknown format fails before any I/O)
  2. rental.LoadCustomer from the store
  3. BuildStatement (prices every rental, sums totals)
  4. Render with the template
  5. Log with zap fields, record obs.Metrics

ERRORS:
  Errors from rental are returned unchanged (wrapped with the customer
  name), so callers can still use rental.IsValidationError and friends.

SEE ALSO:
  - scenarios.go: Demo data loaders
  - obs/metrics.go: Collectors updated here
*/
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/warp/movie-rentals/factory"
	"github.com/warp/movie-rentals/logger"
	"github.com/warp/movie-rentals/obs"
	"github.com/warp/movie-rentals/rental"
	"go.uber.org/zap"
)

// Service renders statements for customers held in a store.
type Service struct {
	store   rental.Store
	policy  *rental.PricingPolicy
	log     *zap.Logger
	metrics *obs.Metrics
	factory *factory.Factory
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy prices statements with p instead of the house tariffs.
func WithPolicy(p *rental.PricingPolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithLogger sets the logger. Without it the logger carried by the
// request context is used.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics records renders into m.
func WithMetrics(m *obs.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service over store.
func NewService(store rental.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		policy:  rental.StandardPolicy(),
		factory: factory.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the pricing policy in use.
func (s *Service) Policy() *rental.PricingPolicy { return s.policy }

func (s *Service) logger(ctx context.Context) *zap.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// =============================================================================
// STATEMENTS
// =============================================================================

// Result is one customer's outcome in a batch run.
type Result struct {
	Customer string
	Output   string
	Err      error
}

// Statement renders the statement for customer in format.
func (s *Service) Statement(ctx context.Context, customer string, format rental.Format) (string, error) {
	format = rental.Format(strings.ToLower(strings.TrimSpace(string(format))))
	log := s.logger(ctx).With(zap.String("customer", customer), zap.String("format", string(format)))

	out, st, err := s.render(ctx, customer, format)
	if err != nil {
		s.metrics.ObserveError(err)
		log.Error("statement failed", zap.Error(err), zap.String("kind", obs.ErrorKind(err)))
		return "", err
	}

	s.metrics.ObserveStatement(format, st)
	log.Info("statement rendered",
		zap.Int("rentals", len(st.Lines)),
		zap.String("amount_owed", rental.FormatAmount(st.TotalCharge)),
		zap.Int("points", st.TotalPoints),
		zap.String("policy", s.policy.Name()),
	)
	return out, nil
}

func (s *Service) render(ctx context.Context, customer string, format rental.Format) (string, *rental.Statement, error) {
	tmpl, err := rental.LookupFormat(format)
	if err != nil {
		return "", nil, err
	}
	c, err := rental.LoadCustomer(ctx, s.store, customer, rental.WithPolicy(s.policy))
	if err != nil {
		return "", nil, fmt.Errorf("customer %q: %w", customer, err)
	}
	st, err := c.BuildStatement()
	if err != nil {
		return "", nil, fmt.Errorf("customer %q: %w", customer, err)
	}
	return rental.Render(tmpl, st), st, nil
}

// All renders a statement for every customer in name order. A failing
// customer does not stop the batch; its error is kept in its Result.
// The returned error is set only when the customer list cannot be read.
func (s *Service) All(ctx context.Context, format rental.Format) ([]Result, error) {
	names, err := s.store.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		out, err := s.Statement(ctx, name, format)
		results = append(results, Result{Customer: name, Output: out, Err: err})
	}
	return results, nil
}

// =============================================================================
// IMPORT
// =============================================================================

// Import parses a JSON ledger fixture and appends it to the store.
func (s *Service) Import(ctx context.Context, data []byte) (factory.ImportSummary, error) {
	ledger, err := s.factory.ParseLedger(data)
	if err != nil {
		return factory.ImportSummary{}, err
	}
	sum, err := ledger.Import(ctx, s.store)
	if err != nil {
		return sum, err
	}
	s.logger(ctx).Info("ledger imported",
		zap.Int("movies", sum.Movies),
		zap.Int("customers", sum.Customers),
		zap.Int("rentals", sum.Rentals),
	)
	return sum, nil
}
