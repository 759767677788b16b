// Package obs holds the Prometheus collectors for statement rendering.
//
// The statement tool is a batch command, so metrics are not scraped over
// HTTP. They are written once per run to a node_exporter textfile.
package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/warp/movie-rentals/rental"
)

// Metrics groups the rental collectors behind a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	StatementsRendered *prometheus.CounterVec
	RentalsPriced      *prometheus.CounterVec
	RenderErrors       *prometheus.CounterVec
	AmountBilled       prometheus.Counter
}

// NewMetrics creates and registers the collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StatementsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_rendered_total",
			Help:      "Statements rendered by output format.",
		}, []string{"format"}),
		RentalsPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rentals_priced_total",
			Help:      "Rentals priced by price category.",
		}, []string{"category"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Statements that could not be produced, by error kind.",
		}, []string{"kind"}),
		AmountBilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "amount_billed_total",
			Help:      "Sum of statement totals.",
		}),
	}
	m.registry.MustRegister(m.StatementsRendered, m.RentalsPriced, m.RenderErrors, m.AmountBilled)
	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveStatement records one rendered statement.
func (m *Metrics) ObserveStatement(format rental.Format, st *rental.Statement) {
	if m == nil {
		return
	}
	m.StatementsRendered.WithLabelValues(string(format)).Inc()
	for _, l := range st.Lines {
		m.RentalsPriced.WithLabelValues(string(l.Category)).Inc()
	}
	m.AmountBilled.Add(st.TotalCharge.InexactFloat64())
}

// ObserveError records a failed statement, classified by error family.
func (m *Metrics) ObserveError(err error) {
	if m == nil || err == nil {
		return
	}
	m.RenderErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps an error to a low-cardinality label value.
func ErrorKind(err error) string {
	switch {
	case rental.IsValidationError(err):
		return "validation"
	case rental.IsConfigError(err):
		return "config"
	case rental.IsNotFound(err):
		return "not_found"
	default:
		return "internal"
	}
}

// WriteTextfile writes every collector to path in the text exposition
// format. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
