package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the quoting service. Only verdicts,
// latencies and reload results are exported; never premiums or tariff
// values, which would let a scraper reconstruct pricing.
type Metrics struct {
	registry *prometheus.Registry

	// QuoteOutcome counts quotes by verdict
	QuoteOutcome *prometheus.CounterVec

	// QuoteLatency observes full quote pipeline duration
	QuoteLatency prometheus.Histogram

	// TariffReload counts reload attempts by result
	TariffReload *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		QuoteOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tariff_quote_outcomes_total",
			Help: "Total quote outcomes by verdict",
		}, []string{"verdict"}),

		QuoteLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tariff_quote_duration_seconds",
			Help:    "Duration of full quote evaluation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		TariffReload: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tariff_reloads_total",
			Help: "Total tariff reload attempts by result",
		}, []string{"result"}),
	}
}

// ObserveQuote records one quote outcome and its duration.
func (m *Metrics) ObserveQuote(verdict string, d time.Duration) {
	if m != nil {
		m.QuoteOutcome.WithLabelValues(verdict).Inc()
		m.QuoteLatency.Observe(d.Seconds())
	}
}

// ObserveReload records a tariff reload attempt.
func (m *Metrics) ObserveReload(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.TariffReload.WithLabelValues(result).Inc()
}

// Gatherer exposes the registry for the /metrics endpoint.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
