// Package metrics exposes application metrics via Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's instrument set on a private registry,
// so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	FeedSweeps       prometheus.Counter
	FeedSweepErrors  prometheus.Counter
	FeedSweepSeconds prometheus.Histogram
	LiveFlights      prometheus.Gauge

	CatalogRows       prometheus.Gauge
	CatalogFetchTotal *prometheus.CounterVec

	ChallengesParsed *prometheus.CounterVec
	ChallengeMatches *prometheus.GaugeVec
	RareFlights      prometheus.Gauge
}

// New creates the instrument set on a fresh registry that also carries the
// standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FeedSweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "skycards",
			Subsystem: "feed",
			Name:      "sweeps_total",
			Help:      "Worldwide feed sweeps attempted.",
		}),
		FeedSweepErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "skycards",
			Subsystem: "feed",
			Name:      "sweep_errors_total",
			Help:      "Feed sweeps that failed after retries.",
		}),
		FeedSweepSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skycards",
			Subsystem: "feed",
			Name:      "sweep_duration_seconds",
			Help:      "Wall time per worldwide feed sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
		LiveFlights: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "skycards",
			Subsystem: "feed",
			Name:      "live_flights",
			Help:      "Flights in the most recent deduplicated snapshot.",
		}),

		CatalogRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "skycards",
			Subsystem: "catalog",
			Name:      "rows",
			Help:      "Aircraft types in the loaded catalog.",
		}),
		CatalogFetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skycards",
			Subsystem: "catalog",
			Name:      "fetch_total",
			Help:      "Catalog fetch attempts by source.",
		}, []string{"source"}),

		ChallengesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skycards",
			Subsystem: "challenge",
			Name:      "parsed_total",
			Help:      "Challenge texts parsed, by resulting filter kind.",
		}, []string{"kind"}),
		ChallengeMatches: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "skycards",
			Subsystem: "challenge",
			Name:      "matches",
			Help:      "Matching flights in the latest snapshot, per challenge.",
		}, []string{"challenge"}),
		RareFlights: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "skycards",
			Subsystem: "feed",
			Name:      "rare_flights",
			Help:      "Flights at or above the rarity threshold in the latest snapshot.",
		}),
	}
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
