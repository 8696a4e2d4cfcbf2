// Package metrics collects Prometheus metrics for a single CLI run. A CLI has
// no scrape endpoint, so the registry can be written out in text exposition
// format for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page sources
const (
	SourceNetwork = "network"
	SourceCache   = "cache"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry        *prometheus.Registry
	pagesFetched    *prometheus.CounterVec
	fetchErrors     *prometheus.CounterVec
	requestDuration prometheus.Histogram
	entriesReturned prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_pages_fetched_total",
			Help: "Total number of leaderboard pages fetched",
		}, []string{"mode", "source"}),
		fetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_fetch_errors_total",
			Help: "Total number of failed leaderboard fetches",
		}, []string{"kind"}),
		requestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaderboard_page_request_duration_seconds",
			Help:    "Duration of leaderboard page requests",
			Buckets: prometheus.DefBuckets,
		}),
		entriesReturned: factory.NewGauge(prometheus.GaugeOpts{
			Name: "leaderboard_entries_returned",
			Help: "Number of entries returned by the last fetch",
		}),
	}
}

func (m *Metrics) PageFetched(mode, source string) {
	if m == nil {
		return
	}
	m.pagesFetched.WithLabelValues(mode, source).Inc()
}

func (m *Metrics) FetchFailed(kind string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRequest(d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.Observe(d.Seconds())
}

func (m *Metrics) EntriesReturned(n int) {
	if m == nil {
		return
	}
	m.entriesReturned.Set(float64(n))
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile atomically writes all metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
