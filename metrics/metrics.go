// Package metrics holds the Prometheus metrics of the HTTP-triggered job.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace is the namespace for all metrics.
	Namespace = "dailyfeed"
)

// Metrics holds every metric the job exports.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDurationSeconds prometheus.Histogram
	RunsInFlight       prometheus.Gauge
	LastRunEntries     prometheus.Gauge
	LastRunArticle     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers the metrics on reg. A nil reg uses a
// fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Total number of digest runs by response status code",
			},
			[]string{"status"},
		),
		RunDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of digest runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
			},
		),
		RunsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "runs_in_flight",
				Help:      "Number of digest runs currently executing",
			},
		),
		LastRunEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "last_preview_feed_entries",
				Help:      "Feed entries found by the most recent preview",
			},
		),
		LastRunArticle: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "last_preview_article_found",
				Help:      "1 when the most recent preview found an AI News issue",
			},
		),
		gatherer: reg,
	}
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(status int, elapsed time.Duration) {
	m.RunsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	m.RunDurationSeconds.Observe(elapsed.Seconds())
}

// ObservePreview records what a preview found.
func (m *Metrics) ObservePreview(entries int, article bool) {
	m.LastRunEntries.Set(float64(entries))
	if article {
		m.LastRunArticle.Set(1)
	} else {
		m.LastRunArticle.Set(0)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
