package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded by ReadmeFetches.
const (
	OutcomeLoaded    = "loaded"
	OutcomeFailed    = "failed"
	OutcomeMalformed = "malformed"
	OutcomeStale     = "stale"
)

// Collector holds the Prometheus metrics for the portfolio server.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	ReadmeFetches  *prometheus.CounterVec
	ReadmeDuration prometheus.Histogram
	ActiveViews    prometheus.Gauge
}

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		ReadmeFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "readme_fetch_total",
				Help:      "README retrievals by outcome",
			},
			[]string{"outcome"},
		),
		ReadmeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "readme_fetch_duration_seconds",
				Help:      "README request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ActiveViews: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "page_views_active",
				Help:      "Page views currently mounted",
			},
		),
	}

	registry.MustRegister(c.HTTPRequests, c.ReadmeFetches, c.ReadmeDuration, c.ActiveViews)
	return c
}

// Handler serves the collector's registry
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordRequest counts one served HTTP request
func (c *Collector) RecordRequest(method string, status int) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordFetch counts one README retrieval; d is zero when no request was made.
func (c *Collector) RecordFetch(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.ReadmeFetches.WithLabelValues(outcome).Inc()
	if d > 0 {
		c.ReadmeDuration.Observe(d.Seconds())
	}
}

// ViewMounted increments the active view gauge
func (c *Collector) ViewMounted() {
	if c == nil {
		return
	}
	c.ActiveViews.Inc()
}

// ViewUnmounted decrements the active view gauge
func (c *Collector) ViewUnmounted() {
	if c == nil {
		return
	}
	c.ActiveViews.Dec()
}
