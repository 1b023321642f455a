package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce        sync.Once
	activityRowsTotal   *prometheus.CounterVec
	activityWriteErrors prometheus.Counter
	activityFanoutSize  prometheus.Histogram
	feedRequestsTotal   *prometheus.CounterVec
	feedLatencySeconds  prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the activity
// logging pipeline.
func RegisterMetrics() {
	registerOnce.Do(func() {
		activityRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_log_rows_total",
			Help: "Total number of activity log rows written, by action.",
		}, []string{"action"})

		activityWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_log_write_errors_total",
			Help: "Total number of failed activity log row writes.",
		})

		activityFanoutSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "activity_log_fanout_size",
			Help:    "Number of scope rows produced per logged event.",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 13},
		})

		feedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_feed_requests_total",
			Help: "Activity feed requests served, by cache outcome.",
		}, []string{"cache"})

		feedLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "activity_feed_latency_seconds",
			Help:    "Latency distribution for activity feed requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(activityRowsTotal, activityWriteErrors, activityFanoutSize, feedRequestsTotal, feedLatencySeconds)
	})
}

// ActivityRows exposes the per-action row counter.
func ActivityRows() *prometheus.CounterVec {
	RegisterMetrics()
	return activityRowsTotal
}

// ActivityWriteErrors exposes the failed-write counter.
func ActivityWriteErrors() prometheus.Counter {
	RegisterMetrics()
	return activityWriteErrors
}

// ActivityFanoutSize exposes the fan-out size histogram.
func ActivityFanoutSize() prometheus.Histogram {
	RegisterMetrics()
	return activityFanoutSize
}

// FeedRequests exposes the feed request counter.
func FeedRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return feedRequestsTotal
}

// FeedLatency exposes the feed latency histogram.
func FeedLatency() prometheus.Histogram {
	RegisterMetrics()
	return feedLatencySeconds
}

// MetricsHandler serves the Prometheus scrape endpoint, making sure the
// activity collectors are registered even before the first write.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
