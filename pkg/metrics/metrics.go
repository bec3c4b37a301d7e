package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	TimelineBuildDuration prometheus.Histogram
	TimelineEvents        prometheus.Histogram
	SourceFetchFailures   *prometheus.CounterVec
	SourceBreakerState    *prometheus.GaugeVec
	SourceRowsRejected    *prometheus.CounterVec
	FetchesDiscarded      prometheus.Counter

	TrendSeriesPoints *prometheus.HistogramVec

	PrescriptionAnalyses *prometheus.CounterVec

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

// NewCollector registers every metric on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		TimelineBuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "timeline",
			Name:      "build_duration_seconds",
			Help:      "Time to fetch, aggregate and filter one timeline.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),

		TimelineEvents: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "timeline",
			Name:      "events",
			Help:      "Aggregated events per timeline before filtering.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),

		SourceFetchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "fetch_failures_total",
			Help:      "Record store reads that failed and were degraded to an empty collection.",
		}, []string{"source"}),

		SourceBreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "breaker_state",
			Help:      "Circuit breaker state per source: 0 closed, 1 half-open, 2 open.",
		}, []string{"source"}),

		SourceRowsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "rows_rejected_total",
			Help:      "Stored rows left out of reads because they break a domain invariant.",
		}, []string{"source"}),

		FetchesDiscarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "fetches_discarded_total",
			Help:      "Fetch results dropped because the caller went away first.",
		}),

		TrendSeriesPoints: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "vitals",
			Name:      "trend_points",
			Help:      "Points returned per trend series.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6},
		}, []string{"metric"}),

		PrescriptionAnalyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "prescriptions",
			Name:      "analyses_total",
			Help:      "Prescription analyses by outcome.",
		}, []string{"outcome"}),

		AuditEntriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
