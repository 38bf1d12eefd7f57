package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_upstream_requests_total",
			Help: "Total number of calls made to the job data API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_upstream_request_duration_seconds",
			Help:    "Duration of calls made to the job data API in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"endpoint"},
	)

	LookupCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_lookup_cache_hits_total",
			Help: "Filter option lookups served from the in-memory cache",
		},
		[]string{"kind"},
	)

	StaleResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_stale_search_results_total",
			Help: "Search results discarded because a newer search was started",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Number of live dashboard sessions",
		},
	)
)

// Outcome labels for UpstreamRequests.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status_error"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

// ObserveUpstream records one call to the job data API.
func ObserveUpstream(endpoint, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}
