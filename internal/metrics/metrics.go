package metrics

import "github.com/prometheus/client_golang/prometheus"

// Client-side Prometheus metrics.
var (
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "gateway_requests_total",
			Help:      "Total number of backend requests",
		},
		[]string{"operation", "status"},
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notevault",
			Name:      "gateway_request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	SessionTeardownsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "session_teardowns_total",
			Help:      "Sessions torn down after an authorization failure",
		},
	)

	ViewCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "view_cache_total",
			Help:      "View cache reads by outcome",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ViewInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "view_invalidations_total",
			Help:      "View invalidations applied after mutations",
		},
		[]string{"view"},
	)

	FetchRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "fetch_retries_total",
			Help:      "Automatic view fetch retries",
		},
	)

	ExpansionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notevault",
			Name:      "expansion_requests_total",
			Help:      "AI query expansion attempts",
		},
		[]string{"status"}, // "success" / "degraded"
	)
)

var registered bool

// Register registers client metrics on the given registerer. Must be called
// once from main; pass nil for the default registerer.
func Register(reg prometheus.Registerer) {
	if registered {
		return
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		GatewayRequestsTotal,
		GatewayRequestDuration,
		SessionTeardownsTotal,
		ViewCacheTotal,
		ViewInvalidationsTotal,
		FetchRetriesTotal,
		ExpansionRequestsTotal,
	)
	registered = true
}
