// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobswipe",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobswipe",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	ProximityQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobswipe",
			Name:      "proximity_queries_total",
			Help:      "Total number of proximity queries by outcome",
		},
		[]string{"outcome"},
	)

	ExpansionBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobswipe",
			Name:      "expansion_batches_total",
			Help:      "Total number of expand-search batches by outcome",
		},
		[]string{"outcome"},
	)

	SuggestionCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobswipe",
			Name:      "suggestion_cache_ops_total",
			Help:      "Location suggestion cache operations by result",
		},
		[]string{"result"},
	)
)
