package metrics

import "github.com/prometheus/client_golang/prometheus"

// Global search metrics.
var (
	SearchSourceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_source_duration_seconds",
			Help:      "Per-source global search lookup duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"source", "status"},
	)

	SearchShortCircuitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_short_circuit_total",
			Help:      "Searches answered empty without a lookup because the query was too short",
		},
	)

	PopularRecordErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "popular_record_errors_total",
			Help:      "Failures recording a query into the popular searches ranking",
		},
	)

	ScorerFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_scorer_fallback_total",
			Help:      "Scorer failures that fell back to type priority order",
		},
		[]string{"scorer"},
	)
)
