package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SubmissionsTotal считает попытки отправки по режиму и исходу.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_submissions_total",
			Help: "Listing submissions by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_submission_duration_seconds",
			Help:    "Duration of calls to the property API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	EditorSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "editor_sessions_active",
			Help: "Open editor sessions",
		},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"catalog", "result"},
	)
)
