package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. HTTP Requests Total (Counter)
	// Counts how many requests arrive, labeled by method, path, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oceanrepo_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"}, // Labels
	)

	// 2. HTTP Request Duration (Histogram)
	// Measures server response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "oceanrepo_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// Matching is in-memory; the slow buckets only matter for index rebuilds.
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// 3. Indexed Species (Gauge)
	// Tracks how many species the loaded reference index covers.
	IndexedSpecies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oceanrepo_indexed_species_total",
			Help: "Number of species in the loaded reference index",
		},
	)

	// 4. Identifications by confidence (Counter)
	// One increment per returned best match, labeled by confidence band.
	IdentificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oceanrepo_identifications_total",
			Help: "Total species identifications served, by confidence level",
		},
		[]string{"confidence"},
	)

	// 5. Index Rebuild Duration (Histogram)
	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oceanrepo_index_rebuild_duration_seconds",
			Help:    "Duration of reference index rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
