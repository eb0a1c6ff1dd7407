// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Recommendation metrics track the serving side of the engine
var (
	// RecommendationsServedTotal counts served recommendation lists by algorithm
	RecommendationsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"algorithm"},
	)

	// RecommendationDuration measures time to compute one recommendation list
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time taken to compute a recommendation list",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"algorithm"},
	)

	// RecommendationErrors counts failed recommendation requests
	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"algorithm", "error_type"},
	)

	// LetterboxdImportsTotal counts Letterboxd import runs by status
	LetterboxdImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterboxd_imports_total",
			Help: "Total number of Letterboxd import runs",
		},
		[]string{"status"},
	)

	// LetterboxdFilmsMatched counts imported films by match result
	LetterboxdFilmsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "letterboxd_films_matched_total",
			Help: "Total number of Letterboxd films by catalog match result",
		},
		[]string{"result"}, // result: matched, unmatched
	)
)

// Training metrics track the offline model trainer
var (
	// ModelTrainingDuration measures the length of one full training cycle
	ModelTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_training_duration_seconds",
			Help:    "Time taken for one full model training cycle",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// ModelTrainingsTotal counts training cycles by status
	ModelTrainingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_trainings_total",
			Help: "Total number of model training cycles",
		},
		[]string{"status"},
	)

	// ModelTrainedTimestamp records when the active model was last trained
	ModelTrainedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_trained_timestamp_seconds",
			Help: "Unix time of the last successful model training",
		},
	)

	// CatalogMoviesTotal tracks catalog size at the last training cycle
	CatalogMoviesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies_total",
			Help: "Number of movies in the catalog at the last training cycle",
		},
	)

	// SwipeEventsTotal tracks swipe log size at the last training cycle
	SwipeEventsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swipe_events_total",
			Help: "Number of swipe events at the last training cycle",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
