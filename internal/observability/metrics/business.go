package metrics

import (
	"time"
)

// RecordRecommendationServed records one served recommendation list and the
// time it took to compute.
func RecordRecommendationServed(algorithm string, duration time.Duration) {
	RecommendationsServedTotal.WithLabelValues(algorithm).Inc()
	RecommendationDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordRecommendationError records a failed recommendation request.
// errorType should be a stable low-cardinality label such as "not_fitted".
func RecordRecommendationError(algorithm, errorType string) {
	RecommendationErrors.WithLabelValues(algorithm, errorType).Inc()
}

// RecordLetterboxdImport records one import run.
// Status should be either "success" or "failure".
func RecordLetterboxdImport(success bool, matched, unmatched int) {
	status := "success"
	if !success {
		status = "failure"
	}
	LetterboxdImportsTotal.WithLabelValues(status).Inc()
	if matched > 0 {
		LetterboxdFilmsMatched.WithLabelValues("matched").Add(float64(matched))
	}
	if unmatched > 0 {
		LetterboxdFilmsMatched.WithLabelValues("unmatched").Add(float64(unmatched))
	}
}

// RecordTrainingCycle records one offline training cycle and updates the
// dataset gauges.
func RecordTrainingCycle(success bool, duration time.Duration, movies, events int) {
	status := "success"
	if !success {
		status = "failure"
	}
	ModelTrainingsTotal.WithLabelValues(status).Inc()
	ModelTrainingDuration.Observe(duration.Seconds())

	if success {
		ModelTrainedTimestamp.Set(float64(time.Now().Unix()))
		CatalogMoviesTotal.Set(float64(movies))
		SwipeEventsTotal.Set(float64(events))
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query (e.g. "list_movies", "record_swipe").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
