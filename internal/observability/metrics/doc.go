// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, active connections)
//   - Recommendation metrics (served counts, latency, errors)
//   - Training cycle metrics (duration, dataset size, timestamps)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "cineswipe/internal/observability/metrics"
//
//	func serveRecommendations(userID int64) {
//	    start := time.Now()
//	    // ... score and rank ...
//
//	    metrics.RecordRecommendationServed("hybrid", time.Since(start))
//	}
package metrics
