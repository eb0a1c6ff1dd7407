// Package movie provides HTTP handlers for catalog and similarity endpoints.
// It includes handlers for listing the catalog, upserting movies, and
// querying content-similar movies.
package movie

import "time"

// DTO represents the JSON structure for movie data transfer.
type DTO struct {
	ID        int64     `json:"id" example:"603"`
	Title     string    `json:"title" example:"The Matrix"`
	Genres    []string  `json:"genres" example:"scifi,action"`
	Keywords  []string  `json:"keywords" example:"simulation,hacker"`
	Overview  string    `json:"overview" example:"A computer hacker learns the truth about his reality."`
	CreatedAt time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
}

// SimilarityDTO is one entry of a similar-movies result.
type SimilarityDTO struct {
	MovieID    int64   `json:"movie_id" example:"604"`
	Title      string  `json:"title,omitempty" example:"The Matrix Reloaded"`
	Similarity float64 `json:"similarity" example:"0.83"`
}
