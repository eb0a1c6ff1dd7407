// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Movie and InteractionEvent, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Movie represents a movie feature record in the catalog.
// Genres and Keywords are ordered tag lists; Overview is free text.
// A record is immutable once it has been fit into a vectorizer for a training cycle.
type Movie struct {
	ID        int64
	Title     string
	Genres    []string
	Keywords  []string
	Overview  string
	CreatedAt time.Time
}

// Validate checks that the movie record can be stored and vectorized.
// Returns a ValidationError describing the first failing field.
func (m *Movie) Validate() error {
	if m.ID <= 0 {
		return &ValidationError{Field: "movie_id", Message: "movie ID must be positive"}
	}
	if m.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	return nil
}

// HasFeatures reports whether the movie carries any signal the vectorizer can use.
// A movie with no genres, keywords, or overview produces an all-zero vector and is
// still fit (it keeps the row/id invariant), but callers may want to log it.
func (m *Movie) HasFeatures() bool {
	return len(m.Genres) > 0 || len(m.Keywords) > 0 || m.Overview != ""
}
