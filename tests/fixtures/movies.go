// Package fixtures provides reusable test data builders shared across test
// suites, so individual tests do not repeat catalog and swipe-log setup.
package fixtures

import (
	"time"

	"cineswipe/internal/domain/entity"
)

// MovieOption is a functional option for customizing test movies.
type MovieOption func(*entity.Movie)

// NewTestMovie creates a valid Movie with sensible defaults.
// Use functional options to customize it for specific test cases.
//
// Example:
//
//	movie := NewTestMovie()
//	movie := NewTestMovie(WithMovieID(42), WithGenres("horror"))
func NewTestMovie(opts ...MovieOption) *entity.Movie {
	m := &entity.Movie{
		ID:        1,
		Title:     "Test Movie",
		Genres:    []string{"drama"},
		Keywords:  []string{"friendship"},
		Overview:  "Two friends navigate a turning point in their lives.",
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithMovieID sets the movie ID.
func WithMovieID(id int64) MovieOption {
	return func(m *entity.Movie) {
		m.ID = id
	}
}

// WithTitle sets the movie title.
func WithTitle(title string) MovieOption {
	return func(m *entity.Movie) {
		m.Title = title
	}
}

// WithGenres sets the genre tags.
func WithGenres(genres ...string) MovieOption {
	return func(m *entity.Movie) {
		m.Genres = genres
	}
}

// WithKeywords sets the keyword tags.
func WithKeywords(keywords ...string) MovieOption {
	return func(m *entity.Movie) {
		m.Keywords = keywords
	}
}

// WithOverview sets the overview text.
func WithOverview(overview string) MovieOption {
	return func(m *entity.Movie) {
		m.Overview = overview
	}
}

// SampleCatalog returns a small catalog with two clear genre clusters, useful
// for asserting content-model ranking without hand-building vectors.
func SampleCatalog() []*entity.Movie {
	return []*entity.Movie{
		NewTestMovie(WithMovieID(1), WithTitle("Star Raiders"),
			WithGenres("scifi", "action"), WithKeywords("space", "rebellion"),
			WithOverview("A ragtag crew fights an empire among the stars.")),
		NewTestMovie(WithMovieID(2), WithTitle("Galaxy's Edge"),
			WithGenres("scifi", "adventure"), WithKeywords("space", "exploration"),
			WithOverview("Explorers chart the far edge of the galaxy.")),
		NewTestMovie(WithMovieID(3), WithTitle("Void Runner"),
			WithGenres("scifi", "thriller"), WithKeywords("space", "heist"),
			WithOverview("A smuggler runs one last job across hostile space.")),
		NewTestMovie(WithMovieID(4), WithTitle("Deep Orbit"),
			WithGenres("scifi", "drama"), WithKeywords("space", "isolation"),
			WithOverview("A lone astronaut drifts in a failing station.")),
		NewTestMovie(WithMovieID(5), WithTitle("Summer Letters"),
			WithGenres("romance", "drama"), WithKeywords("love", "letters"),
			WithOverview("Two pen pals fall in love over a long summer.")),
	}
}
