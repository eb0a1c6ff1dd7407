// Package catalog provides movie catalog management use cases.
package catalog

import (
	"context"
	"fmt"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/repository"
)

// UpsertInput represents the input parameters for adding or replacing a catalog movie.
type UpsertInput struct {
	ID       int64
	Title    string
	Genres   []string
	Keywords []string
	Overview string
}

// Service provides catalog management use cases.
// It handles business logic for movie operations and delegates persistence to the repository.
type Service struct {
	Movies repository.MovieRepository
}

// List retrieves the full movie catalog from the repository.
func (s *Service) List(ctx context.Context) ([]*entity.Movie, error) {
	movies, err := s.Movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// Get retrieves a single movie by ID.
// Returns ErrNotFound when no movie with the given ID exists.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Movie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: movie ID must be positive", entity.ErrInvalidInput)
	}
	movie, err := s.Movies.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %d", entity.ErrNotFound, id)
	}
	return movie, nil
}

// Upsert adds a movie to the catalog or replaces its feature record.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) error {
	movie := &entity.Movie{
		ID:       in.ID,
		Title:    in.Title,
		Genres:   in.Genres,
		Keywords: in.Keywords,
		Overview: in.Overview,
	}
	if err := movie.Validate(); err != nil {
		return err
	}
	if err := s.Movies.Upsert(ctx, movie); err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}
	return nil
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Movies.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return int(n), nil
}
