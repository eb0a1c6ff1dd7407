// Package repository defines the persistence interfaces consumed by the
// usecase layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"cineswipe/internal/domain/entity"
)

// MovieRepository provides access to the movie catalog.
type MovieRepository interface {
	// List retrieves the whole catalog in stable id order. The training cycle
	// feeds this directly into the content engine.
	List(ctx context.Context) ([]*entity.Movie, error)
	// Get retrieves one movie by id. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Movie, error)
	// GetByTitle retrieves one movie by case-insensitive exact title match.
	// Returns (nil, nil) if not found. Used by the Letterboxd import matcher.
	GetByTitle(ctx context.Context, title string) (*entity.Movie, error)
	// Upsert creates the movie or updates its feature fields.
	Upsert(ctx context.Context, movie *entity.Movie) error
	// Count returns the catalog size.
	Count(ctx context.Context) (int64, error)
}
