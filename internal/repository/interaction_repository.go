package repository

import (
	"context"

	"cineswipe/internal/domain/entity"
)

// InteractionRepository provides access to the append-mostly swipe log.
// The log holds one row per (user, movie) pair; recording the same pair again
// overwrites the previous outcome.
type InteractionRepository interface {
	// List retrieves the full log for a training cycle, ordered by
	// (user_id, movie_id) so matrix row/column order is reproducible.
	List(ctx context.Context) ([]*entity.InteractionEvent, error)
	// Record upserts one swipe.
	Record(ctx context.Context, event *entity.InteractionEvent) error
	// LikedMovieIDs returns the movies a user liked or superliked, in swipe
	// order. Feeds the content engine's taste profile.
	LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error)
	// SwipedMovieIDs returns every movie the user has swiped in any
	// direction. Feeds the exclude set of a recommendation request.
	SwipedMovieIDs(ctx context.Context, userID int64) ([]int64, error)
	// CountByUser returns the user's total interaction count, the input of
	// the hybrid weight schedule.
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
