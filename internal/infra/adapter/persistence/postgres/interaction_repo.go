package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/repository"
)

// InteractionRepo implements repository.InteractionRepository for PostgreSQL.
// A (user_id, movie_id) pair holds at most one row; re-swiping overwrites the
// previous outcome.
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo creates a new PostgreSQL-based InteractionRepository.
func NewInteractionRepo(db *sql.DB) repository.InteractionRepository {
	return &InteractionRepo{db: db}
}

func (repo *InteractionRepo) List(ctx context.Context) ([]*entity.InteractionEvent, error) {
	const query = `
SELECT user_id, movie_id, outcome, created_at
FROM swipes
ORDER BY user_id, movie_id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]*entity.InteractionEvent, 0, 1000)
	for rows.Next() {
		var ev entity.InteractionEvent
		if err := rows.Scan(&ev.UserID, &ev.MovieID, &ev.Outcome, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (repo *InteractionRepo) Record(ctx context.Context, event *entity.InteractionEvent) error {
	if event == nil {
		return fmt.Errorf("Record: event is nil")
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("Record: %w", err)
	}

	const query = `
INSERT INTO swipes (user_id, movie_id, outcome, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (user_id, movie_id)
DO UPDATE SET
	outcome = EXCLUDED.outcome,
	created_at = NOW()
RETURNING created_at`
	err := repo.db.QueryRowContext(ctx, query,
		event.UserID, event.MovieID, event.Outcome,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("Record: %w", err)
	}
	return nil
}

func (repo *InteractionRepo) LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
SELECT movie_id
FROM swipes
WHERE user_id = $1 AND outcome IN ('like', 'superlike')
ORDER BY created_at, movie_id`
	return repo.movieIDs(ctx, "LikedMovieIDs", query, userID)
}

func (repo *InteractionRepo) SwipedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
SELECT movie_id
FROM swipes
WHERE user_id = $1
ORDER BY created_at, movie_id`
	return repo.movieIDs(ctx, "SwipedMovieIDs", query, userID)
}

func (repo *InteractionRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM swipes WHERE user_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByUser: %w", err)
	}
	return count, nil
}

func (repo *InteractionRepo) movieIDs(ctx context.Context, op, query string, userID int64) ([]int64, error) {
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 64)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
