package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/repository"
)

// MovieRepo implements repository.MovieRepository for PostgreSQL.
// Genre and keyword tag lists are stored as JSONB.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo creates a new PostgreSQL-based MovieRepository.
func NewMovieRepo(db *sql.DB) repository.MovieRepository {
	return &MovieRepo{db: db}
}

func (repo *MovieRepo) List(ctx context.Context) ([]*entity.Movie, error) {
	const query = `
SELECT id, title, genres, keywords, overview, created_at
FROM movies
ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	movies := make([]*entity.Movie, 0, 1000)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

func (repo *MovieRepo) Get(ctx context.Context, id int64) (*entity.Movie, error) {
	const query = `
SELECT id, title, genres, keywords, overview, created_at
FROM movies
WHERE id = $1
LIMIT 1`
	movie, err := scanMovie(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return movie, nil
}

func (repo *MovieRepo) GetByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	const query = `
SELECT id, title, genres, keywords, overview, created_at
FROM movies
WHERE lower(title) = lower($1)
LIMIT 1`
	movie, err := scanMovie(repo.db.QueryRowContext(ctx, query, title))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByTitle: %w", err)
	}
	return movie, nil
}

func (repo *MovieRepo) Upsert(ctx context.Context, movie *entity.Movie) error {
	if movie == nil {
		return fmt.Errorf("Upsert: movie is nil")
	}
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	genres, err := json.Marshal(tags(movie.Genres))
	if err != nil {
		return fmt.Errorf("Upsert: marshal genres: %w", err)
	}
	keywords, err := json.Marshal(tags(movie.Keywords))
	if err != nil {
		return fmt.Errorf("Upsert: marshal keywords: %w", err)
	}

	const query = `
INSERT INTO movies (id, title, genres, keywords, overview, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (id)
DO UPDATE SET
	title = EXCLUDED.title,
	genres = EXCLUDED.genres,
	keywords = EXCLUDED.keywords,
	overview = EXCLUDED.overview
RETURNING created_at`
	err = repo.db.QueryRowContext(ctx, query,
		movie.ID, movie.Title, genres, keywords, movie.Overview,
	).Scan(&movie.CreatedAt)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *MovieRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM movies`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// tags normalizes a nil slice to an empty one so JSONB columns always hold an
// array, never null.
func tags(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*entity.Movie, error) {
	var movie entity.Movie
	var genres, keywords []byte
	if err := row.Scan(&movie.ID, &movie.Title, &genres, &keywords,
		&movie.Overview, &movie.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(genres, &movie.Genres); err != nil {
		return nil, fmt.Errorf("unmarshal genres: %w", err)
	}
	if err := json.Unmarshal(keywords, &movie.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}
	return &movie, nil
}
