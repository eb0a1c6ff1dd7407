// Package importing turns a user's public Letterboxd ratings into swipe
// events, matching rated films against the local catalog by title.
package importing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/infra/letterboxd"
	"cineswipe/internal/observability/metrics"
	"cineswipe/internal/repository"
)

// RatingsFetcher retrieves a user's rated films from Letterboxd.
type RatingsFetcher interface {
	FetchRatings(ctx context.Context, username string) ([]letterboxd.RatedFilm, error)
}

// Service imports Letterboxd ratings for a user.
type Service struct {
	Fetcher      RatingsFetcher
	Movies       repository.MovieRepository
	Interactions repository.InteractionRepository
}

// Result summarizes one import run. Unmatched holds the titles that could
// not be found in the catalog, for surfacing back to the user.
type Result struct {
	Fetched   int
	Imported  int
	Unmatched []string
}

// Import fetches the user's rated films and records a swipe for every film
// found in the catalog. Films missing from the catalog are skipped; a partial
// import is still a success.
func (s *Service) Import(ctx context.Context, userID int64, username string) (*Result, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("import ratings: %w: user id must be positive", entity.ErrInvalidInput)
	}

	films, err := s.Fetcher.FetchRatings(ctx, username)
	if err != nil {
		metrics.RecordLetterboxdImport(false, 0, 0)
		return nil, fmt.Errorf("import ratings: %w", err)
	}

	result := &Result{Fetched: len(films)}
	for _, film := range films {
		movie, err := s.Movies.GetByTitle(ctx, film.Title)
		if err != nil {
			metrics.RecordLetterboxdImport(false, result.Imported, len(result.Unmatched))
			return nil, fmt.Errorf("import ratings: %w", err)
		}
		if movie == nil {
			result.Unmatched = append(result.Unmatched, film.Title)
			continue
		}

		event := &entity.InteractionEvent{
			UserID:    userID,
			MovieID:   movie.ID,
			Outcome:   film.Outcome(),
			CreatedAt: time.Now(),
		}
		if err := s.Interactions.Record(ctx, event); err != nil {
			metrics.RecordLetterboxdImport(false, result.Imported, len(result.Unmatched))
			return nil, fmt.Errorf("import ratings: %w", err)
		}
		result.Imported++
	}

	metrics.RecordLetterboxdImport(true, result.Imported, len(result.Unmatched))
	slog.Info("letterboxd import complete",
		slog.Int64("user_id", userID),
		slog.String("username", username),
		slog.Int("fetched", result.Fetched),
		slog.Int("imported", result.Imported),
		slog.Int("unmatched", len(result.Unmatched)))

	return result, nil
}
