// Package recommend provides the serving-side use cases: answering
// similarity and recommendation queries against the currently loaded model.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/observability/metrics"
	"cineswipe/internal/recommend"
	"cineswipe/internal/repository"
)

// Service answers recommendation queries. The fitted model is swapped
// atomically, so a retrain never blocks in-flight requests.
type Service struct {
	Movies       repository.MovieRepository
	Interactions repository.InteractionRepository
	Sessions     repository.SessionRepository
	Store        repository.ModelStore

	model atomic.Pointer[recommend.HybridModel]

	mu             sync.RWMutex
	importedCounts map[int64]int
}

// NewService creates a serving service. Sessions may be nil when session
// logging is disabled.
func NewService(store repository.ModelStore, movies repository.MovieRepository,
	interactions repository.InteractionRepository, sessions repository.SessionRepository) *Service {
	return &Service{
		Movies:         movies,
		Interactions:   interactions,
		Sessions:       sessions,
		Store:          store,
		importedCounts: make(map[int64]int),
	}
}

// Reload loads the latest artifact from the model store and swaps it in.
// A missing artifact is not an error at startup; the service simply keeps
// answering ErrNotFitted until the trainer produces one.
func (s *Service) Reload(ctx context.Context) error {
	model, err := s.Store.Load(ctx)
	if err != nil {
		var perr *entity.PersistenceError
		if errors.As(err, &perr) && perr.Missing {
			slog.Warn("no model artifact yet, serving unfitted",
				slog.String("path", perr.Path))
			return nil
		}
		return fmt.Errorf("reload model: %w", err)
	}

	s.SetModel(model)
	return nil
}

// SetModel swaps in a freshly fitted model.
func (s *Service) SetModel(model *recommend.HybridModel) {
	s.model.Store(model)
	slog.Info("serving model swapped",
		slog.Bool("collaborative", model.CollaborativeAvailable()))
}

// Ready reports whether a fitted model is loaded.
func (s *Service) Ready() bool {
	return s.model.Load() != nil
}

// SetImportedRatings records how many Letterboxd ratings were imported for a
// user, feeding the hybrid model's rating hints.
func (s *Service) SetImportedRatings(userID int64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importedCounts[userID] = count
}

func (s *Service) importedRatings(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.importedCounts[userID]
}

func (s *Service) loaded() (*recommend.HybridModel, error) {
	model := s.model.Load()
	if model == nil {
		return nil, entity.ErrNotFitted
	}
	return model, nil
}

// GetSimilarMovies returns the catalog's most similar movies to the given one.
func (s *Service) GetSimilarMovies(ctx context.Context, movieID int64, n int) ([]recommend.MovieSimilarity, error) {
	model, err := s.loaded()
	if err != nil {
		metrics.RecordRecommendationError(string(entity.AlgorithmContentBased), "not_fitted")
		return nil, fmt.Errorf("similar movies: %w", err)
	}

	start := time.Now()
	sims, err := model.GetSimilarMovies(movieID, n)
	if err != nil {
		return nil, fmt.Errorf("similar movies: %w", err)
	}
	metrics.RecordRecommendationServed(string(entity.AlgorithmContentBased), time.Since(start))
	return sims, nil
}

// RecommendContentBased recommends from the user's liked movies only.
func (s *Service) RecommendContentBased(ctx context.Context, userID int64, n int) ([]*entity.Recommendation, error) {
	model, err := s.loaded()
	if err != nil {
		metrics.RecordRecommendationError(string(entity.AlgorithmContentBased), "not_fitted")
		return nil, fmt.Errorf("content recommendations: %w", err)
	}

	liked, swiped, _, err := s.userHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("content recommendations: %w", err)
	}

	start := time.Now()
	recs, err := model.RecommendContentBased(liked, n, swiped)
	if err != nil {
		return nil, fmt.Errorf("content recommendations: %w", err)
	}
	metrics.RecordRecommendationServed(string(entity.AlgorithmContentBased), time.Since(start))

	s.logSession(userID, recs)
	return recs, nil
}

// RecommendCollaborative recommends from neighbor users' swipes only.
func (s *Service) RecommendCollaborative(ctx context.Context, userID int64, n int) ([]*entity.Recommendation, error) {
	model, err := s.loaded()
	if err != nil {
		metrics.RecordRecommendationError(string(entity.AlgorithmCollaborative), "not_fitted")
		return nil, fmt.Errorf("collaborative recommendations: %w", err)
	}

	_, swiped, _, err := s.userHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collaborative recommendations: %w", err)
	}

	start := time.Now()
	recs, err := model.RecommendCollaborative(userID, n, swiped)
	if err != nil {
		if errors.Is(err, entity.ErrNotFitted) {
			metrics.RecordRecommendationError(string(entity.AlgorithmCollaborative), "not_fitted")
		}
		return nil, fmt.Errorf("collaborative recommendations: %w", err)
	}
	metrics.RecordRecommendationServed(string(entity.AlgorithmCollaborative), time.Since(start))

	s.logSession(userID, recs)
	return recs, nil
}

// RecommendHybrid blends the content and collaborative models with weights
// adapted to how much swipe history the user has.
func (s *Service) RecommendHybrid(ctx context.Context, userID int64, n int) ([]*entity.Recommendation, error) {
	model, err := s.loaded()
	if err != nil {
		metrics.RecordRecommendationError(string(entity.AlgorithmHybrid), "not_fitted")
		return nil, fmt.Errorf("hybrid recommendations: %w", err)
	}

	liked, swiped, total, err := s.userHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("hybrid recommendations: %w", err)
	}

	req := recommend.HybridRequest{
		UserID:           userID,
		LikedMovieIDs:    liked,
		N:                n,
		ExcludeIDs:       swiped,
		InteractionCount: total,
	}
	if imported := s.importedRatings(userID); imported > 0 {
		req.Hints = &recommend.RatingHints{ImportedRatings: imported}
	}

	start := time.Now()
	recs, err := model.RecommendForUser(req)
	if err != nil {
		return nil, fmt.Errorf("hybrid recommendations: %w", err)
	}
	metrics.RecordRecommendationServed(string(entity.AlgorithmHybrid), time.Since(start))

	s.logSession(userID, recs)
	return recs, nil
}

// RecordSwipe validates and stores one swipe event.
func (s *Service) RecordSwipe(ctx context.Context, event *entity.InteractionEvent) error {
	if event == nil {
		return fmt.Errorf("record swipe: %w: event is nil", entity.ErrInvalidInput)
	}
	if movie, err := s.Movies.Get(ctx, event.MovieID); err != nil {
		return fmt.Errorf("record swipe: %w", err)
	} else if movie == nil {
		return fmt.Errorf("record swipe: movie %d: %w", event.MovieID, entity.ErrNotFound)
	}
	if err := s.Interactions.Record(ctx, event); err != nil {
		return fmt.Errorf("record swipe: %w", err)
	}
	return nil
}

// userHistory loads the per-user state every recommendation needs: liked
// movie ids, all swiped ids for exclusion, and the total swipe count.
func (s *Service) userHistory(ctx context.Context, userID int64) (liked, swiped []int64, total int, err error) {
	liked, err = s.Interactions.LikedMovieIDs(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	swiped, err = s.Interactions.SwipedMovieIDs(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	count, err := s.Interactions.CountByUser(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	return liked, swiped, int(count), nil
}

// logSession writes the served list to the session store in the background.
// Session logging must never fail or slow down a recommendation response.
func (s *Service) logSession(userID int64, recs []*entity.Recommendation) {
	if s.Sessions == nil || len(recs) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Sessions.RecordRecommendations(ctx, userID, recs); err != nil {
			slog.Warn("session log write failed",
				slog.Int64("user_id", userID),
				slog.Any("error", err))
		}
	}()
}
