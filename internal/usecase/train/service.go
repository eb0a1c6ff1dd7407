// Package train runs the offline training cycle: load the catalog and swipe
// log, fit the hybrid model, and persist the artifact.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/observability/metrics"
	"cineswipe/internal/recommend"
	"cineswipe/internal/repository"
)

// Service runs training cycles. Sessions may be nil when version records are
// disabled.
type Service struct {
	Movies       repository.MovieRepository
	Interactions repository.InteractionRepository
	Store        repository.ModelStore
	Sessions     repository.SessionRepository
	Config       recommend.Config
}

// Result summarizes one completed training cycle.
type Result struct {
	Model     *recommend.HybridModel
	Movies    int
	Users     int
	Events    int
	TrainedAt time.Time
	Duration  time.Duration
}

// Train loads the dataset, fits a fresh model, and saves the artifact.
// Catalog and swipe log load in parallel; both must succeed.
func (s *Service) Train(ctx context.Context) (*Result, error) {
	start := time.Now()

	var (
		movies []*entity.Movie
		events []*entity.InteractionEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = s.Movies.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.Interactions.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.RecordTrainingCycle(false, time.Since(start), 0, 0)
		return nil, fmt.Errorf("load training data: %w", err)
	}

	slog.Info("training dataset loaded",
		slog.Int("movies", len(movies)),
		slog.Int("events", len(events)))

	model := recommend.NewHybridModel(s.Config)
	if err := model.Fit(movies, events); err != nil {
		metrics.RecordTrainingCycle(false, time.Since(start), len(movies), len(events))
		return nil, fmt.Errorf("fit model: %w", err)
	}

	if err := s.Store.Save(ctx, model); err != nil {
		metrics.RecordTrainingCycle(false, time.Since(start), len(movies), len(events))
		return nil, fmt.Errorf("save model: %w", err)
	}

	users := make(map[int64]bool, 64)
	for _, ev := range events {
		users[ev.UserID] = true
	}

	result := &Result{
		Model:     model,
		Movies:    len(movies),
		Users:     len(users),
		Events:    len(events),
		TrainedAt: start,
		Duration:  time.Since(start),
	}
	metrics.RecordTrainingCycle(true, result.Duration, result.Movies, result.Events)

	s.recordVersion(ctx, result)

	slog.Info("training cycle complete",
		slog.Int("movies", result.Movies),
		slog.Int("events", result.Events),
		slog.Duration("duration", result.Duration),
		slog.Bool("collaborative", model.CollaborativeAvailable()))

	return result, nil
}

// recordVersion writes the version document. Failing to record a version is
// logged but does not fail the cycle; the artifact is already saved.
func (s *Service) recordVersion(ctx context.Context, result *Result) {
	if s.Sessions == nil {
		return
	}

	version := repository.ModelVersion{
		Name:      fmt.Sprintf("hybrid-%s", result.TrainedAt.UTC().Format("20060102-150405")),
		TrainedAt: result.TrainedAt,
		Movies:    result.Movies,
		Users:     result.Users,
		Events:    result.Events,
	}
	if pathed, ok := s.Store.(interface{ Path() string }); ok {
		version.Artifact = pathed.Path()
	}

	if err := s.Sessions.RecordModelVersion(ctx, version); err != nil {
		slog.Warn("model version record failed", slog.Any("error", err))
	}
}
