package importing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/infra/letterboxd"
	"cineswipe/internal/usecase/importing"
	"cineswipe/tests/fixtures"
)

type stubFetcher struct {
	films []letterboxd.RatedFilm
	err   error
}

func (s *stubFetcher) FetchRatings(_ context.Context, _ string) ([]letterboxd.RatedFilm, error) {
	return s.films, s.err
}

type stubMovieRepo struct {
	byTitle map[string]*entity.Movie
	err     error
}

func (s *stubMovieRepo) List(_ context.Context) ([]*entity.Movie, error)      { return nil, nil }
func (s *stubMovieRepo) Get(_ context.Context, _ int64) (*entity.Movie, error) { return nil, nil }
func (s *stubMovieRepo) GetByTitle(_ context.Context, title string) (*entity.Movie, error) {
	return s.byTitle[title], s.err
}
func (s *stubMovieRepo) Upsert(_ context.Context, _ *entity.Movie) error { return nil }
func (s *stubMovieRepo) Count(_ context.Context) (int64, error)          { return 0, nil }

type recordingInteractionRepo struct {
	recorded []*entity.InteractionEvent
	err      error
}

func (s *recordingInteractionRepo) List(_ context.Context) ([]*entity.InteractionEvent, error) {
	return s.recorded, nil
}
func (s *recordingInteractionRepo) Record(_ context.Context, ev *entity.InteractionEvent) error {
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, ev)
	return nil
}
func (s *recordingInteractionRepo) LikedMovieIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}
func (s *recordingInteractionRepo) SwipedMovieIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}
func (s *recordingInteractionRepo) CountByUser(_ context.Context, _ int64) (int64, error) {
	return int64(len(s.recorded)), nil
}

func catalogByTitle() map[string]*entity.Movie {
	byTitle := make(map[string]*entity.Movie)
	for _, m := range fixtures.SampleCatalog() {
		byTitle[m.Title] = m
	}
	return byTitle
}

func TestImport_MatchesAndRecords(t *testing.T) {
	fetcher := &stubFetcher{films: []letterboxd.RatedFilm{
		{Title: "Star Raiders", Stars: 5, Liked: true},
		{Title: "Summer Letters", Stars: 2, Liked: false},
		{Title: "Not In Catalog", Stars: 4, Liked: true},
	}}
	interactions := &recordingInteractionRepo{}
	svc := &importing.Service{
		Fetcher:      fetcher,
		Movies:       &stubMovieRepo{byTitle: catalogByTitle()},
		Interactions: interactions,
	}

	result, err := svc.Import(context.Background(), 7, "cinefan")

	require.NoError(t, err)
	assert.Equal(t, 3, result.Fetched)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"Not In Catalog"}, result.Unmatched)

	require.Len(t, interactions.recorded, 2)
	assert.Equal(t, int64(7), interactions.recorded[0].UserID)
	assert.Equal(t, int64(1), interactions.recorded[0].MovieID)
	assert.Equal(t, entity.OutcomeSuperlike, interactions.recorded[0].Outcome)
	assert.Equal(t, entity.OutcomeDislike, interactions.recorded[1].Outcome)
}

func TestImport_FetchError(t *testing.T) {
	boom := errors.New("profile not found")
	svc := &importing.Service{
		Fetcher:      &stubFetcher{err: boom},
		Movies:       &stubMovieRepo{},
		Interactions: &recordingInteractionRepo{},
	}

	result, err := svc.Import(context.Background(), 7, "nobody")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestImport_InvalidUserID(t *testing.T) {
	svc := &importing.Service{
		Fetcher:      &stubFetcher{},
		Movies:       &stubMovieRepo{},
		Interactions: &recordingInteractionRepo{},
	}

	_, err := svc.Import(context.Background(), 0, "cinefan")

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestImport_RecordError(t *testing.T) {
	boom := errors.New("db down")
	svc := &importing.Service{
		Fetcher: &stubFetcher{films: []letterboxd.RatedFilm{
			{Title: "Star Raiders", Stars: 4, Liked: true},
		}},
		Movies:       &stubMovieRepo{byTitle: catalogByTitle()},
		Interactions: &recordingInteractionRepo{err: boom},
	}

	result, err := svc.Import(context.Background(), 7, "cinefan")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestImport_NoRatings(t *testing.T) {
	svc := &importing.Service{
		Fetcher:      &stubFetcher{},
		Movies:       &stubMovieRepo{},
		Interactions: &recordingInteractionRepo{},
	}

	result, err := svc.Import(context.Background(), 7, "quietuser")

	require.NoError(t, err)
	assert.Zero(t, result.Fetched)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Unmatched)
}
