package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/admin"
	"cineswipe/internal/recommend"
	recUC "cineswipe/internal/usecase/recommend"
	trainUC "cineswipe/internal/usecase/train"
	"cineswipe/tests/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMovieRepo struct {
	movies []*entity.Movie
	err    error
}

func (s *stubMovieRepo) List(_ context.Context) ([]*entity.Movie, error) {
	return s.movies, s.err
}

func (s *stubMovieRepo) Get(_ context.Context, id int64) (*entity.Movie, error) {
	for _, m := range s.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (s *stubMovieRepo) GetByTitle(_ context.Context, _ string) (*entity.Movie, error) {
	return nil, nil
}

func (s *stubMovieRepo) Upsert(_ context.Context, _ *entity.Movie) error { return nil }

func (s *stubMovieRepo) Count(_ context.Context) (int64, error) { return int64(len(s.movies)), nil }

type stubInteractionRepo struct {
	events []*entity.InteractionEvent
}

func (s *stubInteractionRepo) List(_ context.Context) ([]*entity.InteractionEvent, error) {
	return s.events, nil
}

func (s *stubInteractionRepo) Record(_ context.Context, _ *entity.InteractionEvent) error {
	return nil
}

func (s *stubInteractionRepo) LikedMovieIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (s *stubInteractionRepo) SwipedMovieIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (s *stubInteractionRepo) CountByUser(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

type stubModelStore struct {
	saved *recommend.HybridModel
	err   error
}

func (s *stubModelStore) Save(_ context.Context, model *recommend.HybridModel) error {
	if s.err != nil {
		return s.err
	}
	s.saved = model
	return nil
}

func (s *stubModelStore) Load(_ context.Context) (*recommend.HybridModel, error) {
	return s.saved, nil
}

func TestRetrainHandler_Success(t *testing.T) {
	store := &stubModelStore{}
	trainer := &trainUC.Service{
		Movies:       &stubMovieRepo{movies: fixtures.SampleCatalog()},
		Interactions: &stubInteractionRepo{events: fixtures.SampleSwipeLog()},
		Store:        store,
		Config:       recommend.DefaultConfig(),
	}
	recSvc := recUC.NewService(store, &stubMovieRepo{movies: fixtures.SampleCatalog()}, &stubInteractionRepo{}, nil)
	h := admin.RetrainHandler{Trainer: trainer, Rec: recSvc}

	req := httptest.NewRequest(http.MethodPost, "/admin/retrain", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out admin.RetrainResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 5, out.Movies)
	assert.Equal(t, 3, out.Users)
	assert.Equal(t, 7, out.Events)

	// the fresh model must be serving immediately
	assert.True(t, recSvc.Ready())
	assert.NotNil(t, store.saved)
}

func TestRetrainHandler_EmptyCatalog(t *testing.T) {
	trainer := &trainUC.Service{
		Movies:       &stubMovieRepo{},
		Interactions: &stubInteractionRepo{},
		Store:        &stubModelStore{},
		Config:       recommend.DefaultConfig(),
	}
	h := admin.RetrainHandler{Trainer: trainer}

	req := httptest.NewRequest(http.MethodPost, "/admin/retrain", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRetrainHandler_LoadFailure(t *testing.T) {
	trainer := &trainUC.Service{
		Movies:       &stubMovieRepo{err: errors.New("connection refused")},
		Interactions: &stubInteractionRepo{},
		Store:        &stubModelStore{},
		Config:       recommend.DefaultConfig(),
	}
	h := admin.RetrainHandler{Trainer: trainer}

	req := httptest.NewRequest(http.MethodPost, "/admin/retrain", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
