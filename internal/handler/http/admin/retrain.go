// Package admin provides operational HTTP handlers such as on-demand
// model retraining.
package admin

import (
	"errors"
	"net/http"
	"time"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/respond"
	recUC "cineswipe/internal/usecase/recommend"
	trainUC "cineswipe/internal/usecase/train"
)

// RetrainResultDTO summarizes one training cycle for the client.
type RetrainResultDTO struct {
	Movies     int       `json:"movies" example:"1500"`
	Users      int       `json:"users" example:"320"`
	Events     int       `json:"events" example:"48211"`
	TrainedAt  time.Time `json:"trained_at" example:"2025-10-26T03:00:00Z"`
	DurationMS int64     `json:"duration_ms" example:"1843"`
}

type RetrainHandler struct {
	Trainer *trainUC.Service
	Rec     *recUC.Service
}

// ServeHTTP trains a fresh model from the current catalog and swipe log,
// persists it, and swaps it into the serving layer.
func (h RetrainHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Trainer.Train(r.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusConflict
		}
		respond.SafeError(w, code, err)
		return
	}

	if h.Rec != nil {
		h.Rec.SetModel(result.Model)
	}

	respond.JSON(w, http.StatusOK, RetrainResultDTO{
		Movies:     result.Movies,
		Users:      result.Users,
		Events:     result.Events,
		TrainedAt:  result.TrainedAt,
		DurationMS: result.Duration.Milliseconds(),
	})
}
