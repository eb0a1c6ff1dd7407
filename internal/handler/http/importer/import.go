// Package importer provides the HTTP handler for Letterboxd ratings import.
package importer

import (
	"encoding/json"
	"errors"
	"net/http"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/respond"
	importUC "cineswipe/internal/usecase/importing"
	recUC "cineswipe/internal/usecase/recommend"

	"github.com/sony/gobreaker"
)

// ResultDTO summarizes one import run for the client.
type ResultDTO struct {
	Fetched   int      `json:"fetched" example:"120"`
	Imported  int      `json:"imported" example:"34"`
	Unmatched []string `json:"unmatched,omitempty"`
}

type ImportHandler struct {
	Svc *importUC.Service
	Rec *recUC.Service
}

// ServeHTTP imports a user's public Letterboxd ratings as swipe events and
// feeds the imported count into the recommendation layer so the scoring can
// reflect imported taste history.
func (h ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UserID == 0 || req.Username == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("user_id and username are required"))
		return
	}

	result, err := h.Svc.Import(r.Context(), req.UserID, req.Username)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		} else if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			code = http.StatusServiceUnavailable
		}
		respond.SafeError(w, code, err)
		return
	}

	if h.Rec != nil && result.Imported > 0 {
		h.Rec.SetImportedRatings(req.UserID, result.Imported)
	}

	respond.JSON(w, http.StatusOK, ResultDTO{
		Fetched:   result.Fetched,
		Imported:  result.Imported,
		Unmatched: result.Unmatched,
	})
}
