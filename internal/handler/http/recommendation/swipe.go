package recommendation

import (
	"encoding/json"
	"errors"
	"net/http"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/pathutil"
	"cineswipe/internal/handler/http/respond"
	recUC "cineswipe/internal/usecase/recommend"
)

type SwipeHandler struct{ Svc *recUC.Service }

// ServeHTTP records one swipe for a user. Re-swiping a movie overwrites
// the previous outcome.
func (h SwipeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		MovieID int64  `json:"movie_id"`
		Outcome string `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.MovieID == 0 || req.Outcome == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("movie_id and outcome are required"))
		return
	}

	event := &entity.InteractionEvent{
		UserID:  userID,
		MovieID: req.MovieID,
		Outcome: entity.Outcome(req.Outcome),
	}
	if err := event.Validate(); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.RecordSwipe(r.Context(), event); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
