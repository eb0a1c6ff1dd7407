package movie

import (
	"encoding/json"
	"errors"
	"net/http"

	"cineswipe/internal/handler/http/respond"
	catalogUC "cineswipe/internal/usecase/catalog"
)

type CreateHandler struct{ Svc *catalogUC.Service }

// ServeHTTP adds a movie to the catalog or replaces its feature record.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64    `json:"id"`
		Title    string   `json:"title"`
		Genres   []string `json:"genres"`
		Keywords []string `json:"keywords"`
		Overview string   `json:"overview"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ID == 0 || req.Title == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("id and title are required"))
		return
	}

	if err := h.Svc.Upsert(r.Context(), catalogUC.UpsertInput{
		ID:       req.ID,
		Title:    req.Title,
		Genres:   req.Genres,
		Keywords: req.Keywords,
		Overview: req.Overview,
	}); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
