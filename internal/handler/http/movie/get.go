package movie

import (
	"errors"
	"net/http"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/pathutil"
	"cineswipe/internal/handler/http/respond"
	catalogUC "cineswipe/internal/usecase/catalog"
)

type GetHandler struct{ Svc *catalogUC.Service }

// ServeHTTP returns a single movie by ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	movie, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		} else if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, DTO{
		ID:        movie.ID,
		Title:     movie.Title,
		Genres:    movie.Genres,
		Keywords:  movie.Keywords,
		Overview:  movie.Overview,
		CreatedAt: movie.CreatedAt,
	})
}
