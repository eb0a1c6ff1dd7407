package movie

import (
	"net/http"

	"cineswipe/internal/handler/http/respond"
	catalogUC "cineswipe/internal/usecase/catalog"
)

type ListHandler struct{ Svc *catalogUC.Service }

// ServeHTTP returns the full movie catalog.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, DTO{
			ID:        m.ID,
			Title:     m.Title,
			Genres:    m.Genres,
			Keywords:  m.Keywords,
			Overview:  m.Overview,
			CreatedAt: m.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, out)
}
