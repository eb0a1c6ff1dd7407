package movie

import (
	"errors"
	"net/http"
	"strconv"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/pathutil"
	"cineswipe/internal/handler/http/respond"
	catalogUC "cineswipe/internal/usecase/catalog"
	recUC "cineswipe/internal/usecase/recommend"
)

const (
	defaultSimilarLimit = 10
	maxSimilarLimit     = 50
)

type SimilarHandler struct {
	Svc     *recUC.Service
	Catalog *catalogUC.Service
}

// ServeHTTP returns the movies most similar to the given movie by
// content features. The ?n query parameter controls the result size.
func (h SimilarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	n := parseLimit(r.URL.Query().Get("n"))

	sims, err := h.Svc.GetSimilarMovies(r.Context(), id, n)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFitted) {
			code = http.StatusServiceUnavailable
		} else if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	out := make([]SimilarityDTO, 0, len(sims))
	for _, s := range sims {
		dto := SimilarityDTO{MovieID: s.MovieID, Similarity: s.Similarity}
		if movie, err := h.Catalog.Get(r.Context(), s.MovieID); err == nil {
			dto.Title = movie.Title
		}
		out = append(out, dto)
	}

	respond.JSON(w, http.StatusOK, out)
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultSimilarLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultSimilarLimit
	}
	if n > maxSimilarLimit {
		return maxSimilarLimit
	}
	return n
}
