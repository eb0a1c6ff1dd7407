package recommendation

import (
	"context"
	"errors"
	"net/http"

	"cineswipe/internal/domain/entity"
	"cineswipe/internal/handler/http/pathutil"
	"cineswipe/internal/handler/http/respond"
	recUC "cineswipe/internal/usecase/recommend"
)

// recommendFunc is the signature shared by the three recommendation modes.
type recommendFunc func(ctx context.Context, userID int64, n int) ([]*entity.Recommendation, error)

// RecommendHandler serves one recommendation mode for a user.
type RecommendHandler struct {
	Recommend recommendFunc
}

// HybridHandler returns the handler for blended recommendations.
func HybridHandler(svc *recUC.Service) RecommendHandler {
	return RecommendHandler{Recommend: svc.RecommendHybrid}
}

// ContentHandler returns the handler for content-only recommendations.
func ContentHandler(svc *recUC.Service) RecommendHandler {
	return RecommendHandler{Recommend: svc.RecommendContentBased}
}

// CollaborativeHandler returns the handler for collaborative-only recommendations.
func CollaborativeHandler(svc *recUC.Service) RecommendHandler {
	return RecommendHandler{Recommend: svc.RecommendCollaborative}
}

func (h RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	n := parseLimit(r)

	recs, err := h.Recommend(r.Context(), userID, n)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNotFitted) {
			code = http.StatusServiceUnavailable
		} else if errors.Is(err, entity.ErrInvalidInput) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toListDTO(recs))
}
