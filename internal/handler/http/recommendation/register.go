package recommendation

import (
	"net/http"

	"cineswipe/internal/handler/http/auth"
	recUC "cineswipe/internal/usecase/recommend"
)

// Register registers all per-user recommendation HTTP handlers with the
// given mux. All routes require a valid JWT.
func Register(mux *http.ServeMux, svc *recUC.Service) {
	mux.Handle("GET    /users/{id}/recommendations", auth.RequireUser(HybridHandler(svc)))
	mux.Handle("GET    /users/{id}/recommendations/content", auth.RequireUser(ContentHandler(svc)))
	mux.Handle("GET    /users/{id}/recommendations/collaborative", auth.RequireUser(CollaborativeHandler(svc)))

	mux.Handle("POST   /users/{id}/swipes", auth.RequireUser(SwipeHandler{svc}))
}
