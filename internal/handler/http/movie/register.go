package movie

import (
	"net/http"

	"cineswipe/internal/handler/http/auth"
	catalogUC "cineswipe/internal/usecase/catalog"
	recUC "cineswipe/internal/usecase/recommend"
)

// Register registers all movie-related HTTP handlers with the given mux.
// Catalog reads and similarity queries are public; catalog writes require
// the admin role.
func Register(mux *http.ServeMux, catalog *catalogUC.Service, rec *recUC.Service) {
	mux.Handle("GET    /movies", ListHandler{catalog})
	mux.Handle("GET    /movies/{id}", GetHandler{catalog})
	mux.Handle("GET    /movies/{id}/similar", SimilarHandler{Svc: rec, Catalog: catalog})

	mux.Handle("POST   /movies", auth.RequireAdmin(CreateHandler{catalog}))
}
