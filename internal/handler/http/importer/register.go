package importer

import (
	"net/http"

	"cineswipe/internal/handler/http/auth"
	importUC "cineswipe/internal/usecase/importing"
	recUC "cineswipe/internal/usecase/recommend"
)

// Register registers the Letterboxd import handler with the given mux.
// The route requires a valid JWT.
func Register(mux *http.ServeMux, svc *importUC.Service, rec *recUC.Service) {
	mux.Handle("POST   /import/letterboxd", auth.RequireUser(ImportHandler{Svc: svc, Rec: rec}))
}
