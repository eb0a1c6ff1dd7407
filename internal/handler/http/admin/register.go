package admin

import (
	"net/http"

	"cineswipe/internal/handler/http/auth"
	recUC "cineswipe/internal/usecase/recommend"
	trainUC "cineswipe/internal/usecase/train"
)

// Register registers operational handlers with the given mux.
// All routes require the admin role.
func Register(mux *http.ServeMux, trainer *trainUC.Service, rec *recUC.Service) {
	mux.Handle("POST   /admin/retrain", auth.RequireAdmin(RetrainHandler{Trainer: trainer, Rec: rec}))
}
