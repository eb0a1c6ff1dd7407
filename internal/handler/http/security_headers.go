package http

import (
	"net/http"

	"cineswipe/pkg/security/csp"
)

// SecurityHeaders sets standard security response headers on every response.
// The Content-Security-Policy header is built once at middleware construction.
func SecurityHeaders() func(http.Handler) http.Handler {
	policy := csp.StrictPolicy().Build()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", policy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
