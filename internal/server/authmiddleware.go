package server

import (
	"net/http"

	"github.com/rivethead/rivethead-api/internal/auth"
	"github.com/rivethead/rivethead-api/internal/domain"
)

// AuthMiddleware validates the x-api-key header against the configured
// secret and rejects with a uniform 401 body before any route handler runs.
// The gate applies to every route; exemptPaths is the single configuration
// point for the alternate policy that lets the health and info endpoints
// through unauthenticated.
func AuthMiddleware(authenticator *auth.Authenticator, exemptPaths []string) func(http.Handler) http.Handler {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if err := authenticator.ValidateAPIKey(auth.ExtractAPIKey(r)); err != nil {
				AddError(r.Context(), err)
				RespondError(w, domain.ErrAuthentication())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
