package server

import (
	"net/http"

	"github.com/rivethead/rivethead-api/internal/domain"
	"github.com/rivethead/rivethead-api/internal/ratelimit"
)

// RateLimitMiddleware sheds load with the shared token bucket. It runs
// before the auth gate, so a throttled request never spends cycles on the
// credential comparison and never reaches a handler.
func RateLimitMiddleware(bucket *ratelimit.TokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !bucket.Allow() {
				AddLogField(r.Context(), "throttled", "true")
				RespondError(w, domain.ErrRateLimit())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
