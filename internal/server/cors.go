package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig contains the cross-origin policy: an exact-match origin allow
// list plus hostname suffix rules.
type CORSConfig struct {
	AllowedOrigins        []string
	AllowedOriginSuffixes []string
	AllowedMethods        []string
	AllowedHeaders        []string
	MaxAge                int
}

// DefaultCORSMethods are the only methods the API serves.
var DefaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE"}

// DefaultCORSHeaders are the request headers a cross-origin caller may send.
var DefaultCORSHeaders = []string{"Authorization", "Accept", "Content-Type"}

// CORSMiddleware attaches permission headers for allowed origins and
// answers preflight requests. A disallowed origin is not rejected outright;
// the server simply withholds the permission headers and lets the browser
// enforce the restriction.
func CORSMiddleware(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && config.originAllowed(origin)

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			// Handle preflight OPTIONS request
			if r.Method == http.MethodOptions {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
					w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
					if config.MaxAge > 0 {
						w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed checks the exact allow list, then the hostname suffix rules.
func (c *CORSConfig) originAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := u.Hostname()

	for _, suffix := range c.AllowedOriginSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
