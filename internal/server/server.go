// Package server composes the request pipeline: an explicit ordered
// middleware chain around the chi router. Order is fixed — request id,
// logging, panic recovery, rate limiter, auth gate, CORS — and every
// rejecting stage short-circuits before the next one runs.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rivethead/rivethead-api/internal/auth"
	"github.com/rivethead/rivethead-api/internal/ratelimit"
)

// HealthPath and InfoPath are the informational endpoints the alternate
// auth policy may exempt.
const (
	HealthPath = "/api/health_check"
	InfoPath   = "/api/info"
)

// Options configures the pipeline stages. A nil stage is omitted.
type Options struct {
	Authenticator *auth.Authenticator
	// ExemptHealth applies the alternate auth policy: health and info
	// endpoints bypass the gate. Default is strict.
	ExemptHealth bool
	Limiter      *ratelimit.TokenBucket
	CORS         *CORSConfig
}

type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
	http   *http.Server
}

// New builds the router with the ordered middleware chain. The rate
// limiter runs before the auth gate: shedding load is cheaper than
// comparing credentials, and the original service ordered it the same way.
func New(port int, logger *slog.Logger, opts Options) *Server {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "rivethead-api")
	})

	if opts.Limiter != nil {
		r.Use(RateLimitMiddleware(opts.Limiter))
	}
	if opts.Authenticator != nil {
		var exempt []string
		if opts.ExemptHealth {
			exempt = []string{HealthPath, InfoPath}
		}
		r.Use(AuthMiddleware(opts.Authenticator, exempt))
	}
	if opts.CORS != nil {
		r.Use(CORSMiddleware(opts.CORS))
	}

	r.NotFound(HandleNotFound)
	r.MethodNotAllowed(HandleNotFound)

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
