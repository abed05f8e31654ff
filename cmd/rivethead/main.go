package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/rivethead/rivethead-api/internal/auth"
	"github.com/rivethead/rivethead-api/internal/config"
	"github.com/rivethead/rivethead-api/internal/diary"
	"github.com/rivethead/rivethead-api/internal/ratelimit"
	"github.com/rivethead/rivethead-api/internal/server"
	"github.com/rivethead/rivethead-api/internal/store/sqlite"
	"github.com/rivethead/rivethead-api/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("rivethead-api", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Auth.APIKey == "" {
		log.Fatal("The API key was not found, unable to start the API")
	}

	if dir := filepath.Dir(cfg.Storage.SQLite.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	st, err := sqlite.New(cfg.Storage.SQLite.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	srv := server.New(cfg.Server.Port, logger, server.Options{
		Authenticator: auth.New(cfg.Auth.APIKey),
		ExemptHealth:  cfg.Auth.ExemptHealth,
		Limiter:       ratelimit.NewTokenBucket(cfg.RateLimit.Burst, cfg.RateLimit.PerSecond),
		CORS: &server.CORSConfig{
			AllowedOrigins:        cfg.CORS.AllowedOrigins,
			AllowedOriginSuffixes: cfg.CORS.AllowedOriginSuffixes,
			AllowedMethods:        server.DefaultCORSMethods,
			AllowedHeaders:        server.DefaultCORSHeaders,
			MaxAge:                cfg.CORS.MaxAge,
		},
	})

	diaryHandler := diary.NewHandler(st, logger)
	srv.Router.Route("/api", func(r chi.Router) {
		r.Get("/info", server.HandleInfo)
		r.Get("/health_check", server.HandleHealthCheck)
		diaryHandler.Register(r)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
