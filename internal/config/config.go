// Package config loads the service configuration from an optional
// config.yaml plus RIVETHEAD_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Auth      AuthConfig      `koanf:"auth"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Storage   StorageConfig   `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type AuthConfig struct {
	// APIKey is the single shared secret. Supports ${VAR} substitution so
	// the secret itself can live in the environment.
	APIKey string `koanf:"api_key"`

	// ExemptHealth switches to the alternate policy where /api/health_check
	// and /api/info bypass the auth gate. Default is the strict policy:
	// every route is guarded.
	ExemptHealth bool `koanf:"exempt_health"`
}

type RateLimitConfig struct {
	PerSecond float64 `koanf:"per_second"`
	Burst     int64   `koanf:"burst"`
}

type CORSConfig struct {
	// AllowedOrigins is the exact-match origin allow list.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// AllowedOriginSuffixes admits any origin whose hostname ends with one
	// of these domain suffixes.
	AllowedOriginSuffixes []string `koanf:"allowed_origin_suffixes"`

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int `koanf:"max_age"`
}

type StorageConfig struct {
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load from config.yaml file first
	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config.yaml: %w", err)
		}
	}

	// Load environment variables (can override file config)
	if err := k.Load(env.Provider("RIVETHEAD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "RIVETHEAD_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("rate_limit.per_second") {
		k.Set("rate_limit.per_second", 2.0)
	}
	if !k.Exists("rate_limit.burst") {
		k.Set("rate_limit.burst", 5)
	}
	if !k.Exists("cors.max_age") {
		k.Set("cors.max_age", 3600)
	}
	if !k.Exists("storage.sqlite.path") {
		k.Set("storage.sqlite.path", "./data/rivethead.db")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Auth.APIKey = substituteEnvVars(cfg.Auth.APIKey)

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
