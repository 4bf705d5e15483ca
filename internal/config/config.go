// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables via `env` tags.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	// JWTSecret signs and verifies access tokens (HMAC-SHA256). Required.
	JWTSecret string `env:"JWT_SECRET"`

	// JWTIssuer is the "iss" claim embedded in every access token.
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"travelshare"`

	// AccessTokenTTL is the validity window of an access token.
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`

	// RefreshTokenTTLMillis is the validity window of a refresh token in
	// milliseconds. Defaults to 7 days. Kept in milliseconds for
	// compatibility with existing deployment configuration.
	RefreshTokenTTLMillis int64 `env:"REFRESH_TOKEN_TTL_MS" envDefault:"604800000"`

	// MaxUploadBytes limits incoming request bodies (notably multipart
	// photo uploads). Defaults to 10 MiB.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Supabase storage settings. All three must be set for photo uploads
	// to work; trips without photos work without them.
	SupabaseURL    string `env:"SUPABASE_URL"`
	SupabaseBucket string `env:"SUPABASE_BUCKET"`
	SupabaseAPIKey string `env:"SUPABASE_API_KEY"`
}

// RefreshTokenTTL returns the refresh token lifetime as a time.Duration.
func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLMillis) * time.Millisecond
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.RefreshTokenTTLMillis <= 0 {
		return Config{}, fmt.Errorf("REFRESH_TOKEN_TTL_MS must be positive, got %d", cfg.RefreshTokenTTLMillis)
	}

	return cfg, nil
}
