// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinJWTSecretLength is the minimum required length for the JWT signing secret.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"POSCAT_DB_PATH" envDefault:"./data/poscat.db"`
	JWTSecret  string `env:"POSCAT_JWT_SECRET,required"`
	ServerHost string `env:"POSCAT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"POSCAT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"POSCAT_ENV" envDefault:"development"`
	LogLevel   string `env:"POSCAT_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"POSCAT_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"POSCAT_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"POSCAT_CACHE_PREFIX" envDefault:"poscat:"` // Redis key prefix
	CacheTTL     int    `env:"POSCAT_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"POSCAT_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"POSCAT_DO_SEED" envDefault:"false"` // Enable demo catalog seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("POSCAT_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("POSCAT_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("POSCAT_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	}) >= 0 {
		charTypes++
	}
	return charTypes >= 3
}
