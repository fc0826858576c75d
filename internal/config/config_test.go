// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const validSecret = "Xk9mP2vQ8nR4tY7wZ1aB5cD6eF3gH0jL"

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSCAT_JWT_SECRET", validSecret)
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/poscat.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("Redis should be off without POSCAT_REDIS_URL")
	}
	if cfg.DoSeed {
		t.Error("seeding should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("POSCAT_SERVER_HOST", "0.0.0.0")
	t.Setenv("POSCAT_SERVER_PORT", "9090")
	t.Setenv("POSCAT_ENV", "production")
	t.Setenv("POSCAT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("POSCAT_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:9090" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("Redis URL set but UseRedisCache is false")
	}
	if !cfg.DoSeed {
		t.Error("POSCAT_DO_SEED=true not honored")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("POSCAT_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without POSCAT_JWT_SECRET")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("POSCAT_JWT_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short secret")
	}
	if !strings.Contains(err.Error(), "at least") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRejectsKnownWeakSecret(t *testing.T) {
	t.Setenv("POSCAT_JWT_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for known default secret")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{validSecret, true},
		{"lower-case-with-digits-123456789", true},
		{strings.Repeat("a", 32), false},
		{strings.Repeat("aB", 16), false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
