// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the catalog service.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/poscat-go/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "poscat-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// SeedLanguages inserts a language set for tests: en (default), es, fr, ar (rtl).
func SeedLanguages(t *testing.T, db *sql.DB) {
	t.Helper()

	queries := store.New(db)
	langs := []store.CreateLanguageParams{
		{Code: "en", Name: "English", NativeName: "English", IsDefault: true, IsActive: true, Direction: "ltr", Position: 0},
		{Code: "es", Name: "Spanish", NativeName: "Español", IsActive: true, Direction: "ltr", Position: 1},
		{Code: "fr", Name: "French", NativeName: "Français", IsActive: true, Direction: "ltr", Position: 2},
		{Code: "ar", Name: "Arabic", NativeName: "العربية", IsActive: true, Direction: "rtl", Position: 3},
	}
	for _, l := range langs {
		if _, err := queries.CreateLanguage(t.Context(), l); err != nil {
			t.Fatalf("seeding language %s: %v", l.Code, err)
		}
	}
}
