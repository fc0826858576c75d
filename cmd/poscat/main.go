// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command poscat runs the restaurant POS catalog API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/cache"
	"github.com/olegiv/poscat-go/internal/config"
	"github.com/olegiv/poscat-go/internal/handler/api"
	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/imaging"
	"github.com/olegiv/poscat-go/internal/logging"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/scheduler"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := parseLogLevel(cfg.LogLevel)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		return err
	}

	// WARN and above also land in the event log table.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))

	slog.Info("starting poscat",
		"version", version.Get().String(),
		"env", cfg.Env,
		"addr", cfg.ServerAddr(),
	)

	ctx := context.Background()

	if err := store.Seed(ctx, db); err != nil {
		return err
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return err
		}
	}

	registry, err := i18n.LoadRegistry(ctx, store.New(db))
	if err != nil {
		return err
	}
	slog.Info("language registry loaded",
		"languages", len(registry.Languages()),
		"default", registry.DefaultCode(),
	)

	cacher, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return err
	}
	defer cacher.Close()

	handler := api.NewHandler(api.Config{
		DB:        db,
		Registry:  registry,
		Tokens:    auth.NewTokenManager(cfg.JWTSecret),
		Catalog:   cache.NewCatalogCache(cacher, time.Duration(cfg.CacheTTL)*time.Second),
		Processor: imaging.NewProcessor(cfg.UploadsDir),
		Logger:    slog.Default(),
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Mount("/api/v1", handler.Routes())

	// Serve processed images straight from the uploads dir.
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/media/*", fileServer.ServeHTTP)

	sched := scheduler.New(db, slog.Default())
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
