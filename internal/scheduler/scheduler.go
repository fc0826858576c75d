// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs: the orphan translation
// sweep and event log retention.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
)

// EventRetention is how long event log rows are kept.
const EventRetention = 90 * 24 * time.Hour

// Scheduler handles periodic maintenance tasks.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
// The orphan sweep runs hourly; event retention runs daily.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.SweepOrphanTranslations(context.Background()); err != nil {
			s.logger.Error("orphan translation sweep failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("event log pruning failed", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOrphanTranslations deletes translation rows whose owning entity has
// been removed. Entity deletes cascade their translations in the same
// transaction, but a sync racing a delete can still leave rows behind.
func (s *Scheduler) SweepOrphanTranslations(ctx context.Context) error {
	queries := store.New(s.db)

	var total int64
	for entityType, ownerTable := range model.EntityTypes {
		n, err := queries.DeleteOrphanTranslations(ctx, store.DeleteOrphanTranslationsParams{
			EntityType: entityType,
			OwnerTable: ownerTable,
		})
		if err != nil {
			return err
		}
		total += n
	}

	if total > 0 {
		s.logger.Info("removed orphan translations",
			"category", model.EventCategoryI18n,
			"count", total,
		)
	}
	return nil
}

// PruneEvents deletes event log rows older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	queries := store.New(s.db)

	n, err := queries.DeleteEventsBefore(ctx, time.Now().UTC().Add(-EventRetention))
	if err != nil {
		return err
	}

	if n > 0 {
		s.logger.Info("pruned event log", "count", n)
	}
	return nil
}
