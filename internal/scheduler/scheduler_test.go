package scheduler

import (
	"testing"

	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/testutil"
)

func TestSweepOrphanTranslations(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	testutil.SeedLanguages(t, db)

	queries := store.New(db)
	ctx := t.Context()

	category, err := queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name: "Drinks", Slug: "drinks", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	product, err := queries.CreateProduct(ctx, store.CreateProductParams{
		CategoryID: category.ID, Name: "Cola", Slug: "cola", PriceCents: 250, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	upsert := func(entityType string, id int64) {
		t.Helper()
		if err := queries.UpsertTranslation(ctx, store.UpsertTranslationParams{
			EntityType: entityType, EntityID: id, FieldName: "name", LanguageCode: "es", Value: "x",
		}); err != nil {
			t.Fatalf("UpsertTranslation: %v", err)
		}
	}

	// Live translation plus an orphan left behind by a racing sync.
	upsert(model.EntityTypeProduct, product.ID)
	upsert(model.EntityTypeProduct, product.ID+1000)
	upsert(model.EntityTypeCategory, category.ID)

	s := New(db, testutil.TestLogger())
	if err := s.SweepOrphanTranslations(ctx); err != nil {
		t.Fatalf("SweepOrphanTranslations: %v", err)
	}

	count := func(entityType string, id int64) int64 {
		t.Helper()
		n, err := queries.CountEntityTranslations(ctx, store.DeleteEntityTranslationsParams{
			EntityType: entityType, EntityID: id,
		})
		if err != nil {
			t.Fatalf("CountEntityTranslations: %v", err)
		}
		return n
	}

	if got := count(model.EntityTypeProduct, product.ID); got != 1 {
		t.Errorf("live product translations = %d, want 1", got)
	}
	if got := count(model.EntityTypeProduct, product.ID+1000); got != 0 {
		t.Errorf("orphan product translations = %d, want 0", got)
	}
	if got := count(model.EntityTypeCategory, category.ID); got != 1 {
		t.Errorf("live category translations = %d, want 1", got)
	}
}

func TestPruneEventsKeepsRecent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	ctx := t.Context()

	if err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level: model.EventLevelInfo, Category: model.EventCategorySystem,
		Message: "fresh event", Metadata: "{}",
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	s := New(db, testutil.TestLogger())
	if err := s.PruneEvents(ctx); err != nil {
		t.Fatalf("PruneEvents: %v", err)
	}

	events, err := queries.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("event count = %d, want 1 (recent events survive pruning)", len(events))
	}
}

func TestSchedulerStartStop(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
