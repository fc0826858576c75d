package i18n

import (
	"database/sql"
	"reflect"
	"testing"

	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/testutil"
)

// newTestEngine builds a translator, syncer and queries over a fresh database.
func newTestEngine(t *testing.T) (*store.Queries, *Registry, *Translator, *Syncer, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	testutil.SeedLanguages(t, db)

	queries := store.New(db)
	reg, err := LoadRegistry(t.Context(), queries)
	if err != nil {
		cleanup()
		t.Fatalf("LoadRegistry: %v", err)
	}

	return queries, reg, NewTranslator(queries, reg), NewSyncer(queries, reg), cleanup
}

func mustUpsert(t *testing.T, queries *store.Queries, entityType string, id int64, field, lang, value string) {
	t.Helper()
	err := queries.UpsertTranslation(t.Context(), store.UpsertTranslationParams{
		EntityType:   entityType,
		EntityID:     id,
		FieldName:    field,
		LanguageCode: lang,
		Value:        value,
	})
	if err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}
}

func TestTranslatedFieldFallbackOrder(t *testing.T) {
	queries, _, translator, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	// Entity 1 has es and en overrides, entity 2 only en, entity 3 nothing.
	mustUpsert(t, queries, model.EntityTypeProduct, 1, "name", "es", "Hamburguesa Clásica")
	mustUpsert(t, queries, model.EntityTypeProduct, 1, "name", "en", "Classic Burger Override")
	mustUpsert(t, queries, model.EntityTypeProduct, 2, "name", "en", "Fries Override")

	tests := []struct {
		name     string
		entityID int64
		lang     string
		fallback string
		want     string
	}{
		{
			name:     "exact language wins",
			entityID: 1,
			lang:     "es",
			fallback: "Classic Burger",
			want:     "Hamburguesa Clásica",
		},
		{
			name:     "missing language falls to base override",
			entityID: 1,
			lang:     "fr",
			fallback: "Classic Burger",
			want:     "Classic Burger Override",
		},
		{
			name:     "base override used when only base exists",
			entityID: 2,
			lang:     "ar",
			fallback: "French Fries",
			want:     "Fries Override",
		},
		{
			name:     "ultimate fallback untouched",
			entityID: 3,
			lang:     "es",
			fallback: "Soda",
			want:     "Soda",
		},
		{
			name:     "default language request skips second lookup",
			entityID: 3,
			lang:     "en",
			fallback: "Soda",
			want:     "Soda",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translator.TranslatedField(ctx, model.EntityTypeProduct, tt.entityID, "name", tt.lang, tt.fallback)
			if err != nil {
				t.Fatalf("TranslatedField: %v", err)
			}
			if got != tt.want {
				t.Errorf("TranslatedField = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslateListOrderingAndDuplicates(t *testing.T) {
	queries, _, translator, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeProduct, 10, "name", "es", "Diez")
	mustUpsert(t, queries, model.EntityTypeProduct, 11, "name", "en", "Eleven Base")
	mustUpsert(t, queries, model.EntityTypeProduct, 11, "description", "es", "Once desc")

	items := []ListItem{
		{ID: 10, Fields: map[string]string{"name": "Ten", "description": "Ten desc"}},
		{ID: 11, Fields: map[string]string{"name": "Eleven", "description": "Eleven desc"}},
		{ID: 12, Fields: map[string]string{"name": "Twelve", "description": "Twelve desc"}},
		{ID: 10, Fields: map[string]string{"name": "Ten", "description": "Ten desc"}}, // duplicate id
	}

	got, err := translator.TranslateList(ctx, model.EntityTypeProduct, "es", items)
	if err != nil {
		t.Fatalf("TranslateList: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("len = %d, want %d", len(got), len(items))
	}

	want := []map[string]string{
		{"name": "Diez", "description": "Ten desc"},
		{"name": "Eleven Base", "description": "Once desc"},
		{"name": "Twelve", "description": "Twelve desc"},
		{"name": "Diez", "description": "Ten desc"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TranslateList = %v, want %v", got, want)
	}
}

func TestTranslateListMatchesSingleResolution(t *testing.T) {
	queries, _, translator, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeCombo, 1, "name", "fr", "Menu Burger")
	mustUpsert(t, queries, model.EntityTypeCombo, 2, "name", "en", "Family Pack Base")
	mustUpsert(t, queries, model.EntityTypeCombo, 2, "description", "fr", "Pour quatre")

	items := []ListItem{
		{ID: 1, Fields: map[string]string{"name": "Burger Meal", "description": "Burger with fries"}},
		{ID: 2, Fields: map[string]string{"name": "Family Pack", "description": "For four"}},
		{ID: 3, Fields: map[string]string{"name": "Kids Meal", "description": "Small portion"}},
	}

	batch, err := translator.TranslateList(ctx, model.EntityTypeCombo, "fr", items)
	if err != nil {
		t.Fatalf("TranslateList: %v", err)
	}

	for i, item := range items {
		for _, field := range FieldsFor(model.EntityTypeCombo) {
			single, err := translator.TranslatedField(ctx, model.EntityTypeCombo, item.ID, field, "fr", item.Fields[field])
			if err != nil {
				t.Fatalf("TranslatedField: %v", err)
			}
			if batch[i][field] != single {
				t.Errorf("item %d field %s: batch %q != single %q", i, field, batch[i][field], single)
			}
		}
	}
}

func TestTranslateListEmptyInput(t *testing.T) {
	_, _, translator, _, cleanup := newTestEngine(t)
	defer cleanup()

	got, err := translator.TranslateList(t.Context(), model.EntityTypeProduct, "es", nil)
	if err != nil {
		t.Fatalf("TranslateList: %v", err)
	}
	if got != nil {
		t.Errorf("TranslateList(nil) = %v, want nil", got)
	}
}

func TestTranslateListDefaultLanguageSingleQueryPath(t *testing.T) {
	queries, _, translator, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeCategory, 5, "name", "en", "Starters Override")

	got, err := translator.TranslateList(ctx, model.EntityTypeCategory, "en", []ListItem{
		{ID: 5, Fields: map[string]string{"name": "Starters", "description": "First courses"}},
	})
	if err != nil {
		t.Fatalf("TranslateList: %v", err)
	}
	if got[0]["name"] != "Starters Override" {
		t.Errorf("name = %q, want Starters Override", got[0]["name"])
	}
	if got[0]["description"] != "First courses" {
		t.Errorf("description = %q, want First courses", got[0]["description"])
	}
}

// Verifies upsert conflict handling directly at the store layer: a second
// write to the same slot updates in place rather than failing or duplicating.
func TestUpsertTranslationIdempotent(t *testing.T) {
	queries, _, _, _, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeProduct, 7, "name", "es", "Primero")
	mustUpsert(t, queries, model.EntityTypeProduct, 7, "name", "es", "Segundo")

	count, err := queries.CountEntityTranslations(ctx, store.DeleteEntityTranslationsParams{
		EntityType: model.EntityTypeProduct,
		EntityID:   7,
	})
	if err != nil {
		t.Fatalf("CountEntityTranslations: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}

	value, err := queries.GetTranslation(ctx, store.GetTranslationParams{
		EntityType:   model.EntityTypeProduct,
		EntityID:     7,
		FieldName:    "name",
		LanguageCode: "es",
	})
	if err != nil {
		t.Fatalf("GetTranslation: %v", err)
	}
	if value != "Segundo" {
		t.Errorf("value = %q, want Segundo", value)
	}
}

func TestGetTranslationMissingReturnsNoRows(t *testing.T) {
	queries, _, _, _, cleanup := newTestEngine(t)
	defer cleanup()

	_, err := queries.GetTranslation(t.Context(), store.GetTranslationParams{
		EntityType:   model.EntityTypeProduct,
		EntityID:     999,
		FieldName:    "name",
		LanguageCode: "es",
	})
	if err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}
