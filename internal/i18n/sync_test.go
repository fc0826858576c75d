package i18n

import (
	"encoding/json"
	"testing"

	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
)

func countSlots(t *testing.T, queries *store.Queries, entityType string, id int64) int64 {
	t.Helper()
	n, err := queries.CountEntityTranslations(t.Context(), store.DeleteEntityTranslationsParams{
		EntityType: entityType,
		EntityID:   id,
	})
	if err != nil {
		t.Fatalf("CountEntityTranslations: %v", err)
	}
	return n
}

func TestSyncCreateAndUpdate(t *testing.T) {
	queries, _, translator, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	raw := json.RawMessage(`{"es": {"name": "Hamburguesa Clásica", "description": "Con queso"}, "fr": {"name": "Burger Classique"}}`)
	result, err := syncer.Sync(ctx, model.EntityTypeProduct, 1, raw)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Status != SyncApplied {
		t.Fatalf("Status = %s, want applied", result.Status)
	}
	if result.Upserted != 3 {
		t.Errorf("Upserted = %d, want 3", result.Upserted)
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 1); got != 3 {
		t.Errorf("slot count = %d, want 3", got)
	}

	// Partial update: only es name changes, fr and es description untouched.
	result, err = syncer.Sync(ctx, model.EntityTypeProduct, 1,
		json.RawMessage(`{"es": {"name": "Hamburguesa Premium"}}`))
	if err != nil {
		t.Fatalf("Sync update: %v", err)
	}
	if result.Upserted != 1 {
		t.Errorf("Upserted = %d, want 1", result.Upserted)
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 1); got != 3 {
		t.Errorf("slot count after update = %d, want 3", got)
	}

	got, err := translator.TranslatedField(ctx, model.EntityTypeProduct, 1, "name", "es", "Classic Burger")
	if err != nil {
		t.Fatalf("TranslatedField: %v", err)
	}
	if got != "Hamburguesa Premium" {
		t.Errorf("resolved name = %q, want Hamburguesa Premium", got)
	}

	got, err = translator.TranslatedField(ctx, model.EntityTypeProduct, 1, "name", "fr", "Classic Burger")
	if err != nil {
		t.Fatalf("TranslatedField: %v", err)
	}
	if got != "Burger Classique" {
		t.Errorf("fr name = %q, want Burger Classique", got)
	}
}

func TestSyncCanonicalizesLanguageCase(t *testing.T) {
	queries, _, translator, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	result, err := syncer.Sync(ctx, model.EntityTypeProduct, 7,
		json.RawMessage(`{"ES": {"name": "Hamburguesa"}}`))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Upserted != 1 || result.UnknownLangs != 0 {
		t.Fatalf("result = %+v, want one upserted slot", result)
	}

	// The row must be readable under the registry's lowercase code.
	got, err := translator.TranslatedField(ctx, model.EntityTypeProduct, 7, "name", "es", "fallback")
	if err != nil {
		t.Fatalf("TranslatedField: %v", err)
	}
	if got != "Hamburguesa" {
		t.Errorf("resolved name = %q, want Hamburguesa", got)
	}

	// A differently-cased payload for the same slot updates in place
	// instead of creating a second row.
	if _, err := syncer.Sync(ctx, model.EntityTypeProduct, 7,
		json.RawMessage(`{"es": {"name": "Hamburguesa Doble"}}`)); err != nil {
		t.Fatalf("Sync update: %v", err)
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 7); got != 1 {
		t.Errorf("slot count = %d, want 1", got)
	}
	got, err = translator.TranslatedField(ctx, model.EntityTypeProduct, 7, "name", "es", "fallback")
	if err != nil {
		t.Fatalf("TranslatedField: %v", err)
	}
	if got != "Hamburguesa Doble" {
		t.Errorf("resolved name = %q, want Hamburguesa Doble", got)
	}
}

func TestSyncIdempotent(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	raw := json.RawMessage(`{"es": {"name": "Papas Fritas"}}`)
	for i := 0; i < 2; i++ {
		if _, err := syncer.Sync(ctx, model.EntityTypeProduct, 2, raw); err != nil {
			t.Fatalf("Sync #%d: %v", i+1, err)
		}
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 2); got != 1 {
		t.Errorf("slot count = %d, want 1", got)
	}
}

func TestSyncSparseWrites(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	result, err := syncer.Sync(ctx, model.EntityTypeProduct, 3,
		json.RawMessage(`{"es": {"name": "", "description": ""}}`))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Status != SyncApplied {
		t.Errorf("Status = %s, want applied", result.Status)
	}
	if result.SkippedSlots != 2 {
		t.Errorf("SkippedSlots = %d, want 2", result.SkippedSlots)
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 3); got != 0 {
		t.Errorf("slot count = %d, want 0 (empty values create no rows)", got)
	}
}

func TestSyncEmptyValueKeepsExistingRow(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeProduct, 4, "name", "es", "Refresco")

	// Empty value on an already-translated slot is a no-op, not a delete.
	if _, err := syncer.Sync(ctx, model.EntityTypeProduct, 4,
		json.RawMessage(`{"es": {"name": ""}}`)); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	value, err := queries.GetTranslation(ctx, store.GetTranslationParams{
		EntityType:   model.EntityTypeProduct,
		EntityID:     4,
		FieldName:    "name",
		LanguageCode: "es",
	})
	if err != nil {
		t.Fatalf("GetTranslation: %v", err)
	}
	if value != "Refresco" {
		t.Errorf("value = %q, want Refresco", value)
	}
}

func TestSyncMalformedPayloadSkips(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()

	result, err := syncer.Sync(t.Context(), model.EntityTypeProduct, 5,
		json.RawMessage(`{"es": "not an object"`))
	if err != nil {
		t.Fatalf("Sync returned error for malformed payload: %v", err)
	}
	if result.Status != SyncSkipped {
		t.Errorf("Status = %s, want skipped", result.Status)
	}
	if result.Reason == "" {
		t.Error("Reason is empty, want parse failure description")
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 5); got != 0 {
		t.Errorf("slot count = %d, want 0", got)
	}
}

func TestSyncUnknownLanguagesAndFields(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()

	result, err := syncer.Sync(t.Context(), model.EntityTypeModifier, 6,
		json.RawMessage(`{"de": {"name": "Größe"}, "es": {"name": "Tamaño", "price": "no"}}`))
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.UnknownLangs != 1 {
		t.Errorf("UnknownLangs = %d, want 1", result.UnknownLangs)
	}
	if result.UnknownFields != 1 {
		t.Errorf("UnknownFields = %d, want 1", result.UnknownFields)
	}
	if result.Upserted != 1 {
		t.Errorf("Upserted = %d, want 1", result.Upserted)
	}
	if got := countSlots(t, queries, model.EntityTypeModifier, 6); got != 1 {
		t.Errorf("slot count = %d, want 1", got)
	}
}

func TestSyncDeleteCascades(t *testing.T) {
	queries, _, _, syncer, cleanup := newTestEngine(t)
	defer cleanup()
	ctx := t.Context()

	mustUpsert(t, queries, model.EntityTypeProduct, 8, "name", "es", "Ocho")
	mustUpsert(t, queries, model.EntityTypeProduct, 8, "name", "fr", "Huit")
	mustUpsert(t, queries, model.EntityTypeProduct, 8, "description", "es", "Desc")
	mustUpsert(t, queries, model.EntityTypeProduct, 9, "name", "es", "Nueve")

	if err := syncer.Delete(ctx, model.EntityTypeProduct, 8); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got := countSlots(t, queries, model.EntityTypeProduct, 8); got != 0 {
		t.Errorf("deleted entity slot count = %d, want 0", got)
	}
	if got := countSlots(t, queries, model.EntityTypeProduct, 9); got != 1 {
		t.Errorf("untouched entity slot count = %d, want 1", got)
	}

	// find_many for the deleted entity returns nothing in any language.
	for _, lang := range []string{"en", "es", "fr", "ar"} {
		rows, err := queries.ListTranslationsForEntities(ctx, store.ListTranslationsForEntitiesParams{
			EntityType:   model.EntityTypeProduct,
			EntityIDs:    []int64{8},
			LanguageCode: lang,
		})
		if err != nil {
			t.Fatalf("ListTranslationsForEntities(%s): %v", lang, err)
		}
		if len(rows) != 0 {
			t.Errorf("lang %s: %d rows remain, want 0", lang, len(rows))
		}
	}
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int // languages parsed
		wantErr bool
	}{
		{name: "empty input", raw: "", want: 0},
		{name: "null", raw: "null", want: 0},
		{name: "empty object", raw: "{}", want: 0},
		{name: "nested payload", raw: `{"es": {"name": "Hola"}}`, want: 1},
		{name: "wrong shape", raw: `["es"]`, wantErr: true},
		{name: "truncated", raw: `{"es":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePayload(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePayload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(p) != tt.want {
				t.Errorf("len(payload) = %d, want %d", len(p), tt.want)
			}
		})
	}
}
