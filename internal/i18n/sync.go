// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/olegiv/poscat-go/internal/store"
)

// Payload is the wire shape of a translations payload:
// language code -> field name -> value.
type Payload map[string]map[string]string

// ParsePayload decodes a raw translations payload. Empty input yields an
// empty payload, not an error.
func ParsePayload(raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing translations payload: %w", err)
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

// SyncStatus reports what a sync call did.
type SyncStatus string

const (
	// SyncApplied means the payload was parsed and written.
	SyncApplied SyncStatus = "applied"
	// SyncSkipped means translation processing was skipped entirely;
	// Reason says why. The owning entity write is unaffected either way.
	SyncSkipped SyncStatus = "skipped"
)

// SyncResult describes the outcome of a create/update sync.
type SyncResult struct {
	Status        SyncStatus
	Reason        string
	Upserted      int // slots written
	SkippedSlots  int // empty values: no row created or updated
	UnknownLangs  int // languages in the payload not in the registry
	UnknownFields int // fields not translatable for the entity type
}

// Syncer keeps translation rows consistent with entity lifecycle events.
// Invoked by catalog write handlers only, never by readers. Translations
// are an enhancement: a malformed payload degrades to a no-op rather than
// failing the owning entity's write.
type Syncer struct {
	queries  *store.Queries
	registry *Registry
}

// NewSyncer creates a Syncer backed by the given queries and registry.
func NewSyncer(queries *store.Queries, registry *Registry) *Syncer {
	return &Syncer{queries: queries, registry: registry}
}

// WithTx returns a Syncer whose writes run inside the given transaction.
func (s *Syncer) WithTx(tx *sql.Tx) *Syncer {
	return &Syncer{queries: s.queries.WithTx(tx), registry: s.registry}
}

// Sync upserts every non-empty (language, field, value) triple of the raw
// payload for the given entity. Create and update share these semantics:
// slots absent from the payload are left untouched, an empty value is a
// no-op (the existing row, if any, is kept). A payload that fails to parse
// returns SyncSkipped with a nil error; only storage failures return an
// error, and the caller decides whether those block the entity write.
func (s *Syncer) Sync(ctx context.Context, entityType string, entityID int64, raw json.RawMessage) (SyncResult, error) {
	payload, err := ParsePayload(raw)
	if err != nil {
		return SyncResult{Status: SyncSkipped, Reason: err.Error()}, nil
	}
	return s.SyncPayload(ctx, entityType, entityID, payload)
}

// SyncPayload is Sync for an already-parsed payload.
func (s *Syncer) SyncPayload(ctx context.Context, entityType string, entityID int64, payload Payload) (SyncResult, error) {
	result := SyncResult{Status: SyncApplied}
	if len(payload) == 0 {
		return result, nil
	}

	for langCode, fields := range payload {
		// Payload keys match case-insensitively, but rows are written
		// under the registry's canonical code so readers can find them
		// and "es"/"ES" never occupy two rows for one slot.
		lang, ok := s.registry.Get(langCode)
		if !ok {
			result.UnknownLangs++
			continue
		}
		for field, value := range fields {
			if !IsTranslatable(entityType, field) {
				result.UnknownFields++
				continue
			}
			if value == "" {
				result.SkippedSlots++
				continue
			}
			err := s.queries.UpsertTranslation(ctx, store.UpsertTranslationParams{
				EntityType:   entityType,
				EntityID:     entityID,
				FieldName:    field,
				LanguageCode: lang.Code,
				Value:        value,
			})
			if err != nil {
				return result, fmt.Errorf("upserting translation (%s/%d %s %s): %w",
					entityType, entityID, field, lang.Code, err)
			}
			result.Upserted++
		}
	}

	return result, nil
}

// Delete removes every translation row owned by the entity. Called right
// before (or in the same transaction as) deleting the owning row, so no
// translation outlives its owner.
func (s *Syncer) Delete(ctx context.Context, entityType string, entityID int64) error {
	err := s.queries.DeleteEntityTranslations(ctx, store.DeleteEntityTranslationsParams{
		EntityType: entityType,
		EntityID:   entityID,
	})
	if err != nil {
		return fmt.Errorf("deleting translations (%s/%d): %w", entityType, entityID, err)
	}
	return nil
}
