// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/poscat-go/internal/store"
)

// Translator resolves display values for catalog entities. A missing
// translation is never an error: resolution walks requested language,
// then the default language, then the caller-supplied fallback.
type Translator struct {
	queries  *store.Queries
	registry *Registry
}

// NewTranslator creates a Translator backed by the given queries and registry.
func NewTranslator(queries *store.Queries, registry *Registry) *Translator {
	return &Translator{queries: queries, registry: registry}
}

// TranslatedField resolves one field of one entity. fallback is returned
// when neither the requested nor the default language has an override;
// callers pass the value stored on the entity row itself, which doubles
// as the implicit default-language content. Errors are returned only for
// storage failures.
func (t *Translator) TranslatedField(ctx context.Context, entityType string, entityID int64, field, langCode, fallback string) (string, error) {
	value, err := t.queries.GetTranslation(ctx, store.GetTranslationParams{
		EntityType:   entityType,
		EntityID:     entityID,
		FieldName:    field,
		LanguageCode: langCode,
	})
	switch {
	case err == nil && value != "":
		return value, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("looking up translation: %w", err)
	}

	defaultCode := t.registry.DefaultCode()
	if langCode != defaultCode {
		value, err = t.queries.GetTranslation(ctx, store.GetTranslationParams{
			EntityType:   entityType,
			EntityID:     entityID,
			FieldName:    field,
			LanguageCode: defaultCode,
		})
		switch {
		case err == nil && value != "":
			return value, nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return "", fmt.Errorf("looking up default-language translation: %w", err)
		}
	}

	return fallback, nil
}

// ListItem is one entity position in a batch resolution call. Fields holds
// the entity's own stored values, used as ultimate fallbacks.
type ListItem struct {
	ID     int64
	Fields map[string]string
}

type slotKey struct {
	entityID int64
	field    string
}

// TranslateList resolves the translatable fields of an ordered entity list.
// The result has the same length and order as items; duplicate ids are
// resolved independently at each position. At most two bulk queries are
// issued (requested language plus the default language when different),
// regardless of list length.
func (t *Translator) TranslateList(ctx context.Context, entityType, langCode string, items []ListItem) ([]map[string]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	fields := FieldsFor(entityType)

	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !seen[item.ID] {
			seen[item.ID] = true
			ids = append(ids, item.ID)
		}
	}

	requested, err := t.loadSlots(ctx, entityType, ids, langCode)
	if err != nil {
		return nil, err
	}

	defaultCode := t.registry.DefaultCode()
	var base map[slotKey]string
	if langCode != defaultCode {
		base, err = t.loadSlots(ctx, entityType, ids, defaultCode)
		if err != nil {
			return nil, err
		}
	}

	results := make([]map[string]string, len(items))
	for i, item := range items {
		resolved := make(map[string]string, len(fields))
		for _, field := range fields {
			key := slotKey{entityID: item.ID, field: field}
			switch {
			case requested[key] != "":
				resolved[field] = requested[key]
			case base[key] != "":
				resolved[field] = base[key]
			default:
				resolved[field] = item.Fields[field]
			}
		}
		results[i] = resolved
	}

	return results, nil
}

// loadSlots fetches all overrides for the given ids in one language with a
// single query and indexes them by (entity id, field).
func (t *Translator) loadSlots(ctx context.Context, entityType string, ids []int64, langCode string) (map[slotKey]string, error) {
	rows, err := t.queries.ListTranslationsForEntities(ctx, store.ListTranslationsForEntitiesParams{
		EntityType:   entityType,
		EntityIDs:    ids,
		LanguageCode: langCode,
	})
	if err != nil {
		return nil, fmt.Errorf("bulk translation fetch (%s, %s): %w", entityType, langCode, err)
	}

	slots := make(map[slotKey]string, len(rows))
	for _, row := range rows {
		slots[slotKey{entityID: row.EntityID, field: row.FieldName}] = row.Value
	}
	return slots, nil
}
