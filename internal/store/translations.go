// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"
)

// Translation represents one per-field language override.
// The (entity_type, entity_id, field_name, language_code) tuple is unique.
type Translation struct {
	ID           int64
	EntityType   string
	EntityID     int64
	FieldName    string
	LanguageCode string
	Value        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetTranslationParams identifies a single translation slot.
type GetTranslationParams struct {
	EntityType   string
	EntityID     int64
	FieldName    string
	LanguageCode string
}

// GetTranslation returns the value stored for one translation slot.
// Returns sql.ErrNoRows when the slot has no override.
func (q *Queries) GetTranslation(ctx context.Context, arg GetTranslationParams) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx,
		`SELECT value FROM translations
		 WHERE entity_type = ? AND entity_id = ? AND field_name = ? AND language_code = ?`,
		arg.EntityType, arg.EntityID, arg.FieldName, arg.LanguageCode).Scan(&value)
	return value, err
}

// ListTranslationsForEntitiesParams selects all overrides for a set of
// entities of one type in one language.
type ListTranslationsForEntitiesParams struct {
	EntityType   string
	EntityIDs    []int64
	LanguageCode string
}

// ListTranslationsForEntities fetches every override for the given entity ids
// and language in a single query. This is the bulk path that keeps list
// endpoints at a constant number of queries regardless of list length.
func (q *Queries) ListTranslationsForEntities(ctx context.Context, arg ListTranslationsForEntitiesParams) ([]Translation, error) {
	if len(arg.EntityIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(arg.EntityIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(arg.EntityIDs)+2)
	args = append(args, arg.EntityType)
	for _, id := range arg.EntityIDs {
		args = append(args, id)
	}
	args = append(args, arg.LanguageCode)

	rows, err := q.db.QueryContext(ctx,
		`SELECT id, entity_type, entity_id, field_name, language_code, value, created_at, updated_at
		 FROM translations
		 WHERE entity_type = ? AND entity_id IN (`+placeholders+`) AND language_code = ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.EntityType, &t.EntityID, &t.FieldName,
			&t.LanguageCode, &t.Value, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

// UpsertTranslationParams holds parameters for UpsertTranslation.
type UpsertTranslationParams struct {
	EntityType   string
	EntityID     int64
	FieldName    string
	LanguageCode string
	Value        string
}

// UpsertTranslation inserts a translation row or updates its value in place
// when the slot already exists. An empty value is a no-op: translations are
// sparse, absence of a row means "untranslated".
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) error {
	if arg.Value == "" {
		return nil
	}

	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO translations (entity_type, entity_id, field_name, language_code, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (entity_type, entity_id, field_name, language_code)
		 DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		arg.EntityType, arg.EntityID, arg.FieldName, arg.LanguageCode, arg.Value, now, now)
	return err
}

// DeleteEntityTranslationsParams identifies all translations of one entity.
type DeleteEntityTranslationsParams struct {
	EntityType string
	EntityID   int64
}

// DeleteEntityTranslations removes every translation row for an entity,
// regardless of field or language. Called before the owning row is removed.
func (q *Queries) DeleteEntityTranslations(ctx context.Context, arg DeleteEntityTranslationsParams) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM translations WHERE entity_type = ? AND entity_id = ?`,
		arg.EntityType, arg.EntityID)
	return err
}

// CountEntityTranslations returns the number of translation rows for an entity.
func (q *Queries) CountEntityTranslations(ctx context.Context, arg DeleteEntityTranslationsParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM translations WHERE entity_type = ? AND entity_id = ?`,
		arg.EntityType, arg.EntityID).Scan(&n)
	return n, err
}

// DeleteOrphanTranslationsParams names an entity type and the table that
// holds its owning rows.
type DeleteOrphanTranslationsParams struct {
	EntityType string
	OwnerTable string
}

// ownerTables whitelists table names that may appear in the orphan sweep
// query. The table name cannot be bound as a parameter, so it must come
// from this fixed set.
var ownerTables = map[string]bool{
	"categories":       true,
	"products":         true,
	"modifiers":        true,
	"modifier_options": true,
	"combos":           true,
	"combo_items":      true,
}

// DeleteOrphanTranslations removes translation rows whose owning entity no
// longer exists. A concurrent delete racing an upsert can leave such rows
// behind; the scheduler sweeps them up.
func (q *Queries) DeleteOrphanTranslations(ctx context.Context, arg DeleteOrphanTranslationsParams) (int64, error) {
	if !ownerTables[arg.OwnerTable] {
		return 0, nil
	}
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM translations
		 WHERE entity_type = ?
		   AND entity_id NOT IN (SELECT id FROM `+arg.OwnerTable+`)`,
		arg.EntityType)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
