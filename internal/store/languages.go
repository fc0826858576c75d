// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Language represents a row in the languages table.
type Language struct {
	ID         int64
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
	IsActive   bool
	Direction  string
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const languageColumns = `id, code, name, native_name, is_default, is_active, direction, position, created_at, updated_at`

func scanLanguage(row interface{ Scan(...any) error }) (Language, error) {
	var l Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsDefault,
		&l.IsActive, &l.Direction, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// ListLanguages returns all languages ordered by position.
func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+languageColumns+` FROM languages ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, rows.Err()
}

// ListActiveLanguages returns only languages enabled for the catalog.
func (q *Queries) ListActiveLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE is_active = 1 ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var languages []Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, rows.Err()
}

// GetDefaultLanguage returns the language flagged as the base/fallback language.
func (q *Queries) GetDefaultLanguage(ctx context.Context) (Language, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE is_default = 1 LIMIT 1`)
	return scanLanguage(row)
}

// GetLanguageByCode returns a language by its code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+languageColumns+` FROM languages WHERE code = ?`, code)
	return scanLanguage(row)
}

// CreateLanguageParams holds parameters for CreateLanguage.
type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
	IsActive   bool
	Direction  string
	Position   int64
}

// CreateLanguage inserts a new language. Used by migrations/seed only;
// the registry treats the language set as immutable at runtime.
func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (Language, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO languages (code, name, native_name, is_default, is_active, direction, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Code, arg.Name, arg.NativeName, arg.IsDefault, arg.IsActive, arg.Direction, arg.Position, now, now)
	if err != nil {
		return Language{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Language{}, err
	}
	return Language{
		ID: id, Code: arg.Code, Name: arg.Name, NativeName: arg.NativeName,
		IsDefault: arg.IsDefault, IsActive: arg.IsActive, Direction: arg.Direction,
		Position: arg.Position, CreatedAt: now, UpdatedAt: now,
	}, nil
}

// CountLanguages returns the number of configured languages.
func (q *Queries) CountLanguages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM languages`).Scan(&n)
	return n, err
}
