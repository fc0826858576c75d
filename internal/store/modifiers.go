// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Modifier represents an option group attached to products,
// e.g. "Size" or "Extra toppings".
type Modifier struct {
	ID         int64
	Name       string
	MinSelect  int64
	MaxSelect  int64
	IsRequired bool
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ModifierOption represents a single choice within a modifier group.
type ModifierOption struct {
	ID              int64
	ModifierID      int64
	Name            string
	PriceDeltaCents int64
	IsDefault       bool
	Position        int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const modifierColumns = `id, name, min_select, max_select, is_required, position, created_at, updated_at`

func scanModifier(row interface{ Scan(...any) error }) (Modifier, error) {
	var m Modifier
	err := row.Scan(&m.ID, &m.Name, &m.MinSelect, &m.MaxSelect, &m.IsRequired,
		&m.Position, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListModifiers returns all modifier groups ordered by position.
func (q *Queries) ListModifiers(ctx context.Context, limit, offset int64) ([]Modifier, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+modifierColumns+` FROM modifiers ORDER BY position, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modifiers []Modifier
	for rows.Next() {
		m, err := scanModifier(rows)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, m)
	}
	return modifiers, rows.Err()
}

// CountModifiers returns the total number of modifier groups.
func (q *Queries) CountModifiers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM modifiers`).Scan(&n)
	return n, err
}

// GetModifierByID returns a modifier group by its ID.
func (q *Queries) GetModifierByID(ctx context.Context, id int64) (Modifier, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+modifierColumns+` FROM modifiers WHERE id = ?`, id)
	return scanModifier(row)
}

// CreateModifierParams holds parameters for CreateModifier.
type CreateModifierParams struct {
	Name       string
	MinSelect  int64
	MaxSelect  int64
	IsRequired bool
	Position   int64
}

// CreateModifier inserts a new modifier group.
func (q *Queries) CreateModifier(ctx context.Context, arg CreateModifierParams) (Modifier, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO modifiers (name, min_select, max_select, is_required, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.MinSelect, arg.MaxSelect, arg.IsRequired, arg.Position, now, now)
	if err != nil {
		return Modifier{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Modifier{}, err
	}
	return q.GetModifierByID(ctx, id)
}

// UpdateModifierParams holds parameters for UpdateModifier.
type UpdateModifierParams struct {
	ID         int64
	Name       string
	MinSelect  int64
	MaxSelect  int64
	IsRequired bool
	Position   int64
}

// UpdateModifier updates an existing modifier group.
func (q *Queries) UpdateModifier(ctx context.Context, arg UpdateModifierParams) (Modifier, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE modifiers
		 SET name = ?, min_select = ?, max_select = ?, is_required = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.MinSelect, arg.MaxSelect, arg.IsRequired, arg.Position, time.Now().UTC(), arg.ID)
	if err != nil {
		return Modifier{}, err
	}
	return q.GetModifierByID(ctx, arg.ID)
}

// DeleteModifier removes a modifier group and, via foreign keys, its options.
func (q *Queries) DeleteModifier(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM modifiers WHERE id = ?`, id)
	return err
}

const modifierOptionColumns = `id, modifier_id, name, price_delta_cents, is_default, position, created_at, updated_at`

func scanModifierOption(row interface{ Scan(...any) error }) (ModifierOption, error) {
	var o ModifierOption
	err := row.Scan(&o.ID, &o.ModifierID, &o.Name, &o.PriceDeltaCents, &o.IsDefault,
		&o.Position, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// ListModifierOptions returns the options of one modifier group, in order.
func (q *Queries) ListModifierOptions(ctx context.Context, modifierID int64) ([]ModifierOption, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+modifierOptionColumns+` FROM modifier_options WHERE modifier_id = ? ORDER BY position, id`,
		modifierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []ModifierOption
	for rows.Next() {
		o, err := scanModifierOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// GetModifierOptionByID returns a modifier option by its ID.
func (q *Queries) GetModifierOptionByID(ctx context.Context, id int64) (ModifierOption, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+modifierOptionColumns+` FROM modifier_options WHERE id = ?`, id)
	return scanModifierOption(row)
}

// CreateModifierOptionParams holds parameters for CreateModifierOption.
type CreateModifierOptionParams struct {
	ModifierID      int64
	Name            string
	PriceDeltaCents int64
	IsDefault       bool
	Position        int64
}

// CreateModifierOption inserts a new option into a modifier group.
func (q *Queries) CreateModifierOption(ctx context.Context, arg CreateModifierOptionParams) (ModifierOption, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO modifier_options (modifier_id, name, price_delta_cents, is_default, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ModifierID, arg.Name, arg.PriceDeltaCents, arg.IsDefault, arg.Position, now, now)
	if err != nil {
		return ModifierOption{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ModifierOption{}, err
	}
	return q.GetModifierOptionByID(ctx, id)
}

// UpdateModifierOptionParams holds parameters for UpdateModifierOption.
type UpdateModifierOptionParams struct {
	ID              int64
	Name            string
	PriceDeltaCents int64
	IsDefault       bool
	Position        int64
}

// UpdateModifierOption updates an existing modifier option.
func (q *Queries) UpdateModifierOption(ctx context.Context, arg UpdateModifierOptionParams) (ModifierOption, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE modifier_options
		 SET name = ?, price_delta_cents = ?, is_default = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.PriceDeltaCents, arg.IsDefault, arg.Position, time.Now().UTC(), arg.ID)
	if err != nil {
		return ModifierOption{}, err
	}
	return q.GetModifierOptionByID(ctx, arg.ID)
}

// DeleteModifierOption removes a modifier option row.
func (q *Queries) DeleteModifierOption(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM modifier_options WHERE id = ?`, id)
	return err
}
