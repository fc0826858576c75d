// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Combo represents a bundled offering of several products at one price.
type Combo struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComboItem is one product line inside a combo.
type ComboItem struct {
	ID        int64
	ComboID   int64
	ProductID int64
	Name      string
	Quantity  int64
	Position  int64
	CreatedAt time.Time
}

const comboColumns = `id, name, slug, description, price_cents, image_id, is_available, position, created_at, updated_at`

func scanCombo(row interface{ Scan(...any) error }) (Combo, error) {
	var c Combo
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PriceCents, &c.ImageID,
		&c.IsAvailable, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCombos returns combos ordered by position.
func (q *Queries) ListCombos(ctx context.Context, limit, offset int64) ([]Combo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+comboColumns+` FROM combos ORDER BY position, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var combos []Combo
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}

// CountCombos returns the total number of combos.
func (q *Queries) CountCombos(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM combos`).Scan(&n)
	return n, err
}

// GetComboByID returns a combo by its ID.
func (q *Queries) GetComboByID(ctx context.Context, id int64) (Combo, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+comboColumns+` FROM combos WHERE id = ?`, id)
	return scanCombo(row)
}

// CountCombosBySlug counts combos with the given slug, excluding one ID.
func (q *Queries) CountCombosBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM combos WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n, err
}

// CreateComboParams holds parameters for CreateCombo.
type CreateComboParams struct {
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
}

// CreateCombo inserts a new combo.
func (q *Queries) CreateCombo(ctx context.Context, arg CreateComboParams) (Combo, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO combos (name, slug, description, price_cents, image_id, is_available, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Slug, arg.Description, arg.PriceCents, arg.ImageID, arg.IsAvailable, arg.Position, now, now)
	if err != nil {
		return Combo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Combo{}, err
	}
	return q.GetComboByID(ctx, id)
}

// UpdateComboParams holds parameters for UpdateCombo.
type UpdateComboParams struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
}

// UpdateCombo updates an existing combo.
func (q *Queries) UpdateCombo(ctx context.Context, arg UpdateComboParams) (Combo, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE combos
		 SET name = ?, slug = ?, description = ?, price_cents = ?, image_id = ?, is_available = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Slug, arg.Description, arg.PriceCents, arg.ImageID, arg.IsAvailable,
		arg.Position, time.Now().UTC(), arg.ID)
	if err != nil {
		return Combo{}, err
	}
	return q.GetComboByID(ctx, arg.ID)
}

// DeleteCombo removes a combo and, via foreign keys, its items.
func (q *Queries) DeleteCombo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM combos WHERE id = ?`, id)
	return err
}

const comboItemColumns = `id, combo_id, product_id, name, quantity, position, created_at`

func scanComboItem(row interface{ Scan(...any) error }) (ComboItem, error) {
	var i ComboItem
	err := row.Scan(&i.ID, &i.ComboID, &i.ProductID, &i.Name, &i.Quantity, &i.Position, &i.CreatedAt)
	return i, err
}

// ListComboItems returns the items of one combo, in order.
func (q *Queries) ListComboItems(ctx context.Context, comboID int64) ([]ComboItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+comboItemColumns+` FROM combo_items WHERE combo_id = ? ORDER BY position, id`,
		comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ComboItem
	for rows.Next() {
		i, err := scanComboItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetComboItemByID returns a combo item by its ID.
func (q *Queries) GetComboItemByID(ctx context.Context, id int64) (ComboItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+comboItemColumns+` FROM combo_items WHERE id = ?`, id)
	return scanComboItem(row)
}

// CreateComboItemParams holds parameters for CreateComboItem.
type CreateComboItemParams struct {
	ComboID   int64
	ProductID int64
	Name      string
	Quantity  int64
	Position  int64
}

// CreateComboItem inserts a new item into a combo.
func (q *Queries) CreateComboItem(ctx context.Context, arg CreateComboItemParams) (ComboItem, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO combo_items (combo_id, product_id, name, quantity, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.ComboID, arg.ProductID, arg.Name, arg.Quantity, arg.Position, time.Now().UTC())
	if err != nil {
		return ComboItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ComboItem{}, err
	}
	return q.GetComboItemByID(ctx, id)
}

// ListComboItemIDsByProduct returns the ids of combo items referencing a
// product. Used to cascade translation cleanup when a product delete
// removes the item rows via foreign key.
func (q *Queries) ListComboItemIDsByProduct(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id FROM combo_items WHERE product_id = ?`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteComboItem removes a combo item row.
func (q *Queries) DeleteComboItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM combo_items WHERE id = ?`, id)
	return err
}
