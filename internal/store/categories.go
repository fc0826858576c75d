// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Category represents a row in the categories table.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageID     sql.NullInt64
	Position    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const categoryColumns = `id, name, slug, description, image_id, position, is_active, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageID,
		&c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCategoriesParams controls category listing.
type ListCategoriesParams struct {
	ActiveOnly bool
	Limit      int64
	Offset     int64
}

// ListCategories returns categories ordered by position.
func (q *Queries) ListCategories(ctx context.Context, arg ListCategoriesParams) ([]Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if arg.ActiveOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY position, id LIMIT ? OFFSET ?`

	rows, err := q.db.QueryContext(ctx, query, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CountCategories returns the total number of categories.
func (q *Queries) CountCategories(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM categories`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	var n int64
	err := q.db.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

// GetCategoryByID returns a category by its ID.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryBySlug returns a category by its slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	return scanCategory(row)
}

// CountCategoriesBySlug counts categories with the given slug, excluding one ID.
// Used for slug uniqueness checks on create (excludeID = 0) and update.
func (q *Queries) CountCategoriesBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n, err
}

// CreateCategoryParams holds parameters for CreateCategory.
type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	ImageID     sql.NullInt64
	Position    int64
	IsActive    bool
}

// CreateCategory inserts a new category.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description, image_id, position, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Slug, arg.Description, arg.ImageID, arg.Position, arg.IsActive, now, now)
	if err != nil {
		return Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Category{}, err
	}
	return q.GetCategoryByID(ctx, id)
}

// UpdateCategoryParams holds parameters for UpdateCategory.
type UpdateCategoryParams struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageID     sql.NullInt64
	Position    int64
	IsActive    bool
}

// UpdateCategory updates an existing category.
func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE categories
		 SET name = ?, slug = ?, description = ?, image_id = ?, position = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Slug, arg.Description, arg.ImageID, arg.Position, arg.IsActive, time.Now().UTC(), arg.ID)
	if err != nil {
		return Category{}, err
	}
	return q.GetCategoryByID(ctx, arg.ID)
}

// DeleteCategory removes a category row.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}
