// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Product represents a row in the products table.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Slug        string
	Description string
	SKU         string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const productColumns = `id, category_id, name, slug, description, sku, price_cents, image_id, is_available, position, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.SKU,
		&p.PriceCents, &p.ImageID, &p.IsAvailable, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListProductsParams controls product listing.
type ListProductsParams struct {
	CategoryID    int64 // 0 = all categories
	AvailableOnly bool
	Limit         int64
	Offset        int64
}

// ListProducts returns products ordered by position within category.
func (q *Queries) ListProducts(ctx context.Context, arg ListProductsParams) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	if arg.CategoryID > 0 {
		query += ` AND category_id = ?`
		args = append(args, arg.CategoryID)
	}
	if arg.AvailableOnly {
		query += ` AND is_available = 1`
	}
	query += ` ORDER BY category_id, position, id LIMIT ? OFFSET ?`
	args = append(args, arg.Limit, arg.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CountProducts returns the number of products matching the filter.
func (q *Queries) CountProducts(ctx context.Context, arg ListProductsParams) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE 1=1`
	args := []any{}
	if arg.CategoryID > 0 {
		query += ` AND category_id = ?`
		args = append(args, arg.CategoryID)
	}
	if arg.AvailableOnly {
		query += ` AND is_available = 1`
	}
	var n int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// GetProductByID returns a product by its ID.
func (q *Queries) GetProductByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

// GetProductBySlug returns a product by its slug.
func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
	return scanProduct(row)
}

// CountProductsBySlug counts products with the given slug, excluding one ID.
func (q *Queries) CountProductsBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n, err
}

// CreateProductParams holds parameters for CreateProduct.
type CreateProductParams struct {
	CategoryID  int64
	Name        string
	Slug        string
	Description string
	SKU         string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
}

// CreateProduct inserts a new product.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (category_id, name, slug, description, sku, price_cents, image_id, is_available, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.CategoryID, arg.Name, arg.Slug, arg.Description, arg.SKU, arg.PriceCents,
		arg.ImageID, arg.IsAvailable, arg.Position, now, now)
	if err != nil {
		return Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Product{}, err
	}
	return q.GetProductByID(ctx, id)
}

// UpdateProductParams holds parameters for UpdateProduct.
type UpdateProductParams struct {
	ID          int64
	CategoryID  int64
	Name        string
	Slug        string
	Description string
	SKU         string
	PriceCents  int64
	ImageID     sql.NullInt64
	IsAvailable bool
	Position    int64
}

// UpdateProduct updates an existing product.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE products
		 SET category_id = ?, name = ?, slug = ?, description = ?, sku = ?, price_cents = ?,
		     image_id = ?, is_available = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		arg.CategoryID, arg.Name, arg.Slug, arg.Description, arg.SKU, arg.PriceCents,
		arg.ImageID, arg.IsAvailable, arg.Position, time.Now().UTC(), arg.ID)
	if err != nil {
		return Product{}, err
	}
	return q.GetProductByID(ctx, arg.ID)
}

// DeleteProduct removes a product row.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// ListProductIDsByCategory returns the ids of every product in a category,
// available or not. Used to cascade translation cleanup when the category
// delete removes the product rows via foreign key.
func (q *Queries) ListProductIDsByCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id FROM products WHERE category_id = ?`, categoryID)
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

// SetProductModifiers replaces the modifier assignments for a product.
func (q *Queries) SetProductModifiers(ctx context.Context, productID int64, modifierIDs []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM product_modifiers WHERE product_id = ?`, productID); err != nil {
		return err
	}
	for i, mid := range modifierIDs {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO product_modifiers (product_id, modifier_id, position) VALUES (?, ?, ?)`,
			productID, mid, i); err != nil {
			return err
		}
	}
	return nil
}

// ListProductModifierIDs returns the modifier ids assigned to a product, in order.
func (q *Queries) ListProductModifierIDs(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT modifier_id FROM product_modifiers WHERE product_id = ? ORDER BY position`, productID)
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
