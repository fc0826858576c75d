// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Media represents an uploaded file row.
type Media struct {
	ID           int64
	UUID         string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
	CreatedAt    time.Time
}

const mediaColumns = `id, uuid, filename, original_name, mime_type, size, width, height, created_at`

func scanMedia(row interface{ Scan(...any) error }) (Media, error) {
	var m Media
	err := row.Scan(&m.ID, &m.UUID, &m.Filename, &m.OriginalName, &m.MimeType,
		&m.Size, &m.Width, &m.Height, &m.CreatedAt)
	return m, err
}

// ListMedia returns media rows, newest first.
func (q *Queries) ListMedia(ctx context.Context, limit, offset int64) ([]Media, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// CountMedia returns the total number of media rows.
func (q *Queries) CountMedia(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}

// GetMediaByID returns a media row by its ID.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (Media, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

// CreateMediaParams holds parameters for CreateMedia.
type CreateMediaParams struct {
	UUID         string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
}

// CreateMedia inserts a new media row.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (Media, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO media (uuid, filename, original_name, mime_type, size, width, height, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.UUID, arg.Filename, arg.OriginalName, arg.MimeType, arg.Size, arg.Width, arg.Height, time.Now().UTC())
	if err != nil {
		return Media{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Media{}, err
	}
	return q.GetMediaByID(ctx, id)
}

// DeleteMedia removes a media row.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}
