// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/util"
)

// maxUploadSize caps media uploads at 20 MB.
const maxUploadSize = 20 << 20

// MediaAPIResponse represents an uploaded media file in API responses.
type MediaAPIResponse struct {
	ID           int64     `json:"id"`
	UUID         string    `json:"uuid"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int64    `json:"width,omitempty"`
	Height       *int64    `json:"height,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func mediaResponse(m store.Media) MediaAPIResponse {
	return MediaAPIResponse{
		ID:           m.ID,
		UUID:         m.UUID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		Size:         m.Size,
		Width:        util.NullInt64ToPtr(m.Width),
		Height:       util.NullInt64ToPtr(m.Height),
		CreatedAt:    m.CreatedAt,
	}
}

// ListMedia handles GET /api/v1/media. Requires manager role.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 100)

	media, err := h.queries.ListMedia(ctx, int64(perPage), int64((page-1)*perPage))
	if err != nil {
		WriteInternalError(w, "Failed to list media")
		return
	}

	total, err := h.queries.CountMedia(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to count media")
		return
	}

	responses := make([]MediaAPIResponse, 0, len(media))
	for _, m := range media {
		responses = append(responses, mediaResponse(m))
	}

	WriteSuccess(w, responses, &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(total, perPage),
	})
}

// GetMedia handles GET /api/v1/media/{id}. Requires manager role.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	media, ok := requireEntityByID(w, r, "media", func(id int64) (store.Media, error) {
		return h.queries.GetMediaByID(ctx, id)
	})
	if !ok {
		return
	}

	WriteSuccess(w, mediaResponse(media), nil)
}

// UploadMedia handles POST /api/v1/media. Requires manager role.
// Accepts a multipart form with a "file" field, processes the image and
// generates the catalog variants.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form or file too large", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		WriteInternalError(w, "Failed to read upload")
		return
	}
	mimeType := h.processor.DetectMimeType(head[:n])
	if !h.processor.IsImage(mimeType) {
		WriteValidationError(w, map[string]string{"file": "Unsupported file type"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		WriteInternalError(w, "Failed to read upload")
		return
	}

	id := uuid.New().String()

	result, err := h.processor.ProcessImage(file, id, header.Filename)
	if err != nil {
		slog.Warn("image processing failed",
			"category", "media", "filename", header.Filename, "error", err)
		WriteValidationError(w, map[string]string{"file": "Could not process image"})
		return
	}

	if _, err := h.processor.CreateAllVariants(result.FilePath, id, header.Filename); err != nil {
		slog.Warn("variant generation failed",
			"category", "media", "uuid", id, "error", err)
	}

	media, err := h.queries.CreateMedia(ctx, store.CreateMediaParams{
		UUID:         id,
		Filename:     header.Filename,
		OriginalName: header.Filename,
		MimeType:     result.MimeType,
		Size:         result.Size,
		Width:        sql.NullInt64{Int64: int64(result.Width), Valid: true},
		Height:       sql.NullInt64{Int64: int64(result.Height), Valid: true},
	})
	if err != nil {
		// Roll back the files so the upload dir doesn't accumulate orphans.
		_ = h.processor.DeleteMediaFiles(id)
		WriteInternalError(w, "Failed to save media")
		return
	}

	slog.Info("media uploaded",
		"category", "media", "id", media.ID, "uuid", media.UUID, "size", media.Size)

	WriteCreated(w, mediaResponse(media))
}

// DeleteMedia handles DELETE /api/v1/media/{id}. Requires admin role.
// Removes the database row and all files on disk.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	media, ok := requireEntityByID(w, r, "media", func(id int64) (store.Media, error) {
		return h.queries.GetMediaByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteMedia(ctx, media.ID); err != nil {
		WriteInternalError(w, "Failed to delete media")
		return
	}

	if err := h.processor.DeleteMediaFiles(media.UUID); err != nil {
		slog.Warn("failed to remove media files",
			"category", "media", "uuid", media.UUID, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
