// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/util"
)

// CategoryAPIResponse represents a category in API responses.
// Name and Description carry the resolved translation for the request
// language.
type CategoryAPIResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageID     *int64    `json:"image_id,omitempty"`
	Position    int64     `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryRequest represents the request body for creating a category.
// Translations is an optional language -> field -> value payload.
type CreateCategoryRequest struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug,omitempty"`
	Description  string          `json:"description,omitempty"`
	ImageID      *int64          `json:"image_id,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	IsActive     *bool           `json:"is_active,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// UpdateCategoryRequest represents the request body for updating a category.
type UpdateCategoryRequest struct {
	Name         *string         `json:"name,omitempty"`
	Slug         *string         `json:"slug,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ImageID      *int64          `json:"image_id,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	IsActive     *bool           `json:"is_active,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

func categoryResponse(c store.Category, fields map[string]string) CategoryAPIResponse {
	return CategoryAPIResponse{
		ID:          c.ID,
		Name:        fields["name"],
		Slug:        c.Slug,
		Description: fields["description"],
		ImageID:     util.NullInt64ToPtr(c.ImageID),
		Position:    c.Position,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// cacheableListRequest reports whether a listing request uses the default
// pagination and can be served from the catalog cache.
func cacheableListRequest(r *http.Request) bool {
	q := r.URL.Query()
	return q.Get("page") == "" && q.Get("per_page") == ""
}

// ListCategories handles GET /api/v1/categories.
// Public: returns active categories localized for the request language.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	cacheable := cacheableListRequest(r) && h.catalog != nil
	if cacheable {
		if payload, ok := h.catalog.GetList(ctx, model.EntityTypeCategory, langCode); ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)
			return
		}
	}

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 100)

	categories, err := h.queries.ListCategories(ctx, store.ListCategoriesParams{
		ActiveOnly: true,
		Limit:      int64(perPage),
		Offset:     int64((page - 1) * perPage),
	})
	if err != nil {
		WriteInternalError(w, "Failed to list categories")
		return
	}

	total, err := h.queries.CountCategories(ctx, true)
	if err != nil {
		WriteInternalError(w, "Failed to count categories")
		return
	}

	items := make([]i18n.ListItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, i18n.ListItem{
			ID:     c.ID,
			Fields: map[string]string{"name": c.Name, "description": c.Description},
		})
	}

	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeCategory, langCode, items)
	if err != nil {
		WriteInternalError(w, "Failed to resolve translations")
		return
	}

	responses := make([]CategoryAPIResponse, 0, len(categories))
	for i, c := range categories {
		responses = append(responses, categoryResponse(c, resolved[i]))
	}

	resp := Response{
		Data: responses,
		Meta: &Meta{
			Total:    total,
			Page:     page,
			PerPage:  perPage,
			Pages:    pageCount(total, perPage),
			Language: langCode,
		},
	}

	if cacheable {
		if payload, err := json.Marshal(resp); err == nil {
			h.catalog.SetList(ctx, model.EntityTypeCategory, langCode, payload)
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetCategory handles GET /api/v1/categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	category, ok := requireEntityByID(w, r, "category", func(id int64) (store.Category, error) {
		return h.queries.GetCategoryByID(ctx, id)
	})
	if !ok {
		return
	}

	fields := map[string]string{"name": category.Name, "description": category.Description}
	for field, fallback := range fields {
		value, err := h.translator.TranslatedField(ctx, model.EntityTypeCategory, category.ID, field, langCode, fallback)
		if err != nil {
			WriteInternalError(w, "Failed to resolve translations")
			return
		}
		fields[field] = value
	}

	WriteSuccess(w, categoryResponse(category, fields), &Meta{Language: langCode})
}

// CreateCategory handles POST /api/v1/categories. Requires manager role.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	if !util.IsValidSlug(slug) {
		WriteValidationError(w, map[string]string{"slug": "Invalid slug"})
		return
	}

	if !h.checkCategorySlug(w, r, slug, 0) {
		return
	}

	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category, err := h.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name:        req.Name,
		Slug:        slug,
		Description: util.SanitizeDescription(req.Description),
		ImageID:     util.NullInt64FromPtr(req.ImageID),
		Position:    position,
		IsActive:    isActive,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create category")
		return
	}

	h.syncTranslations(r, model.EntityTypeCategory, category.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeCategory)

	WriteCreated(w, categoryResponse(category, map[string]string{
		"name":        category.Name,
		"description": category.Description,
	}))
}

// UpdateCategory handles PUT /api/v1/categories/{id}. Requires manager role.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "category", func(id int64) (store.Category, error) {
		return h.queries.GetCategoryByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateCategoryParams{
		ID:          existing.ID,
		Name:        existing.Name,
		Slug:        existing.Slug,
		Description: existing.Description,
		ImageID:     existing.ImageID,
		Position:    existing.Position,
		IsActive:    existing.IsActive,
	}

	if req.Name != nil && *req.Name != "" {
		params.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		if !util.IsValidSlug(*req.Slug) {
			WriteValidationError(w, map[string]string{"slug": "Invalid slug"})
			return
		}
		if !h.checkCategorySlug(w, r, *req.Slug, existing.ID) {
			return
		}
		params.Slug = *req.Slug
	}
	if req.Description != nil {
		params.Description = util.SanitizeDescription(*req.Description)
	}
	if req.ImageID != nil {
		params.ImageID = util.NullInt64FromPtr(req.ImageID)
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	category, err := h.queries.UpdateCategory(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update category")
		return
	}

	h.syncTranslations(r, model.EntityTypeCategory, category.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeCategory)

	WriteSuccess(w, categoryResponse(category, map[string]string{
		"name":        category.Name,
		"description": category.Description,
	}), nil)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}. Requires admin role.
// Translations for the category and everything the delete cascades over
// are removed in the same request.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, ok := requireEntityByID(w, r, "category", func(id int64) (store.Category, error) {
		return h.queries.GetCategoryByID(ctx, id)
	})
	if !ok {
		return
	}

	// The category delete removes its products, and through them any
	// combo items, via foreign key. Collect both levels up front so
	// every cascade-deleted row's translations are removed with it.
	productIDs, err := h.queries.ListProductIDsByCategory(ctx, category.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load category products")
		return
	}
	var itemIDs []int64
	for _, pid := range productIDs {
		ids, err := h.queries.ListComboItemIDsByProduct(ctx, pid)
		if err != nil {
			WriteInternalError(w, "Failed to load combo items")
			return
		}
		itemIDs = append(itemIDs, ids...)
	}

	if err := h.queries.DeleteCategory(ctx, category.ID); err != nil {
		WriteInternalError(w, "Failed to delete category")
		return
	}

	h.deleteTranslations(r, model.EntityTypeCategory, category.ID)
	for _, pid := range productIDs {
		h.deleteTranslations(r, model.EntityTypeProduct, pid)
	}
	for _, id := range itemIDs {
		h.deleteTranslations(r, model.EntityTypeComboItem, id)
	}
	h.invalidateListings(r, model.EntityTypeCategory)
	h.invalidateListings(r, model.EntityTypeProduct)

	w.WriteHeader(http.StatusNoContent)
}

// checkCategorySlug verifies slug uniqueness, writing a validation error on
// conflict. Returns true when the slug is free.
func (h *Handler) checkCategorySlug(w http.ResponseWriter, r *http.Request, slug string, excludeID int64) bool {
	count, err := h.queries.CountCategoriesBySlug(r.Context(), slug, excludeID)
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return false
	}
	if count != 0 {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return false
	}
	return true
}
