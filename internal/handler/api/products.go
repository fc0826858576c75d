// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/util"
)

// ProductAPIResponse represents a product in API responses.
type ProductAPIResponse struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	ImageID     *int64    `json:"image_id,omitempty"`
	IsAvailable bool      `json:"is_available"`
	Position    int64     `json:"position"`
	ModifierIDs []int64   `json:"modifier_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	CategoryID   int64           `json:"category_id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug,omitempty"`
	Description  string          `json:"description,omitempty"`
	SKU          string          `json:"sku,omitempty"`
	PriceCents   int64           `json:"price_cents"`
	ImageID      *int64          `json:"image_id,omitempty"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	ModifierIDs  []int64         `json:"modifier_ids,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// UpdateProductRequest represents the request body for updating a product.
type UpdateProductRequest struct {
	CategoryID   *int64          `json:"category_id,omitempty"`
	Name         *string         `json:"name,omitempty"`
	Slug         *string         `json:"slug,omitempty"`
	Description  *string         `json:"description,omitempty"`
	SKU          *string         `json:"sku,omitempty"`
	PriceCents   *int64          `json:"price_cents,omitempty"`
	ImageID      *int64          `json:"image_id,omitempty"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	ModifierIDs  []int64         `json:"modifier_ids,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

func productResponse(p store.Product, fields map[string]string, modifierIDs []int64) ProductAPIResponse {
	return ProductAPIResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        fields["name"],
		Slug:        p.Slug,
		Description: fields["description"],
		SKU:         p.SKU,
		PriceCents:  p.PriceCents,
		ImageID:     util.NullInt64ToPtr(p.ImageID),
		IsAvailable: p.IsAvailable,
		Position:    p.Position,
		ModifierIDs: modifierIDs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func baseProductFields(p store.Product) map[string]string {
	return map[string]string{"name": p.Name, "description": p.Description}
}

// ListProducts handles GET /api/v1/products.
// Public: returns available products localized for the request language.
// Accepts an optional category_id filter.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	var categoryID int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			WriteBadRequest(w, "Invalid category_id parameter", nil)
			return
		}
		categoryID = id
	}

	cacheable := cacheableListRequest(r) && categoryID == 0 && h.catalog != nil
	if cacheable {
		if payload, ok := h.catalog.GetList(ctx, model.EntityTypeProduct, langCode); ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)
			return
		}
	}

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 200)

	filter := store.ListProductsParams{
		CategoryID:    categoryID,
		AvailableOnly: true,
		Limit:         int64(perPage),
		Offset:        int64((page - 1) * perPage),
	}

	products, err := h.queries.ListProducts(ctx, filter)
	if err != nil {
		WriteInternalError(w, "Failed to list products")
		return
	}

	total, err := h.queries.CountProducts(ctx, filter)
	if err != nil {
		WriteInternalError(w, "Failed to count products")
		return
	}

	items := make([]i18n.ListItem, 0, len(products))
	for _, p := range products {
		items = append(items, i18n.ListItem{ID: p.ID, Fields: baseProductFields(p)})
	}

	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeProduct, langCode, items)
	if err != nil {
		WriteInternalError(w, "Failed to resolve translations")
		return
	}

	responses := make([]ProductAPIResponse, 0, len(products))
	for i, p := range products {
		responses = append(responses, productResponse(p, resolved[i], nil))
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
			h.catalog.SetList(ctx, model.EntityTypeProduct, langCode, payload)
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/v1/products/{id}.
// Includes the attached modifier group IDs.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	product, ok := requireEntityByID(w, r, "product", func(id int64) (store.Product, error) {
		return h.queries.GetProductByID(ctx, id)
	})
	if !ok {
		return
	}

	fields := baseProductFields(product)
	for field, fallback := range fields {
		value, err := h.translator.TranslatedField(ctx, model.EntityTypeProduct, product.ID, field, langCode, fallback)
		if err != nil {
			WriteInternalError(w, "Failed to resolve translations")
			return
		}
		fields[field] = value
	}

	modifierIDs, err := h.queries.ListProductModifierIDs(ctx, product.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load product modifiers")
		return
	}

	WriteSuccess(w, productResponse(product, fields, modifierIDs), &Meta{Language: langCode})
}

// CreateProduct handles POST /api/v1/products. Requires manager role.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.CategoryID < 1 {
		fieldErrors["category_id"] = "Category is required"
	}
	if req.PriceCents < 0 {
		fieldErrors["price_cents"] = "Price cannot be negative"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"category_id": "Category not found"})
			return
		}
		WriteInternalError(w, "Failed to check category")
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
	if !h.checkProductSlug(w, r, slug, 0) {
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}

	product, err := h.queries.CreateProduct(ctx, store.CreateProductParams{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        slug,
		Description: util.SanitizeDescription(req.Description),
		SKU:         req.SKU,
		PriceCents:  req.PriceCents,
		ImageID:     util.NullInt64FromPtr(req.ImageID),
		IsAvailable: isAvailable,
		Position:    position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create product")
		return
	}

	if req.ModifierIDs != nil {
		if err := h.queries.SetProductModifiers(ctx, product.ID, req.ModifierIDs); err != nil {
			WriteInternalError(w, "Failed to attach modifiers")
			return
		}
	}

	h.syncTranslations(r, model.EntityTypeProduct, product.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeProduct)

	WriteCreated(w, productResponse(product, baseProductFields(product), req.ModifierIDs))
}

// UpdateProduct handles PUT /api/v1/products/{id}. Requires manager role.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "product", func(id int64) (store.Product, error) {
		return h.queries.GetProductByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateProductParams{
		ID:          existing.ID,
		CategoryID:  existing.CategoryID,
		Name:        existing.Name,
		Slug:        existing.Slug,
		Description: existing.Description,
		SKU:         existing.SKU,
		PriceCents:  existing.PriceCents,
		ImageID:     existing.ImageID,
		IsAvailable: existing.IsAvailable,
		Position:    existing.Position,
	}

	if req.CategoryID != nil {
		if _, err := h.queries.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteValidationError(w, map[string]string{"category_id": "Category not found"})
				return
			}
			WriteInternalError(w, "Failed to check category")
			return
		}
		params.CategoryID = *req.CategoryID
	}
	if req.Name != nil && *req.Name != "" {
		params.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		if !util.IsValidSlug(*req.Slug) {
			WriteValidationError(w, map[string]string{"slug": "Invalid slug"})
			return
		}
		if !h.checkProductSlug(w, r, *req.Slug, existing.ID) {
			return
		}
		params.Slug = *req.Slug
	}
	if req.Description != nil {
		params.Description = util.SanitizeDescription(*req.Description)
	}
	if req.SKU != nil {
		params.SKU = *req.SKU
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			WriteValidationError(w, map[string]string{"price_cents": "Price cannot be negative"})
			return
		}
		params.PriceCents = *req.PriceCents
	}
	if req.ImageID != nil {
		params.ImageID = util.NullInt64FromPtr(req.ImageID)
	}
	if req.IsAvailable != nil {
		params.IsAvailable = *req.IsAvailable
	}
	if req.Position != nil {
		params.Position = *req.Position
	}

	product, err := h.queries.UpdateProduct(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update product")
		return
	}

	if req.ModifierIDs != nil {
		if err := h.queries.SetProductModifiers(ctx, product.ID, req.ModifierIDs); err != nil {
			WriteInternalError(w, "Failed to attach modifiers")
			return
		}
	}

	h.syncTranslations(r, model.EntityTypeProduct, product.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeProduct)

	modifierIDs, err := h.queries.ListProductModifierIDs(ctx, product.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load product modifiers")
		return
	}

	WriteSuccess(w, productResponse(product, baseProductFields(product), modifierIDs), nil)
}

// DeleteProduct handles DELETE /api/v1/products/{id}. Requires admin role.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, ok := requireEntityByID(w, r, "product", func(id int64) (store.Product, error) {
		return h.queries.GetProductByID(ctx, id)
	})
	if !ok {
		return
	}

	// Combo items referencing this product vanish with it via foreign
	// key; collect them first so their translations go too.
	itemIDs, err := h.queries.ListComboItemIDsByProduct(ctx, product.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load combo items")
		return
	}

	if err := h.queries.DeleteProduct(ctx, product.ID); err != nil {
		WriteInternalError(w, "Failed to delete product")
		return
	}

	h.deleteTranslations(r, model.EntityTypeProduct, product.ID)
	for _, id := range itemIDs {
		h.deleteTranslations(r, model.EntityTypeComboItem, id)
	}
	h.invalidateListings(r, model.EntityTypeProduct)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkProductSlug(w http.ResponseWriter, r *http.Request, slug string, excludeID int64) bool {
	count, err := h.queries.CountProductsBySlug(r.Context(), slug, excludeID)
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
