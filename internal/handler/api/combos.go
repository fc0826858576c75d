// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
	"github.com/olegiv/poscat-go/internal/util"
)

// ComboAPIResponse represents a combo meal in API responses.
// Items are included on single-combo reads.
type ComboAPIResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description,omitempty"`
	PriceCents  int64                  `json:"price_cents"`
	ImageID     *int64                 `json:"image_id,omitempty"`
	IsAvailable bool                   `json:"is_available"`
	Position    int64                  `json:"position"`
	Items       []ComboItemAPIResponse `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ComboItemAPIResponse is one product line inside a combo.
type ComboItemAPIResponse struct {
	ID        int64  `json:"id"`
	ComboID   int64  `json:"combo_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Position  int64  `json:"position"`
}

// CreateComboRequest represents the request body for creating a combo.
type CreateComboRequest struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug,omitempty"`
	Description  string          `json:"description,omitempty"`
	PriceCents   int64           `json:"price_cents"`
	ImageID      *int64          `json:"image_id,omitempty"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// UpdateComboRequest represents the request body for updating a combo.
type UpdateComboRequest struct {
	Name         *string         `json:"name,omitempty"`
	Slug         *string         `json:"slug,omitempty"`
	Description  *string         `json:"description,omitempty"`
	PriceCents   *int64          `json:"price_cents,omitempty"`
	ImageID      *int64          `json:"image_id,omitempty"`
	IsAvailable  *bool           `json:"is_available,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// CreateComboItemRequest represents the request body for adding a combo item.
type CreateComboItemRequest struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name,omitempty"`
	Quantity     *int64          `json:"quantity,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

func comboResponse(c store.Combo, fields map[string]string, items []ComboItemAPIResponse) ComboAPIResponse {
	return ComboAPIResponse{
		ID:          c.ID,
		Name:        fields["name"],
		Slug:        c.Slug,
		Description: fields["description"],
		PriceCents:  c.PriceCents,
		ImageID:     util.NullInt64ToPtr(c.ImageID),
		IsAvailable: c.IsAvailable,
		Position:    c.Position,
		Items:       items,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func baseComboFields(c store.Combo) map[string]string {
	return map[string]string{"name": c.Name, "description": c.Description}
}

// localizedComboItems resolves item names for langCode in one batch.
func (h *Handler) localizedComboItems(r *http.Request, comboID int64, langCode string) ([]ComboItemAPIResponse, error) {
	ctx := r.Context()
	items, err := h.queries.ListComboItems(ctx, comboID)
	if err != nil {
		return nil, err
	}

	listItems := make([]i18n.ListItem, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, i18n.ListItem{ID: it.ID, Fields: map[string]string{"name": it.Name}})
	}
	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeComboItem, langCode, listItems)
	if err != nil {
		return nil, err
	}

	responses := make([]ComboItemAPIResponse, 0, len(items))
	for i, it := range items {
		responses = append(responses, ComboItemAPIResponse{
			ID:        it.ID,
			ComboID:   it.ComboID,
			ProductID: it.ProductID,
			Name:      resolved[i]["name"],
			Quantity:  it.Quantity,
			Position:  it.Position,
		})
	}
	return responses, nil
}

// ListCombos handles GET /api/v1/combos.
func (h *Handler) ListCombos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	cacheable := cacheableListRequest(r) && h.catalog != nil
	if cacheable {
		if payload, ok := h.catalog.GetList(ctx, model.EntityTypeCombo, langCode); ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)
			return
		}
	}

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 100)

	combos, err := h.queries.ListCombos(ctx, int64(perPage), int64((page-1)*perPage))
	if err != nil {
		WriteInternalError(w, "Failed to list combos")
		return
	}

	total, err := h.queries.CountCombos(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to count combos")
		return
	}

	items := make([]i18n.ListItem, 0, len(combos))
	for _, c := range combos {
		items = append(items, i18n.ListItem{ID: c.ID, Fields: baseComboFields(c)})
	}
	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeCombo, langCode, items)
	if err != nil {
		WriteInternalError(w, "Failed to resolve translations")
		return
	}

	responses := make([]ComboAPIResponse, 0, len(combos))
	for i, c := range combos {
		responses = append(responses, comboResponse(c, resolved[i], nil))
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
			h.catalog.SetList(ctx, model.EntityTypeCombo, langCode, payload)
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetCombo handles GET /api/v1/combos/{id}. Includes localized items.
func (h *Handler) GetCombo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	combo, ok := requireEntityByID(w, r, "combo", func(id int64) (store.Combo, error) {
		return h.queries.GetComboByID(ctx, id)
	})
	if !ok {
		return
	}

	fields := baseComboFields(combo)
	for field, fallback := range fields {
		value, err := h.translator.TranslatedField(ctx, model.EntityTypeCombo, combo.ID, field, langCode, fallback)
		if err != nil {
			WriteInternalError(w, "Failed to resolve translations")
			return
		}
		fields[field] = value
	}

	items, err := h.localizedComboItems(r, combo.ID, langCode)
	if err != nil {
		WriteInternalError(w, "Failed to load combo items")
		return
	}

	WriteSuccess(w, comboResponse(combo, fields, items), &Meta{Language: langCode})
}

// CreateCombo handles POST /api/v1/combos. Requires manager role.
func (h *Handler) CreateCombo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.PriceCents < 0 {
		fieldErrors["price_cents"] = "Price cannot be negative"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
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
	if !h.checkComboSlug(w, r, slug, 0) {
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

	combo, err := h.queries.CreateCombo(ctx, store.CreateComboParams{
		Name:        req.Name,
		Slug:        slug,
		Description: util.SanitizeDescription(req.Description),
		PriceCents:  req.PriceCents,
		ImageID:     util.NullInt64FromPtr(req.ImageID),
		IsAvailable: isAvailable,
		Position:    position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create combo")
		return
	}

	h.syncTranslations(r, model.EntityTypeCombo, combo.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeCombo)

	WriteCreated(w, comboResponse(combo, baseComboFields(combo), nil))
}

// UpdateCombo handles PUT /api/v1/combos/{id}. Requires manager role.
func (h *Handler) UpdateCombo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "combo", func(id int64) (store.Combo, error) {
		return h.queries.GetComboByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateComboParams{
		ID:          existing.ID,
		Name:        existing.Name,
		Slug:        existing.Slug,
		Description: existing.Description,
		PriceCents:  existing.PriceCents,
		ImageID:     existing.ImageID,
		IsAvailable: existing.IsAvailable,
		Position:    existing.Position,
	}

	if req.Name != nil && *req.Name != "" {
		params.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		if !util.IsValidSlug(*req.Slug) {
			WriteValidationError(w, map[string]string{"slug": "Invalid slug"})
			return
		}
		if !h.checkComboSlug(w, r, *req.Slug, existing.ID) {
			return
		}
		params.Slug = *req.Slug
	}
	if req.Description != nil {
		params.Description = util.SanitizeDescription(*req.Description)
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

	combo, err := h.queries.UpdateCombo(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update combo")
		return
	}

	h.syncTranslations(r, model.EntityTypeCombo, combo.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeCombo)

	WriteSuccess(w, comboResponse(combo, baseComboFields(combo), nil), nil)
}

// DeleteCombo handles DELETE /api/v1/combos/{id}. Requires admin role.
// Items cascade at the database level; their translations are cleaned up here.
func (h *Handler) DeleteCombo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	combo, ok := requireEntityByID(w, r, "combo", func(id int64) (store.Combo, error) {
		return h.queries.GetComboByID(ctx, id)
	})
	if !ok {
		return
	}

	items, err := h.queries.ListComboItems(ctx, combo.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load combo items")
		return
	}

	if err := h.queries.DeleteCombo(ctx, combo.ID); err != nil {
		WriteInternalError(w, "Failed to delete combo")
		return
	}

	h.deleteTranslations(r, model.EntityTypeCombo, combo.ID)
	for _, it := range items {
		h.deleteTranslations(r, model.EntityTypeComboItem, it.ID)
	}
	h.invalidateListings(r, model.EntityTypeCombo)

	w.WriteHeader(http.StatusNoContent)
}

// CreateComboItem handles POST /api/v1/combos/{id}/items.
// The item name defaults to the referenced product's name.
func (h *Handler) CreateComboItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	combo, ok := requireEntityByID(w, r, "combo", func(id int64) (store.Combo, error) {
		return h.queries.GetComboByID(ctx, id)
	})
	if !ok {
		return
	}

	var req CreateComboItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.ProductID < 1 {
		WriteValidationError(w, map[string]string{"product_id": "Product is required"})
		return
	}

	product, err := h.queries.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string]string{"product_id": "Product not found"})
			return
		}
		WriteInternalError(w, "Failed to check product")
		return
	}

	name := req.Name
	if name == "" {
		name = product.Name
	}
	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		WriteValidationError(w, map[string]string{"quantity": "Quantity must be at least 1"})
		return
	}
	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}

	item, err := h.queries.CreateComboItem(ctx, store.CreateComboItemParams{
		ComboID:   combo.ID,
		ProductID: product.ID,
		Name:      name,
		Quantity:  quantity,
		Position:  position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create combo item")
		return
	}

	h.syncTranslations(r, model.EntityTypeComboItem, item.ID, req.Translations)
	h.invalidateListings(r, model.EntityTypeCombo)

	WriteCreated(w, ComboItemAPIResponse{
		ID:        item.ID,
		ComboID:   item.ComboID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Position:  item.Position,
	})
}

// DeleteComboItem handles DELETE /api/v1/combos/{id}/items/{itemID}.
func (h *Handler) DeleteComboItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comboID, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid combo ID", nil)
		return
	}

	itemID, err := parseInt64URLParam(r, "itemID")
	if err != nil {
		WriteBadRequest(w, "Invalid item ID", nil)
		return
	}

	item, err := h.queries.GetComboItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Combo item not found")
			return
		}
		WriteInternalError(w, "Failed to load combo item")
		return
	}
	if item.ComboID != comboID {
		WriteNotFound(w, "Combo item not found")
		return
	}

	if err := h.queries.DeleteComboItem(ctx, item.ID); err != nil {
		WriteInternalError(w, "Failed to delete combo item")
		return
	}

	h.deleteTranslations(r, model.EntityTypeComboItem, item.ID)
	h.invalidateListings(r, model.EntityTypeCombo)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkComboSlug(w http.ResponseWriter, r *http.Request, slug string, excludeID int64) bool {
	count, err := h.queries.CountCombosBySlug(r.Context(), slug, excludeID)
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
