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

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/middleware"
	"github.com/olegiv/poscat-go/internal/model"
	"github.com/olegiv/poscat-go/internal/store"
)

// ModifierAPIResponse represents a modifier group in API responses.
// Options are included on single-group reads.
type ModifierAPIResponse struct {
	ID         int64                       `json:"id"`
	Name       string                      `json:"name"`
	MinSelect  int64                       `json:"min_select"`
	MaxSelect  int64                       `json:"max_select"`
	IsRequired bool                        `json:"is_required"`
	Position   int64                       `json:"position"`
	Options    []ModifierOptionAPIResponse `json:"options,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// ModifierOptionAPIResponse represents a single option choice.
type ModifierOptionAPIResponse struct {
	ID              int64     `json:"id"`
	ModifierID      int64     `json:"modifier_id"`
	Name            string    `json:"name"`
	PriceDeltaCents int64     `json:"price_delta_cents"`
	IsDefault       bool      `json:"is_default"`
	Position        int64     `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateModifierRequest represents the request body for creating a group.
type CreateModifierRequest struct {
	Name         string          `json:"name"`
	MinSelect    *int64          `json:"min_select,omitempty"`
	MaxSelect    *int64          `json:"max_select,omitempty"`
	IsRequired   *bool           `json:"is_required,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// UpdateModifierRequest represents the request body for updating a group.
type UpdateModifierRequest struct {
	Name         *string         `json:"name,omitempty"`
	MinSelect    *int64          `json:"min_select,omitempty"`
	MaxSelect    *int64          `json:"max_select,omitempty"`
	IsRequired   *bool           `json:"is_required,omitempty"`
	Position     *int64          `json:"position,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// CreateModifierOptionRequest represents the request body for adding an option.
type CreateModifierOptionRequest struct {
	Name            string          `json:"name"`
	PriceDeltaCents int64           `json:"price_delta_cents"`
	IsDefault       *bool           `json:"is_default,omitempty"`
	Position        *int64          `json:"position,omitempty"`
	Translations    json.RawMessage `json:"translations,omitempty"`
}

// UpdateModifierOptionRequest represents the request body for updating an option.
type UpdateModifierOptionRequest struct {
	Name            *string         `json:"name,omitempty"`
	PriceDeltaCents *int64          `json:"price_delta_cents,omitempty"`
	IsDefault       *bool           `json:"is_default,omitempty"`
	Position        *int64          `json:"position,omitempty"`
	Translations    json.RawMessage `json:"translations,omitempty"`
}

func modifierResponse(m store.Modifier, name string, options []ModifierOptionAPIResponse) ModifierAPIResponse {
	return ModifierAPIResponse{
		ID:         m.ID,
		Name:       name,
		MinSelect:  m.MinSelect,
		MaxSelect:  m.MaxSelect,
		IsRequired: m.IsRequired,
		Position:   m.Position,
		Options:    options,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func modifierOptionResponse(o store.ModifierOption, name string) ModifierOptionAPIResponse {
	return ModifierOptionAPIResponse{
		ID:              o.ID,
		ModifierID:      o.ModifierID,
		Name:            name,
		PriceDeltaCents: o.PriceDeltaCents,
		IsDefault:       o.IsDefault,
		Position:        o.Position,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// localizedOptions resolves option names for langCode in one batch.
func (h *Handler) localizedOptions(r *http.Request, modifierID int64, langCode string) ([]ModifierOptionAPIResponse, error) {
	ctx := r.Context()
	options, err := h.queries.ListModifierOptions(ctx, modifierID)
	if err != nil {
		return nil, err
	}

	items := make([]i18n.ListItem, 0, len(options))
	for _, o := range options {
		items = append(items, i18n.ListItem{ID: o.ID, Fields: map[string]string{"name": o.Name}})
	}
	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeModifierOption, langCode, items)
	if err != nil {
		return nil, err
	}

	responses := make([]ModifierOptionAPIResponse, 0, len(options))
	for i, o := range options {
		responses = append(responses, modifierOptionResponse(o, resolved[i]["name"]))
	}
	return responses, nil
}

// ListModifiers handles GET /api/v1/modifiers.
func (h *Handler) ListModifiers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 100)

	modifiers, err := h.queries.ListModifiers(ctx, int64(perPage), int64((page-1)*perPage))
	if err != nil {
		WriteInternalError(w, "Failed to list modifiers")
		return
	}

	total, err := h.queries.CountModifiers(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to count modifiers")
		return
	}

	items := make([]i18n.ListItem, 0, len(modifiers))
	for _, m := range modifiers {
		items = append(items, i18n.ListItem{ID: m.ID, Fields: map[string]string{"name": m.Name}})
	}
	resolved, err := h.translator.TranslateList(ctx, model.EntityTypeModifier, langCode, items)
	if err != nil {
		WriteInternalError(w, "Failed to resolve translations")
		return
	}

	responses := make([]ModifierAPIResponse, 0, len(modifiers))
	for i, m := range modifiers {
		responses = append(responses, modifierResponse(m, resolved[i]["name"], nil))
	}

	WriteSuccess(w, responses, &Meta{
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		Pages:    pageCount(total, perPage),
		Language: langCode,
	})
}

// GetModifier handles GET /api/v1/modifiers/{id}.
// Returns the group with its options, both localized.
func (h *Handler) GetModifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	langCode := middleware.GetLanguageCode(r, h.registry.DefaultCode())

	modifier, ok := requireEntityByID(w, r, "modifier", func(id int64) (store.Modifier, error) {
		return h.queries.GetModifierByID(ctx, id)
	})
	if !ok {
		return
	}

	name, err := h.translator.TranslatedField(ctx, model.EntityTypeModifier, modifier.ID, "name", langCode, modifier.Name)
	if err != nil {
		WriteInternalError(w, "Failed to resolve translations")
		return
	}

	options, err := h.localizedOptions(r, modifier.ID, langCode)
	if err != nil {
		WriteInternalError(w, "Failed to load options")
		return
	}

	WriteSuccess(w, modifierResponse(modifier, name, options), &Meta{Language: langCode})
}

// CreateModifier handles POST /api/v1/modifiers. Requires manager role.
func (h *Handler) CreateModifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateModifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	minSelect := int64(0)
	if req.MinSelect != nil {
		minSelect = *req.MinSelect
	}
	maxSelect := int64(1)
	if req.MaxSelect != nil {
		maxSelect = *req.MaxSelect
	}
	if minSelect < 0 || maxSelect < minSelect {
		WriteValidationError(w, map[string]string{"max_select": "Selection bounds are invalid"})
		return
	}

	isRequired := false
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}
	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}

	modifier, err := h.queries.CreateModifier(ctx, store.CreateModifierParams{
		Name:       req.Name,
		MinSelect:  minSelect,
		MaxSelect:  maxSelect,
		IsRequired: isRequired,
		Position:   position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create modifier")
		return
	}

	h.syncTranslations(r, model.EntityTypeModifier, modifier.ID, req.Translations)

	WriteCreated(w, modifierResponse(modifier, modifier.Name, nil))
}

// UpdateModifier handles PUT /api/v1/modifiers/{id}. Requires manager role.
func (h *Handler) UpdateModifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "modifier", func(id int64) (store.Modifier, error) {
		return h.queries.GetModifierByID(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateModifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateModifierParams{
		ID:         existing.ID,
		Name:       existing.Name,
		MinSelect:  existing.MinSelect,
		MaxSelect:  existing.MaxSelect,
		IsRequired: existing.IsRequired,
		Position:   existing.Position,
	}

	if req.Name != nil && *req.Name != "" {
		params.Name = *req.Name
	}
	if req.MinSelect != nil {
		params.MinSelect = *req.MinSelect
	}
	if req.MaxSelect != nil {
		params.MaxSelect = *req.MaxSelect
	}
	if params.MinSelect < 0 || params.MaxSelect < params.MinSelect {
		WriteValidationError(w, map[string]string{"max_select": "Selection bounds are invalid"})
		return
	}
	if req.IsRequired != nil {
		params.IsRequired = *req.IsRequired
	}
	if req.Position != nil {
		params.Position = *req.Position
	}

	modifier, err := h.queries.UpdateModifier(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update modifier")
		return
	}

	h.syncTranslations(r, model.EntityTypeModifier, modifier.ID, req.Translations)

	WriteSuccess(w, modifierResponse(modifier, modifier.Name, nil), nil)
}

// DeleteModifier handles DELETE /api/v1/modifiers/{id}. Requires admin role.
// Options cascade at the database level; both the group's and the options'
// translations are cleaned up here.
func (h *Handler) DeleteModifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	modifier, ok := requireEntityByID(w, r, "modifier", func(id int64) (store.Modifier, error) {
		return h.queries.GetModifierByID(ctx, id)
	})
	if !ok {
		return
	}

	options, err := h.queries.ListModifierOptions(ctx, modifier.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load options")
		return
	}

	if err := h.queries.DeleteModifier(ctx, modifier.ID); err != nil {
		WriteInternalError(w, "Failed to delete modifier")
		return
	}

	h.deleteTranslations(r, model.EntityTypeModifier, modifier.ID)
	for _, o := range options {
		h.deleteTranslations(r, model.EntityTypeModifierOption, o.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireModifierOption loads the option at {optionID} and verifies that it
// belongs to the modifier group at {id}.
func (h *Handler) requireModifierOption(w http.ResponseWriter, r *http.Request) (store.ModifierOption, bool) {
	ctx := r.Context()

	modifierID, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid modifier ID", nil)
		return store.ModifierOption{}, false
	}

	optionID, err := parseInt64URLParam(r, "optionID")
	if err != nil {
		WriteBadRequest(w, "Invalid option ID", nil)
		return store.ModifierOption{}, false
	}

	option, err := h.queries.GetModifierOptionByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Option not found")
			return store.ModifierOption{}, false
		}
		WriteInternalError(w, "Failed to load option")
		return store.ModifierOption{}, false
	}
	if option.ModifierID != modifierID {
		WriteNotFound(w, "Option not found")
		return store.ModifierOption{}, false
	}
	return option, true
}

// CreateModifierOption handles POST /api/v1/modifiers/{id}/options.
func (h *Handler) CreateModifierOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	modifier, ok := requireEntityByID(w, r, "modifier", func(id int64) (store.Modifier, error) {
		return h.queries.GetModifierByID(ctx, id)
	})
	if !ok {
		return
	}

	var req CreateModifierOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	isDefault := false
	if req.IsDefault != nil {
		isDefault = *req.IsDefault
	}
	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}

	option, err := h.queries.CreateModifierOption(ctx, store.CreateModifierOptionParams{
		ModifierID:      modifier.ID,
		Name:            req.Name,
		PriceDeltaCents: req.PriceDeltaCents,
		IsDefault:       isDefault,
		Position:        position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create option")
		return
	}

	h.syncTranslations(r, model.EntityTypeModifierOption, option.ID, req.Translations)

	WriteCreated(w, modifierOptionResponse(option, option.Name))
}

// UpdateModifierOption handles PUT /api/v1/modifiers/{id}/options/{optionID}.
func (h *Handler) UpdateModifierOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := h.requireModifierOption(w, r)
	if !ok {
		return
	}

	var req UpdateModifierOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateModifierOptionParams{
		ID:              existing.ID,
		Name:            existing.Name,
		PriceDeltaCents: existing.PriceDeltaCents,
		IsDefault:       existing.IsDefault,
		Position:        existing.Position,
	}

	if req.Name != nil && *req.Name != "" {
		params.Name = *req.Name
	}
	if req.PriceDeltaCents != nil {
		params.PriceDeltaCents = *req.PriceDeltaCents
	}
	if req.IsDefault != nil {
		params.IsDefault = *req.IsDefault
	}
	if req.Position != nil {
		params.Position = *req.Position
	}

	option, err := h.queries.UpdateModifierOption(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update option")
		return
	}

	h.syncTranslations(r, model.EntityTypeModifierOption, option.ID, req.Translations)

	WriteSuccess(w, modifierOptionResponse(option, option.Name), nil)
}

// DeleteModifierOption handles DELETE /api/v1/modifiers/{id}/options/{optionID}.
func (h *Handler) DeleteModifierOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	option, ok := h.requireModifierOption(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteModifierOption(ctx, option.ID); err != nil {
		WriteInternalError(w, "Failed to delete option")
		return
	}

	h.deleteTranslations(r, model.EntityTypeModifierOption, option.ID)

	w.WriteHeader(http.StatusNoContent)
}

func parseInt64URLParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
