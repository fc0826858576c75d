// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides REST API handlers for the catalog service.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/poscat-go/internal/auth"
	"github.com/olegiv/poscat-go/internal/cache"
	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/imaging"
	"github.com/olegiv/poscat-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	queries    *store.Queries
	registry   *i18n.Registry
	translator *i18n.Translator
	syncer     *i18n.Syncer
	tokens     *auth.TokenManager
	catalog    *cache.CatalogCache
	processor  *imaging.Processor
	logger     *slog.Logger
}

// Config bundles the dependencies needed by NewHandler.
type Config struct {
	DB        *sql.DB
	Registry  *i18n.Registry
	Tokens    *auth.TokenManager
	Catalog   *cache.CatalogCache
	Processor *imaging.Processor
	Logger    *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	queries := store.New(cfg.DB)
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:         cfg.DB,
		queries:    queries,
		registry:   cfg.Registry,
		translator: i18n.NewTranslator(queries, cfg.Registry),
		syncer:     i18n.NewSyncer(queries, cfg.Registry),
		tokens:     cfg.Tokens,
		catalog:    cfg.Catalog,
		processor:  cfg.Processor,
		logger:     logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total    int64  `json:"total,omitempty"`
	Page     int    `json:"page,omitempty"`
	PerPage  int    `json:"per_page,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	Language string `json:"language,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// ParseIDParam parses the {id} URL parameter as int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ParsePageParam returns the requested page number, at least 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPageParam returns the requested page size clamped to [1, max].
func ParsePerPageParam(r *http.Request, def, max int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return def
	}
	if perPage > max {
		return max
	}
	return perPage
}

// pageCount computes the number of pages for a total and page size.
func pageCount(total int64, perPage int) int {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true, or the zero value and false after writing
// the error response. The entityName is used in error messages.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Language string `json:"default_language"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:   "ok",
		Version:  "v1",
		Language: h.registry.DefaultCode(),
	}, nil)
}

// syncTranslations runs the translation synchronizer for an entity after
// its base row was committed. Storage failures are logged but never fail
// the entity write; the payload can be repaired with a later update.
func (h *Handler) syncTranslations(r *http.Request, entityType string, entityID int64, raw json.RawMessage) {
	result, err := h.syncer.Sync(r.Context(), entityType, entityID, raw)
	if err != nil {
		h.logger.Warn("translation sync failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
		return
	}
	if result.Status == i18n.SyncSkipped && result.Reason != "" {
		h.logger.Warn("translation sync skipped",
			"entity_type", entityType,
			"entity_id", entityID,
			"reason", result.Reason,
		)
	}
}

// deleteTranslations removes all translations owned by an entity.
// Called after the owning row is deleted.
func (h *Handler) deleteTranslations(r *http.Request, entityType string, entityID int64) {
	if err := h.syncer.Delete(r.Context(), entityType, entityID); err != nil {
		h.logger.Warn("translation cascade delete failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// invalidateListings drops cached listings for an entity type.
func (h *Handler) invalidateListings(r *http.Request, entityType string) {
	if h.catalog == nil {
		return
	}
	if err := h.catalog.InvalidateType(r.Context(), entityType); err != nil {
		h.logger.Warn("cache invalidation failed", "entity_type", entityType, "error", err)
	}
}
