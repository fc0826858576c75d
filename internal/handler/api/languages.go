// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/poscat-go/internal/middleware"
)

// LanguageAPIResponse represents a language in API responses.
type LanguageAPIResponse struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Direction  string `json:"direction"`
	IsDefault  bool   `json:"is_default"`
}

// ListLanguages handles GET /api/v1/languages.
// Returns the active language set from the registry, ordered by position.
func (h *Handler) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	languages := h.registry.Languages()

	responses := make([]LanguageAPIResponse, 0, len(languages))
	for _, lang := range languages {
		responses = append(responses, LanguageAPIResponse{
			ID:         lang.ID,
			Code:       lang.Code,
			Name:       lang.Name,
			NativeName: lang.NativeName,
			Direction:  lang.Direction,
			IsDefault:  lang.IsDefault,
		})
	}

	WriteSuccess(w, responses, nil)
}

// ResolveLanguageResponse reports the language resolved for the request.
type ResolveLanguageResponse struct {
	Code      string `json:"code"`
	Direction string `json:"direction"`
	IsDefault bool   `json:"is_default"`
}

// ResolveLanguage handles GET /api/v1/languages/resolve.
// Returns the language the language middleware picked for this request,
// letting POS clients confirm what a given Accept-Language header maps to.
func (h *Handler) ResolveLanguage(w http.ResponseWriter, r *http.Request) {
	info := middleware.GetLanguage(r)
	if info == nil {
		lang := h.registry.Default()
		WriteSuccess(w, ResolveLanguageResponse{
			Code:      lang.Code,
			Direction: lang.Direction,
			IsDefault: true,
		}, nil)
		return
	}

	WriteSuccess(w, ResolveLanguageResponse{
		Code:      info.Code,
		Direction: info.Direction,
		IsDefault: info.IsDefault,
	}, nil)
}
