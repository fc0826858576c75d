// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/olegiv/poscat-go/internal/i18n"
	"github.com/olegiv/poscat-go/internal/store"
)

// Context keys for language data.
const (
	ContextKeyLanguage     ContextKey = "language"
	ContextKeyLanguageCode ContextKey = "language_code"
)

// LanguageInfo holds language data for the request context.
type LanguageInfo struct {
	ID         int64
	Code       string
	Name       string
	NativeName string
	Direction  string
	IsDefault  bool
}

// Language creates middleware that detects and sets the request language.
// Priority order:
// 1. Query parameter ?lang=XX (explicit language switch)
// 2. Accept-Language header, matched against the registry
// 3. Default language
//
// The middleware never rejects a request: an unsupported preference
// silently falls back to the default language.
func Language(registry *i18n.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if queryLang := r.URL.Query().Get("lang"); queryLang != "" {
				if lang, ok := registry.Get(strings.ToLower(queryLang)); ok {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			code := registry.ResolveLanguage(r.Header.Get("Accept-Language"))
			lang, ok := registry.Get(code)
			if !ok {
				lang = registry.Default()
			}
			next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
		})
	}
}

// setLanguageContext adds language info to the context.
func setLanguageContext(ctx context.Context, lang store.Language) context.Context {
	info := LanguageInfo{
		ID:         lang.ID,
		Code:       lang.Code,
		Name:       lang.Name,
		NativeName: lang.NativeName,
		Direction:  lang.Direction,
		IsDefault:  lang.IsDefault,
	}
	ctx = context.WithValue(ctx, ContextKeyLanguage, info)
	ctx = context.WithValue(ctx, ContextKeyLanguageCode, lang.Code)
	return ctx
}

// GetLanguage retrieves the current language from the request context.
// Returns nil if no language is in context.
func GetLanguage(r *http.Request) *LanguageInfo {
	info, ok := r.Context().Value(ContextKeyLanguage).(LanguageInfo)
	if !ok {
		return nil
	}
	return &info
}

// GetLanguageCode returns the resolved language code for the request,
// or the given fallback when the middleware did not run.
func GetLanguageCode(r *http.Request, fallback string) string {
	code, ok := r.Context().Value(ContextKeyLanguageCode).(string)
	if !ok || code == "" {
		return fallback
	}
	return code
}
