// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n implements the catalog translation engine: the language
// registry, Accept-Language resolution, per-field translation lookup with
// fallback, the bulk resolution path for lists and the lifecycle hooks
// that keep translation rows in step with their owning entities.
package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/poscat-go/internal/store"
)

// ErrNoDefaultLanguage indicates the language set has no default entry.
var ErrNoDefaultLanguage = errors.New("i18n: no default language configured")

// Registry holds the supported language set. It is built once at process
// start and never mutated afterwards; adding a language is a deploy-time
// change, not a request-time one.
type Registry struct {
	languages   []store.Language
	byCode      map[string]store.Language
	defaultLang store.Language
}

// NewRegistry builds a registry from a language list. Exactly one active
// language must be flagged as default.
func NewRegistry(languages []store.Language) (*Registry, error) {
	r := &Registry{
		byCode: make(map[string]store.Language, len(languages)),
	}

	defaults := 0
	for _, lang := range languages {
		if !lang.IsActive {
			continue
		}
		code := strings.ToLower(lang.Code)
		if _, dup := r.byCode[code]; dup {
			return nil, fmt.Errorf("i18n: duplicate language code %q", code)
		}
		r.byCode[code] = lang
		r.languages = append(r.languages, lang)
		if lang.IsDefault {
			r.defaultLang = lang
			defaults++
		}
	}

	if defaults == 0 {
		return nil, ErrNoDefaultLanguage
	}
	if defaults > 1 {
		return nil, fmt.Errorf("i18n: %d languages flagged as default, want exactly one", defaults)
	}

	return r, nil
}

// LoadRegistry reads the language set from the database and builds the registry.
func LoadRegistry(ctx context.Context, queries *store.Queries) (*Registry, error) {
	languages, err := queries.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading languages: %w", err)
	}
	return NewRegistry(languages)
}

// Default returns the base/fallback language.
func (r *Registry) Default() store.Language {
	return r.defaultLang
}

// DefaultCode returns the base/fallback language code.
func (r *Registry) DefaultCode() string {
	return r.defaultLang.Code
}

// Supported reports whether code is an active language code.
func (r *Registry) Supported(code string) bool {
	_, ok := r.byCode[strings.ToLower(code)]
	return ok
}

// Get returns the language for a code.
func (r *Registry) Get(code string) (store.Language, bool) {
	lang, ok := r.byCode[strings.ToLower(code)]
	return lang, ok
}

// Languages returns the active languages in registry order.
func (r *Registry) Languages() []store.Language {
	out := make([]store.Language, len(r.languages))
	copy(out, r.languages)
	return out
}
