// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import "strings"

// ResolveLanguage picks a supported language code from an Accept-Language
// style header value. Entries are taken in header order; quality weights
// are stripped and ignored. For each entry the full tag is tried first,
// then the primary subtag ("en-US" falls back to "en"). When nothing
// matches, or the header is empty, the default language code is returned.
// Always returns a supported code, never an error.
func (r *Registry) ResolveLanguage(header string) string {
	if header == "" {
		return r.defaultLang.Code
	}

	for _, part := range strings.Split(header, ",") {
		// Remove quality value if present
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)

		if lang, ok := r.byCode[tag]; ok {
			return lang.Code
		}

		// Try primary language code (e.g. en from en-US)
		if idx := strings.Index(tag, "-"); idx > 0 {
			if lang, ok := r.byCode[tag[:idx]]; ok {
				return lang.Code
			}
		}
	}

	return r.defaultLang.Code
}
