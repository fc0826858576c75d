// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// SanitizeDescription strips unsafe HTML from user-supplied catalog text.
// Menu descriptions may carry light markup (bold, lists, links) but
// scripts and event handlers are removed.
func SanitizeDescription(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}
