// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and types shared across the
// application: translation entity types, languages, catalog roles and
// image variant configuration.
package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryCatalog = "catalog"
	EventCategoryI18n    = "i18n"
	EventCategoryMedia   = "media"
	EventCategorySystem  = "system"
)
