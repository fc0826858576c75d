// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import "github.com/olegiv/poscat-go/internal/model"

// TranslatableFields maps each entity type to the field names that accept
// per-language overrides. Code-level configuration, stable for the process
// lifetime.
var TranslatableFields = map[string][]string{
	model.EntityTypeCategory:       {"name", "description"},
	model.EntityTypeProduct:        {"name", "description"},
	model.EntityTypeModifier:       {"name"},
	model.EntityTypeModifierOption: {"name"},
	model.EntityTypeCombo:          {"name", "description"},
	model.EntityTypeComboItem:      {"name"},
}

// FieldsFor returns the translatable field names for an entity type.
func FieldsFor(entityType string) []string {
	return TranslatableFields[entityType]
}

// IsTranslatable reports whether field accepts overrides for entityType.
func IsTranslatable(entityType, field string) bool {
	for _, f := range TranslatableFields[entityType] {
		if f == field {
			return true
		}
	}
	return false
}
