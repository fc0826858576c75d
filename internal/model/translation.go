// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Entity types that can own translation rows.
const (
	EntityTypeCategory       = "category"
	EntityTypeProduct        = "product"
	EntityTypeModifier       = "modifier"
	EntityTypeModifierOption = "modifier_option"
	EntityTypeCombo          = "combo"
	EntityTypeComboItem      = "combo_item"
)

// EntityTypes lists every entity type that can own translations,
// paired with the table holding the owning rows. The table name is
// used by the orphan sweep job to find translations whose owner is gone.
var EntityTypes = map[string]string{
	EntityTypeCategory:       "categories",
	EntityTypeProduct:        "products",
	EntityTypeModifier:       "modifiers",
	EntityTypeModifierOption: "modifier_options",
	EntityTypeCombo:          "combos",
	EntityTypeComboItem:      "combo_items",
}

// IsValidEntityType reports whether t is a known translation owner type.
func IsValidEntityType(t string) bool {
	_, ok := EntityTypes[t]
	return ok
}
