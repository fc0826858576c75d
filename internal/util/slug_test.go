// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Iced Coffee", "iced-coffee"},
		{"accents stripped", "Café Crème", "cafe-creme"},
		{"spanish", "Jalapeño Poppers", "jalapeno-poppers"},
		{"punctuation removed", "Fish & Chips!", "fish-chips"},
		{"multiple spaces", "Double  Cheese   Burger", "double-cheese-burger"},
		{"leading trailing", "  Soup of the Day  ", "soup-of-the-day"},
		{"already slug", "house-salad", "house-salad"},
		{"numbers kept", "2 for 1 Pizza", "2-for-1-pizza"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"iced-coffee", true},
		{"combo-2", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Has-Upper", false},
		{"with space", false},
		{"café", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Crispy golden fries", "Crispy golden fries"},
		{"allowed markup", "Served <b>hot</b>", "Served <b>hot</b>"},
		{"script stripped", "Tasty<script>alert(1)</script>", "Tasty"},
		{"event handler stripped", `<b onclick="x()">Deal</b>`, "<b>Deal</b>"},
		{"whitespace trimmed", "  Spicy  ", "Spicy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDescription(tt.input); got != tt.want {
				t.Errorf("SanitizeDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
