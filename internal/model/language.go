// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Language text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// CommonLanguages provides a list of commonly used languages for seeding.
var CommonLanguages = []struct {
	Code       string
	Name       string
	NativeName string
	Direction  string
}{
	{"en", "English", "English", "ltr"},
	{"es", "Spanish", "Español", "ltr"},
	{"fr", "French", "Français", "ltr"},
	{"de", "German", "Deutsch", "ltr"},
	{"it", "Italian", "Italiano", "ltr"},
	{"pt", "Portuguese", "Português", "ltr"},
	{"ru", "Russian", "Русский", "ltr"},
	{"zh", "Chinese", "中文", "ltr"},
	{"ja", "Japanese", "日本語", "ltr"},
	{"ar", "Arabic", "العربية", "rtl"},
	{"he", "Hebrew", "עברית", "rtl"},
	{"fa", "Persian", "فارسی", "rtl"},
	{"tr", "Turkish", "Türkçe", "ltr"},
	{"hi", "Hindi", "हिन्दी", "ltr"},
	{"th", "Thai", "ไทย", "ltr"},
}
