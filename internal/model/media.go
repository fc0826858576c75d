// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the variants generated for every uploaded catalog image.
// Menu screens use the thumbnail in lists and the medium variant on item pages.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 300, Height: 300, Quality: 80, Crop: true},
	VariantMedium:    {Width: 1024, Height: 768, Quality: 85, Crop: false},
}

// IsImageMimeType returns true if the MIME type is a processable image.
func IsImageMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}
