// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/poscat-go/internal/model"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcessorIsImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	tests := []struct {
		mimeType string
		want     bool
	}{
		{model.MimeTypeJPEG, true},
		{model.MimeTypePNG, true},
		{model.MimeTypeGIF, true},
		{model.MimeTypeWebP, true},
		{"application/pdf", false},
		{"application/octet-stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := p.IsImage(tt.mimeType); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, createTestImage(8, 8)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "jpeg", data: encodeJPEG(t, createTestImage(8, 8)), want: "jpeg"},
		{name: "png", data: pngBuf.Bytes(), want: "png"},
		{name: "garbage", data: []byte("not an image at all"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	data := encodeJPEG(t, createTestImage(640, 480))
	result, err := p.ProcessImage(bytes.NewReader(data), "test-uuid", "burger.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	if result.Width != 640 || result.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", result.Width, result.Height)
	}
	if result.MimeType != model.MimeTypeJPEG {
		t.Errorf("MimeType = %q, want %q", result.MimeType, model.MimeTypeJPEG)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestProcessImageRejectsUnsupported(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.ProcessImage(bytes.NewReader([]byte("plain text")), "u", "f.txt"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestCreateVariantCrop(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	src := filepath.Join(dir, "src.jpg")
	if err := os.WriteFile(src, encodeJPEG(t, createTestImage(1200, 900)), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	result, err := p.CreateVariant(src, "test-uuid", "src.jpg",
		model.ImageVariants[model.VariantThumbnail], model.VariantThumbnail)
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if result == nil {
		t.Fatal("CreateVariant returned nil for larger source")
	}
	if result.Width != 300 || result.Height != 300 {
		t.Errorf("thumbnail = %dx%d, want 300x300", result.Width, result.Height)
	}
}

func TestCreateVariantSkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	src := filepath.Join(dir, "small.jpg")
	if err := os.WriteFile(src, encodeJPEG(t, createTestImage(100, 80)), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	result, err := p.CreateVariant(src, "test-uuid", "small.jpg",
		model.ImageVariants[model.VariantMedium], model.VariantMedium)
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for small source, got %+v", result)
	}
}

func TestDeleteMediaFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeJPEG(t, createTestImage(640, 480))
	result, err := p.ProcessImage(bytes.NewReader(data), "del-uuid", "gone.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	if err := p.DeleteMediaFiles("del-uuid"); err != nil {
		t.Fatalf("DeleteMediaFiles: %v", err)
	}
	if _, err := os.Stat(result.FilePath); !os.IsNotExist(err) {
		t.Errorf("original still exists after delete")
	}

	// Deleting a missing uuid is not an error.
	if err := p.DeleteMediaFiles("never-existed"); err != nil {
		t.Errorf("DeleteMediaFiles for missing uuid: %v", err)
	}
}

func TestSaveImageFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveImageFile("../escape", "f.jpg", []byte("x")); err == nil {
		t.Error("expected error for subdir traversal")
	}
	if _, err := p.saveImageFile("originals/u", "", []byte("x")); err == nil {
		t.Error("expected error for empty filename")
	}
}
