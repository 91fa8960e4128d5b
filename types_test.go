package picstash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/picstash/picstash"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.00 MB"},
		{10, "0.00 MB"},
		{512 * 1024, "0.50 MB"},
		{1024 * 1024, "1.00 MB"},
		{5*1024*1024 + 256*1024, "5.25 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, picstash.FormatSize(tt.size))
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", "PNG"},
		{"image/jpeg", "JPEG"},
		{"image/svg+xml", "SVG+XML"},
		{"image/webp; charset=utf-8", "WEBP"},
		{"", "JPEG"},
		{"weird", "WEIRD"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, picstash.FormatLabel(tt.contentType))
	}
}

func TestNewGalleryImage(t *testing.T) {
	info := picstash.ObjectInfo{
		Key:         "1700000000000-photo.png",
		Size:        10,
		ContentType: "image/png",
	}

	img := picstash.NewGalleryImage(info, "http://example.com")

	assert.Equal(t, "1700000000000-photo.png", img.ID)
	assert.Equal(t, "http://example.com/api/images/1700000000000-photo.png", img.ImageURL)
	assert.Equal(t, "photo.png", img.Title)
	assert.Equal(t, "2023-11-14", img.UploadDate)
	assert.Equal(t, "0.00 MB", img.Size)
	assert.Equal(t, "1200 x 800", img.Dimensions)
	assert.Equal(t, "PNG", img.Format)
}

func TestNewGalleryImage_UnparseableKey(t *testing.T) {
	info := picstash.ObjectInfo{Key: "legacy.png", Size: 1024 * 1024}

	img := picstash.NewGalleryImage(info, "http://example.com/")

	assert.Equal(t, "legacy.png", img.ID)
	assert.Equal(t, "legacy.png", img.Title)
	assert.Empty(t, img.UploadDate)
	assert.Equal(t, "http://example.com/api/images/legacy.png", img.ImageURL)
	assert.Equal(t, "JPEG", img.Format)
}
