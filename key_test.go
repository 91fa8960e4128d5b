package picstash_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picstash/picstash"
)

func TestObjectKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		millis   int64
		filename string
		wantKey  string
		wantDate string
	}{
		{
			name:     "simple png",
			millis:   1700000000000,
			filename: "photo.png",
			wantKey:  "1700000000000-photo.png",
			wantDate: "2023-11-14",
		},
		{
			name:     "filename with interior dashes",
			millis:   1700000000000,
			filename: "my-holiday-photo.jpg",
			wantKey:  "1700000000000-my-holiday-photo.jpg",
			wantDate: "2023-11-14",
		},
		{
			name:     "filename with spaces",
			millis:   1704067200000,
			filename: "vacation day 1.webp",
			wantKey:  "1704067200000-vacation day 1.webp",
			wantDate: "2024-01-01",
		},
		{
			name:     "unicode filename",
			millis:   1704067200000,
			filename: "写真.png",
			wantKey:  "1704067200000-写真.png",
			wantDate: "2024-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := picstash.NewObjectKey(time.UnixMilli(tt.millis), tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key.String())

			parsed, err := picstash.ParseObjectKey(key.String())
			require.NoError(t, err)
			assert.Equal(t, tt.filename, parsed.Title())
			assert.Equal(t, tt.wantDate, parsed.UploadDate())
			assert.Equal(t, tt.millis, parsed.UploadedAt().UnixMilli())
		})
	}
}

func TestParseObjectKey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"no separator", "1700000000000"},
		{"no filename", "1700000000000-"},
		{"non-numeric prefix", "photo-album.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := picstash.ParseObjectKey(tt.key)
			assert.ErrorIs(t, err, picstash.ErrInvalidInput)
		})
	}
}

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"plain", "photo.png", false},
		{"dashes after letters", "my-photo.png", false},
		{"digits not followed by dash", "2024photo.png", false},
		{"digits with dot", "2024.photo.png", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b.png", true},
		{"backslash", `a\b.png`, true},
		{"newline", "a\nb.png", true},
		{"null byte", "a\x00b.png", true},
		{"ambiguous timestamp prefix", "123-photo.png", true},
		{"single digit prefix", "1-x.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := picstash.ValidFilename(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, picstash.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewObjectKey_RejectsAmbiguousFilename(t *testing.T) {
	_, err := picstash.NewObjectKey(time.UnixMilli(1700000000000), "42-selfie.jpg")
	assert.ErrorIs(t, err, picstash.ErrInvalidInput)
}
