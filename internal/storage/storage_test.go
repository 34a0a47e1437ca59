// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardakose/boyama/internal/storage"
)

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "pdf/sevimli-kedi.pdf", storage.PDFKey("sevimli-kedi"))
	assert.Equal(t, "cover/sevimli-kedi.webp", storage.CoverKey("sevimli-kedi"))
	assert.Equal(t, "thumb/sevimli-kedi-800.webp", storage.ThumbLargeKey("sevimli-kedi"))
	assert.Equal(t, "thumb/sevimli-kedi-400.webp", storage.ThumbSmallKey("sevimli-kedi"))
}

func TestLegacySmallThumbKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"standard", "thumb/kelebek-800.webp", "thumb/kelebek-400.webp"},
		{"legacy_jpg", "thumb/kelebek-800.jpg", "thumb/kelebek-400.jpg"},
		{"no_suffix", "thumb/kelebek.webp", ""},
		{"no_extension", "thumb/kelebek-800", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, storage.LegacySmallThumbKey(tt.input))
		})
	}
}

func TestOwnedKeys(t *testing.T) {
	keys := storage.OwnedKeys(
		"pdf/fil.pdf",
		"cover/fil.webp",
		"thumb/fil-800.webp",
	)

	assert.Equal(t, []string{
		"pdf/fil.pdf",
		"cover/fil.webp",
		"thumb/fil-800.webp",
		"thumb/fil-400.webp",
	}, keys)

	// Empty fields must not produce delete calls for "".
	assert.Empty(t, storage.OwnedKeys("", "", ""))
}
