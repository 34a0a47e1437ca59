// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardakose/boyama/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Sevimli Kedi", "sevimli-kedi"},
		{"turkish_letters", "Şirin Köpek Yavrusu", "sirin-kopek-yavrusu"},
		{"dotless_i", "Ilık Su Kıyısı", "ilik-su-kiyisi"},
		{"dotted_capital_i", "İstanbul Boğazı", "istanbul-bogazi"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation", "Kedi & Köpek: Dostluk!", "kedi-kopek-dostluk"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", "  --Kelebek--  ", "kelebek"},
		{"digits", "2 Fil 1 Aslan", "2-fil-1-aslan"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := slug.From(tt.input)
			assert.Equal(t, tt.expected, result)

			// Already-slugified input passes through unchanged.
			assert.Equal(t, result, slug.From(result))
		})
	}
}

func TestFromFilename(t *testing.T) {
	assert.Equal(t, "sevimli-kedi", slug.FromFilename("Sevimli Kedi.png"))
	assert.Equal(t, "orman-hayvanlari", slug.FromFilename("Orman Hayvanları.webp"))

	// Filenames with no ASCII-representable characters fall back to a
	// timestamp identifier instead of an empty slug.
	fallback := slug.FromFilename("惊喜.png")
	assert.True(t, strings.HasPrefix(fallback, "boyama-"))
	assert.Greater(t, len(fallback), len("boyama-"))
}
