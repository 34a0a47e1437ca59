// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the public identifiers for coloring pages, categories and tags
// (e.g., "sevimli-kedi-boyama"). This package handles Turkish letter folding,
// accent removal, and character sanitization.
package slug

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// turkishFolds maps Turkish letters that do not decompose into an ASCII
	// base via NFD. Dotless ı and ş/ğ have no combining-mark decomposition,
	// so they must be folded explicitly before normalization.
	turkishFolds = strings.NewReplacer(
		"ı", "i", "I", "i",
		"İ", "i",
		"ş", "s", "Ş", "s",
		"ğ", "g", "Ğ", "g",
		"ç", "c", "Ç", "c",
		"ö", "o", "Ö", "o",
		"ü", "u", "Ü", "u",
	)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Folds Turkish letters to their ASCII counterparts (ş → s, ı → i).
// 2. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes combining marks (accents).
// 4. Converts to lowercase.
// 5. Replaces non-alphanumeric characters with hyphens.
// 6. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	// 1. Fold Turkish letters that NFD cannot decompose
	result := turkishFolds.Replace(s)

	// 2. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ = transform.String(t, result)

	// 3. Lowercase
	result = strings.ToLower(result)

	// 4. Replace whitespace and special chars with hyphens
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	// 5. Clean up hyphenation
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// FromFilename derives a slug from an uploaded file's name, stripping the
// extension first. Filenames that reduce to an empty slug (e.g., "惊喜.png")
// fall back to a timestamp-based identifier so ingestion never stalls on a
// missing slug.
func FromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	if s := From(base); s != "" {
		return s
	}
	return fmt.Sprintf("boyama-%d", time.Now().UnixNano())
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
