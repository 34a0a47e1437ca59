// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package storage abstracts the object store holding all binary assets.

Pages own four object keys: the print-ready PDF, the standardized cover, and
two WebP thumbnail sizes. Keys are derived deterministically from the page
slug, so concurrent ingestions under different slugs never collide in the
store and the database uniqueness constraint on the slug is the only
synchronization point.

Key conventions:

	pdf/{slug}.pdf
	cover/{slug}.webp
	thumb/{slug}-800.webp
	thumb/{slug}-400.webp
*/
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ObjectInfo describes a stored object without its bytes.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// ObjectStore is the write/read surface the ingestion pipeline depends on.
//
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	// Put stores the object under key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte, contentType, cacheControl string) error

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Head returns metadata for the object, or an error if it does not exist.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// PublicURL returns the CDN-facing URL for a key.
	PublicURL(key string) string

	// SignedGetURL returns a time-limited download URL. A non-empty
	// contentDisposition is applied to the response (attachment downloads).
	SignedGetURL(ctx context.Context, key string, ttl time.Duration, contentDisposition string) (string, error)
}

// # Key Derivation

// PDFKey returns the object key for a page's print-ready PDF.
func PDFKey(slug string) string {
	return fmt.Sprintf("pdf/%s.pdf", slug)
}

// CoverKey returns the object key for a page's standardized cover image.
func CoverKey(slug string) string {
	return fmt.Sprintf("cover/%s.webp", slug)
}

// ThumbLargeKey returns the object key for the 800px thumbnail.
func ThumbLargeKey(slug string) string {
	return fmt.Sprintf("thumb/%s-800.webp", slug)
}

// ThumbSmallKey returns the object key for the 400px thumbnail.
func ThumbSmallKey(slug string) string {
	return fmt.Sprintf("thumb/%s-400.webp", slug)
}

// LegacySmallThumbKey derives the small-thumbnail sibling from a stored
// large-thumbnail key. Only the thumbnail key is persisted on the page
// record, so cleanup of a replaced image reconstructs the -400 name from
// the -800 one. Returns "" when the key does not follow the convention.
func LegacySmallThumbKey(thumbKey string) string {
	dot := strings.LastIndex(thumbKey, ".")
	if dot == -1 {
		return ""
	}

	base, ext := thumbKey[:dot], thumbKey[dot:]
	if !strings.HasSuffix(base, "-800") {
		return ""
	}

	return strings.TrimSuffix(base, "-800") + "-400" + ext
}

// OwnedKeys lists every object key a page record references. Empty key
// fields are skipped so partially-migrated legacy rows do not produce
// deletes for "".
func OwnedKeys(pdfKey, coverKey, thumbKey string) []string {
	keys := make([]string, 0, 4)
	for _, key := range []string{pdfKey, coverKey, thumbKey} {
		if key != "" {
			keys = append(keys, key)
		}
	}

	if legacy := LegacySmallThumbKey(thumbKey); legacy != "" {
		keys = append(keys, legacy)
	}
	return keys
}
