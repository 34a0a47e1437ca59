// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package page defines the core domain for coloring-page assets.

It manages the full lifecycle of a page: multipart ingestion, asset
derivation and upload, slug allocation, publication state, hierarchy
(main pages with single-level children), taxonomy links, and the cache
invalidation that follows every mutation.

Core Responsibility:

  - Catalogue: Defines page status (draft, published) and metadata.
  - Ingestion: Orchestrates derive -> upload -> persist with rollback.
  - Discovery: Full-text search with category/tag/age filters.

This package acts as the source of truth for all page-related data models.
*/
package page

import "time"

// # Domain Enums

// Status represents the publication state of a page.
type Status string

const (
	// StatusDraft keeps a page invisible to the public surface.
	StatusDraft Status = "draft"

	// StatusPublished makes a page publicly visible and indexable.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

// # Core Entities

// Page is the central aggregate of the Boyama domain.
// It represents one downloadable coloring-page asset.
type Page struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parent_id,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`

	// Age suitability bounds. Nil means unbounded on that side.
	AgeMin *int `json:"age_min,omitempty"`
	AgeMax *int `json:"age_max,omitempty"`

	// Object store keys. Once set they always reference live objects for
	// as long as this record exists.
	PDFKey   string `json:"-"`
	CoverKey string `json:"-"`
	ThumbKey string `json:"-"`

	// Public asset URLs derived from the keys.
	CoverURL      string `json:"cover_url,omitempty"`
	ThumbLargeURL string `json:"thumb_large_url,omitempty"`
	ThumbSmallURL string `json:"thumb_small_url,omitempty"`

	// # Derived Metrics
	// Computed once at ingestion, immutable until the image is replaced.
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	FileSize int64 `json:"file_size"`

	// # Counters
	// Monotonic, no dedup guarantee.
	ViewCount     int64 `json:"view_count"`
	DownloadCount int64 `json:"download_count"`

	Categories []TaxonomyRef `json:"categories,omitempty"`
	Tags       []TaxonomyRef `json:"tags,omitempty"`

	// Children is populated on single-page lookups only.
	Children []*Page `json:"children,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsChild reports whether the page belongs to a parent page.
func (p *Page) IsChild() bool {
	return p.ParentID != nil && *p.ParentID != ""
}

// TaxonomyRef is the embedded view of a linked category or tag.
type TaxonomyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Search Filter

// Filter carries the public search criteria.
type Filter struct {
	Query        string
	CategorySlug string
	TagSlug      string

	// Age matches pages whose [AgeMin, AgeMax] interval contains the
	// value, with nil bounds treated as unbounded.
	Age *int

	// IncludeDrafts widens the visibility filter for the admin surface.
	// The public search never sets it.
	IncludeDrafts bool

	// TopLevelOnly excludes child pages from listings.
	TopLevelOnly bool
}

// # Ingestion Inputs

// Upload is one file received from the multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateInput carries the validated fields for page creation.
type CreateInput struct {
	Title       string
	Slug        string // optional; derived from the title when empty
	Description string
	Status      Status
	AgeMin      *int
	AgeMax      *int
	CategoryIDs []string
	TagIDs      []string
	Image       *Upload
}

// UpdateInput carries the mutable fields for a page update. A nil Image
// keeps the existing media keys untouched.
type UpdateInput struct {
	Title       string
	Slug        string
	Description string
	Status      Status
	AgeMin      *int
	AgeMax      *int
	CategoryIDs []string
	TagIDs      []string
	Image       *Upload
}
