// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/storage"
	"github.com/ardakose/boyama/pkg/uuidv7"
)

// # Service Layer

// CacheInvalidator purges rendered-page cache entries after a mutation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, fanout cache.Fanout) error
}

// ServiceConfig carries the tunables the ingestion pipeline needs.
type ServiceConfig struct {
	SignedURLTTL        time.Duration
	MaxUploadBytes      int64
	MaxChildUploadBytes int64
}

// Service orchestrates the business logic for the page catalogue.
// It is the sole owner of the ingest ordering (derive, upload, persist,
// cleanup) and of the invalidation that follows every mutation.
type Service struct {
	repo        Repository
	objects     storage.ObjectStore
	allocator   *Allocator
	invalidator CacheInvalidator
	logger      *slog.Logger
	cfg         ServiceConfig
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	repo Repository,
	objects storage.ObjectStore,
	invalidator CacheInvalidator,
	logger *slog.Logger,
	cfg ServiceConfig,
) *Service {
	return &Service{
		repo:        repo,
		objects:     objects,
		allocator:   NewAllocator(repo),
		invalidator: invalidator,
		logger:      logger.With(slog.String("component", "page_service")),
		cfg:         cfg,
	}
}

// # Lookups

/*
SearchPages retrieves a paginated and filtered collection of pages.

Description: Filter criteria pass straight to the repository for
database-level filtering and ranking. The public surface always searches
published, top-level pages.
*/
func (service *Service) SearchPages(context context.Context, filter Filter, limit, offset int) ([]*Page, int, error) {
	pages, total, err := service.repo.Search(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, page := range pages {
		service.populateAssetURLs(page)
	}
	return pages, total, nil
}

/*
GetPage fetches a single page by UUID or URL slug.

Description: If the identifier matches the UUID format a primary key
lookup is performed, otherwise the unique slug resolves it. Top-level
pages are hydrated with their children.
*/
func (service *Service) GetPage(context context.Context, identifier string) (*Page, error) {
	var page *Page
	var err error

	if uuidv7.IsValid(identifier) {
		page, err = service.repo.FindByID(context, identifier)
	} else {
		page, err = service.repo.FindBySlug(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	if !page.IsChild() {
		children, err := service.repo.ListChildren(context, page.ID)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			service.populateAssetURLs(child)
		}
		page.Children = children
	}

	service.populateAssetURLs(page)
	return page, nil
}

// # Counters

// RecordView bumps the page's view counter. Unconditional: no dedup, no
// session tracking.
func (service *Service) RecordView(context context.Context, id string) error {
	return service.repo.IncrementViewCount(context, id)
}

/*
DownloadURL returns a short-lived signed URL for the page's PDF and bumps
the download counter.

Description: The URL forces attachment disposition so browsers download
rather than render. The counter increment is unconditional and happens
before the URL is returned; a client that never follows the URL still
counts.
*/
func (service *Service) DownloadURL(context context.Context, id string) (string, error) {
	page, err := service.repo.FindByID(context, id)
	if err != nil {
		return "", err
	}

	disposition := fmt.Sprintf("attachment; filename=%q", page.Slug+".pdf")
	url, err := service.objects.SignedGetURL(context, page.PDFKey, service.cfg.SignedURLTTL, disposition)
	if err != nil {
		return "", fmt.Errorf("page: sign download url: %w", err)
	}

	if err := service.repo.IncrementDownloadCount(context, id); err != nil {
		return "", err
	}

	return url, nil
}

// # Helpers

// populateAssetURLs fills the public URL fields from the stored keys.
func (service *Service) populateAssetURLs(page *Page) {
	if page.CoverKey != "" {
		page.CoverURL = service.objects.PublicURL(page.CoverKey)
	}
	if page.ThumbKey != "" {
		page.ThumbLargeURL = service.objects.PublicURL(page.ThumbKey)
		if small := storage.LegacySmallThumbKey(page.ThumbKey); small != "" {
			page.ThumbSmallURL = service.objects.PublicURL(small)
		}
	}
}
