// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/media"
	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/platform/validate"
	"github.com/ardakose/boyama/internal/storage"
	"github.com/ardakose/boyama/pkg/slug"
	"github.com/ardakose/boyama/pkg/uuidv7"
)

// Asset variants are immutable once written; aggressive CDN caching is safe
// because replaced images live under new keys or overwrite in place.
const assetCacheControl = "public, max-age=31536000, immutable"

// allowedImageTypes is the upload MIME allow-list. SVG passes the boundary
// check but the raster pipeline rejects it with a field error.
var allowedImageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/svg+xml"}

// # Page Creation

/*
CreatePage ingests a new page from a validated multipart submission.

Description: The strict ingest ordering is owned here. All variants are
derived first (pure, no side effects), then uploaded sequentially with
every written key tracked in a rollback list, then the database record is
written. If anything fails after the first upload, every tracked key is
deleted best-effort and the original error surfaces as an ingestion
failure. On success the cache fan-out fires.

The upload+persist phase runs on a background-derived context: a client
disconnect must not strand half-written objects.

Parameters:
  - ctx: context.Context
  - input: CreateInput (Validated metadata plus the source image)

Returns:
  - *Page: The created page, taxonomy hydrated
  - error: Validation, SLUG_IN_USE conflict, or ingestion failures
*/
func (service *Service) CreatePage(ctx context.Context, input CreateInput) (*Page, error) {
	if err := service.validateCreate(input); err != nil {
		return nil, err
	}

	allocated, err := service.allocateSlug(ctx, input.Slug, input.Title)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = StatusDraft
	}

	page := &Page{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Slug:        allocated,
		Description: input.Description,
		Status:      status,
		AgeMin:      input.AgeMin,
		AgeMax:      input.AgeMax,
		Categories:  refsFromIDs(input.CategoryIDs),
		Tags:        refsFromIDs(input.TagIDs),
	}

	// Client disconnects no longer cancel the pipeline past this point.
	ctx = context.WithoutCancel(ctx)

	rollback, err := service.ingestImage(ctx, page, input.Image)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, page); err != nil {
		service.rollbackKeys(ctx, rollback)
		return nil, asIngestionError(err)
	}

	created, err := service.repo.FindByID(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	service.populateAssetURLs(created)

	service.invalidate(ctx, cache.PageFanout(cache.PageMutation{
		Slug:               created.Slug,
		CategorySlugsAfter: slugsOf(created.Categories),
		TagSlugsAfter:      slugsOf(created.Tags),
	}))

	service.logger.InfoContext(ctx, "page_created",
		slog.String("page_id", created.ID),
		slog.String("slug", created.Slug),
	)
	return created, nil
}

// # Page Update

/*
UpdatePage mutates a page's metadata and optionally replaces its media.

Description: Without a new image every media key is retained unchanged.
With one, fresh variants are uploaded under the page's (possibly changed)
slug, the database row is updated, and only then are the now-orphaned old
keys deleted, including the derived legacy -400 thumbnail name. A slug
change re-checks uniqueness excluding this page and reports a collision
as a SLUG_IN_USE field error.
*/
func (service *Service) UpdatePage(ctx context.Context, id string, input UpdateInput) (*Page, error) {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.validateUpdate(input); err != nil {
		return nil, err
	}

	newSlug := existing.Slug
	if input.Slug != "" && slug.From(input.Slug) != existing.Slug {
		newSlug = slug.From(input.Slug)

		taken, err := service.repo.SlugExistsExcept(ctx, newSlug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.SlugInUse(newSlug)
		}
	}

	page := &Page{
		ID:          existing.ID,
		ParentID:    existing.ParentID,
		Title:       input.Title,
		Slug:        newSlug,
		Description: input.Description,
		Status:      input.Status,
		AgeMin:      input.AgeMin,
		AgeMax:      input.AgeMax,
		PDFKey:      existing.PDFKey,
		CoverKey:    existing.CoverKey,
		ThumbKey:    existing.ThumbKey,
		Width:       existing.Width,
		Height:      existing.Height,
		FileSize:    existing.FileSize,
		Categories:  refsFromIDs(input.CategoryIDs),
		Tags:        refsFromIDs(input.TagIDs),
	}

	ctx = context.WithoutCancel(ctx)

	var rollback []string
	if input.Image != nil {
		rollback, err = service.ingestImage(ctx, page, input.Image)
		if err != nil {
			return nil, err
		}
	}

	oldKeys := storage.OwnedKeys(existing.PDFKey, existing.CoverKey, existing.ThumbKey)

	if err := service.repo.Update(ctx, page); err != nil {
		// Roll back only objects the old record does not reference;
		// same-slug replacements overwrote in place and must survive.
		service.rollbackKeys(ctx, subtract(rollback, oldKeys))
		return nil, asIngestionError(err)
	}

	// Cleanup of replaced media happens strictly after the DB write.
	if input.Image != nil {
		newKeys := storage.OwnedKeys(page.PDFKey, page.CoverKey, page.ThumbKey)
		service.deleteKeys(ctx, subtract(oldKeys, newKeys))
	}

	updated, err := service.repo.FindByID(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	service.populateAssetURLs(updated)

	service.invalidate(ctx, cache.PageFanout(cache.PageMutation{
		Slug:                updated.Slug,
		ParentSlug:          service.parentSlug(ctx, updated),
		ChildSlugs:          service.childSlugs(ctx, updated),
		CategorySlugsBefore: slugsOf(existing.Categories),
		CategorySlugsAfter:  slugsOf(updated.Categories),
		TagSlugsBefore:      slugsOf(existing.Tags),
		TagSlugsAfter:       slugsOf(updated.Tags),
	}))

	service.logger.InfoContext(ctx, "page_updated",
		slog.String("page_id", updated.ID),
		slog.String("slug", updated.Slug),
	)
	return updated, nil
}

// # Child Pages

/*
CreateChildPages batch-ingests N images as children of a top-level page.

Description: Children copy the parent's taxonomy links at creation and are
never re-synced afterwards. Slugs are allocated against a shared in-batch
reservation set so same-named files cannot collide before either persists.
All uploads for the whole batch share one rollback list; a failure at any
point deletes every key the batch wrote and persists nothing, since the
database write is a single transaction at the end.
*/
func (service *Service) CreateChildPages(ctx context.Context, parentID string, files []Upload) ([]*Page, error) {
	parent, err := service.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsChild() {
		return nil, validate.RequiredError("parent_id", "Child pages cannot have their own children")
	}
	if len(files) == 0 {
		return nil, validate.RequiredError("images", "At least one image file is required")
	}

	v := &validate.Validator{}
	for _, file := range files {
		v.MimeType("images", file.ContentType, allowedImageTypes...)
		v.MaxBytes("images", int64(len(file.Data)), service.cfg.MaxChildUploadBytes)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	reserved := make(map[string]struct{})
	var batchRollback []string
	var children []*Page

	for i := range files {
		file := &files[i]

		childSlug, err := service.allocator.EnsureUnique(ctx, slug.FromFilename(file.Filename), reserved)
		if err != nil {
			service.rollbackKeys(ctx, batchRollback)
			return nil, err
		}

		child := &Page{
			ID:       uuidv7.New(),
			ParentID: &parent.ID,
			Title:    titleFromFilename(file.Filename),
			Slug:     childSlug,
			Status:   parent.Status,
			AgeMin:   parent.AgeMin,
			AgeMax:   parent.AgeMax,
			// Taxonomy copied from the parent at creation time only.
			Categories: parent.Categories,
			Tags:       parent.Tags,
		}

		uploaded, err := service.ingestImage(ctx, child, file)
		batchRollback = append(batchRollback, uploaded...)
		if err != nil {
			service.rollbackKeys(ctx, batchRollback)
			return nil, err
		}

		children = append(children, child)
	}

	if err := service.repo.CreateBatch(ctx, children); err != nil {
		service.rollbackKeys(ctx, batchRollback)
		return nil, asIngestionError(err)
	}

	for _, child := range children {
		service.populateAssetURLs(child)
	}

	service.invalidate(ctx, cache.PageFanout(cache.PageMutation{
		Slug:               parent.Slug,
		ChildSlugs:         slugsOfPages(children),
		CategorySlugsAfter: slugsOf(parent.Categories),
		TagSlugsAfter:      slugsOf(parent.Tags),
	}))

	service.logger.InfoContext(ctx, "child_pages_created",
		slog.String("parent_id", parent.ID),
		slog.Int("count", len(children)),
	)
	return children, nil
}

// # Page Deletion

/*
DeletePage removes a page, its children, and every owned storage key.

Description: Ordering is the reverse of creation. The database delete
runs first (cascading children and junction rows); storage keys are
removed only afterwards, so a storage failure can orphan objects but
never a database record referencing missing media. Storage delete
failures are logged and swallowed.
*/
func (service *Service) DeletePage(ctx context.Context, id string) error {
	page, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var children []*Page
	if !page.IsChild() {
		children, err = service.repo.ListChildren(ctx, page.ID)
		if err != nil {
			return err
		}
	}

	keys := storage.OwnedKeys(page.PDFKey, page.CoverKey, page.ThumbKey)
	for _, child := range children {
		keys = append(keys, storage.OwnedKeys(child.PDFKey, child.CoverKey, child.ThumbKey)...)
	}

	ctx = context.WithoutCancel(ctx)

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.deleteKeys(ctx, keys)

	service.invalidate(ctx, cache.PageFanout(cache.PageMutation{
		Slug:                page.Slug,
		ParentSlug:          service.parentSlug(ctx, page),
		ChildSlugs:          slugsOfPages(children),
		CategorySlugsBefore: slugsOf(page.Categories),
		TagSlugsBefore:      slugsOf(page.Tags),
	}))

	service.logger.InfoContext(ctx, "page_deleted",
		slog.String("page_id", page.ID),
		slog.String("slug", page.Slug),
		slog.Int("storage_keys", len(keys)),
	)
	return nil
}

// # Ingest Pipeline

// ingestImage derives all variants from the upload and writes them to the
// object store sequentially, returning every key that was written. On
// error the returned slice still lists the keys uploaded before the
// failure so the caller can roll them back.
func (service *Service) ingestImage(ctx context.Context, page *Page, upload *Upload) ([]string, error) {
	if strings.HasPrefix(upload.ContentType, "image/svg") {
		return nil, validate.RequiredError("image", "SVG sources cannot be rasterized; upload PNG, JPEG or WebP")
	}

	// Derivation is pure; nothing is written until it fully succeeds.
	assets, err := media.DeriveAssets(upload.Data)
	if err != nil {
		return nil, apperr.Ingestion(err)
	}
	pdf, err := media.DeriveCoverPDF(upload.Data)
	if err != nil {
		return nil, apperr.Ingestion(err)
	}

	variants := []struct {
		key         string
		body        []byte
		contentType string
	}{
		{storage.PDFKey(page.Slug), pdf, "application/pdf"},
		{storage.CoverKey(page.Slug), assets.Cover, "image/webp"},
		{storage.ThumbLargeKey(page.Slug), assets.ThumbLarge, "image/webp"},
		{storage.ThumbSmallKey(page.Slug), assets.ThumbSmall, "image/webp"},
	}

	var uploaded []string
	for _, variant := range variants {
		if err := service.objects.Put(ctx, variant.key, variant.body, variant.contentType, assetCacheControl); err != nil {
			return uploaded, apperr.Ingestion(err)
		}
		uploaded = append(uploaded, variant.key)
	}

	page.PDFKey = storage.PDFKey(page.Slug)
	page.CoverKey = storage.CoverKey(page.Slug)
	page.ThumbKey = storage.ThumbLargeKey(page.Slug)
	page.Width = assets.SourceWidth
	page.Height = assets.SourceHeight
	page.FileSize = int64(len(upload.Data))

	return uploaded, nil
}

// rollbackKeys deletes every key in the list best-effort. Failures are
// logged and swallowed; rollback must never mask the original error.
func (service *Service) rollbackKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := service.objects.Delete(ctx, key); err != nil {
			service.logger.ErrorContext(ctx, "rollback_delete_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	}

	if len(keys) > 0 {
		service.logger.WarnContext(ctx, "ingestion_rolled_back",
			slog.Int("key_count", len(keys)),
		)
	}
}

// deleteKeys removes replaced or orphaned keys best-effort after a
// successful database write.
func (service *Service) deleteKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := service.objects.Delete(ctx, key); err != nil {
			service.logger.ErrorContext(ctx, "storage_cleanup_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	}
}

// invalidate fires the cache fan-out. Failures are non-fatal: the content
// is already persisted, so the error is logged inside the invalidator and
// the mutation still reports success.
func (service *Service) invalidate(ctx context.Context, fanout cache.Fanout) {
	if service.invalidator == nil {
		return
	}
	_ = service.invalidator.Invalidate(ctx, fanout)
}

// # Validation

func (service *Service) validateCreate(input CreateInput) error {
	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)

	if input.Slug != "" {
		v.Slug("slug", input.Slug)
	}
	if input.Status != "" {
		v.OneOf("status", string(input.Status), string(StatusDraft), string(StatusPublished))
	}
	validateAgeRange(v, input.AgeMin, input.AgeMax)

	if input.Image == nil {
		v.Custom("image", true, "An image file is required")
	} else {
		v.MimeType("image", input.Image.ContentType, allowedImageTypes...)
		v.MaxBytes("image", int64(len(input.Image.Data)), service.cfg.MaxUploadBytes)
	}

	return v.Err()
}

func (service *Service) validateUpdate(input UpdateInput) error {
	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)

	if input.Slug != "" {
		v.Slug("slug", slug.From(input.Slug))
	}
	v.OneOf("status", string(input.Status), string(StatusDraft), string(StatusPublished))
	validateAgeRange(v, input.AgeMin, input.AgeMax)

	if input.Image != nil {
		v.MimeType("image", input.Image.ContentType, allowedImageTypes...)
		v.MaxBytes("image", int64(len(input.Image.Data)), service.cfg.MaxUploadBytes)
	}

	return v.Err()
}

func validateAgeRange(v *validate.Validator, ageMin, ageMax *int) {
	if ageMin != nil {
		v.Range("age_min", *ageMin, 0, 18)
	}
	if ageMax != nil {
		v.Range("age_max", *ageMax, 0, 18)
	}
	if ageMin != nil && ageMax != nil {
		v.Custom("age_min", *ageMin > *ageMax, "Minimum age cannot exceed maximum age")
	}
}

// # Helpers

// allocateSlug resolves the final slug for a new page. An explicit slug
// must be free as-is; a title-derived one probes numeric suffixes.
func (service *Service) allocateSlug(ctx context.Context, explicit, title string) (string, error) {
	if explicit != "" {
		candidate := slug.From(explicit)

		taken, err := service.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if taken {
			return "", apperr.SlugInUse(candidate)
		}
		return candidate, nil
	}

	return service.allocator.EnsureUnique(ctx, slug.From(title), make(map[string]struct{}))
}

// parentSlug resolves the slug of the page's parent, if any. Lookup
// failures degrade to an empty slug; the fan-out is best-effort context.
func (service *Service) parentSlug(ctx context.Context, page *Page) string {
	if !page.IsChild() {
		return ""
	}
	parent, err := service.repo.FindByID(ctx, *page.ParentID)
	if err != nil {
		return ""
	}
	return parent.Slug
}

// childSlugs lists the slugs of a top-level page's children.
func (service *Service) childSlugs(ctx context.Context, page *Page) []string {
	if page.IsChild() {
		return nil
	}
	children, err := service.repo.ListChildren(ctx, page.ID)
	if err != nil {
		return nil
	}
	return slugsOfPages(children)
}

// asIngestionError keeps classified application errors (conflicts, slug
// collisions) intact and wraps everything else as INGESTION_FAILED.
func asIngestionError(err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Ingestion(err)
}

func refsFromIDs(ids []string) []TaxonomyRef {
	refs := make([]TaxonomyRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, TaxonomyRef{ID: id})
	}
	return refs
}

func slugsOf(refs []TaxonomyRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Slug)
	}
	return out
}

func slugsOfPages(pages []*Page) []string {
	out := make([]string, 0, len(pages))
	for _, page := range pages {
		out = append(out, page.Slug)
	}
	return out
}

// subtract returns the keys in a that are not in b.
func subtract(a, b []string) []string {
	drop := make(map[string]struct{}, len(b))
	for _, key := range b {
		drop[key] = struct{}{}
	}

	var out []string
	for _, key := range a {
		if _, ok := drop[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// titleFromFilename turns "Orman Hayvanları.png" into "Orman Hayvanları".
func titleFromFilename(name string) string {
	base := name
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return "Boyama Sayfası"
	}
	return base
}
