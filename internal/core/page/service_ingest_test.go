// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/core/page"
	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/storage"
)

// # Test Fakes

// memRepo is an in-memory [page.Repository] for orchestrator tests.
type memRepo struct {
	pages map[string]*page.Page

	failCreate bool
	failBatch  bool
}

func newMemRepo() *memRepo {
	return &memRepo{pages: make(map[string]*page.Page)}
}

func (r *memRepo) Search(_ context.Context, _ page.Filter, _, _ int) ([]*page.Page, int, error) {
	var out []*page.Page
	for _, p := range r.pages {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*page.Page, error) {
	p, ok := r.pages[id]
	if !ok {
		return nil, apperr.NotFound("Page")
	}
	clone := *p
	return &clone, nil
}

func (r *memRepo) FindBySlug(_ context.Context, slug string) (*page.Page, error) {
	for _, p := range r.pages {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Page")
}

func (r *memRepo) ListChildren(_ context.Context, parentID string) ([]*page.Page, error) {
	var out []*page.Page
	for _, p := range r.pages {
		if p.ParentID != nil && *p.ParentID == parentID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.pages {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) SlugExistsExcept(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range r.pages {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Create(_ context.Context, p *page.Page) error {
	if r.failCreate {
		return errors.New("simulated create failure")
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.pages[p.ID] = &clone
	return nil
}

func (r *memRepo) CreateBatch(_ context.Context, pages []*page.Page) error {
	if r.failBatch {
		return errors.New("simulated batch failure")
	}
	for _, p := range pages {
		clone := *p
		r.pages[p.ID] = &clone
	}
	return nil
}

func (r *memRepo) Update(_ context.Context, p *page.Page) error {
	if _, ok := r.pages[p.ID]; !ok {
		return apperr.NotFound("Page")
	}
	p.UpdatedAt = time.Now()
	clone := *p
	r.pages[p.ID] = &clone
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pages[id]; !ok {
		return apperr.NotFound("Page")
	}
	delete(r.pages, id)
	for childID, p := range r.pages {
		if p.ParentID != nil && *p.ParentID == id {
			delete(r.pages, childID)
		}
	}
	return nil
}

func (r *memRepo) IncrementViewCount(_ context.Context, id string) error {
	p, ok := r.pages[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	p.ViewCount++
	return nil
}

func (r *memRepo) IncrementDownloadCount(_ context.Context, id string) error {
	p, ok := r.pages[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	p.DownloadCount++
	return nil
}

// memInvalidator records fired fan-outs.
type memInvalidator struct {
	fanouts []cache.Fanout
}

func (m *memInvalidator) Invalidate(_ context.Context, fanout cache.Fanout) error {
	m.fanouts = append(m.fanouts, fanout)
	return nil
}

// # Helpers

func testConfig() page.ServiceConfig {
	return page.ServiceConfig{
		SignedURLTTL:        10 * time.Minute,
		MaxUploadBytes:      10 << 20,
		MaxChildUploadBytes: 5 << 20,
	}
}

func newTestService(t *testing.T) (*page.Service, *memRepo, *storage.MemoryStore, *memInvalidator) {
	t.Helper()

	repo := newMemRepo()
	objects := storage.NewMemoryStore()
	invalidator := &memInvalidator{}
	logger := slog.New(slog.DiscardHandler)

	service := page.NewService(repo, objects, invalidator, logger, testConfig())
	return service, repo, objects, invalidator
}

func pngUpload(t *testing.T, filename string) *page.Upload {
	t.Helper()

	img := imaging.New(320, 452, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return &page.Upload{
		Filename:    filename,
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}
}

// # Creation

func TestCreatePage_Success(t *testing.T) {
	service, repo, objects, invalidator := newTestService(t)

	created, err := service.CreatePage(context.Background(), page.CreateInput{
		Title:  "Sevimli Kedi",
		Status: page.StatusPublished,
		Image:  pngUpload(t, "kedi.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "sevimli-kedi", created.Slug)
	assert.Equal(t, 320, created.Width)
	assert.Equal(t, 452, created.Height)

	// All four variants exist in the store.
	assert.True(t, objects.Exists("pdf/sevimli-kedi.pdf"))
	assert.True(t, objects.Exists("cover/sevimli-kedi.webp"))
	assert.True(t, objects.Exists("thumb/sevimli-kedi-800.webp"))
	assert.True(t, objects.Exists("thumb/sevimli-kedi-400.webp"))

	// Record persisted, fan-out fired.
	assert.Len(t, repo.pages, 1)
	require.Len(t, invalidator.fanouts, 1)
	assert.Contains(t, invalidator.fanouts[0].Paths, "/boyama/sevimli-kedi")
	assert.Contains(t, invalidator.fanouts[0].Paths, "/")
}

func TestCreatePage_MissingImage(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.CreatePage(context.Background(), page.CreateInput{Title: "Fil"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestCreatePage_RejectsSVG(t *testing.T) {
	service, _, objects, _ := newTestService(t)

	_, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Vektor",
		Image: &page.Upload{
			Filename:    "vektor.svg",
			ContentType: "image/svg+xml",
			Data:        []byte("<svg></svg>"),
		},
	})
	require.Error(t, err)
	assert.Zero(t, objects.Len())
}

func TestCreatePage_ExplicitSlugTaken(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Kedi", Status: page.StatusPublished, Image: pngUpload(t, "a.png"),
	})
	require.NoError(t, err)

	_, err = service.CreatePage(context.Background(), page.CreateInput{
		Title: "Baska Kedi", Slug: "kedi", Image: pngUpload(t, "b.png"),
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "SLUG_IN_USE", ae.Code)
}

func TestCreatePage_TitleCollisionGetsSuffix(t *testing.T) {
	service, _, _, _ := newTestService(t)

	first, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Kelebek", Image: pngUpload(t, "a.png"),
	})
	require.NoError(t, err)

	second, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Kelebek", Image: pngUpload(t, "b.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "kelebek", first.Slug)
	assert.Equal(t, "kelebek-2", second.Slug)
}

// # Rollback

func TestCreatePage_UploadFailureRollsBack(t *testing.T) {
	service, repo, objects, _ := newTestService(t)

	// The last variant fails: the three successful uploads must be
	// deleted and no record persisted.
	objects.FailPutKeys["thumb/aslan-400.webp"] = true

	_, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Aslan", Image: pngUpload(t, "aslan.png"),
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INGESTION_FAILED", ae.Code)

	assert.Zero(t, objects.Len())
	assert.Empty(t, repo.pages)
	assert.ElementsMatch(t, []string{
		"pdf/aslan.pdf",
		"cover/aslan.webp",
		"thumb/aslan-800.webp",
	}, objects.Deleted)
}

func TestCreatePage_DBFailureRollsBackAllUploads(t *testing.T) {
	service, repo, objects, _ := newTestService(t)
	repo.failCreate = true

	_, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Zebra", Image: pngUpload(t, "zebra.png"),
	})
	require.Error(t, err)

	assert.Zero(t, objects.Len())
	assert.Len(t, objects.Deleted, 4)
	assert.Empty(t, repo.pages)
}

// # Update

func TestUpdatePage_WithoutImageKeepsKeys(t *testing.T) {
	service, _, objects, _ := newTestService(t)

	created, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Balik", Status: page.StatusPublished, Image: pngUpload(t, "balik.png"),
	})
	require.NoError(t, err)

	updated, err := service.UpdatePage(context.Background(), created.ID, page.UpdateInput{
		Title:       "Renkli Balik",
		Status:      page.StatusPublished,
		Description: "Deniz dibinde",
	})
	require.NoError(t, err)

	assert.Equal(t, "Renkli Balik", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, 4, objects.Len())
	assert.True(t, objects.Exists("pdf/balik.pdf"))
}

func TestUpdatePage_SlugChangeMovesKeys(t *testing.T) {
	service, _, objects, _ := newTestService(t)

	created, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Kopek", Status: page.StatusPublished, Image: pngUpload(t, "kopek.png"),
	})
	require.NoError(t, err)

	_, err = service.UpdatePage(context.Background(), created.ID, page.UpdateInput{
		Title:  "Yavru Kopek",
		Slug:   "yavru-kopek",
		Status: page.StatusPublished,
		Image:  pngUpload(t, "yavru.png"),
	})
	require.NoError(t, err)

	// New keys live, old keys deleted after the DB write.
	assert.True(t, objects.Exists("pdf/yavru-kopek.pdf"))
	assert.True(t, objects.Exists("thumb/yavru-kopek-400.webp"))
	assert.False(t, objects.Exists("pdf/kopek.pdf"))
	assert.False(t, objects.Exists("cover/kopek.webp"))
	assert.False(t, objects.Exists("thumb/kopek-800.webp"))
	assert.False(t, objects.Exists("thumb/kopek-400.webp"))
}

func TestUpdatePage_SlugCollision(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Ayi", Image: pngUpload(t, "a.png"),
	})
	require.NoError(t, err)

	second, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Panda", Image: pngUpload(t, "b.png"),
	})
	require.NoError(t, err)

	_, err = service.UpdatePage(context.Background(), second.ID, page.UpdateInput{
		Title: "Panda", Slug: "ayi", Status: page.StatusDraft,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "SLUG_IN_USE", ae.Code)
}

// # Children

func TestCreateChildPages_Batch(t *testing.T) {
	service, repo, objects, _ := newTestService(t)

	parent, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Orman Hayvanlari", Status: page.StatusPublished, Image: pngUpload(t, "orman.png"),
	})
	require.NoError(t, err)

	children, err := service.CreateChildPages(context.Background(), parent.ID, []page.Upload{
		*pngUpload(t, "Tilki.png"),
		*pngUpload(t, "Tilki.png"),
	})
	require.NoError(t, err)
	require.Len(t, children, 2)

	// Same filename, distinct slugs within the batch.
	assert.Equal(t, "tilki", children[0].Slug)
	assert.Equal(t, "tilki-2", children[1].Slug)

	for _, child := range children {
		require.NotNil(t, child.ParentID)
		assert.Equal(t, parent.ID, *child.ParentID)
		assert.True(t, objects.Exists("pdf/"+child.Slug+".pdf"))
	}

	assert.Len(t, repo.pages, 3)
}

func TestCreateChildPages_RejectsChildParent(t *testing.T) {
	service, _, _, _ := newTestService(t)

	parent, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Ana Sayfa", Image: pngUpload(t, "ana.png"),
	})
	require.NoError(t, err)

	children, err := service.CreateChildPages(context.Background(), parent.ID, []page.Upload{
		*pngUpload(t, "cocuk.png"),
	})
	require.NoError(t, err)

	_, err = service.CreateChildPages(context.Background(), children[0].ID, []page.Upload{
		*pngUpload(t, "torun.png"),
	})
	require.Error(t, err)
}

func TestCreateChildPages_BatchFailureRollsBackEverything(t *testing.T) {
	service, repo, objects, _ := newTestService(t)

	parent, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Tasitlar", Image: pngUpload(t, "tasitlar.png"),
	})
	require.NoError(t, err)
	repo.failBatch = true

	before := objects.Len()
	_, err = service.CreateChildPages(context.Background(), parent.ID, []page.Upload{
		*pngUpload(t, "araba.png"),
		*pngUpload(t, "tren.png"),
	})
	require.Error(t, err)

	// Every key the batch wrote is gone; only the parent's remain.
	assert.Equal(t, before, objects.Len())
	assert.Len(t, repo.pages, 1)
}

// # Deletion

func TestDeletePage_CascadeRemovesAllKeys(t *testing.T) {
	service, repo, objects, _ := newTestService(t)

	parent, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Dinozorlar", Status: page.StatusPublished, Image: pngUpload(t, "dino.png"),
	})
	require.NoError(t, err)

	_, err = service.CreateChildPages(context.Background(), parent.ID, []page.Upload{
		*pngUpload(t, "trex.png"),
		*pngUpload(t, "raptor.png"),
	})
	require.NoError(t, err)
	require.Equal(t, 12, objects.Len())

	require.NoError(t, service.DeletePage(context.Background(), parent.ID))

	assert.Zero(t, objects.Len())
	assert.Empty(t, repo.pages)
}

// # Counters & Downloads

func TestDownloadURL_IncrementsCounter(t *testing.T) {
	service, repo, _, _ := newTestService(t)

	created, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Uzay", Status: page.StatusPublished, Image: pngUpload(t, "uzay.png"),
	})
	require.NoError(t, err)

	url, err := service.DownloadURL(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "pdf/uzay.pdf")

	assert.Equal(t, int64(1), repo.pages[created.ID].DownloadCount)
}

func TestRecordView(t *testing.T) {
	service, repo, _, _ := newTestService(t)

	created, err := service.CreatePage(context.Background(), page.CreateInput{
		Title: "Cicekler", Image: pngUpload(t, "cicek.png"),
	})
	require.NoError(t, err)

	require.NoError(t, service.RecordView(context.Background(), created.ID))
	require.NoError(t, service.RecordView(context.Background(), created.ID))

	assert.Equal(t, int64(2), repo.pages[created.ID].ViewCount)
}
