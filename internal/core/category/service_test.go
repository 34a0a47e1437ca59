// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package category_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/core/category"
	"github.com/ardakose/boyama/internal/platform/apperr"
)

type memRepo struct {
	categories map[string]*category.Category
	pageCounts map[string]int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		categories: make(map[string]*category.Category),
		pageCounts: make(map[string]int64),
	}
}

func (r *memRepo) List(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (r *memRepo) Create(_ context.Context, c *category.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *memRepo) Update(_ context.Context, c *category.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *memRepo) CountPages(_ context.Context, id string) (int64, error) {
	return r.pageCounts[id], nil
}

type memInvalidator struct {
	fanouts []cache.Fanout
}

func (m *memInvalidator) Invalidate(_ context.Context, fanout cache.Fanout) error {
	m.fanouts = append(m.fanouts, fanout)
	return nil
}

func newTestService() (*category.Service, *memRepo, *memInvalidator) {
	repo := newMemRepo()
	invalidator := &memInvalidator{}
	service := category.NewService(repo, invalidator, slog.New(slog.DiscardHandler))
	return service, repo, invalidator
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	service, _, invalidator := newTestService()

	created, err := service.CreateCategory(context.Background(), "Orman Hayvanları")
	require.NoError(t, err)

	assert.Equal(t, "orman-hayvanlari", created.Slug)
	require.Len(t, invalidator.fanouts, 1)
	assert.Contains(t, invalidator.fanouts[0].Paths, "/kategori/orman-hayvanlari")
}

func TestUpdateCategory_RenameInvalidatesOldPath(t *testing.T) {
	service, _, invalidator := newTestService()

	created, err := service.CreateCategory(context.Background(), "Orman Hayvanları")
	require.NoError(t, err)

	updated, err := service.UpdateCategory(context.Background(), created.ID, "Çiftlik Hayvanları")
	require.NoError(t, err)
	assert.Equal(t, "ciftlik-hayvanlari", updated.Slug)

	// The stale listing URL is purged directly alongside the new one.
	require.Len(t, invalidator.fanouts, 2)
	renameFanout := invalidator.fanouts[1]
	assert.Contains(t, renameFanout.Paths, "/kategori/orman-hayvanlari")
	assert.Contains(t, renameFanout.Paths, "/kategori/ciftlik-hayvanlari")
}

func TestDeleteCategory_RefusedWhileReferenced(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.CreateCategory(context.Background(), "Kediler")
	require.NoError(t, err)
	repo.pageCounts[created.ID] = 3

	err = service.DeleteCategory(context.Background(), created.ID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// Still present.
	assert.Contains(t, repo.categories, created.ID)
}

func TestDeleteCategory_SucceedsWhenUnreferenced(t *testing.T) {
	service, repo, invalidator := newTestService()

	created, err := service.CreateCategory(context.Background(), "Tasitlar")
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(context.Background(), created.ID))
	assert.Empty(t, repo.categories)
	assert.Len(t, invalidator.fanouts, 2)
}
