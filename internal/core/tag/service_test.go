// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package tag_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/core/tag"
	"github.com/ardakose/boyama/internal/platform/apperr"
)

type memRepo struct {
	tags       map[string]*tag.Tag
	pageCounts map[string]int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		tags:       make(map[string]*tag.Tag),
		pageCounts: make(map[string]int64),
	}
}

func (r *memRepo) List(_ context.Context) ([]*tag.Tag, error) {
	var out []*tag.Tag
	for _, t := range r.tags {
		out = append(out, t)
	}
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*tag.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, apperr.NotFound("Tag")
	}
	return t, nil
}

func (r *memRepo) Create(_ context.Context, t *tag.Tag) error {
	r.tags[t.ID] = t
	return nil
}

func (r *memRepo) Update(_ context.Context, t *tag.Tag) error {
	r.tags[t.ID] = t
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.tags, id)
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

func newTestService() (*tag.Service, *memRepo, *memInvalidator) {
	repo := newMemRepo()
	invalidator := &memInvalidator{}
	service := tag.NewService(repo, invalidator, slog.New(slog.DiscardHandler))
	return service, repo, invalidator
}

func TestUpdateTag_RenameInvalidatesOldPath(t *testing.T) {
	service, _, invalidator := newTestService()

	created, err := service.CreateTag(context.Background(), "Kolay")
	require.NoError(t, err)

	updated, err := service.UpdateTag(context.Background(), created.ID, "Çok Kolay")
	require.NoError(t, err)
	assert.Equal(t, "cok-kolay", updated.Slug)

	require.Len(t, invalidator.fanouts, 2)
	renameFanout := invalidator.fanouts[1]
	assert.Contains(t, renameFanout.Paths, "/etiket/kolay")
	assert.Contains(t, renameFanout.Paths, "/etiket/cok-kolay")
}

func TestDeleteTag_RefusedWhileReferenced(t *testing.T) {
	service, repo, _ := newTestService()

	created, err := service.CreateTag(context.Background(), "Zor")
	require.NoError(t, err)
	repo.pageCounts[created.ID] = 2

	err = service.DeleteTag(context.Background(), created.ID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Contains(t, repo.tags, created.ID)
}
