// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardakose/boyama/internal/cache"
)

func TestPageFanout_Complete(t *testing.T) {
	fanout := cache.PageFanout(cache.PageMutation{
		Slug:                "sevimli-kedi",
		ParentSlug:          "hayvanlar",
		ChildSlugs:          []string{"sevimli-kedi-2", "sevimli-kedi-3"},
		CategorySlugsBefore: []string{"evcil-hayvanlar"},
		CategorySlugsAfter:  []string{"evcil-hayvanlar", "kediler"},
		TagSlugsBefore:      []string{"kolay"},
		TagSlugsAfter:       []string{"kolay"},
	})

	assert.ElementsMatch(t, []string{
		"/boyama/sevimli-kedi",
		"/boyama/hayvanlar",
		"/boyama/sevimli-kedi-2",
		"/boyama/sevimli-kedi-3",
		"/kategori/evcil-hayvanlar",
		"/kategori/kediler",
		"/etiket/kolay",
		"/",
		"/ara",
		"/sitemap.xml",
	}, fanout.Paths)

	assert.ElementsMatch(t, []string{"pages", "categories", "tags"}, fanout.Tags)
}

func TestPageFanout_RemovedCategoryStillInvalidated(t *testing.T) {
	// A category detached by the mutation still needs its listing purged.
	fanout := cache.PageFanout(cache.PageMutation{
		Slug:                "fil",
		CategorySlugsBefore: []string{"orman-hayvanlari"},
		CategorySlugsAfter:  nil,
	})

	assert.Contains(t, fanout.Paths, "/kategori/orman-hayvanlari")
	assert.Contains(t, fanout.Tags, "categories")
}

func TestPageFanout_Idempotent(t *testing.T) {
	// before == after must produce the same set as a real change, with no
	// duplicates and in stable order.
	mutation := cache.PageMutation{
		Slug:                "kelebek",
		CategorySlugsBefore: []string{"bocekler", "bocekler"},
		CategorySlugsAfter:  []string{"bocekler"},
	}

	first := cache.PageFanout(mutation)
	second := cache.PageFanout(mutation)

	assert.Equal(t, first, second)

	seen := make(map[string]int)
	for _, p := range first.Paths {
		seen[p]++
	}
	for path, count := range seen {
		assert.Equal(t, 1, count, "duplicate path %s", path)
	}
}

func TestPageFanout_MinimalPage(t *testing.T) {
	fanout := cache.PageFanout(cache.PageMutation{Slug: "tek-sayfa"})

	assert.ElementsMatch(t, []string{
		"/boyama/tek-sayfa", "/", "/ara", "/sitemap.xml",
	}, fanout.Paths)
	assert.Equal(t, []string{"pages"}, fanout.Tags)
}

func TestCategoryFanout(t *testing.T) {
	fanout := cache.CategoryFanout("tasitlar")

	assert.ElementsMatch(t, []string{
		"/kategori/tasitlar", "/", "/ara", "/sitemap.xml",
	}, fanout.Paths)
	assert.Equal(t, []string{"categories"}, fanout.Tags)
}

func TestCategoryFanout_RenameCoversBothSlugs(t *testing.T) {
	fanout := cache.CategoryFanout("tasitlar", "araclar")

	assert.ElementsMatch(t, []string{
		"/kategori/tasitlar", "/kategori/araclar", "/", "/ara", "/sitemap.xml",
	}, fanout.Paths)

	// An unchanged slug passed twice dedupes.
	same := cache.CategoryFanout("tasitlar", "tasitlar")
	assert.ElementsMatch(t, []string{
		"/kategori/tasitlar", "/", "/ara", "/sitemap.xml",
	}, same.Paths)
}

func TestTagFanout(t *testing.T) {
	fanout := cache.TagFanout("zor")

	assert.ElementsMatch(t, []string{
		"/etiket/zor", "/", "/ara", "/sitemap.xml",
	}, fanout.Paths)
	assert.Equal(t, []string{"tags"}, fanout.Tags)
}
