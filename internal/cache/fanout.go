// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package cache computes and executes the invalidation fan-out for content
mutations.

The browsing frontend caches rendered pages in Redis under two key shapes:

  - cache:path:<path>   one rendered URL
  - cache:tag:<tag>     a set of path keys sharing a coarse tag

A mutation must purge both shapes, because downstream caching may key on
either. The fan-out computation is pure set math over "what changed"; the
Invalidator issues the Redis deletes.
*/
package cache

import "sort"

// Coarse invalidation tags.
const (
	TagPages      = "pages"
	TagCategories = "categories"
	TagTags       = "tags"
)

// Global surfaces every content mutation invalidates.
const (
	PathHome    = "/"
	PathSearch  = "/ara"
	PathSitemap = "/sitemap.xml"
)

// Fanout is the complete, deduplicated invalidation set for one mutation.
type Fanout struct {
	Paths []string
	Tags  []string
}

// PageMutation describes a page change for fan-out computation.
//
// CategorySlugsBefore/After and TagSlugsBefore/After carry the taxonomy
// membership on both sides of the mutation. A category removed from the
// page still needs its listing invalidated, so the union of both sides is
// used.
type PageMutation struct {
	Slug                string
	ParentSlug          string
	ChildSlugs          []string
	CategorySlugsBefore []string
	CategorySlugsAfter  []string
	TagSlugsBefore      []string
	TagSlugsAfter       []string
}

// PageFanout computes the invalidation set for a page create/update/delete.
//
// Same input twice yields the same output; membership sets are
// deduplicated and the result is sorted for deterministic Redis calls.
func PageFanout(m PageMutation) Fanout {
	paths := newPathSet()

	paths.add(PagePath(m.Slug))
	if m.ParentSlug != "" {
		paths.add(PagePath(m.ParentSlug))
	}
	for _, child := range m.ChildSlugs {
		paths.add(PagePath(child))
	}

	for _, slug := range union(m.CategorySlugsBefore, m.CategorySlugsAfter) {
		paths.add(CategoryPath(slug))
	}
	for _, slug := range union(m.TagSlugsBefore, m.TagSlugsAfter) {
		paths.add(TagPath(slug))
	}

	paths.add(PathHome, PathSearch, PathSitemap)

	tags := []string{TagPages}
	if len(m.CategorySlugsBefore)+len(m.CategorySlugsAfter) > 0 {
		tags = append(tags, TagCategories)
	}
	if len(m.TagSlugsBefore)+len(m.TagSlugsAfter) > 0 {
		tags = append(tags, TagTags)
	}

	return Fanout{Paths: paths.sorted(), Tags: tags}
}

// CategoryFanout computes the invalidation set for a category mutation.
// A rename passes both the old and the new slug so the stale listing path
// is purged directly, not just via the coarse tag sweep.
func CategoryFanout(slugs ...string) Fanout {
	paths := newPathSet()
	for _, slug := range slugs {
		paths.add(CategoryPath(slug))
	}
	paths.add(PathHome, PathSearch, PathSitemap)
	return Fanout{Paths: paths.sorted(), Tags: []string{TagCategories}}
}

// TagFanout computes the invalidation set for a tag mutation. Renames pass
// old and new slug, like [CategoryFanout].
func TagFanout(slugs ...string) Fanout {
	paths := newPathSet()
	for _, slug := range slugs {
		paths.add(TagPath(slug))
	}
	paths.add(PathHome, PathSearch, PathSitemap)
	return Fanout{Paths: paths.sorted(), Tags: []string{TagTags}}
}

// # Canonical Paths

// PagePath returns the canonical frontend path for a page slug.
func PagePath(slug string) string {
	return "/boyama/" + slug
}

// CategoryPath returns the canonical frontend path for a category listing.
func CategoryPath(slug string) string {
	return "/kategori/" + slug
}

// TagPath returns the canonical frontend path for a tag listing.
func TagPath(slug string) string {
	return "/etiket/" + slug
}

// # Set Helpers

type pathSet map[string]struct{}

func newPathSet() pathSet {
	return make(pathSet)
}

func (s pathSet) add(paths ...string) {
	for _, p := range paths {
		s[p] = struct{}{}
	}
}

func (s pathSet) sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// union merges two slug slices without duplicates, preserving no
// particular order.
func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
