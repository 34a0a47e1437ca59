// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/core/page"
)

// stubProber fakes the store-side slug existence probe.
type stubProber struct {
	existing map[string]bool
}

func (s *stubProber) SlugExists(_ context.Context, slug string) (bool, error) {
	return s.existing[slug], nil
}

func TestAllocator_FreeSlug(t *testing.T) {
	allocator := page.NewAllocator(&stubProber{existing: map[string]bool{}})

	got, err := allocator.EnsureUnique(context.Background(), "tilki", map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "tilki", got)
}

func TestAllocator_StoredCollision(t *testing.T) {
	allocator := page.NewAllocator(&stubProber{existing: map[string]bool{
		"tilki":   true,
		"tilki-2": true,
	}})

	got, err := allocator.EnsureUnique(context.Background(), "tilki", map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "tilki-3", got)
}

func TestAllocator_BatchCollisions(t *testing.T) {
	// Three identical titles in one batch must yield three distinct slugs
	// before anything is persisted.
	allocator := page.NewAllocator(&stubProber{existing: map[string]bool{}})
	reserved := make(map[string]struct{})

	var got []string
	for i := 0; i < 3; i++ {
		s, err := allocator.EnsureUnique(context.Background(), "tilki", reserved)
		require.NoError(t, err)
		got = append(got, s)
	}

	assert.Equal(t, []string{"tilki", "tilki-2", "tilki-3"}, got)
}

func TestAllocator_BatchAndStoreCombined(t *testing.T) {
	allocator := page.NewAllocator(&stubProber{existing: map[string]bool{
		"kedi": true,
	}})
	reserved := map[string]struct{}{"kedi-2": {}}

	got, err := allocator.EnsureUnique(context.Background(), "kedi", reserved)
	require.NoError(t, err)
	assert.Equal(t, "kedi-3", got)
}
