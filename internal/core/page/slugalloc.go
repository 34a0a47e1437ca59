// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page

import (
	"context"
	"fmt"

	"github.com/ardakose/boyama/pkg/slug"
)

// # Slug Allocation

// SlugProber is the subset of [Repository] the allocator probes.
type SlugProber interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// Allocator resolves slug collisions by probing the store and appending
// numeric suffixes.
type Allocator struct {
	prober SlugProber
}

// NewAllocator constructs an [Allocator] over the given prober.
func NewAllocator(prober SlugProber) *Allocator {
	return &Allocator{prober: prober}
}

/*
EnsureUnique returns a free slug derived from base.

Description: The base candidate is tried first; if taken, "-2", "-3", ...
suffixes are appended (each candidate re-slugified) until a free one is
found. A candidate counts as taken when it exists in the store OR in the
reserved set, which holds slugs allocated earlier in the same batch but
not yet persisted. The winner is added to the reserved set before
returning, so a multi-file child upload cannot collide with itself.

Two concurrent requests can still both pass the probe for the same slug;
the database unique index resolves that race and the loser surfaces as a
SLUG_IN_USE conflict.

Parameters:
  - ctx: context.Context
  - base: string (Already-slugified candidate)
  - reserved: map[string]struct{} (In-batch reservations, mutated)

Returns:
  - string: The allocated slug
  - error: Store probe failures
*/
func (allocator *Allocator) EnsureUnique(ctx context.Context, base string, reserved map[string]struct{}) (string, error) {
	candidate := slug.From(base)

	for suffix := 2; ; suffix++ {
		taken := false

		if _, ok := reserved[candidate]; ok {
			taken = true
		} else {
			exists, err := allocator.prober.SlugExists(ctx, candidate)
			if err != nil {
				return "", err
			}
			taken = exists
		}

		if !taken {
			reserved[candidate] = struct{}{}
			return candidate, nil
		}

		candidate = slug.From(fmt.Sprintf("%s-%d", base, suffix))
	}
}
