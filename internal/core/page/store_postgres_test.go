// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// agePredicate is the exact clause the age filter must emit: an unset bound
// is unbounded, never exclusionary.
func agePredicate(argID int) string {
	return fmt.Sprintf(
		"(p.agemin IS NULL OR p.agemin <= $%d) AND (p.agemax IS NULL OR p.agemax >= $%d)",
		argID, argID,
	)
}

func TestBuildSearchQuery_AgeFilter(t *testing.T) {
	age := 7

	query, args := buildSearchQuery(Filter{Age: &age, TopLevelOnly: true}, 24, 0)

	// The age value binds once and both bounds compare against it.
	assert.Contains(t, query, agePredicate(1))
	require.Len(t, args, 3)
	assert.Equal(t, 7, args[0])
	assert.Equal(t, 24, args[1])
	assert.Equal(t, 0, args[2])
}

func TestBuildSearchQuery_AgeFilterAfterOtherArgs(t *testing.T) {
	age := 10

	query, args := buildSearchQuery(Filter{
		Query:        "aslan",
		CategorySlug: "hayvanlar",
		Age:          &age,
	}, 24, 24)

	// Text and category arguments come first, so the age bound is $3.
	assert.Contains(t, query, agePredicate(3))
	require.Len(t, args, 5)
	assert.Equal(t, "aslan", args[0])
	assert.Equal(t, "hayvanlar", args[1])
	assert.Equal(t, 10, args[2])
}

func TestBuildSearchQuery_NoAgeFilter(t *testing.T) {
	query, args := buildSearchQuery(Filter{TopLevelOnly: true}, 24, 0)

	assert.NotContains(t, query, "agemin")
	assert.NotContains(t, query, "agemax")
	assert.Len(t, args, 2)
}

func TestBuildSearchQuery_Visibility(t *testing.T) {
	published, _ := buildSearchQuery(Filter{}, 24, 0)
	assert.Contains(t, published, "p.status = 'published'")

	drafts, _ := buildSearchQuery(Filter{IncludeDrafts: true}, 24, 0)
	assert.NotContains(t, drafts, "p.status =")
}

func TestBuildSearchQuery_TextRankingSharesPlaceholder(t *testing.T) {
	query, args := buildSearchQuery(Filter{Query: "kedi"}, 24, 0)

	assert.Contains(t, query, "websearch_to_tsquery('turkish', $1)")
	assert.Contains(t, query, "ORDER BY ts_rank(p.searchvector, websearch_to_tsquery('turkish', $1)) DESC")
	require.Len(t, args, 3)
	assert.Equal(t, "kedi", args[0])

	// The query text appears once in the bound args even though the
	// placeholder is referenced twice.
	occurrences := strings.Count(query, "$1")
	assert.Equal(t, 2, occurrences)
}

func TestBuildSearchQuery_RecencyOrderWithoutText(t *testing.T) {
	query, _ := buildSearchQuery(Filter{}, 24, 0)

	assert.NotContains(t, query, "ts_rank")
	assert.Contains(t, query, "ORDER BY p.createdat DESC")
}
