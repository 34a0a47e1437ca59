// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package pagination provides standardized offset-based pagination for list endpoints.

It parses page/per_page query parameters with safe defaults and ceilings, and
produces the metadata block that accompanies every paginated response.
*/
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPage is the page number used when the client does not specify one.
	DefaultPage = 1

	// DefaultPerPage is the page size used when the client does not specify one.
	DefaultPerPage = 24

	// MaxPerPage is the hard ceiling for page size, protecting the database
	// from oversized result sets.
	MaxPerPage = 100
)

// Params holds the normalized pagination inputs for a list query.
type Params struct {
	Page    int
	PerPage int
}

// Meta is the pagination metadata block included in list response envelopes.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// FromRequest extracts pagination parameters from the query string.
// Invalid or out-of-range values fall back to safe defaults.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPage, err := strconv.Atoi(query.Get("per_page"))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Params{Page: page, PerPage: perPage}
}

// Offset returns the SQL OFFSET value for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the SQL LIMIT value for the current page.
func (p Params) Limit() int {
	return p.PerPage
}

// NewMeta builds the response metadata from the params and the total row count.
func NewMeta(params Params, totalItems int64) Meta {
	totalPages := int(totalItems) / params.PerPage
	if int(totalItems)%params.PerPage != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
