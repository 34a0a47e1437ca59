// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package page

import "context"

// # Page Data Access

// Repository defines the data access contract for the page domain.
type Repository interface {

	/*
		Search returns a filtered, paginated slice of pages and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Text query, taxonomy slugs, age, visibility)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Page: Slice of matching page records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	Search(context context.Context, filter Filter, limit, offset int) ([]*Page, int, error)

	/*
		FindByID returns the page with the given ID, taxonomy links included.

		Returns:
		  - *Page: The hydrated domain entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Page, error)

	/*
		FindBySlug returns the page matching the unique URL slug.

		Returns:
		  - *Page: The hydrated domain entity
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Page, error)

	/*
		ListChildren returns the child pages of a parent, oldest first.
	*/
	ListChildren(context context.Context, parentID string) ([]*Page, error)

	/*
		SlugExists reports whether any page currently holds the slug.
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		SlugExistsExcept reports whether a page other than excludeID holds
		the slug. Used by the update flow.
	*/
	SlugExistsExcept(context context.Context, slug, excludeID string) (bool, error)

	/*
		Create persists a new page and its taxonomy junction rows in one
		transaction.

		Returns:
		  - error: apperr.SlugInUse when the unique slug index rejects the
		    row (a concurrent allocation lost the race), or other storage
		    failures
	*/
	Create(context context.Context, page *Page) error

	/*
		CreateBatch persists several pages atomically. Either every page
		and its junction rows commit, or none do. Used for child-page
		batches so a mid-batch failure cannot strand records whose storage
		keys were rolled back.
	*/
	CreateBatch(context context.Context, pages []*Page) error

	/*
		Update persists changes to an existing page's mutable fields and
		replaces its taxonomy junction rows.
	*/
	Update(context context.Context, page *Page) error

	/*
		Delete removes the page, cascading to children and junction rows.
		The caller deletes storage keys afterwards.
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViewCount atomically bumps the view counter.
	*/
	IncrementViewCount(context context.Context, id string) error

	/*
		IncrementDownloadCount atomically bumps the download counter.
	*/
	IncrementDownloadCount(context context.Context, id string) error
}
