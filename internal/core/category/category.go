// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package category manages the category taxonomy for coloring pages.

Categories are simple named, slugged nodes linked to pages through a
junction table. A category can only be deleted while zero pages reference
it; the guard lives in the application layer on top of the database's
referential integrity.
*/
package category

import (
	"context"
	"time"
)

// Category is a taxonomy node grouping pages by theme.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PageCount int64     `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Category Data Access

// Repository defines the data access contract for categories.
type Repository interface {

	// List returns all categories ordered by name, with page counts.
	List(context context.Context) ([]*Category, error)

	// FindByID returns the category or apperr.NotFound.
	FindByID(context context.Context, id string) (*Category, error)

	// Create persists a new category. A duplicate slug surfaces as a
	// conflict via the unique index.
	Create(context context.Context, category *Category) error

	// Update persists name/slug changes.
	Update(context context.Context, category *Category) error

	// Delete removes the category. Junction rows cascade.
	Delete(context context.Context, id string) error

	// CountPages returns the number of pages referencing the category.
	CountPages(context context.Context, id string) (int64, error)
}
