// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package tag manages the tag taxonomy for coloring pages.
package tag

import (
	"context"
	"time"
)

// Tag is a free-form taxonomy node linked to pages.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PageCount int64     `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the data access contract for tags.
type Repository interface {
	List(context context.Context) ([]*Tag, error)
	FindByID(context context.Context, id string) (*Tag, error)
	Create(context context.Context, tag *Tag) error
	Update(context context.Context, tag *Tag) error
	Delete(context context.Context, id string) error
	CountPages(context context.Context, id string) (int64, error)
}
