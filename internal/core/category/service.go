// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/ardakose/boyama/internal/cache"
	"github.com/ardakose/boyama/internal/platform/apperr"
	"github.com/ardakose/boyama/internal/platform/validate"
	"github.com/ardakose/boyama/pkg/slug"
	"github.com/ardakose/boyama/pkg/uuidv7"
)

// CacheInvalidator purges rendered listings after a taxonomy mutation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, fanout cache.Fanout) error
}

// Service orchestrates category management.
type Service struct {
	repo        Repository
	invalidator CacheInvalidator
	logger      *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repo Repository, invalidator CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger.With(slog.String("component", "category_service")),
	}
}

// ListCategories returns all categories with page counts.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// CreateCategory validates the name, derives the slug, and persists the node.
func (service *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	v := &validate.Validator{}
	if err := v.Required("name", name).MaxLen("name", name, 100).Err(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:   uuidv7.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	service.invalidate(ctx, cache.CategoryFanout(category.Slug))

	service.logger.InfoContext(ctx, "category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}

// UpdateCategory renames a category, re-deriving its slug.
func (service *Service) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if err := v.Required("name", name).MaxLen("name", name, 100).Err(); err != nil {
		return nil, err
	}

	// A rename moves the listing URL; both the old and the new path must
	// be purged.
	previousSlug := existing.Slug
	existing.Name = name
	existing.Slug = slug.From(name)

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.invalidate(ctx, cache.CategoryFanout(previousSlug, existing.Slug))
	return existing, nil
}

/*
DeleteCategory removes a category once nothing references it.

Description: The zero-reference guard runs before the delete and reports a
conflict instead of deleting silently. Junction rows owned by pages keep
their category links authoritative, so a referenced category staying alive
preserves referential integrity at the application layer.
*/
func (service *Service) DeleteCategory(ctx context.Context, id string) error {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := service.repo.CountPages(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Category is still referenced by pages and cannot be deleted")
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.invalidate(ctx, cache.CategoryFanout(existing.Slug))

	service.logger.InfoContext(ctx, "category_deleted",
		slog.String("category_id", id),
		slog.String("slug", existing.Slug),
	)
	return nil
}

func (service *Service) invalidate(ctx context.Context, fanout cache.Fanout) {
	if service.invalidator == nil {
		return
	}
	_ = service.invalidator.Invalidate(ctx, fanout)
}
