// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package tag

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

// Service orchestrates tag management.
type Service struct {
	repo        Repository
	invalidator CacheInvalidator
	logger      *slog.Logger
}

// NewService constructs a new tag [Service].
func NewService(repo Repository, invalidator CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger.With(slog.String("component", "tag_service")),
	}
}

// ListTags returns all tags with page counts.
func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return service.repo.List(context)
}

// CreateTag validates the name, derives the slug, and persists the node.
func (service *Service) CreateTag(ctx context.Context, name string) (*Tag, error) {
	v := &validate.Validator{}
	if err := v.Required("name", name).MaxLen("name", name, 100).Err(); err != nil {
		return nil, err
	}

	tag := &Tag{
		ID:   uuidv7.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	service.invalidate(ctx, cache.TagFanout(tag.Slug))
	return tag, nil
}

// UpdateTag renames a tag, re-deriving its slug.
func (service *Service) UpdateTag(ctx context.Context, id, name string) (*Tag, error) {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if err := v.Required("name", name).MaxLen("name", name, 100).Err(); err != nil {
		return nil, err
	}

	// Purge the listing path on both sides of a rename.
	previousSlug := existing.Slug
	existing.Name = name
	existing.Slug = slug.From(name)

	if err := service.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	service.invalidate(ctx, cache.TagFanout(previousSlug, existing.Slug))
	return existing, nil
}

// DeleteTag removes a tag once zero pages reference it; otherwise 409.
func (service *Service) DeleteTag(ctx context.Context, id string) error {
	existing, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := service.repo.CountPages(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Tag is still referenced by pages and cannot be deleted")
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.invalidate(ctx, cache.TagFanout(existing.Slug))

	service.logger.InfoContext(ctx, "tag_deleted",
		slog.String("tag_id", id),
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
