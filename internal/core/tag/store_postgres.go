// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardakose/boyama/internal/platform/database/schema"
	"github.com/ardakose/boyama/internal/platform/dberr"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed tag store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (repository *repository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
			(SELECT COUNT(*) FROM %s pt WHERE pt.%s = t.%s) AS page_count
		FROM %s t
		ORDER BY t.%s ASC
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
		schema.PageTag.Table, schema.PageTag.TagID, schema.CoreTag.ID,
		schema.CoreTag.Table,
		schema.CoreTag.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag := &Tag{}
		err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.UpdatedAt, &tag.PageCount)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (repository *repository) FindByID(context context.Context, id string) (*Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
			(SELECT COUNT(*) FROM %s pt WHERE pt.%s = t.%s) AS page_count
		FROM %s t
		WHERE t.%s = $1
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
		schema.PageTag.Table, schema.PageTag.TagID, schema.CoreTag.ID,
		schema.CoreTag.Table,
		schema.CoreTag.ID,
	)

	tag := &Tag{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.UpdatedAt, &tag.PageCount)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	return tag, nil
}

func (repository *repository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.CoreTag.Table,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, tag.ID, tag.Name, tag.Slug).
		Scan(&tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}
	return nil
}

func (repository *repository) Update(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreTag.Table,
		schema.CoreTag.Name, schema.CoreTag.Slug, schema.CoreTag.UpdatedAt,
		schema.CoreTag.ID,
		schema.CoreTag.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, tag.ID, tag.Name, tag.Slug).Scan(&tag.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}
	return nil
}

func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreTag.Table, schema.CoreTag.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Tag")
	}
	return nil
}

func (repository *repository) CountPages(context context.Context, id string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1",
		schema.PageTag.Table, schema.PageTag.TagID)

	var count int64
	if err := repository.pool.QueryRow(context, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count tag pages: %w", err)
	}
	return count, nil
}
