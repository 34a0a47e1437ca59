// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardakose/boyama/internal/platform/database/schema"
	"github.com/ardakose/boyama/internal/platform/dberr"
)

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed category store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns all categories ordered by name, page counts included.
func (repository *repository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
			(SELECT COUNT(*) FROM %s pc WHERE pc.%s = c.%s) AS page_count
		FROM %s c
		ORDER BY c.%s ASC
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
		schema.PageCategory.Table, schema.PageCategory.CategoryID, schema.CoreCategory.ID,
		schema.CoreCategory.Table,
		schema.CoreCategory.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.PageCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// FindByID returns a single category with its page count.
func (repository *repository) FindByID(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
			(SELECT COUNT(*) FROM %s pc WHERE pc.%s = c.%s) AS page_count
		FROM %s c
		WHERE c.%s = $1
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
		schema.PageCategory.Table, schema.PageCategory.CategoryID, schema.CoreCategory.ID,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID,
	)

	category := &Category{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.PageCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return category, nil
}

// Create persists a new category.
func (repository *repository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.CreatedAt, schema.CoreCategory.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, category.ID, category.Name, category.Slug).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	return nil
}

// Update persists name/slug changes.
func (repository *repository) Update(context context.Context, category *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreCategory.Table,
		schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.UpdatedAt,
		schema.CoreCategory.ID,
		schema.CoreCategory.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, category.ID, category.Name, category.Slug).
		Scan(&category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	return nil
}

// Delete removes the category row.
func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreCategory.Table, schema.CoreCategory.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Category")
	}
	return nil
}

// CountPages returns the number of pages referencing the category.
func (repository *repository) CountPages(context context.Context, id string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1",
		schema.PageCategory.Table, schema.PageCategory.CategoryID)

	var count int64
	if err := repository.pool.QueryRow(context, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count category pages: %w", err)
	}
	return count, nil
}
