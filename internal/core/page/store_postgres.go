// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package page provides the PostgreSQL implementation for the catalogue's data access.

It utilizes advanced Postgres features to deliver a high-performance discovery experience:
  - Full-Text Search: Uses 'websearch_to_tsquery' with the turkish configuration and GIN indexes.
  - JSON Aggregation: Retrieves taxonomy links (categories, tags) in a single round-trip.
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - ACID Transactions: Ensures atomicity when writing pages and their junction tables.
*/
package page

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ardakose/boyama/internal/platform/database/schema"
	"github.com/ardakose/boyama/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed page store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// pageColumns returns the prefixed scan column list shared by every query.
func pageColumns(prefix string) string {
	cols := schema.CorePage.Columns()
	prefixed := make([]string, len(cols))
	for i, col := range cols {
		prefixed[i] = prefix + "." + col
	}
	return strings.Join(prefixed, ", ")
}

// taxonomySubqueries returns the json_agg sub-selects hydrating category
// and tag links without an N+1 round-trip.
func taxonomySubqueries() string {
	return fmt.Sprintf(`
		COALESCE((
			SELECT json_agg(json_build_object('id', cat.%s, 'name', cat.%s, 'slug', cat.%s))
			FROM %s cat
			JOIN %s pc ON cat.%s = pc.%s
			WHERE pc.%s = p.%s
		), '[]') AS categories,
		COALESCE((
			SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s))
			FROM %s t
			JOIN %s pt ON t.%s = pt.%s
			WHERE pt.%s = p.%s
		), '[]') AS tags`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.Table,
		schema.PageCategory.Table, schema.CoreCategory.ID, schema.PageCategory.CategoryID,
		schema.PageCategory.PageID, schema.CorePage.ID,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Table,
		schema.PageTag.Table, schema.CoreTag.ID, schema.PageTag.TagID,
		schema.PageTag.PageID, schema.CorePage.ID,
	)
}

// scanPage maps one result row (page columns + categories + tags JSON)
// into a Page.
func scanPage(row pgx.Row) (*Page, error) {
	page := &Page{}
	var categoriesJSON, tagsJSON []byte

	dest := []any{
		&page.ID,
		&page.ParentID,
		&page.Title,
		&page.Slug,
		&page.Description,
		&page.Status,
		&page.AgeMin,
		&page.AgeMax,
		&page.PDFKey,
		&page.CoverKey,
		&page.ThumbKey,
		&page.Width,
		&page.Height,
		&page.FileSize,
		&page.ViewCount,
		&page.DownloadCount,
		&page.CreatedAt,
		&page.UpdatedAt,
		&categoriesJSON,
		&tagsJSON,
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categoriesJSON, &page.Categories); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal categories: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &page.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}
	return page, nil
}

// # Discovery Queries

/*
Search returns a filtered, paginated slice of pages and the total count.

Description: Builds the WHERE clause dynamically from the filter. The total
count rides along via COUNT(*) OVER(), so the predicate is shared with the
result query by construction. Text queries rank with ts_rank on the turkish
text-search configuration, recency breaking ties; without a text query the
ordering is pure recency.
*/
func (repository *repository) Search(context context.Context, filter Filter, limit, offset int) ([]*Page, int, error) {
	query, args := buildSearchQuery(filter, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to search pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	var totalCount int

	for rows.Next() {
		page, err := scanPageFromRows(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}

	return pages, totalCount, nil
}

// buildSearchQuery assembles the discovery SQL and its bound arguments from
// the filter. It is pure so the predicate shape (visibility, taxonomy,
// age-window NULL handling, ranking) can be asserted without a database.
func buildSearchQuery(filter Filter, limit, offset int) (string, []any) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count,
			%s
		FROM %s p
		WHERE 1=1
	`, pageColumns("p"), taxonomySubqueries(), schema.CorePage.Table))

	// Visibility: the public surface only ever sees published pages.
	if !filter.IncludeDrafts {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = '%s'", schema.CorePage.Status, StatusPublished))
	}

	if filter.TopLevelOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s IS NULL", schema.CorePage.ParentID))
	}

	// Full-text query (turkish dictionary)
	textArgID := 0
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s @@ websearch_to_tsquery('turkish', $%d)", schema.CorePage.SearchVector, argID))
		args = append(args, filter.Query)
		textArgID = argID
		argID++
	}

	// Category slug filtering
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s pc
			JOIN %s cat ON cat.%s = pc.%s
			WHERE pc.%s = p.%s AND cat.%s = $%d
		)`,
			schema.PageCategory.Table,
			schema.CoreCategory.Table, schema.CoreCategory.ID, schema.PageCategory.CategoryID,
			schema.PageCategory.PageID, schema.CorePage.ID,
			schema.CoreCategory.Slug, argID,
		))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Tag slug filtering
	if filter.TagSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s pt
			JOIN %s t ON t.%s = pt.%s
			WHERE pt.%s = p.%s AND t.%s = $%d
		)`,
			schema.PageTag.Table,
			schema.CoreTag.Table, schema.CoreTag.ID, schema.PageTag.TagID,
			schema.PageTag.PageID, schema.CorePage.ID,
			schema.CoreTag.Slug, argID,
		))
		args = append(args, filter.TagSlug)
		argID++
	}

	// Age compatibility: unset bounds are unbounded, not exclusionary.
	if filter.Age != nil {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (p.%s IS NULL OR p.%s <= $%d) AND (p.%s IS NULL OR p.%s >= $%d)",
			schema.CorePage.AgeMin, schema.CorePage.AgeMin, argID,
			schema.CorePage.AgeMax, schema.CorePage.AgeMax, argID,
		))
		args = append(args, *filter.Age)
		argID++
	}

	// Ranked ordering when a text query is present, recency otherwise.
	if textArgID > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" ORDER BY ts_rank(p.%s, websearch_to_tsquery('turkish', $%d)) DESC, p.%s DESC",
			schema.CorePage.SearchVector, textArgID, schema.CorePage.CreatedAt,
		))
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.%s DESC", schema.CorePage.CreatedAt))
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	return queryBuilder.String(), args
}

// scanPageFromRows adapts pgx.Rows to the shared scan helper, capturing the
// window-function count.
func scanPageFromRows(rows pgx.Rows, totalCount *int) (*Page, error) {
	page := &Page{}
	var categoriesJSON, tagsJSON []byte

	err := rows.Scan(
		&page.ID,
		&page.ParentID,
		&page.Title,
		&page.Slug,
		&page.Description,
		&page.Status,
		&page.AgeMin,
		&page.AgeMax,
		&page.PDFKey,
		&page.CoverKey,
		&page.ThumbKey,
		&page.Width,
		&page.Height,
		&page.FileSize,
		&page.ViewCount,
		&page.DownloadCount,
		&page.CreatedAt,
		&page.UpdatedAt,
		totalCount,
		&categoriesJSON,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categoriesJSON, &page.Categories); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal categories: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &page.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}
	return page, nil
}

// FindByID retrieves a page record by its primary key, taxonomy included.
func (repository *repository) FindByID(context context.Context, id string) (*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s p
		WHERE p.%s = $1
	`, pageColumns("p"), taxonomySubqueries(), schema.CorePage.Table, schema.CorePage.ID)

	page, err := scanPage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Page")
	}
	return page, nil
}

// FindBySlug retrieves a page record by its unique URL slug.
func (repository *repository) FindBySlug(context context.Context, slug string) (*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s p
		WHERE p.%s = $1
	`, pageColumns("p"), taxonomySubqueries(), schema.CorePage.Table, schema.CorePage.Slug)

	page, err := scanPage(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Page")
	}
	return page, nil
}

// ListChildren returns a parent's child pages, oldest first.
func (repository *repository) ListChildren(context context.Context, parentID string) ([]*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s p
		WHERE p.%s = $1
		ORDER BY p.%s ASC
	`, pageColumns("p"), taxonomySubqueries(), schema.CorePage.Table,
		schema.CorePage.ParentID, schema.CorePage.CreatedAt)

	rows, err := repository.pool.Query(context, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list children: %w", err)
	}
	defer rows.Close()

	var children []*Page
	for rows.Next() {
		child := &Page{}
		var categoriesJSON, tagsJSON []byte

		err := rows.Scan(
			&child.ID,
			&child.ParentID,
			&child.Title,
			&child.Slug,
			&child.Description,
			&child.Status,
			&child.AgeMin,
			&child.AgeMax,
			&child.PDFKey,
			&child.CoverKey,
			&child.ThumbKey,
			&child.Width,
			&child.Height,
			&child.FileSize,
			&child.ViewCount,
			&child.DownloadCount,
			&child.CreatedAt,
			&child.UpdatedAt,
			&categoriesJSON,
			&tagsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan child page: %w", err)
		}

		if err := json.Unmarshal(categoriesJSON, &child.Categories); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal categories: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &child.Tags); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
		}
		children = append(children, child)
	}

	return children, nil
}

// # Slug Probes

// SlugExists reports whether any page currently holds the slug.
func (repository *repository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.CorePage.Table, schema.CorePage.Slug)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to probe slug: %w", err)
	}
	return exists, nil
}

// SlugExistsExcept reports whether a page other than excludeID holds the slug.
func (repository *repository) SlugExistsExcept(context context.Context, slug, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)",
		schema.CorePage.Table, schema.CorePage.Slug, schema.CorePage.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to probe slug: %w", err)
	}
	return exists, nil
}

// # Mutations

// Create persists a new page and its junction rows in one transaction.
//
// A concurrent slug allocation losing the race surfaces here as SQLSTATE
// 23505 on the unique slug index, classified by dberr as SLUG_IN_USE.
func (repository *repository) Create(context context.Context, page *Page) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	if err := insertPage(context, tx, page); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Page")
	}
	return nil
}

// CreateBatch persists several pages atomically.
func (repository *repository) CreateBatch(context context.Context, pages []*Page) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	for _, page := range pages {
		if err := insertPage(context, tx, page); err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Page")
	}
	return nil
}

// insertPage writes one page row and its junction rows inside tx.
func insertPage(context context.Context, tx pgx.Tx, page *Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s, %s
	`,
		schema.CorePage.Table,
		schema.CorePage.ID, schema.CorePage.ParentID,
		schema.CorePage.Title, schema.CorePage.Slug,
		schema.CorePage.Description, schema.CorePage.Status,
		schema.CorePage.AgeMin, schema.CorePage.AgeMax,
		schema.CorePage.PDFKey, schema.CorePage.CoverKey, schema.CorePage.ThumbKey,
		schema.CorePage.Width, schema.CorePage.Height, schema.CorePage.FileSize,
		schema.CorePage.CreatedAt, schema.CorePage.UpdatedAt,
	)

	err := tx.QueryRow(context, query,
		page.ID, page.ParentID,
		page.Title, page.Slug,
		page.Description, page.Status,
		page.AgeMin, page.AgeMax,
		page.PDFKey, page.CoverKey, page.ThumbKey,
		page.Width, page.Height, page.FileSize,
	).Scan(&page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Page")
	}

	return replaceJunctions(context, tx, page)
}

// Update persists changes to a page and replaces its junction rows.
func (repository *repository) Update(context context.Context, page *Page) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10,
			%s = $11, %s = $12, %s = $13,
			%s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CorePage.Table,
		schema.CorePage.Title, schema.CorePage.Slug,
		schema.CorePage.Description, schema.CorePage.Status,
		schema.CorePage.AgeMin, schema.CorePage.AgeMax,
		schema.CorePage.PDFKey, schema.CorePage.CoverKey, schema.CorePage.ThumbKey,
		schema.CorePage.Width, schema.CorePage.Height, schema.CorePage.FileSize,
		schema.CorePage.UpdatedAt,
		schema.CorePage.ID,
		schema.CorePage.UpdatedAt,
	)

	err = tx.QueryRow(context, query,
		page.ID,
		page.Title, page.Slug,
		page.Description, page.Status,
		page.AgeMin, page.AgeMax,
		page.PDFKey, page.CoverKey, page.ThumbKey,
		page.Width, page.Height, page.FileSize,
	).Scan(&page.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Page")
	}

	// Junction rows are replaced wholesale; the diff only matters to the
	// cache fan-out, which the service computes before calling Update.
	deleteCategories := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.PageCategory.Table, schema.PageCategory.PageID)
	if _, err := tx.Exec(context, deleteCategories, page.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear category links: %w", err)
	}

	deleteTags := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.PageTag.Table, schema.PageTag.PageID)
	if _, err := tx.Exec(context, deleteTags, page.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear tag links: %w", err)
	}

	if err := replaceJunctions(context, tx, page); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Page")
	}
	return nil
}

// replaceJunctions inserts the page's current taxonomy links inside tx.
func replaceJunctions(context context.Context, tx pgx.Tx, page *Page) error {
	insertCategory := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.PageCategory.Table, schema.PageCategory.PageID, schema.PageCategory.CategoryID)
	for _, category := range page.Categories {
		if _, err := tx.Exec(context, insertCategory, page.ID, category.ID); err != nil {
			return dberr.Wrap(err, "Category")
		}
	}

	insertTag := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.PageTag.Table, schema.PageTag.PageID, schema.PageTag.TagID)
	for _, tag := range page.Tags {
		if _, err := tx.Exec(context, insertTag, page.ID, tag.ID); err != nil {
			return dberr.Wrap(err, "Tag")
		}
	}

	return nil
}

// Delete removes a page row. Children and junction rows go with it via
// ON DELETE CASCADE; object storage cleanup is the service's job and
// happens strictly after this succeeds.
func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CorePage.Table, schema.CorePage.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Page")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Page")
	}
	return nil
}

// # Counters

// IncrementViewCount atomically bumps the view counter.
func (repository *repository) IncrementViewCount(context context.Context, id string) error {
	return repository.increment(context, id, schema.CorePage.ViewCount)
}

// IncrementDownloadCount atomically bumps the download counter.
func (repository *repository) IncrementDownloadCount(context context.Context, id string) error {
	return repository.increment(context, id, schema.CorePage.DownloadCount)
}

func (repository *repository) increment(context context.Context, id, column string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.CorePage.Table, column, column, schema.CorePage.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Page")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Page")
	}
	return nil
}
