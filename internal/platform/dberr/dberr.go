// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why classify here?
//
// The service layer must surface a lost slug race as a SLUG_IN_USE conflict
// rather than a generic 500. Two concurrent ingestions can both pass the
// pre-write existence probe; the unique index on pages.slug rejects the
// loser, and that rejection arrives as SQLSTATE 23505.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ardakose/boyama/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes this package cares about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The resource name is used for NOT_FOUND messages (e.g. "Page", "Category").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations carry a SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			// The slug unique index is the only user-reachable unique
			// constraint; anything else is a programming error.
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return apperr.SlugInUse("")
			}
			return apperr.Conflict(resource + " already exists")
		case codeForeignKeyViolation:
			return apperr.Conflict(resource + " is still referenced")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
