// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/hoarder/internal/platform/apperr"
)

// NotFound builds the [apperr.AppError] for a missing row of the given
// kind ("Medium", "Source", "Tag", "TagType", ...).
func NotFound(kind, id string) error {
	return apperr.NotFound(kind, id)
}

// Wrap inspects a database error and wraps it into a meaningful
// [apperr.AppError]. It hides internal database details from the client
// while classifying the error into the repository's closed error
// vocabulary: NotFound, Conflict, or Repository.
//
// kind and id identify the entity the caller was trying to reach, used
// only to build a useful NotFound message; pass empty strings when the
// action is not about a single entity (e.g. a bulk write).
func Wrap(err error, kind, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(kind, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("unique constraint violated: " + pgErr.ConstraintName)
	}

	return apperr.Internal(err)
}
