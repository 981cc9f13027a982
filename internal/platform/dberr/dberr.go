// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates PostgreSQL driver errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/playbill/internal/platform/apperr"
)

// Wrap classifies a database error for the named resource.
//
//   - pgx.ErrNoRows and foreign key violations become NOT_FOUND (the row the
//     statement pointed at does not exist).
//   - unique violations become CONFLICT.
//   - anything else becomes INTERNAL_ERROR with the action kept in the cause.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource)
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.InvalidTextRepresentation:
			return apperr.NotFound(resource)
		}
	}

	return apperr.Internal(fmt.Errorf("postgres_%s_failed: %w", action, err))
}
