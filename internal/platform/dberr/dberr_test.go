// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/dberr"
)

/*
TestWrap maps driver errors onto the error taxonomy.
*/
func TestWrap(t *testing.T) {
	driverFailure := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"unknown", driverFailure, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(tt.err, "Play", "play_find")
			assert.True(t, apperr.HasCode(err, tt.wantCode))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Play", "play_find"))
	assert.ErrorIs(t, dberr.Wrap(driverFailure, "Play", "play_find"), driverFailure)
}
