// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Hamlet", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
			assert.Equal(t, "This field is required", ae.Message)
		})
	}
}

/*
TestValidator_URL accepts only absolute http(s) URLs and ignores blanks.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://img.example.com/hamlet.jpg", true},
		{"http", "http://img.example.com/a.png", true},
		{"empty_is_absent", "", true},
		{"relative", "/posters/a.png", false},
		{"ftp_scheme", "ftp://example.com/a.png", false},
		{"no_host", "https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("poster_url", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OptionalRange skips nil and checks present values.
*/
func TestValidator_OptionalRange(t *testing.T) {
	year := 1603
	future := 12000

	assert.False(t, (&validate.Validator{}).OptionalRange("year", nil, 1, 9999).HasErrors())
	assert.False(t, (&validate.Validator{}).OptionalRange("year", &year, 1, 9999).HasErrors())
	assert.True(t, (&validate.Validator{}).OptionalRange("year", &future, 1, 9999).HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").
		MaxLen("bio", "abcdef", 3).
		Range("rating", 0, 1, 5).
		UUID("play_id", "not-a-uuid").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Validation failed", ae.Message)
	assert.Len(t, ae.Details, 4)
}

/*
TestFieldError builds a single-field error whose message is the field message.
*/
func TestFieldError(t *testing.T) {
	ae := validate.FieldError("poster", "File must be an image")
	assert.Equal(t, "File must be an image", ae.Message)
	assert.Equal(t, "poster", ae.Details[0].Field)
}
