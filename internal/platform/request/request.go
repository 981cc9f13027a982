// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the common body decoding
patterns so handlers stay uniform.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/platform/validate"
)

// maxJSONBody bounds JSON request bodies. Poster files arrive as multipart.
const maxJSONBody = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to bound the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxJSONBody)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named UUID URL parameter, rejecting malformed values.

Returns:
  - string: The lower-cased identifier
  - error: VALIDATION_ERROR when the parameter is not a UUID
*/
func ID(request *http.Request, name string) (string, error) {
	value := strings.ToLower(chi.URLParam(request, name))
	if err := (&validate.Validator{}).UUID(name, value).Err(); err != nil {
		return "", err
	}
	return value, nil
}

// Query returns a trimmed query-string value.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
Claims extracts the signed-in identity from the request context.

Returns nil if the request is anonymous.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is signed in and returns the claims.

Returns:
  - *sec.AuthClaims: The signed-in identity
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Sign in required")
	}
	return claims, nil
}

/*
RequiredUserID returns the user id of the signed-in identity.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if anonymous
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
