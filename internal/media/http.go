// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/taibuivan/playbill/internal/platform/validate"
)

// # Multipart Limits

const (
	// formOverhead is the allowance for non-file fields in a poster form.
	formOverhead = 1 << 20

	// formMemory is kept in memory by ParseMultipartForm; the rest spills to disk.
	formMemory = 1 << 20
)

/*
ParseForm parses a multipart poster form with a bounded body.

Description: A body larger than one poster plus form overhead fails with the
"too large" validation message instead of a generic decode error.

Returns:
  - error: VALIDATION_ERROR when the body is too large or malformed
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadBytes+formOverhead)

	if err := request.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validate.FieldError(FieldPoster, MsgFileTooLarge)
		}
		return validate.FieldError(FieldPoster, "Malformed form data")
	}
	return nil
}

/*
ReadPosterInput builds a [PosterInput] from a parsed multipart form.

Description: A request carrying both a non-blank poster_url and a poster file
is rejected; the form only ever submits one of them.

Parameters:
  - request: *http.Request (ParseForm must have succeeded)

Returns:
  - *PosterInput: URL or validated file
  - error: VALIDATION_ERROR on the poster fields
*/
func ReadPosterInput(request *http.Request) (*PosterInput, error) {
	input := &PosterInput{}
	typedURL := strings.TrimSpace(request.FormValue(FieldPosterURL))

	upload, header, err := request.FormFile(FieldPoster)
	if errors.Is(err, http.ErrMissingFile) {
		input.TypeURL(typedURL)
		return input, nil
	}
	if err != nil {
		return nil, validate.FieldError(FieldPoster, "Unreadable poster upload")
	}
	defer upload.Close()

	if typedURL != "" {
		return nil, validate.FieldError(FieldPosterURL, MsgBothSources)
	}

	file, err := readFile(upload, header)
	if err != nil {
		return nil, validate.FieldError(FieldPoster, "Unreadable poster upload")
	}

	if err := input.SelectFile(file); err != nil {
		return nil, err
	}
	return input, nil
}

// readFile reads at most MaxUploadBytes+1 bytes so the size rule can fire
// without buffering arbitrarily large parts.
func readFile(upload multipart.File, header *multipart.FileHeader) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(upload, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}
