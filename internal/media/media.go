// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media accepts poster images and hands them to the media store.

Core Responsibility:

  - Validation: image content types only and a hard 5 MB ceiling, checked
    before the store is ever called.
  - Poster input: the admin form's "URL or file" choice as an explicit state
    machine ([PosterInput]).
  - Storage: a [Store] that writes a blob under a generated path and returns
    its public URL.
*/
package media

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/validate"
)

// # Upload Constraints

// MaxUploadBytes is the exclusive upper bound for a poster file (5 MB).
const MaxUploadBytes = 5 << 20

// FieldPoster is the form field carrying the poster file.
const FieldPoster = "poster"

// FieldPosterURL is the form field carrying a pasted poster URL.
const FieldPosterURL = "poster_url"

// allowedTypes maps accepted image types to the extension used in stored paths.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// AcceptedTypes lists the poster content types, sorted, for form hints.
func AcceptedTypes() []string {
	types := make([]string, 0, len(allowedTypes))
	for contentType := range allowedTypes {
		types = append(types, contentType)
	}
	slices.Sort(types)
	return types
}

// # Messages

const (
	MsgFileEmpty    = "Poster file is empty"
	MsgFileTooLarge = "Image must be smaller than 5 MB"
	MsgNotAnImage   = "Poster must be an image file"
	MsgBothSources  = "Choose either a poster URL or a file, not both"
	MsgUploadFailed = "Failed to upload poster"
)

// # Domain Entities

// File is an uploaded poster held in memory.
//
// Size is the size reported by the client; Data holds at most MaxUploadBytes+1
// bytes so oversized uploads are detected without reading them in full.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

/*
Validate checks a poster file against the upload constraints.

Parameters:
  - file: *File

Returns:
  - error: VALIDATION_ERROR on the poster field naming the violated rule
*/
func Validate(file *File) error {
	if file == nil || len(file.Data) == 0 {
		return validate.FieldError(FieldPoster, MsgFileEmpty)
	}

	// Reject on either the declared size or what was actually read.
	if file.Size >= MaxUploadBytes || len(file.Data) >= MaxUploadBytes {
		return validate.FieldError(FieldPoster, MsgFileTooLarge)
	}

	declared := baseType(file.ContentType)
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return validate.FieldError(FieldPoster, MsgNotAnImage)
	}

	// The declared type is client-controlled; the sniffed type decides.
	if _, ok := allowedTypes[baseType(mimetype.Detect(file.Data).String())]; !ok {
		return validate.FieldError(FieldPoster, MsgNotAnImage)
	}

	return nil
}

// DetectedType returns the sniffed content type and the extension used for storage.
func DetectedType(file *File) (contentType, extension string, err error) {
	contentType = baseType(mimetype.Detect(file.Data).String())
	extension, ok := allowedTypes[contentType]
	if !ok {
		return "", "", apperr.ValidationError(MsgNotAnImage, apperr.FieldError{Field: FieldPoster, Message: MsgNotAnImage})
	}
	return contentType, extension, nil
}

// baseType strips parameters ("image/png; charset=binary" -> "image/png").
func baseType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// # Poster Input

// PosterState is the state of the admin form's poster input.
type PosterState int

const (
	// PosterEmpty has no file; the free-text URL (possibly blank) applies.
	PosterEmpty PosterState = iota

	// PosterHasFile has a validated file; any typed URL was cleared.
	PosterHasFile
)

func (s PosterState) String() string {
	switch s {
	case PosterHasFile:
		return "has_file"
	default:
		return "empty"
	}
}

// PosterInput is the mutually exclusive "pasted URL or uploaded file" choice.
//
// Selecting a file clears the URL, typing a URL clears the file. An invalid
// file leaves the input exactly as it was.
type PosterInput struct {
	state PosterState
	url   string
	file  *File
}

// State reports the current state.
func (p *PosterInput) State() PosterState { return p.state }

// URL returns the free-text URL; always empty in [PosterHasFile].
func (p *PosterInput) URL() string { return p.url }

// File returns the selected file; always nil in [PosterEmpty].
func (p *PosterInput) File() *File { return p.file }

// TypeURL sets the free-text URL and drops any selected file.
func (p *PosterInput) TypeURL(url string) {
	p.state = PosterEmpty
	p.file = nil
	p.url = strings.TrimSpace(url)
}

/*
SelectFile validates file and, only if it passes, moves to [PosterHasFile].

Returns:
  - error: the validation failure; the input is unchanged in that case
*/
func (p *PosterInput) SelectFile(file *File) error {
	if err := Validate(file); err != nil {
		return err
	}
	p.state = PosterHasFile
	p.url = ""
	p.file = file
	return nil
}

// Clear returns the input to an empty URL with no file.
func (p *PosterInput) Clear() {
	*p = PosterInput{}
}

// GoString keeps file bytes out of debug output.
func (p *PosterInput) GoString() string {
	if p.file != nil {
		return fmt.Sprintf("PosterInput{state: %s, file: %q}", p.state, p.file.Name)
	}
	return fmt.Sprintf("PosterInput{state: %s, url: %q}", p.state, p.url)
}
