// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned for paths that would escape the base directory.
var ErrInvalidPath = errors.New("media: invalid object path")

// FilesystemStore writes objects below a base directory that the API serves
// under a public base URL.
type FilesystemStore struct {
	baseDir string
	baseURL string
}

// NewFilesystemStore ensures baseDir exists and returns a store publishing
// objects under baseURL (e.g. "/media" or "https://cdn.example.com/media").
func NewFilesystemStore(baseDir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("media: failed to create media dir: %w", err)
	}
	return &FilesystemStore{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the base directory, for serving and readiness checks.
func (store *FilesystemStore) Dir() string {
	return store.baseDir
}

/*
Put writes body to a temporary file and renames it into place, so readers
never observe a partially written poster.

Returns:
  - string: baseURL + "/" + objectPath
  - error: ErrInvalidPath or filesystem failures
*/
func (store *FilesystemStore) Put(context context.Context, objectPath, _ string, body io.Reader) (string, error) {
	cleaned := path.Clean("/" + objectPath)[1:]
	if cleaned == "" || cleaned != objectPath {
		return "", ErrInvalidPath
	}

	fullPath := filepath.Join(store.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("media: failed to create directory: %w", err)
	}

	if err := context.Err(); err != nil {
		return "", err
	}

	temp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("media: failed to create temp file: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := io.Copy(temp, body); err != nil {
		_ = temp.Close()
		return "", fmt.Errorf("media: failed to write object: %w", err)
	}

	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("media: failed to flush object: %w", err)
	}

	if err := os.Chmod(temp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("media: failed to set permissions: %w", err)
	}

	if err := os.Rename(temp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("media: failed to publish object: %w", err)
	}

	return store.baseURL + "/" + cleaned, nil
}
