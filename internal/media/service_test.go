// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/platform/apperr"
)

type recordingStore struct {
	calls []string
	err   error
}

func (s *recordingStore) Put(_ context.Context, path, _ string, body io.Reader) (string, error) {
	s.calls = append(s.calls, path)
	if s.err != nil {
		return "", s.err
	}
	_, _ = io.Copy(io.Discard, body)
	return "https://cdn.test/" + path, nil
}

/*
TestUploadPoster stores valid posters under a slugged, unique path.
*/
func TestUploadPoster(t *testing.T) {
	store := &recordingStore{}
	service := media.NewService(store)

	first, err := service.UploadPoster(context.Background(), "Hamlet, Prince of Denmark", pngFile(256))
	require.NoError(t, err)
	second, err := service.UploadPoster(context.Background(), "Hamlet, Prince of Denmark", pngFile(256))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "https://cdn.test/posters/hamlet-prince-of-denmark-"))
	assert.True(t, strings.HasSuffix(first, ".png"))
	assert.NotEqual(t, first, second)
}

/*
TestUploadPosterRejectsBeforeStore never calls the store for invalid files.
*/
func TestUploadPosterRejectsBeforeStore(t *testing.T) {
	store := &recordingStore{}
	service := media.NewService(store)

	_, err := service.UploadPoster(context.Background(), "Oversized", pngFile(media.MaxUploadBytes))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.UploadPoster(context.Background(), "Text", &media.File{ContentType: "text/plain", Size: 4, Data: []byte("text")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	assert.Empty(t, store.calls)
}

/*
TestUploadPosterStoreFailure reports store errors as an upstream failure.
*/
func TestUploadPosterStoreFailure(t *testing.T) {
	storeErr := errors.New("bucket unavailable")
	service := media.NewService(&recordingStore{err: storeErr})

	_, err := service.UploadPoster(context.Background(), "Medea", pngFile(64))
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
	assert.Equal(t, media.MsgUploadFailed, err.Error())
	assert.ErrorIs(t, err, storeErr)
}

/*
TestFilesystemStore writes objects below the base directory.
*/
func TestFilesystemStore(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewFilesystemStore(dir, "/media/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "posters/medea.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/posters/medea.png", url)

	content, err := os.ReadFile(filepath.Join(dir, "posters", "medea.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	for _, path := range []string{"../escape.png", "/abs.png", "", "posters/../../x.png"} {
		_, err := store.Put(context.Background(), path, "image/png", strings.NewReader("x"))
		assert.ErrorIs(t, err, media.ErrInvalidPath, path)
	}
}
