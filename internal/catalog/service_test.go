// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/memstore"
	"github.com/taibuivan/playbill/pkg/pointer"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeUploader struct {
	titles []string
	err    error
}

func (u *fakeUploader) UploadPoster(_ context.Context, title string, _ *media.File) (string, error) {
	u.titles = append(u.titles, title)
	if u.err != nil {
		return "", u.err
	}
	return "/media/posters/uploaded.png", nil
}

func newService(t *testing.T) (*catalog.Service, *memstore.Store, *fakeUploader) {
	t.Helper()
	store := memstore.New()
	uploader := &fakeUploader{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return catalog.NewService(store.Plays(), uploader, logger), store, uploader
}

func posterFile(t *testing.T) *media.PosterInput {
	t.Helper()
	data := make([]byte, 512)
	copy(data, pngMagic)

	poster := &media.PosterInput{}
	require.NoError(t, poster.SelectFile(&media.File{Name: "p.png", ContentType: "image/png", Size: 512, Data: data}))
	return poster
}

func posterURL(url string) *media.PosterInput {
	poster := &media.PosterInput{}
	poster.TypeURL(url)
	return poster
}

func fieldMessage(err error) string {
	appErr := apperr.As(err)
	if appErr == nil || len(appErr.Details) == 0 {
		return ""
	}
	return appErr.Details[0].Message
}

/*
TestCreate_Validation rejects bad input before any upload or insert.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   catalog.CreateInput
		poster  *media.PosterInput
		wantMsg string
	}{
		{"blank_title", catalog.CreateInput{Title: "   "}, nil, "Title is required"},
		{"year_zero", catalog.CreateInput{Title: "Hamlet", Year: pointer.To(0)}, nil, ""},
		{"year_too_large", catalog.CreateInput{Title: "Hamlet", Year: pointer.To(10000)}, nil, ""},
		{"bad_poster_url", catalog.CreateInput{Title: "Hamlet"}, posterURL("not a url"), ""},
		{"blank_title_with_file", catalog.CreateInput{}, posterFile(t), "Title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store, uploader := newService(t)

			_, err := service.Create(context.Background(), tt.input, tt.poster)
			require.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, fieldMessage(err))
			}

			assert.Empty(t, uploader.titles)
			plays, err := store.Plays().ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, plays)
		})
	}
}

/*
TestCreate_PosterSources stores the typed URL or the uploaded file's URL.
*/
func TestCreate_PosterSources(t *testing.T) {
	service, _, uploader := newService(t)

	byURL, err := service.Create(context.Background(), catalog.CreateInput{
		Title:      "  Hamlet ",
		Playwright: "William Shakespeare",
		Year:       pointer.To(1603),
		Genre:      "  ",
	}, posterURL("https://img.example/hamlet.jpg"))
	require.NoError(t, err)

	assert.Equal(t, "Hamlet", byURL.Title)
	assert.Equal(t, "https://img.example/hamlet.jpg", pointer.Val(byURL.PosterURL))
	assert.Nil(t, byURL.Genre)
	assert.Empty(t, uploader.titles)

	byFile, err := service.Create(context.Background(), catalog.CreateInput{Title: "Macbeth"}, posterFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/media/posters/uploaded.png", pointer.Val(byFile.PosterURL))
	assert.Equal(t, []string{"Macbeth"}, uploader.titles)

	none, err := service.Create(context.Background(), catalog.CreateInput{Title: "Lear"}, nil)
	require.NoError(t, err)
	assert.Nil(t, none.PosterURL)
}

/*
TestCreate_UploadFailure leaves no play behind.
*/
func TestCreate_UploadFailure(t *testing.T) {
	service, store, uploader := newService(t)
	uploader.err = apperr.UpstreamFailure(media.MsgUploadFailed, errors.New("disk full"))

	_, err := service.Create(context.Background(), catalog.CreateInput{Title: "Hamlet"}, posterFile(t))
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))

	plays, err := store.Plays().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plays)
}

/*
TestSearch trims the query and caps the listing.
*/
func TestSearch(t *testing.T) {
	service, _, _ := newService(t)
	for i := range catalog.SearchLimit + 5 {
		_, err := service.Create(context.Background(), catalog.CreateInput{Title: fmt.Sprintf("Act %03d", i)}, nil)
		require.NoError(t, err)
	}
	_, err := service.Create(context.Background(), catalog.CreateInput{Title: "100% Hamlet"}, nil)
	require.NoError(t, err)

	plays, err := service.Search(context.Background(), "  act ")
	require.NoError(t, err)
	assert.Len(t, plays, catalog.SearchLimit)
	assert.Equal(t, "Act 000", plays[0].Title)

	plays, err = service.Search(context.Background(), "100%")
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "100% Hamlet", plays[0].Title)
}

/*
TestShelves caps the home page listings.
*/
func TestShelves(t *testing.T) {
	service, _, _ := newService(t)
	for i := range 20 {
		_, err := service.Create(context.Background(), catalog.CreateInput{Title: fmt.Sprintf("Play %02d", i)}, nil)
		require.NoError(t, err)
	}

	recent, err := service.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, catalog.RecentLimit)
	assert.Equal(t, "Play 19", recent[0].Title)

	popular, err := service.ListPopular(context.Background())
	require.NoError(t, err)
	assert.Len(t, popular, catalog.PopularLimit)

	all, err := service.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

/*
TestDelete removes exactly one play.
*/
func TestDelete(t *testing.T) {
	service, _, _ := newService(t)
	hamlet, err := service.Create(context.Background(), catalog.CreateInput{Title: "Hamlet"}, nil)
	require.NoError(t, err)
	_, err = service.Create(context.Background(), catalog.CreateInput{Title: "Macbeth"}, nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), hamlet.ID))

	_, err = service.Get(context.Background(), hamlet.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	err = service.Delete(context.Background(), hamlet.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	all, err := service.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Macbeth", all[0].Title)
}
