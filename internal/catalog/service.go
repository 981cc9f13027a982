// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/platform/validate"
	"github.com/taibuivan/playbill/pkg/uuid"
)

// PosterUploader stores an uploaded poster and returns its public URL.
type PosterUploader interface {
	UploadPoster(context context.Context, title string, file *media.File) (string, error)
}

type Service struct {
	repo     Repository
	uploader PosterUploader
	logger   *slog.Logger
}

func NewService(repo Repository, uploader PosterUploader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

/*
Search returns plays whose title contains query, case-insensitively.

Parameters:
  - context: context.Context
  - query: string (trimmed; blank lists the whole catalog)

Returns:
  - []*Play: Sorted by title, at most [SearchLimit]
  - error: Store failures
*/
func (service *Service) Search(context context.Context, query string) ([]*Play, error) {
	return service.repo.Search(context, strings.TrimSpace(query), SearchLimit)
}

// ListRecent returns the [RecentLimit] most recently created plays.
func (service *Service) ListRecent(context context.Context) ([]*Play, error) {
	return service.repo.ListRecent(context, RecentLimit)
}

// ListPopular returns up to [PopularLimit] plays.
//
// There is no popularity signal yet; this is an unranked sample.
func (service *Service) ListPopular(context context.Context) ([]*Play, error) {
	return service.repo.ListSample(context, PopularLimit)
}

// ListAll returns the full catalog, newest first.
func (service *Service) ListAll(context context.Context) ([]*Play, error) {
	return service.repo.ListAll(context)
}

func (service *Service) Get(context context.Context, id string) (*Play, error) {
	return service.repo.FindByID(context, id)
}

/*
Create validates the form, uploads a selected poster file, then inserts the play.

Description: Every rule is checked before the media store or catalog store is
touched. An upload failure aborts the create, so no play row references a
poster that was never stored.

Parameters:
  - context: context.Context
  - input: CreateInput
  - poster: *media.PosterInput (nil means no poster)

Returns:
  - *Play: The created play
  - error: VALIDATION_ERROR, UPSTREAM_FAILURE (upload) or store failures
*/
func (service *Service) Create(context context.Context, input CreateInput, poster *media.PosterInput) (*Play, error) {
	if poster == nil {
		poster = &media.PosterInput{}
	}

	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.
		Custom(FieldTitle, title == "", "Title is required").
		MaxLen(FieldTitle, title, maxTitleLength).
		MaxLen(FieldPlaywright, strings.TrimSpace(input.Playwright), maxPlaywrightLength).
		MaxLen(FieldGenre, strings.TrimSpace(input.Genre), maxGenreLength).
		MaxLen(FieldDescription, strings.TrimSpace(input.Description), maxDescriptionLength).
		OptionalRange(FieldYear, input.Year, 1, maxYear).
		URL(FieldPosterURL, poster.URL())

	if err := validator.Err(); err != nil {
		return nil, err
	}

	posterURL := poster.URL()
	if poster.State() == media.PosterHasFile {
		uploaded, err := service.uploader.UploadPoster(context, title, poster.File())
		if err != nil {
			return nil, err
		}
		posterURL = uploaded
	}

	play := &Play{
		ID:          uuid.New(),
		Title:       title,
		Playwright:  optional(input.Playwright),
		Year:        input.Year,
		Genre:       optional(input.Genre),
		Description: optional(input.Description),
		PosterURL:   optional(posterURL),
	}

	if err := service.repo.Create(context, play); err != nil {
		return nil, err
	}

	service.logger.Info("play_created",
		slog.String("play_id", play.ID),
		slog.String("title", play.Title),
		slog.Bool("uploaded_poster", poster.State() == media.PosterHasFile),
	)
	return play, nil
}

// Delete removes exactly one play; reviews and list rows go with it.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("play_deleted", slog.String("play_id", id))
	return nil
}

// optional trims value and maps blank to nil.
func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
