// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/metrics"
	"github.com/taibuivan/playbill/pkg/slug"
	"github.com/taibuivan/playbill/pkg/uuid"
)

// maxSlugLength keeps generated object names readable.
const maxSlugLength = 60

// Service validates posters and writes them to the media [Store].
type Service struct {
	store Store
}

// NewService constructs a media [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

/*
UploadPoster stores a validated poster under posters/<title-slug>-<uuid><ext>.

Description: The file is validated again here so no caller can reach the
store with an oversized or non-image blob.

Parameters:
  - context: context.Context
  - title: string (used for a readable object name)
  - file: *File

Returns:
  - string: Public URL of the stored poster
  - error: VALIDATION_ERROR for rejected files, UPSTREAM_FAILURE when the store fails
*/
func (service *Service) UploadPoster(context context.Context, title string, file *File) (string, error) {
	logger := ctxutil.GetLogger(context)

	if err := Validate(file); err != nil {
		metrics.RecordUpload(metrics.OutcomeRejected)
		return "", err
	}

	contentType, extension, err := DetectedType(file)
	if err != nil {
		metrics.RecordUpload(metrics.OutcomeRejected)
		return "", err
	}

	objectPath := fmt.Sprintf("posters/%s-%s%s", posterSlug(title), uuid.New(), extension)

	publicURL, err := service.store.Put(context, objectPath, contentType, bytes.NewReader(file.Data))
	if err != nil {
		metrics.RecordUpload(metrics.OutcomeFailed)
		return "", apperr.UpstreamFailure(MsgUploadFailed, fmt.Errorf("media_put_failed: %w", err))
	}

	metrics.RecordUpload(metrics.OutcomeStored)
	logger.Info("poster_uploaded",
		slog.String("path", objectPath),
		slog.String("content_type", contentType),
		slog.Int("bytes", len(file.Data)),
	)

	return publicURL, nil
}

func posterSlug(title string) string {
	name := slug.Truncated(title, maxSlugLength)
	if name == "" {
		return "poster"
	}
	return name
}
