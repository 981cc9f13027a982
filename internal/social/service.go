// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/platform/metrics"
	"github.com/taibuivan/playbill/internal/platform/validate"
	"github.com/taibuivan/playbill/pkg/uuid"
)

type Service struct {
	relations RelationRepository
	reviews   ReviewRepository
	logger    *slog.Logger
}

func NewService(relations RelationRepository, reviews ReviewRepository, logger *slog.Logger) *Service {
	return &Service{
		relations: relations,
		reviews:   reviews,
		logger:    logger,
	}
}

// # Lists

/*
Toggle flips the caller's membership of playID on list.

Description: The current membership is read, then the row is deleted if
present or inserted if absent. The confirmation is built only after the
store call succeeded.

Parameters:
  - context: context.Context
  - list: List
  - userID: string
  - playID: string

Returns:
  - *ToggleResult: Resulting state and confirmation message
  - error: NOT_FOUND for unknown plays, or store failures
*/
func (service *Service) Toggle(context context.Context, list List, userID, playID string) (*ToggleResult, error) {
	present, err := service.relations.Exists(context, list, userID, playID)
	if err != nil {
		return nil, err
	}

	if present {
		err = service.relations.Remove(context, list, userID, playID)
	} else {
		err = service.relations.Add(context, list, userID, playID)
	}
	if err != nil {
		return nil, err
	}

	active := !present
	metrics.RecordToggle(string(list), active)
	service.logger.Debug("relation_toggled",
		slog.String("list", string(list)),
		slog.String("play_id", playID),
		slog.Bool("active", active),
	)

	return &ToggleResult{Active: active, Message: toggleMessage(list, active)}, nil
}

// Membership reports whether playID is on the caller's favorites and watchlist.
func (service *Service) Membership(context context.Context, userID, playID string) (Membership, error) {
	favorite, err := service.relations.Exists(context, ListFavorites, userID, playID)
	if err != nil {
		return Membership{}, err
	}

	watchlist, err := service.relations.Exists(context, ListWatchlist, userID, playID)
	if err != nil {
		return Membership{}, err
	}

	return Membership{Favorite: favorite, Watchlist: watchlist}, nil
}

// ListPlays returns the plays on one of the caller's lists.
func (service *Service) ListPlays(context context.Context, list List, userID string) ([]*catalog.Play, error) {
	return service.relations.ListPlays(context, list, userID)
}

// # Reviews

/*
SubmitReview creates or updates the caller's review of playID.

Description: The rating is checked before any store call, so a rating of 0
never reaches the store. On success the play's reviews are refetched so the
caller sees the list as stored.

Parameters:
  - context: context.Context
  - userID: string
  - playID: string
  - input: ReviewInput

Returns:
  - []*Review: The play's reviews after the upsert, newest first
  - error: VALIDATION_ERROR or store failures
*/
func (service *Service) SubmitReview(context context.Context, userID, playID string, input ReviewInput) ([]*Review, error) {
	content := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.
		Range(FieldRating, input.Rating, MinRating, MaxRating).
		MaxLen(FieldContent, content, MaxReviewLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		ID:     uuid.New(),
		UserID: userID,
		PlayID: playID,
		Rating: input.Rating,
	}
	if content != "" {
		review.Content = &content
	}

	if err := service.reviews.Upsert(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_saved",
		slog.String("play_id", playID),
		slog.Int("rating", input.Rating),
	)

	return service.reviews.ListByPlay(context, playID)
}

// DeleteReview removes the caller's review and returns the play's remaining reviews.
func (service *Service) DeleteReview(context context.Context, userID, playID string) ([]*Review, error) {
	if err := service.reviews.Delete(context, userID, playID); err != nil {
		return nil, err
	}

	service.logger.Info("review_deleted", slog.String("play_id", playID))
	return service.reviews.ListByPlay(context, playID)
}

func (service *Service) ReviewsForPlay(context context.Context, playID string) ([]*Review, error) {
	return service.reviews.ListByPlay(context, playID)
}

func (service *Service) ReviewsByUser(context context.Context, userID string) ([]*Review, error) {
	return service.reviews.ListByUser(context, userID)
}

// RecentReviews returns the newest [RecentReviewsMax] reviews system-wide.
func (service *Service) RecentReviews(context context.Context) ([]*Review, error) {
	return service.reviews.ListRecent(context, RecentReviewsMax)
}

func (service *Service) Summary(context context.Context, playID string) (Summary, error) {
	return service.reviews.Summary(context, playID)
}
