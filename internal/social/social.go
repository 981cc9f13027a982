// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package social owns the per-user relations to plays: favorites, watchlist and
reviews.

List membership is presence of a (user, play) row. A review is unique per
(user, play) and submitting again updates it in place.
*/
package social

import (
	"time"

	"github.com/taibuivan/playbill/internal/platform/apperr"
)

// List names a per-user play list.
type List string

const (
	ListFavorites List = "favorites"
	ListWatchlist List = "watchlist"
)

// ParseList validates a list name from a route or query.
func ParseList(value string) (List, error) {
	switch List(value) {
	case ListFavorites, ListWatchlist:
		return List(value), nil
	}
	return "", apperr.NotFound("List")
}

// Review is one user's rating of one play.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlayID    string    `json:"play_id"`
	Rating    int       `json:"rating"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Reviewer is joined on play and home listings.
	Reviewer *Reviewer `json:"reviewer,omitempty"`

	// Play is joined on profile and home listings.
	Play *PlayRef `json:"play,omitempty"`
}

// Reviewer is the public identity shown next to a review.
type Reviewer struct {
	UserID      string  `json:"user_id"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// PlayRef is the minimal play reference shown next to a review.
type PlayRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReviewInput is a rating submission.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// Summary is the rating rollup for one play.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Membership reports a user's list membership for one play.
type Membership struct {
	Favorite  bool `json:"favorite"`
	Watchlist bool `json:"watchlist"`
}

// ToggleResult is the list state after a toggle, with the confirmation text.
type ToggleResult struct {
	Active  bool   `json:"active"`
	Message string `json:"message"`
}

// # Constraints

const (
	MinRating        = 1
	MaxRating        = 5
	MaxReviewLength  = 5000
	RecentReviewsMax = 6
)

// Field names for validation
const (
	FieldRating  = "rating"
	FieldContent = "content"
)

// # Messages

const (
	MsgReviewSaved   = "Review saved"
	MsgReviewDeleted = "Review deleted"
)

// toggleMessage is the confirmation for the resulting state of list.
func toggleMessage(list List, active bool) string {
	switch {
	case list == ListFavorites && active:
		return "Added to favorites"
	case list == ListFavorites:
		return "Removed from favorites"
	case active:
		return "Added to watchlist"
	default:
		return "Removed from watchlist"
	}
}
