// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

import (
	"context"

	"github.com/taibuivan/playbill/internal/catalog"
)

// RelationRepository is the favorites/watchlist store contract.
type RelationRepository interface {
	Exists(context context.Context, list List, userID, playID string) (bool, error)

	// Add inserts the membership row; adding an existing row is a no-op.
	Add(context context.Context, list List, userID, playID string) error

	// Remove deletes the membership row; removing a missing row is a no-op.
	Remove(context context.Context, list List, userID, playID string) error

	// ListPlays returns the plays on a user's list, most recently added first.
	ListPlays(context context.Context, list List, userID string) ([]*catalog.Play, error)
}

// ReviewRepository is the review store contract.
type ReviewRepository interface {

	/*
		Upsert inserts the review or updates the existing one for the same
		(user, play) pair.

		Parameters:
		  - context: context.Context
		  - review: *Review (ID is used only when a new row is inserted)

		Returns:
		  - error: NOT_FOUND for an unknown play, or store failures
	*/
	Upsert(context context.Context, review *Review) error

	// Delete removes the caller's review; NOT_FOUND when there was none.
	Delete(context context.Context, userID, playID string) error

	// ListByPlay returns a play's reviews with reviewer identity, newest first.
	ListByPlay(context context.Context, playID string) ([]*Review, error)

	// ListByUser returns a user's reviews with play title, newest first.
	ListByUser(context context.Context, userID string) ([]*Review, error)

	// ListRecent returns the newest reviews system-wide with reviewer and play.
	ListRecent(context context.Context, limit int) ([]*Review, error)

	Summary(context context.Context, playID string) (Summary, error)
}
