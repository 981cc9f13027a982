// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Repository is the catalog store contract.
type Repository interface {

	// Search returns plays whose title contains query (case-insensitive),
	// ordered by title. An empty query matches every play.
	Search(context context.Context, query string, limit int) ([]*Play, error)

	// ListRecent returns the newest plays first.
	ListRecent(context context.Context, limit int) ([]*Play, error)

	// ListSample returns up to limit plays in no particular order.
	ListSample(context context.Context, limit int) ([]*Play, error)

	// ListAll returns every play, newest first.
	ListAll(context context.Context) ([]*Play, error)

	FindByID(context context.Context, id string) (*Play, error)
	Create(context context.Context, play *Play) error

	// Delete removes the play; NOT_FOUND when no row matched.
	Delete(context context.Context, id string) error
}
