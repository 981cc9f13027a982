// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog owns the play catalog: search, listings and admin create/delete.

Plays are created and deleted only by admins. Reviews, favorites and watchlist
rows referencing a play are removed by the store when the play is deleted.
*/
package catalog

import "time"

// Play is one catalog entry.
type Play struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Playwright  *string   `json:"playwright"`
	Year        *int      `json:"year"`
	Genre       *string   `json:"genre"`
	Description *string   `json:"description"`
	PosterURL   *string   `json:"poster_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput holds the admin form fields. The poster travels separately as
// a [media.PosterInput].
type CreateInput struct {
	Title       string `json:"title"`
	Playwright  string `json:"playwright"`
	Year        *int   `json:"year"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// # Limits

const (
	// SearchLimit caps explore results.
	SearchLimit = 60

	// RecentLimit is the size of the home page "recently added" shelf.
	RecentLimit = 12

	// PopularLimit is the size of the home page "popular" shelf.
	PopularLimit = 6

	maxTitleLength       = 300
	maxPlaywrightLength  = 200
	maxGenreLength       = 100
	maxDescriptionLength = 5000
	maxYear              = 9999
)

// Field names for validation
const (
	FieldTitle       = "title"
	FieldPlaywright  = "playwright"
	FieldYear        = "year"
	FieldGenre       = "genre"
	FieldDescription = "description"
	FieldPosterURL   = "poster_url"
)
