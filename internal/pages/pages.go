// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pages composes the read model of each screen: Home, Explore, Play
Detail, Profile and Admin.

Each page read fetches its own snapshot from the stores and embeds the shared
widgets. Nothing is cached between requests. Gated pages report
UNAUTHORIZED/FORBIDDEN, which the handler turns into a redirect home.
*/
package pages

import (
	"context"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/users/profile"
	"github.com/taibuivan/playbill/internal/view"
)

// # Collaborators

// ViewerResolver resolves the caller for nav and gating.
type ViewerResolver interface {
	Resolve(context context.Context) (view.Viewer, error)
}

// CatalogReader is the catalog side of the pages.
type CatalogReader interface {
	Search(context context.Context, query string) ([]*catalog.Play, error)
	ListRecent(context context.Context) ([]*catalog.Play, error)
	ListPopular(context context.Context) ([]*catalog.Play, error)
	ListAll(context context.Context) ([]*catalog.Play, error)
	Get(context context.Context, id string) (*catalog.Play, error)
}

// SocialReader is the reviews and lists side of the pages.
type SocialReader interface {
	ReviewsForPlay(context context.Context, playID string) ([]*social.Review, error)
	ReviewsByUser(context context.Context, userID string) ([]*social.Review, error)
	RecentReviews(context context.Context) ([]*social.Review, error)
	Summary(context context.Context, playID string) (social.Summary, error)
	Membership(context context.Context, userID, playID string) (social.Membership, error)
	ListPlays(context context.Context, list social.List, userID string) ([]*catalog.Play, error)
}

// ProfileReader loads the caller's profile.
type ProfileReader interface {
	Get(context context.Context, userID string) (*profile.Profile, error)
}

// # Page Models

// ReviewItem is a review with its read-only stars.
type ReviewItem struct {
	*social.Review
	Stars *view.StarRating `json:"stars"`
}

// HomePage is GET /pages/home.
type HomePage struct {
	Nav           view.NavBar       `json:"nav"`
	ShowSignIn    bool              `json:"show_sign_in"`
	Recent        []view.PosterCard `json:"recent"`
	Popular       []view.PosterCard `json:"popular"`
	RecentReviews []ReviewItem      `json:"recent_reviews"`

	// Empty is true when both shelves are empty.
	Empty bool `json:"empty"`
}

// ExplorePage is GET /pages/explore.
type ExplorePage struct {
	Nav     view.NavBar       `json:"nav"`
	Query   string            `json:"query"`
	Results []view.PosterCard `json:"results"`
	Count   int               `json:"count"`
}

// ReviewForm is the caller's own review, pre-filled when one exists.
type ReviewForm struct {
	Exists  bool             `json:"exists"`
	Rating  *view.StarRating `json:"rating"`
	Content string           `json:"content"`
}

// DetailPage is GET /pages/plays/{id}.
type DetailPage struct {
	Nav     view.NavBar     `json:"nav"`
	Play    *catalog.Play   `json:"play"`
	Poster  view.PosterCard `json:"poster"`
	Reviews []ReviewItem    `json:"reviews"`
	Summary social.Summary  `json:"summary"`

	SignedIn  bool        `json:"signed_in"`
	Favorite  bool        `json:"favorite"`
	Watchlist bool        `json:"watchlist"`
	MyReview  *ReviewForm `json:"my_review,omitempty"`
}

// ProfileTab is one of the profile page tabs; Label carries the live count.
type ProfileTab struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Count   int               `json:"count"`
	Active  bool              `json:"active"`
	Plays   []view.PosterCard `json:"plays,omitempty"`
	Reviews []ReviewItem      `json:"reviews,omitempty"`
}

// ProfilePage is GET /pages/profile.
type ProfilePage struct {
	Nav     view.NavBar      `json:"nav"`
	Profile *profile.Profile `json:"profile"`
	Initial string           `json:"initial"`
	Tabs    []ProfileTab     `json:"tabs"`
}

// AdminPage is GET /pages/admin.
type AdminPage struct {
	Nav            view.NavBar     `json:"nav"`
	Plays          []*catalog.Play `json:"plays"`
	Count          int             `json:"count"`
	MaxUploadBytes int             `json:"max_upload_bytes"`
	AcceptedTypes  []string        `json:"accepted_types"`
}

// # Tabs

const (
	TabFavorites = "favorites"
	TabWatchlist = "watchlist"
	TabReviews   = "reviews"
)
