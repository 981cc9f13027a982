// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/view"
	"github.com/taibuivan/playbill/pkg/pointer"
	"github.com/taibuivan/playbill/pkg/slice"
)

// Service composes page read models from the domain services.
type Service struct {
	viewers  ViewerResolver
	catalog  CatalogReader
	social   SocialReader
	profiles ProfileReader
}

// NewService constructs a new pages [Service].
func NewService(viewers ViewerResolver, catalog CatalogReader, social SocialReader, profiles ProfileReader) *Service {
	return &Service{viewers: viewers, catalog: catalog, social: social, profiles: profiles}
}

// # Pages

/*
Home reads the landing page.

Description: Shelves are fetched one after another; the first failure aborts
the page.
*/
func (service *Service) Home(context context.Context) (*HomePage, error) {
	viewer, err := service.viewers.Resolve(context)
	if err != nil {
		return nil, err
	}

	recent, err := service.catalog.ListRecent(context)
	if err != nil {
		return nil, err
	}

	popular, err := service.catalog.ListPopular(context)
	if err != nil {
		return nil, err
	}

	reviews, err := service.social.RecentReviews(context)
	if err != nil {
		return nil, err
	}

	return &HomePage{
		Nav:           view.NewNavBar(constants.RouteHome, viewer),
		ShowSignIn:    !viewer.SignedIn,
		Recent:        view.Cards(recent),
		Popular:       view.Cards(popular),
		RecentReviews: reviewItems(reviews),
		Empty:         len(recent) == 0 && len(popular) == 0,
	}, nil
}

// Explore runs the query synchronously; the live socket is the debounced path.
func (service *Service) Explore(context context.Context, query string) (*ExplorePage, error) {
	viewer, err := service.viewers.Resolve(context)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	plays, err := service.catalog.Search(context, query)
	if err != nil {
		return nil, err
	}

	return &ExplorePage{
		Nav:     view.NewNavBar(constants.RouteExplore, viewer),
		Query:   query,
		Results: view.Cards(plays),
		Count:   len(plays),
	}, nil
}

/*
Detail reads a play with its reviews and, for signed-in callers, the list
toggles and their own review form.

Returns:
  - *DetailPage: The composed page
  - error: NOT_FOUND when the play does not exist
*/
func (service *Service) Detail(context context.Context, playID string) (*DetailPage, error) {
	viewer, err := service.viewers.Resolve(context)
	if err != nil {
		return nil, err
	}

	play, err := service.catalog.Get(context, playID)
	if err != nil {
		return nil, err
	}

	reviews, err := service.social.ReviewsForPlay(context, play.ID)
	if err != nil {
		return nil, err
	}

	summary, err := service.social.Summary(context, play.ID)
	if err != nil {
		return nil, err
	}

	page := &DetailPage{
		Nav:      view.NewNavBar(view.PlayHref(play.ID), viewer),
		Play:     play,
		Poster:   view.NewPosterCard(play),
		Reviews:  reviewItems(reviews),
		Summary:  summary,
		SignedIn: viewer.SignedIn,
	}

	if !viewer.SignedIn {
		return page, nil
	}

	membership, err := service.social.Membership(context, viewer.UserID, play.ID)
	if err != nil {
		return nil, err
	}
	page.Favorite = membership.Favorite
	page.Watchlist = membership.Watchlist
	page.MyReview = reviewForm(reviews, viewer.UserID)

	return page, nil
}

/*
Profile reads the caller's profile with the three list tabs.

Parameters:
  - tab: Active tab key; unknown or empty selects favorites

Returns:
  - *ProfilePage: The composed page
  - error: UNAUTHORIZED for anonymous callers
*/
func (service *Service) Profile(context context.Context, tab string) (*ProfilePage, error) {
	viewer, err := service.viewers.Resolve(context)
	if err != nil {
		return nil, err
	}
	if !viewer.SignedIn {
		return nil, apperr.Unauthorized("Sign in to view your profile")
	}

	account, err := service.profiles.Get(context, viewer.UserID)
	if err != nil {
		return nil, err
	}

	favorites, err := service.social.ListPlays(context, social.ListFavorites, viewer.UserID)
	if err != nil {
		return nil, err
	}

	watchlist, err := service.social.ListPlays(context, social.ListWatchlist, viewer.UserID)
	if err != nil {
		return nil, err
	}

	reviews, err := service.social.ReviewsByUser(context, viewer.UserID)
	if err != nil {
		return nil, err
	}

	switch tab {
	case TabFavorites, TabWatchlist, TabReviews:
	default:
		tab = TabFavorites
	}

	return &ProfilePage{
		Nav:     view.NewNavBar(constants.RouteProfile, viewer),
		Profile: account,
		Initial: view.AvatarInitial(pointer.Val(account.DisplayName)),
		Tabs: []ProfileTab{
			playTab(TabFavorites, "Favorites", favorites, tab),
			playTab(TabWatchlist, "Watchlist", watchlist, tab),
			{
				Key:     TabReviews,
				Label:   tabLabel("Reviews", len(reviews)),
				Count:   len(reviews),
				Active:  tab == TabReviews,
				Reviews: reviewItems(reviews),
			},
		},
	}, nil
}

// Admin reads the catalog management page. Non-admins get FORBIDDEN.
func (service *Service) Admin(context context.Context) (*AdminPage, error) {
	viewer, err := service.viewers.Resolve(context)
	if err != nil {
		return nil, err
	}
	if !viewer.SignedIn {
		return nil, apperr.Unauthorized("Sign in to manage plays")
	}
	if !viewer.IsAdmin {
		return nil, apperr.Forbidden("Admin access required")
	}

	plays, err := service.catalog.ListAll(context)
	if err != nil {
		return nil, err
	}
	if plays == nil {
		plays = []*catalog.Play{}
	}

	return &AdminPage{
		Nav:            view.NewNavBar(constants.RouteAdmin, viewer),
		Plays:          plays,
		Count:          len(plays),
		MaxUploadBytes: media.MaxUploadBytes,
		AcceptedTypes:  media.AcceptedTypes(),
	}, nil
}

// # Helpers

func reviewItems(reviews []*social.Review) []ReviewItem {
	items := slice.Map(reviews, func(review *social.Review) ReviewItem {
		return ReviewItem{Review: review, Stars: view.ReadOnlyStars(review.Rating)}
	})
	if items == nil {
		return []ReviewItem{}
	}
	return items
}

// reviewForm pre-fills the caller's review from the already fetched list.
func reviewForm(reviews []*social.Review, userID string) *ReviewForm {
	for _, review := range reviews {
		if review.UserID == userID {
			return &ReviewForm{
				Exists:  true,
				Rating:  view.NewStarRating(review.Rating),
				Content: pointer.Val(review.Content),
			}
		}
	}
	return &ReviewForm{Rating: view.NewStarRating(0)}
}

func playTab(key, label string, plays []*catalog.Play, active string) ProfileTab {
	return ProfileTab{
		Key:    key,
		Label:  tabLabel(label, len(plays)),
		Count:  len(plays),
		Active: key == active,
		Plays:  view.Cards(plays),
	}
}

func tabLabel(label string, count int) string {
	return fmt.Sprintf("%s (%d)", label, count)
}
