// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/pkg/pointer"
	"github.com/taibuivan/playbill/pkg/slice"
)

// PosterCard is a play tile. Exactly one of ImageURL and Fallback is set.
type PosterCard struct {
	PlayID   string `json:"play_id"`
	Title    string `json:"title"`
	Year     *int   `json:"year,omitempty"`
	Href     string `json:"href"`
	ImageURL string `json:"image_url,omitempty"`

	// Fallback is the text shown on the tile when there is no poster.
	Fallback string `json:"fallback,omitempty"`
}

// NewPosterCard builds the tile for one play.
func NewPosterCard(play *catalog.Play) PosterCard {
	card := PosterCard{
		PlayID: play.ID,
		Title:  play.Title,
		Year:   play.Year,
		Href:   PlayHref(play.ID),
	}

	if imageURL := pointer.Val(play.PosterURL); imageURL != "" {
		card.ImageURL = imageURL
	} else {
		card.Fallback = play.Title
	}
	return card
}

// Cards maps plays to tiles; never nil so empty shelves encode as [].
func Cards(plays []*catalog.Play) []PosterCard {
	cards := slice.Map(plays, NewPosterCard)
	if cards == nil {
		return []PosterCard{}
	}
	return cards
}

// PlayHref is the detail page path for a play.
func PlayHref(playID string) string {
	return "/plays/" + playID
}
