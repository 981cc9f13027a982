// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/view"
	"github.com/taibuivan/playbill/pkg/pointer"
)

/*
TestPosterCard links to the detail page and falls back to text without a poster.
*/
func TestPosterCard(t *testing.T) {
	withPoster := &catalog.Play{ID: "p1", Title: "Hamlet", Year: pointer.To(1603), PosterURL: pointer.To("https://img.test/h.jpg")}
	withoutPoster := &catalog.Play{ID: "p2", Title: "Medea", PosterURL: pointer.To("")}

	card := view.NewPosterCard(withPoster)
	assert.Equal(t, "/plays/p1", card.Href)
	assert.Equal(t, "https://img.test/h.jpg", card.ImageURL)
	assert.Empty(t, card.Fallback)

	card = view.NewPosterCard(withoutPoster)
	assert.Empty(t, card.ImageURL)
	assert.Equal(t, "Medea", card.Fallback)

	assert.Equal(t, []view.PosterCard{}, view.Cards(nil))
	assert.Len(t, view.Cards([]*catalog.Play{withPoster, withoutPoster}), 2)
}

/*
TestStarRating sets rather than toggles, and ignores input when read-only.
*/
func TestStarRating(t *testing.T) {
	rating := view.NewStarRating(4)
	assert.Equal(t, [5]bool{true, true, true, true, false}, rating.Stars())

	assert.True(t, rating.Set(5))
	assert.Equal(t, 5, rating.Value())

	assert.False(t, rating.Set(5), "selecting the current value is not a toggle")
	assert.Equal(t, 5, rating.Value())

	assert.False(t, rating.Set(0))
	assert.False(t, rating.Set(6))
	assert.Equal(t, 5, rating.Value())

	readOnly := view.ReadOnlyStars(3)
	assert.False(t, readOnly.Set(1))
	assert.Equal(t, 3, readOnly.Value())

	encoded, err := json.Marshal(readOnly)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":3,"stars":[true,true,true,false,false],"read_only":true}`, string(encoded))

	assert.Equal(t, 0, view.NewStarRating(9).Value())
}

/*
TestNavBar highlights by exact path and switches between sign-in and menu.
*/
func TestNavBar(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		viewer      view.Viewer
		wantActive  []bool
		wantSignIn  bool
		wantItems   []string
		wantInitial string
	}{
		{
			name:       "anonymous_home",
			path:       "/",
			wantActive: []bool{true, false},
			wantSignIn: true,
		},
		{
			name:        "member_explore",
			path:        "/explore",
			viewer:      view.Viewer{SignedIn: true, DisplayName: "ophelia"},
			wantActive:  []bool{false, true},
			wantItems:   []string{"Profile", "Sign out"},
			wantInitial: "O",
		},
		{
			name:        "admin_on_subpath",
			path:        "/explore/extra",
			viewer:      view.Viewer{SignedIn: true, IsAdmin: true},
			wantActive:  []bool{false, false},
			wantItems:   []string{"Profile", "Admin", "Sign out"},
			wantInitial: "U",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := view.NewNavBar(tt.path, tt.viewer)

			require.Len(t, bar.Links, 2)
			assert.Equal(t, tt.wantActive, []bool{bar.Links[0].Active, bar.Links[1].Active})

			if tt.wantSignIn {
				require.NotNil(t, bar.SignIn)
				assert.Nil(t, bar.Menu)
				return
			}

			assert.Nil(t, bar.SignIn)
			require.NotNil(t, bar.Menu)
			assert.Equal(t, tt.wantInitial, bar.Menu.Initial)

			labels := make([]string, 0, len(bar.Menu.Items))
			for _, item := range bar.Menu.Items {
				labels = append(labels, item.Label)
			}
			assert.Equal(t, tt.wantItems, labels)
		})
	}
}

func TestAvatarInitial(t *testing.T) {
	assert.Equal(t, "U", view.AvatarInitial("  "))
	assert.Equal(t, "É", view.AvatarInitial("élodie"))
}
