// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view builds the shared widget view-models every page embeds.

Widgets:

  - [PosterCard]: a play tile linking to its detail page.
  - [StarRating]: five star positions, editable or read-only.
  - [NavBar]: primary destinations plus the sign-in action or avatar menu.

The package has no store access; pages pass in what they fetched.
*/
package view

// Viewer is the identity a page is rendered for. The zero value is anonymous.
type Viewer struct {
	SignedIn    bool   `json:"signed_in"`
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}
