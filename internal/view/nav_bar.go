// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/playbill/internal/platform/constants"
)

// NavLink is one primary destination.
type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// MenuItem is an entry in the signed-in avatar menu.
type MenuItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// AvatarMenu is the signed-in part of the bar.
type AvatarMenu struct {
	Initial   string     `json:"initial"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	Items     []MenuItem `json:"items"`
}

// NavBar is the top bar. SignIn is set for anonymous viewers, Menu otherwise.
type NavBar struct {
	Links  []NavLink   `json:"links"`
	SignIn *NavLink    `json:"sign_in,omitempty"`
	Menu   *AvatarMenu `json:"menu,omitempty"`
}

// NewNavBar builds the bar for the viewer on currentPath. Links are active
// on an exact path match only.
func NewNavBar(currentPath string, viewer Viewer) NavBar {
	bar := NavBar{
		Links: []NavLink{
			{Label: "Home", Href: constants.RouteHome, Active: currentPath == constants.RouteHome},
			{Label: "Explore", Href: constants.RouteExplore, Active: currentPath == constants.RouteExplore},
		},
	}

	if !viewer.SignedIn {
		bar.SignIn = &NavLink{Label: "Sign in", Href: constants.RouteSignIn}
		return bar
	}

	items := []MenuItem{{Label: "Profile", Href: constants.RouteProfile}}
	if viewer.IsAdmin {
		items = append(items, MenuItem{Label: "Admin", Href: constants.RouteAdmin})
	}
	items = append(items, MenuItem{Label: "Sign out", Href: constants.RouteSignOut, Method: "POST"})

	bar.Menu = &AvatarMenu{
		Initial:   AvatarInitial(viewer.DisplayName),
		AvatarURL: viewer.AvatarURL,
		Items:     items,
	}
	return bar
}

// AvatarInitial is the upper-cased first letter of name, "U" when blank.
func AvatarInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	first, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first))
}
