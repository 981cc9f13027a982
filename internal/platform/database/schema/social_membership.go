// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialMembershipTable represents a per-user play list keyed by (userid, playid).
//
// 'social.favorite' and 'social.watchlist' share this shape.
type SocialMembershipTable struct {
	Table     string
	UserID    string
	PlayID    string
	CreatedAt string
}

// SocialFavorite is the schema definition for social.favorite
var SocialFavorite = SocialMembershipTable{
	Table:     "social.favorite",
	UserID:    "userid",
	PlayID:    "playid",
	CreatedAt: "createdat",
}

// SocialWatchlist is the schema definition for social.watchlist
var SocialWatchlist = SocialMembershipTable{
	Table:     "social.watchlist",
	UserID:    "userid",
	PlayID:    "playid",
	CreatedAt: "createdat",
}
