// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UsersProfileTable represents the 'users.profile' table
type UsersProfileTable struct {
	Table       string
	UserID      string
	Issuer      string
	Subject     string
	Email       string
	DisplayName string
	Bio         string
	AvatarURL   string
	IsAdmin     string
	CreatedAt   string
	UpdatedAt   string
}

// UsersProfile is the schema definition for users.profile
var UsersProfile = UsersProfileTable{
	Table:       "users.profile",
	UserID:      "userid",
	Issuer:      "issuer",
	Subject:     "subject",
	Email:       "email",
	DisplayName: "displayname",
	Bio:         "bio",
	AvatarURL:   "avatarurl",
	IsAdmin:     "isadmin",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t UsersProfileTable) Columns() []string {
	return []string{
		t.UserID, t.Issuer, t.Subject, t.Email, t.DisplayName, t.Bio, t.AvatarURL,
		t.IsAdmin, t.CreatedAt, t.UpdatedAt,
	}
}
