// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile owns the per-identity profile record.

A profile is created implicitly the first time an identity signs in and is
only ever updated by its owner. The admin flag lives here and is copied into
the access token role at sign-in.
*/
package profile

import "time"

// Profile is the application-side record for one signed-in identity.
type Profile struct {
	UserID      string    `json:"user_id"`
	Issuer      string    `json:"-"`
	Subject     string    `json:"-"`
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatar_url"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Identity is what the identity provider asserts about a signed-in user.
type Identity struct {
	Issuer  string
	Subject string
	Email   string
	Name    string
	Picture string
}

// UpdateInput carries owner edits; nil leaves a field unchanged.
type UpdateInput struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

// # Constraints

const (
	MaxDisplayNameLength = 80
	MaxBioLength         = 500
)

// Field names for validation
const (
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
)

// MsgProfileUpdated is returned after a successful owner edit.
const MsgProfileUpdated = "Profile updated"
