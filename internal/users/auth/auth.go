// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth federates sign-in to an OpenID Connect provider and manages the
resulting sessions.

Flow:

  - BeginSignIn stores a random state and nonce in Redis and redirects to the provider;
    the state is also set as a cookie so only the starting browser can finish.
  - CompleteSignIn consumes the state, exchanges the code, verifies the ID
    token, ensures the profile and opens a session.
  - The session id travels inside an RS256 access token; a token is only
    honoured while its session still exists, so sign-out is immediate.
*/
package auth

import (
	"time"

	"github.com/taibuivan/playbill/internal/users/profile"
)

// # Domain Entities

// Session is a server-side sign-in session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignInState is what is remembered between redirect and callback.
type SignInState struct {
	Nonce string `json:"nonce"`
}

// SignInStart is a pending sign-in: where to send the browser and the state it must return.
type SignInStart struct {
	AuthURL string
	State   string
}

// SignInResult is a completed sign-in.
type SignInResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     *profile.Profile
}
