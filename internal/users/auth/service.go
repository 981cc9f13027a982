// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/users/profile"
	"github.com/taibuivan/playbill/internal/view"
	"github.com/taibuivan/playbill/pkg/pointer"
	"github.com/taibuivan/playbill/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues and parses access tokens.
type TokenProvider interface {
	GenerateAccessToken(input sec.TokenInput) (string, error)
	ParseToken(token string) (*sec.AuthClaims, error)
}

// ProfileProvider resolves and creates profiles for identities.
type ProfileProvider interface {
	EnsureForIdentity(context context.Context, identity profile.Identity) (*profile.Profile, error)
	Get(context context.Context, userID string) (*profile.Profile, error)
}

// Service implements the sign-in use cases.
type Service struct {
	provider Provider
	states   StateRepository
	sessions SessionRepository
	profiles ProfileProvider
	tokens   TokenProvider
	logger   *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	provider Provider,
	states StateRepository,
	sessions SessionRepository,
	profiles ProfileProvider,
	tokens TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		provider: provider,
		states:   states,
		sessions: sessions,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// # Sign-in Flow

/*
BeginSignIn remembers a fresh state and nonce and returns the provider URL.

Returns:
  - *SignInStart: Provider authorization URL and the state the caller must bind to the browser
  - error: Randomness or state store failures
*/
func (service *Service) BeginSignIn(context context.Context) (*SignInStart, error) {
	state, err := sec.GenerateSecureToken(StateLength)
	if err != nil {
		return nil, err
	}

	nonce, err := sec.GenerateSecureToken(StateLength)
	if err != nil {
		return nil, err
	}

	if err := service.states.Save(context, state, SignInState{Nonce: nonce}, constants.SignInStateTTL); err != nil {
		return nil, err
	}

	return &SignInStart{AuthURL: service.provider.AuthCodeURL(state, nonce), State: state}, nil
}

/*
CompleteSignIn finishes the provider callback.

Description: The state is consumed before the code is exchanged, so a
callback can be used once. The profile is created on first sign-in, then a
session is opened and an access token naming it is issued.

Parameters:
  - context: context.Context
  - state: string
  - code: string

Returns:
  - *SignInResult: Access token, expiry and profile
  - error: UNAUTHORIZED for unknown state, UPSTREAM_FAILURE for provider errors
*/
func (service *Service) CompleteSignIn(context context.Context, state, code string) (*SignInResult, error) {
	if state == "" || code == "" {
		return nil, apperr.Unauthorized(MsgSignInExpired)
	}

	stored, err := service.states.Consume(context, state)
	if err != nil {
		return nil, err
	}

	identity, err := service.provider.Exchange(context, code, stored.Nonce)
	if err != nil {
		return nil, apperr.UpstreamFailure(MsgSignInFailed, err)
	}

	account, err := service.profiles.EnsureForIdentity(context, *identity)
	if err != nil {
		return nil, err
	}

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    account.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(constants.SessionTTL),
	}

	if err := service.sessions.Create(context, session, constants.SessionTTL); err != nil {
		return nil, err
	}

	token, err := service.tokens.GenerateAccessToken(sec.TokenInput{
		UserID:      account.UserID,
		DisplayName: pointer.Val(account.DisplayName),
		Role:        sec.RoleFor(account.IsAdmin),
		SessionID:   session.ID,
		TTL:         constants.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	service.logger.Info("user_signed_in",
		slog.String("user_id", account.UserID),
		slog.Bool("is_admin", account.IsAdmin),
	)

	return &SignInResult{AccessToken: token, ExpiresAt: session.ExpiresAt, Profile: account}, nil
}

// SignOut revokes the session the claims belong to.
func (service *Service) SignOut(context context.Context, claims *sec.AuthClaims) error {
	if err := service.sessions.Delete(context, claims.SessionID); err != nil {
		return err
	}

	service.logger.Info("user_signed_out", slog.String("user_id", claims.UserID))
	return nil
}

// # Verification

/*
VerifyToken parses an access token and checks that its session is still open.

Returns:
  - *sec.AuthClaims: Verified claims
  - error: apperr.Unauthorized for bad tokens or revoked sessions
*/
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}

	session, err := service.sessions.Find(context, claims.SessionID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized(MsgInvalidToken)
		}
		return nil, err
	}

	if session.UserID != claims.UserID {
		return nil, apperr.Unauthorized(MsgInvalidToken)
	}
	return claims, nil
}

/*
Resolve returns the viewer for the identity on the context.

Description: Display name and avatar come from the profile rather than the
token, so edits show up without signing in again.

Returns:
  - view.Viewer: Anonymous (zero value) when no identity is present
  - error: Profile store failures
*/
func (service *Service) Resolve(context context.Context) (view.Viewer, error) {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return view.Viewer{}, nil
	}

	account, err := service.profiles.Get(context, claims.UserID)
	if err != nil {
		return view.Viewer{}, err
	}

	return view.Viewer{
		SignedIn:    true,
		UserID:      account.UserID,
		DisplayName: pointer.Val(account.DisplayName),
		AvatarURL:   pointer.Val(account.AvatarURL),
		IsAdmin:     claims.IsAdmin(),
	}, nil
}
