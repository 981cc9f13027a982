// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/memstore"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
)

// fakeProvider accepts the codes it knows and checks the nonce it handed out.
type fakeProvider struct {
	identities map[string]profile.Identity
}

func (p *fakeProvider) AuthCodeURL(state, nonce string) string {
	return "https://issuer.test/authorize?" + url.Values{"state": {state}, "nonce": {nonce}}.Encode()
}

func (p *fakeProvider) Exchange(_ context.Context, code, nonce string) (*profile.Identity, error) {
	identity, ok := p.identities[code]
	if !ok || nonce == "" {
		return nil, errors.New("invalid_grant")
	}
	return &identity, nil
}

type fixture struct {
	store   *memstore.Store
	service *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memstore.New()
	provider := &fakeProvider{identities: map[string]profile.Identity{
		"member-code": {Issuer: "https://issuer.test", Subject: "1", Email: "ada@example.com", Name: "Ada"},
		"admin-code":  {Issuer: "https://issuer.test", Subject: "2", Email: "boss@example.com"},
	}}

	service := auth.NewService(
		provider,
		store.States(),
		store.Sessions(),
		profile.NewService(store.Profiles(), []string{"boss@example.com"}, logger),
		sec.NewTokenServiceFromKey(key, constants.AuthIssuer),
		logger,
	)
	return &fixture{store: store, service: service}
}

// begin starts a sign-in and returns the state from the provider URL.
func (f *fixture) begin(t *testing.T) string {
	t.Helper()
	start, err := f.service.BeginSignIn(context.Background())
	require.NoError(t, err)

	parsed, err := url.Parse(start.AuthURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	require.Equal(t, start.State, state)
	require.NotEqual(t, state, parsed.Query().Get("nonce"))
	return state
}

/*
TestSignIn_RoundTrip signs in, verifies the token and signs out.
*/
func TestSignIn_RoundTrip(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.CompleteSignIn(context.Background(), f.begin(t), "member-code")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Ada", *result.Profile.DisplayName)

	claims, err := f.service.VerifyToken(context.Background(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.Profile.UserID, claims.UserID)
	assert.False(t, claims.IsAdmin())

	viewer, err := f.service.Resolve(ctxutil.WithAuthUser(context.Background(), claims))
	require.NoError(t, err)
	assert.True(t, viewer.SignedIn)
	assert.Equal(t, "Ada", viewer.DisplayName)

	require.NoError(t, f.service.SignOut(context.Background(), claims))

	_, err = f.service.VerifyToken(context.Background(), result.AccessToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestSignIn_Admin carries the admin flag into the token role.
*/
func TestSignIn_Admin(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.CompleteSignIn(context.Background(), f.begin(t), "admin-code")
	require.NoError(t, err)

	claims, err := f.service.VerifyToken(context.Background(), result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	viewer, err := f.service.Resolve(ctxutil.WithAuthUser(context.Background(), claims))
	require.NoError(t, err)
	assert.True(t, viewer.IsAdmin)
	assert.Equal(t, "boss", viewer.DisplayName)
}

/*
TestCompleteSignIn_Failures covers bad state, reuse and provider errors.
*/
func TestCompleteSignIn_Failures(t *testing.T) {
	f := newFixture(t)

	used := f.begin(t)
	_, err := f.service.CompleteSignIn(context.Background(), used, "member-code")
	require.NoError(t, err)

	tests := []struct {
		name     string
		state    string
		code     string
		wantCode string
	}{
		{"empty_state", "", "member-code", apperr.CodeUnauthorized},
		{"empty_code", f.begin(t), "", apperr.CodeUnauthorized},
		{"unknown_state", "forged", "member-code", apperr.CodeUnauthorized},
		{"reused_state", used, "member-code", apperr.CodeUnauthorized},
		{"provider_rejects_code", f.begin(t), "stolen-code", apperr.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CompleteSignIn(context.Background(), tt.state, tt.code)
			assert.True(t, apperr.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

/*
TestCompleteSignIn_ExpiredState rejects a state older than its TTL.
*/
func TestCompleteSignIn_ExpiredState(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.store.SetClock(func() time.Time { return now })

	state := f.begin(t)
	now = now.Add(constants.SignInStateTTL + time.Second)

	_, err := f.service.CompleteSignIn(context.Background(), state, "member-code")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestVerifyToken_Garbage rejects tokens that do not parse.
*/
func TestVerifyToken_Garbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.VerifyToken(context.Background(), "not.a.jwt")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestResolve_Anonymous returns the zero viewer without an identity.
*/
func TestResolve_Anonymous(t *testing.T) {
	f := newFixture(t)

	viewer, err := f.service.Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, viewer.SignedIn)
}
