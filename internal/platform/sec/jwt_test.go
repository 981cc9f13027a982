// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKey(key, issuer)
}

/*
TestTokenService_RoundTrip verifies that issued claims survive parsing.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "playbill.test")

	token, err := service.GenerateAccessToken(sec.TokenInput{
		UserID:      "user-1",
		DisplayName: "Ada",
		Role:        sec.RoleAdmin,
		SessionID:   "sess-1",
		TTL:         time.Hour,
	})
	require.NoError(t, err)

	claims, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ada", claims.DisplayName)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.True(t, claims.IsAdmin())
}

/*
TestTokenService_Rejects covers expired, foreign and garbage tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "playbill.test")
	other := newTokenService(t, "playbill.test")

	expired, err := service.GenerateAccessToken(sec.TokenInput{UserID: "u", SessionID: "s", Role: sec.RoleMember, TTL: -time.Minute})
	require.NoError(t, err)

	foreign, err := other.GenerateAccessToken(sec.TokenInput{UserID: "u", SessionID: "s", Role: sec.RoleMember, TTL: time.Hour})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"signed_by_other_key", foreign},
		{"garbage", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestUserRole_AtLeast checks the two-level role ladder.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleMember))
	assert.Equal(t, sec.RoleAdmin, sec.RoleFor(true))
	assert.Equal(t, sec.RoleMember, sec.RoleFor(false))
}
