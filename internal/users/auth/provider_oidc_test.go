// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/users/auth"
)

const testClientID = "playbill-web"

// issuer is a minimal OpenID Connect provider: discovery, keys and a token
// endpoint that answers every code with an ID token carrying nonce.
type issuer struct {
	server *httptest.Server
	key    *rsa.PrivateKey

	mu    sync.Mutex
	nonce string
}

func (fake *issuer) setNonce(nonce string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.nonce = nonce
}

func (fake *issuer) currentNonce() string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.nonce
}

func newIssuer(t *testing.T) *issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fake := &issuer{key: key}
	mux := http.NewServeMux()
	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	mux.HandleFunc("/.well-known/openid-configuration", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, map[string]any{
			"issuer":                                fake.server.URL,
			"authorization_endpoint":                fake.server.URL + "/authorize",
			"token_endpoint":                        fake.server.URL + "/token",
			"jwks_uri":                              fake.server.URL + "/keys",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})

	mux.HandleFunc("/keys", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, map[string]any{"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "test-key",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	})

	mux.HandleFunc("/token", func(writer http.ResponseWriter, request *http.Request) {
		if err := request.ParseForm(); err != nil || request.PostForm.Get("code") != "good-code" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"iss":     fake.server.URL,
			"sub":     "subject-1",
			"aud":     testClientID,
			"exp":     time.Now().Add(time.Hour).Unix(),
			"iat":     time.Now().Unix(),
			"nonce":   fake.currentNonce(),
			"email":   "ada@example.com",
			"name":    "Ada Lovelace",
			"picture": "https://img.test/ada.png",
		})
		token.Header["kid"] = "test-key"
		signed, err := token.SignedString(key)
		if err != nil {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(writer, map[string]any{
			"access_token": "opaque",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     signed,
		})
	})

	return fake
}

func writeJSON(writer http.ResponseWriter, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(payload)
}

func newOIDCProvider(t *testing.T, fake *issuer) *auth.OIDCProvider {
	t.Helper()
	provider, err := auth.NewOIDCProvider(context.Background(), auth.OIDCConfig{
		IssuerURL:    fake.server.URL,
		ClientID:     testClientID,
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/callback",
	})
	require.NoError(t, err)
	return provider
}

/*
TestOIDCProvider_AuthCodeURL carries state, nonce and scopes.
*/
func TestOIDCProvider_AuthCodeURL(t *testing.T) {
	fake := newIssuer(t)
	provider := newOIDCProvider(t, fake)

	parsed, err := url.Parse(provider.AuthCodeURL("state-1", "nonce-1"))
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "/authorize", parsed.Path)
	assert.Equal(t, "state-1", query.Get("state"))
	assert.Equal(t, "nonce-1", query.Get("nonce"))
	assert.Equal(t, testClientID, query.Get("client_id"))
	assert.Contains(t, query.Get("scope"), "openid")
}

/*
TestOIDCProvider_Exchange verifies the ID token and its nonce.
*/
func TestOIDCProvider_Exchange(t *testing.T) {
	fake := newIssuer(t)
	provider := newOIDCProvider(t, fake)
	fake.setNonce("nonce-1")

	identity, err := provider.Exchange(context.Background(), "good-code", "nonce-1")
	require.NoError(t, err)
	assert.Equal(t, fake.server.URL, identity.Issuer)
	assert.Equal(t, "subject-1", identity.Subject)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada Lovelace", identity.Name)

	_, err = provider.Exchange(context.Background(), "good-code", "other-nonce")
	assert.ErrorIs(t, err, auth.ErrNonceMismatch)

	_, err = provider.Exchange(context.Background(), "bad-code", "nonce-1")
	assert.Error(t, err)
}

/*
TestNewOIDCProvider_DiscoveryFailure fails fast on an unreachable issuer.
*/
func TestNewOIDCProvider_DiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	_, err := auth.NewOIDCProvider(context.Background(), auth.OIDCConfig{IssuerURL: server.URL, ClientID: testClientID})
	assert.Error(t, err)
}
