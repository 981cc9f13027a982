// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/taibuivan/playbill/internal/users/profile"
)

var (
	// ErrMissingIDToken is returned when the token response has no id_token.
	ErrMissingIDToken = errors.New("auth: token response has no id_token")

	// ErrNonceMismatch is returned when the ID token nonce differs from the stored one.
	ErrNonceMismatch = errors.New("auth: id token nonce mismatch")
)

// Provider is the external identity provider.
type Provider interface {

	// AuthCodeURL is where the browser is sent to sign in.
	AuthCodeURL(state, nonce string) string

	/*
		Exchange trades an authorization code for a verified identity.

		Parameters:
		  - context: context.Context
		  - code: string (from the callback)
		  - nonce: string (stored at BeginSignIn)

		Returns:
		  - *profile.Identity: Verified claims
		  - error: Exchange or verification failures
	*/
	Exchange(context context.Context, code, nonce string) (*profile.Identity, error)
}

// OIDCConfig configures an [OIDCProvider].
type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OIDCProvider implements [Provider] against an OpenID Connect issuer.
type OIDCProvider struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewOIDCProvider runs issuer discovery and prepares the code flow.
func NewOIDCProvider(context context.Context, cfg OIDCConfig) (*OIDCProvider, error) {
	provider, err := oidc.NewProvider(context, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc_discovery_failed: %w", err)
	}

	return &OIDCProvider{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (provider *OIDCProvider) AuthCodeURL(state, nonce string) string {
	return provider.config.AuthCodeURL(state, oidc.Nonce(nonce))
}

func (provider *OIDCProvider) Exchange(context context.Context, code, nonce string) (*profile.Identity, error) {
	token, err := provider.config.Exchange(context, code)
	if err != nil {
		return nil, fmt.Errorf("oidc_exchange_failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrMissingIDToken
	}

	idToken, err := provider.verifier.Verify(context, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("oidc_verify_failed: %w", err)
	}

	if idToken.Nonce != nonce {
		return nil, ErrNonceMismatch
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("oidc_claims_failed: %w", err)
	}

	return &profile.Identity{
		Issuer:  idToken.Issuer,
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
