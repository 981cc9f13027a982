// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the access token primitives used by the identity layer.
//
// # Architecture
//
// Tokens are RS256 JWTs. Each token names the server-side session it belongs to,
// so signing out (deleting the session) invalidates the token before it expires.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails parsing or validation.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside an access token.
//
// Custom claims are abbreviated to keep the cookie small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID      string `json:"uid"`
	DisplayName string `json:"dnm"`
	Role        string `json:"rol"`
	SessionID   string `json:"sid"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *AuthClaims) IsAdmin() bool {
	return c != nil && UserRole(c.Role).AtLeast(RoleAdmin)
}

// TokenService handles generation and verification of JWT tokens using RS256.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService creates a new TokenService.
// It reads PEM encoded RSA keys from the provided filesystem paths.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenService{privateKey: privateKey, publicKey: publicKey, issuer: issuer}, nil
}

// NewTokenServiceFromKey builds a TokenService around an in-memory key pair.
func NewTokenServiceFromKey(privateKey *rsa.PrivateKey, issuer string) *TokenService {
	return &TokenService{privateKey: privateKey, publicKey: &privateKey.PublicKey, issuer: issuer}
}

// TokenInput describes the identity an access token is issued for.
type TokenInput struct {
	UserID      string
	DisplayName string
	Role        UserRole
	SessionID   string
	TTL         time.Duration
}

// GenerateAccessToken signs a new access token.
func (service *TokenService) GenerateAccessToken(input TokenInput) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   input.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(input.TTL)),
			ID:        input.SessionID,
		},
		UserID:      input.UserID,
		DisplayName: input.DisplayName,
		Role:        string(input.Role),
		SessionID:   input.SessionID,
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ParseToken checks the signature, issuer and expiry of a JWT string.
func (service *TokenService) ParseToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	}, jwt.WithIssuer(service.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
