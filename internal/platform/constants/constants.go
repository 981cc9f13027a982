// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the Playbill API.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Identity: JWT issuer, session cookie and sign-in state lifetimes.
  - Storage: Database schemas and Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "playbill-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Poster uploads (up to 5 MB) must fit inside it.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Identity

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "playbill.app"

	// SessionCookieName carries the access token for browser clients.
	SessionCookieName = "playbill_session"

	// SignInStateCookieName binds a pending sign-in to the browser that started it.
	SignInStateCookieName = "playbill_signin_state"

	// SessionTTL bounds both the JWT lifetime and the Redis session record.
	SessionTTL = 7 * 24 * time.Hour

	// SignInStateTTL is how long an OIDC state/nonce pair stays redeemable.
	SignInStateTTL = 10 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSignInState = "auth:signin_state:"
	RedisPrefixSession     = "auth:session:"
)

// # Routes

const (
	// RouteHome is where gated pages send visitors who may not see them.
	RouteHome    = "/"
	RouteExplore = "/explore"
	RouteProfile = "/profile"
	RouteAdmin   = "/admin"

	// RouteSignIn starts the federated sign-in flow.
	RouteSignIn = "/api/v1/auth/login"

	// RouteSignOut ends the current session.
	RouteSignOut = "/api/v1/auth/logout"

	// MediaPathPrefix is where uploaded files are served from.
	MediaPathPrefix = "/media/"
)
