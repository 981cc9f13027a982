// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/respond"
	"github.com/taibuivan/playbill/internal/platform/sec"
)

// TokenVerifier resolves an access token into the signed-in identity.
//
// Implementations check the signature and that the session behind the token
// has not been revoked.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the current identity before any handler runs.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>', else the session cookie.
//  2. No credentials: the request proceeds as anonymous.
//  3. A bad bearer header is rejected with 401. A stale cookie is ignored, so
//     a revoked session degrades to anonymous browsing.
//  4. Inject [*sec.AuthClaims] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, fromHeader, err := extractToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				if fromHeader {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			recordIdentity(writer, claims)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// extractToken returns the raw token and whether it came from the header.
func extractToken(request *http.Request) (string, bool, error) {
	if header := request.Header.Get(constants.HeaderAuthorization); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", true, apperr.Unauthorized("Invalid authorization format")
		}
		return parts[1], true, nil
	}

	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		return cookie.Value, false, nil
	}

	return "", false, nil
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Sign in required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose identity lacks the role.
//
// Anonymous callers get 401, signed-in callers without the role get 403.
// It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Sign in required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Admins only"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
