// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/middleware"
	requestutil "github.com/taibuivan/playbill/internal/platform/request"
	"github.com/taibuivan/playbill/internal/platform/respond"
	"github.com/taibuivan/playbill/internal/view"
)

// # Definitions & Constructors

// HandlerConfig holds the transport settings of the sign-in endpoints.
type HandlerConfig struct {
	// AppOrigin is where the browser lands after sign-in.
	AppOrigin string

	// SecureCookies marks the session cookie Secure (off for plain-http development).
	SecureCookies bool
}

// Handler implements the sign-in HTTP endpoints.
type Handler struct {
	service *Service
	config  HandlerConfig
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, config HandlerConfig) *Handler {
	return &Handler{service: service, config: config}
}

// Routes returns a [chi.Router] configured with the sign-in routes.
//
// # Endpoints
//   - GET  /login    : Redirects to the identity provider.
//   - GET  /callback : Completes sign-in and sets the session cookie.
//   - GET  /session  : Nav bar state for the current caller.
//   - POST /logout   : Revokes the session and clears the cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/login", handler.login)
	router.Get("/callback", handler.callback)
	router.Get("/session", handler.session)

	router.With(middleware.RequireAuth).Post("/logout", handler.logout)

	return router
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	start, err := handler.service.BeginSignIn(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.stateCookie(start.State))
	http.Redirect(writer, request, start.AuthURL, http.StatusFound)
}

/*
Callback handles the identity provider redirect.

GET /api/v1/auth/callback?state=&code=

Response:
  - 303: Redirect to the app, session cookie set
  - 303: Redirect to the app without a cookie when the user cancelled
  - 401: Unknown or expired state, or a state not issued to this browser
  - 502: Provider exchange failed
*/
func (handler *Handler) callback(writer http.ResponseWriter, request *http.Request) {
	// The state cookie is single use whatever the outcome.
	http.SetCookie(writer, handler.stateCookie(""))

	if requestutil.Query(request, ParamError) != "" {
		respond.Redirect(writer, request, handler.config.AppOrigin)
		return
	}

	state := requestutil.Query(request, ParamState)
	if !stateMatchesBrowser(request, state) {
		respond.Error(writer, request, apperr.Unauthorized(MsgSignInExpired))
		return
	}

	result, err := handler.service.CompleteSignIn(request.Context(), state, requestutil.Query(request, ParamCode))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessionCookie(result.AccessToken, result.ExpiresAt))
	respond.Redirect(writer, request, handler.config.AppOrigin)
}

func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	viewer, err := handler.service.Resolve(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path := requestutil.Query(request, ParamPath)
	if path == "" {
		path = constants.RouteHome
	}
	respond.OK(writer, view.NewNavBar(path, viewer))
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SignOut(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessionCookie("", time.Unix(0, 0)))
	respond.NoContent(writer)
}

// sessionCookie builds the session cookie; an empty value clears it.
func (handler *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   handler.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

// stateCookie holds the pending sign-in state; an empty value clears it.
func (handler *Handler) stateCookie(state string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.SignInStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(constants.SignInStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if state == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

// stateMatchesBrowser reports whether the callback state is the one this browser was issued.
func stateMatchesBrowser(request *http.Request, state string) bool {
	cookie, err := request.Cookie(constants.SignInStateCookieName)
	if err != nil || cookie.Value == "" || state == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) == 1
}
