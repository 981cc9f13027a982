// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/api"
	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/pages"
	"github.com/taibuivan/playbill/internal/platform/config"
	"github.com/taibuivan/playbill/internal/platform/constants"
	"github.com/taibuivan/playbill/internal/platform/memstore"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/search"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
	"github.com/taibuivan/playbill/pkg/pointer"
	"github.com/taibuivan/playbill/pkg/uuid"
)

type stubVerifier map[string]*sec.AuthClaims

func (s stubVerifier) VerifyToken(_ context.Context, token string) (*sec.AuthClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

type harness struct {
	store   *memstore.Store
	handler http.Handler
	member  string
	admin   string
}

func newHarness(t *testing.T, health api.HealthDependencies) *harness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memstore.New()
	cfg := &config.Config{ServerPort: "0", Environment: "test", AppOrigin: "https://playbill.app"}

	profiles := profile.NewService(store.Profiles(), nil, logger)
	plays := catalog.NewService(store.Plays(), nil, logger)
	socialService := social.NewService(store.Relations(), store.Reviews(), logger)
	authService := auth.NewService(nil, store.States(), store.Sessions(), profiles, nil, logger)

	verifier := stubVerifier{}
	for token, role := range map[string]sec.UserRole{"member-token": sec.RoleMember, "admin-token": sec.RoleAdmin} {
		account := &profile.Profile{UserID: uuid.New(), Issuer: "https://issuer.test", Subject: token, DisplayName: pointer.To(token)}
		require.NoError(t, store.Profiles().Create(ctx, account))
		verifier[token] = &sec.AuthClaims{UserID: account.UserID, Role: string(role), SessionID: uuid.New()}
	}

	liveness, readiness := api.NewHealthHandlers(health, logger)
	server := api.NewServer(ctx, cfg, logger, verifier, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, auth.HandlerConfig{AppOrigin: cfg.AppOrigin}),
		Catalog:    catalog.NewHandler(plays),
		Social:     social.NewHandler(socialService),
		Profile:    profile.NewHandler(profiles),
		Pages:      pages.NewHandler(pages.NewService(authService, plays, socialService, profiles)),
		LiveSearch: search.NewLiveHandler(plays, api.OriginChecker(cfg), 0),
		Media:      http.FileServer(http.Dir(t.TempDir())),
	})

	return &harness{store: store, handler: server.Handler(), member: "member-token", admin: "admin-token"}
}

func (h *harness) do(method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, body)
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHealth reports readiness per dependency.
*/
func TestHealth(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis down") },
	})

	recorder := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"version":"`+constants.AppVersion+`"`)

	recorder = h.do(http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].OK)
	assert.False(t, body.Data.Checks[1].OK)
	assert.Contains(t, recorder.Body.String(), "redis down")
}

/*
TestRoutes checks status codes across the mounted route groups.
*/
func TestRoutes(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	play := &catalog.Play{ID: uuid.New(), Title: "Hamlet"}
	require.NoError(t, h.store.Plays().Create(context.Background(), play))

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{"home_page", http.MethodGet, "/api/v1/pages/home", "", "", http.StatusOK},
		{"explore_page", http.MethodGet, "/api/v1/pages/explore?q=ham", "", "", http.StatusOK},
		{"detail_page", http.MethodGet, "/api/v1/pages/plays/" + play.ID, h.member, "", http.StatusOK},
		{"missing_play", http.MethodGet, "/api/v1/plays/" + uuid.New(), "", "", http.StatusNotFound},
		{"profile_redirect", http.MethodGet, "/api/v1/pages/profile", "", "", http.StatusSeeOther},
		{"admin_redirect_member", http.MethodGet, "/api/v1/pages/admin", h.member, "", http.StatusSeeOther},
		{"admin_page", http.MethodGet, "/api/v1/pages/admin", h.admin, "", http.StatusOK},
		{"toggle_anonymous", http.MethodPost, "/api/v1/plays/" + play.ID + "/favorites/toggle", "", "", http.StatusUnauthorized},
		{"toggle_member", http.MethodPost, "/api/v1/plays/" + play.ID + "/watchlist/toggle", h.member, "", http.StatusOK},
		{"toggle_unknown_list", http.MethodPost, "/api/v1/plays/" + play.ID + "/wishlist/toggle", h.member, "", http.StatusNotFound},
		{"review_zero_rating", http.MethodPut, "/api/v1/plays/" + play.ID + "/review", h.member, `{"rating":0}`, http.StatusBadRequest},
		{"review_saved", http.MethodPut, "/api/v1/plays/" + play.ID + "/review", h.member, `{"rating":4,"content":"Fine"}`, http.StatusOK},
		{"admin_delete_member", http.MethodDelete, "/api/v1/admin/plays/" + play.ID, h.member, "", http.StatusForbidden},
		{"me", http.MethodGet, "/api/v1/me", h.member, "", http.StatusOK},
		{"me_anonymous", http.MethodGet, "/api/v1/me", "", "", http.StatusUnauthorized},
		{"session", http.MethodGet, "/api/v1/auth/session", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			recorder := h.do(tt.method, tt.path, tt.token, body)
			assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestAdminCreateAndDelete returns the refreshed listing after each mutation.
*/
func TestAdminCreateAndDelete(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	recorder := h.do(http.MethodPost, "/api/v1/admin/plays", h.admin,
		strings.NewReader(`{"title":"Hamlet","year":1603,"poster_url":"https://img.example/hamlet.jpg"}`))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data    []*catalog.Play `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, catalog.MsgPlayAdded, created.Message)
	require.Len(t, created.Data, 1)
	assert.Equal(t, "https://img.example/hamlet.jpg", pointer.Val(created.Data[0].PosterURL))

	recorder = h.do(http.MethodDelete, "/api/v1/admin/plays/"+created.Data[0].ID, h.admin, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), catalog.MsgPlayDeleted)

	recorder = h.do(http.MethodDelete, "/api/v1/admin/plays/"+created.Data[0].ID, h.admin, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestOriginChecker admits the app origin outside development.
*/
func TestOriginChecker(t *testing.T) {
	check := api.OriginChecker(&config.Config{Environment: "production", AppOrigin: "https://playbill.app"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://playbill.app", true},
		{"https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/search/live", nil)
			if tt.origin != "" {
				request.Header.Set(constants.HeaderOrigin, tt.origin)
			}
			assert.Equal(t, tt.want, check(request))
		})
	}
}
