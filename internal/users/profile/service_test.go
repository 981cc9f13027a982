// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/memstore"
	"github.com/taibuivan/playbill/internal/users/profile"
	"github.com/taibuivan/playbill/pkg/pointer"
)

func newService(adminEmails ...string) *profile.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return profile.NewService(memstore.New().Profiles(), adminEmails, logger)
}

/*
TestEnsureForIdentity creates once and reuses the profile afterwards.
*/
func TestEnsureForIdentity(t *testing.T) {
	service := newService()
	identity := profile.Identity{Issuer: "https://issuer.test", Subject: "42", Email: "ada@example.com", Picture: "https://img.test/a.png"}

	created, err := service.EnsureForIdentity(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "ada", pointer.Val(created.DisplayName))
	assert.Equal(t, "https://img.test/a.png", pointer.Val(created.AvatarURL))
	assert.False(t, created.IsAdmin)

	again, err := service.EnsureForIdentity(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, again.UserID)
}

/*
TestEnsureForIdentity_DisplayName prefers the provider name over the e-mail.
*/
func TestEnsureForIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		identity profile.Identity
		want     *string
	}{
		{"provider_name", profile.Identity{Subject: "1", Name: " Ada Lovelace ", Email: "ada@example.com"}, pointer.To("Ada Lovelace")},
		{"email_local_part", profile.Identity{Subject: "2", Email: "bea@example.com"}, pointer.To("bea")},
		{"nothing", profile.Identity{Subject: "3"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := newService().EnsureForIdentity(context.Background(), tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.DisplayName)
		})
	}
}

/*
TestEnsureForIdentity_Admin promotes listed e-mails, also on later sign-ins.
*/
func TestEnsureForIdentity_Admin(t *testing.T) {
	service := newService("boss@example.com")

	created, err := service.EnsureForIdentity(context.Background(), profile.Identity{Subject: "1", Email: "Boss@Example.com"})
	require.NoError(t, err)
	assert.True(t, created.IsAdmin)

	member, err := service.EnsureForIdentity(context.Background(), profile.Identity{Subject: "2", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.False(t, member.IsAdmin)
}

/*
TestUpdate applies owner edits within the length limits.
*/
func TestUpdate(t *testing.T) {
	service := newService()
	created, err := service.EnsureForIdentity(context.Background(), profile.Identity{Subject: "1", Name: "Ada"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    profile.UpdateInput
		wantCode string
		wantName string
		wantBio  *string
	}{
		{"rename", profile.UpdateInput{DisplayName: pointer.To("  Countess ")}, "", "Countess", nil},
		{"bio_only", profile.UpdateInput{Bio: pointer.To("Analyst")}, "", "Countess", pointer.To("Analyst")},
		{"name_too_long", profile.UpdateInput{DisplayName: pointer.To(strings.Repeat("a", profile.MaxDisplayNameLength+1))}, apperr.CodeValidation, "", nil},
		{"bio_too_long", profile.UpdateInput{Bio: pointer.To(strings.Repeat("b", profile.MaxBioLength+1))}, apperr.CodeValidation, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := service.Update(context.Background(), created.UserID, tt.input)
			if tt.wantCode != "" {
				assert.True(t, apperr.HasCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, pointer.Val(updated.DisplayName))
			assert.Equal(t, tt.wantBio, updated.Bio)
		})
	}

	_, err = service.Update(context.Background(), "0190a0f2-0000-7000-8000-00000000ffff", profile.UpdateInput{Bio: pointer.To("x")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
