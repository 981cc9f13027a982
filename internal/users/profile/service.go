// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/validate"
	"github.com/taibuivan/playbill/pkg/uuid"
)

type Service struct {
	repo        Repository
	adminEmails []string
	logger      *slog.Logger
}

// NewService constructs a profile [Service]. Identities whose e-mail is in
// adminEmails (lower-cased) are granted the admin flag at sign-in.
func NewService(repo Repository, adminEmails []string, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		adminEmails: adminEmails,
		logger:      logger,
	}
}

func (service *Service) Get(context context.Context, userID string) (*Profile, error) {
	return service.repo.FindByUserID(context, userID)
}

/*
EnsureForIdentity returns the profile for identity, creating it on first sign-in.

Description: A new profile takes its display name from the provider's name,
falling back to the local part of the e-mail. Listed admin e-mails are
promoted on every sign-in; the flag is never revoked here.

Parameters:
  - context: context.Context
  - identity: Identity

Returns:
  - *Profile: Existing or newly created profile
  - error: Store failures
*/
func (service *Service) EnsureForIdentity(context context.Context, identity Identity) (*Profile, error) {
	isListedAdmin := service.isAdminEmail(identity.Email)

	existing, err := service.repo.FindByIdentity(context, identity.Issuer, identity.Subject)
	if err == nil {
		if isListedAdmin && !existing.IsAdmin {
			existing.IsAdmin = true
			if err := service.repo.Update(context, existing); err != nil {
				return nil, err
			}
			service.logger.Warn("profile_promoted_admin", slog.String("user_id", existing.UserID))
		}
		return existing, nil
	}

	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	profile := &Profile{
		UserID:      uuid.New(),
		Issuer:      identity.Issuer,
		Subject:     identity.Subject,
		Email:       optional(identity.Email),
		DisplayName: optional(defaultDisplayName(identity)),
		AvatarURL:   optional(identity.Picture),
		IsAdmin:     isListedAdmin,
	}

	if err := service.repo.Create(context, profile); err != nil {
		return nil, err
	}

	service.logger.Info("profile_created",
		slog.String("user_id", profile.UserID),
		slog.Bool("is_admin", profile.IsAdmin),
	)
	return profile, nil
}

/*
Update applies owner edits to the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string (always the signed-in caller)
  - input: UpdateInput

Returns:
  - *Profile: Refreshed profile
  - error: VALIDATION_ERROR or store failures
*/
func (service *Service) Update(context context.Context, userID string, input UpdateInput) (*Profile, error) {
	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.MaxLen(FieldDisplayName, strings.TrimSpace(*input.DisplayName), MaxDisplayNameLength)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, strings.TrimSpace(*input.Bio), MaxBioLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.repo.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		profile.DisplayName = optional(*input.DisplayName)
	}
	if input.Bio != nil {
		profile.Bio = optional(*input.Bio)
	}

	if err := service.repo.Update(context, profile); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))
	return profile, nil
}

func (service *Service) isAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	return email != "" && slices.Contains(service.adminEmails, email)
}

func defaultDisplayName(identity Identity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(identity.Email, "@")
	return local
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
