// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "context"

// Repository is the profile store contract.
type Repository interface {
	FindByUserID(context context.Context, userID string) (*Profile, error)

	// FindByIdentity looks a profile up by the provider's (issuer, subject) pair.
	FindByIdentity(context context.Context, issuer, subject string) (*Profile, error)

	Create(context context.Context, profile *Profile) error

	// Update writes the mutable fields (display name, bio, avatar, admin flag).
	Update(context context.Context, profile *Profile) error
}
