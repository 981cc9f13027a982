// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"context"
	"time"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
)

// # Profiles

// ProfileStore implements [profile.Repository].
type ProfileStore struct{ s *Store }

func (v *ProfileStore) FindByUserID(_ context.Context, userID string) (*profile.Profile, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	if found := v.s.findProfile(userID); found != nil {
		clone := *found
		return &clone, nil
	}
	return nil, apperr.NotFound("Profile")
}

func (v *ProfileStore) FindByIdentity(_ context.Context, issuer, subject string) (*profile.Profile, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	for _, p := range v.s.profiles {
		if p.Issuer == issuer && p.Subject == subject {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Profile")
}

func (v *ProfileStore) Create(_ context.Context, p *profile.Profile) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	for _, existing := range v.s.profiles {
		if existing.UserID == p.UserID || (existing.Issuer == p.Issuer && existing.Subject == p.Subject) {
			return apperr.Conflict("Profile already exists")
		}
	}

	now := v.s.stamp()
	p.CreatedAt, p.UpdatedAt = now, now
	clone := *p
	v.s.profiles = append(v.s.profiles, &clone)
	return nil
}

func (v *ProfileStore) Update(_ context.Context, p *profile.Profile) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	existing := v.s.findProfile(p.UserID)
	if existing == nil {
		return apperr.NotFound("Profile")
	}

	existing.DisplayName = p.DisplayName
	existing.Bio = p.Bio
	existing.AvatarURL = p.AvatarURL
	existing.IsAdmin = p.IsAdmin
	existing.UpdatedAt = v.s.stamp()

	p.UpdatedAt = existing.UpdatedAt
	return nil
}

// # Sign-in State

// StateStore implements [auth.StateRepository].
type StateStore struct{ s *Store }

func (v *StateStore) Save(_ context.Context, state string, value auth.SignInState, ttl time.Duration) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	v.s.states[state] = expiring[auth.SignInState]{value: value, expiresAt: v.s.now().Add(ttl)}
	return nil
}

func (v *StateStore) Consume(_ context.Context, state string) (*auth.SignInState, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	entry, ok := v.s.states[state]
	delete(v.s.states, state)

	if !ok || !v.s.now().Before(entry.expiresAt) {
		return nil, apperr.Unauthorized(auth.MsgSignInExpired)
	}
	value := entry.value
	return &value, nil
}

// # Sessions

// SessionStore implements [auth.SessionRepository].
type SessionStore struct{ s *Store }

func (v *SessionStore) Create(_ context.Context, session *auth.Session, ttl time.Duration) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	v.s.sessions[session.ID] = expiring[auth.Session]{value: *session, expiresAt: v.s.now().Add(ttl)}
	return nil
}

func (v *SessionStore) Find(_ context.Context, sessionID string) (*auth.Session, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	entry, ok := v.s.sessions[sessionID]
	if !ok || !v.s.now().Before(entry.expiresAt) {
		return nil, apperr.NotFound("Session")
	}
	session := entry.value
	return &session, nil
}

func (v *SessionStore) Delete(_ context.Context, sessionID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	delete(v.s.sessions, sessionID)
	return nil
}
