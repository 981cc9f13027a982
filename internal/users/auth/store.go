// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Volatile Data Access

// StateRepository stores pending sign-in attempts.
type StateRepository interface {

	/*
		Save stores the state for a limited duration.

		Parameters:
		  - context: context.Context
		  - state: string (random, sent to the provider)
		  - value: SignInState
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, state string, value SignInState, ttl time.Duration) error

	/*
		Consume returns and deletes the state in one step, so a callback can
		never be replayed.

		Returns:
		  - *SignInState: The stored value
		  - error: apperr.Unauthorized if absent or expired
	*/
	Consume(context context.Context, state string) (*SignInState, error)
}

// SessionRepository stores sign-in sessions.
type SessionRepository interface {

	/*
		Create persists a session that expires after ttl.

		Parameters:
		  - context: context.Context
		  - session: *Session
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session, ttl time.Duration) error

	/*
		Find returns the live session with the given id.

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound if absent or expired
	*/
	Find(context context.Context, sessionID string) (*Session, error)

	// Delete revokes a session; deleting a missing session is a no-op.
	Delete(context context.Context, sessionID string) error
}
