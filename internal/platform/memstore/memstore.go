// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is an in-memory implementation of every store contract.

One [Store] holds all rows so cross-table behaviour matches PostgreSQL:
deleting a play cascades to its reviews and list rows, and (user, play)
uniqueness holds for reviews and memberships. Each contract is exposed as a
separate view ([Store.Plays], [Store.Reviews], ...) because several
contracts share method names.

Rows are kept in slices and timestamps are strictly increasing, so every
ordering is deterministic.
*/
package memstore

import (
	"sync"
	"time"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/internal/users/auth"
	"github.com/taibuivan/playbill/internal/users/profile"
)

// Store is the shared backing state.
type Store struct {
	mu sync.Mutex

	now      func() time.Time
	lastTime time.Time
	failure  error

	plays     []*catalog.Play
	profiles  []*profile.Profile
	reviews   []*social.Review
	favorites []*membership
	watchlist []*membership

	states   map[string]expiring[auth.SignInState]
	sessions map[string]expiring[auth.Session]
}

type membership struct {
	userID    string
	playID    string
	createdAt time.Time
}

type expiring[T any] struct {
	value     T
	expiresAt time.Time
}

// New returns an empty store using the wall clock.
func New() *Store {
	return &Store{
		now:      time.Now,
		states:   make(map[string]expiring[auth.SignInState]),
		sessions: make(map[string]expiring[auth.Session]),
	}
}

// SetClock replaces the time source used for timestamps and expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Fail makes every subsequent call return err until Fail(nil).
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// stamp returns a timestamp strictly after the previous one.
func (s *Store) stamp() time.Time {
	current := s.now()
	if !current.After(s.lastTime) {
		current = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = current
	return current
}

func (s *Store) findPlay(id string) (int, *catalog.Play) {
	for i, play := range s.plays {
		if play.ID == id {
			return i, play
		}
	}
	return -1, nil
}

func (s *Store) findProfile(userID string) *profile.Profile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func (s *Store) memberships(list social.List) *[]*membership {
	if list == social.ListWatchlist {
		return &s.watchlist
	}
	return &s.favorites
}

// # Views

// Plays returns the catalog view.
func (s *Store) Plays() *PlayStore { return &PlayStore{s} }

// Relations returns the favorites/watchlist view.
func (s *Store) Relations() *RelationStore { return &RelationStore{s} }

// Reviews returns the review view.
func (s *Store) Reviews() *ReviewStore { return &ReviewStore{s} }

// Profiles returns the profile view.
func (s *Store) Profiles() *ProfileStore { return &ProfileStore{s} }

// States returns the sign-in state view.
func (s *Store) States() *StateStore { return &StateStore{s} }

// Sessions returns the session view.
func (s *Store) Sessions() *SessionStore { return &SessionStore{s} }

var (
	_ catalog.Repository         = (*PlayStore)(nil)
	_ social.RelationRepository  = (*RelationStore)(nil)
	_ social.ReviewRepository    = (*ReviewStore)(nil)
	_ profile.Repository         = (*ProfileStore)(nil)
	_ auth.StateRepository       = (*StateStore)(nil)
	_ auth.SessionRepository     = (*SessionStore)(nil)
)
