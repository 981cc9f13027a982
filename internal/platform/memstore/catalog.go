// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/social"
)

// PlayStore implements [catalog.Repository].
type PlayStore struct{ s *Store }

func (v *PlayStore) Search(_ context.Context, query string, limit int) ([]*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]*catalog.Play, 0)
	for _, play := range v.s.plays {
		if strings.Contains(strings.ToLower(play.Title), needle) {
			matches = append(matches, copyPlay(play))
		}
	}

	slices.SortStableFunc(matches, func(a, b *catalog.Play) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return capped(matches, limit), nil
}

func (v *PlayStore) ListRecent(_ context.Context, limit int) ([]*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	return capped(v.s.newestPlays(), limit), nil
}

func (v *PlayStore) ListSample(_ context.Context, limit int) ([]*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	sample := make([]*catalog.Play, 0, len(v.s.plays))
	for _, play := range v.s.plays {
		sample = append(sample, copyPlay(play))
	}
	return capped(sample, limit), nil
}

func (v *PlayStore) ListAll(_ context.Context) ([]*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	return v.s.newestPlays(), nil
}

func (v *PlayStore) FindByID(_ context.Context, id string) (*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	if _, play := v.s.findPlay(id); play != nil {
		return copyPlay(play), nil
	}
	return nil, apperr.NotFound("Play")
}

func (v *PlayStore) Create(_ context.Context, play *catalog.Play) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	if _, existing := v.s.findPlay(play.ID); existing != nil {
		return apperr.Conflict("Play already exists")
	}

	play.CreatedAt = v.s.stamp()
	v.s.plays = append(v.s.plays, copyPlay(play))
	return nil
}

// Delete removes the play and, like the foreign keys, its reviews and list rows.
func (v *PlayStore) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	index, _ := v.s.findPlay(id)
	if index < 0 {
		return apperr.NotFound("Play")
	}

	v.s.plays = slices.Delete(v.s.plays, index, index+1)
	v.s.reviews = slices.DeleteFunc(v.s.reviews, func(r *social.Review) bool { return r.PlayID == id })
	v.s.favorites = slices.DeleteFunc(v.s.favorites, func(m *membership) bool { return m.playID == id })
	v.s.watchlist = slices.DeleteFunc(v.s.watchlist, func(m *membership) bool { return m.playID == id })
	return nil
}

func (s *Store) newestPlays() []*catalog.Play {
	plays := make([]*catalog.Play, 0, len(s.plays))
	for _, play := range s.plays {
		plays = append(plays, copyPlay(play))
	}
	slices.SortStableFunc(plays, func(a, b *catalog.Play) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return plays
}

func copyPlay(play *catalog.Play) *catalog.Play {
	clone := *play
	return &clone
}

func capped[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
