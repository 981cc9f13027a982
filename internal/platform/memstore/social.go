// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"context"
	"slices"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/social"
	"github.com/taibuivan/playbill/pkg/slice"
)

// # Relations

// RelationStore implements [social.RelationRepository].
type RelationStore struct{ s *Store }

func (v *RelationStore) Exists(_ context.Context, list social.List, userID, playID string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return false, err
	}

	return v.s.indexOfMembership(list, userID, playID) >= 0, nil
}

func (v *RelationStore) Add(_ context.Context, list social.List, userID, playID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	if _, play := v.s.findPlay(playID); play == nil {
		return apperr.NotFound("Play")
	}

	if v.s.indexOfMembership(list, userID, playID) >= 0 {
		return nil
	}

	rows := v.s.memberships(list)
	*rows = append(*rows, &membership{userID: userID, playID: playID, createdAt: v.s.stamp()})
	return nil
}

func (v *RelationStore) Remove(_ context.Context, list social.List, userID, playID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	rows := v.s.memberships(list)
	*rows = slices.DeleteFunc(*rows, func(m *membership) bool { return m.userID == userID && m.playID == playID })
	return nil
}

func (v *RelationStore) ListPlays(_ context.Context, list social.List, userID string) ([]*catalog.Play, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	rows := slice.Filter(*v.s.memberships(list), func(row *membership) bool { return row.userID == userID })
	slices.SortStableFunc(rows, func(a, b *membership) int { return b.createdAt.Compare(a.createdAt) })

	plays := make([]*catalog.Play, 0, len(rows))
	for _, row := range rows {
		if _, play := v.s.findPlay(row.playID); play != nil {
			plays = append(plays, copyPlay(play))
		}
	}
	return plays, nil
}

func (s *Store) indexOfMembership(list social.List, userID, playID string) int {
	return slices.IndexFunc(*s.memberships(list), func(m *membership) bool {
		return m.userID == userID && m.playID == playID
	})
}

// # Reviews

// ReviewStore implements [social.ReviewRepository].
type ReviewStore struct{ s *Store }

// Upsert keeps one row per (user, play); an update keeps the original id and
// creation time.
func (v *ReviewStore) Upsert(_ context.Context, review *social.Review) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	if _, play := v.s.findPlay(review.PlayID); play == nil {
		return apperr.NotFound("Play")
	}

	now := v.s.stamp()
	for _, existing := range v.s.reviews {
		if existing.UserID == review.UserID && existing.PlayID == review.PlayID {
			existing.Rating = review.Rating
			existing.Content = review.Content
			existing.UpdatedAt = now

			review.ID = existing.ID
			review.CreatedAt = existing.CreatedAt
			review.UpdatedAt = now
			return nil
		}
	}

	review.CreatedAt, review.UpdatedAt = now, now
	stored := *review
	stored.Reviewer, stored.Play = nil, nil
	v.s.reviews = append(v.s.reviews, &stored)
	return nil
}

func (v *ReviewStore) Delete(_ context.Context, userID, playID string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return err
	}

	before := len(v.s.reviews)
	v.s.reviews = slices.DeleteFunc(v.s.reviews, func(r *social.Review) bool {
		return r.UserID == userID && r.PlayID == playID
	})
	if len(v.s.reviews) == before {
		return apperr.NotFound("Review")
	}
	return nil
}

func (v *ReviewStore) ListByPlay(_ context.Context, playID string) ([]*social.Review, error) {
	return v.list(func(r *social.Review) bool { return r.PlayID == playID }, -1)
}

func (v *ReviewStore) ListByUser(_ context.Context, userID string) ([]*social.Review, error) {
	return v.list(func(r *social.Review) bool { return r.UserID == userID }, -1)
}

func (v *ReviewStore) ListRecent(_ context.Context, limit int) ([]*social.Review, error) {
	return v.list(func(*social.Review) bool { return true }, limit)
}

func (v *ReviewStore) Summary(_ context.Context, playID string) (social.Summary, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return social.Summary{}, err
	}

	var summary social.Summary
	total := 0
	for _, review := range v.s.reviews {
		if review.PlayID == playID {
			summary.Count++
			total += review.Rating
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

// list returns matching reviews newest first, joined with reviewer and play.
func (v *ReviewStore) list(match func(*social.Review) bool, limit int) ([]*social.Review, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.failure; err != nil {
		return nil, err
	}

	reviews := make([]*social.Review, 0)
	for _, stored := range v.s.reviews {
		if !match(stored) {
			continue
		}

		review := *stored
		review.Reviewer = &social.Reviewer{UserID: stored.UserID}
		if author := v.s.findProfile(stored.UserID); author != nil {
			review.Reviewer.DisplayName = author.DisplayName
			review.Reviewer.AvatarURL = author.AvatarURL
		}
		if _, play := v.s.findPlay(stored.PlayID); play != nil {
			review.Play = &social.PlayRef{ID: play.ID, Title: play.Title}
		}
		reviews = append(reviews, &review)
	}

	slices.SortStableFunc(reviews, func(a, b *social.Review) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return capped(reviews, limit), nil
}
