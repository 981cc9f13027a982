// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import "encoding/json"

// StarCount is the number of star positions.
const StarCount = 5

// StarRating is a five-position rating widget.
//
// In editable mode Set(i) sets the value to i; it is not a toggle, so
// selecting the current value keeps it. Read-only widgets ignore Set.
type StarRating struct {
	value    int
	readOnly bool
}

// NewStarRating returns an editable widget. Out-of-range values start at 0.
func NewStarRating(value int) *StarRating {
	rating := &StarRating{}
	rating.Set(value)
	return rating
}

// ReadOnlyStars returns a display-only widget.
func ReadOnlyStars(value int) *StarRating {
	rating := NewStarRating(value)
	rating.readOnly = true
	return rating
}

// Value is the current rating, 0 when nothing is selected.
func (r *StarRating) Value() int { return r.value }

// ReadOnly reports whether Set is ignored.
func (r *StarRating) ReadOnly() bool { return r.readOnly }

// Set selects position i (1..5) and reports whether the value changed.
func (r *StarRating) Set(i int) bool {
	if r.readOnly || i < 1 || i > StarCount || i == r.value {
		return false
	}
	r.value = i
	return true
}

// Stars returns the filled state of each position, left to right.
func (r *StarRating) Stars() [StarCount]bool {
	var stars [StarCount]bool
	for i := range stars {
		stars[i] = i < r.value
	}
	return stars
}

func (r *StarRating) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value    int             `json:"value"`
		Stars    [StarCount]bool `json:"stars"`
		ReadOnly bool            `json:"read_only"`
	}{r.value, r.Stars(), r.readOnly})
}
