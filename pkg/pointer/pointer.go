// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer converts between values and the optional (*T) columns
// used across the domain types.
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value if nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
