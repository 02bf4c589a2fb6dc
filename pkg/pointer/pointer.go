// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

// Package pointer provides utilities for working with pointers in Go.
//
// It utilizes generics to simplify the creation of pointers cleanly,
// avoiding boilerplate code when building values for optional fields
// (*string descriptions, *float64 ratings).
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a function or struct field
// that expects a pointer (e.g. pointer.To(7.9)).
func To[T any](v T) *T {
	return &v
}
