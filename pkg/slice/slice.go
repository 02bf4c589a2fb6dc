// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Map, Unique, Batch) leveraging generics.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Unique returns input with duplicate elements removed, preserving the order
// of first occurrence.
func Unique[T comparable](input []T) []T {
	if input == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Batch re-chunks input into fixed-size groups of at most size, preserving
// order. The final group may be smaller than size; no empty group is ever
// produced, including for a nil or empty input.
func Batch[T any](input []T, size int) [][]T {
	if len(input) == 0 || size <= 0 {
		return nil
	}

	batches := make([][]T, 0, (len(input)+size-1)/size)
	for start := 0; start < len(input); start += size {
		end := start + size
		if end > len(input) {
			end = len(input)
		}
		batches = append(batches, input[start:end])
	}
	return batches
}
