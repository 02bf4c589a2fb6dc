// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinofeed/projector/pkg/slice"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"actor", "director"}, slice.Unique([]string{"actor", "actor", "director", "actor"}))
	assert.Nil(t, slice.Unique[string](nil))
	assert.Equal(t, []string{}, slice.Unique([]string{}))
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		size  int
		want  [][]int
	}{
		{"empty_input", nil, 3, nil},
		{"exact_multiple", []int{1, 2, 3, 4, 5, 6}, 3, [][]int{{1, 2, 3}, {4, 5, 6}}},
		{"remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"size_larger_than_input", []int{1, 2}, 10, [][]int{{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Batch(tt.input, tt.size))
		})
	}
}
