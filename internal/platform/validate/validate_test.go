// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Solaris", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New("movies/test")
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "TRANSFORM_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_UUID checks the UUID format validation rule.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		isValid bool
	}{
		{"valid_uuid", "018f7b3a-6c3e-7e3a-9f3a-0242ac120002", true},
		{"uppercase", "018F7B3A-6C3E-7E3A-9F3A-0242AC120002", true},
		{"not_a_uuid", "film-work-1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New("movies/test")
			v.UUID("id", tt.id)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := validate.New("movies/018f7b3a-6c3e-7e3a-9f3a-0242ac120002")

	err := v.
		Required("title", "Solaris").
		UUID("id", "018f7b3a-6c3e-7e3a-9f3a-0242ac120002").
		OneOf("type", "movie", "movie", "tv_show").
		Custom("imdb_rating", -1 < 0, "Must be between 0 and 10").
		Err()

	assert.Error(t, err)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := validate.New("movies/bad-id")

	err := v.
		Required("title", "").                 // Fails
		UUID("id", "not-a-uuid").               // Fails
		OneOf("type", "short", "movie", "tv_show"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
