// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinofeed/projector/pkg/uuid"
)

func TestLess(t *testing.T) {
	assert.True(t, uuid.Less(uuid.Zero, "018f7b3a-6c3e-7e3a-9f3a-0242ac120002"))
	assert.False(t, uuid.Less("018f7b3a-6c3e-7e3a-9f3a-0242ac120002", uuid.Zero))
	assert.False(t, uuid.Less("018f7b3a-6c3e-7e3a-9f3a-0242ac120002", "018f7b3a-6c3e-7e3a-9f3a-0242ac120002"))

	// case-insensitive
	assert.False(t, uuid.Less("018F7B3A-6C3E-7E3A-9F3A-0242AC120002", "018f7b3a-6c3e-7e3a-9f3a-0242ac120002"))
}

func TestNew_IsSortable(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	assert.NotEqual(t, a, b)
	assert.True(t, uuid.Less(a, b))
}
