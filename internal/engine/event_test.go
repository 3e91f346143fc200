// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "scalar", ScalarEvent.String())
	assert.Equal(t, "mapping-start", MappingStartEvent.String())
	assert.Contains(t, EventType(99).String(), "EventType")
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "ScalarToken", ScalarToken.String())
	assert.Contains(t, TokenType(99).String(), "TokenType")
}
