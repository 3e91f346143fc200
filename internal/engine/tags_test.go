// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagTableResolveDefaults(t *testing.T) {
	tbl := newTagTable()
	prefix, ok := tbl.Resolve("!!")
	require.True(t, ok)
	assert.Equal(t, "tag:yaml.org,2002:", prefix)
}

func TestTagTableSetClonesOnFirstWrite(t *testing.T) {
	tbl := newTagTable()
	require.True(t, tbl.shared)
	tbl.Set("!e!", "tag:example.com,2000:")
	assert.False(t, tbl.shared)

	prefix, ok := tbl.Resolve("!e!")
	require.True(t, ok)
	assert.Equal(t, "tag:example.com,2000:", prefix)

	_, defaultStillHasSecondary := defaultTagTable["!e!"]
	assert.False(t, defaultStillHasSecondary)
}

func TestTagTableCloneIsIndependentAfterWrite(t *testing.T) {
	parent := newTagTable()
	parent.Set("!p!", "tag:parent.example,2000:")
	child := parent.Clone()
	require.True(t, child.shared)

	child.Set("!c!", "tag:child.example,2000:")
	_, ok := parent.Resolve("!c!")
	assert.False(t, ok)

	_, ok = child.Resolve("!p!")
	assert.True(t, ok)
}

func TestResolveTagExpandsKnownHandle(t *testing.T) {
	tbl := newTagTable()
	assert.Equal(t, "tag:yaml.org,2002:str", resolveTag(tbl, "!!", "str"))
}

func TestResolveTagFallsBackForUnknownHandle(t *testing.T) {
	tbl := newTagTable()
	assert.Equal(t, "!x", resolveTag(tbl, "!", "x"))
}
