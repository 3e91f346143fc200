// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBindAndResolveAnchor(t *testing.T) {
	doc := NewDocument(nil)
	n := doc.newNode(ScalarNodeKind)
	n.value = []byte("1")
	doc.BindAnchor("x", n)

	got, ok := doc.ResolveAlias("x")
	require.True(t, ok)
	assert.Same(t, n, got)

	name, ok := doc.AnchorOf(n)
	require.True(t, ok)
	assert.Equal(t, "x", name)
}

func TestDocumentBindAnchorRebindingWins(t *testing.T) {
	doc := NewDocument(nil)
	first := doc.newNode(ScalarNodeKind)
	first.value = []byte("1")
	second := doc.newNode(ScalarNodeKind)
	second.value = []byte("2")

	doc.BindAnchor("x", first)
	doc.BindAnchor("x", second)

	got, ok := doc.ResolveAlias("x")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestDocumentBindAnchorRetainsEarlierBindingForRoundTrip(t *testing.T) {
	doc := NewDocument(nil)
	first := doc.newNode(ScalarNodeKind)
	first.value = []byte("1")
	second := doc.newNode(ScalarNodeKind)
	second.value = []byte("2")

	doc.BindAnchor("x", first)
	doc.BindAnchor("x", second)

	name, ok := doc.AnchorOf(first)
	require.True(t, ok)
	assert.Equal(t, "x", name)

	name, ok = doc.AnchorOf(second)
	require.True(t, ok)
	assert.Equal(t, "x", name)

	names := doc.anchorNames()
	assert.Equal(t, []string{"x", "x"}, names)
}

func TestDocumentAnchorNameNormalizedToNFC(t *testing.T) {
	doc := NewDocument(nil)
	n := doc.newNode(ScalarNodeKind)

	precomposed := "caf\u00e9"  // caf + precomposed e-acute (U+00E9)
	decomposed := "cafe\u0301" // caf + bare e + combining acute (U+0301)

	doc.BindAnchor(decomposed, n)

	got, ok := doc.ResolveAlias(precomposed)
	require.True(t, ok)
	assert.Same(t, n, got)
}

func TestDocumentResolveAliasUnknownNameFails(t *testing.T) {
	doc := NewDocument(nil)
	_, ok := doc.ResolveAlias("nope")
	assert.False(t, ok)
}

func TestDocumentNewChildDocumentInheritsTagTable(t *testing.T) {
	parent := NewDocument(nil)
	parent.tags.Set("!p!", "tag:parent.example,2000:")
	child := parent.NewChildDocument()

	prefix, ok := child.tags.Resolve("!p!")
	require.True(t, ok)
	assert.Equal(t, "tag:parent.example,2000:", prefix)

	assert.Same(t, parent, child.Parent())
	assert.Contains(t, parent.Children(), child)
}
