// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package fy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleBuildsExpectedTree(t *testing.T) {
	doc, err := ParseSingle([]byte("a: 1\nb: [2, 3]\n"))
	require.NoError(t, err)
	require.Equal(t, MappingNode, doc.Root.Kind)

	v, ok := doc.Root.Lookup([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "1", string(v.Value()))

	b, ok := doc.Root.Lookup([]byte("b"))
	require.True(t, ok)
	require.Equal(t, SequenceNode, b.Kind)
	assert.Len(t, b.Items(), 2)
}

func TestParseMultiDocumentStream(t *testing.T) {
	var docs []*Document
	err := Parse([]byte("---\na: 1\n---\nb: 2\n"), func(d *Document) bool {
		docs = append(docs, d)
		return true
	})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestHasReferenceLoopFacade(t *testing.T) {
	doc, err := ParseSingle([]byte("a: &c\n  b: *c\n"))
	require.NoError(t, err)
	loop, err := HasReferenceLoop(doc.Root, 256)
	require.NoError(t, err)
	assert.True(t, loop)
}

func TestWalkFacadeSimplePath(t *testing.T) {
	doc, err := ParseSingle([]byte("a:\n  b: 1\n"))
	require.NoError(t, err)
	path, err := CompilePath("a/b")
	require.NoError(t, err)
	matches, err := Walk(path, doc)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", string(matches[0].Value()))
}
