// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustComposeSingle(t *testing.T, src string) *Document {
	t.Helper()
	cfg := NewParseConfig(WithSingleDocument(true))
	in := NewInputString("<test>", src)
	sc := NewScanner(in, &cfg)
	p := NewParser(sc, &cfg)
	c := NewComposer(p, &cfg)
	doc, err := c.ComposeSingle()
	require.NoError(t, err)
	return doc
}

func TestYPathSimpleMapKey(t *testing.T) {
	doc := mustComposeSingle(t, "a:\n  b: 1\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("a/b", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", string(matches[0].Value()))
}

func TestYPathSequenceIndex(t *testing.T) {
	doc := mustComposeSingle(t, "[10, 20, 30]\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("1", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "20", string(matches[0].Value()))
}

func TestYPathEveryChild(t *testing.T) {
	doc := mustComposeSingle(t, "a: 1\nb: 2\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("*", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestYPathEveryLeaf(t *testing.T) {
	doc := mustComposeSingle(t, "a:\n  b: 1\n  c: 2\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("@", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestYPathParentNavigation(t *testing.T) {
	doc := mustComposeSingle(t, "a:\n  b: 1\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("a/b/..", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, MappingNodeKind, matches[0].Kind)
}

func TestYPathStartFromAlias(t *testing.T) {
	doc := mustComposeSingle(t, "a: &x {b: 1}\nc: *x\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("&x/b", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", string(matches[0].Value()))
}

func TestYPathCompileRejectsEmptyComponent(t *testing.T) {
	cfg := DefaultWalkConfig()
	_, err := CompilePath("a//b", &cfg)
	require.Error(t, err)
	var compileErr *PathCompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestYPathCompileRejectsSimpleAfterMultiByDefault(t *testing.T) {
	cfg := DefaultWalkConfig()
	_, err := CompilePath("*/b", &cfg)
	require.Error(t, err)
}

func TestYPathAllowSimpleAfterMultiPermitsIt(t *testing.T) {
	cfg := NewWalkConfig(WithAllowSimpleAfterMulti(true))
	_, err := CompilePath("*/b", &cfg)
	require.NoError(t, err)
}

func TestYPathStrictModeErrorsOnMissingKey(t *testing.T) {
	doc := mustComposeSingle(t, "a: 1\n")
	cfg := NewWalkConfig(WithStrictPathExec(true))
	path, err := CompilePath("missing", &cfg)
	require.NoError(t, err)
	_, err = Execute(path, doc, &cfg)
	require.Error(t, err)
	var execErr *PathExecError
	require.ErrorAs(t, err, &execErr)
}

// TestYPathEveryChildRecursiveThenKeyYieldsDocumentOrder pins scenario 4:
// `/a/**/c` against `{a: {b: {c: 1}, c: 2}, c: 3}` yields the two nodes
// with value 1 and value 2, in that order, excluding the root-level
// `c: 3` the walk never reaches (it starts at `/a`). A simple component
// following a multi-result one is rejected at compile time unless the
// config explicitly allows it, so this path requires
// WithAllowSimpleAfterMulti.
func TestYPathEveryChildRecursiveThenKeyYieldsDocumentOrder(t *testing.T) {
	doc := mustComposeSingle(t, "a:\n  b:\n    c: 1\n  c: 2\nc: 3\n")
	cfg := NewWalkConfig(WithAllowSimpleAfterMulti(true))
	path, err := CompilePath("a/**/c", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "1", string(matches[0].Value()))
	assert.Equal(t, "2", string(matches[1].Value()))
}

func TestYPathExecuteCollapsesDuplicateNodePointers(t *testing.T) {
	doc := mustComposeSingle(t, "a: &x 1\nb: *x\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("*", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", string(matches[0].Value()))
}

func TestYPathNonStrictModeReturnsEmptyOnMissingKey(t *testing.T) {
	doc := mustComposeSingle(t, "a: 1\n")
	cfg := DefaultWalkConfig()
	path, err := CompilePath("missing", &cfg)
	require.NoError(t, err)
	matches, err := Execute(path, doc, &cfg)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
