// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(s string) *Node {
	return NewScalarNode([]byte(s), TagStr, PlainScalarStyle)
}

func TestNodeSequenceAppend(t *testing.T) {
	seq := NewSequenceNode(TagSeq, BlockCollectionStyle)
	seq.Append(scalar("a"))
	seq.Append(scalar("b"))
	require.Len(t, seq.Items(), 2)
	assert.Equal(t, "a", string(seq.Items()[0].Value()))
	assert.Same(t, seq, seq.Items()[0].Parent())
}

func TestNodeMappingAddAndLookup(t *testing.T) {
	m := NewMappingNode(TagMap, BlockCollectionStyle)
	ok := m.AddPair(scalar("a"), scalar("1"), false)
	require.True(t, ok)
	ok = m.AddPair(scalar("b"), scalar("2"), false)
	require.True(t, ok)

	v, ok := m.Lookup([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "1", string(v.Value()))

	_, ok = m.Lookup([]byte("missing"))
	assert.False(t, ok)
}

func TestNodeMappingRejectsDuplicateKeyUnlessAllowed(t *testing.T) {
	m := NewMappingNode(TagMap, BlockCollectionStyle)
	require.True(t, m.AddPair(scalar("a"), scalar("1"), false))
	ok := m.AddPair(scalar("a"), scalar("2"), false)
	assert.False(t, ok)
	assert.Len(t, m.Pairs(), 1)

	ok = m.AddPair(scalar("a"), scalar("2"), true)
	assert.True(t, ok)
	assert.Len(t, m.Pairs(), 2)
}

func TestNodeMappingAcceleratorKicksInPastThreshold(t *testing.T) {
	m := NewMappingNode(TagMap, BlockCollectionStyle)
	for i := 0; i < acceleratorThreshold+2; i++ {
		key := string(rune('a' + i))
		require.True(t, m.AddPair(scalar(key), scalar(key), false))
	}
	v, ok := m.Lookup([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "a", string(v.Value()))

	dup := m.AddPair(scalar("a"), scalar("zzz"), false)
	assert.False(t, dup)
}

func TestNodeSortMapping(t *testing.T) {
	m := NewMappingNode(TagMap, BlockCollectionStyle)
	m.AddPair(scalar("b"), scalar("2"), false)
	m.AddPair(scalar("a"), scalar("1"), false)
	m.SortMapping(func(a, b *NodePair) bool {
		return string(a.Key.Value()) < string(b.Key.Value())
	})
	assert.Equal(t, "a", string(m.Pairs()[0].Key.Value()))
	assert.Equal(t, "b", string(m.Pairs()[1].Key.Value()))
}

func TestNodeMappingSortArrayRoundTrip(t *testing.T) {
	m := NewMappingNode(TagMap, BlockCollectionStyle)
	m.AddPair(scalar("b"), scalar("2"), false)
	m.AddPair(scalar("a"), scalar("1"), false)

	arr := m.MappingSortArray()
	require.Len(t, arr, 2)
	arr[0], arr[1] = arr[1], arr[0]
	m.ReleaseSortArray(arr)
	assert.Equal(t, "a", string(m.Pairs()[0].Key.Value()))
}

func TestNodeSetMetaInvokesClearOnReplace(t *testing.T) {
	n := scalar("x")
	var cleared any
	n.SetMeta("first", func(m any) { cleared = m })
	n.SetMeta("second", func(m any) { cleared = m })
	assert.Equal(t, "first", cleared)
	assert.Equal(t, "second", n.Meta())
}

func TestNodeSyntheticFlag(t *testing.T) {
	n := scalar("x")
	assert.False(t, n.IsSynthetic())
	n.MarkSynthetic()
	assert.True(t, n.IsSynthetic())
}

func TestNodeValuePanicsOnNonScalar(t *testing.T) {
	seq := NewSequenceNode(TagSeq, BlockCollectionStyle)
	assert.Panics(t, func() { seq.Value() })
}
