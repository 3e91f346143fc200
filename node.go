// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package fy

import "github.com/fy-yaml/fy/internal/engine"

// Kind discriminates a Node's tagged-union variant.
type Kind = engine.Kind

const (
	ScalarNode   = engine.ScalarNodeKind
	SequenceNode = engine.SequenceNodeKind
	MappingNode  = engine.MappingNodeKind
)

// Style records how a scalar was written in the source.
type Style = engine.ScalarStyle

const (
	AnyStyle          = engine.AnyScalarStyle
	PlainStyle        = engine.PlainScalarStyle
	SingleQuotedStyle = engine.SingleQuotedScalarStyle
	DoubleQuotedStyle = engine.DoubleQuotedScalarStyle
	LiteralStyle      = engine.LiteralScalarStyle
	FoldedStyle       = engine.FoldedScalarStyle
)

// CollectionStyle distinguishes block from flow for sequences and mappings.
type CollectionStyle = engine.CollectionStyle

const (
	AnyCollectionStyle   = engine.AnyCollectionStyle
	BlockStyle           = engine.BlockCollectionStyle
	FlowStyle            = engine.FlowCollectionStyle
)

// Node is the tagged-union value at the center of the document model.
type Node = engine.Node

// NodePair is one key/value entry of a mapping node.
type NodePair = engine.NodePair

// NewScalarNode builds a leaf node holding value under tag.
func NewScalarNode(value []byte, tag string, style Style) *Node {
	return engine.NewScalarNode(value, tag, style)
}

// NewSequenceNode builds an empty sequence node.
func NewSequenceNode(tag string, style CollectionStyle) *Node {
	return engine.NewSequenceNode(tag, style)
}

// NewMappingNode builds an empty mapping node.
func NewMappingNode(tag string, style CollectionStyle) *Node {
	return engine.NewMappingNode(tag, style)
}

// HasReferenceLoop reports whether root's subtree contains a cycle,
// bounded by maxDepth (0 selects the engine default).
func HasReferenceLoop(root *Node, maxDepth int) (bool, error) {
	return engine.HasReferenceLoop(root, maxDepth)
}
