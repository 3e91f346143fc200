// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package fy parses YAML 1.1/1.2 into an event stream and a node-tree
// document model, and lets callers query the resulting tree with a
// slash-separated path expression language.
//
// The package is a thin facade over internal/engine: Parse, ParseReader
// and ParseSingle build Documents; Document, Node and NodePair expose the tree; Path and
// Walk run a compiled path expression over it.
package fy
