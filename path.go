// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package fy

import "github.com/fy-yaml/fy/internal/engine"

// Path is a compiled path expression ready to Walk against a document.
type Path = engine.Path

// CompilePath parses a slash-separated path expression into a Path.
func CompilePath(expr string, opts ...WalkOption) (*Path, error) {
	cfg := engine.NewWalkConfig(opts...)
	return engine.CompilePath(expr, &cfg)
}

// Walk executes path against doc and returns the matched nodes.
func Walk(path *Path, doc *Document, opts ...WalkOption) ([]*Node, error) {
	cfg := engine.NewWalkConfig(opts...)
	return engine.Execute(path, doc, &cfg)
}
