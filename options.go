// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package fy

import "github.com/fy-yaml/fy/internal/engine"

// Option configures a Parse call.
type Option = engine.ParseOption

// WithJSONMode restricts parsing to the JSON-compatible subset of the grammar.
func WithJSONMode(enable bool) Option { return engine.WithJSONMode(enable) }

// WithAllowDuplicateKeys permits a mapping's second occurrence of a key.
func WithAllowDuplicateKeys(enable bool) Option { return engine.WithAllowDuplicateKeys(enable) }

// WithAllowForwardAliases permits an alias to reference an anchor declared
// later in the same document.
func WithAllowForwardAliases(enable bool) Option { return engine.WithAllowForwardAliases(enable) }

// WithPreserveComments keeps scanned comments attached to nearby tokens.
func WithPreserveComments(enable bool) Option { return engine.WithPreserveComments(enable) }

// WithAccelerate toggles whether large mappings get a lookup accelerator.
func WithAccelerate(enable bool) Option { return engine.WithAccelerate(enable) }

// WithSingleDocument tells the parser the stream holds at most one document.
func WithSingleDocument(enable bool) Option { return engine.WithSingleDocument(enable) }

// WithMaxDepth bounds reference-loop-detection and path traversal depth.
func WithMaxDepth(depth int) Option { return engine.WithMaxDepth(depth) }

// WithDiagnostics installs a collaborator that receives structured
// diagnostic records instead of having them discarded.
func WithDiagnostics(d engine.Diagnostics) Option { return engine.WithDiagnostics(d) }

// WithAllocator installs a custom memory allocator collaborator.
func WithAllocator(a engine.Allocator) Option { return engine.WithAllocator(a) }

// WithMetaClear installs the hook invoked when a node carrying attached
// metadata is destroyed.
func WithMetaClear(fn engine.MetaClearFunc) Option { return engine.WithMetaClear(fn) }

// WalkOption configures a path compile+execute pass.
type WalkOption = engine.WalkOption

// WithWalkMaxDepth bounds traversal depth during a walk.
func WithWalkMaxDepth(depth int) WalkOption { return engine.WithWalkMaxDepth(depth) }

// WithAllowSimpleAfterMulti permits a simple-result path component after a
// multi-result one, instead of rejecting the path at compile time.
func WithAllowSimpleAfterMulti(enable bool) WalkOption {
	return engine.WithAllowSimpleAfterMulti(enable)
}

// WithStrictPathExec promotes a missing-key/out-of-range-index result to
// an error instead of an empty result set.
func WithStrictPathExec(enable bool) WalkOption { return engine.WithStrictPathExec(enable) }
