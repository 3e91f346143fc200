// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Configuration surface: functional options over ParseConfig/WalkConfig,
// plus the collaborator interfaces (Diagnostics, Allocator, meta-clear
// hook) that let a caller observe or override core behavior without the
// core depending on any concrete implementation of them.

package engine

// DiagnosticSeverity classifies a diagnostic record.
type DiagnosticSeverity int

const (
	SeverityInfo DiagnosticSeverity = iota
	SeverityWarning
	SeverityError
)

// Diagnostic is a structured record handed to the Diagnostics collaborator.
// The core never formats messages itself: it only populates this struct
// and hands it off.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Mark     Mark
	Code     string
	Message  string
}

// Diagnostics receives structured diagnostic records. An absent
// collaborator defaults to a nil-safe no-op, so the core never needs a
// nil check at the call site.
type Diagnostics interface {
	Report(Diagnostic)
}

// discardDiagnostics is the default Diagnostics collaborator: it drops
// every record. Parse/Walk configuration defaults to this so the core
// never needs a nil check at the call site.
type discardDiagnostics struct{}

func (discardDiagnostics) Report(Diagnostic) {}

// Allocator is the three-operation memory collaborator contract. The
// default allocator (nil Allocator) defers to the Go runtime; a custom
// Allocator is only ever invoked through these three operations.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(buf []byte, size int) []byte
	Free(buf []byte)
}

// MetaClearFunc is invoked exactly once per node when the node is
// destroyed and its meta pointer is non-nil.
type MetaClearFunc func(meta any)

// ParseConfig holds parser/scanner/document-builder configuration. It is
// built from ParseOption values via functional options.
type ParseConfig struct {
	jsonMode            bool
	allowDuplicateKeys  bool
	allowForwardAliases bool
	preserveComments    bool
	accelerate          bool
	colorDiagnostics    bool
	singleDocument      bool
	maxDepth            int
	diagnostics         Diagnostics
	allocator           Allocator
	metaClear           MetaClearFunc

	// acceleratorThreshold is the mapping size above which a lookup
	// accelerator is built lazily.
	acceleratorThreshold int
}

// DefaultParseConfig returns the conservative default: block-capable, no
// duplicate keys, no forward aliases, comments dropped, acceleration on.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{
		accelerate:           true,
		maxDepth:             256,
		diagnostics:          discardDiagnostics{},
		acceleratorThreshold: 8,
	}
}

// ParseOption configures a ParseConfig.
type ParseOption func(*ParseConfig)

// WithJSONMode restricts the scanner/parser to the JSON-compatible subset
// of the grammar.
func WithJSONMode(enable bool) ParseOption {
	return func(c *ParseConfig) { c.jsonMode = enable }
}

// WithAllowDuplicateKeys permits a mapping's second occurrence of a key
// instead of failing the builder.
func WithAllowDuplicateKeys(enable bool) ParseOption {
	return func(c *ParseConfig) { c.allowDuplicateKeys = enable }
}

// WithAllowForwardAliases permits an alias to reference an anchor declared
// later in the same document.
func WithAllowForwardAliases(enable bool) ParseOption {
	return func(c *ParseConfig) { c.allowForwardAliases = enable }
}

// WithPreserveComments records the preserve-comments flag. The scanner does
// not consult it: it always attaches the last comment it saw to the next
// flow-collection start token, and to no other token.
func WithPreserveComments(enable bool) ParseOption {
	return func(c *ParseConfig) { c.preserveComments = enable }
}

// WithAccelerate toggles whether large mappings get a lookup accelerator.
func WithAccelerate(enable bool) ParseOption {
	return func(c *ParseConfig) { c.accelerate = enable }
}

// WithColorDiagnostics toggles ANSI color in rendered diagnostics (a flag
// only; the core never renders color itself).
func WithColorDiagnostics(enable bool) ParseOption {
	return func(c *ParseConfig) { c.colorDiagnostics = enable }
}

// WithSingleDocument tells the parser the stream holds at most one
// document, so any content after that document is a syntax error.
func WithSingleDocument(enable bool) ParseOption {
	return func(c *ParseConfig) { c.singleDocument = enable }
}

// WithMaxDepth bounds reference-loop-detection and YPath traversal depth.
func WithMaxDepth(depth int) ParseOption {
	return func(c *ParseConfig) { c.maxDepth = depth }
}

// WithDiagnostics installs a Diagnostics collaborator.
func WithDiagnostics(d Diagnostics) ParseOption {
	return func(c *ParseConfig) {
		if d == nil {
			d = discardDiagnostics{}
		}
		c.diagnostics = d
	}
}

// WithAllocator installs a custom Allocator collaborator.
func WithAllocator(a Allocator) ParseOption {
	return func(c *ParseConfig) { c.allocator = a }
}

// WithMetaClear installs the meta-clear hook invoked on node teardown.
func WithMetaClear(fn MetaClearFunc) ParseOption {
	return func(c *ParseConfig) { c.metaClear = fn }
}

// JSONMode reports whether the configuration restricts parsing to the
// JSON-compatible grammar subset.
func (c *ParseConfig) JSONMode() bool { return c.jsonMode }

// NewParseConfig applies opts over DefaultParseConfig.
func NewParseConfig(opts ...ParseOption) ParseConfig {
	cfg := DefaultParseConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Walk flags. Two user marker bits plus the system-reserved bits above
// MaxUserMarker.

const (
	// MaxUserMarker is the highest mark bit a caller may set directly;
	// bits above it are system-owned (VisitMarker, RefMarker below).
	MaxUserMarker = 1

	// VisitMarker is the permanent "visited" mark used by both
	// reference-loop detection and walk traversal.
	VisitMarker = MaxUserMarker + 1

	// RefMarker is the transient "on current path" mark used to detect
	// back-edges during depth-first traversal.
	RefMarker = MaxUserMarker + 2

	// SystemMarks is the bitset outside which node.marks must be zero
	// between traversals.
	SystemMarks = (1 << VisitMarker) | (1 << RefMarker)
)

// WalkConfig configures a YPath compile+execute pass.
type WalkConfig struct {
	maxDepth          int
	allowSimpleAfterMulti bool
	strict            bool
	userMarkerA, userMarkerB bool
}

// DefaultWalkConfig mirrors the parser's default depth bound and rejects
// a simple-result component placed after a multi-result one.
func DefaultWalkConfig() WalkConfig {
	return WalkConfig{maxDepth: 256}
}

// WalkOption configures a WalkConfig.
type WalkOption func(*WalkConfig)

// WithWalkMaxDepth bounds traversal depth during a walk.
func WithWalkMaxDepth(depth int) WalkOption {
	return func(c *WalkConfig) { c.maxDepth = depth }
}

// WithAllowSimpleAfterMulti permits a simple-result component after a
// multi-result one, instead of rejecting the path at compile time.
func WithAllowSimpleAfterMulti(enable bool) WalkOption {
	return func(c *WalkConfig) { c.allowSimpleAfterMulti = enable }
}

// WithStrictPathExec promotes a missing-key/out-of-range-index result to a
// PathExecError instead of an empty result set.
func WithStrictPathExec(enable bool) WalkOption {
	return func(c *WalkConfig) { c.strict = enable }
}

// NewWalkConfig applies opts over DefaultWalkConfig.
func NewWalkConfig(opts ...WalkOption) WalkConfig {
	cfg := DefaultWalkConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
