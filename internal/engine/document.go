// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// normalizeAnchorName puts an anchor name in NFC form before it is used
// as a map key, so two anchors that render identically but were typed
// with different combining-character sequences are treated as the same
// name instead of silently coexisting.
func normalizeAnchorName(name string) string {
	return norm.NFC.String(name)
}

// anchorEntry tracks one live anchor binding: the name, the node it
// currently points to, and whether the name has been bound more than
// once in this document (an alias always resolves to the most recent
// binding, but a walk diagnosing anchor reuse wants to know it happened).
type anchorEntry struct {
	name     string
	node     *Node
	multiple bool
}

// Document is the root of one parsed (or hand-built) YAML document: its
// root node, every live anchor, the tag table and version it was parsed
// under, and links to a parent/children document set when documents are
// composed hierarchically through NewChildDocument (e.g. for an explicit
// include). Documents of one multi-document stream are not linked this way,
// and each starts with its own tag table.
type Document struct {
	// BuildID uniquely identifies this Document instance across a process
	// lifetime, independent of its content; useful as a map key or log
	// correlation ID when many documents are in flight at once.
	BuildID uuid.UUID

	Root *Node

	version  *VersionDirective
	tagDirs  []TagDirective
	tags     *tagTable

	// anchors is insertion-ordered so anchor-declaration order is
	// reproducible in diagnostics; byName additionally accelerates alias
	// resolution.
	anchors []*anchorEntry
	byName  map[string]*anchorEntry
	byNode  map[*Node]*anchorEntry

	cfg *ParseConfig

	parent   *Document
	children []*Document

	// parseError records whether scanning/parsing stopped partway
	// through; Root may still hold a partial tree in that case.
	parseError error
}

// NewDocument creates an empty Document ready to be built into, or to
// have nodes attached by hand.
func NewDocument(cfg *ParseConfig) *Document {
	if cfg == nil {
		c := DefaultParseConfig()
		cfg = &c
	}
	return &Document{
		BuildID: uuid.New(),
		tags:    newTagTable(),
		byName:  make(map[string]*anchorEntry),
		byNode:  make(map[*Node]*anchorEntry),
		cfg:     cfg,
	}
}

// NewChildDocument creates a Document whose tag table starts as a
// copy-on-write clone of parent's, and which is registered in parent's
// Children list.
func (d *Document) NewChildDocument() *Document {
	child := NewDocument(d.cfg)
	child.tags = d.tags.Clone()
	child.parent = d
	d.children = append(d.children, child)
	return child
}

// Parent returns the document this one was created from via
// NewChildDocument, or nil at the top of the hierarchy.
func (d *Document) Parent() *Document { return d.parent }

// Children returns the documents created from this one via
// NewChildDocument.
func (d *Document) Children() []*Document { return d.children }

// ParseError reports the error that stopped scanning/parsing, if any.
func (d *Document) ParseError() error { return d.parseError }

// VersionDirective returns the %YAML directive the document was parsed
// under, or nil if none was present (DefaultVersionMajor.DefaultVersionMinor
// then applies).
func (d *Document) VersionDirective() *VersionDirective { return d.version }

// TagDirectives returns the %TAG directives declared in the document.
func (d *Document) TagDirectives() []TagDirective { return d.tagDirs }

// anchorNames returns the name of every anchor binding in the document, in
// declaration order; a rebound name appears once per binding.
func (d *Document) anchorNames() []string {
	names := make([]string, len(d.anchors))
	for i, a := range d.anchors {
		names[i] = a.name
	}
	return names
}

// BindAnchor associates name with node, becoming the target any alias to
// name resolves to from this point forward. A name already bound is
// rebound rather than rejected: ResolveAlias follows the "most recent
// binding wins" rule a sequence like "&x [1, &x 2, *x]" depends on, but
// the earlier binding's own entry and node are retained (not overwritten)
// so a walk over the document can still recover "&x" having pointed at
// the first node for round-trip fidelity.
func (d *Document) BindAnchor(name string, node *Node) {
	name = normalizeAnchorName(name)
	node.anchorName = name
	e := &anchorEntry{name: name, node: node}
	if existing, ok := d.byName[name]; ok {
		existing.multiple = true
		e.multiple = true
	}
	d.byName[name] = e
	d.byNode[node] = e
	d.anchors = append(d.anchors, e)
}

// ResolveAlias returns the node currently bound to name.
func (d *Document) ResolveAlias(name string) (*Node, bool) {
	e, ok := d.byName[normalizeAnchorName(name)]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// AnchorOf returns the anchor name bound to node, if any.
func (d *Document) AnchorOf(node *Node) (string, bool) {
	e, ok := d.byNode[node]
	if !ok {
		return "", false
	}
	return e.name, true
}

// newNode allocates a Node of the given kind attributed to this document;
// the caller sets its tag and payload.
func (d *Document) newNode(kind Kind) *Node {
	return &Node{Kind: kind, doc: d}
}
