// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event: the emission unit the Parser produces, one per call to Parse.

package engine

import "fmt"

// EventType enumerates the kinds of parse event.
type EventType int8

const (
	NoEvent EventType = iota
	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	AliasEvent
	ScalarEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
)

var eventNames = [...]string{
	NoEvent:            "none",
	StreamStartEvent:   "stream-start",
	StreamEndEvent:     "stream-end",
	DocumentStartEvent: "document-start",
	DocumentEndEvent:   "document-end",
	AliasEvent:         "alias",
	ScalarEvent:        "scalar",
	SequenceStartEvent: "sequence-start",
	SequenceEndEvent:   "sequence-end",
	MappingStartEvent:  "mapping-start",
	MappingEndEvent:    "mapping-end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(e))
	}
	return eventNames[e]
}

// VersionDirective is the %YAML directive payload.
type VersionDirective struct {
	Major, Minor int8
}

// TagDirective is one %TAG directive: a handle bound to a prefix.
type TagDirective struct {
	Handle string
	Prefix string

	// explicitlySet distinguishes a directive actually written in the
	// document from a default-table entry: only a handle that was not
	// explicitlySet by an earlier directive in the same document may be
	// overridden by a later one.
	explicitlySet bool
}

// Event is an emission unit produced by the Parser. Every event references
// the tokens it originated from so downstream consumers (Document Builder,
// diagnostics) can recover source position without re-scanning.
type Event struct {
	Type  EventType
	Start Mark
	End   Mark

	// Tokens that produced this event, in source order. A scalar event
	// may reference an anchor token, a tag token, and the scalar token;
	// a start event references its anchor/tag tokens plus the collection
	// start token.
	Tokens []*Token

	// Value is only meaningful for ScalarEvent (scalar content); an
	// AliasEvent carries the alias name in Anchor.
	Anchor []byte
	Tag    []byte
	Value  []byte
	Style  ScalarStyle

	// CollectionStyle applies to SequenceStartEvent and MappingStartEvent.
	CollectionStyle CollectionStyle

	// Implicit records whether a document start/end indicator, or a
	// scalar/collection tag, was implicit.
	Implicit bool

	// QuotedImplicit additionally records whether a non-plain scalar's
	// tag is still implicit (resolvable without the explicit tag).
	QuotedImplicit bool

	// VersionDirective/TagDirectives accompany DocumentStartEvent.
	VersionDirective *VersionDirective
	TagDirectives    []TagDirective
}
