// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Token and Atom: the lexical units the Scanner produces and the Parser
// consumes. A Token carries a kind and a source range (Atom) plus
// style-specific payload fields.

package engine

import "fmt"

// TokenType enumerates the kinds of lexical unit the Scanner can produce.
type TokenType int

const (
	NoToken TokenType = iota

	StreamStartToken
	StreamEndToken

	VersionDirectiveToken
	TagDirectiveToken
	DocumentStartToken
	DocumentEndToken

	BlockSequenceStartToken
	BlockMappingStartToken
	BlockEndToken

	FlowSequenceStartToken
	FlowSequenceEndToken
	FlowMappingStartToken
	FlowMappingEndToken

	BlockEntryToken
	FlowEntryToken
	KeyToken
	ValueToken

	AliasToken
	AnchorToken
	TagToken
	ScalarToken
)

func (t TokenType) String() string {
	switch t {
	case NoToken:
		return "NoToken"
	case StreamStartToken:
		return "StreamStartToken"
	case StreamEndToken:
		return "StreamEndToken"
	case VersionDirectiveToken:
		return "VersionDirectiveToken"
	case TagDirectiveToken:
		return "TagDirectiveToken"
	case DocumentStartToken:
		return "DocumentStartToken"
	case DocumentEndToken:
		return "DocumentEndToken"
	case BlockSequenceStartToken:
		return "BlockSequenceStartToken"
	case BlockMappingStartToken:
		return "BlockMappingStartToken"
	case BlockEndToken:
		return "BlockEndToken"
	case FlowSequenceStartToken:
		return "FlowSequenceStartToken"
	case FlowSequenceEndToken:
		return "FlowSequenceEndToken"
	case FlowMappingStartToken:
		return "FlowMappingStartToken"
	case FlowMappingEndToken:
		return "FlowMappingEndToken"
	case BlockEntryToken:
		return "BlockEntryToken"
	case FlowEntryToken:
		return "FlowEntryToken"
	case KeyToken:
		return "KeyToken"
	case ValueToken:
		return "ValueToken"
	case AliasToken:
		return "AliasToken"
	case AnchorToken:
		return "AnchorToken"
	case TagToken:
		return "TagToken"
	case ScalarToken:
		return "ScalarToken"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// ScalarStyle records how a scalar was written in the source.
type ScalarStyle int8

const (
	AnyScalarStyle ScalarStyle = iota
	PlainScalarStyle
	SingleQuotedScalarStyle
	DoubleQuotedScalarStyle
	LiteralScalarStyle
	FoldedScalarStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainScalarStyle:
		return "Plain"
	case SingleQuotedScalarStyle:
		return "Single"
	case DoubleQuotedScalarStyle:
		return "Double"
	case LiteralScalarStyle:
		return "Literal"
	case FoldedScalarStyle:
		return "Folded"
	default:
		return "Any"
	}
}

// CollectionStyle distinguishes block from flow for sequences and mappings.
type CollectionStyle int8

const (
	AnyCollectionStyle CollectionStyle = iota
	BlockCollectionStyle
	FlowCollectionStyle
)

// ChompingIndicator records the trailing +/- on a block scalar header.
type ChompingIndicator int8

const (
	ClipChomping ChompingIndicator = iota // default: single trailing newline
	StripChomping                         // '-': no trailing newline
	KeepChomping                          // '+': keep all trailing newlines
)

// Atom is the source-range + decoded-content view shared by every Token.
type Atom struct {
	Start Mark
	End   Mark
	Input *Input // originating input stream, for fy_node_get_input-style queries

	// raw holds the literal source bytes of the atom (including quotes,
	// block-scalar headers, etc); decoded is filled in lazily by Decode.
	raw     []byte
	decoded []byte
	decodedOK bool
}

// NewAtom builds an Atom from a raw byte slice and its source range.
func NewAtom(raw []byte, start, end Mark, in *Input) Atom {
	return Atom{Start: start, End: end, Input: in, raw: append([]byte(nil), raw...)}
}

// Raw returns the literal bytes the atom covers in the source.
func (a *Atom) Raw() []byte { return a.raw }

// Decode lazily computes and caches the scanner-decoded scalar content
// (escape processing for quoted styles, indentation stripping and line-fold
// processing for block styles). Plain/flow scalars decode to themselves
// modulo YAML line-folding, handled by the scanner at scan time.
func (a *Atom) Decode() []byte {
	if !a.decodedOK {
		a.decoded = a.raw
		a.decodedOK = true
	}
	return a.decoded
}

// setDecoded lets the scanner install pre-decoded content (it already does
// the escape/fold processing while scanning quoted and block scalars).
func (a *Atom) setDecoded(b []byte) {
	a.decoded = b
	a.decodedOK = true
}

// Token is a lexical unit with a kind, a source range (via Atom), a scalar
// style, and style-specific payload fields.
type Token struct {
	Type  TokenType
	Atom  Atom
	Style ScalarStyle

	// Value holds the decoded payload for ALIAS/ANCHOR/SCALAR/TAG tokens
	// and the handle for TAG_DIRECTIVE tokens.
	Value []byte

	// Suffix holds the tag suffix for TagToken.
	Suffix []byte

	// Prefix holds the tag directive prefix for TagDirectiveToken.
	Prefix []byte

	// VersionMajor/VersionMinor hold the %YAML directive version.
	VersionMajor, VersionMinor int8

	// Chomping/IndentIndicator are set for literal/folded scalar headers.
	Chomping       ChompingIndicator
	IndentIndicator int // 0 means "auto-detect from first non-empty line"

	// Comment carries the last comment seen before this token, attached
	// here for later re-emission rather than discarded.
	Comment []byte
}

func (t *Token) String() string {
	return fmt.Sprintf("%s@%s", t.Type, t.Atom.Start)
}

// StartMark/EndMark are convenience accessors for the token's source range.
func (t *Token) StartMark() Mark { return t.Atom.Start }
func (t *Token) EndMark() Mark   { return t.Atom.End }
