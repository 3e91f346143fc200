// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"
)

// scanIndent tracks one level of block indentation: the column it opened
// at, and whether that level was synthesized for an indentless block
// sequence (one whose "- " appears at the same column as its parent
// mapping key, so BLOCK-END must not be paired with a BLOCK-SEQUENCE-START
// that was never actually pushed for it).
type scanIndent struct {
	column      int
	generatedSeq bool
}

// scanSimpleKey is a candidate implicit mapping key: a position the
// scanner may still retroactively turn into a KeyToken if ':' follows
// before the key is invalidated (by a line break, a length overrun, or
// entering a context where keys are not possible).
type scanSimpleKey struct {
	tokenIndex int // index into the pending token queue where KEY would be inserted
	mark       Mark
	possible   bool
	required   bool
	flowLevel  int
}

// scanFlow is one level of flow-collection nesting.
type scanFlow struct {
	mapping bool // true: "{...}", false: "[...]"
}

// Scanner turns an Input into a Token stream. It is a single-pass,
// single-document-at-a-time producer: Next blocks (conceptually) until a
// token is ready, buffering only as many tokens as a simple key's
// retroactive KEY insertion requires.
type Scanner struct {
	in  *Input
	cfg *ParseConfig

	queue      []*Token
	queueHead  int

	done       bool
	streamStartProduced bool
	streamEndProduced   bool

	indent      int
	indents     []scanIndent
	simpleKeyAllowed bool
	simpleKeys  []scanSimpleKey

	flowLevel int
	flows     []scanFlow

	lastComment []byte

	err error
}

// NewScanner builds a Scanner reading from in under cfg.
func NewScanner(in *Input, cfg *ParseConfig) *Scanner {
	return &Scanner{in: in, cfg: cfg, simpleKeyAllowed: true}
}

// Err returns the first lexical error encountered, if any.
func (s *Scanner) Err() error { return s.err }

// Next returns the next token, or nil once StreamEndToken has been
// produced (or a lexical error stopped the scan).
func (s *Scanner) Next() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	for {
		pending := false
		for _, k := range s.simpleKeys {
			if k.possible && k.tokenIndex == s.queueHead {
				pending = true
			}
		}
		if s.queueHead < len(s.queue) && !pending {
			break
		}
		if s.streamEndProduced {
			return nil, nil
		}
		if err := s.fetchMoreTokens(); err != nil {
			s.err = err
			return nil, err
		}
	}
	t := s.queue[s.queueHead]
	s.queueHead++
	return t, nil
}

func (s *Scanner) push(t *Token) { s.queue = append(s.queue, t) }

// insertAt inserts t into the queue at the given absolute index (used to
// retroactively insert a KeyToken before an already-queued scalar/anchor
// run once ':' confirms it was a mapping key).
func (s *Scanner) insertAt(idx int, t *Token) {
	s.queue = append(s.queue, nil)
	copy(s.queue[idx+1:], s.queue[idx:])
	s.queue[idx] = t
}

func (s *Scanner) fail(mark Mark, format string, args ...any) error {
	return &LexicalError{Mark: mark, Message: fmt.Sprintf(format, args...)}
}

// jsonMode reports whether the scanner is restricted to the
// JSON-compatible grammar subset: flow style only, no directives,
// anchors, aliases, tags, or block collections, and plain scalars
// confined to the JSON number/boolean/null lexemes.
func (s *Scanner) jsonMode() bool { return s.cfg != nil && s.cfg.jsonMode }

func (s *Scanner) jsonModeReject(mark Mark, what string) error {
	return s.fail(mark, "%s are not permitted in JSON mode", what)
}

func (s *Scanner) fetchMoreTokens() error {
	if !s.streamStartProduced {
		s.streamStartProduced = true
		s.push(&Token{Type: StreamStartToken, Atom: Atom{Start: s.in.Mark(), End: s.in.Mark()}})
		return nil
	}

	s.skipToNextToken()
	s.staleSimpleKeys()

	if err := s.unrollIndent(s.in.Mark().Column); err != nil {
		return err
	}

	r := s.in.Peek()
	switch {
	case s.in.AtEOF():
		return s.fetchStreamEnd()
	case s.in.Mark().Column == 0 && s.in.At(0, "---") && s.in.IsBlankZ(3):
		return s.fetchDocumentIndicator(DocumentStartToken, "---")
	case s.in.Mark().Column == 0 && s.in.At(0, "...") && s.in.IsBlankZ(3):
		return s.fetchDocumentIndicator(DocumentEndToken, "...")
	case r == '%' && s.in.Mark().Column == 0:
		return s.fetchDirective()
	case r == '[':
		return s.fetchFlowCollectionStart(FlowSequenceStartToken, false)
	case r == '{':
		return s.fetchFlowCollectionStart(FlowMappingStartToken, true)
	case r == ']':
		return s.fetchFlowCollectionEnd(FlowSequenceEndToken)
	case r == '}':
		return s.fetchFlowCollectionEnd(FlowMappingEndToken)
	case r == ',':
		return s.fetchFlowEntry()
	case r == '-' && s.in.IsBlankZ(1):
		return s.fetchBlockEntry()
	case r == '?' && (s.flowLevel > 0 || s.in.IsBlankZ(1)):
		return s.fetchKey()
	case r == ':' && (s.flowLevel > 0 || s.in.IsBlankZ(1)):
		return s.fetchValue()
	case r == '&':
		return s.fetchAnchorOrAlias(AnchorToken)
	case r == '*':
		return s.fetchAnchorOrAlias(AliasToken)
	case r == '!':
		return s.fetchTag()
	case r == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case r == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case r == '\'':
		return s.fetchFlowScalar(true)
	case r == '"':
		return s.fetchFlowScalar(false)
	case s.isPlainStart(r):
		return s.fetchPlainScalar()
	}
	return s.fail(s.in.Mark(), "found character %q that cannot start a token", string(r))
}

func (s *Scanner) isPlainStart(r rune) bool {
	if r == 0 {
		return false
	}
	switch r {
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case '-', '?', ':':
		// handled by dedicated branches above when followed by blank;
		// otherwise they are valid plain-scalar leaders.
		return true
	}
	return true
}

func (s *Scanner) skipToNextToken() {
	for {
		for s.in.Peek() == ' ' || (s.flowLevel > 0 && s.in.Peek() == '\t') {
			s.in.Advance()
		}
		if s.in.Peek() == '#' {
			s.scanComment()
			continue
		}
		if s.in.IsLineBreakZ(0) && !s.in.AtEOF() {
			s.in.Advance()
			if s.flowLevel == 0 {
				s.simpleKeyAllowed = true
			}
			continue
		}
		break
	}
}

func (s *Scanner) scanComment() {
	start := s.in.Mark()
	var b strings.Builder
	for !s.in.IsLineBreakZ(0) {
		r, w := s.in.PeekAt(0)
		if w == 0 {
			break
		}
		b.WriteRune(r)
		s.in.Advance()
	}
	_ = start
	s.lastComment = []byte(strings.TrimRight(b.String(), " \t"))
}

func (s *Scanner) takeComment() []byte {
	c := s.lastComment
	s.lastComment = nil
	return c
}

// unrollIndent pops every indent level deeper than column, emitting a
// BlockEndToken per level (skipping levels that were synthesized for an
// indentless sequence, which own no matching start token).
func (s *Scanner) unrollIndent(column int) error {
	if s.flowLevel > 0 {
		return nil
	}
	for len(s.indents) > 0 && s.indents[len(s.indents)-1].column > column {
		top := s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
		if !top.generatedSeq {
			mark := s.in.Mark()
			s.push(&Token{Type: BlockEndToken, Atom: Atom{Start: mark, End: mark}})
		}
	}
	return nil
}

func (s *Scanner) rollIndent(column int, tokType TokenType, generatedSeq bool, mark Mark) {
	if s.flowLevel > 0 {
		return
	}
	if len(s.indents) > 0 && s.indents[len(s.indents)-1].column >= column {
		return
	}
	s.indents = append(s.indents, scanIndent{column: column, generatedSeq: generatedSeq})
	s.push(&Token{Type: tokType, Atom: Atom{Start: mark, End: mark}})
}

// staleSimpleKeys invalidates any pending simple key whose line has ended
// or whose atom has exceeded the length ceiling.
func (s *Scanner) staleSimpleKeys() {
	for i := range s.simpleKeys {
		k := &s.simpleKeys[i]
		if !k.possible {
			continue
		}
		if k.mark.Line != s.in.Mark().Line || s.in.Mark().Index-k.mark.Index > simpleKeyLengthCeiling {
			if k.required {
				s.err = s.fail(s.in.Mark(), "could not find expected ':' for simple key")
			}
			k.possible = false
		}
	}
}

func (s *Scanner) saveSimpleKeyCandidate() {
	required := s.flowLevel == 0 && s.indentOf() == s.in.Mark().Column
	s.removeSimpleKeyAtLevel(s.flowLevel)
	if !s.simpleKeyAllowed {
		return
	}
	s.simpleKeys = append(s.simpleKeys, scanSimpleKey{
		tokenIndex: len(s.queue),
		mark:       s.in.Mark(),
		possible:   true,
		required:   required,
		flowLevel:  s.flowLevel,
	})
}

func (s *Scanner) removeSimpleKeyAtLevel(level int) {
	for i := range s.simpleKeys {
		if s.simpleKeys[i].flowLevel == level {
			s.simpleKeys[i].possible = false
		}
	}
}

func (s *Scanner) indentOf() int {
	if len(s.indents) == 0 {
		return -1
	}
	return s.indents[len(s.indents)-1].column
}

// confirmSimpleKey turns the most recent pending candidate at the current
// flow level into a real KEY, inserting a KeyToken ahead of its tokens and
// pushing an indent level if this is the first key seen at this column.
func (s *Scanner) confirmSimpleKey() bool {
	for i := len(s.simpleKeys) - 1; i >= 0; i-- {
		k := &s.simpleKeys[i]
		if k.flowLevel != s.flowLevel {
			continue
		}
		if !k.possible {
			return false
		}
		s.insertAt(k.tokenIndex, &Token{Type: KeyToken, Atom: Atom{Start: k.mark, End: k.mark}})
		if s.flowLevel == 0 && k.mark.Column > s.indentOf() {
			s.indents = append(s.indents, scanIndent{column: k.mark.Column})
			s.insertAt(k.tokenIndex, &Token{Type: BlockMappingStartToken, Atom: Atom{Start: k.mark, End: k.mark}})
		}
		k.possible = false
		return true
	}
	return false
}

func (s *Scanner) fetchStreamEnd() error {
	s.unrollIndent(-1)
	s.simpleKeyAllowed = false
	s.simpleKeys = nil
	mark := s.in.Mark()
	s.push(&Token{Type: StreamEndToken, Atom: Atom{Start: mark, End: mark}})
	s.streamEndProduced = true
	return nil
}

func (s *Scanner) fetchDocumentIndicator(typ TokenType, lit string) error {
	s.unrollIndent(-1)
	s.removeSimpleKeyAtLevel(0)
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	s.in.AdvanceBy(len(lit))
	s.push(&Token{Type: typ, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(typ TokenType, mapping bool) error {
	s.saveSimpleKeyCandidate()
	s.flowLevel++
	s.flows = append(s.flows, scanFlow{mapping: mapping})
	s.simpleKeyAllowed = true
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: typ, Atom: Atom{Start: start, End: s.in.Mark()}, Comment: s.takeComment()})
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(typ TokenType) error {
	s.removeSimpleKeyAtLevel(s.flowLevel)
	if s.flowLevel > 0 {
		s.flowLevel--
		s.flows = s.flows[:len(s.flows)-1]
	}
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: typ, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	s.removeSimpleKeyAtLevel(s.flowLevel)
	s.simpleKeyAllowed = true
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: FlowEntryToken, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel == 0 {
		if s.jsonMode() {
			return s.jsonModeReject(s.in.Mark(), "block sequences")
		}
		if !s.simpleKeyAllowed {
			return s.fail(s.in.Mark(), "block sequence entries are not allowed in this context")
		}
		s.rollIndent(s.in.Mark().Column, BlockSequenceStartToken, false, s.in.Mark())
	} else {
		// "-" inside flow context is only meaningful at the very start of
		// a flow sequence entry; elsewhere it is a plain scalar leader.
	}
	s.removeSimpleKeyAtLevel(s.flowLevel)
	s.simpleKeyAllowed = true
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: BlockEntryToken, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchKey() error {
	if s.flowLevel == 0 {
		if s.jsonMode() {
			return s.jsonModeReject(s.in.Mark(), "block mappings")
		}
		if !s.simpleKeyAllowed {
			return s.fail(s.in.Mark(), "mapping keys are not allowed in this context")
		}
		s.rollIndent(s.in.Mark().Column, BlockMappingStartToken, false, s.in.Mark())
	}
	s.removeSimpleKeyAtLevel(s.flowLevel)
	s.simpleKeyAllowed = s.flowLevel == 0
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: KeyToken, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchValue() error {
	if s.flowLevel == 0 && s.jsonMode() {
		return s.jsonModeReject(s.in.Mark(), "block mappings")
	}
	if s.confirmSimpleKey() {
		s.simpleKeyAllowed = false
	} else {
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return s.fail(s.in.Mark(), "mapping values are not allowed in this context")
			}
			s.rollIndent(s.in.Mark().Column, BlockMappingStartToken, false, s.in.Mark())
		}
		s.simpleKeyAllowed = s.flowLevel == 0
	}
	start := s.in.Mark()
	s.in.Advance()
	s.push(&Token{Type: ValueToken, Atom: Atom{Start: start, End: s.in.Mark()}})
	return nil
}

func (s *Scanner) fetchAnchorOrAlias(typ TokenType) error {
	if s.jsonMode() {
		return s.jsonModeReject(s.in.Mark(), anchorKind(typ)+"s")
	}
	s.saveSimpleKeyCandidate()
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	s.in.Advance() // consume '&' or '*'
	var b strings.Builder
	for isAnchorChar(s.in.Peek()) {
		b.WriteRune(s.in.Peek())
		s.in.Advance()
	}
	if b.Len() == 0 {
		return s.fail(start, "while scanning an %s, did not find expected alphabetic or numeric character", anchorKind(typ))
	}
	s.push(&Token{Type: typ, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(b.String())})
	return nil
}

func anchorKind(t TokenType) string {
	if t == AliasToken {
		return "alias"
	}
	return "anchor"
}

func isAnchorChar(r rune) bool {
	if r == 0 {
		return false
	}
	switch r {
	case ',', '[', ']', '{', '}', ' ', '\t', '\n', '\r':
		return false
	}
	return true
}

func (s *Scanner) fetchTag() error {
	if s.jsonMode() {
		return s.jsonModeReject(s.in.Mark(), "tags")
	}
	s.saveSimpleKeyCandidate()
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	s.in.Advance() // consume '!'

	handle := "!"
	var suffix strings.Builder

	if s.in.Peek() == '<' {
		s.in.Advance()
		for s.in.Peek() != '>' && !s.in.IsBlankZ(0) {
			suffix.WriteRune(s.in.Peek())
			s.in.Advance()
		}
		if s.in.Peek() != '>' {
			return s.fail(start, "while scanning a tag, did not find the expected '>'")
		}
		s.in.Advance()
		s.push(&Token{Type: TagToken, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(""), Suffix: []byte(suffix.String())})
		return nil
	}

	if s.in.Peek() == '!' {
		handle = "!!"
		s.in.Advance()
	} else {
		// scan a named handle "!foo!" if present
		var h strings.Builder
		for isWordChar(s.in.Peek()) {
			h.WriteRune(s.in.Peek())
			s.in.Advance()
		}
		if s.in.Peek() == '!' && h.Len() > 0 {
			handle = "!" + h.String() + "!"
			s.in.Advance()
		} else {
			// not a secondary/named handle: what we consumed is the suffix
			// of a non-specific "!" tag.
			suffix.WriteString(h.String())
			handle = "!"
			s.push(&Token{Type: TagToken, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(handle), Suffix: []byte(suffix.String())})
			return nil
		}
	}

	for isTagURIChar(s.in.Peek()) {
		suffix.WriteRune(s.in.Peek())
		s.in.Advance()
	}
	s.push(&Token{Type: TagToken, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(handle), Suffix: []byte(suffix.String())})
	return nil
}

func isWordChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-'
}

func isTagURIChar(r rune) bool {
	if r == 0 {
		return false
	}
	switch r {
	case ' ', '\t', '\n', '\r', ',', '[', ']', '{', '}':
		return false
	}
	return true
}

func (s *Scanner) fetchBlockScalar(literal bool) error {
	if s.jsonMode() {
		return s.jsonModeReject(s.in.Mark(), "block scalars")
	}
	s.removeSimpleKeyAtLevel(s.flowLevel)
	s.simpleKeyAllowed = true
	start := s.in.Mark()
	s.in.Advance() // '|' or '>'

	chomping := ClipChomping
	indentIndicator := 0
	for {
		r := s.in.Peek()
		if r == '+' {
			chomping = KeepChomping
			s.in.Advance()
		} else if r == '-' {
			chomping = StripChomping
			s.in.Advance()
		} else if r >= '1' && r <= '9' {
			indentIndicator = int(r - '0')
			s.in.Advance()
		} else {
			break
		}
	}
	s.scanComment()
	if !s.in.IsLineBreakZ(0) {
		return s.fail(s.in.Mark(), "while scanning a block scalar, did not find expected comment or line break")
	}
	s.in.Advance()

	baseIndent := s.indentOf()
	if baseIndent < 0 {
		baseIndent = 0
	}
	blockIndent := -1
	if indentIndicator > 0 {
		blockIndent = baseIndent + indentIndicator
	}

	var lines []string
	var trailingBlank []string
	for {
		col := 0
		for s.in.Peek() == ' ' && (blockIndent < 0 || col < blockIndent) {
			s.in.Advance()
			col++
		}
		if s.in.IsLineBreakZ(0) {
			if s.in.AtEOF() {
				break
			}
			trailingBlank = append(trailingBlank, "")
			s.in.Advance()
			continue
		}
		if blockIndent < 0 {
			blockIndent = col
			if blockIndent <= baseIndent {
				break
			}
		}
		if col < blockIndent {
			break
		}
		var b strings.Builder
		for !s.in.IsLineBreakZ(0) {
			r, w := s.in.PeekAt(0)
			if w == 0 {
				break
			}
			b.WriteRune(r)
			s.in.Advance()
		}
		lines = append(lines, append(trailingBlank, b.String())...)
		trailingBlank = nil
		if s.in.AtEOF() {
			break
		}
		s.in.Advance()
	}

	value := joinBlockLines(lines, literal)
	value = applyChomping(value, chomping, len(trailingBlank) > 0 || len(lines) == 0)

	style := LiteralScalarStyle
	if !literal {
		style = FoldedScalarStyle
	}
	s.push(&Token{
		Type: ScalarToken, Style: style,
		Atom:            Atom{Start: start, End: s.in.Mark()},
		Value:           []byte(value),
		Chomping:        chomping,
		IndentIndicator: indentIndicator,
	})
	return nil
}

func joinBlockLines(lines []string, literal bool) string {
	if literal {
		return strings.Join(lines, "\n")
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			if l == "" || lines[i-1] == "" {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(l)
	}
	return b.String()
}

func applyChomping(value string, c ChompingIndicator, blankOrEmpty bool) string {
	switch c {
	case StripChomping:
		return value
	case KeepChomping:
		return value + "\n"
	default:
		if blankOrEmpty && value == "" {
			return value
		}
		return value + "\n"
	}
}

func (s *Scanner) fetchFlowScalar(single bool) error {
	s.saveSimpleKeyCandidate()
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	quote := s.in.Peek()
	s.in.Advance()

	var b strings.Builder
	for {
		r := s.in.Peek()
		if s.in.AtEOF() {
			kind := "double-quoted"
			if single {
				kind = "single-quoted"
			}
			return s.fail(start, "while scanning a %s scalar, found unexpected end of stream", kind)
		}
		if r == quote {
			if next, _ := s.in.PeekAt(1); single && next == '\'' {
				b.WriteByte('\'')
				s.in.AdvanceBy(2)
				continue
			}
			s.in.Advance()
			break
		}
		if !single && r == '\\' {
			s.in.Advance()
			if err := s.scanEscape(&b); err != nil {
				return err
			}
			continue
		}
		if s.in.IsLineBreakZ(0) {
			s.scanFoldedLineBreak(&b)
			continue
		}
		b.WriteRune(r)
		s.in.Advance()
	}

	style := SingleQuotedScalarStyle
	if !single {
		style = DoubleQuotedScalarStyle
	}
	s.push(&Token{Type: ScalarToken, Style: style, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(b.String())})
	return nil
}

// scanFoldedLineBreak consumes one or more line breaks (plus surrounding
// blanks) and folds them per the flow-scalar line-folding rule: a single
// break folds to a space, multiple breaks fold to n-1 newlines.
func (s *Scanner) scanFoldedLineBreak(b *strings.Builder) {
	breaks := 0
	for s.in.IsLineBreakZ(0) && !s.in.AtEOF() {
		s.in.Advance()
		breaks++
		for s.in.Peek() == ' ' || s.in.Peek() == '\t' {
			s.in.Advance()
		}
	}
	if breaks == 1 {
		b.WriteByte(' ')
	} else {
		for i := 0; i < breaks-1; i++ {
			b.WriteByte('\n')
		}
	}
}

func (s *Scanner) scanEscape(b *strings.Builder) error {
	r := s.in.Peek()
	simple := map[rune]rune{
		'0': 0, 'a': '\a', 'b': '\b', 't': '\t', 'n': '\n', 'v': '\v',
		'f': '\f', 'r': '\r', 'e': 0x1B, ' ': ' ', '"': '"', '\\': '\\',
		'N': 0x85, '_': 0xA0, 'L': 0x2028, 'P': 0x2029,
	}
	if v, ok := simple[r]; ok {
		b.WriteRune(v)
		s.in.Advance()
		return nil
	}
	var width int
	switch r {
	case 'x':
		width = 2
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return s.fail(s.in.Mark(), "found unknown escape character %q", string(r))
	}
	s.in.Advance()
	var code rune
	for i := 0; i < width; i++ {
		d := s.in.Peek()
		v, ok := hexVal(d)
		if !ok {
			return s.fail(s.in.Mark(), "did not find expected hexadecimal digit")
		}
		code = code*16 + rune(v)
		s.in.Advance()
	}
	b.WriteRune(code)
	return nil
}

func hexVal(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func (s *Scanner) fetchPlainScalar() error {
	s.saveSimpleKeyCandidate()
	s.simpleKeyAllowed = false
	start := s.in.Mark()

	var b strings.Builder
	var trailingSpace strings.Builder
	for {
		r := s.in.Peek()
		if s.in.AtEOF() {
			break
		}
		next, _ := s.in.PeekAt(1)
		if r == ':' && (s.in.IsBlankZ(1) || (s.flowLevel > 0 && isFlowIndicator(next))) {
			break
		}
		if s.flowLevel > 0 && isFlowIndicator(r) {
			break
		}
		if r == '#' && trailingSpace.Len() > 0 {
			break
		}
		if s.in.IsLineBreakZ(0) {
			var folded strings.Builder
			s.scanFoldedLineBreak(&folded)
			mark := s.in.Mark()
			if s.in.AtEOF() || s.in.Peek() == '#' || (s.flowLevel == 0 && mark.Column <= s.indentOf()) ||
				(mark.Column == 0 && (s.in.At(0, "---") || s.in.At(0, "...")) && s.in.IsBlankZ(3)) {
				if s.flowLevel == 0 {
					s.simpleKeyAllowed = true
				}
				break
			}
			trailingSpace.Reset()
			b.WriteString(folded.String())
			continue
		}
		if r == ' ' {
			trailingSpace.WriteRune(r)
			s.in.Advance()
			continue
		}
		b.WriteString(trailingSpace.String())
		trailingSpace.Reset()
		b.WriteRune(r)
		s.in.Advance()
	}
	value := b.String()
	if s.jsonMode() && !isJSONScalarLexeme(value) {
		return s.fail(start, "plain scalar %q is not a valid JSON number, boolean, or null literal", value)
	}
	s.push(&Token{Type: ScalarToken, Style: PlainScalarStyle, Atom: Atom{Start: start, End: s.in.Mark()}, Value: []byte(value)})
	return nil
}

// isJSONScalarLexeme reports whether s is a valid JSON number, boolean, or
// null literal; JSON mode rejects any other unquoted (plain) scalar.
func isJSONScalarLexeme(s string) bool {
	return s == "true" || s == "false" || s == "null" || isJSONNumberLexeme(s)
}

func isJSONNumberLexeme(s string) bool {
	i, n := 0, len(s)
	if i < n && s[i] == '-' {
		i++
	}
	switch {
	case i >= n:
		return false
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < n && s[i] == '.' {
		i++
		start := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == n
}

func isFlowIndicator(r rune) bool {
	switch r {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func (s *Scanner) fetchDirective() error {
	if s.jsonMode() {
		return s.jsonModeReject(s.in.Mark(), "directives")
	}
	s.unrollIndent(-1)
	s.removeSimpleKeyAtLevel(0)
	s.simpleKeyAllowed = false
	start := s.in.Mark()
	s.in.Advance() // '%'

	var name strings.Builder
	for isWordChar(s.in.Peek()) {
		name.WriteRune(s.in.Peek())
		s.in.Advance()
	}
	for s.in.Peek() == ' ' {
		s.in.Advance()
	}

	switch name.String() {
	case "YAML":
		major, err := s.scanDirectiveNumber()
		if err != nil {
			return err
		}
		if s.in.Peek() != '.' {
			return s.fail(s.in.Mark(), "while scanning a %%YAML directive, did not find expected digit or '.' character")
		}
		s.in.Advance()
		minor, err := s.scanDirectiveNumber()
		if err != nil {
			return err
		}
		s.push(&Token{
			Type: VersionDirectiveToken, Atom: Atom{Start: start, End: s.in.Mark()},
			VersionMajor: int8(major), VersionMinor: int8(minor),
		})
	case "TAG":
		handle, err := s.scanTagHandleLiteral()
		if err != nil {
			return err
		}
		for s.in.Peek() == ' ' {
			s.in.Advance()
		}
		var prefix strings.Builder
		for isTagURIChar(s.in.Peek()) {
			prefix.WriteRune(s.in.Peek())
			s.in.Advance()
		}
		s.push(&Token{
			Type: TagDirectiveToken, Atom: Atom{Start: start, End: s.in.Mark()},
			Value: []byte(handle), Prefix: []byte(prefix.String()),
		})
	default:
		for !s.in.IsLineBreakZ(0) {
			s.in.Advance()
		}
	}
	return nil
}

func (s *Scanner) scanDirectiveNumber() (int, error) {
	start := s.in.Mark()
	var n int
	count := 0
	for s.in.Peek() >= '0' && s.in.Peek() <= '9' {
		n = n*10 + int(s.in.Peek()-'0')
		s.in.Advance()
		count++
	}
	if count == 0 {
		return 0, s.fail(start, "while scanning a directive, did not find expected version number")
	}
	return n, nil
}

func (s *Scanner) scanTagHandleLiteral() (string, error) {
	start := s.in.Mark()
	if s.in.Peek() != '!' {
		return "", s.fail(start, "while scanning a tag directive, did not find expected '!'")
	}
	var b strings.Builder
	b.WriteRune('!')
	s.in.Advance()
	for isWordChar(s.in.Peek()) {
		b.WriteRune(s.in.Peek())
		s.in.Advance()
	}
	if s.in.Peek() == '!' {
		b.WriteRune('!')
		s.in.Advance()
	}
	return b.String(), nil
}
