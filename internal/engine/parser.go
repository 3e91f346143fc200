// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "fmt"

// parserState enumerates the pushdown automaton's states. The automaton
// has no recursive descent: nesting is carried entirely by stateStack.
type parserState int

const (
	stateStreamStart parserState = iota
	stateImplicitDocumentStart
	stateDocumentStart
	stateDocumentContent
	stateDocumentEnd
	stateSingleDocumentEnd // a document parsed with AllowSingleDocument sees no explicit "..." before stream end
	stateBlockNode
	stateBlockNodeOrIndentlessSequence
	stateFlowNode
	stateBlockSequenceFirstEntry
	stateBlockSequenceEntry
	stateIndentlessSequenceEntry
	stateBlockMappingFirstKey
	stateBlockMappingKey
	stateBlockMappingValue
	stateFlowSequenceFirstEntry
	stateFlowSequenceEntry
	stateFlowSequenceEntryMappingKey
	stateFlowSequenceEntryMappingValue
	stateFlowSequenceEntryMappingEnd
	stateFlowMappingFirstKey
	stateFlowMappingKey
	stateFlowMappingValue
	stateFlowMappingEmptyValue
	stateEnd
)

func (st parserState) String() string {
	names := [...]string{
		"stream-start", "implicit-document-start", "document-start",
		"document-content", "document-end", "single-document-end",
		"block-node", "block-node-or-indentless-sequence", "flow-node",
		"block-sequence-first-entry", "block-sequence-entry",
		"indentless-sequence-entry", "block-mapping-first-key",
		"block-mapping-key", "block-mapping-value",
		"flow-sequence-first-entry", "flow-sequence-entry",
		"flow-sequence-entry-mapping-key", "flow-sequence-entry-mapping-value",
		"flow-sequence-entry-mapping-end", "flow-mapping-first-key",
		"flow-mapping-key", "flow-mapping-value", "flow-mapping-empty-value",
		"end",
	}
	if int(st) < 0 || int(st) >= len(names) {
		return fmt.Sprintf("parserState(%d)", int(st))
	}
	return names[st]
}

// Parser drives the Scanner's token stream through the grammar's pushdown
// automaton, producing one Event per call to Parse.
type Parser struct {
	scanner *Scanner
	cfg     *ParseConfig

	tokens     []*Token
	tokenHead  int

	state      parserState
	stateStack []parserState

	marks []Mark // indent/column bookmarks for block collections, pushed per nesting level

	streamEndProduced bool
	hadError          bool

	tagTable *tagTable
	version  *VersionDirective
	tagDirs  []TagDirective

	// allowSingleDocument, when set, makes the automaton expect stream end
	// right after the first document and reject any further content;
	// stateSingleDocumentEnd implements this.
	allowSingleDocument bool

	simpleKeyContext bool
}

// NewParser builds a Parser pulling tokens from the given Scanner.
func NewParser(sc *Scanner, cfg *ParseConfig) *Parser {
	p := &Parser{scanner: sc, cfg: cfg, state: stateStreamStart, tagTable: newTagTable()}
	if cfg != nil {
		p.allowSingleDocument = cfg.singleDocument
	}
	return p
}

func (p *Parser) peekToken() (*Token, error) {
	for p.tokenHead >= len(p.tokens) {
		t, err := p.scanner.Next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, nil
		}
		p.tokens = append(p.tokens, t)
	}
	return p.tokens[p.tokenHead], nil
}

func (p *Parser) skipToken() { p.tokenHead++ }

func (p *Parser) setErr(mark Mark, context, message string) error {
	p.hadError = true
	return &SyntaxError{Mark: mark, Context: context, Message: message}
}

// Parse advances the automaton by one step and returns the resulting
// Event, or (nil, nil) once the stream has been fully consumed.
func (p *Parser) Parse() (*Event, error) {
	if p.streamEndProduced || p.state == stateEnd {
		return nil, nil
	}
	ev, err := p.stateMachine()
	if err != nil {
		return nil, err
	}
	if ev != nil && ev.Type == StreamEndEvent {
		p.streamEndProduced = true
	}
	return ev, nil
}

func (p *Parser) push(s parserState) { p.stateStack = append(p.stateStack, s) }

func (p *Parser) pop() parserState {
	n := len(p.stateStack)
	s := p.stateStack[n-1]
	p.stateStack = p.stateStack[:n-1]
	return s
}

func (p *Parser) stateMachine() (*Event, error) {
	switch p.state {
	case stateStreamStart:
		return p.parseStreamStart()
	case stateImplicitDocumentStart:
		return p.parseDocumentStart(true)
	case stateDocumentStart:
		return p.parseDocumentStart(false)
	case stateDocumentContent:
		return p.parseDocumentContent()
	case stateDocumentEnd:
		return p.parseDocumentEnd()
	case stateSingleDocumentEnd:
		return p.parseSingleDocumentEnd()
	case stateBlockNode:
		return p.parseNode(true, false)
	case stateBlockNodeOrIndentlessSequence:
		return p.parseNode(true, true)
	case stateFlowNode:
		return p.parseNode(false, false)
	case stateBlockSequenceFirstEntry:
		return p.parseBlockSequenceEntry(true)
	case stateBlockSequenceEntry:
		return p.parseBlockSequenceEntry(false)
	case stateIndentlessSequenceEntry:
		return p.parseIndentlessSequenceEntry()
	case stateBlockMappingFirstKey:
		return p.parseBlockMappingKey(true)
	case stateBlockMappingKey:
		return p.parseBlockMappingKey(false)
	case stateBlockMappingValue:
		return p.parseBlockMappingValue()
	case stateFlowSequenceFirstEntry:
		return p.parseFlowSequenceEntry(true)
	case stateFlowSequenceEntry:
		return p.parseFlowSequenceEntry(false)
	case stateFlowSequenceEntryMappingKey:
		return p.parseFlowSequenceEntryMappingKey()
	case stateFlowSequenceEntryMappingValue:
		return p.parseFlowSequenceEntryMappingValue()
	case stateFlowSequenceEntryMappingEnd:
		return p.parseFlowSequenceEntryMappingEnd()
	case stateFlowMappingFirstKey:
		return p.parseFlowMappingKey(true)
	case stateFlowMappingKey:
		return p.parseFlowMappingKey(false)
	case stateFlowMappingValue:
		return p.parseFlowMappingValue(false)
	case stateFlowMappingEmptyValue:
		return p.parseFlowMappingValue(true)
	}
	return nil, fmt.Errorf("fy: parser in unreachable state %s", p.state)
}

func (p *Parser) parseStreamStart() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type != StreamStartToken {
		return nil, p.setErr(t.StartMark(), "", "did not find expected stream start")
	}
	p.skipToken()
	p.state = stateImplicitDocumentStart
	return &Event{Type: StreamStartEvent, Start: t.StartMark(), End: t.EndMark(), Tokens: []*Token{t}}, nil
}

func (p *Parser) parseDocumentStart(implicitOK bool) (*Event, error) {
	for {
		t, err := p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != DocumentEndToken {
			break
		}
		p.skipToken()
	}

	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}

	if implicitOK && t.Type != VersionDirectiveToken && t.Type != TagDirectiveToken &&
		t.Type != DocumentStartToken && t.Type != StreamEndToken {
		p.tagTable = newTagTable()
		p.version = nil
		p.tagDirs = nil
		p.push(stateDocumentEnd)
		p.state = stateBlockNode
		return &Event{Type: DocumentStartEvent, Start: t.StartMark(), End: t.StartMark(), Implicit: true}, nil
	}

	if t.Type == StreamEndToken {
		p.skipToken()
		p.state = stateEnd
		return &Event{Type: StreamEndEvent, Start: t.StartMark(), End: t.EndMark(), Tokens: []*Token{t}}, nil
	}

	start := t.StartMark()
	p.tagTable = newTagTable()
	p.version = nil
	p.tagDirs = nil

	for t.Type == VersionDirectiveToken || t.Type == TagDirectiveToken {
		if t.Type == VersionDirectiveToken {
			if p.version != nil {
				return nil, p.setErr(t.StartMark(), "parsing a %YAML directive", "found duplicate %YAML directive")
			}
			if t.VersionMajor != 1 {
				return nil, p.setErr(t.StartMark(), "parsing a %YAML directive", fmt.Sprintf("found incompatible YAML document (version 1.x is required, got %d.%d)", t.VersionMajor, t.VersionMinor))
			}
			p.version = &VersionDirective{Major: t.VersionMajor, Minor: t.VersionMinor}
		} else {
			if err := p.appendTagDirective(string(t.Value), string(t.Prefix), t.StartMark()); err != nil {
				return nil, err
			}
			p.tagDirs = append(p.tagDirs, TagDirective{Handle: string(t.Value), Prefix: string(t.Prefix)})
		}
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
	}

	implicit := true
	if t.Type == DocumentStartToken {
		implicit = false
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
	} else if p.version != nil || len(p.tagDirs) > 0 {
		return nil, p.setErr(t.StartMark(), "parsing a document", "did not find expected <document start>")
	}

	p.push(stateDocumentEnd)
	p.state = stateDocumentContent
	return &Event{
		Type: DocumentStartEvent, Start: start, End: t.StartMark(), Implicit: implicit,
		VersionDirective: p.version, TagDirectives: append([]TagDirective(nil), p.tagDirs...),
	}, nil
}

func (p *Parser) appendTagDirective(handle, prefix string, mark Mark) error {
	if _, ok := p.tagTable.Resolve(handle); ok {
		for _, d := range p.tagDirs {
			if d.Handle == handle {
				return p.setErr(mark, "parsing a %TAG directive", fmt.Sprintf("duplicate %%TAG directive for handle %q", handle))
			}
		}
	}
	p.tagTable.Set(handle, prefix)
	return nil
}

func (p *Parser) parseDocumentContent() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case VersionDirectiveToken, TagDirectiveToken, DocumentStartToken, DocumentEndToken, StreamEndToken:
		p.state = p.pop()
		return p.processEmptyScalar(t.StartMark()), nil
	}
	return p.parseNode(true, false)
}

func (p *Parser) parseDocumentEnd() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	start := t.StartMark()
	implicit := true
	if t.Type == DocumentEndToken {
		implicit = false
		p.skipToken()
	}
	if p.allowSingleDocument {
		p.state = stateSingleDocumentEnd
	} else {
		p.state = stateImplicitDocumentStart
	}
	return &Event{Type: DocumentEndEvent, Start: start, End: start, Implicit: implicit}, nil
}

// parseSingleDocumentEnd is reached only when the parser was configured
// for exactly one document: any further content besides stream end is a
// syntax error instead of the start of a second document.
func (p *Parser) parseSingleDocumentEnd() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type != StreamEndToken {
		return nil, p.setErr(t.StartMark(), "parsing a single-document stream", "found content after the only document permitted")
	}
	p.skipToken()
	p.state = stateEnd
	return &Event{Type: StreamEndEvent, Start: t.StartMark(), End: t.EndMark(), Tokens: []*Token{t}}, nil
}

func (p *Parser) parseNode(block, indentlessSequence bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}

	if t.Type == AliasToken {
		p.skipToken()
		p.state = p.pop()
		return &Event{Type: AliasEvent, Start: t.StartMark(), End: t.EndMark(), Anchor: t.Value, Tokens: []*Token{t}}, nil
	}

	start := t.StartMark()
	var anchor []byte
	var tagHandle, tagSuffix []byte
	var haveTag bool
	tagMark := start

	if t.Type == AnchorToken {
		anchor = t.Value
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type == TagToken {
			tagHandle, tagSuffix, haveTag = t.Value, t.Suffix, true
			tagMark = t.StartMark()
			p.skipToken()
			t, err = p.peekToken()
			if err != nil {
				return nil, err
			}
		}
	} else if t.Type == TagToken {
		tagHandle, tagSuffix, haveTag = t.Value, t.Suffix, true
		tagMark = t.StartMark()
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type == AnchorToken {
			anchor = t.Value
			p.skipToken()
			t, err = p.peekToken()
			if err != nil {
				return nil, err
			}
		}
	}

	var resolvedTag string
	if haveTag {
		if len(tagHandle) > 0 && string(tagHandle) != "!" {
			if _, ok := p.tagTable.Resolve(string(tagHandle)); !ok {
				return nil, p.setErr(tagMark, "parsing a node", fmt.Sprintf("found undefined tag handle %q", tagHandle))
			}
		}
		resolvedTag = resolveTag(p.tagTable, string(tagHandle), string(tagSuffix))
	}

	implicit := !haveTag

	switch t.Type {
	case ScalarToken:
		p.skipToken()
		p.state = p.pop()
		return &Event{
			Type: ScalarEvent, Start: start, End: t.EndMark(), Anchor: anchor,
			Tag: []byte(resolvedTag), Value: t.Value, Implicit: implicit,
			QuotedImplicit: implicit && t.Style != PlainScalarStyle, Style: t.Style,
			Tokens: []*Token{t},
		}, nil
	case FlowSequenceStartToken:
		p.skipToken()
		p.state = stateFlowSequenceFirstEntry
		return &Event{Type: SequenceStartEvent, Start: start, End: t.EndMark(), Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit, CollectionStyle: FlowCollectionStyle, Tokens: []*Token{t}}, nil
	case FlowMappingStartToken:
		p.skipToken()
		p.state = stateFlowMappingFirstKey
		return &Event{Type: MappingStartEvent, Start: start, End: t.EndMark(), Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit, CollectionStyle: FlowCollectionStyle, Tokens: []*Token{t}}, nil
	case BlockSequenceStartToken:
		if block {
			p.skipToken()
			p.state = stateBlockSequenceFirstEntry
			return &Event{Type: SequenceStartEvent, Start: start, End: t.EndMark(), Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit, CollectionStyle: BlockCollectionStyle, Tokens: []*Token{t}}, nil
		}
	case BlockEntryToken:
		if indentlessSequence {
			p.state = stateIndentlessSequenceEntry
			return &Event{Type: SequenceStartEvent, Start: start, End: t.EndMark(), Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit, CollectionStyle: BlockCollectionStyle}, nil
		}
	case BlockMappingStartToken:
		if block {
			p.skipToken()
			p.state = stateBlockMappingFirstKey
			return &Event{Type: MappingStartEvent, Start: start, End: t.EndMark(), Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit, CollectionStyle: BlockCollectionStyle, Tokens: []*Token{t}}, nil
		}
	}

	if len(anchor) > 0 || haveTag {
		p.state = p.pop()
		return &Event{Type: ScalarEvent, Start: start, End: start, Anchor: anchor, Tag: []byte(resolvedTag), Implicit: implicit && !haveTag, Style: PlainScalarStyle}, nil
	}
	kind := "block"
	if !block {
		kind = "flow"
	}
	return nil, p.setErr(start, "parsing a "+kind+" node", fmt.Sprintf("did not find expected node content, got %s", t.Type))
}

func (p *Parser) processEmptyScalar(mark Mark) *Event {
	return &Event{Type: ScalarEvent, Start: mark, End: mark, Implicit: true, Style: PlainScalarStyle}
}

func (p *Parser) parseBlockSequenceEntry(first bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if first {
		p.marks = append(p.marks, t.StartMark())
	}
	if t.Type == BlockEntryToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != BlockEntryToken && t.Type != BlockEndToken {
			p.push(stateBlockSequenceEntry)
			return p.parseNode(true, false)
		}
		p.state = stateBlockSequenceEntry
		return p.processEmptyScalar(t.StartMark()), nil
	}
	if t.Type != BlockEndToken {
		mark := p.marks[len(p.marks)-1]
		return nil, p.setErr(t.StartMark(), "parsing a block collection", fmt.Sprintf("did not find expected '-' indicator (sequence opened at %s)", mark))
	}
	p.marks = p.marks[:len(p.marks)-1]
	p.skipToken()
	p.state = p.pop()
	return &Event{Type: SequenceEndEvent, Start: t.StartMark(), End: t.EndMark()}, nil
}

func (p *Parser) parseIndentlessSequenceEntry() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type == BlockEntryToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case BlockEntryToken, KeyToken, ValueToken, BlockEndToken:
			p.state = stateIndentlessSequenceEntry
			return p.processEmptyScalar(t.StartMark()), nil
		}
		p.push(stateIndentlessSequenceEntry)
		return p.parseNode(true, false)
	}
	p.state = p.pop()
	return &Event{Type: SequenceEndEvent, Start: t.StartMark(), End: t.StartMark()}, nil
}

func (p *Parser) parseBlockMappingKey(first bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if first {
		p.marks = append(p.marks, t.StartMark())
	}
	if t.Type == KeyToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != KeyToken && t.Type != ValueToken && t.Type != BlockEndToken {
			p.push(stateBlockMappingValue)
			return p.parseNode(true, true)
		}
		p.state = stateBlockMappingValue
		return p.processEmptyScalar(t.StartMark()), nil
	}
	if t.Type != BlockEndToken {
		mark := p.marks[len(p.marks)-1]
		return nil, p.setErr(t.StartMark(), "parsing a block mapping", fmt.Sprintf("did not find expected key (mapping opened at %s)", mark))
	}
	p.marks = p.marks[:len(p.marks)-1]
	p.skipToken()
	p.state = p.pop()
	return &Event{Type: MappingEndEvent, Start: t.StartMark(), End: t.EndMark()}, nil
}

func (p *Parser) parseBlockMappingValue() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type == ValueToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != KeyToken && t.Type != ValueToken && t.Type != BlockEndToken {
			p.push(stateBlockMappingKey)
			return p.parseNode(true, true)
		}
		p.state = stateBlockMappingKey
		return p.processEmptyScalar(t.StartMark()), nil
	}
	p.state = stateBlockMappingKey
	return p.processEmptyScalar(t.StartMark()), nil
}

func (p *Parser) parseFlowSequenceEntry(first bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if !first {
		if t.Type == FlowEntryToken {
			commaMark := t.StartMark()
			p.skipToken()
			t, err = p.peekToken()
			if err != nil {
				return nil, err
			}
			if p.cfg != nil && p.cfg.jsonMode && t.Type == FlowSequenceEndToken {
				return nil, p.setErr(commaMark, "parsing a flow sequence", "trailing ',' is not permitted in JSON mode")
			}
		} else if t.Type != FlowSequenceEndToken {
			return nil, p.setErr(t.StartMark(), "parsing a flow sequence", "did not find expected ',' or ']'")
		}
	}
	if t.Type == FlowSequenceEndToken {
		p.skipToken()
		p.state = p.pop()
		return &Event{Type: SequenceEndEvent, Start: t.StartMark(), End: t.EndMark()}, nil
	}
	if t.Type == KeyToken {
		p.state = stateFlowSequenceEntryMappingKey
		p.skipToken()
		return &Event{Type: MappingStartEvent, Start: t.StartMark(), End: t.EndMark(), Implicit: true, CollectionStyle: FlowCollectionStyle}, nil
	}
	p.push(stateFlowSequenceEntry)
	return p.parseNode(false, false)
}

func (p *Parser) parseFlowSequenceEntryMappingKey() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type != ValueToken && t.Type != FlowEntryToken && t.Type != FlowSequenceEndToken {
		p.push(stateFlowSequenceEntryMappingValue)
		return p.parseNode(false, false)
	}
	p.state = stateFlowSequenceEntryMappingValue
	return p.processEmptyScalar(t.StartMark()), nil
}

func (p *Parser) parseFlowSequenceEntryMappingValue() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type == ValueToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != FlowEntryToken && t.Type != FlowSequenceEndToken {
			p.push(stateFlowSequenceEntryMappingEnd)
			return p.parseNode(false, false)
		}
	}
	p.state = stateFlowSequenceEntryMappingEnd
	return p.processEmptyScalar(t.StartMark()), nil
}

func (p *Parser) parseFlowSequenceEntryMappingEnd() (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	p.state = stateFlowSequenceEntry
	return &Event{Type: MappingEndEvent, Start: t.StartMark(), End: t.StartMark()}, nil
}

func (p *Parser) parseFlowMappingKey(first bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if !first {
		if t.Type == FlowEntryToken {
			commaMark := t.StartMark()
			p.skipToken()
			t, err = p.peekToken()
			if err != nil {
				return nil, err
			}
			if p.cfg != nil && p.cfg.jsonMode && t.Type == FlowMappingEndToken {
				return nil, p.setErr(commaMark, "parsing a flow mapping", "trailing ',' is not permitted in JSON mode")
			}
		} else if t.Type != FlowMappingEndToken {
			return nil, p.setErr(t.StartMark(), "parsing a flow mapping", "did not find expected ',' or '}'")
		}
	}
	if t.Type == FlowMappingEndToken {
		p.skipToken()
		p.state = p.pop()
		return &Event{Type: MappingEndEvent, Start: t.StartMark(), End: t.EndMark()}, nil
	}
	if t.Type != KeyToken {
		if t.Type == ValueToken {
			p.state = stateFlowMappingEmptyValue
			return p.processEmptyScalar(t.StartMark()), nil
		}
		p.push(stateFlowMappingValue)
		return p.parseNode(false, false)
	}
	p.skipToken()
	t, err = p.peekToken()
	if err != nil {
		return nil, err
	}
	if t.Type != ValueToken && t.Type != FlowEntryToken && t.Type != FlowMappingEndToken {
		p.push(stateFlowMappingValue)
		return p.parseNode(false, false)
	}
	p.state = stateFlowMappingValue
	return p.processEmptyScalar(t.StartMark()), nil
}

func (p *Parser) parseFlowMappingValue(empty bool) (*Event, error) {
	t, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if empty {
		p.state = stateFlowMappingKey
		return p.processEmptyScalar(t.StartMark()), nil
	}
	if t.Type == ValueToken {
		p.skipToken()
		t, err = p.peekToken()
		if err != nil {
			return nil, err
		}
		if t.Type != FlowEntryToken && t.Type != FlowMappingEndToken {
			p.push(stateFlowMappingKey)
			return p.parseNode(false, false)
		}
	}
	p.state = stateFlowMappingKey
	return p.processEmptyScalar(t.StartMark()), nil
}
