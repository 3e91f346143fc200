// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "fmt"

// Composer drives a Parser's event stream into a Document's Node tree. It
// owns the live anchor table for the document currently being built and
// resolves each alias event against it as the alias is encountered,
// meaning an alias always sees whichever binding is most recent at that
// point in the stream, not the binding in effect when the document
// finishes.
type Composer struct {
	parser *Parser
	cfg    *ParseConfig

	ev  *Event
	err error

	// pending holds alias sites deferred under WithAllowForwardAliases
	// because their anchor hadn't been bound yet when the alias was
	// encountered; each is patched once the enclosing document finishes.
	pending []pendingAlias
}

// pendingAlias is one forward-referencing alias site: the anchor name it
// names, where it was found (for diagnostics), and the setter that installs
// the resolved node into its slot once the anchor is bound.
type pendingAlias struct {
	name string
	mark Mark
	set  func(*Node)
}

// NewComposer builds a Composer reading events from p.
func NewComposer(p *Parser, cfg *ParseConfig) *Composer {
	return &Composer{parser: p, cfg: cfg}
}

func (c *Composer) next() error {
	ev, err := c.parser.Parse()
	if err != nil {
		return err
	}
	c.ev = ev
	return nil
}

func (c *Composer) peekType() EventType {
	if c.ev == nil {
		return NoEvent
	}
	return c.ev.Type
}

// ComposeStream parses every document in the stream, calling fn once per
// document with the built Document; fn's boolean return stops the stream
// early when false (mirroring a caller that only wants the first N
// documents).
func (c *Composer) ComposeStream(fn func(*Document) bool) error {
	if err := c.next(); err != nil {
		return err
	}
	if c.peekType() != StreamStartEvent {
		return &StructuralError{Message: "expected stream-start event"}
	}
	if err := c.next(); err != nil {
		return err
	}

	for c.peekType() != StreamEndEvent {
		doc, err := c.composeDocument()
		if err != nil {
			return err
		}
		if !fn(doc) {
			break
		}
	}
	return nil
}

// ComposeSingle parses exactly one document from the stream and returns it.
func (c *Composer) ComposeSingle() (*Document, error) {
	var result *Document
	err := c.ComposeStream(func(d *Document) bool {
		if result == nil {
			result = d
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Composer) composeDocument() (*Document, error) {
	if c.peekType() != DocumentStartEvent {
		return nil, &StructuralError{Message: "expected document-start event"}
	}
	doc := NewDocument(c.cfg)
	doc.version = c.ev.VersionDirective
	doc.tagDirs = c.ev.TagDirectives
	if err := c.next(); err != nil {
		return nil, err
	}

	c.pending = nil
	root, err := c.composeNode(doc)
	if err != nil {
		return nil, err
	}
	doc.Root = root

	if err := c.resolvePending(doc); err != nil {
		return nil, err
	}

	if c.peekType() != DocumentEndEvent {
		return nil, &StructuralError{Message: "expected document-end event"}
	}
	if err := c.next(); err != nil {
		return nil, err
	}
	return doc, nil
}

// resolvePending patches every forward-referencing alias site recorded
// while composing doc, now that every anchor in the document has been
// bound. An alias that still doesn't resolve is a genuine error, not
// another deferral.
func (c *Composer) resolvePending(doc *Document) error {
	pending := c.pending
	c.pending = nil
	for _, p := range pending {
		n, ok := doc.ResolveAlias(p.name)
		if !ok {
			return &SemanticError{Mark: p.mark, Message: fmt.Sprintf("unresolved alias %q", p.name)}
		}
		p.set(n)
	}
	return nil
}

func (c *Composer) composeNode(doc *Document) (*Node, error) {
	ev := c.ev
	switch ev.Type {
	case AliasEvent:
		name := string(ev.Anchor)
		node, ok := doc.ResolveAlias(name)
		if !ok {
			if c.cfg != nil && c.cfg.allowForwardAliases {
				placeholder := doc.newNode(ScalarNodeKind)
				placeholder.Tag = TagNull
				placeholder.MarkSynthetic()
				mark := ev.Start
				c.pending = append(c.pending, pendingAlias{
					name: name,
					mark: mark,
					set:  func(n *Node) { placeholder.copyFrom(n) },
				})
				if err := c.next(); err != nil {
					return nil, err
				}
				return placeholder, nil
			}
			return nil, &SemanticError{Mark: ev.Start, Message: fmt.Sprintf("unresolved alias %q", name)}
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		return node, nil

	case ScalarEvent:
		tag := string(ev.Tag)
		if tag == "" {
			tag = TagStr
			v := string(ev.Value)
			if ev.Implicit && (v == "" || (ev.Style == PlainScalarStyle && (v == "~" || v == "null" || v == "Null" || v == "NULL"))) {
				tag = TagNull
			}
			if tag == TagStr && string(ev.Value) == "<<" {
				tag = TagMerge
			}
		}
		n := doc.newNode(ScalarNodeKind)
		n.value = append([]byte(nil), ev.Value...)
		n.Tag = tag
		n.Style = ev.Style
		if len(ev.Anchor) > 0 {
			doc.BindAnchor(string(ev.Anchor), n)
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		return n, nil

	case SequenceStartEvent:
		tag := string(ev.Tag)
		if tag == "" {
			tag = TagSeq
		}
		n := doc.newNode(SequenceNodeKind)
		n.Tag = tag
		n.CollectionStyle = ev.CollectionStyle
		if len(ev.Anchor) > 0 {
			doc.BindAnchor(string(ev.Anchor), n)
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		for c.peekType() != SequenceEndEvent {
			if c.peekType() == NoEvent {
				return nil, &StructuralError{Message: "unexpected end of event stream inside sequence"}
			}
			child, err := c.composeNode(doc)
			if err != nil {
				return nil, err
			}
			n.Append(child)
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		return n, nil

	case MappingStartEvent:
		tag := string(ev.Tag)
		if tag == "" {
			tag = TagMap
		}
		n := doc.newNode(MappingNodeKind)
		n.Tag = tag
		n.CollectionStyle = ev.CollectionStyle
		if len(ev.Anchor) > 0 {
			doc.BindAnchor(string(ev.Anchor), n)
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		for c.peekType() != MappingEndEvent {
			if c.peekType() == NoEvent {
				return nil, &StructuralError{Message: "unexpected end of event stream inside mapping"}
			}
			key, err := c.composeNode(doc)
			if err != nil {
				return nil, err
			}
			value, err := c.composeNode(doc)
			if err != nil {
				return nil, err
			}
			allowDup := c.cfg != nil && c.cfg.allowDuplicateKeys
			if !n.AddPair(key, value, allowDup) {
				return nil, &SemanticError{Mark: key.startMarkOrZero(), Message: fmt.Sprintf("duplicate mapping key %q", key.value)}
			}
		}
		if err := c.next(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, &StructuralError{Mark: ev.Start, Message: fmt.Sprintf("unexpected event %s while composing a node", ev.Type)}
}

// startMarkOrZero is a small convenience so a duplicate-key diagnostic can
// cite a position even though Node itself doesn't retain a Mark directly
// (only its originating Token, when one exists, does).
func (n *Node) startMarkOrZero() Mark {
	if n.startToken != nil {
		return n.startToken.StartMark()
	}
	return Mark{}
}
