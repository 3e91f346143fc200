// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strconv"
	"strings"
)

// pathComponentKind enumerates the YPath component kinds a compiled Path
// can be made of.
type pathComponentKind int

const (
	componentStartRoot pathComponentKind = iota
	componentStartAlias
	componentRoot
	componentThis
	componentParent
	componentEveryChild
	componentEveryChildRecursive
	componentEveryLeaf
	componentAssertCollection
	componentSimpleMapKey
	componentSimpleSeqIndex
	componentSimpleSiblingMapKey
)

// isInitial reports whether a component kind may only appear first in a
// compiled path (it establishes the starting node set rather than
// narrowing an existing one).
func (k pathComponentKind) isInitial() bool {
	return k == componentStartRoot || k == componentStartAlias
}

// isMulti reports whether a component can expand one input node into more
// than one output node, which matters for the simple-after-multi ordering
// rule: once a multi component has run, a later simple component (one
// that expects exactly one match, like a map key or sequence index) is
// rejected at compile time unless explicitly permitted.
func (k pathComponentKind) isMulti() bool {
	switch k {
	case componentEveryChild, componentEveryChildRecursive, componentEveryLeaf:
		return true
	}
	return false
}

// pathComponent is one segment of a compiled path. It retains the source
// slice it was parsed from so a diagnostic can point back at the original
// text, plus whichever kind-specific payload applies.
type pathComponent struct {
	kind   pathComponentKind
	source string

	mapKey    string
	seqIndex  int
	aliasName string
}

// Path is a compiled YPath expression ready to Execute against a root
// node.
type Path struct {
	components []pathComponent
	raw        string
}

// CompilePath parses a slash-separated path expression into a Path.
// Grammar (informally): a path is "/"-separated components; "" (start) is
// implicit root; ".." is parent; "*" is every-child; "**" is every-child
// recursive; "@" is every-leaf; a bare identifier or quoted string is a
// map key; an integer is a sequence index; "&name" starts from an anchor
// instead of the document root; "!" asserts the current node is a
// collection (used to disambiguate a trailing slash).
func CompilePath(expr string, cfg *WalkConfig) (*Path, error) {
	if cfg == nil {
		c := DefaultWalkConfig()
		cfg = &c
	}
	p := &Path{raw: expr}

	if strings.HasPrefix(expr, "&") {
		end := strings.IndexByte(expr, '/')
		var name string
		if end < 0 {
			name, expr = expr[1:], ""
		} else {
			name, expr = expr[1:end], expr[end:]
		}
		p.components = append(p.components, pathComponent{kind: componentStartAlias, source: "&" + name, aliasName: name})
	} else {
		p.components = append(p.components, pathComponent{kind: componentStartRoot, source: ""})
	}

	segs := strings.Split(strings.TrimPrefix(expr, "/"), "/")
	if len(segs) == 1 && segs[0] == "" {
		segs = nil
	}

	sawMulti := false
	for i, seg := range segs {
		if seg == "" {
			if i == len(segs)-1 {
				return nil, &PathCompileError{Path: expr, Offset: len(expr), Message: "empty trailing path component"}
			}
			return nil, &PathCompileError{Path: expr, Offset: 0, Message: "empty path component"}
		}
		comp, err := compilePathSegment(expr, seg)
		if err != nil {
			return nil, err
		}
		if sawMulti && !comp.kind.isMulti() && !cfg.allowSimpleAfterMulti {
			switch comp.kind {
			case componentSimpleMapKey, componentSimpleSeqIndex, componentSimpleSiblingMapKey:
				return nil, &PathCompileError{Path: expr, Offset: 0, Message: "simple component not permitted after a multi-result component"}
			}
		}
		if comp.kind.isMulti() {
			sawMulti = true
		}
		p.components = append(p.components, comp)
	}
	return p, nil
}

func compilePathSegment(full, seg string) (pathComponent, error) {
	switch seg {
	case "..":
		return pathComponent{kind: componentParent, source: seg}, nil
	case ".":
		return pathComponent{kind: componentThis, source: seg}, nil
	case "*":
		return pathComponent{kind: componentEveryChild, source: seg}, nil
	case "**":
		return pathComponent{kind: componentEveryChildRecursive, source: seg}, nil
	case "@":
		return pathComponent{kind: componentEveryLeaf, source: seg}, nil
	case "!":
		return pathComponent{kind: componentAssertCollection, source: seg}, nil
	}
	if strings.HasPrefix(seg, "~") {
		return pathComponent{kind: componentSimpleSiblingMapKey, source: seg, mapKey: unquoteSegment(seg[1:])}, nil
	}
	if n, err := strconv.Atoi(seg); err == nil {
		return pathComponent{kind: componentSimpleSeqIndex, source: seg, seqIndex: n}, nil
	}
	return pathComponent{kind: componentSimpleMapKey, source: seg, mapKey: unquoteSegment(seg)}, nil
}

func unquoteSegment(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Execute runs the path against root (the document root node for a
// componentStartRoot path; doc is needed to resolve componentStartAlias
// and componentParent at the root).
func Execute(path *Path, doc *Document, cfg *WalkConfig) ([]*Node, error) {
	if cfg == nil {
		c := DefaultWalkConfig()
		cfg = &c
	}
	set := []*Node{doc.Root}
	ctx := &walkExecContext{doc: doc, cfg: cfg}
	for _, comp := range path.components {
		next, err := ctx.apply(comp, set)
		if err != nil {
			return nil, err
		}
		set = dedupeNodes(next)
	}
	return set, nil
}

// dedupeNodes collapses repeated node pointers in the work set, keeping
// each node's first occurrence; a component that reaches the same node
// through more than one path (e.g. a `**` descent crossing an alias-free
// diamond, or a sibling-key lookup landing back on an already-seen node)
// must not duplicate it in the result set.
func dedupeNodes(nodes []*Node) []*Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[*Node]struct{}, len(nodes))
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

type walkExecContext struct {
	doc   *Document
	cfg   *WalkConfig
	depth int
}

func (ctx *walkExecContext) apply(comp pathComponent, in []*Node) ([]*Node, error) {
	switch comp.kind {
	case componentStartRoot:
		return []*Node{ctx.doc.Root}, nil

	case componentStartAlias:
		n, ok := ctx.doc.ResolveAlias(comp.aliasName)
		if !ok {
			return nil, &PathExecError{Component: comp.source, Message: "anchor not found"}
		}
		return []*Node{n}, nil

	case componentThis:
		return in, nil

	case componentParent:
		out := make([]*Node, 0, len(in))
		for _, n := range in {
			if n.Parent() != nil {
				out = append(out, n.Parent())
			} else if ctx.cfg.strict {
				return nil, &PathExecError{Component: comp.source, Message: "no parent at document root"}
			}
		}
		return out, nil

	case componentAssertCollection:
		for _, n := range in {
			if n.Kind == ScalarNodeKind {
				return nil, &PathExecError{Component: comp.source, Message: "expected a collection node"}
			}
		}
		return in, nil

	case componentEveryChild:
		var out []*Node
		for _, n := range in {
			out = append(out, children(n)...)
		}
		return out, nil

	case componentEveryChildRecursive:
		var out []*Node
		for _, n := range in {
			if err := ctx.collectRecursive(n, &out); err != nil {
				return nil, err
			}
		}
		return out, nil

	case componentEveryLeaf:
		var out []*Node
		for _, n := range in {
			collectLeaves(n, &out)
		}
		return out, nil

	case componentSimpleMapKey:
		var out []*Node
		for _, n := range in {
			if n.Kind != MappingNodeKind {
				continue
			}
			if v, ok := n.Lookup([]byte(comp.mapKey)); ok {
				out = append(out, v)
			} else if ctx.cfg.strict {
				return nil, &PathExecError{Component: comp.source, Message: "map key not found"}
			}
		}
		return out, nil

	case componentSimpleSiblingMapKey:
		var out []*Node
		for _, n := range in {
			p := n.Parent()
			if p == nil || p.Kind != MappingNodeKind {
				continue
			}
			if v, ok := p.Lookup([]byte(comp.mapKey)); ok {
				out = append(out, v)
			} else if ctx.cfg.strict {
				return nil, &PathExecError{Component: comp.source, Message: "sibling map key not found"}
			}
		}
		return out, nil

	case componentSimpleSeqIndex:
		var out []*Node
		for _, n := range in {
			if n.Kind != SequenceNodeKind {
				continue
			}
			items := n.Items()
			idx := comp.seqIndex
			if idx < 0 {
				idx += len(items)
			}
			if idx >= 0 && idx < len(items) {
				out = append(out, items[idx])
			} else if ctx.cfg.strict {
				return nil, &PathExecError{Component: comp.source, Message: "sequence index out of range"}
			}
		}
		return out, nil
	}
	return in, nil
}

func children(n *Node) []*Node {
	switch n.Kind {
	case SequenceNodeKind:
		return n.Items()
	case MappingNodeKind:
		var out []*Node
		for _, p := range n.Pairs() {
			out = append(out, p.Value)
		}
		return out
	}
	return nil
}

// collectRecursive gathers n and every transitive descendant for a `**`
// component. Children are visited, and thus appended, before n itself:
// a child's whole subtree always precedes n in n's own pair/item order,
// so appending n only after its children keeps the result set in
// document order once a later component (e.g. a map-key filter) picks
// matches out of it — n's own matching pair can sit after a child's
// pair textually, and self-first ordering would misplace it ahead of
// that child's match.
func (ctx *walkExecContext) collectRecursive(n *Node, out *[]*Node) error {
	if n.isMarked(RefMarker) {
		return &StructuralError{Message: "reference loop encountered during recursive walk"}
	}
	ctx.depth++
	defer func() { ctx.depth-- }()
	if ctx.depth > ctx.cfg.maxDepth {
		return &StructuralError{Message: "walk exceeded maximum depth"}
	}
	n.mark(RefMarker)
	defer n.unmark(RefMarker)

	for _, c := range children(n) {
		if err := ctx.collectRecursive(c, out); err != nil {
			return err
		}
	}
	*out = append(*out, n)
	return nil
}

func collectLeaves(n *Node, out *[]*Node) {
	kids := children(n)
	if len(kids) == 0 {
		*out = append(*out, n)
		return
	}
	for _, c := range kids {
		collectLeaves(c, out)
	}
}
