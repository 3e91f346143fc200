// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "sort"

// Kind discriminates a Node's tagged-union variant.
type Kind int8

const (
	ScalarNodeKind Kind = iota
	SequenceNodeKind
	MappingNodeKind
)

func (k Kind) String() string {
	switch k {
	case ScalarNodeKind:
		return "scalar"
	case SequenceNodeKind:
		return "sequence"
	case MappingNodeKind:
		return "mapping"
	}
	return "unknown"
}

// NodePair is one key/value entry of a mapping. Like Node, it carries
// back-references to its owning mapping Node and Document so a caller
// holding only a NodePair can still answer "whose pair is this".
type NodePair struct {
	Key   *Node
	Value *Node

	parent *Node
	doc    *Document
}

// Parent returns the mapping Node this pair belongs to.
func (np *NodePair) Parent() *Node { return np.parent }

// Node is the tagged-union value at the center of the document model: a
// scalar, sequence, or mapping, plus the bookkeeping every variant shares
// (parent link, style, tag, synthetic/mark bits, optional opaque meta).
type Node struct {
	Kind  Kind
	Style ScalarStyle
	CollectionStyle CollectionStyle

	Tag string

	parent *Node
	doc    *Document

	// scalar payload
	value []byte

	// sequence payload
	items []*Node

	// mapping payload: pairs is the insertion-ordered source of truth;
	// accel is a lazily built canonical-key -> pair index, built by AddPair
	// once the mapping passes the accelerator threshold and rebuilt by
	// ReleaseSortArray.
	pairs []*NodePair
	accel map[string]*NodePair

	// anchorName is the anchor bound to this node, if any; multiple
	// anchors on one node are not possible (a later anchor rebinds the
	// name to a different node, it does not add a second name here).
	anchorName string

	synthetic bool

	// marks holds cycle-detection and walk-traversal bits: bit VisitMarker
	// and bit RefMarker are system-owned; bits up to and including
	// MaxUserMarker are free for a caller's own multi-pass bookkeeping.
	marks uint32

	meta any

	startToken, endToken *Token
}

// NewScalarNode builds a leaf node holding value under tag.
func NewScalarNode(value []byte, tag string, style ScalarStyle) *Node {
	return &Node{Kind: ScalarNodeKind, value: append([]byte(nil), value...), Tag: tag, Style: style}
}

// NewSequenceNode builds an empty sequence node.
func NewSequenceNode(tag string, style CollectionStyle) *Node {
	return &Node{Kind: SequenceNodeKind, Tag: tag, CollectionStyle: style}
}

// NewMappingNode builds an empty mapping node.
func NewMappingNode(tag string, style CollectionStyle) *Node {
	return &Node{Kind: MappingNodeKind, Tag: tag, CollectionStyle: style}
}

// Parent returns the collection node containing this one, or nil at the
// document root.
func (n *Node) Parent() *Node { return n.parent }

// Document returns the owning Document.
func (n *Node) Document() *Document { return n.doc }

// Value returns a scalar node's decoded content; it panics if n is not a
// scalar, matching the model's assumption that callers switch on Kind
// before touching variant-specific accessors.
func (n *Node) Value() []byte {
	if n.Kind != ScalarNodeKind {
		panic("fy: Value called on non-scalar node")
	}
	return n.value
}

// Items returns a sequence node's elements in order.
func (n *Node) Items() []*Node {
	if n.Kind != SequenceNodeKind {
		panic("fy: Items called on non-sequence node")
	}
	return n.items
}

// Append adds value to a sequence node, linking its parent back-reference.
func (n *Node) Append(value *Node) {
	if n.Kind != SequenceNodeKind {
		panic("fy: Append called on non-sequence node")
	}
	value.parent = n
	value.doc = n.doc
	n.items = append(n.items, value)
}

// Pairs returns a mapping node's entries in insertion order.
func (n *Node) Pairs() []*NodePair {
	if n.Kind != MappingNodeKind {
		panic("fy: Pairs called on non-mapping node")
	}
	return n.pairs
}

// acceleratorThreshold mirrors ParseConfig's default; used when a Node is
// built outside a Document Builder pass (e.g. by a caller assembling a
// tree by hand).
const acceleratorThreshold = 8

// AddPair appends a key/value entry. If allowDuplicate is false and key's
// canonical form already exists in the mapping, AddPair returns false and
// leaves the mapping unmodified.
func (n *Node) AddPair(key, value *Node, allowDuplicate bool) bool {
	if n.Kind != MappingNodeKind {
		panic("fy: AddPair called on non-mapping node")
	}
	canon := canonicalScalarKey(key)
	if !allowDuplicate && canon != "" {
		if n.accel != nil {
			if _, dup := n.accel[canon]; dup {
				return false
			}
		} else {
			for _, p := range n.pairs {
				if canonicalScalarKey(p.Key) == canon {
					return false
				}
			}
		}
	}
	key.parent, key.doc = n, n.doc
	value.parent, value.doc = n, n.doc
	pair := &NodePair{Key: key, Value: value, parent: n, doc: n.doc}
	n.pairs = append(n.pairs, pair)
	threshold, accelerate := acceleratorThreshold, true
	if n.doc != nil && n.doc.cfg != nil {
		threshold, accelerate = n.doc.cfg.acceleratorThreshold, n.doc.cfg.accelerate
	}
	if accelerate && len(n.pairs) > threshold {
		n.buildAccelerator()
	} else if n.accel != nil {
		n.accel[canon] = pair
	}
	return true
}

func (n *Node) buildAccelerator() {
	n.accel = make(map[string]*NodePair, len(n.pairs))
	for _, p := range n.pairs {
		if c := canonicalScalarKey(p.Key); c != "" {
			n.accel[c] = p
		}
	}
}

// Lookup finds the value paired with a scalar key by canonical content,
// using the accelerator when built and a linear scan otherwise.
func (n *Node) Lookup(key []byte) (*Node, bool) {
	if n.Kind != MappingNodeKind {
		panic("fy: Lookup called on non-mapping node")
	}
	canon := string(key)
	if n.accel != nil {
		if p, ok := n.accel[canon]; ok {
			return p.Value, true
		}
		return nil, false
	}
	for _, p := range n.pairs {
		if canonicalScalarKey(p.Key) == canon {
			return p.Value, true
		}
	}
	return nil, false
}

func canonicalScalarKey(n *Node) string {
	if n.Kind != ScalarNodeKind {
		return ""
	}
	return string(n.value)
}

// SortMapping reorders a mapping's pairs in place using cmp, a caller
// supplied comparator over NodePair. Sorting never touches the
// accelerator's keys, only the slice order it points into, so a sort
// performed after the accelerator was built does not need to rebuild it.
func (n *Node) SortMapping(cmp func(a, b *NodePair) bool) {
	if n.Kind != MappingNodeKind {
		panic("fy: SortMapping called on non-mapping node")
	}
	sort.SliceStable(n.pairs, func(i, j int) bool { return cmp(n.pairs[i], n.pairs[j]) })
}

// MappingSortArray returns a fresh slice the caller can reorder (e.g. with
// sort.Sort against a custom sort.Interface) without touching n until
// ReleaseSortArray commits the result back. This two-step API exists so a
// comparator that needs to compare pairs against each other by index
// doesn't have to mutate the live mapping mid-comparison.
func (n *Node) MappingSortArray() []*NodePair {
	if n.Kind != MappingNodeKind {
		panic("fy: MappingSortArray called on non-mapping node")
	}
	return append([]*NodePair(nil), n.pairs...)
}

// ReleaseSortArray commits arr (previously obtained from
// MappingSortArray, then reordered by the caller) back as the mapping's
// pair order, and rebuilds the accelerator if one was built.
func (n *Node) ReleaseSortArray(arr []*NodePair) {
	if n.Kind != MappingNodeKind {
		panic("fy: ReleaseSortArray called on non-mapping node")
	}
	n.pairs = arr
	if n.accel != nil {
		n.buildAccelerator()
	}
}

// IsSynthetic reports whether MarkSynthetic has been called on this node;
// the constructors and the composer leave it false.
func (n *Node) IsSynthetic() bool { return n.synthetic }

// MarkSynthetic flags n as synthetic.
func (n *Node) MarkSynthetic() { n.synthetic = true }

// SetMeta attaches an opaque value to the node. If clear is non-nil, it
// runs over the previous meta value (if any) before it is replaced, so a
// caller never has to manually release the old one.
func (n *Node) SetMeta(meta any, clear MetaClearFunc) {
	if n.meta != nil && clear != nil {
		clear(n.meta)
	}
	n.meta = meta
}

// Meta returns the opaque value previously attached with SetMeta.
func (n *Node) Meta() any { return n.meta }

// copyFrom overwrites n's variant payload with src's, keeping n's own
// parent/doc links intact. It exists to patch a placeholder node allocated
// for a forward-referencing alias once the anchor it names is finally
// bound, without having to find and rewrite every slot that already holds
// a pointer to the placeholder.
func (n *Node) copyFrom(src *Node) {
	n.Kind = src.Kind
	n.Style = src.Style
	n.CollectionStyle = src.CollectionStyle
	n.Tag = src.Tag
	n.value = src.value
	n.items = src.items
	n.pairs = src.pairs
	n.accel = src.accel
	n.anchorName = src.anchorName
	n.synthetic = src.synthetic
}

// mark/isMarked/unmark implement the bit-level primitives reference-loop
// detection and YPath traversal share.
func (n *Node) mark(bit int)      { n.marks |= 1 << uint(bit) }
func (n *Node) unmark(bit int)    { n.marks &^= 1 << uint(bit) }
func (n *Node) isMarked(bit int) bool { return n.marks&(1<<uint(bit)) != 0 }
