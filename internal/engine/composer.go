// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Composer stage: builds a Node tree from a Parser's event stream,
// resolving anchors/aliases, flattening merge keys, and rejecting
// duplicate mapping keys and recursive aliases.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Composer produces a Node tree out of an event stream.
type Composer struct {
	parser     *Parser
	resolver   Resolver
	constructor Constructor

	event    Event
	haveNext bool

	anchors   map[string]*Node
	composing map[string]bool // anchors currently being built, for cycle detection

	docsSeen int
}

// NewComposer builds a Composer reading from scan via parser, using the
// given Resolver/Constructor collaborators. Passing nil for either uses
// the core's DefaultResolver/DefaultConstructor.
func NewComposer(p *Parser, r Resolver, c Constructor) *Composer {
	if r == nil {
		r = DefaultResolver{}
	}
	if c == nil {
		c = DefaultConstructor{}
	}
	return &Composer{parser: p, resolver: r, constructor: c}
}

func (c *Composer) peek() Event {
	if !c.haveNext {
		ev, err := c.parser.Next()
		if err != nil {
			fail(err)
		}
		c.event = ev
		c.haveNext = true
	}
	return c.event
}

func (c *Composer) consume() Event {
	ev := c.peek()
	c.haveNext = false
	return ev
}

func (c *Composer) expect(kind EventKind) Event {
	ev := c.consume()
	if ev.Kind != kind {
		fail(ComposerError{Message: fmt.Sprintf("expected %s but found %s", kind, ev.Kind), Mark: ev.StartMark})
	}
	return ev
}

// CheckNode reports whether a next document remains in the stream.
func (c *Composer) CheckNode() bool {
	if c.peek().Kind == StreamStartEvent {
		c.consume()
	}
	return c.peek().Kind != StreamEndEvent
}

// GetNode composes and returns the next document's root Node, or nil if
// the stream is exhausted.
func (c *Composer) GetNode() *Node {
	if !c.CheckNode() {
		return nil
	}
	c.anchors = make(map[string]*Node)
	c.composing = make(map[string]bool)
	c.docsSeen++

	c.expect(DocumentStartEvent)
	n := c.composeNode()
	c.expect(DocumentEndEvent)
	return n
}

// GetSingleNode composes the stream's one and only document, erroring if
// a second one is present.
func (c *Composer) GetSingleNode() *Node {
	n := c.GetNode()
	if n == nil {
		return nil
	}
	if c.CheckNode() {
		mark := c.peek().StartMark
		fail(ComposerError{Message: "expected a single document in the stream, but found another", Mark: mark, ContextMessage: "first document started here", ContextMark: n.startMark()})
	}
	return n
}

func (n *Node) startMark() Mark { return Mark{Line: n.Line, Column: n.Column} }

func (c *Composer) composeNode() *Node {
	ev := c.peek()
	switch ev.Kind {
	case AliasEvent:
		return c.composeAlias()
	case ScalarEvent:
		return c.composeScalar()
	case SequenceStartEvent:
		return c.composeSequence()
	case MappingStartEvent:
		return c.composeMapping()
	default:
		fail(ComposerError{Message: fmt.Sprintf("unexpected event %s while composing a node", ev.Kind), Mark: ev.StartMark})
	}
	return nil
}

func (c *Composer) composeAlias() *Node {
	ev := c.consume()
	if c.composing[ev.Anchor] {
		fail(ComposerError{Message: fmt.Sprintf("found recursive alias: %s", ev.Anchor), Mark: ev.StartMark})
	}
	target, ok := c.anchors[ev.Anchor]
	if !ok {
		fail(ComposerError{Message: fmt.Sprintf("unknown anchor %q referenced", ev.Anchor), Mark: ev.StartMark})
	}
	return &Node{Kind: AliasNode, Value: ev.Anchor, Alias: target, Line: ev.StartMark.Line, Column: ev.StartMark.Column}
}

func (c *Composer) registerAnchor(anchor string, mark Mark) {
	if anchor == "" {
		return
	}
	if c.composing[anchor] {
		fail(ComposerError{Message: fmt.Sprintf("found duplicate anchor %q; first occurrence", anchor), Mark: mark})
	}
	c.composing[anchor] = true
}

func (c *Composer) finishAnchor(anchor string, n *Node) {
	if anchor == "" {
		return
	}
	c.anchors[anchor] = n
	delete(c.composing, anchor)
}

func (c *Composer) composeScalar() *Node {
	ev := c.consume()
	c.registerAnchor(ev.Anchor, ev.StartMark)
	// Only a plain, untagged scalar is a candidate for implicit typing; a
	// quoted/literal/folded scalar with no explicit tag is pinned to str
	// (QuotedImplicit), so implicit stays false and DefaultResolver's
	// regex ladder is never consulted for it.
	tag := c.resolver.Resolve(ScalarNode, ev.Tag, ev.Value, ev.Implicit)
	style := styleFromScalar(ev.ScalarStyle)
	if ev.Tag != "" {
		// An explicit source tag marks the Node as TaggedStyle so the
		// Constructor knows to normalize it to short form; an
		// implicitly-resolved tag is left in Resolve's long form.
		style |= TaggedStyle
	}
	n := c.constructor.ConstructScalar(tag, ev.Value, style, ev.StartMark, ev.EndMark)
	n.Anchor = ev.Anchor
	c.finishAnchor(ev.Anchor, n)
	return n
}

func styleFromScalar(s ScalarStyle) Style {
	switch s {
	case DoubleQuotedScalarStyle:
		return DoubleQuotedStyle
	case SingleQuotedScalarStyle:
		return SingleQuotedStyle
	case LiteralScalarStyle:
		return LiteralStyle
	case FoldedScalarStyle:
		return FoldedStyle
	}
	return 0
}

func (c *Composer) composeSequence() *Node {
	start := c.consume()
	c.registerAnchor(start.Anchor, start.StartMark)

	// Store a placeholder under the anchor before recursing and patch it
	// in place once the real Node exists, so the anchors table and the
	// returned Node are the same pointer. An alias to this anchor among
	// the children (`&a [*a]`) is rejected by composeAlias through the
	// composing set that registerAnchor filled, not through this entry.
	placeholder := &Node{Kind: SequenceNode}
	if start.Anchor != "" {
		c.anchors[start.Anchor] = placeholder
	}

	var content []*Node
	for c.peek().Kind != SequenceEndEvent {
		content = append(content, c.composeNode())
	}
	end := c.consume()

	tag := c.resolver.Resolve(SequenceNode, start.Tag, "", start.Implicit)
	style := styleFromCollection(start.CollectionStyle)
	if start.Tag != "" {
		style |= TaggedStyle
	}
	n := c.constructor.ConstructSequence(tag, content, style, start.StartMark, end.EndMark)
	n.Anchor = start.Anchor
	*placeholder = *n
	c.finishAnchor(start.Anchor, placeholder)
	return placeholder
}

func styleFromCollection(s CollectionStyle) Style {
	if s == FlowCollectionStyle {
		return FlowStyle
	}
	return 0
}

func (c *Composer) composeMapping() *Node {
	start := c.consume()
	c.registerAnchor(start.Anchor, start.StartMark)

	placeholder := &Node{Kind: MappingNode}
	if start.Anchor != "" {
		c.anchors[start.Anchor] = placeholder
	}

	var content []*Node
	seen := map[string]bool{}
	var merges []*Node
	for c.peek().Kind != MappingEndEvent {
		key := c.composeNode()
		value := c.composeNode()

		if c.constructor.IsMergeKey(key.Tag) && key.Kind == ScalarNode && key.Value == "<<" {
			merges = append(merges, value)
			continue
		}

		id := nodeIdentity(key)
		if seen[id] {
			fail(ComposerError{Message: fmt.Sprintf("found duplicate mapping key %q", key.Value), Mark: Mark{Line: key.Line, Column: key.Column}})
		}
		seen[id] = true
		content = append(content, key, value)
	}
	end := c.consume()

	// Merge keys are flattened directly into this mapping's own Content
	// here in the Composer, rather than deferred to a later reflection
	// pass: each merged mapping/alias/sequence-of-mappings contributes
	// its pairs, with fields already present in this mapping winning
	// (YAML merge-key semantics: the explicit value always wins over a
	// merged one).
	for _, m := range merges {
		content = flattenMergeValue(m, content, seen)
	}

	tag := c.resolver.Resolve(MappingNode, start.Tag, "", start.Implicit)
	style := styleFromCollection(start.CollectionStyle)
	if start.Tag != "" {
		style |= TaggedStyle
	}
	n := c.constructor.ConstructMapping(tag, content, style, start.StartMark, end.EndMark)
	n.Anchor = start.Anchor
	*placeholder = *n
	c.finishAnchor(start.Anchor, placeholder)
	return placeholder
}

// flattenMergeValue appends merge's key/value pairs to content, skipping
// any key already present (either from the mapping's own explicit pairs
// or an earlier merge source — merge sources are applied in order and
// the first one to define a key wins, matching "<<: [*a, *b]" preferring
// *a over *b). Ported from the reflection-based Decoder.merge/isMerge in
// the teacher lineage, reshaped to operate on *Node pairs.
func flattenMergeValue(merge *Node, content []*Node, seen map[string]bool) []*Node {
	target := merge
	if target.Kind == AliasNode {
		target = target.Alias
	}
	switch target.Kind {
	case MappingNode:
		return mergePairs(target, content, seen)
	case SequenceNode:
		for _, item := range target.Content {
			src := item
			if src.Kind == AliasNode {
				src = src.Alias
			}
			if src == nil || src.Kind != MappingNode {
				fail(ComposerError{Message: "map merge requires map or list of maps"})
			}
			content = mergePairs(src, content, seen)
		}
		return content
	default:
		fail(ComposerError{Message: "map merge requires map or list of maps"})
	}
	return content
}

func mergePairs(src *Node, content []*Node, seen map[string]bool) []*Node {
	for i := 0; i+1 < len(src.Content); i += 2 {
		k, v := src.Content[i], src.Content[i+1]
		id := nodeIdentity(k)
		if seen[id] {
			continue
		}
		seen[id] = true
		content = append(content, k, v)
	}
	return content
}

// nodeIdentity is the structural-equality key used to detect duplicate
// mapping keys and to decide whether a merged field is already present:
// two keys are the same key when they have the same kind, the same
// resolved tag, and the same value — recursively for Sequence/Mapping
// keys — per SPEC_FULL.md's "structural equality across Scalar/Sequence/
// Mapping" requirement, compared after tag resolution rather than by raw
// source text.
func nodeIdentity(n *Node) string {
	var b strings.Builder
	writeNodeIdentity(&b, n)
	return b.String()
}

func writeNodeIdentity(b *strings.Builder, n *Node) {
	if n.Kind == AliasNode && n.Alias != nil {
		n = n.Alias
	}
	b.WriteString(strconv.Itoa(int(n.Kind)))
	b.WriteByte(':')
	b.WriteString(shortenTag(n.Tag))
	b.WriteByte(':')
	switch n.Kind {
	case ScalarNode:
		b.WriteString(n.Value)
	case SequenceNode, MappingNode:
		for _, child := range n.Content {
			writeNodeIdentity(b, child)
			b.WriteByte(0)
		}
	}
}
