// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "strings"

// Constructor turns a composed payload (a scalar's text, a sequence's
// children, or a mapping's key/value pairs) plus its resolved tag into a
// Node. Deeper reflection-based decoding into arbitrary Go types is the
// decode layer's job and stays out of scope for this core.
type Constructor interface {
	ConstructScalar(tag, value string, style Style, start, end Mark) *Node
	ConstructSequence(tag string, content []*Node, style Style, start, end Mark) *Node
	ConstructMapping(tag string, content []*Node, style Style, start, end Mark) *Node
	// IsMergeKey reports whether tag identifies the YAML merge-key tag,
	// used by the Composer to recognize "<<" regardless of whether it
	// arrived with an explicit or implicit tag.
	IsMergeKey(tag string) bool
}

// DefaultConstructor builds plain Nodes with no further interpretation.
// A tag only gets normalized from its long form (tag:yaml.org,2002:str)
// to short form (!!str) when it was explicitly written in the source
// (style carries TaggedStyle); an implicitly-resolved tag is left in the
// long form the Resolver returned, the way the teacher's composer only
// shortens tags that arrived with an explicit source tag.
type DefaultConstructor struct{}

func (DefaultConstructor) ConstructScalar(tag, value string, style Style, start, end Mark) *Node {
	return &Node{Kind: ScalarNode, Tag: tagForStyle(tag, style), Value: value, Style: style, Line: start.Line, Column: start.Column}
}

func (DefaultConstructor) ConstructSequence(tag string, content []*Node, style Style, start, end Mark) *Node {
	return &Node{Kind: SequenceNode, Tag: tagForStyle(tag, style), Content: content, Style: style, Line: start.Line, Column: start.Column}
}

func (DefaultConstructor) ConstructMapping(tag string, content []*Node, style Style, start, end Mark) *Node {
	return &Node{Kind: MappingNode, Tag: tagForStyle(tag, style), Content: content, Style: style, Line: start.Line, Column: start.Column}
}

func tagForStyle(tag string, style Style) string {
	if style&TaggedStyle != 0 {
		return shortenTag(tag)
	}
	return tag
}

func (DefaultConstructor) IsMergeKey(tag string) bool {
	return tag == "" || tag == "!" || shortenTag(tag) == "!!merge" || tag == MergeTag
}

const longTagPrefix = "tag:yaml.org,2002:"

func shortenTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}
