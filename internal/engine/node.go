// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

// NodeKind identifies what a Node represents.
type NodeKind int

const (
	ScalarNode NodeKind = iota + 1
	SequenceNode
	MappingNode
	AliasNode
)

// Style records how a node was written, as a bitmask so tag-explicitness
// and flow/block-ness can be combined.
type Style int8

const (
	TaggedStyle Style = 1 << iota
	DoubleQuotedStyle
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle
)

// Node is the composed representation of one piece of YAML: a scalar, a
// sequence, a mapping, or an alias pointing at an already-composed node.
//
// Mapping content is stored as alternating key/value pairs in Content
// (Content[2*i] is key i, Content[2*i+1] is value i) rather than a map, so
// that ordering, duplicate keys (before detection), and the ability to
// later flatten merge keys in place are all preserved without a second
// container.
type Node struct {
	Kind    NodeKind
	Tag     string
	Value   string // ScalarNode payload
	Content []*Node
	Anchor  string
	Alias   *Node // resolved target, AliasNode only
	Style   Style
	Line    int
	Column  int
}

// IsZero reports whether n is the zero Node (no content), mirroring the
// teacher's convention of treating an empty document as absent.
func (n *Node) IsZero() bool {
	return n == nil || (n.Kind == 0 && n.Tag == "" && n.Value == "" && n.Content == nil)
}
