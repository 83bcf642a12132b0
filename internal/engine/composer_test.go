// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"yamlcore.dev/core/internal/testutil/assert"
)

func composeSingle(t *testing.T, doc string) *Node {
	t.Helper()
	var n *Node
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("unexpected panic: %v", r)
			}
		}()
		s := NewScanner(NewSliceReader([]byte(doc)))
		p := NewParser(s)
		c := NewComposer(p, nil, nil)
		n = c.GetSingleNode()
	}()
	return n
}

func mustPanic(t *testing.T, doc string) any {
	t.Helper()
	var r any
	func() {
		defer func() { r = recover() }()
		s := NewScanner(NewSliceReader([]byte(doc)))
		p := NewParser(s)
		c := NewComposer(p, nil, nil)
		c.GetSingleNode()
	}()
	if r == nil {
		t.Fatalf("expected a panic, got none")
	}
	return r
}

func TestComposeScalar(t *testing.T) {
	n := composeSingle(t, "hello\n")
	assert.Equal(t, ScalarNode, n.Kind)
	assert.Equal(t, "hello", n.Value)
	assert.Equal(t, StrTag, n.Tag)
}

func TestComposeFlowSequence(t *testing.T) {
	n := composeSingle(t, "[1, 2, 3]\n")
	assert.Equal(t, SequenceNode, n.Kind)
	assert.Equal(t, 3, len(n.Content))
	assert.Equal(t, "1", n.Content[0].Value)
	assert.Equal(t, IntTag, n.Content[0].Tag)
}

func TestComposeBlockMapping(t *testing.T) {
	n := composeSingle(t, "a: 1\nb: 2\n")
	assert.Equal(t, MappingNode, n.Kind)
	assert.Equal(t, 4, len(n.Content))
	assert.Equal(t, "a", n.Content[0].Value)
	assert.Equal(t, "1", n.Content[1].Value)
	assert.Equal(t, "b", n.Content[2].Value)
	assert.Equal(t, "2", n.Content[3].Value)
}

func TestComposeAnchorAndAlias(t *testing.T) {
	n := composeSingle(t, "a: &x 1\nb: *x\n")
	assert.Equal(t, "x", n.Content[1].Anchor)
	alias := n.Content[3]
	assert.Equal(t, AliasNode, alias.Kind)
	assert.NotNil(t, alias.Alias)
	assert.Equal(t, "1", alias.Alias.Value)
}

func TestComposeQuotedScalarStaysString(t *testing.T) {
	n := composeSingle(t, "\"123\"\n")
	assert.Equal(t, StrTag, n.Tag)
	assert.Equal(t, "123", n.Value)
}

func TestComposeExplicitTagIsShortened(t *testing.T) {
	n := composeSingle(t, "!!str 123\n")
	assert.Equal(t, "!!str", n.Tag)
	assert.Equal(t, "123", n.Value)
}

func TestComposeImplicitTagStaysLongForm(t *testing.T) {
	n := composeSingle(t, "123\n")
	assert.Equal(t, IntTag, n.Tag)
}

func TestComposeUnknownAnchorFails(t *testing.T) {
	r := mustPanic(t, "a: *missing\n")
	assert.ErrorMatches(t, "unknown anchor", asError(r))
}

func TestComposeRecursiveAliasFails(t *testing.T) {
	r := mustPanic(t, "a: &x\n  b: *x\n")
	assert.ErrorMatches(t, "recursive alias", asError(r))
}

func TestComposeDuplicateKeyFails(t *testing.T) {
	r := mustPanic(t, "a: 1\na: 2\n")
	assert.ErrorMatches(t, "duplicate mapping key", asError(r))
}

func TestComposeDifferentlyTaggedKeysAreNotDuplicates(t *testing.T) {
	n := composeSingle(t, "{1: a, !!str 1: b}\n")
	assert.Equal(t, 4, len(n.Content))
	assert.Equal(t, IntTag, n.Content[0].Tag)
	assert.Equal(t, "!!str", n.Content[2].Tag)
}

func TestComposeDuplicateSequenceKeyFails(t *testing.T) {
	r := mustPanic(t, "{[a, b]: 1, [a, b]: 2}\n")
	assert.ErrorMatches(t, "duplicate mapping key", asError(r))
}

func TestComposeDifferentSequenceKeysAreNotDuplicates(t *testing.T) {
	n := composeSingle(t, "{[a, b]: 1, [a, c]: 2}\n")
	assert.Equal(t, 4, len(n.Content))
}

func TestComposeMergeKeyFromMapping(t *testing.T) {
	n := composeSingle(t, "base: &base\n  a: 1\n  b: 2\nover:\n  <<: *base\n  b: 3\n")
	over := n.Content[3]
	assert.Equal(t, MappingNode, over.Kind)
	got := map[string]string{}
	for i := 0; i+1 < len(over.Content); i += 2 {
		got[over.Content[i].Value] = over.Content[i+1].Value
	}
	assert.Equal(t, "1", got["a"])
	assert.Equal(t, "3", got["b"]) // explicit value wins over merged one
}

func TestComposeMergeKeyFromSequenceOfMappings(t *testing.T) {
	n := composeSingle(t, "a: &a\n  x: 1\nb: &b\n  y: 2\nc:\n  <<: [*a, *b]\n  x: 9\n")
	c := n.Content[5]
	got := map[string]string{}
	for i := 0; i+1 < len(c.Content); i += 2 {
		got[c.Content[i].Value] = c.Content[i+1].Value
	}
	assert.Equal(t, "9", got["x"]) // explicit wins over first merge source
	assert.Equal(t, "2", got["y"])
}

func TestComposeMultiDocumentStream(t *testing.T) {
	s := NewScanner(NewSliceReader([]byte("---\na: 1\n---\nb: 2\n")))
	p := NewParser(s)
	c := NewComposer(p, nil, nil)

	var docs []*Node
	for c.CheckNode() {
		docs = append(docs, c.GetNode())
	}
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "a", docs[0].Content[0].Value)
	assert.Equal(t, "b", docs[1].Content[0].Value)
}

func TestGetSingleNodeRejectsSecondDocument(t *testing.T) {
	r := mustPanic(t, "---\na: 1\n---\nb: 2\n")
	assert.ErrorMatches(t, "expected a single document", asError(r))
}

func asError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return nil
}
