// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"yamlcore.dev/core/internal/testutil/assert"
)

func TestNodeIsZero(t *testing.T) {
	var n *Node
	assert.True(t, n.IsZero())

	n = &Node{}
	assert.True(t, n.IsZero())

	n = &Node{Kind: ScalarNode, Value: "x"}
	assert.False(t, n.IsZero())
}

func TestNodeStyleBitmaskCombines(t *testing.T) {
	s := DoubleQuotedStyle | FlowStyle
	assert.True(t, s&DoubleQuotedStyle != 0)
	assert.True(t, s&FlowStyle != 0)
	assert.True(t, s&LiteralStyle == 0)
}

func TestComposeScalarNodeFields(t *testing.T) {
	n := composeSingle(t, "hello\n")
	assert.Equal(t, ScalarNode, n.Kind)
	assert.Equal(t, "hello", n.Value)
	assert.False(t, n.IsZero())
}
