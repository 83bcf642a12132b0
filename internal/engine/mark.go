// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"
)

// Mark holds a position in the input stream.
type Mark struct {
	Index  int // code-point offset from the start of input
	Line   int // 1-indexed line
	Column int // 0-indexed column, displayed 1-indexed
}

func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&b, ", column %d", m.Column+1)
	}
	return b.String()
}
