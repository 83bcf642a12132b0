// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"yamlcore.dev/core/internal/testutil/assert"
)

func TestReaderAdvancesLineColumn(t *testing.T) {
	r := NewSliceReader([]byte("ab\ncd"))
	assert.Equal(t, 'a', r.Front())
	r.Advance()
	assert.Equal(t, 'b', r.Front())
	r.Advance()
	assert.Equal(t, '\n', r.Front())
	m := r.Mark()
	assert.Equal(t, 1, m.Line)
	assert.Equal(t, 2, m.Column)
	r.Advance()
	m = r.Mark()
	assert.Equal(t, 2, m.Line)
	assert.Equal(t, 0, m.Column)
}

func TestReaderNormalizesLineBreaks(t *testing.T) {
	r := NewSliceReader([]byte("a\r\nb\rc"))
	var out []rune
	for !r.Empty() {
		out = append(out, r.Front())
		r.Advance()
	}
	assert.Equal(t, "a\nb\nc", string(out))
}

func TestReaderSaveRestore(t *testing.T) {
	r := NewSliceReader([]byte("abc"))
	r.Advance()
	mark := r.Save()
	r.Advance()
	r.Advance()
	assert.True(t, r.Empty())
	r.Restore(mark)
	assert.Equal(t, 'b', r.Front())
	assert.Equal(t, 1, r.Mark().Column)
}

func TestReaderEmptyAtEnd(t *testing.T) {
	r := NewSliceReader(nil)
	assert.True(t, r.Empty())
}
