// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"
	"testing"

	"yamlcore.dev/core/internal/testutil/assert"
)

func scanAll(t *testing.T, doc string) []Token {
	t.Helper()
	s := NewScanner(NewSliceReader([]byte(doc)))
	var toks []Token
	for {
		tok, err := s.Next()
		assert.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == StreamEndToken {
			break
		}
	}
	return toks
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPlainScalar(t *testing.T) {
	toks := scanAll(t, "hello\n")
	assert.DeepEqual(t, []TokenKind{StreamStartToken, ScalarToken, StreamEndToken}, kinds(toks))
	assert.Equal(t, "hello", toks[1].Value)
}

func TestScanBlockMapping(t *testing.T) {
	toks := scanAll(t, "a: 1\nb: 2\n")
	assert.DeepEqual(t, []TokenKind{
		StreamStartToken, BlockMappingStartToken,
		KeyToken, ScalarToken, ValueToken, ScalarToken,
		KeyToken, ScalarToken, ValueToken, ScalarToken,
		BlockEndToken, StreamEndToken,
	}, kinds(toks))
}

func TestScanBlockSequence(t *testing.T) {
	toks := scanAll(t, "- 1\n- 2\n")
	assert.DeepEqual(t, []TokenKind{
		StreamStartToken, BlockSequenceStartToken,
		BlockEntryToken, ScalarToken,
		BlockEntryToken, ScalarToken,
		BlockEndToken, StreamEndToken,
	}, kinds(toks))
}

func TestScanFlowSequence(t *testing.T) {
	toks := scanAll(t, "[1, 2, 3]\n")
	assert.DeepEqual(t, []TokenKind{
		StreamStartToken, FlowSequenceStartToken,
		ScalarToken, FlowEntryToken, ScalarToken, FlowEntryToken, ScalarToken,
		FlowSequenceEndToken, StreamEndToken,
	}, kinds(toks))
}

func TestScanAnchorAndAlias(t *testing.T) {
	toks := scanAll(t, "a: &x 1\nb: *x\n")
	var anchorVal, aliasVal string
	for _, tok := range toks {
		if tok.Kind == AnchorToken {
			anchorVal = tok.Value
		}
		if tok.Kind == AliasToken {
			aliasVal = tok.Value
		}
	}
	assert.Equal(t, "x", anchorVal)
	assert.Equal(t, "x", aliasVal)
}

func TestScanSingleQuoted(t *testing.T) {
	toks := scanAll(t, "'it''s'\n")
	assert.Equal(t, "it's", toks[1].Value)
}

func TestScanDoubleQuotedEscapes(t *testing.T) {
	toks := scanAll(t, "\"a\\nb\\t\\x41\"\n")
	assert.Equal(t, "a\nb\tA", toks[1].Value)
}

func TestScanMultilinePlainScalarFoldsToSpace(t *testing.T) {
	toks := scanAll(t, "a: hello\n  world\n")
	var scalars []string
	for _, tok := range toks {
		if tok.Kind == ScalarToken && tok.Style == PlainScalarStyle && tok.Value != "a" {
			scalars = append(scalars, tok.Value)
		}
	}
	assert.Equal(t, 1, len(scalars))
	assert.Equal(t, "hello world", scalars[0])
}

func TestScanMultilinePlainScalarPreservesBlankLineAsBreak(t *testing.T) {
	toks := scanAll(t, "a: hello\n\n  world\n")
	var scalars []string
	for _, tok := range toks {
		if tok.Kind == ScalarToken && tok.Style == PlainScalarStyle && tok.Value != "a" {
			scalars = append(scalars, tok.Value)
		}
	}
	assert.Equal(t, 1, len(scalars))
	assert.Equal(t, "hello\nworld", scalars[0])
}

func TestScanLiteralBlockScalarKeepsBreaks(t *testing.T) {
	toks := scanAll(t, "a: |\n  one\n  two\n")
	assert.Equal(t, "one\ntwo\n", toks[5].Value)
	assert.Equal(t, LiteralScalarStyle, toks[5].Style)
}

func TestScanFoldedBlockScalarFoldsBreaks(t *testing.T) {
	toks := scanAll(t, "a: >\n  one\n  two\n\n  three\n")
	assert.Equal(t, "one two\n\nthree\n", toks[5].Value)
	assert.Equal(t, FoldedScalarStyle, toks[5].Style)
}

func TestScanBlockScalarExplicitIndentHint(t *testing.T) {
	toks := scanAll(t, "a: |2\n   one\n  two\n")
	assert.Equal(t, " one\ntwo\n", toks[5].Value)
}

func TestScanInvalidCharacterFails(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		assert.ErrorMatches(t, "cannot start any token", asError(r))
	}()
	scanAll(t, "`nope\n")
}

// A plain scalar used as a mapping key may span up to 1024 characters
// before the ':' has to show up; the second key here sits at the same
// column as the block mapping "a" already opened, so it is a required
// simple key and falls under the distance check.
func TestScanSimpleKeyAtMaxDistanceIsAccepted(t *testing.T) {
	key := strings.Repeat("b", 1024)
	toks := scanAll(t, "a: 1\n"+key+": 2\n")
	var found bool
	for _, tok := range toks {
		if tok.Kind == ScalarToken && tok.Value == key {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScanSimpleKeyBeyondMaxDistanceFails(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		assert.ErrorMatches(t, "could not find expected ':'", asError(r))
	}()
	key := strings.Repeat("b", 1025)
	scanAll(t, "a: 1\n"+key+": 2\n")
}
