// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

// Encoding is the stream's byte encoding. BOM detection is out of scope
// for this core: the Scanner does not detect an encoding, and the
// StreamStart token it emits always carries AnyEncoding.
type Encoding int

const (
	AnyEncoding Encoding = iota
	UTF8Encoding
	UTF16LEEncoding
	UTF16BEEncoding
)

// TokenKind identifies the structural or data role of a Token.
type TokenKind int

const (
	NoToken TokenKind = iota

	StreamStartToken
	StreamEndToken

	VersionDirectiveToken
	TagDirectiveToken
	DocumentStartToken
	DocumentEndToken

	BlockSequenceStartToken
	BlockMappingStartToken
	BlockEndToken

	FlowSequenceStartToken
	FlowSequenceEndToken
	FlowMappingStartToken
	FlowMappingEndToken

	BlockEntryToken
	FlowEntryToken
	KeyToken
	ValueToken

	AliasToken
	AnchorToken
	TagToken
	ScalarToken
)

func (k TokenKind) String() string {
	switch k {
	case NoToken:
		return "NoToken"
	case StreamStartToken:
		return "StreamStartToken"
	case StreamEndToken:
		return "StreamEndToken"
	case VersionDirectiveToken:
		return "VersionDirectiveToken"
	case TagDirectiveToken:
		return "TagDirectiveToken"
	case DocumentStartToken:
		return "DocumentStartToken"
	case DocumentEndToken:
		return "DocumentEndToken"
	case BlockSequenceStartToken:
		return "BlockSequenceStartToken"
	case BlockMappingStartToken:
		return "BlockMappingStartToken"
	case BlockEndToken:
		return "BlockEndToken"
	case FlowSequenceStartToken:
		return "FlowSequenceStartToken"
	case FlowSequenceEndToken:
		return "FlowSequenceEndToken"
	case FlowMappingStartToken:
		return "FlowMappingStartToken"
	case FlowMappingEndToken:
		return "FlowMappingEndToken"
	case BlockEntryToken:
		return "BlockEntryToken"
	case FlowEntryToken:
		return "FlowEntryToken"
	case KeyToken:
		return "KeyToken"
	case ValueToken:
		return "ValueToken"
	case AliasToken:
		return "AliasToken"
	case AnchorToken:
		return "AnchorToken"
	case TagToken:
		return "TagToken"
	case ScalarToken:
		return "ScalarToken"
	}
	return "<unknown token>"
}

// DirectiveKind distinguishes %YAML from %TAG directives.
type DirectiveKind int

const (
	ReservedDirective DirectiveKind = iota
	YAMLDirective
	TagKindDirective
)

// ScalarStyle records how a scalar was written in the source.
type ScalarStyle int8

const (
	AnyScalarStyle ScalarStyle = iota
	PlainScalarStyle
	SingleQuotedScalarStyle
	DoubleQuotedScalarStyle
	LiteralScalarStyle
	FoldedScalarStyle
)

// Token is a single lexical unit produced by the Scanner. Only the fields
// relevant to Kind are populated; it is a tagged union rather than a set
// of typed structs so the Scanner can keep a flat FIFO queue of them.
type Token struct {
	Kind               TokenKind
	StartMark, EndMark Mark

	// StreamStartToken
	Encoding Encoding

	// VersionDirectiveToken
	VersionMajor, VersionMinor int

	// TagDirectiveToken
	Handle, Prefix string

	// VersionDirectiveToken, TagDirectiveToken: which directive this is;
	// a reserved directive arrives as TagDirectiveToken with ReservedDirective
	Directive DirectiveKind

	// AliasToken, AnchorToken, ScalarToken: the literal text
	Value string

	// TagToken: handle + suffix, already split
	TagHandle, TagSuffix string

	// ScalarToken
	Style ScalarStyle
}
