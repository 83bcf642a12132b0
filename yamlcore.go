// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yamlcore is the public face of a YAML 1.1 loading pipeline: a
// Scanner (bytes to tokens), a Parser (tokens to events) and a Composer
// (events to a Node tree), wired together behind a thin re-export layer
// over internal/engine.
//
// This package does not decode Nodes into Go values, emit YAML, detect a
// byte-order mark, or read from disk; those concerns sit outside the
// pipeline this package wires together.
package yamlcore

import "yamlcore.dev/core/internal/engine"

type (
	// Node is a single composed piece of YAML: a scalar, sequence,
	// mapping, or alias. See internal/engine.Node.
	Node = engine.Node
	// Kind identifies what a Node represents.
	Kind = engine.NodeKind
	// Style records how a Node was written.
	Style = engine.Style
	// Mark is a position in the input stream.
	Mark = engine.Mark
	// Token is a single lexical unit produced by the Scanner.
	Token = engine.Token
	// Event is a single item of the Parser's output stream.
	Event = engine.Event
	// Resolver maps a node's kind/tag/value to a resolved tag.
	Resolver = engine.Resolver
	// Constructor turns a composed payload into a Node.
	Constructor = engine.Constructor
)

// Node kinds.
const (
	ScalarNode   = engine.ScalarNode
	SequenceNode = engine.SequenceNode
	MappingNode  = engine.MappingNode
	AliasNode    = engine.AliasNode
)

// Node styles.
const (
	TaggedStyle       = engine.TaggedStyle
	DoubleQuotedStyle = engine.DoubleQuotedStyle
	SingleQuotedStyle = engine.SingleQuotedStyle
	LiteralStyle      = engine.LiteralStyle
	FoldedStyle       = engine.FoldedStyle
	FlowStyle         = engine.FlowStyle
)

// Well-known tags.
const (
	NullTag      = engine.NullTag
	BoolTag      = engine.BoolTag
	StrTag       = engine.StrTag
	IntTag       = engine.IntTag
	FloatTag     = engine.FloatTag
	TimestampTag = engine.TimestampTag
	SeqTag       = engine.SeqTag
	MapTag       = engine.MapTag
	BinaryTag    = engine.BinaryTag
	MergeTag     = engine.MergeTag
)

// DefaultResolver implements the classic YAML 1.1 implicit scalar
// resolution rules.
type DefaultResolver = engine.DefaultResolver

// DefaultConstructor builds plain Nodes with no further interpretation.
type DefaultConstructor = engine.DefaultConstructor

// Scanner turns a byte buffer into a stream of Tokens.
type Scanner struct {
	s *engine.Scanner
}

// NewScanner builds a Scanner over an in-memory YAML document.
func NewScanner(input []byte) *Scanner {
	return &Scanner{s: engine.NewScanner(engine.NewSliceReader(input))}
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (tok Token, err error) {
	defer recoverPipelineError(&err)
	tok, err = s.s.Peek()
	if err != nil {
		return Token{}, err
	}
	return tok, nil
}

// Next consumes and returns the next token.
func (s *Scanner) Next() (tok Token, err error) {
	defer recoverPipelineError(&err)
	tok, err = s.s.Next()
	if err != nil {
		return Token{}, err
	}
	return tok, nil
}

// Parser turns a Scanner's tokens into a stream of structural Events.
type Parser struct {
	p *engine.Parser
}

// NewParser builds a Parser over an in-memory YAML document.
func NewParser(input []byte) *Parser {
	s := engine.NewScanner(engine.NewSliceReader(input))
	return &Parser{p: engine.NewParser(s)}
}

// Next returns the next event of the stream: stream and document
// boundaries as well as the node events between them.
func (p *Parser) Next() (ev Event, err error) {
	defer recoverPipelineError(&err)
	ev, err = p.p.Next()
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Composer builds a Node tree out of a Parser's event stream, resolving
// anchors/aliases and flattening merge keys.
type Composer struct {
	c *engine.Composer
}

// ComposerOption configures a Composer's collaborators.
type ComposerOption func(*composerConfig)

type composerConfig struct {
	resolver    Resolver
	constructor Constructor
}

// WithResolver overrides the Composer's default tag resolution.
func WithResolver(r Resolver) ComposerOption {
	return func(c *composerConfig) { c.resolver = r }
}

// WithConstructor overrides the Composer's default Node construction.
func WithConstructor(ctor Constructor) ComposerOption {
	return func(c *composerConfig) { c.constructor = ctor }
}

// NewComposer builds a Composer reading an in-memory YAML document.
func NewComposer(input []byte, opts ...ComposerOption) *Composer {
	cfg := composerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := engine.NewScanner(engine.NewSliceReader(input))
	p := engine.NewParser(s)
	return &Composer{c: engine.NewComposer(p, cfg.resolver, cfg.constructor)}
}

// CheckNode reports whether a next document remains in the stream.
func (c *Composer) CheckNode() bool { return c.c.CheckNode() }

// GetNode composes and returns the next document's root Node, returning
// any error recovered from the pipeline's internal panics.
func (c *Composer) GetNode() (node *Node, err error) {
	defer recoverPipelineError(&err)
	node = c.c.GetNode()
	return node, nil
}

// GetSingleNode composes the stream's one and only document.
func (c *Composer) GetSingleNode() (node *Node, err error) {
	defer recoverPipelineError(&err)
	node = c.c.GetSingleNode()
	return node, nil
}

// recoverPipelineError converts the internal panic-based error
// propagation the scanner/parser/composer stages use into a normal
// returned error at this package's public boundary.
func recoverPipelineError(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
			return
		}
		panic(r)
	}
}
