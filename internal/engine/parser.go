// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Parser stage: turns a Scanner's token stream into an event stream, per
// the YAML grammar:
//
//	stream            ::= STREAM-START document* STREAM-END
//	document          ::= DOCUMENT-START node DOCUMENT-END
//	node              ::= ALIAS | properties? (scalar|sequence|mapping)
//	properties        ::= ANCHOR TAG? | TAG ANCHOR?
//	block-sequence    ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY node?)* BLOCK-END
//	block-mapping     ::= BLOCK-MAPPING-START (KEY node? VALUE node?)* BLOCK-END
//	flow-sequence     ::= FLOW-SEQUENCE-START (node FLOW-ENTRY)* node? FLOW-SEQUENCE-END
//	flow-mapping      ::= FLOW-MAPPING-START (flow-pair FLOW-ENTRY)* flow-pair? FLOW-MAPPING-END
//
// A document's whole node tree is expanded eagerly, by ordinary recursive
// calls, into a flat queue each time Next's queue runs dry; this keeps
// the per-production methods below a direct, readable transcription of
// the grammar instead of the explicit state-stack machine a state-free C
// implementation needs, while still only pulling one document's worth of
// tokens through the Scanner at a time.
package engine

import "fmt"

type tagHandleTable map[string]string

var defaultTagHandles = tagHandleTable{
	"!":  "!",
	"!!": "tag:yaml.org,2002:",
}

// Parser wraps a Scanner and produces the event stream a Composer reads.
type Parser struct {
	scan *Scanner

	tags tagHandleTable

	docVersion *VersionDirective
	docTags    []TagDirective

	pending       []Event
	streamStarted bool
	streamEnded   bool
}

// NewParser builds a Parser over the given Scanner.
func NewParser(scan *Scanner) *Parser {
	return &Parser{scan: scan}
}

// Next returns the next event in the stream, or a zero Event once the
// stream is exhausted.
func (p *Parser) Next() (Event, error) {
	if len(p.pending) == 0 {
		p.fill()
	}
	if len(p.pending) == 0 {
		return Event{}, nil
	}
	ev := p.pending[0]
	p.pending = p.pending[1:]
	return ev, nil
}

func (p *Parser) peek() Token {
	tok, err := p.scan.Peek()
	if err != nil {
		fail(err)
	}
	return tok
}

func (p *Parser) consume() Token {
	tok, err := p.scan.Next()
	if err != nil {
		fail(err)
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) Token {
	tok := p.consume()
	if tok.Kind != kind {
		fail(ParserError{Message: fmt.Sprintf("expected %s but found %s", kind, tok.Kind), Mark: tok.StartMark})
	}
	return tok
}

// fill produces the next chunk of events: the stream-start event, the
// stream-end event, or one entire document (DOCUMENT-START, its node
// subtree, DOCUMENT-END).
func (p *Parser) fill() {
	if p.streamEnded {
		return
	}
	if !p.streamStarted {
		tok := p.expect(StreamStartToken)
		p.streamStarted = true
		p.pending = append(p.pending, NewStreamStartEvent(tok.Encoding, tok.StartMark, tok.EndMark))
		return
	}

	if p.peek().Kind == StreamEndToken {
		tok := p.consume()
		p.streamEnded = true
		p.pending = append(p.pending, NewStreamEndEvent(tok.StartMark, tok.EndMark))
		return
	}

	p.parseDirectives()

	startTok := p.peek()
	startMark := startTok.StartMark
	implicit := true
	if startTok.Kind == DocumentStartToken {
		implicit = false
		p.consume()
	}
	version, tags := p.docVersion, p.docTags
	p.docVersion, p.docTags = nil, nil
	p.pending = append(p.pending, NewDocumentStartEvent(implicit, version, tags, startMark, p.peek().StartMark))

	p.parseNode(&p.pending)

	endTok := p.peek()
	endImplicit := true
	if endTok.Kind == DocumentEndToken {
		endImplicit = false
		p.consume()
	}
	p.pending = append(p.pending, NewDocumentEndEvent(endImplicit, endTok.StartMark, endTok.EndMark))
}

func (p *Parser) parseDirectives() {
	p.tags = tagHandleTable{}
	for k, v := range defaultTagHandles {
		p.tags[k] = v
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == VersionDirectiveToken:
			if p.docVersion != nil {
				fail(ParserError{Message: "found duplicate %YAML directive", Mark: tok.StartMark})
			}
			p.docVersion = &VersionDirective{Major: tok.VersionMajor, Minor: tok.VersionMinor}
			p.consume()
		case tok.Kind == TagDirectiveToken && tok.Directive == TagKindDirective:
			p.tags[tok.Handle] = tok.Prefix
			p.docTags = append(p.docTags, TagDirective{Handle: tok.Handle, Prefix: tok.Prefix})
			p.consume()
		case tok.Kind == TagDirectiveToken:
			p.consume() // reserved directive, ignored
		default:
			return
		}
	}
}

// parseNode implements the node production: an ALIAS short-circuits
// everything else; otherwise ANCHOR and TAG properties may appear in
// either order before the scalar/sequence/mapping body.
func (p *Parser) parseNode(events *[]Event) {
	tok := p.peek()
	if tok.Kind == AliasToken {
		p.consume()
		*events = append(*events, NewAliasEvent(tok.Value, tok.StartMark, tok.EndMark))
		return
	}

	start := tok.StartMark
	var anchor, tagHandle, tagSuffix string
	haveTag := false
	for {
		tok = p.peek()
		switch tok.Kind {
		case AnchorToken:
			anchor = tok.Value
			p.consume()
			continue
		case TagToken:
			tagHandle, tagSuffix = tok.TagHandle, tok.TagSuffix
			haveTag = true
			p.consume()
			continue
		}
		break
	}

	tag := ""
	if haveTag {
		tag = p.resolveTagHandle(tagHandle, tagSuffix, start)
	}

	tok = p.peek()
	switch tok.Kind {
	case ScalarToken:
		p.consume()
		plainImplicit := !haveTag && tok.Style == PlainScalarStyle
		quotedImplicit := !haveTag && tok.Style != PlainScalarStyle
		*events = append(*events, NewScalarEvent(anchor, tag, tok.Value, plainImplicit, quotedImplicit, tok.Style, start, tok.EndMark))

	case FlowSequenceStartToken:
		p.consume()
		*events = append(*events, NewSequenceStartEvent(anchor, tag, !haveTag, FlowCollectionStyle, start, tok.EndMark))
		for p.peek().Kind != FlowSequenceEndToken {
			p.parseNode(events)
			if p.peek().Kind == FlowEntryToken {
				p.consume()
			} else {
				break
			}
		}
		end := p.expect(FlowSequenceEndToken)
		*events = append(*events, NewSequenceEndEvent(end.StartMark, end.EndMark))

	case BlockSequenceStartToken:
		p.consume()
		*events = append(*events, NewSequenceStartEvent(anchor, tag, !haveTag, BlockCollectionStyle, start, tok.EndMark))
		for p.peek().Kind == BlockEntryToken {
			p.consume()
			next := p.peek()
			if next.Kind == BlockEntryToken || next.Kind == BlockEndToken {
				*events = append(*events, nullScalarEvent(next.StartMark))
			} else {
				p.parseNode(events)
			}
		}
		end := p.expect(BlockEndToken)
		*events = append(*events, NewSequenceEndEvent(end.StartMark, end.EndMark))

	case FlowMappingStartToken:
		p.consume()
		*events = append(*events, NewMappingStartEvent(anchor, tag, !haveTag, FlowCollectionStyle, start, tok.EndMark))
		for p.peek().Kind != FlowMappingEndToken {
			p.parseFlowMappingEntry(events)
			if p.peek().Kind == FlowEntryToken {
				p.consume()
			} else {
				break
			}
		}
		end := p.expect(FlowMappingEndToken)
		*events = append(*events, NewMappingEndEvent(end.StartMark, end.EndMark))

	case BlockMappingStartToken:
		p.consume()
		*events = append(*events, NewMappingStartEvent(anchor, tag, !haveTag, BlockCollectionStyle, start, tok.EndMark))
		for p.peek().Kind == KeyToken {
			p.parseBlockMappingEntry(events)
		}
		end := p.expect(BlockEndToken)
		*events = append(*events, NewMappingEndEvent(end.StartMark, end.EndMark))

	case KeyToken:
		// A lone KEY token where a node was expected only ever shows up as
		// a flow-sequence entry (the Scanner only splices a bare KEY,
		// without a surrounding BLOCK-MAPPING-START, when flowLevel > 0):
		// `[a: b]` implicitly opens a one-pair flow mapping around that
		// entry, the same sugar `{a: b}` would write explicitly.
		*events = append(*events, NewMappingStartEvent(anchor, tag, !haveTag, FlowCollectionStyle, start, tok.EndMark))
		p.parseFlowMappingEntry(events)
		end := p.peek()
		*events = append(*events, NewMappingEndEvent(end.StartMark, end.StartMark))

	default:
		if anchor != "" || haveTag {
			// an empty scalar with just properties, e.g. "foo: !!null"
			*events = append(*events, NewScalarEvent(anchor, tag, "", !haveTag, false, PlainScalarStyle, start, tok.StartMark))
			return
		}
		fail(ParserError{Message: "while parsing a node, did not find expected node content", Mark: tok.StartMark})
	}
}

func nullScalarEvent(at Mark) Event {
	return NewScalarEvent("", "", "", true, false, PlainScalarStyle, at, at)
}

func (p *Parser) parseBlockMappingEntry(events *[]Event) {
	p.expect(KeyToken)
	switch p.peek().Kind {
	case ValueToken, KeyToken, BlockEndToken:
		*events = append(*events, nullScalarEvent(p.peek().StartMark))
	default:
		p.parseNode(events)
	}
	if p.peek().Kind == ValueToken {
		p.consume()
		switch p.peek().Kind {
		case KeyToken, BlockEndToken:
			*events = append(*events, nullScalarEvent(p.peek().StartMark))
		default:
			p.parseNode(events)
		}
	} else {
		*events = append(*events, nullScalarEvent(p.peek().StartMark))
	}
}

func (p *Parser) parseFlowMappingEntry(events *[]Event) {
	if p.peek().Kind == KeyToken {
		p.consume()
		switch p.peek().Kind {
		case ValueToken, FlowEntryToken, FlowMappingEndToken:
			*events = append(*events, nullScalarEvent(p.peek().StartMark))
		default:
			p.parseNode(events)
		}
	} else {
		p.parseNode(events)
	}
	if p.peek().Kind == ValueToken {
		p.consume()
		switch p.peek().Kind {
		case FlowEntryToken, FlowMappingEndToken:
			*events = append(*events, nullScalarEvent(p.peek().StartMark))
		default:
			p.parseNode(events)
		}
	} else {
		*events = append(*events, nullScalarEvent(p.peek().StartMark))
	}
}

func (p *Parser) resolveTagHandle(handle, suffix string, mark Mark) string {
	if handle == "" {
		return suffix // verbatim !<...> tag
	}
	prefix, ok := p.tags[handle]
	if !ok {
		fail(ParserError{Message: fmt.Sprintf("found undefined tag handle %q", handle), Mark: mark})
	}
	return prefix + suffix
}
