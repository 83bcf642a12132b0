// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Scanner stage: turns a decoded input stream into a queue of Tokens.
//
// The scanner is pull-based: Next/Peek fill a small FIFO on demand by
// calling fetchMoreTokens until either the queue
// holds a token that isn't blocked behind an unresolved simple key, or
// input is exhausted. Indentation is tracked with a stack of prior
// columns (rollIndent/unrollIndent synthesize BlockSequenceStart/
// BlockMappingStart/BlockEnd around column changes); a YAML mapping key
// is only recognizable in hindsight, once the ':' that follows it is
// seen, so candidate keys are tracked per flow-nesting level and, when
// confirmed, a Key token (and possibly a BlockMappingStart) is spliced
// into the queue ahead of the token already scanned for the key itself.
package engine

import (
	"strings"
	"unicode"
)

const maxIndents = 10000
const maxFlowLevel = 10000
const maxSimpleKeyDistance = 1024

type simpleKey struct {
	possible   bool
	required   bool
	tokenIndex int
	mark       Mark
}

// Scanner converts a Reader's rune stream into a sequence of Tokens.
type Scanner struct {
	in Reader

	tokens     []Token
	tokenIndex int // number of tokens ever produced, for simple-key bookkeeping

	streamStartProduced bool
	streamEndProduced   bool

	indent  int
	indents []int

	flowLevel int

	simpleKeyAllowed bool
	simpleKeys       []simpleKey // one current candidate per flow level

	err error
}

// NewScanner builds a Scanner over the given Reader.
func NewScanner(r Reader) *Scanner {
	return &Scanner{in: r, indent: -1, simpleKeyAllowed: true}
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (Token, error) {
	if err := s.ensure(1); err != nil {
		return Token{}, err
	}
	return s.tokens[0], nil
}

// Next consumes and returns the next token.
func (s *Scanner) Next() (Token, error) {
	if err := s.ensure(1); err != nil {
		return Token{}, err
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t, nil
}

func (s *Scanner) ensure(n int) error {
	for {
		if len(s.tokens) >= n {
			// Hold back the head token while it is still a live simple-key
			// candidate: a later ':' may splice KEY/BLOCK-MAPPING-START
			// in front of it.
			taken := s.tokenIndex - len(s.tokens)
			blocked := false
			for _, k := range s.simpleKeys {
				if k.possible && k.tokenIndex == taken {
					blocked = true
				}
			}
			if !blocked {
				break
			}
		}
		if s.err != nil {
			return s.err
		}
		more, err := s.fetchMoreTokens()
		if err != nil {
			s.err = err
			return err
		}
		if !more {
			break
		}
	}
	return s.err
}

// fetchMoreTokens advances the scanner by one token (or the stream-start
// pseudo-token), returning false once the stream is fully drained.
func (s *Scanner) fetchMoreTokens() (bool, error) {
	if s.streamEndProduced {
		return false, nil
	}
	if !s.streamStartProduced {
		s.fetchStreamStart()
		return true, nil
	}

	s.staleSimpleKeys()

	if err := s.fetchNextToken(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Scanner) staleSimpleKeys() {
	for level := range s.simpleKeys {
		k := &s.simpleKeys[level]
		if k.possible && (k.mark.Line != s.in.Mark().Line || s.in.Mark().Index-k.mark.Index > maxSimpleKeyDistance) {
			if k.required {
				fail(ScannerError{Message: "could not find expected ':'", Mark: s.in.Mark()})
			}
			k.possible = false
		}
	}
}

func (s *Scanner) push(t Token) {
	s.tokens = append(s.tokens, t)
	s.tokenIndex++
}

// insertAt splices a token into the queue at a position recorded earlier
// by a saveSimpleKey call, using the same relative-offset scheme the
// teacher's insertToken uses: simpleKeys record an absolute token index,
// and this converts it to a slice offset against the current queue.
func (s *Scanner) insertAt(absoluteIndex int, t Token) {
	offset := absoluteIndex - (s.tokenIndex - len(s.tokens))
	if offset < 0 || offset > len(s.tokens) {
		return
	}
	s.tokens = append(s.tokens, Token{})
	copy(s.tokens[offset+1:], s.tokens[offset:])
	s.tokens[offset] = t
	s.tokenIndex++
}

func (s *Scanner) mark() Mark { return s.in.Mark() }

func (s *Scanner) fetchStreamStart() {
	s.streamStartProduced = true
	m := s.mark()
	s.indents = s.indents[:0]
	s.indent = -1
	s.simpleKeys = []simpleKey{{}}
	s.push(Token{Kind: StreamStartToken, StartMark: m, EndMark: m})
}

func (s *Scanner) fetchStreamEnd() {
	s.unrollIndent(-1)
	s.removeSimpleKey()
	s.simpleKeyAllowed = false
	m := s.mark()
	s.push(Token{Kind: StreamEndToken, StartMark: m, EndMark: m})
	s.streamEndProduced = true
}

func (s *Scanner) fetchNextToken() error {
	s.scanToNextToken()
	if s.in.Empty() {
		s.fetchStreamEnd()
		return nil
	}
	s.unrollIndent(s.column())

	c := s.in.Front()
	switch {
	case c == '%' && s.atLineStart() && s.flowLevel == 0:
		return s.fetchDirective()
	case c == '-' && s.isDocumentIndicator("---"):
		return s.fetchDocumentIndicator(DocumentStartToken)
	case c == '.' && s.isDocumentIndicator("..."):
		return s.fetchDocumentIndicator(DocumentEndToken)
	case c == '[':
		return s.fetchFlowCollectionStart(FlowSequenceStartToken)
	case c == '{':
		return s.fetchFlowCollectionStart(FlowMappingStartToken)
	case c == ']':
		return s.fetchFlowCollectionEnd(FlowSequenceEndToken)
	case c == '}':
		return s.fetchFlowCollectionEnd(FlowMappingEndToken)
	case c == ',':
		return s.fetchFlowEntry()
	case c == '-' && isBlockEntryIndicator(s.peekAt(1)):
		return s.fetchBlockEntry()
	case c == '?' && (s.flowLevel > 0 || isBlankAt(s.peekAt(1))):
		return s.fetchKey()
	case c == ':' && (s.flowLevel > 0 || isBlankAt(s.peekAt(1))):
		return s.fetchValue()
	case c == '*':
		return s.fetchAnchorOrAlias(AliasToken)
	case c == '&':
		return s.fetchAnchorOrAlias(AnchorToken)
	case c == '!':
		return s.fetchTag()
	case c == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(LiteralScalarStyle)
	case c == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(FoldedScalarStyle)
	case c == '\'':
		return s.fetchFlowScalar(SingleQuotedScalarStyle)
	case c == '"':
		return s.fetchFlowScalar(DoubleQuotedScalarStyle)
	case isPlainScalarStart(c, s.flowLevel):
		return s.fetchPlainScalar()
	default:
		fail(ScannerError{Message: "found character that cannot start any token", Mark: s.mark()})
	}
	return nil
}

func (s *Scanner) column() int { return s.in.Mark().Column }
func (s *Scanner) atLineStart() bool { return s.column() == 0 }

func (s *Scanner) peekAt(n int) rune {
	cur := s.in.Save()
	defer s.in.Restore(cur)
	var r rune
	for i := 0; i <= n; i++ {
		r = s.in.Front()
		if i < n {
			s.in.Advance()
		}
	}
	return r
}

func isBlankAt(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == 0 }
func isBlockEntryIndicator(next rune) bool { return isBlankAt(next) }

func isPlainScalarStart(c rune, flowLevel int) bool {
	switch c {
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case '-', '?', ':':
		return true // callers already special-cased the "followed by blank" forms
	}
	if flowLevel > 0 {
		switch c {
		case ',', '?', '[', ']', '{', '}':
			return false
		}
	}
	return c != 0 && !unicode.IsSpace(c)
}

func (s *Scanner) isDocumentIndicator(lit string) bool {
	if !s.atLineStart() {
		return false
	}
	cur := s.in.Save()
	defer s.in.Restore(cur)
	for _, want := range lit {
		if s.in.Front() != want {
			return false
		}
		s.in.Advance()
	}
	return isBlankAt(s.in.Front())
}

// --- indentation machine ---

// rollIndent pushes the current indentation level and opens a new block
// collection when column deepens it. number is the absolute token index to
// splice the new token in at (as recorded by saveSimpleKey), or -1 to just
// append it at the current queue tail.
func (s *Scanner) rollIndent(column int, number int, kind TokenKind, mark Mark) {
	if s.flowLevel > 0 {
		return
	}
	if s.indent < column {
		s.indents = append(s.indents, s.indent)
		if len(s.indents) > maxIndents {
			fail(ScannerError{Message: "too many indentation levels", Mark: mark})
		}
		s.indent = column
		tok := Token{Kind: kind, StartMark: mark, EndMark: mark}
		if number < 0 {
			s.push(tok)
		} else {
			s.insertAt(number, tok)
		}
	}
}

func (s *Scanner) unrollIndent(column int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > column {
		m := s.mark()
		s.indent = s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
		s.push(Token{Kind: BlockEndToken, StartMark: m, EndMark: m})
	}
}

// --- simple-key machine ---

func (s *Scanner) saveSimpleKey() {
	required := s.flowLevel == 0 && s.indent == s.column()
	if s.simpleKeyAllowed {
		s.removeSimpleKey()
		k := simpleKey{possible: true, required: required, tokenIndex: s.tokenIndex, mark: s.mark()}
		if s.flowLevel >= len(s.simpleKeys) {
			s.simpleKeys = append(s.simpleKeys, k)
		} else {
			s.simpleKeys[s.flowLevel] = k
		}
	}
}

func (s *Scanner) removeSimpleKey() {
	if s.flowLevel >= len(s.simpleKeys) {
		return
	}
	k := &s.simpleKeys[s.flowLevel]
	if k.possible && k.required {
		fail(ScannerError{Message: "could not find expected ':'", Mark: s.mark()})
	}
	k.possible = false
}

func (s *Scanner) increaseFlowLevel() {
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	s.flowLevel++
	if s.flowLevel > maxFlowLevel {
		fail(ScannerError{Message: "too many nested flow collections", Mark: s.mark()})
	}
}

func (s *Scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		s.simpleKeys = s.simpleKeys[:len(s.simpleKeys)-1]
	}
}

// --- scanToNextToken ---

func (s *Scanner) scanToNextToken() {
	for {
		for s.in.Front() == ' ' || (s.in.Front() == '\t' && (s.flowLevel > 0 || !s.atLineStart() || s.indent < 0)) {
			s.in.Advance()
		}
		if s.in.Front() == '#' {
			for !isBlankAt(s.in.Front()) && !s.in.Empty() {
				s.in.Advance()
			}
			for s.in.Front() != '\n' && !s.in.Empty() {
				s.in.Advance()
			}
		}
		if s.in.Front() == '\n' {
			s.in.Advance()
			if s.flowLevel == 0 {
				s.simpleKeyAllowed = true
			}
			continue
		}
		break
	}
}

// --- fetch* productions ---

func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1)
	s.removeSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	s.in.Advance() // '%'
	name := s.scanWord()
	switch name {
	case "YAML":
		major, minor := s.scanVersionDirectiveValue()
		end := s.mark()
		s.push(Token{Kind: VersionDirectiveToken, Directive: YAMLDirective, VersionMajor: major, VersionMinor: minor, StartMark: start, EndMark: end})
	case "TAG":
		handle, prefix := s.scanTagDirectiveValue()
		end := s.mark()
		s.push(Token{Kind: TagDirectiveToken, Directive: TagKindDirective, Handle: handle, Prefix: prefix, StartMark: start, EndMark: end})
	default:
		for !isBlankAt(s.in.Front()) && !s.in.Empty() {
			s.in.Advance()
		}
		s.push(Token{Kind: TagDirectiveToken, Directive: ReservedDirective, StartMark: start, EndMark: s.mark()})
	}
	s.scanDirectiveLineEnd()
	return nil
}

func (s *Scanner) scanWord() string {
	var b strings.Builder
	for isWordChar(s.in.Front()) {
		b.WriteRune(s.in.Front())
		s.in.Advance()
	}
	return b.String()
}

func isWordChar(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) scanVersionDirectiveValue() (int, int) {
	for s.in.Front() == ' ' {
		s.in.Advance()
	}
	major := s.scanDecimal()
	if s.in.Front() != '.' {
		fail(ScannerError{Message: "while scanning a %YAML directive, did not find expected digit or '.' character", Mark: s.mark()})
	}
	s.in.Advance()
	minor := s.scanDecimal()
	return major, minor
}

func (s *Scanner) scanDecimal() int {
	n := 0
	if !unicode.IsDigit(s.in.Front()) {
		fail(ScannerError{Message: "while scanning a directive, did not find expected digit", Mark: s.mark()})
	}
	for unicode.IsDigit(s.in.Front()) {
		n = n*10 + int(s.in.Front()-'0')
		s.in.Advance()
	}
	return n
}

func (s *Scanner) scanTagDirectiveValue() (string, string) {
	for s.in.Front() == ' ' {
		s.in.Advance()
	}
	handle := s.scanTagHandle()
	for s.in.Front() == ' ' {
		s.in.Advance()
	}
	prefix := s.scanTagURI()
	return handle, prefix
}

func (s *Scanner) scanTagHandle() string {
	var b strings.Builder
	if s.in.Front() != '!' {
		fail(ScannerError{Message: "while scanning a tag, did not find expected '!'", Mark: s.mark()})
	}
	b.WriteRune('!')
	s.in.Advance()
	for isWordChar(s.in.Front()) {
		b.WriteRune(s.in.Front())
		s.in.Advance()
	}
	if s.in.Front() == '!' {
		b.WriteRune('!')
		s.in.Advance()
	}
	return b.String()
}

func (s *Scanner) scanTagURI() string {
	var b strings.Builder
	for isURIChar(s.in.Front()) {
		if s.in.Front() == '%' {
			b.WriteString(s.scanURIEscape())
			continue
		}
		b.WriteRune(s.in.Front())
		s.in.Advance()
	}
	return b.String()
}

func isURIChar(r rune) bool {
	switch r {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '_', '.', '!', '~', '*', '\'', '(', ')', '[', ']', '%', '-':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) scanURIEscape() string {
	var b strings.Builder
	for s.in.Front() == '%' {
		s.in.Advance()
		hi := s.hexDigit()
		lo := s.hexDigit()
		b.WriteByte(byte(hi<<4 | lo))
	}
	return b.String()
}

func (s *Scanner) hexDigit() int {
	c := s.in.Front()
	s.in.Advance()
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	fail(ScannerError{Message: "while parsing a tag, found an invalid escape sequence", Mark: s.mark()})
	return 0
}

func (s *Scanner) scanDirectiveLineEnd() {
	for s.in.Front() == ' ' {
		s.in.Advance()
	}
	if s.in.Front() == '#' {
		for s.in.Front() != '\n' && !s.in.Empty() {
			s.in.Advance()
		}
	}
	if !isBlankAt(s.in.Front()) {
		fail(ScannerError{Message: "while scanning a directive, did not find expected comment or line break", Mark: s.mark()})
	}
}

func (s *Scanner) fetchDocumentIndicator(kind TokenKind) error {
	s.unrollIndent(-1)
	s.removeSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	for i := 0; i < 3; i++ {
		s.in.Advance()
	}
	s.push(Token{Kind: kind, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(kind TokenKind) error {
	s.saveSimpleKey()
	s.increaseFlowLevel()
	s.simpleKeyAllowed = true
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: kind, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(kind TokenKind) error {
	s.removeSimpleKey()
	s.decreaseFlowLevel()
	s.simpleKeyAllowed = false
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: kind, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	s.removeSimpleKey()
	s.simpleKeyAllowed = true
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: FlowEntryToken, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			fail(ScannerError{Message: "block sequence entries are not allowed in this context", Mark: s.mark()})
		}
		s.rollIndent(s.column(), -1, BlockSequenceStartToken, s.mark())
	}
	s.removeSimpleKey()
	s.simpleKeyAllowed = true
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: BlockEntryToken, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchKey() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			fail(ScannerError{Message: "mapping keys are not allowed in this context", Mark: s.mark()})
		}
		s.rollIndent(s.column(), -1, BlockMappingStartToken, s.mark())
	}
	s.removeSimpleKey()
	s.simpleKeyAllowed = s.flowLevel == 0
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: KeyToken, StartMark: start, EndMark: s.mark()})
	return nil
}

// fetchValue is where a simple-key candidate already pushed to the queue
// is confirmed: this ':' makes everything since the candidate's mark a
// mapping key, so a Key token (and, in block context, a BlockMappingStart
// if one hasn't already been opened at this column) is spliced in ahead
// of the candidate's own token rather than appended after this ':'.
func (s *Scanner) fetchValue() error {
	level := s.flowLevel
	if level < len(s.simpleKeys) && s.simpleKeys[level].possible {
		k := s.simpleKeys[level]
		// The KEY token is spliced in first, at the slot the candidate's own
		// token still occupies; only then does rollIndent (using that same
		// absolute index) insert BLOCK-MAPPING-START ahead of it, so the
		// final order is START, KEY, <candidate token...> rather than the
		// reverse a single combined splice would produce.
		s.insertAt(k.tokenIndex, Token{Kind: KeyToken, StartMark: k.mark, EndMark: k.mark})
		s.simpleKeys[level].possible = false
		if s.flowLevel == 0 {
			s.rollIndent(k.mark.Column, k.tokenIndex, BlockMappingStartToken, k.mark)
		}
		s.simpleKeyAllowed = false
	} else {
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				fail(ScannerError{Message: "mapping values are not allowed in this context", Mark: s.mark()})
			}
			s.rollIndent(s.column(), -1, BlockMappingStartToken, s.mark())
		}
		s.simpleKeyAllowed = s.flowLevel == 0
	}
	start := s.mark()
	s.in.Advance()
	s.push(Token{Kind: ValueToken, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) fetchAnchorOrAlias(kind TokenKind) error {
	s.saveSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	s.in.Advance() // '*' or '&'
	var b strings.Builder
	for isAnchorChar(s.in.Front()) {
		b.WriteRune(s.in.Front())
		s.in.Advance()
	}
	if b.Len() == 0 {
		fail(ScannerError{Message: "while scanning an anchor or alias, did not find expected alphabetic or numeric character", Mark: s.mark()})
	}
	s.push(Token{Kind: kind, Value: b.String(), StartMark: start, EndMark: s.mark()})
	return nil
}

func isAnchorChar(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',', '[', ']', '{', '}', 0:
		return false
	}
	return true
}

func (s *Scanner) fetchTag() error {
	s.saveSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	handle, suffix := s.scanTagToken()
	s.push(Token{Kind: TagToken, TagHandle: handle, TagSuffix: suffix, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) scanTagToken() (string, string) {
	if s.peekAt(1) == '<' {
		s.in.Advance()
		s.in.Advance()
		uri := s.scanTagURI()
		if s.in.Front() != '>' {
			fail(ScannerError{Message: "while scanning a tag, did not find the expected '>'", Mark: s.mark()})
		}
		s.in.Advance()
		return "", uri
	}
	handle := s.scanTagHandle()
	suffix := s.scanTagURI()
	return handle, suffix
}

func (s *Scanner) fetchBlockScalar(style ScalarStyle) error {
	s.removeSimpleKey()
	s.simpleKeyAllowed = true
	start := s.mark()
	s.in.Advance() // '|' or '>'
	chomping := byte(0)
	indentHint := 0
	for {
		c := s.in.Front()
		if c == '+' || c == '-' {
			chomping = byte(c)
			s.in.Advance()
		} else if unicode.IsDigit(c) {
			indentHint = int(c - '0')
			s.in.Advance()
		} else {
			break
		}
	}
	for s.in.Front() == ' ' {
		s.in.Advance()
	}
	if s.in.Front() == '#' {
		for s.in.Front() != '\n' && !s.in.Empty() {
			s.in.Advance()
		}
	}
	if !isBlankAt(s.in.Front()) {
		fail(ScannerError{Message: "while scanning a block scalar, did not find expected comment or line break", Mark: s.mark()})
	}
	if s.in.Front() == '\n' {
		s.in.Advance()
	}
	value, blockIndent := s.scanBlockScalarBody(indentHint, style)
	value = applyChomping(value, chomping)
	_ = blockIndent
	s.push(Token{Kind: ScalarToken, Value: value, Style: style, StartMark: start, EndMark: s.mark()})
	return nil
}

// scanBlockScalarBody reads lines until one is found indented less than
// the block's own indentation. Literal (|) scalars keep every line break
// as scanned; folded (>) scalars fold a break between two adjacent,
// equally-indented, non-empty lines to a single space, and only keep the
// break where a line is empty or starts with indentation deeper than the
// block's own, mirroring the teacher's fold/no-fold distinction between
// scanBlockScalar and scanBlockScalarBreaks.
func (s *Scanner) scanBlockScalarBody(hint int, style ScalarStyle) (string, int) {
	var lines []string
	indent := 0
	if hint > 0 {
		indent = s.indent + hint
	}
	for {
		for s.in.Front() == ' ' && (indent == 0 || s.column() < indent) {
			s.in.Advance()
		}
		if indent == 0 && s.column() > s.indent {
			indent = s.column()
		}
		if s.in.Empty() || (indent > 0 && s.column() < indent && s.in.Front() != '\n') {
			break
		}
		var line strings.Builder
		for s.in.Front() != '\n' && !s.in.Empty() {
			line.WriteRune(s.in.Front())
			s.in.Advance()
		}
		lines = append(lines, line.String())
		if s.in.Front() == '\n' {
			s.in.Advance()
		} else {
			break
		}
	}
	return joinBlockLines(lines, style), indent
}

// joinBlockLines joins a block scalar's scanned lines according to its
// style: literal (|) keeps every break; folded (>) folds a break between
// two adjacent plain lines to a space, but preserves it around an empty
// line or a line carrying extra indentation.
func joinBlockLines(lines []string, style ScalarStyle) string {
	if style != FoldedScalarStyle {
		return strings.Join(lines, "\n")
	}
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(line)
			continue
		}
		prev := lines[i-1]
		if prev == "" || line == "" || startsWithBlank(prev) || startsWithBlank(line) {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return b.String()
}

func startsWithBlank(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func applyChomping(value string, mode byte) string {
	trimmed := strings.TrimRight(value, "\n")
	switch mode {
	case '-':
		return trimmed
	case '+':
		return value
	default:
		if value == "" {
			return value
		}
		return trimmed + "\n"
	}
}

func (s *Scanner) fetchFlowScalar(style ScalarStyle) error {
	s.saveSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	quote := s.in.Front()
	s.in.Advance()
	var b strings.Builder
	for {
		c := s.in.Front()
		if s.in.Empty() {
			fail(ScannerError{Message: "while scanning a quoted scalar, found unexpected end of stream", Mark: s.mark()})
		}
		if c == quote {
			if quote == '\'' && s.peekAt(1) == '\'' {
				b.WriteRune('\'')
				s.in.Advance()
				s.in.Advance()
				continue
			}
			s.in.Advance()
			break
		}
		if quote == '"' && c == '\\' {
			s.in.Advance()
			b.WriteString(s.scanDoubleEscape())
			continue
		}
		if c == '\n' {
			s.in.Advance()
			b.WriteRune(' ')
			for s.in.Front() == ' ' {
				s.in.Advance()
			}
			continue
		}
		b.WriteRune(c)
		s.in.Advance()
	}
	s.push(Token{Kind: ScalarToken, Value: b.String(), Style: style, StartMark: start, EndMark: s.mark()})
	return nil
}

func (s *Scanner) scanDoubleEscape() string {
	c := s.in.Front()
	s.in.Advance()
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case 'a':
		return "\a"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case 'e':
		return "\x1b"
	case ' ':
		return " "
	case '"':
		return "\""
	case '\\':
		return "\\"
	case 'N':
		return ""
	case '_':
		return " "
	case 'L':
		return " "
	case 'P':
		return " "
	case 'x':
		return string(rune(s.hexDigit()<<4 | s.hexDigit()))
	case 'u':
		v := 0
		for i := 0; i < 4; i++ {
			v = v<<4 | s.hexDigit()
		}
		return string(rune(v))
	case 'U':
		v := 0
		for i := 0; i < 8; i++ {
			v = v<<4 | s.hexDigit()
		}
		return string(rune(v))
	case '\n':
		for s.in.Front() == ' ' {
			s.in.Advance()
		}
		return ""
	}
	fail(ScannerError{Message: "found unknown escape character", Mark: s.mark()})
	return ""
}

// fetchPlainScalar scans a plain (unquoted) scalar, which may continue
// onto following lines as long as each continuation line is indented
// more than the enclosing block (or, in flow context, regardless of
// column). A single internal line break folds to a space; two or more
// consecutive breaks (blank lines) are preserved literally, mirroring
// the vendored scanner's leading_break/trailing_breaks bookkeeping in
// its plain-scalar routine.
func (s *Scanner) fetchPlainScalar() error {
	s.saveSimpleKey()
	s.simpleKeyAllowed = false
	start := s.mark()
	end := start
	indent := s.indent + 1

	var b strings.Builder
	var leadingBreak, trailingBreaks, whitespaces strings.Builder
	leadingBlanks := false

	for {
		if s.isDocumentIndicator("---") || s.isDocumentIndicator("...") {
			break
		}
		if s.in.Front() == '#' {
			break
		}

		stopped := false
		for !isBlankAt(s.in.Front()) && !s.in.Empty() {
			c := s.in.Front()
			if c == ':' && isBlankAt(s.peekAt(1)) {
				stopped = true
				break
			}
			if s.flowLevel > 0 && isFlowIndicator(c) {
				stopped = true
				break
			}
			if leadingBlanks || whitespaces.Len() > 0 {
				if leadingBlanks {
					if leadingBreak.Len() > 0 && trailingBreaks.Len() == 0 {
						b.WriteByte(' ')
					} else {
						b.WriteString(trailingBreaks.String())
					}
					trailingBreaks.Reset()
					leadingBreak.Reset()
					leadingBlanks = false
				} else {
					b.WriteString(whitespaces.String())
					whitespaces.Reset()
				}
			}
			b.WriteRune(c)
			s.in.Advance()
			end = s.mark()
		}
		if stopped || s.in.Empty() {
			break
		}

		for isBlankAt(s.in.Front()) && s.in.Front() != 0 {
			if s.in.Front() != '\n' {
				if !leadingBlanks {
					whitespaces.WriteRune(s.in.Front())
				}
				s.in.Advance()
				continue
			}
			if !leadingBlanks {
				whitespaces.Reset()
				leadingBreak.WriteByte('\n')
				leadingBlanks = true
			} else {
				trailingBreaks.WriteByte('\n')
			}
			s.in.Advance()
		}

		if s.flowLevel == 0 && s.column() < indent {
			break
		}
	}

	s.push(Token{Kind: ScalarToken, Value: b.String(), Style: PlainScalarStyle, StartMark: start, EndMark: end})
	if leadingBlanks {
		s.simpleKeyAllowed = true
	}
	return nil
}

func isFlowIndicator(r rune) bool {
	switch r {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}
