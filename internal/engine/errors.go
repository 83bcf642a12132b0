// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types shared by the scanner, parser and composer stages.
// All three report structured, positional errors rather than bare strings.

package engine

import (
	"fmt"
	"strings"
)

// MarkedError is the common shape of a positional error: an optional
// enclosing-context message/mark plus the problem message/mark.
type MarkedError struct {
	ContextMessage string
	ContextMark    Mark

	Message string
	Mark    Mark
}

func (e MarkedError) Error() string {
	var b strings.Builder
	b.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&b, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&b, "%s: ", e.Mark)
	}
	b.WriteString(e.Message)
	return b.String()
}

// ScannerError is returned when the Scanner cannot tokenize the input.
type ScannerError MarkedError

func (e ScannerError) Error() string { return MarkedError(e).Error() }

// ParserError is returned when the Parser cannot derive an event from the
// token stream.
type ParserError MarkedError

func (e ParserError) Error() string { return MarkedError(e).Error() }

// ComposerError is returned when the Composer cannot build a valid Node
// tree from the event stream: unresolved aliases, recursive aliases,
// duplicate mapping keys, or a malformed merge key.
type ComposerError MarkedError

func (e ComposerError) Error() string { return MarkedError(e).Error() }

// internalError is the panic payload used to unwind the scanner/parser/
// composer call stack without threading an error return through every
// recursive call. The engine types do not recover it themselves; the
// root package's recoverPipelineError converts it back into an error.
type internalError struct {
	err error
}

func (e *internalError) Error() string { return e.err.Error() }
func (e *internalError) Unwrap() error { return e.err }

func fail(err error) {
	panic(&internalError{err})
}

func failf(format string, args ...any) {
	panic(&internalError{fmt.Errorf("yaml: "+format, args...)})
}
