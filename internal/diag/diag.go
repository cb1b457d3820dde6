// Package diag defines the error taxonomy shared by the compiler stages.
//
// Every stage returns either one of the sentinel errors below or a *Error
// wrapping one, so callers can branch with errors.Is and still report the
// originating source key, offset and snippet.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per failure kind.
var (
	// ErrMalformedInput reports unbalanced braces or a declaration clause without a colon.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidDirective reports a top-level statement that does not start with '@'.
	ErrInvalidDirective = errors.New("invalid directive")
	// ErrConflictingDirective reports a second, differing @charset under strict mode.
	ErrConflictingDirective = errors.New("conflicting directive")
	// ErrRecursionLimit reports that the parser iteration budget was exhausted.
	ErrRecursionLimit = errors.New("parser iteration limit reached")
)

// snippetLength caps the excerpt attached to an Error.
const snippetLength = 40

// Error is a failure tied to one source fragment.
type Error struct {
	Key     string // source key, e.g. "styles/_base.css" or "raw:9f2c..."
	Offset  int    // byte offset into the source, -1 when unknown
	Snippet string // excerpt starting at Offset
	Err     error  // one of the sentinel errors, possibly wrapped
}

// Errorf builds an *Error for key at offset. The snippet is cut from text.
func Errorf(key, text string, offset int, kind error, format string, args ...any) *Error {
	return &Error{
		Key:     key,
		Offset:  offset,
		Snippet: Snippet(text, offset),
		Err:     fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Key)
	if e.Offset >= 0 {
		fmt.Fprintf(&b, "@%d", e.Offset)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Snippet != "" {
		fmt.Fprintf(&b, " near %q", e.Snippet)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Kind returns a short machine-readable name for the failure.
func (e *Error) Kind() string {
	return KindOf(e.Err)
}

// KindOf names the sentinel wrapped by err.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return "malformed-input"
	case errors.Is(err, ErrInvalidDirective):
		return "invalid-directive"
	case errors.Is(err, ErrConflictingDirective):
		return "conflicting-directive"
	case errors.Is(err, ErrRecursionLimit):
		return "recursion-limit"
	default:
		return "error"
	}
}

// Snippet returns at most snippetLength bytes of text starting at offset,
// with newlines flattened.
func Snippet(text string, offset int) string {
	if offset < 0 || offset >= len(text) {
		return ""
	}
	end := offset + snippetLength
	if end > len(text) {
		end = len(text)
	}
	return strings.Join(strings.Fields(text[offset:end]), " ")
}

// Position converts a byte offset into 1-based line and column numbers.
func Position(text string, offset int) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line = 1 + strings.Count(text[:offset], "\n")
	column = offset - strings.LastIndexByte(text[:offset], '\n')
	return line, column
}
