package symbolic

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks with errors.Is. ParseError wraps
// the one that applies.
var (
	// ErrEmptyInput indicates an empty or all-whitespace expression.
	ErrEmptyInput = errors.New("symbolic: empty expression")

	// ErrRatioForm indicates a second division operator inside one group,
	// which strict mode forbids.
	ErrRatioForm = errors.New("symbolic: multiple division operators in one group")

	// ErrProductForm indicates an explicit '*' after a division inside one
	// group, which strict mode forbids.
	ErrProductForm = errors.New("symbolic: explicit product after division")
)

// ParseError reports malformed unit-expression text.
type ParseError struct {
	// Text is the offending substring.
	Text string
	// Position is the byte offset of Text in the original input.
	Position int
	// Reason describes what went wrong.
	Reason string

	cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("symbolic: parse error at position %d: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("symbolic: cannot parse %q at position %d: %s", e.Text, e.Position, e.Reason)
}

// Unwrap returns the underlying sentinel, if any.
func (e *ParseError) Unwrap() error {
	return e.cause
}

func newParseError(text string, pos int, reason string) *ParseError {
	return &ParseError{Text: text, Position: pos, Reason: reason}
}

func wrapParseError(cause error, text string, pos int, reason string) *ParseError {
	return &ParseError{Text: text, Position: pos, Reason: reason, cause: cause}
}
