package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for expression parsing and evaluation.
var (
	// ErrEmpty is returned when the expression contains no tokens.
	ErrEmpty = errors.New("expr: empty expression")

	// ErrSyntax is returned for malformed input.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownIdentifier is returned for names that are neither
	// variables, constants nor functions.
	ErrUnknownIdentifier = errors.New("expr: unknown identifier")

	// ErrArity is returned when a function is called with the wrong
	// number of arguments, or a non-function name is called.
	ErrArity = errors.New("expr: wrong number of arguments")

	// ErrLength is returned when x and y slices differ in length.
	ErrLength = errors.New("expr: coordinate slices differ in length")
)

// SyntaxError describes why and where parsing failed.
// Err is one of the sentinel errors above.
type SyntaxError struct {
	Pos int // byte offset in the source
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: %s at position %d", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// EvalError is returned when a compiled expression fails while being
// evaluated over a grid.
type EvalError struct {
	Source string
	Cause  any
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("expr: evaluating %q: %v", e.Source, e.Cause)
}
