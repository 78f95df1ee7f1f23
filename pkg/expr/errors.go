package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a division or modulo has a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrTypeMismatch is returned for operations with no sane coercion,
	// such as ordering a string against a number.
	ErrTypeMismatch = errors.New("type mismatch")
)

// LexError reports a lexical problem in an expression source string.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// ParseError reports malformed expression syntax. Expr is the full source
// text being parsed and Pos the byte offset of the offending token.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s (offset %d)", e.Expr, e.Msg, e.Pos)
}

// EvalError wraps a runtime evaluation failure with the operator that
// triggered it. It unwraps to ErrDivisionByZero or ErrTypeMismatch.
type EvalError struct {
	Op  string
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("operator %q: %v", e.Op, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
