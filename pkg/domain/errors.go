package domain

import (
	"errors"
	"fmt"
)

// Runtime sentinels, matched by hosts with errors.Is.
var (
	// ErrDisabledChoice is returned by select when the choice's condition
	// is not currently satisfied.
	ErrDisabledChoice = errors.New("choice is not currently enabled")

	// ErrIndexOutOfRange is returned by select for a choice index the
	// current branch does not declare.
	ErrIndexOutOfRange = errors.New("choice index out of range")

	// ErrEnded is returned by select once the story has ended (the current
	// branch declares no choices at all).
	ErrEnded = errors.New("story has ended")

	// ErrSessionNotFound is returned by session stores for unknown ids.
	ErrSessionNotFound = errors.New("session not found")
)

// Parse-time error classes, wrapped by ParseError.
var (
	ErrStaleMetadata       = errors.New("metadata directive after first chapter")
	ErrMalformedDirective  = errors.New("malformed directive")
	ErrInvalidVariableName = errors.New("invalid variable name")
	ErrOrphanContent       = errors.New("content outside of a branch")
)

// UnknownBranchError reports a reference to a branch id the document does
// not declare, either from @start at load time or from a choice target at
// selection time.
type UnknownBranchError struct {
	ID string
}

func (e *UnknownBranchError) Error() string {
	return fmt.Sprintf("unknown branch %q", e.ID)
}

// DuplicateIDError reports a chapter or branch id declared twice.
type DuplicateIDError struct {
	Kind      string // "chapter" or "branch"
	ID        string
	FirstLine int
	Line      int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q at line %d (first declared at line %d)",
		e.Kind, e.ID, e.Line, e.FirstLine)
}

// ParseError reports a structural script error with its line number. Err
// optionally carries the underlying class (one of the sentinels above, or
// an expression error from pkg/expr).
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
