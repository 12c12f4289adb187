package parser

import (
	"errors"
	"fmt"

	"sexpr/internal/diag"
	"sexpr/internal/token"
)

var (
	// ErrMismatchedBracket: a closer of the wrong kind ended a group (strict mode).
	ErrMismatchedBracket = errors.New("mismatched bracket")
	// ErrUnexpectedCloser: a closer appeared with no open group (strict mode).
	ErrUnexpectedCloser = errors.New("unexpected closing bracket")
	// ErrUnclosedGroup: input ended inside a group (strict mode).
	ErrUnclosedGroup = errors.New("unclosed group")
	// ErrTooDeep: nesting exceeded Options.MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
)

// Error describes a grouping failure. Open is the opener involved, if any.
type Error struct {
	Err   error
	Code  diag.Code
	Tok   token.Token
	Open  token.Token
	Depth int
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrMismatchedBracket):
		return fmt.Sprintf("%v: %q does not close %q", e.Err, e.Tok.Text, e.Open.Text)
	case errors.Is(e.Err, ErrUnclosedGroup):
		return fmt.Sprintf("%v: %q is never closed", e.Err, e.Open.Text)
	case errors.Is(e.Err, ErrUnexpectedCloser):
		return fmt.Sprintf("%v %q", e.Err, e.Tok.Text)
	case errors.Is(e.Err, ErrTooDeep):
		return fmt.Sprintf("%v: more than %d levels", e.Err, e.Depth)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
