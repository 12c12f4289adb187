package lexer

import (
	"errors"
	"fmt"

	"sexpr/internal/diag"
	"sexpr/internal/source"
)

var (
	// ErrUnexpectedChar is matched by errors.Is for characters outside every token class.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrTokenTooLong is matched by errors.Is for value runs over Options.MaxTokenLength bytes.
	ErrTokenTooLong = errors.New("token too long")
)

// Error is the single fatal lexical error. Line is 0-based, Column 1-based.
type Error struct {
	Code   diag.Code
	Char   rune
	Line   int
	Column int
	Span   source.Span
}

func (e *Error) Error() string {
	if e.Code == diag.LexTokenTooLong {
		return fmt.Sprintf("token too long (%d bytes) at line %d column %d", e.Span.Len(), e.Line, e.Column)
	}
	return fmt.Sprintf("unexpected character %q at line %d column %d", e.Char, e.Line, e.Column)
}

func (e *Error) Unwrap() error {
	if e.Code == diag.LexTokenTooLong {
		return ErrTokenTooLong
	}
	return ErrUnexpectedChar
}
