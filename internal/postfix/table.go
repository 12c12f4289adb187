package postfix

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"sexpr/internal/token"
)

// Assoc is an operator's associativity.
type Assoc uint8

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// ParseAssoc accepts "left" or "right" (case-insensitive); "" means Left.
func ParseAssoc(s string) (Assoc, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown associativity %q", s)
}

// Operator is one table entry. Higher Prec binds tighter.
type Operator struct {
	Prec  int
	Assoc Assoc
}

// Table maps operator text to its binding strength and associativity.
// Atoms whose text is not in the table are operands.
type Table map[string]Operator

// ErrInvalidOperator is returned by Validate for unusable operator text.
var ErrInvalidOperator = errors.New("invalid operator")

// DefaultTable: * / bind at 2, + - at 1, = at 0, all left-associative.
func DefaultTable() Table {
	return Table{
		"*": {Prec: 2},
		"/": {Prec: 2},
		"+": {Prec: 1},
		"-": {Prec: 1},
		"=": {Prec: 0},
	}
}

// Lookup returns the entry for text.
func (t Table) Lookup(text string) (Operator, bool) {
	op, ok := t[text]
	return op, ok
}

// With returns a copy of t extended (or overridden) by other.
func (t Table) With(other Table) Table {
	out := make(Table, len(t)+len(other))
	maps.Copy(out, t)
	maps.Copy(out, other)
	return out
}

// Validate rejects empty operator text and text containing whitespace.
func (t Table) Validate() error {
	for text := range t {
		if text == "" {
			return fmt.Errorf("%w: empty symbol", ErrInvalidOperator)
		}
		if strings.IndexFunc(text, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %q contains whitespace", ErrInvalidOperator, text)
		}
	}
	return nil
}

// OperatorChars returns the single-byte symbols of t the lexer can emit as
// Operator tokens, sorted. Feed it to lexer.Options.ExtraOperators.
func (t Table) OperatorChars() string {
	chars := make([]byte, 0, len(t))
	for text := range t {
		if len(text) == 1 && token.CanBeOperatorChar(text[0]) {
			chars = append(chars, text[0])
		}
	}
	slices.Sort(chars)
	return string(chars)
}

// Lexable reports whether text can reach the reorderer as one atom:
// either a whole value run or a single operator character.
func Lexable(text string) bool {
	if len(text) == 1 && token.CanBeOperatorChar(text[0]) {
		return true
	}
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		b := text[i]
		if !(b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')) {
			return false
		}
	}
	return true
}
