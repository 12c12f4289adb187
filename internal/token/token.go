package token

import (
	"sexpr/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// New builds a token without a source location.
// Trees built from such tokens render fine but have zero spans.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// IsOpen reports whether the token opens a nested group.
func (t Token) IsOpen() bool {
	return t.Kind == Punct && (t.Text == "(" || t.Text == "{")
}

// IsClose reports whether the token closes a nested group.
func (t Token) IsClose() bool {
	return t.Kind == Punct && (t.Text == ")" || t.Text == "}")
}

// IsTerminator reports whether the token ends a statement.
func (t Token) IsTerminator() bool {
	return t.Kind == Punct && t.Text == ";"
}

// IsEOF reports whether the token is the end-of-input sentinel.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Closer returns the closing text matching an opener, or "" for anything else.
func Closer(open string) string {
	switch open {
	case "(":
		return ")"
	case "{":
		return "}"
	}
	return ""
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Kind.String() + "(" + t.Text + ")"
}
