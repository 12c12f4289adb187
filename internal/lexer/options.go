package lexer

import (
	"strings"

	"sexpr/internal/diag"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

// Options tunes a Lexer. The zero value lexes exactly the base grammar.
type Options struct {
	// Reporter receives a diagnostic for the lexical error, if any.
	// May be nil; the error is returned either way.
	Reporter diag.Reporter
	// Operators makes + - * / = lex as token.Operator instead of failing.
	Operators bool
	// ExtraOperators lists more single-byte operator characters, lexed only
	// together with Operators. Bytes that already start another token class
	// or are whitespace are ignored.
	ExtraOperators string
	// MaxTokenLength caps a value run in bytes; 0 means no limit.
	MaxTokenLength int
	// Tracer gets one pass-scoped span per Tokenize call. Nil means no tracing.
	Tracer trace.Tracer
}

func (o Options) isExtraOperator(ch byte) bool {
	return token.CanBeOperatorChar(ch) && strings.IndexByte(o.ExtraOperators, ch) >= 0
}
