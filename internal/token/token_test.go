package token_test

import (
	"testing"

	"sexpr/internal/token"
)

func TestBracketPredicates(t *testing.T) {
	tests := []struct {
		tok              token.Token
		open, close, end bool
	}{
		{token.New(token.Punct, "("), true, false, false},
		{token.New(token.Punct, "{"), true, false, false},
		{token.New(token.Punct, ")"), false, true, false},
		{token.New(token.Punct, "}"), false, true, false},
		{token.New(token.Punct, ";"), false, false, true},
		{token.New(token.Value, "("), false, false, false},
		{token.New(token.Operator, "+"), false, false, false},
		{token.New(token.EOF, ""), false, false, false},
	}
	for _, tt := range tests {
		if got := tt.tok.IsOpen(); got != tt.open {
			t.Errorf("%v.IsOpen() = %v", tt.tok, got)
		}
		if got := tt.tok.IsClose(); got != tt.close {
			t.Errorf("%v.IsClose() = %v", tt.tok, got)
		}
		if got := tt.tok.IsTerminator(); got != tt.end {
			t.Errorf("%v.IsTerminator() = %v", tt.tok, got)
		}
	}
}

func TestCloser(t *testing.T) {
	if token.Closer("(") != ")" || token.Closer("{") != "}" {
		t.Fatalf("unexpected closer mapping")
	}
	if token.Closer(";") != "" {
		t.Fatalf("non-opener must map to empty closer")
	}
}

func TestCharClasses(t *testing.T) {
	for _, b := range []byte("{}();") {
		if !token.IsPunctChar(b) {
			t.Errorf("%q should be punctuation", b)
		}
	}
	for _, b := range []byte("+-*/=") {
		if !token.IsOperatorChar(b) || token.IsPunctChar(b) {
			t.Errorf("%q should be an operator only", b)
		}
	}
	if token.IsPunctChar('[') || token.IsOperatorChar('%') {
		t.Errorf("unexpected class for [ or %%")
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Errorf("unknown kind string")
	}
}

func TestCanBeOperatorChar(t *testing.T) {
	for _, b := range []byte("^%<>!&|+") {
		if !token.CanBeOperatorChar(b) {
			t.Errorf("%q should be allowed", b)
		}
	}
	for _, b := range []byte("(){};aZ9_ \t\n\x00\x7f") {
		if token.CanBeOperatorChar(b) {
			t.Errorf("%q should be rejected", b)
		}
	}
}
