package testkit_test

import (
	"strings"
	"testing"

	"sexpr/internal/ast"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/source"
	"sexpr/internal/testkit"
	"sexpr/internal/token"
)

func TestTreeInvariantsHoldForParsedInput(t *testing.T) {
	inputs := []string{
		"",
		"int main() { return 0; }",
		"int main() { int a = 10; return 0; }",
		"int main() { int b = test(); return 0; }",
		") stray } closers ;",
		"f(a; {b",
		"a;;b;" + strings.Repeat("(x)", 20),
	}
	for _, src := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("t.cx", []byte(src)))
		toks, err := lexer.Tokenize(file, lexer.Options{Operators: true})
		if err != nil {
			t.Fatalf("%q: lex: %v", src, err)
		}
		root, err := parser.Parse(toks, parser.Options{})
		if err != nil {
			t.Fatalf("%q: parse: %v", src, err)
		}
		if err := testkit.CheckTreeInvariants(root, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestTreeInvariantsReject(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cx", []byte("ab")))

	if err := testkit.CheckTreeInvariants(ast.AtomText("ab"), file); err == nil {
		t.Errorf("atom root must be rejected")
	}

	eof := ast.List(ast.GroupProgram, ast.Atom(token.Token{Kind: token.EOF, Text: "x"}))
	if err := testkit.CheckTreeInvariants(eof, file); err == nil {
		t.Errorf("EOF atom must be rejected")
	}

	wrong := ast.List(ast.GroupProgram, ast.Atom(token.Token{
		Kind: token.Value,
		Text: "zz",
		Span: source.Span{File: file.ID, Start: 0, End: 2},
	}))
	if err := testkit.CheckTreeInvariants(wrong, file); err == nil {
		t.Errorf("text mismatch must be rejected")
	}

	outside := ast.List(ast.GroupProgram, ast.Atom(token.Token{
		Kind: token.Value,
		Text: "ab",
		Span: source.Span{File: file.ID, Start: 0, End: 9},
	}))
	if err := testkit.CheckTreeInvariants(outside, file); err == nil {
		t.Errorf("span beyond content must be rejected")
	}
}
