package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/source"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

// makeFile wraps input in a virtual file
func makeFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.cx", []byte(input)))
}

func mustTokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := lexer.TokenizeString(input)
	if err != nil {
		t.Fatalf("TokenizeString(%q): %v", input, err)
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, want []token.Token) {
	t.Helper()
	got := mustTokenize(t, input)
	if len(got) != len(want) {
		t.Fatalf("input %q: expected %d tokens, got %d: %s", input, len(want), len(got), tokensToString(got))
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].Text != want[i].Text {
			t.Errorf("input %q token %d: want %v, got %v", input, i, want[i], got[i])
		}
	}
}

func v(s string) token.Token { return token.New(token.Value, s) }
func p(s string) token.Token { return token.New(token.Punct, s) }

var eof = token.New(token.EOF, "")

func TestTokenizeMainFunction(t *testing.T) {
	expectTokens(t, "int main() { return 0; }", []token.Token{
		v("int"), v("main"), p("("), p(")"), p("{"),
		v("return"), v("0"), p(";"), p("}"), eof,
	})
}

func TestValueRunsAreMaximal(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Token
	}{
		{"abc123", []token.Token{v("abc123"), eof}},
		{"123abc", []token.Token{v("123abc"), eof}},
		{"_x_1", []token.Token{v("_x_1"), eof}},
		{"_", []token.Token{v("_"), eof}},
		{"a b", []token.Token{v("a"), v("b"), eof}},
		{"f(x)", []token.Token{v("f"), p("("), v("x"), p(")"), eof}},
		{"a;b", []token.Token{v("a"), p(";"), v("b"), eof}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
		})
	}
}

func TestWhitespaceIsSkipped(t *testing.T) {
	expectTokens(t, " \t\r\n int\n\n\ta \r\n;", []token.Token{v("int"), v("a"), p(";"), eof})
}

func TestEmptyInputYieldsOnlySentinel(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t"} {
		tokens := mustTokenize(t, input)
		if len(tokens) != 1 || tokens[0].Kind != token.EOF || tokens[0].Text != "" {
			t.Errorf("input %q: got %s", input, tokensToString(tokens))
		}
	}
}

func TestSentinelInvariant(t *testing.T) {
	inputs := []string{
		"int main() { return 0; }",
		"{{{;;;}}}",
		"a\nb\nc",
		"x_1 y_2 (z_3)",
	}
	for _, input := range inputs {
		tokens := mustTokenize(t, input)
		last := tokens[len(tokens)-1]
		if last.Kind != token.EOF {
			t.Fatalf("input %q: last token is %v", input, last)
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Text == "" || tok.Kind == token.EOF {
				t.Errorf("input %q: token %v has empty text or is a second EOF", input, tok)
			}
		}
	}
}

func TestRoundTripWithoutWhitespace(t *testing.T) {
	inputs := []string{
		"int main() { int a = b; }",
		"int main ( ) {\n\treturn 0 ;\n}\n",
		"a1 b_2\r\n(c3){d4;}",
	}
	for _, input := range inputs {
		input = strings.ReplaceAll(input, "=", "")
		tokens := mustTokenize(t, input)
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Text)
		}
		want := strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\n', '\r':
				return -1
			}
			return r
		}, input)
		if sb.String() != want {
			t.Errorf("round trip of %q: got %q, want %q", input, sb.String(), want)
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	file := makeFile("int  main()\n{ x; }")
	tokens, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range tokens {
		if got := string(file.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
			t.Errorf("span %v covers %q, token text %q", tok.Span, got, tok.Text)
		}
	}
	eofTok := tokens[len(tokens)-1]
	if !eofTok.Span.Empty() || int(eofTok.Span.Start) != len(file.Content) {
		t.Errorf("EOF span = %v", eofTok.Span)
	}
}

func TestUnexpectedCharacterPosition(t *testing.T) {
	tests := []struct {
		input      string
		char       rune
		line, col  int
		wantSubstr string
	}{
		{"int a = 1;", '=', 0, 7, "unexpected character '=' at line 0 column 7"},
		{"$", '$', 0, 1, "line 0 column 1"},
		{"int a;\nb c #", '#', 1, 5, "'#' at line 1 column 5"},
		{"a\n\n  é", 'é', 2, 3, "'é' at line 2 column 3"},
		{"ab[", '[', 0, 3, "column 3"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := lexer.TokenizeString(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %s", tokensToString(tokens))
			}
			if tokens != nil {
				t.Errorf("partial tokens must not be returned, got %s", tokensToString(tokens))
			}
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error %T is not *lexer.Error", err)
			}
			if lexErr.Char != tt.char || lexErr.Line != tt.line || lexErr.Column != tt.col {
				t.Errorf("got char %q line %d col %d, want %q %d %d",
					lexErr.Char, lexErr.Line, lexErr.Column, tt.char, tt.line, tt.col)
			}
			if !errors.Is(err, lexer.ErrUnexpectedChar) {
				t.Errorf("errors.Is(ErrUnexpectedChar) failed")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	lx := lexer.New(makeFile("a ! b"), lexer.Options{})
	if tok, err := lx.Next(); err != nil || tok.Text != "a" {
		t.Fatalf("first token: %v, %v", tok, err)
	}
	_, err1 := lx.Next()
	_, err2 := lx.Next()
	if err1 == nil || err1 != err2 {
		t.Fatalf("expected the same error twice, got %v and %v", err1, err2)
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx := lexer.New(makeFile("x"), lexer.Options{})
	for i, want := range []token.Kind{token.Value, token.EOF, token.EOF} {
		tok, err := lx.Next()
		if err != nil || tok.Kind != want {
			t.Fatalf("call %d: got %v, %v", i, tok, err)
		}
	}
}

func TestReporterReceivesDiagnostic(t *testing.T) {
	bag := diag.NewBag(4)
	_, err := lexer.Tokenize(makeFile("a $"), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected error")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnknownChar || d.Severity != diag.SevError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Primary.Start != 2 || d.Primary.End != 3 {
		t.Errorf("primary span = %v", d.Primary)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "U+0024 DOLLAR SIGN" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestOperatorMode(t *testing.T) {
	input := "int a = 10 + 33 * 7 - 1 / x;"
	if _, err := lexer.TokenizeString(input); err == nil {
		t.Fatalf("operators must be rejected by default")
	}

	tokens, err := lexer.Tokenize(makeFile(input), lexer.Options{Operators: true})
	if err != nil {
		t.Fatalf("operator mode: %v", err)
	}
	var ops []string
	for _, tok := range tokens {
		if tok.Kind == token.Operator {
			ops = append(ops, tok.Text)
		}
	}
	if strings.Join(ops, " ") != "= + * - /" {
		t.Errorf("operators = %v", ops)
	}
	if _, err := lexer.Tokenize(makeFile("a % b"), lexer.Options{Operators: true}); err == nil {
		t.Errorf("%% is not an operator and must fail")
	}
}

func TestLongValueRunIsOneToken(t *testing.T) {
	long := strings.Repeat("a", 5000)
	tokens, err := lexer.TokenizeString(long)
	if err != nil {
		t.Fatalf("default options must accept any run length: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Kind != token.Value || tokens[0].Text != long {
		t.Fatalf("expected one 5000-byte Value plus EOF, got %d tokens", len(tokens))
	}
}

func TestMaxTokenLengthOptIn(t *testing.T) {
	bag := diag.NewBag(2)
	long := strings.Repeat("a", 4097)
	opts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}, MaxTokenLength: 4096}
	_, err := lexer.Tokenize(makeFile("x "+long), opts)
	if !errors.Is(err, lexer.ErrTokenTooLong) {
		t.Fatalf("expected ErrTokenTooLong, got %v", err)
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) && lexErr.Column != 3 {
		t.Errorf("column = %d, want start of the run", lexErr.Column)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Errorf("diagnostics = %+v", bag.Items())
	}

	if _, err := lexer.Tokenize(makeFile(strings.Repeat("b", 4096)), lexer.Options{MaxTokenLength: 4096}); err != nil {
		t.Errorf("a run at the limit is allowed: %v", err)
	}
}

func TestExtraOperators(t *testing.T) {
	opts := lexer.Options{Operators: true, ExtraOperators: "^%"}
	tokens, err := lexer.Tokenize(makeFile("a ^ b % c"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tokensToString(tokens); got != `[Value("a"), Operator("^"), Value("b"), Operator("%"), Value("c"), EOF("")]` {
		t.Errorf("tokens = %s", got)
	}

	// без Operators дополнительные символы не действуют
	if _, err := lexer.Tokenize(makeFile("a ^ b"), lexer.Options{ExtraOperators: "^"}); !errors.Is(err, lexer.ErrUnexpectedChar) {
		t.Errorf("expected ErrUnexpectedChar, got %v", err)
	}
	// структурные символы остаются пунктуацией
	tokens, err = lexer.Tokenize(makeFile("(x)"), lexer.Options{Operators: true, ExtraOperators: "(x"})
	if err != nil {
		t.Fatal(err)
	}
	if got := tokensToString(tokens); got != `[Punct("("), Value("x"), Punct(")"), EOF("")]` {
		t.Errorf("tokens = %s", got)
	}
}

func TestTokenizeEmitsTrace(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelPhase)
	if _, err := lexer.Tokenize(makeFile("a b c"), lexer.Options{Tracer: ring}); err != nil {
		t.Fatal(err)
	}
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected begin+end, got %d events", len(events))
	}
	if events[1].Name != "lex" || events[1].Extra["tokens"] != "4" {
		t.Errorf("end event = %+v", events[1])
	}
}
