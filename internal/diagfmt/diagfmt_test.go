package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/parser"
	"sexpr/internal/source"
)

func lexBag(t *testing.T, src string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cx", []byte(src)))
	bag := diag.NewBag(10)
	if _, err := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}); err == nil {
		t.Fatalf("expected lex error for %q", src)
	}
	return bag, fs
}

func TestPrettyCaret(t *testing.T) {
	bag, fs := lexBag(t, "int $\n")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	want := []string{
		"t.cx:1:5: ERROR LEX1001: unexpected character '$' at line 0 column 5",
		"   1 | int $",
		"     |     ^",
		"note: U+0024 DOLLAR SIGN",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color escapes with Color=false:\n%s", out)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("w.cx", []byte("中 xy"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 4, End: 6}, "boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "     |    ^~\n") {
		t.Fatalf("caret misaligned:\n%q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := lexBag(t, "$")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI colors:\n%q", buf.String())
	}
}

func TestPrettyLoadErrorHasNoLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("other.cx", []byte("x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: nope"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: failed to load file: nope\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	id := fs.Add("/home/user/project/src/test.cx", []byte("a )"), 0)
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 2, End: 3}, "stray"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/test.cx:1:3"},
		{PathModeRelative, "src/test.cx:1:3"},
		{PathModeBasename, "test.cx:1:3"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
		if !strings.HasPrefix(buf.String(), tt.want) {
			t.Errorf("mode %d: got %q, want prefix %q", tt.mode, buf.String(), tt.want)
		}
	}
}

func TestDiagnosticsJSON(t *testing.T) {
	bag, fs := lexBag(t, "a\n  $")
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 3 || d.Location.File != "t.cx" {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(d.Notes))
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cx", []byte("f(x);")))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `Value     "f" at 1:1-1:2`) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[5], "EOF") {
		t.Errorf("last line = %q", lines[5])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 6 || out[1].Kind != "Punct" || out[1].Text != "(" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}

func parseTree(t *testing.T, src string) (ast.Node, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cx", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{Operators: true})
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	root, err := parser.Parse(toks, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root, fs
}

func TestTreeFormats(t *testing.T) {
	root, fs := parseTree(t, "int a = 1; f(x)")

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, root); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "((int, a, =, 1), f, (x))\n" {
		t.Fatalf("pretty = %q", got)
	}

	buf.Reset()
	if err := FormatTreeIndented(&buf, root, fs, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"program [3]",
		"  statement [4]",
		`    Value "int"`,
		`    Value "a"`,
		`    Operator "="`,
		`    Value "1"`,
		`  Value "f"`,
		"  paren [1]",
		`    Value "x"`,
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("indented:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := FormatTreeJSON(&buf, root, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	var node NodeOutput
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatal(err)
	}
	if node.Kind != "list" || node.Group != "program" || len(node.Items) != 3 || node.Items[1].Text != "f" {
		t.Fatalf("json tree %+v", node)
	}

	buf.Reset()
	if err := FormatTreeYAML(&buf, root, TreeOpts{Spans: true}); err != nil {
		t.Fatal(err)
	}
	var back NodeOutput
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Items) != 3 || back.Items[2].Group != "paren" || back.Items[2].Items[0].Text != "x" {
		t.Fatalf("yaml tree %+v", back)
	}
	if back.Items[1].Span == nil || back.Items[1].Span.Start != 11 {
		t.Fatalf("yaml span %+v", back.Items[1].Span)
	}
}
