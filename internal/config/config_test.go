package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sexpr/internal/postfix"
)

func write(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := write(t, t.TempDir(), `
[parse]
strict = true
max_depth = 64

[lex]
operators = true

[[operator]]
symbol = "^"
prec = 3
assoc = "right"

[[operator]]
symbol = "+"
prec = 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Parse.Strict || cfg.Parse.MaxDepth != 64 || !cfg.Lex.Operators {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Path != path {
		t.Fatalf("path = %q", cfg.Path)
	}

	table, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if op := table["^"]; op.Prec != 3 || op.Assoc != postfix.Right {
		t.Fatalf("^ = %+v", op)
	}
	if table["+"].Prec != 5 || table["*"].Prec != 2 {
		t.Fatalf("override/default broken: %+v", table)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"negative depth", "[parse]\nmax_depth = -1\n", ErrBadMaxDepth},
		{"empty symbol", "[[operator]]\nsymbol = \" \"\nprec = 1\n", ErrBadOperator},
		{"bad assoc", "[[operator]]\nsymbol = \"^\"\nassoc = \"up\"\n", ErrBadOperator},
		{"duplicate", "[[operator]]\nsymbol = \"^\"\n[[operator]]\nsymbol = \"^\"\n", ErrBadOperator},
		{"unlexable multi-char", "[[operator]]\nsymbol = \"**\"\n", ErrBadOperator},
		{"punctuation", "[[operator]]\nsymbol = \";\"\n", ErrBadOperator},
		{"mixed word", "[[operator]]\nsymbol = \"a+\"\n", ErrBadOperator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := Load(write(t, t.TempDir(), "[parse]\nstrictt = true\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := Load(write(t, t.TempDir(), "not toml = = =")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "[lex]\noperators = true\n")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, ok, err := Discover(deep)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if !cfg.Lex.Operators {
		t.Fatalf("config not loaded: %+v", cfg)
	}
}

func TestDiscoverMissing(t *testing.T) {
	// t.TempDir обычно не лежит под каталогом с sexpr.toml
	dir := t.TempDir()
	path, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok && filepath.Dir(path) == dir {
		t.Fatalf("unexpected config in fresh temp dir")
	}

	var nilCfg *Config
	table, err := nilCfg.Table()
	if err != nil || len(table) != len(postfix.DefaultTable()) {
		t.Fatalf("nil config table: %v %v", table, err)
	}
}
