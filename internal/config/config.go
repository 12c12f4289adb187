// Package config loads sexpr.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sexpr/internal/postfix"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "sexpr.toml"

var (
	ErrBadOperator = errors.New("invalid [[operator]] entry")
	ErrBadMaxDepth = errors.New("[parse].max_depth must not be negative")
)

// Config mirrors sexpr.toml. Missing sections keep zero values.
type Config struct {
	Path      string          `toml:"-"`
	Parse     ParseConfig     `toml:"parse"`
	Lex       LexConfig       `toml:"lex"`
	Operators []OperatorEntry `toml:"operator"`
}

type ParseConfig struct {
	Strict   bool `toml:"strict"`
	MaxDepth int  `toml:"max_depth"`
}

type LexConfig struct {
	Operators bool `toml:"operators"`
}

// OperatorEntry adds or overrides one postfix operator.
type OperatorEntry struct {
	Symbol string `toml:"symbol"`
	Prec   int    `toml:"prec"`
	Assoc  string `toml:"assoc"`
}

// Find walks up from startDir to locate sexpr.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads sexpr.toml above startDir.
// A missing file is not an error: it yields an empty Config and false.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return &Config{}, false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load parses and validates one config file.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Parse.MaxDepth < 0 {
		return ErrBadMaxDepth
	}
	seen := make(map[string]struct{}, len(c.Operators))
	for i, op := range c.Operators {
		sym := strings.TrimSpace(op.Symbol)
		if sym == "" {
			return fmt.Errorf("%w #%d: empty symbol", ErrBadOperator, i+1)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("%w #%d: duplicate symbol %q", ErrBadOperator, i+1, sym)
		}
		seen[sym] = struct{}{}
		if !postfix.Lexable(sym) {
			return fmt.Errorf("%w #%d: symbol %q is neither a word nor a single operator character", ErrBadOperator, i+1, sym)
		}
		if _, err := postfix.ParseAssoc(op.Assoc); err != nil {
			return fmt.Errorf("%w #%d: %w", ErrBadOperator, i+1, err)
		}
	}
	return nil
}

// Table returns the default postfix table extended by [[operator]] entries.
func (c *Config) Table() (postfix.Table, error) {
	table := postfix.DefaultTable()
	if c == nil || len(c.Operators) == 0 {
		return table, nil
	}
	extra := make(postfix.Table, len(c.Operators))
	for _, op := range c.Operators {
		assoc, err := postfix.ParseAssoc(op.Assoc)
		if err != nil {
			return nil, err
		}
		extra[strings.TrimSpace(op.Symbol)] = postfix.Operator{Prec: op.Prec, Assoc: assoc}
	}
	table = table.With(extra)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
