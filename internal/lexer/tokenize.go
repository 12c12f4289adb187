package lexer

import (
	"strconv"

	"sexpr/internal/source"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

// Tokenize lexes the whole file. On success the last token is the only EOF.
// On error no tokens are returned.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	span := trace.Begin(opts.Tracer, trace.ScopePass, "lex", 0)

	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			span.End("error")
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	return tokens, nil
}

// TokenizeString lexes in-memory text with default options.
func TokenizeString(input string) ([]token.Token, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(input)))
	return Tokenize(file, Options{})
}
