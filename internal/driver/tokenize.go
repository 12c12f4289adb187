package driver

import (
	"context"

	"sexpr/internal/diag"
	"sexpr/internal/lexer"
	"sexpr/internal/source"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Err     error // ошибка лексера; уже записана в Bag
}

// Tokenize loads path and lexes it. The returned error is only for I/O;
// lexing failures are in the result.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

// TokenizeFile lexes a file that is already in fs.
func TokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	toks, err := lexFile(ctx, file, opts, bag)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
		Err:     err,
	}
}

func lexFile(ctx context.Context, file *source.File, opts Options, bag *diag.Bag) ([]token.Token, error) {
	done := opts.Timer.Track("lex " + file.Path)
	opts.emit(Event{File: file.Path, Stage: StageLex, Status: StatusWorking})

	toks, err := lexer.Tokenize(file, lexer.Options{
		Reporter:       diag.BagReporter{Bag: bag},
		Operators:      opts.Operators,
		ExtraOperators: opts.extraOperators(),
		Tracer:         trace.FromContext(ctx),
	})
	if err != nil {
		done("error")
		return nil, err
	}
	done("")
	return toks, nil
}
