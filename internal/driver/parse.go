package driver

import (
	"context"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/parser"
	"sexpr/internal/source"
	"sexpr/internal/token"
	"sexpr/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // nil when the tree came from the cache
	Root    ast.Node
	Bag     *diag.Bag
	Err     error // ошибка лексера или парсера; уже записана в Bag
	Cached  bool
}

// Parse loads path, lexes and groups it. The returned error is only for I/O.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseSource runs the pipeline over in-memory content.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	return ParseFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), opts)
}

// ParseFile runs lex+parse for a file already in fs, consulting opts.Cache.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "parse_file", trace.CurrentSpan(ctx)).
		WithExtra("file", file.Path)
	defer span.End("")

	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := cacheKey(file, opts)
	if opts.Cache != nil {
		entry, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			cacheWarning(res.Bag, file, "cache read failed: "+err.Error())
		case ok:
			rebase(&entry.Root, file.ID)
			rebaseDiags(entry.Diags, file.ID)
			for _, d := range entry.Diags {
				res.Bag.Add(d)
			}
			res.Root = entry.Root
			res.Cached = true
			span.WithExtra("cached", "true")
			return res
		}
	}

	toks, err := lexFile(ctx, file, opts, res.Bag)
	if err != nil {
		res.Err = err
		return res
	}
	res.Tokens = toks

	done := opts.Timer.Track("parse " + file.Path)
	opts.emit(Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	root, err := parser.Parse(toks, parser.Options{
		Strict:   opts.Strict,
		MaxDepth: opts.MaxDepth,
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		Tracer:   tracer,
	})
	if err != nil {
		done("error")
		res.Err = err
		return res
	}
	done("")
	res.Root = root

	if opts.Cache != nil {
		entry := CacheEntry{Root: root, Diags: replayable(res.Bag)}
		if err := opts.Cache.Put(key, file.Path, entry); err != nil {
			cacheWarning(res.Bag, file, "cache write failed: "+err.Error())
		}
	}
	return res
}

func cacheWarning(bag *diag.Bag, file *source.File, msg string) {
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, msg))
}

// replayable picks the diagnostics a cache hit must reproduce: everything
// except cache warnings about this very run.
func replayable(bag *diag.Bag) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.IOCacheError || !d.Severity.Replayable() {
			continue
		}
		out = append(out, d)
	}
	return out
}
