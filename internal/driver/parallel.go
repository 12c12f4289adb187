package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sexpr/internal/diag"
	"sexpr/internal/source"
	"sexpr/internal/trace"
)

// SourceExt is the extension picked up by directory runs.
const SourceExt = ".cx"

// ListSourceFiles возвращает отсортированный список всех *.cx файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir lexes every *.cx file under dir in parallel.
// Results follow the sorted file order.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*TokenizeResult, error) {
	fileSet, files, loadErrs, err := loadDir(dir)
	if err != nil || len(files) == 0 {
		return fileSet, nil, err
	}

	results := make([]*TokenizeResult, len(files))
	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int, path string) error {
		if loadErr, failed := loadErrs[path]; failed {
			results[i] = &TokenizeResult{FileSet: fileSet, Bag: loadErrorBag(opts, loadErr), Err: loadErr}
			return loadErr
		}
		id, _ := fileSet.GetLatest(path)
		results[i] = TokenizeFile(ctx, fileSet, fileSet.Get(id), opts)
		return results[i].Err
	})
	return fileSet, results, err
}

// ParseDir lexes and groups every *.cx file under dir in parallel.
// Per-file failures stay in each result's Bag; the error is for cancellation
// and directory walking.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*ParseResult, error) {
	fileSet, files, loadErrs, err := loadDir(dir)
	if err != nil || len(files) == 0 {
		return fileSet, nil, err
	}

	results := make([]*ParseResult, len(files))
	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int, path string) error {
		if loadErr, failed := loadErrs[path]; failed {
			results[i] = &ParseResult{FileSet: fileSet, Bag: loadErrorBag(opts, loadErr), Err: loadErr}
			return loadErr
		}
		id, _ := fileSet.GetLatest(path)
		results[i] = ParseFile(ctx, fileSet, fileSet.Get(id), opts)
		return results[i].Err
	})
	return fileSet, results, err
}

// loadDir preloads every source file so workers only read the FileSet.
func loadDir(dir string) (*source.FileSet, []string, map[string]error, error) {
	fileSet := source.NewFileSetWithBase(dir)
	files, err := ListSourceFiles(dir)
	if err != nil {
		return fileSet, nil, nil, err
	}
	loadErrs := make(map[string]error)
	for _, path := range files {
		if _, err := fileSet.Load(path); err != nil {
			loadErrs[path] = err
		}
	}
	return fileSet, files, loadErrs, nil
}

func loadErrorBag(opts Options, err error) *diag.Bag {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
	return bag
}

// forEachFile runs work for each file on an errgroup limited to opts.Jobs.
// Each worker writes only its own result slot. Errors returned by work are
// reported as progress; only context cancellation stops the group.
func forEachFile(ctx context.Context, files []string, opts Options, work func(ctx context.Context, i int, path string) error) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "dir", trace.CurrentSpan(ctx)).
		WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span.ID())

	for _, path := range files {
		opts.emit(Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			err := work(gctx, i, path)
			status := StatusDone
			if err != nil {
				status = StatusError
			}
			opts.emit(Event{File: path, Status: status, Err: err, Elapsed: time.Since(start)})
			return nil
		})
	}
	return g.Wait()
}
