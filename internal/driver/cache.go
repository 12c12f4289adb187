package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"sexpr/internal/ast"
	"sexpr/internal/diag"
	"sexpr/internal/source"
)

// Current schema version - increment when cachePayload, ast.Node or
// diag.Diagnostic changes.
const cacheSchemaVersion uint16 = 2

// Digest is a BLAKE3-256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Cache хранит готовые деревья на диске; ключ: содержимое файла + опции.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Path   string
	Root   ast.Node
	Diags  []diag.Diagnostic // предупреждения успешного разбора
}

// CacheEntry is one cached parse: the tree plus the non-error diagnostics
// the parse produced.
type CacheEntry struct {
	Root  ast.Node
	Diags []diag.Diagnostic
}

// OpenCache returns a cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache returns a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "trees", key.String()+".mp")
}

// Put serializes entry and writes it atomically.
func (c *Cache) Put(key Digest, path string, entry CacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после Rename файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{Schema: cacheSchemaVersion, Path: path, Root: entry.Root, Diags: entry.Diags}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a cached entry. A payload with another schema version is a miss.
func (c *Cache) Get(key Digest) (CacheEntry, bool, error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return CacheEntry{}, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return CacheEntry{}, false, nil
	}
	return CacheEntry{Root: payload.Root, Diags: payload.Diags}, true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the file content hash with every option that changes the tree.
func cacheKey(file *source.File, opts Options) Digest {
	h := blake3.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], cacheSchemaVersion)
	if opts.Operators {
		hdr[2] |= 1
	}
	if opts.Strict {
		hdr[2] |= 2
	}
	h.Write(hdr[:])
	var depth [8]byte
	binary.LittleEndian.PutUint64(depth[:], uint64(max(opts.MaxDepth, 0)))
	h.Write(depth[:])
	// набор операторных символов меняет разбиение на токены
	h.Write([]byte(opts.extraOperators()))
	h.Write([]byte{0})
	h.Write(file.Hash[:])

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// rebase points every span of a cached tree at file.
func rebase(n *ast.Node, file source.FileID) {
	n.Span.File = file
	n.Tok.Span.File = file
	for i := range n.Items {
		rebase(&n.Items[i], file)
	}
}

// rebaseDiags does the same for replayed diagnostics.
func rebaseDiags(diags []diag.Diagnostic, file source.FileID) {
	for i := range diags {
		diags[i].Primary.File = file
		for j := range diags[i].Notes {
			diags[i].Notes[j].Span.File = file
		}
	}
}
