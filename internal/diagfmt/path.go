package diagfmt

import (
	"path/filepath"

	"sexpr/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if rel, err := filepath.Rel(fs.BaseDir(), abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.DisplayPath(fs.BaseDir())
	}
	return f.Path
}

// located reports whether d.Primary names a file of fs.
// Load errors carry no position: the file never made it into the set.
func located(sp source.Span, fs *source.FileSet) bool {
	return fs != nil && int(sp.File) < fs.Len()
}
