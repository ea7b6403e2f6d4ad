package diagfmt

import (
	"path/filepath"

	"cinder/internal/source"
)

// validSpan reports whether span points into fs; diagnostics about files
// that never loaded carry a zero span.
func validSpan(fs *source.FileSet, span source.Span) bool {
	return fs != nil && int(span.File) < fs.Len()
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeRelative:
		base := fs.BaseDir()
		if base == "" {
			return f.Path
		}
		if rel, err := source.RelativePath(f.Path, base); err == nil {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		return f.DisplayPath(fs.BaseDir())
	}
}
