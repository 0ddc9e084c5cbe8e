package diagfmt

import (
	"os"
	"path/filepath"

	"sexpr/internal/source"
)

// formatPath renders a file's path according to the mode. Virtual buffers
// (stdin, tests) keep their name as-is.
func formatPath(f *source.File, mode PathMode) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if cwd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(cwd, f.Path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
