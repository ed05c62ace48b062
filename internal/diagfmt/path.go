package diagfmt

import (
	"path/filepath"
	"strings"

	"tether/internal/source"
)

// formatPath отображает путь файла согласно режиму. Auto: короткий путь
// как есть, длинный абсолютный сводится к basename.
func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > 40 {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}
