package texture

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths. It is the fallback
// for map_Kd references whose path does not exist as written.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks the given directories for supported image files.
// The first file found for a stem wins; missing directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !IsSupported(path) {
				return nil
			}
			stem := stemOf(path)
			if _, exists := idx.entries[stem]; !exists {
				idx.entries[stem] = path
			}
			return nil
		})
	}

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	if idx == nil {
		return "", false
	}
	path, ok := idx.entries[stemOf(texName)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// stemOf strips directories and extension: "Tex\\Wood.TGA" → "wood".
func stemOf(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
