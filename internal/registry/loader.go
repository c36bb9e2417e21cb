package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"modelpack/internal/common/fsutil"
	"modelpack/pkg/types"
)

// formatByExt maps lower-case file extensions to model formats.
var formatByExt = map[string]string{
	".wvec": types.FormatWordVec,
	".gguf": types.FormatGGUF,
}

// FormatOf returns the model format for path based on its extension, or ""
// when the extension is not recognised.
func FormatOf(path string) string {
	return formatByExt[strings.ToLower(filepath.Ext(path))]
}

// LoadDir scans a directory for *.wvec and *.gguf files and builds a registry
// from filenames. ID is the full filename (including extension); Path is the
// absolute file path. Results are sorted by ID.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		format := FormatOf(name)
		if format == "" {
			continue
		}
		models = append(models, types.Model{
			ID:     name,
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Path:   filepath.Join(abs, name),
			Format: format,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}
