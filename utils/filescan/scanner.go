// Package filescan discovers build inputs (preset documents, presets, menu shaders)
package filescan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions for each kind of build input
var (
	DocumentExtensions = []string{".json", ".yaml", ".yml"}
	PresetExtensions   = []string{".slangp"}
	ShaderExtensions   = []string{".slang"}
)

// FileInfo holds basic file information
type FileInfo struct {
	Path    string
	RelPath string // Relative to scan root
	Size    int64
}

// ScanOptions configures the scanner behavior
type ScanOptions struct {
	// Extensions limits results to these (case-insensitive) extensions. Empty matches all.
	Extensions []string

	// IgnoreHidden skips files and dirs starting with "."
	IgnoreHidden bool

	// Filter, when set, must return true for a file to be included
	Filter func(relPath string) bool
}

// DefaultOptions returns options matching files with the given extensions
func DefaultOptions(exts ...string) ScanOptions {
	return ScanOptions{
		Extensions:   exts,
		IgnoreHidden: true,
	}
}

// Scan walks root recursively and returns matching files sorted by relative
// path, so callers see a stable order regardless of directory iteration.
func Scan(root string, opts ScanOptions) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	if err := scanDir(absRoot, absRoot, opts, &files); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

func scanDir(root, dir string, opts ScanOptions, files *[]FileInfo) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		// Skip hidden files/dirs
		if opts.IgnoreHidden && strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			if err := scanDir(root, path, opts, files); err != nil {
				return err
			}
			continue
		}

		if !matchesExtension(name, opts.Extensions) {
			continue
		}

		relPath, _ := filepath.Rel(root, path)
		if opts.Filter != nil && !opts.Filter(relPath) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		*files = append(*files, FileInfo{
			Path:    path,
			RelPath: relPath,
			Size:    info.Size(),
		})
	}

	return nil
}

func matchesExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
