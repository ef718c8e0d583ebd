package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// WriteResult describes a file written by WriteFile
type WriteResult struct {
	Path    string
	Hash    uint64 // xxhash of the written content
	Changed bool   // false when the destination already held identical bytes
}

// HashContent returns the xxhash used to compare build outputs
func HashContent(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// WriteFile creates parent directories as needed and writes content to path,
// replacing whatever was there. A destination with the same length and
// xxhash is treated as identical and left untouched on disk.
func WriteFile(path string, content []byte) (WriteResult, error) {
	result := WriteResult{Path: path, Hash: HashContent(content), Changed: true}

	if existing, err := os.ReadFile(path); err == nil && len(existing) == len(content) {
		if HashContent(existing) == result.Hash {
			result.Changed = false
			return result, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return result, nil
}
