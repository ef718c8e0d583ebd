package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables and returns an absolute,
// cleaned path. Build roots passed on the command line go through here.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand environment variables first (e.g., $HOME)
	path = os.ExpandEnv(path)

	// Handle tilde expansion
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		if path == "~" {
			return homeDir, nil
		}

		if strings.HasPrefix(path, "~/") {
			path = filepath.Join(homeDir, path[2:])
		}

		// ~user syntax is not supported, return as-is
		// (would require looking up other users' home dirs)
	}

	return filepath.Abs(path)
}

// ExpandPaths expands a slice of paths using ExpandPath.
func ExpandPaths(paths []string) ([]string, error) {
	expanded := make([]string, len(paths))
	for i, p := range paths {
		exp, err := ExpandPath(p)
		if err != nil {
			return nil, err
		}
		expanded[i] = exp
	}
	return expanded, nil
}

// ReplaceExt swaps the extension of name for ext ("" strips it).
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
