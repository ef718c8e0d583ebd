package fileutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver answers whether a variant asset is physically present. Transform
// passes take one so their rules can be tested without a filesystem.
type Resolver interface {
	Exists(path string) bool
}

// OSResolver checks the real filesystem. Only regular files count.
type OSResolver struct{}

// Exists implements Resolver
func (OSResolver) Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(path string) bool

// Exists implements Resolver
func (f ResolverFunc) Exists(p string) bool {
	return f(p)
}

// NormalizeSlashes converts Windows separators to forward slashes
func NormalizeSlashes(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// StripParentSegments drops leading "..", "." and empty segments from a
// slash-separated path.
func StripParentSegments(p string) string {
	segments := strings.Split(NormalizeSlashes(p), "/")
	i := 0
	for i < len(segments) && (segments[i] == ".." || segments[i] == "." || segments[i] == "") {
		i++
	}
	return strings.Join(segments[i:], "/")
}

// ShaderSearchPath maps a shader path declared in a preset onto the shader
// tree under root. "../../shaders/base/foo.slang" and "shaders/base/foo.slang"
// both resolve to <root>/shaders/base/foo.slang.
func ShaderSearchPath(root, declared string) string {
	rel := StripParentSegments(declared)
	if head, rest, ok := strings.Cut(rel, "/"); ok && strings.EqualFold(head, "shaders") {
		rel = rest
	}
	return filepath.Join(root, "shaders", filepath.FromSlash(path.Clean("/" + rel))[1:])
}

// SiblingPath resolves a path written relative to the file at from
func SiblingPath(from, rel string) string {
	return filepath.Join(filepath.Dir(from), filepath.FromSlash(NormalizeSlashes(rel)))
}
