package variant

import (
	"strings"

	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

const (
	borderKey = "BORDER"
	fhdSuffix = "-fhd"
)

var borderExtensions = []string{".png", ".jpg"}

// isSharePath reports whether an asset path points into a share/ tree
func isSharePath(p string) bool {
	normalized := strings.ToLower(fileutil.NormalizeSlashes(p))
	return strings.HasPrefix(normalized, "share/") || strings.Contains(normalized, "/share/")
}

// fhdImagePath inserts -fhd before a .png or .jpg extension. It returns false
// for other files and for paths that already carry the suffix.
func fhdImagePath(p string) (string, bool) {
	lower := strings.ToLower(p)
	for _, ext := range borderExtensions {
		if !strings.HasSuffix(lower, ext) {
			continue
		}
		base := p[:len(p)-len(ext)]
		if strings.HasSuffix(strings.ToLower(base), fhdSuffix) {
			return p, false
		}
		return base + fhdSuffix + p[len(p)-len(ext):], true
	}
	return p, false
}

// rewriteBorder switches a share/ border image to its -fhd sibling when one
// exists next to the preset. It reports whether the line was handled.
func rewriteBorder(l slangp.Line, presetPath string, resolver fileutil.Resolver, out *result) bool {
	if !l.IsAssign || l.Key != borderKey {
		return false
	}
	value := l.Unquoted()
	if !isSharePath(value) {
		return false
	}

	candidate, ok := fhdImagePath(value)
	if !ok {
		out.keep(l.Raw)
		return true
	}

	resolved := fileutil.SiblingPath(presetPath, candidate)
	if !resolver.Exists(resolved) {
		out.warn("FHD border not found: %s (referenced in %s)", resolved, presetPath)
		out.keep(l.Raw)
		return true
	}

	out.replace(l.Raw, slangp.Assign(borderKey, slangp.Quote(candidate)))
	return true
}
