// Package menu derives HDR and WCG menu shaders from their SDR sources by
// rewriting #include chains to pull in variant siblings.
package menu

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/anikom15/scanline-classic/utils/fileutil"
)

const sdrMarker = "-sdr"

var includePattern = regexp.MustCompile(`^\s*#include\s+"([^"]+)"\s*$`)

// Order decides where the variant include goes relative to the original
type Order int

const (
	// OriginalFirst keeps the original include and adds the variant after it
	OriginalFirst Order = iota
	// VariantFirst puts the variant include before the original
	VariantFirst
)

// Pass rewrites the includes of one menu shader
type Pass struct {
	Token    string   // Suffix of the variant being produced, e.g. "hdr"
	Skip     []string // Include stem suffixes that are dropped
	Order    Order
	Resolver fileutil.Resolver
}

// NewHDRPass adds -hdr siblings after the includes they extend
func NewHDRPass(resolver fileutil.Resolver) *Pass {
	return &Pass{Token: "hdr", Skip: []string{"-sdr", "-wcg"}, Order: OriginalFirst, Resolver: resolver}
}

// NewWCGPass puts -wcg siblings ahead of the includes they override
func NewWCGPass(resolver fileutil.Resolver) *Pass {
	return &Pass{Token: "wcg", Skip: []string{"-sdr", "-hdr"}, Order: VariantFirst, Resolver: resolver}
}

// Name returns the variant token
func (p *Pass) Name() string {
	return p.Token
}

// Result is the rewritten shader source
type Result struct {
	Text    string
	Changes []string
}

// Transform rewrites the include directives of the shader at srcPath. Lines
// keep their own endings; non-include lines pass through unchanged.
func (p *Pass) Transform(srcPath, text string) Result {
	var out strings.Builder
	var changes []string

	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		content, ending := splitEnding(raw)

		m := includePattern.FindStringSubmatch(content)
		if m == nil {
			out.WriteString(raw)
			continue
		}

		inc := fileutil.NormalizeSlashes(m[1])
		stem := strings.TrimSuffix(path.Base(inc), path.Ext(inc))
		if p.skipped(stem) {
			changes = append(changes, fmt.Sprintf("dropped include %q", inc))
			continue
		}

		variant := SiblingInclude(inc, p.Token)
		if !p.Resolver.Exists(fileutil.SiblingPath(srcPath, variant)) {
			if inc != m[1] {
				out.WriteString(includeLine(inc) + ending)
				changes = append(changes, fmt.Sprintf("normalized include %q", inc))
			} else {
				out.WriteString(raw)
			}
			continue
		}

		first, second := inc, variant
		if p.Order == VariantFirst {
			first, second = variant, inc
		}
		sep := ending
		if sep == "" {
			sep = "\n"
		}
		out.WriteString(includeLine(first) + sep)
		out.WriteString(includeLine(second) + ending)
		changes = append(changes, fmt.Sprintf("added include %q", variant))
	}

	return Result{Text: out.String(), Changes: changes}
}

func (p *Pass) skipped(stem string) bool {
	for _, suffix := range p.Skip {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return false
}

// SiblingInclude inserts -<token> before the extension of a slash path
func SiblingInclude(inc, token string) string {
	ext := path.Ext(inc)
	return strings.TrimSuffix(inc, ext) + "-" + token + ext
}

// OutputName maps an SDR menu filename to its variant name
func OutputName(name, token string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return strings.ReplaceAll(stem, sdrMarker, "-"+token) + ext
}

// IsSDRSource reports whether a menu file is an SDR source a variant is
// derived from
func IsSDRSource(name string) bool {
	base := filepath.Base(name)
	return strings.Contains(strings.TrimSuffix(base, filepath.Ext(base)), sdrMarker)
}

// Derive transforms the shader at src and writes it to dest
func Derive(p *Pass, src, dest string) (Result, fileutil.WriteResult, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, fileutil.WriteResult{}, fmt.Errorf("failed to read %s: %w", src, err)
	}
	res := p.Transform(src, string(data))
	written, err := fileutil.WriteFile(dest, []byte(res.Text))
	return res, written, err
}

func includeLine(inc string) string {
	return `#include "` + inc + `"`
}

// splitEnding separates a line from its \n or \r\n terminator
func splitEnding(raw string) (string, string) {
	if strings.HasSuffix(raw, "\r\n") {
		return raw[:len(raw)-2], "\r\n"
	}
	if strings.HasSuffix(raw, "\n") {
		return raw[:len(raw)-1], "\n"
	}
	return raw, ""
}
