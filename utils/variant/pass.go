// Package variant derives display-specific presets from a base configuration
// by rewriting individual lines. Passes are pure: filesystem lookups go
// through an injected fileutil.Resolver and nothing is written here.
package variant

import (
	"fmt"
	"os"

	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/slangp"
)

// Source is one configuration text and the file it was read from. Relative
// asset paths inside the text are resolved against Path.
type Source struct {
	Path string
	Text string
}

// Result is the outcome of running a pass over a Source
type Result struct {
	Text     string
	Warnings []string // Missing variant assets; the original value was kept
	Changes  []string // One entry per rewritten, inserted or removed line
}

// Changed reports whether the pass rewrote anything
func (r Result) Changed() bool {
	return len(r.Changes) > 0
}

// Pass is a rule set that derives one variant
type Pass interface {
	Name() string
	Transform(src Source) Result
}

// result accumulates output lines for a pass
type result struct {
	lines    []string
	warnings []string
	changes  []string
}

func (r *result) keep(line string) {
	r.lines = append(r.lines, line)
}

func (r *result) replace(old, line string) {
	r.lines = append(r.lines, line)
	r.changes = append(r.changes, fmt.Sprintf("%s -> %s", old, line))
}

func (r *result) remove(line string) {
	r.changes = append(r.changes, fmt.Sprintf("removed %s", line))
}

func (r *result) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *result) done() Result {
	return Result{Text: slangp.JoinLines(r.lines), Warnings: r.warnings, Changes: r.changes}
}

// Derive reads src, applies pass and writes the result to dest
func Derive(pass Pass, src, dest string) (Result, fileutil.WriteResult, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, fileutil.WriteResult{}, fmt.Errorf("failed to read %s: %w", src, err)
	}

	res := pass.Transform(Source{Path: src, Text: string(data)})
	written, err := fileutil.WriteFile(dest, []byte(res.Text))
	return res, written, err
}
