// Package trim produces the reduced distribution: a copy of the build output
// without bulky images, extra docs and presets excluded by rule.
package trim

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/filescan"
	"github.com/anikom15/scanline-classic/utils/fileutil"
)

// Options configures a trim run
type Options struct {
	Src        string   // Build output folder
	Dest       string   // Trimmed copy, recreated on every run
	RulesFile  string   // gitignore-style patterns matched against preset stems
	KeepDocs   []string // Entries of doc/ that survive
	Exceptions []string // Preset stem patterns that are never removed
}

// Result counts what a trim run removed
type Result struct {
	Rules   int
	Docs    int
	Images  int
	Presets []string // Removed presets, relative to Dest
	Dirs    int
}

// Matcher decides which preset stems are removed
type Matcher struct {
	rules      *gitignore.GitIgnore
	exceptions *gitignore.GitIgnore
}

// NewMatcher compiles rule and exception patterns
func NewMatcher(rules, exceptions []string) *Matcher {
	return &Matcher{
		rules:      gitignore.CompileIgnoreLines(globLines(rules)...),
		exceptions: gitignore.CompileIgnoreLines(globLines(exceptions)...),
	}
}

// globLines makes ? match one character. go-gitignore escapes it to a
// literal but passes bracket expressions through to its regexp.
func globLines(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ReplaceAll(p, "?", "[^/]")
	}
	return out
}

// Remove reports whether the preset at path should be dropped. Exceptions
// win over rules.
func (m *Matcher) Remove(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m.exceptions.MatchesPath(stem) {
		return false
	}
	return m.rules.MatchesPath(stem)
}

// LoadRules reads a rules file, skipping blank lines and # comments. A missing
// file yields no rules.
func LoadRules(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.Warn("Trim rules file not found: %s", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules, scanner.Err()
}

// Run copies Src to Dest and trims the copy
func Run(opts Options) (*Result, error) {
	if !fileutil.DirExists(opts.Src) {
		return nil, fmt.Errorf("source folder does not exist: %s (run the build first)", opts.Src)
	}

	rules, err := LoadRules(opts.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read trim rules: %w", err)
	}

	if err := os.RemoveAll(opts.Dest); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", opts.Dest, err)
	}
	config.VerboseLog("Copying %s to %s", opts.Src, opts.Dest)
	if err := fileutil.CopyTree(opts.Src, opts.Dest); err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", opts.Src, err)
	}

	res := &Result{Rules: len(rules)}

	if res.Docs, err = trimDocs(filepath.Join(opts.Dest, "doc"), opts.KeepDocs); err != nil {
		return nil, err
	}
	if res.Images, err = removeImages(filepath.Join(opts.Dest, "share")); err != nil {
		return nil, err
	}

	if len(rules) == 0 {
		config.Warn("No trim rules loaded, no presets will be removed")
	} else if res.Presets, err = removePresets(opts.Dest, NewMatcher(rules, opts.Exceptions)); err != nil {
		return nil, err
	}

	if res.Dirs, err = PruneEmptyDirs(opts.Dest); err != nil {
		return nil, err
	}
	return res, nil
}

func trimDocs(dir string, keep []string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	removed := 0
	for _, e := range entries {
		if kept[e.Name()] {
			continue
		}
		config.DebugLog("Removing %s", filepath.Join(dir, e.Name()))
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func removeImages(dir string) (int, error) {
	if !fileutil.DirExists(dir) {
		return 0, nil
	}
	opts := filescan.DefaultOptions(".png")
	opts.IgnoreHidden = false
	files, err := filescan.Scan(dir, opts)
	if err != nil {
		return 0, err
	}
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

func removePresets(root string, m *Matcher) ([]string, error) {
	dir := filepath.Join(root, "presets")
	if !fileutil.DirExists(dir) {
		return nil, nil
	}
	opts := filescan.DefaultOptions(filescan.PresetExtensions...)
	opts.Filter = m.Remove
	files, err := filescan.Scan(dir, opts)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(files))
	for _, f := range files {
		config.DebugLog("Removing preset %s", f.RelPath)
		if err := os.Remove(f.Path); err != nil {
			return removed, err
		}
		removed = append(removed, filepath.Join("presets", f.RelPath))
	}
	return removed, nil
}

// PruneEmptyDirs removes empty directories below root, deepest first. root
// itself is kept.
func PruneEmptyDirs(root string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Longer paths first so children go before their parents
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	removed := 0
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			return removed, err
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
