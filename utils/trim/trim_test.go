package trim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(rel), 0644))
	}
}

func TestMatcher(t *testing.T) {
	m := NewMatcher(
		[]string{"pvm-*", "*-debug", "arcade?", "snes-test"},
		[]string{"sfc*", "snes*", "aaa-*"},
	)

	tests := []struct {
		path string
		want bool
	}{
		{"presets/uhd-4k-sdr/pro/pvm-20m2.slangp", true},
		{"consumer/tv-debug.slangp", true},
		{"arcade1.slangp", true},
		{"arcade12.slangp", false},
		{"snes-test.slangp", false},
		{"aaa-pvm-example.slangp", false},
		{"tv.slangp", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Remove(tt.path), tt.path)
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\n  pvm-*  \n*-debug\n"), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pvm-*", "*-debug"}, rules)

	rules, err = LoadRules(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "out")
	dest := filepath.Join(dir, "out-trim")
	rules := filepath.Join(dir, "trim-rules.txt")

	touch(t, src,
		"README.md",
		"doc/PARAMETERS.md",
		"doc/GUIDE.md",
		"doc/images/a.jpg",
		"share/borders/tv.png",
		"share/borders/tv.jpg",
		"share/luts/only.png",
		"presets/uhd-4k-sdr/pro/pvm-20m2.slangp",
		"presets/uhd-4k-sdr/pro/aaa-pvm.slangp",
		"presets/uhd-4k-hdr/pro/pvm-20m2.slangp",
		"presets/uhd-4k-sdr/consumer/tv.slangp",
	)
	touch(t, dest, "stale.txt")
	require.NoError(t, os.WriteFile(rules, []byte("pvm-*\n"), 0644))

	res, err := Run(Options{
		Src:        src,
		Dest:       dest,
		RulesFile:  rules,
		KeepDocs:   []string{"PARAMETERS.md"},
		Exceptions: []string{"sfc*", "snes*", "aaa-*"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rules)
	assert.Equal(t, 2, res.Docs)
	assert.Equal(t, 2, res.Images)
	assert.ElementsMatch(t, []string{
		filepath.Join("presets", "uhd-4k-sdr", "pro", "pvm-20m2.slangp"),
		filepath.Join("presets", "uhd-4k-hdr", "pro", "pvm-20m2.slangp"),
	}, res.Presets)

	assert.NoFileExists(t, filepath.Join(dest, "stale.txt"))
	assert.FileExists(t, filepath.Join(dest, "README.md"))
	assert.FileExists(t, filepath.Join(dest, "doc", "PARAMETERS.md"))
	assert.NoDirExists(t, filepath.Join(dest, "doc", "images"))
	assert.FileExists(t, filepath.Join(dest, "share", "borders", "tv.jpg"))
	assert.NoDirExists(t, filepath.Join(dest, "share", "luts"))
	assert.FileExists(t, filepath.Join(dest, "presets", "uhd-4k-sdr", "pro", "aaa-pvm.slangp"))
	assert.FileExists(t, filepath.Join(dest, "presets", "uhd-4k-sdr", "consumer", "tv.slangp"))
	assert.NoDirExists(t, filepath.Join(dest, "presets", "uhd-4k-hdr"))
	assert.Equal(t, 3, res.Dirs)

	// The source is untouched
	assert.FileExists(t, filepath.Join(src, "share", "borders", "tv.png"))
	assert.FileExists(t, filepath.Join(src, "presets", "uhd-4k-hdr", "pro", "pvm-20m2.slangp"))
}

func TestRunWithoutRules(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "out")
	touch(t, src, "presets/a/pvm.slangp")

	res, err := Run(Options{Src: src, Dest: filepath.Join(dir, "trim"), RulesFile: filepath.Join(dir, "none.txt")})
	require.NoError(t, err)
	assert.Empty(t, res.Presets)
	assert.FileExists(t, filepath.Join(dir, "trim", "presets", "a", "pvm.slangp"))
}

func TestRunMissingSource(t *testing.T) {
	_, err := Run(Options{Src: filepath.Join(t.TempDir(), "absent"), Dest: t.TempDir()})
	assert.Error(t, err)
}

func TestPruneEmptyDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0755))
	touch(t, root, "d/keep.txt")

	n, err := PruneEmptyDirs(root)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoDirExists(t, filepath.Join(root, "a"))
	assert.DirExists(t, filepath.Join(root, "d"))
	assert.DirExists(t, root)
}
