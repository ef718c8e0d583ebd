package filescan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b/zeta.slangp",
		"a/alpha.slangp",
		"a/readme.md",
		".hidden/skip.slangp",
		"top.SLANGP",
	)

	files, err := Scan(root, DefaultOptions(PresetExtensions...))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, filepath.ToSlash(f.RelPath))
	}
	want := []string{"a/alpha.slangp", "b/zeta.slangp", "top.SLANGP"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScanFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "menu-sdr.slang", "include/common.slang")

	opts := DefaultOptions(ShaderExtensions...)
	opts.Filter = func(rel string) bool { return strings.Contains(rel, "-sdr") }

	files, err := Scan(root, opts)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "menu-sdr.slang" {
		t.Errorf("Scan() with filter = %+v", files)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), DefaultOptions()); err == nil {
		t.Error("expected error for missing root")
	}
}
