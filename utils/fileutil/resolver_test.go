package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStripParentSegments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"../../shaders/foo.slang", "shaders/foo.slang"},
		{`..\..\shaders\foo.slang`, "shaders/foo.slang"},
		{"./shaders/foo.slang", "shaders/foo.slang"},
		{"shaders/../foo.slang", "shaders/../foo.slang"},
		{"foo.slang", "foo.slang"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripParentSegments(tt.input); got != tt.expected {
			t.Errorf("StripParentSegments(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestShaderSearchPath(t *testing.T) {
	root := filepath.Join("build", "out")
	want := filepath.Join(root, "shaders", "base", "foo-hdr.slang")

	tests := []struct {
		name     string
		declared string
		expected string
	}{
		{"rooted at shaders", "shaders/base/foo-hdr.slang", want},
		{"parent prefix", "../../shaders/base/foo-hdr.slang", want},
		{"backslashes", `..\..\shaders\base\foo-hdr.slang`, want},
		{"upper case segment", "../Shaders/base/foo-hdr.slang", want},
		{"no shaders segment", "base/foo-hdr.slang", want},
		{"cannot escape root", "shaders/../../../etc/passwd", filepath.Join(root, "shaders", "etc", "passwd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShaderSearchPath(root, tt.declared); got != tt.expected {
				t.Errorf("ShaderSearchPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOSResolver(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "foo-hdr.slang")
	if err := os.WriteFile(file, []byte("#version 450\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := OSResolver{}
	if !r.Exists(file) {
		t.Errorf("Exists(%q) = false, want true", file)
	}
	if r.Exists(dir) {
		t.Error("directories should not count as existing assets")
	}
	if r.Exists(filepath.Join(dir, "missing.slang")) {
		t.Error("missing file reported as existing")
	}
}

func TestSiblingPath(t *testing.T) {
	from := filepath.Join("out", "shaders", "menus", "menu-sdr.slang")
	got := SiblingPath(from, `../include\color-wcg.h`)
	want := filepath.Join("out", "shaders", "include", "color-wcg.h")
	if got != want {
		t.Errorf("SiblingPath() = %q, want %q", got, want)
	}
}
