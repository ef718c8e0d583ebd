package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anikom15/scanline-classic/utils/document"
)

func TestUnknownCommandHint(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		wantHint bool
	}{
		{
			name:     "json document",
			errMsg:   `unknown command "sfc.json" for "scanline"`,
			wantHint: true,
		},
		{
			name:     "yaml document",
			errMsg:   `unknown command "presets/pvm.YAML" for "scanline"`,
			wantHint: true,
		},
		{
			name:     "typo",
			errMsg:   `unknown command "biuld" for "scanline"`,
			wantHint: false,
		},
		{
			name:     "other error",
			errMsg:   "preset validation error in x.json",
			wantHint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := unknownCommandHint(tt.errMsg)
			if (hint != "") != tt.wantHint {
				t.Errorf("unknownCommandHint(%q) = %q, want hint: %v", tt.errMsg, hint, tt.wantHint)
			}
			if tt.wantHint && !strings.Contains(hint, "scanline preset ") {
				t.Errorf("hint %q does not suggest the preset command", hint)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range document.Kinds {
		got, err := parseKind(string(k))
		if err != nil || got != k {
			t.Errorf("parseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := parseKind("shader"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGetVersion(t *testing.T) {
	saved := version
	defer func() { version = saved }()

	version = "v1.2.3"
	if got := getVersion(); got != "v1.2.3" {
		t.Errorf("getVersion() = %q, want v1.2.3", got)
	}
}

func TestVariantNames(t *testing.T) {
	want := []string{"fhd", "handheld-lcd", "handheld-oled", "hdr", "wcg"}
	got := variantNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("variantNames() = %v, want %v", got, want)
	}
	for _, name := range got {
		if pass := variantPasses[name](".", false); pass == nil {
			t.Errorf("variant %q has no pass", name)
		}
	}
}

func TestLoadBuildConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanline.yaml")
	if err := os.WriteFile(path, []byte("root: src\njobs: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	saved := configPath
	defer func() { configPath = saved }()

	configPath = path
	cfg, err := loadBuildConfig()
	if err != nil {
		t.Fatalf("loadBuildConfig() error = %v", err)
	}
	if cfg.Root != filepath.Join(dir, "src") || cfg.Jobs != 3 {
		t.Errorf("loadBuildConfig() root = %q jobs = %d", cfg.Root, cfg.Jobs)
	}

	// An explicitly named config must exist
	configPath = filepath.Join(dir, "missing.yaml")
	if _, err := loadBuildConfig(); err == nil {
		t.Error("expected error for missing --config file")
	}

	// SCANLINE_CONFIG is used when --config is not set
	configPath = ""
	t.Setenv("SCANLINE_CONFIG", path)
	cfg, err = loadBuildConfig()
	if err != nil {
		t.Fatalf("loadBuildConfig() with SCANLINE_CONFIG error = %v", err)
	}
	if cfg.Jobs != 3 {
		t.Errorf("jobs = %d, want 3", cfg.Jobs)
	}
}
