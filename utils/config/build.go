package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anikom15/scanline-classic/utils/fileutil"
)

// DefaultConfigFile is looked up in the working directory when neither
// --config nor SCANLINE_CONFIG is given.
const DefaultConfigFile = "scanline.yaml"

// PhaseDirs names the preset directories under <out>/presets for every variant
type PhaseDirs struct {
	SDR          string `yaml:"sdr"`
	HDR          string `yaml:"hdr"`
	WCG          string `yaml:"wcg"`
	FHDSDR       string `yaml:"fhd_sdr"`
	FHDHDR       string `yaml:"fhd_hdr"`
	HandheldLCD  string `yaml:"handheld_lcd"`
	HandheldOLED string `yaml:"handheld_oled"`
}

// TrimConfig holds settings for the trimmed distribution
type TrimConfig struct {
	Out        string   `yaml:"out"`        // Output folder for the trimmed copy
	Rules      string   `yaml:"rules"`      // gitignore-style rules file
	KeepDocs   []string `yaml:"keep_docs"`  // Files kept in doc/
	Exceptions []string `yaml:"exceptions"` // Preset stems that are never removed
}

// BuildConfig holds everything the build orchestrator needs
type BuildConfig struct {
	Root      string   `yaml:"root"`       // Source tree containing shaders, share, doc
	Out       string   `yaml:"out"`        // Build output folder
	DataDir   string   `yaml:"data_dir"`   // Preset data root (pipelines and params live here)
	InputDir  string   `yaml:"input_dir"`  // Preset documents, relative to DataDir
	MenusDir  string   `yaml:"menus_dir"`  // Menu shader sources, relative to Root
	Jobs      int      `yaml:"jobs"`       // Worker pool size (0 = CPU count)
	Stage     *bool    `yaml:"stage"`      // Copy static assets into Out before building
	TopFiles  []string `yaml:"top_files"`  // Top-level files copied into Out
	StageDirs []string `yaml:"stage_dirs"` // Directories copied into Out

	// DropLastScaleType enables the RetroArch recognition workaround on HDR/WCG presets
	DropLastScaleType *bool `yaml:"drop_last_scale_type"`

	Phases PhaseDirs  `yaml:"phases"`
	Trim   TrimConfig `yaml:"trim"`
}

// DefaultBuildConfig returns the layout used by the scanline-classic tree
func DefaultBuildConfig() *BuildConfig {
	stage := true
	drop := true
	return &BuildConfig{
		Root:              ".",
		Out:               "out",
		DataDir:           "presetdata",
		InputDir:          "input",
		MenusDir:          filepath.Join("shaders", "menus"),
		Stage:             &stage,
		TopFiles:          []string{"README.md", "COPYING", "NEWS"},
		StageDirs:         []string{"share", "doc", "shaders"},
		DropLastScaleType: &drop,
		Phases: PhaseDirs{
			SDR:          "uhd-4k-sdr",
			HDR:          "uhd-4k-hdr",
			WCG:          "uhd-4k-wcg",
			FHDSDR:       "fhd-sdr",
			FHDHDR:       "fhd-hdr",
			HandheldLCD:  "steamdeck-lcd",
			HandheldOLED: "steamdeck-oled-native",
		},
		Trim: TrimConfig{
			Out:        "out-trim",
			Rules:      "trim-rules.txt",
			KeepDocs:   []string{"PARAMETERS.md"},
			Exceptions: []string{"sfc*", "snes*", "aaa-*"},
		},
	}
}

// GetConfigPath returns the config file path from SCANLINE_CONFIG or the default name
func GetConfigPath() string {
	if p := os.Getenv("SCANLINE_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigFile
}

// LoadBuildConfig reads a YAML config file on top of the defaults. A missing
// file is not an error unless required is set.
func LoadBuildConfig(path string, required bool) (*BuildConfig, error) {
	cfg := DefaultBuildConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			DebugLog("No build config at %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read build config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse build config %s: %w", path, err)
	}

	// Relative roots in a config file are relative to that file
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	return cfg, nil
}

// Resolve expands ~ and environment variables and anchors relative
// directories at Root. It must be called before the config is used.
func (c *BuildConfig) Resolve() error {
	root, err := fileutil.ExpandPath(c.Root)
	if err != nil {
		return fmt.Errorf("invalid root %q: %w", c.Root, err)
	}
	c.Root = root

	for _, p := range []*string{&c.Out, &c.DataDir, &c.Trim.Out, &c.Trim.Rules} {
		if *p == "" {
			continue
		}
		expanded := os.ExpandEnv(*p)
		if !filepath.IsAbs(expanded) && !strings.HasPrefix(expanded, "~") {
			expanded = filepath.Join(c.Root, expanded)
		}
		resolved, err := fileutil.ExpandPath(expanded)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", *p, err)
		}
		*p = resolved
	}

	c.Jobs = ClampJobs(c.Jobs)
	return nil
}

// StageEnabled reports whether static assets are copied before building
func (c *BuildConfig) StageEnabled() bool {
	return c.Stage == nil || *c.Stage
}

// DropLastScaleTypeEnabled reports whether the RetroArch workaround is on
func (c *BuildConfig) DropLastScaleTypeEnabled() bool {
	return c.DropLastScaleType == nil || *c.DropLastScaleType
}

// InputPath returns the directory scanned for preset documents
func (c *BuildConfig) InputPath() string {
	return filepath.Join(c.DataDir, c.InputDir)
}

// MenusPath returns the menu shader source directory
func (c *BuildConfig) MenusPath() string {
	return filepath.Join(c.Root, c.MenusDir)
}

// PresetsPath returns <out>/presets/<dir>
func (c *BuildConfig) PresetsPath(dir string) string {
	return filepath.Join(c.Out, "presets", dir)
}
