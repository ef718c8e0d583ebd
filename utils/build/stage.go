package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/fileutil"
)

// Stage recreates the output folder and copies the static assets from the
// source root into it. Missing sources are warned about and skipped.
func Stage(cfg *config.BuildConfig) error {
	config.VerboseLog("Staging %s -> %s", cfg.Root, cfg.Out)

	if rel, err := filepath.Rel(cfg.Out, cfg.Root); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output folder %s contains the source root %s", cfg.Out, cfg.Root)
	}

	if err := os.RemoveAll(cfg.Out); err != nil {
		return fmt.Errorf("failed to clear output folder %s: %w", cfg.Out, err)
	}
	if err := os.MkdirAll(cfg.Out, 0755); err != nil {
		return fmt.Errorf("failed to create output folder %s: %w", cfg.Out, err)
	}

	for _, dir := range cfg.StageDirs {
		src := filepath.Join(cfg.Root, dir)
		if !fileutil.DirExists(src) {
			config.Warn("Missing folder: %s", src)
			continue
		}
		if err := fileutil.CopyTree(src, filepath.Join(cfg.Out, dir)); err != nil {
			return fmt.Errorf("failed to copy %s: %w", src, err)
		}
		config.DebugLog("Copied %s", src)
	}

	for _, name := range cfg.TopFiles {
		src := filepath.Join(cfg.Root, name)
		if _, err := os.Stat(src); err != nil {
			config.Warn("Missing file: %s", src)
			continue
		}
		if err := fileutil.CopyFile(src, filepath.Join(cfg.Out, name)); err != nil {
			return fmt.Errorf("failed to copy %s: %w", src, err)
		}
		config.DebugLog("Copied %s", src)
	}
	return nil
}
