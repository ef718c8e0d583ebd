package build

import (
	"path/filepath"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/document"
	"github.com/anikom15/scanline-classic/utils/filescan"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/menu"
	"github.com/anikom15/scanline-classic/utils/preset"
	"github.com/anikom15/scanline-classic/utils/variant"
)

const presetJobName = "sdr presets"

// scanInputs lists files below dir, or nothing with a warning when dir is missing
func scanInputs(job, dir string, opts filescan.ScanOptions) ([]filescan.FileInfo, error) {
	if !fileutil.DirExists(dir) {
		config.Warn("%s: input folder %s not found, skipping", job, dir)
		return nil, nil
	}
	return filescan.Scan(dir, opts)
}

// PresetTasks assembles every preset document below inputDir into outDir
func PresetTasks(store *document.Store, inputDir, outDir string) ([]Task, error) {
	files, err := scanInputs(presetJobName, inputDir, filescan.DefaultOptions(filescan.DocumentExtensions...))
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(files))
	for _, f := range files {
		tasks = append(tasks, Task{Job: presetJobName, Src: f.Path, Run: func() (Entry, error) {
			w, err := preset.Compile(store, f.Path, outDir)
			if err != nil {
				return Entry{}, err
			}
			return Entry{Job: presetJobName, Source: f.Path, Path: w.Path, Hash: w.Hash, Changed: w.Changed}, nil
		}})
	}
	return tasks, nil
}

// VariantTasks derives every preset below inDir into the same relative path
// below outDir
func VariantTasks(name string, pass variant.Pass, inDir, outDir string) ([]Task, error) {
	files, err := scanInputs(name, inDir, filescan.DefaultOptions(filescan.PresetExtensions...))
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(files))
	for _, f := range files {
		dest := filepath.Join(outDir, f.RelPath)
		tasks = append(tasks, Task{Job: name, Src: f.Path, Dest: dest, Run: func() (Entry, error) {
			res, w, err := variant.Derive(pass, f.Path, dest)
			if err != nil {
				return Entry{}, err
			}
			for _, warning := range res.Warnings {
				config.Warn("%s", warning)
			}
			for _, change := range res.Changes {
				config.DebugLog("%s: %s", dest, change)
			}
			return Entry{Job: name, Source: f.Path, Path: w.Path, Hash: w.Hash, Changed: w.Changed,
				Warnings: res.Warnings, Changes: res.Changes}, nil
		}})
	}
	return tasks, nil
}

// MenuTasks derives a variant of every SDR menu shader below menusDir.
// Output names swap -sdr for the variant token.
func MenuTasks(pass *menu.Pass, menusDir, outDir string) ([]Task, error) {
	name := pass.Name() + " menus"
	opts := filescan.DefaultOptions(filescan.ShaderExtensions...)
	opts.Filter = menu.IsSDRSource
	files, err := scanInputs(name, menusDir, opts)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(files))
	for _, f := range files {
		dir, base := filepath.Split(f.RelPath)
		dest := filepath.Join(outDir, dir, menu.OutputName(base, pass.Token))
		tasks = append(tasks, Task{Job: name, Src: f.Path, Dest: dest, Run: func() (Entry, error) {
			res, w, err := menu.Derive(pass, f.Path, dest)
			if err != nil {
				return Entry{}, err
			}
			for _, change := range res.Changes {
				config.DebugLog("%s: %s", dest, change)
			}
			return Entry{Job: name, Source: f.Path, Path: w.Path, Hash: w.Hash, Changed: w.Changed,
				Changes: res.Changes}, nil
		}})
	}
	return tasks, nil
}
