// Package build runs the full preset build: staging, base preset assembly,
// then the variant passes in dependency order on a bounded worker pool.
package build

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/document"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/menu"
	"github.com/anikom15/scanline-classic/utils/variant"
)

// Phase names
const (
	PhasePresets  = "presets"
	PhaseMenus    = "menus"
	PhaseVariants = "variants"
	PhaseDerived  = "derived"
)

// Builder holds the resolved configuration and shared read-only inputs
type Builder struct {
	Config   *config.BuildConfig
	Store    *document.Store
	Resolver fileutil.Resolver
	Report   *Report
}

// planner lists the tasks of one job. It runs when its phase starts, after
// earlier phases have produced their output.
type planner struct {
	name string
	plan func() ([]Task, error)
}

type phase struct {
	name string
	jobs []planner
}

// New creates a builder for a resolved configuration
func New(cfg *config.BuildConfig) (*Builder, error) {
	store, err := document.NewStore(cfg.DataDir, nil)
	if err != nil {
		return nil, err
	}
	return &Builder{
		Config:   cfg,
		Store:    store,
		Resolver: fileutil.OSResolver{},
		Report:   NewReport(),
	}, nil
}

// Run stages the output folder when enabled and executes every phase. A
// failing phase does not stop later phases; all errors are returned joined.
func (b *Builder) Run() error {
	if b.Config.StageEnabled() {
		if err := Stage(b.Config); err != nil {
			return err
		}
	}

	var errs []error
	for _, ph := range b.phases() {
		if err := b.runPhase(ph); err != nil {
			errs = append(errs, fmt.Errorf("phase %s: %w", ph.name, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Builder) runPhase(ph phase) error {
	config.VerboseLog("Phase %s", ph.name)

	var tasks []Task
	var errs []error
	for _, job := range ph.jobs {
		jobTasks, err := job.plan()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.name, err))
			continue
		}
		config.DebugLog("%s: %d file(s)", job.name, len(jobTasks))
		tasks = append(tasks, jobTasks...)
	}

	for i := range tasks {
		run := tasks[i].Run
		tasks[i].Run = func() (Entry, error) {
			e, err := run()
			e.Phase = ph.name
			return e, err
		}
	}

	if err := RunTasks(b.Config.Jobs, tasks, b.Report); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (b *Builder) phases() []phase {
	cfg := b.Config
	dirs := cfg.Phases
	menusOut := filepath.Join(cfg.Out, "shaders", "menus")

	// Variant shaders are looked up in the output tree so the menus phase
	// output is visible to the preset passes
	hdr := variant.NewHDRPass(cfg.Out, b.Resolver)
	wcg := variant.NewWCGPass(cfg.Out, b.Resolver)
	hdr.DropLastScaleType = cfg.DropLastScaleTypeEnabled()
	wcg.DropLastScaleType = cfg.DropLastScaleTypeEnabled()
	fhd := variant.NewFHDPass(b.Resolver)

	return []phase{
		{
			name: PhasePresets,
			jobs: []planner{b.presetJob(cfg.InputPath(), cfg.PresetsPath(dirs.SDR))},
		},
		{
			name: PhaseMenus,
			jobs: []planner{
				b.menuJob(menu.NewHDRPass(b.Resolver), cfg.MenusPath(), menusOut),
				b.menuJob(menu.NewWCGPass(b.Resolver), cfg.MenusPath(), menusOut),
			},
		},
		{
			name: PhaseVariants,
			jobs: []planner{
				b.variantJob("hdr presets", hdr, cfg.PresetsPath(dirs.SDR), cfg.PresetsPath(dirs.HDR)),
				b.variantJob("wcg presets", wcg, cfg.PresetsPath(dirs.SDR), cfg.PresetsPath(dirs.WCG)),
			},
		},
		{
			name: PhaseDerived,
			jobs: []planner{
				b.variantJob("fhd sdr presets", fhd, cfg.PresetsPath(dirs.SDR), cfg.PresetsPath(dirs.FHDSDR)),
				b.variantJob("fhd hdr presets", fhd, cfg.PresetsPath(dirs.HDR), cfg.PresetsPath(dirs.FHDHDR)),
				b.variantJob("handheld lcd presets", variant.NewHandheldPass(variant.ProfileLCD, b.Resolver),
					cfg.PresetsPath(dirs.SDR), cfg.PresetsPath(dirs.HandheldLCD)),
				b.variantJob("handheld oled presets", variant.NewHandheldPass(variant.ProfileOLED, b.Resolver),
					cfg.PresetsPath(dirs.WCG), cfg.PresetsPath(dirs.HandheldOLED)),
			},
		},
	}
}

func (b *Builder) presetJob(inputDir, outDir string) planner {
	return planner{name: presetJobName, plan: func() ([]Task, error) {
		return PresetTasks(b.Store, inputDir, outDir)
	}}
}

func (b *Builder) variantJob(name string, pass variant.Pass, inDir, outDir string) planner {
	return planner{name: name, plan: func() ([]Task, error) {
		return VariantTasks(name, pass, inDir, outDir)
	}}
}

func (b *Builder) menuJob(pass *menu.Pass, menusDir, outDir string) planner {
	return planner{name: pass.Name() + " menus", plan: func() ([]Task, error) {
		return MenuTasks(pass, menusDir, outDir)
	}}
}
