package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/build"
	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/fileutil"
)

// Build flags
var (
	buildJobs              int
	buildRoot              string
	buildOut               string
	buildNoStage           bool
	buildKeepLastScaleType bool
	buildManifest          string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Stage assets and build every preset variant",
	Long: `Build the full preset tree. The output folder is recreated from the
source tree's share, doc and shaders folders, base presets are assembled from
the preset documents, and the variants are derived in order:

  presets    preset documents -> uhd-4k-sdr
  menus      HDR and WCG menu shaders -> out/shaders/menus
  variants   uhd-4k-sdr -> uhd-4k-hdr, uhd-4k-wcg (shaders resolved under out)
  derived    uhd-4k-sdr, uhd-4k-hdr -> fhd-sdr, fhd-hdr
             uhd-4k-sdr, uhd-4k-wcg -> steamdeck-lcd, steamdeck-oled-native

Each phase finishes before the next one starts.`,
	Example: `  # Build with ./scanline.yaml or the defaults
  scanline build

  # Build another checkout with 4 workers
  scanline build --root ~/src/scanline-classic --jobs 4

  # Rebuild presets without re-copying assets
  scanline build --no-stage

  # Record the content hash of every generated file
  scanline build --manifest out/MANIFEST`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBuildConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("root") {
			cfg.Root = buildRoot
		}
		if flags.Changed("out") {
			cfg.Out = buildOut
		}
		if flags.Changed("jobs") {
			cfg.Jobs = buildJobs
		}
		if buildNoStage {
			stage := false
			cfg.Stage = &stage
		}
		if buildKeepLastScaleType {
			drop := false
			cfg.DropLastScaleType = &drop
		}

		if err := cfg.Resolve(); err != nil {
			return err
		}
		config.VerboseLog("Building %s -> %s with %d worker(s)", cfg.Root, cfg.Out, cfg.Jobs)

		b, err := build.New(cfg)
		if err != nil {
			return err
		}
		runErr := b.Run()
		build.WriteSummary(os.Stdout, b.Report, runErr, build.NewStyles(build.ColorEnabled(os.Stdout)))

		if buildManifest != "" {
			if err := writeManifest(b.Report, cfg.Out); err != nil {
				return err
			}
		}
		return runErr
	},
}

// writeManifest records the hash of every file the build generated
func writeManifest(r *build.Report, outDir string) error {
	path, err := fileutil.ExpandPath(buildManifest)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.WriteManifest(&buf, outDir); err != nil {
		return err
	}
	res, err := fileutil.WriteFile(path, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if res.Changed {
		log.Printf("Manifest written to %s\n", res.Path)
	} else {
		config.VerboseLog("Manifest %s is up to date", res.Path)
	}
	return nil
}

func init() {
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "worker count (default: number of CPUs, at most 32)")
	buildCmd.Flags().StringVar(&buildRoot, "root", "", "source tree root (default from config, else current directory)")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output folder, relative to the root (default \"out\")")
	buildCmd.Flags().BoolVar(&buildNoStage, "no-stage", false, "do not recreate the output folder or copy static assets")
	buildCmd.Flags().BoolVar(&buildKeepLastScaleType, "keep-last-scale-type", false, "keep the last pass scale_type in HDR and WCG presets")
	buildCmd.Flags().StringVar(&buildManifest, "manifest", "", "write an xxhash manifest of generated files to this path")
	rootCmd.AddCommand(buildCmd)
}
