package cmd

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/build"
	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/variant"
)

var (
	variantRootDir           string
	variantInputDir          string
	variantOutputDir         string
	variantJobs              int
	variantKeepLastScaleType bool
)

// variantPasses maps command arguments to pass constructors
var variantPasses = map[string]func(root string, keepScaleType bool) variant.Pass{
	"hdr": func(root string, keep bool) variant.Pass {
		p := variant.NewHDRPass(root, fileutil.OSResolver{})
		p.DropLastScaleType = !keep
		return p
	},
	"wcg": func(root string, keep bool) variant.Pass {
		p := variant.NewWCGPass(root, fileutil.OSResolver{})
		p.DropLastScaleType = !keep
		return p
	},
	"fhd": func(string, bool) variant.Pass {
		return variant.NewFHDPass(fileutil.OSResolver{})
	},
	"handheld-lcd": func(string, bool) variant.Pass {
		return variant.NewHandheldPass(variant.ProfileLCD, fileutil.OSResolver{})
	},
	"handheld-oled": func(string, bool) variant.Pass {
		return variant.NewHandheldPass(variant.ProfileOLED, fileutil.OSResolver{})
	},
}

func variantNames() []string {
	names := make([]string, 0, len(variantPasses))
	for name := range variantPasses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var variantCmd = &cobra.Command{
	Use:   "variant <" + strings.Join(variantNames(), "|") + ">",
	Short: "Derive a preset variant folder from another",
	Long: `Run a single variant pass over every .slangp file below --input-dir and
write the results to the same relative paths below --output-dir.

  hdr, wcg        switch -sdr shaders to their -hdr or -wcg siblings
  fhd             adjust mask diffusion and borders for 1080p
  handheld-lcd    cap TVL and use FHD borders
  handheld-oled   as handheld-lcd, plus the panel's native gamut`,
	Example: `  scanline variant hdr --root-dir . --input-dir out/presets/uhd-4k-sdr --output-dir out/presets/uhd-4k-hdr`,
	ValidArgs: variantNames(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if variantInputDir == "" || variantOutputDir == "" {
			return fmt.Errorf("--input-dir and --output-dir are required")
		}
		root, err := fileutil.ExpandPath(variantRootDir)
		if err != nil {
			return err
		}
		inDir, err := fileutil.ExpandPath(variantInputDir)
		if err != nil {
			return err
		}
		outDir, err := fileutil.ExpandPath(variantOutputDir)
		if err != nil {
			return err
		}

		pass := variantPasses[args[0]](root, variantKeepLastScaleType)
		tasks, err := build.VariantTasks(args[0]+" presets", pass, inDir, outDir)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			log.Printf("No presets found in %s\n", inDir)
			return nil
		}

		report := build.NewReport()
		runErr := build.RunTasks(config.ClampJobs(variantJobs), tasks, report)
		build.WriteSummary(os.Stdout, report, runErr, build.NewStyles(build.ColorEnabled(os.Stdout)))
		return runErr
	},
}

func init() {
	variantCmd.Flags().StringVar(&variantRootDir, "root-dir", ".", "source tree root containing shaders/")
	variantCmd.Flags().StringVar(&variantInputDir, "input-dir", "", "folder of presets to read")
	variantCmd.Flags().StringVar(&variantOutputDir, "output-dir", "", "folder to write derived presets to")
	variantCmd.Flags().IntVarP(&variantJobs, "jobs", "j", 0, "worker count (default: number of CPUs, at most 32)")
	variantCmd.Flags().BoolVar(&variantKeepLastScaleType, "keep-last-scale-type", false, "hdr/wcg: keep the last pass scale_type")
	rootCmd.AddCommand(variantCmd)
}
