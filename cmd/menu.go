package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/build"
	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/menu"
)

var (
	menuMenusDir string
	menuOutDir   string
	menuJobs     int
)

var menuCmd = &cobra.Command{
	Use:   "menu <hdr|wcg>",
	Short: "Derive HDR or WCG menu shaders from the SDR menus",
	Long: `Rewrite the #include chains of every *-sdr*.slang menu shader to pull in
-hdr or -wcg sibling includes where they exist. Output files are named with
-sdr replaced by the variant.

Without --out-dir the variants are written next to their sources. With it,
they go to <out-dir>/shaders/menus.`,
	Example: `  scanline menu hdr --menus-dir shaders/menus --out-dir out`,
	ValidArgs: []string{"hdr", "wcg"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		menusDir, err := fileutil.ExpandPath(menuMenusDir)
		if err != nil {
			return err
		}
		outDir := menusDir
		if menuOutDir != "" {
			root, err := fileutil.ExpandPath(menuOutDir)
			if err != nil {
				return err
			}
			outDir = filepath.Join(root, "shaders", "menus")
		}

		pass := menu.NewHDRPass(fileutil.OSResolver{})
		if args[0] == "wcg" {
			pass = menu.NewWCGPass(fileutil.OSResolver{})
		}

		tasks, err := build.MenuTasks(pass, menusDir, outDir)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			log.Printf("No SDR menu shaders found in %s\n", menusDir)
			return nil
		}

		report := build.NewReport()
		runErr := build.RunTasks(config.ClampJobs(menuJobs), tasks, report)
		build.WriteSummary(os.Stdout, report, runErr, build.NewStyles(build.ColorEnabled(os.Stdout)))
		return runErr
	},
}

func init() {
	menuCmd.Flags().StringVar(&menuMenusDir, "menus-dir", filepath.Join("shaders", "menus"), "folder of SDR menu shaders")
	menuCmd.Flags().StringVar(&menuOutDir, "out-dir", "", "output root; menus are written to <out-dir>/shaders/menus")
	menuCmd.Flags().IntVarP(&menuJobs, "jobs", "j", 0, "worker count (default: number of CPUs, at most 32)")
	rootCmd.AddCommand(menuCmd)
}
