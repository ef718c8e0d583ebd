package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/trim"
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Produce the reduced distribution from the build output",
	Long: `Copy the build output to the trim folder and reduce it:

  - doc/ keeps only the files listed in trim.keep_docs
  - every .png under share/ is removed
  - presets whose name matches a line of the rules file are removed,
    except names matching trim.exceptions
  - empty folders are removed

Rules use gitignore-style patterns matched against preset names without the
.slangp extension. Lines starting with # are comments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBuildConfig()
		if err != nil {
			return err
		}
		if err := cfg.Resolve(); err != nil {
			return err
		}

		log.Println("Building trimmed distribution...")
		res, err := trim.Run(trim.Options{
			Src:        cfg.Out,
			Dest:       cfg.Trim.Out,
			RulesFile:  cfg.Trim.Rules,
			KeepDocs:   cfg.Trim.KeepDocs,
			Exceptions: cfg.Trim.Exceptions,
		})
		if err != nil {
			return err
		}

		if verbose || len(res.Presets) > 0 {
			log.Printf("Removed %d preset file(s) based on %d trim rule(s)\n", len(res.Presets), res.Rules)
		}
		if verbose || res.Dirs > 0 {
			log.Printf("Removed %d empty directory(ies)\n", res.Dirs)
		}
		log.Printf("Trim build complete. Output in '%s' folder.\n", cfg.Trim.Out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trimCmd)
}
