package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/document"
	"github.com/anikom15/scanline-classic/utils/fileutil"
	"github.com/anikom15/scanline-classic/utils/preset"
)

var (
	presetOutDir  string
	presetDataDir string
)

var presetCmd = &cobra.Command{
	Use:   "preset <document> [documents...]",
	Short: "Assemble preset documents into slangp presets",
	Long: `Assemble one or more preset documents (JSON or YAML) into base slangp
presets. Pipelines and parameter sets are resolved against the data folder,
under the preset's pipeline_root and parameter_root.

The output is written to <output-dir>/<type>/<filename>.slangp.`,
	Example: `  # Assemble a single preset
  scanline preset presetdata/input/sfc.json -o out/presets/uhd-4k-sdr

  # Use a different data folder
  scanline preset my/preset.yaml --data-dir my -o build`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := fileutil.ExpandPath(presetDataDir)
		if err != nil {
			return err
		}
		outDir, err := fileutil.ExpandPath(presetOutDir)
		if err != nil {
			return err
		}

		store, err := document.NewStore(dataDir, nil)
		if err != nil {
			return err
		}

		paths, err := fileutil.ExpandPaths(args)
		if err != nil {
			return err
		}
		for i, path := range paths {
			result, err := preset.Compile(store, path, outDir)
			if err != nil {
				return fmt.Errorf("failed to assemble %s: %w", args[i], err)
			}
			log.Printf("Generated: %s\n", result.Path)
		}
		return nil
	},
}

func init() {
	presetCmd.Flags().StringVarP(&presetOutDir, "output-dir", "o", "out", "output directory")
	presetCmd.Flags().StringVar(&presetDataDir, "data-dir", "presetdata", "folder containing the pipeline and parameter roots")
	rootCmd.AddCommand(presetCmd)
}
