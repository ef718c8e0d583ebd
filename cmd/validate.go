package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/document"
)

var validateCmd = &cobra.Command{
	Use:   "validate <preset|pipeline|params> <file>",
	Short: "Check a document against its schema",
	Example: `  scanline validate preset presetdata/input/sfc.json
  scanline validate pipeline presetdata/pipelines/crt.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		store, err := document.NewStore(".", nil)
		if err != nil {
			return err
		}
		if err := store.Validate(kind, args[1]); err != nil {
			return err
		}
		log.Println("Validation successful.")
		return nil
	},
}

// parseKind maps a command argument to a document kind
func parseKind(s string) (document.Kind, error) {
	for _, k := range document.Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document kind %q: must be one of preset, pipeline, params", s)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
