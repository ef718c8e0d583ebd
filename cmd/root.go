package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anikom15/scanline-classic/utils/config"
	"github.com/anikom15/scanline-classic/utils/filescan"
)

// version is a placeholder for the version string, which will be set at build time.
var version string

var verbose bool
var debug bool
var configPath string // --config

// logFile holds the log file handle for proper cleanup
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "scanline",
	Short: "Build tool for the Scanline Classic shader presets",
	Long: `scanline assembles RetroArch slang presets from preset, pipeline and
parameter documents, then derives the HDR, WCG, FHD and handheld variants.

Getting Started:
  1. scanline build           Stage assets and build every preset variant
  2. scanline trim            Produce the reduced distribution
  3. scanline validate        Check a single document against its schema

Build settings are read from ./scanline.yaml when present.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Plain log lines for CLI output
		log.SetFlags(0)

		// Optional: Set up file-based logging for debugging sessions
		if logFileName := os.Getenv("SCANLINE_LOG_FILE"); logFileName != "" {
			if file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				logFile = file
				log.SetOutput(file)
				log.Printf("[INFO] Logging session started at %s\n", time.Now().Format(time.RFC3339))
			} else {
				log.Printf("[WARN] Failed to open log file '%s': %v. Continuing with stderr logging.\n", logFileName, err)
			}
		}

		// Set global verbose and debug flags
		config.Verbose = verbose
		config.Debug = debug
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// loadBuildConfig reads the build config named by --config or SCANLINE_CONFIG,
// falling back to defaults when no file was asked for and none exists.
func loadBuildConfig() (*config.BuildConfig, error) {
	path := configPath
	required := path != "" || os.Getenv("SCANLINE_CONFIG") != ""
	if path == "" {
		path = config.GetConfigPath()
	}

	config.DebugLog("Loading build configuration from %s", path)
	cfg, err := config.LoadBuildConfig(path, required)
	if err != nil {
		return nil, fmt.Errorf("error loading build configuration: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "build configuration file (default ./scanline.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// getVersion returns the version string.
// Priority: build-time ldflags > VERSION file (for development)
func getVersion() string {
	if version != "" {
		return version
	}

	// For local development: try to read VERSION file from project root
	_, filename, _, ok := runtime.Caller(0)
	if ok {
		projectRoot := filepath.Dir(filepath.Dir(filename))
		content, err := os.ReadFile(filepath.Join(projectRoot, "VERSION"))
		if err == nil {
			return "v" + strings.TrimSpace(string(content)) + "-dev"
		}
	}

	return "unknown (build with: go build -ldflags \"-X 'github.com/anikom15/scanline-classic/cmd.version=vX.Y.Z'\")"
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the current scanline version.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("scanline version: %s\n", getVersion())
	},
}

// unknownCommandHint suggests the preset command when an unknown command
// looks like a preset document
func unknownCommandHint(errMsg string) string {
	rest, ok := strings.CutPrefix(errMsg, `unknown command "`)
	if !ok {
		return ""
	}
	arg, _, ok := strings.Cut(rest, `"`)
	if !ok {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(arg))
	for _, e := range filescan.DocumentExtensions {
		if ext == e {
			return fmt.Sprintf("To assemble a preset document, use the 'preset' command:\n\n   scanline preset %s\n", arg)
		}
	}
	return ""
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	log.Printf("[INFO] Logging session ended at %s\n", time.Now().Format(time.RFC3339))
	if err := logFile.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to sync log file: %v\n", err)
	}
	logFile.Close()
}

func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		if hint := unknownCommandHint(err.Error()); hint != "" {
			log.Print(hint)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
