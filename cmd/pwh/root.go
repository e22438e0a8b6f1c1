package main

import (
	"os"

	"github.com/spf13/cobra"

	"pwh/internal/config"
	"pwh/internal/logging"
	"pwh/internal/version"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pwh",
	Short: "PWH - Parametric Warehouse",
	Long: `PWH (Parametric Warehouse) generates standard mechanical parts: sprockets,
roller chains, threaded fasteners, bearings, finger joints and Gridfinity
baseplates. It computes the parameter tables and geometry programs; realizing
the solids belongs to the CAD kernel consuming the exported bundles.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("PWH version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "",
		"Output format: text or json (default: text)")
}

// resolveFormat determines the effective output format.
// Precedence: CLI flag > PWH_OUTPUT_FORMAT env var > config.json > text
func resolveFormat(cfg *config.Config) OutputFormat {
	if formatFlag != "" {
		return OutputFormat(formatFlag)
	}
	if env := os.Getenv("PWH_OUTPUT_FORMAT"); env != "" {
		return OutputFormat(env)
	}
	if cfg != nil && cfg.Output.Format != "" {
		return OutputFormat(cfg.Output.Format)
	}
	return FormatText
}

// loadConfig loads .pwh/config.json from the working directory, falling back
// to defaults when the file or directory is missing
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger builds the logger the config asks for
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
