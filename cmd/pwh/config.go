package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the .pwh/config.json configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .pwh/config.json",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	if err := printResult(resolveFormat(cfg), cfg, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Units:          %s\n", cfg.Units)
		fmt.Fprintf(&b, "Output format:  %s\n", cfg.Output.Format)
		fmt.Fprintf(&b, "Catalog:        %s\n", cfg.Catalog.Path)
		fmt.Fprintf(&b, "Export dir:     %s (compress: %v)\n", cfg.Export.Dir, cfg.Export.Compress)
		fmt.Fprintf(&b, "Logging:        %s, %s", cfg.Logging.Format, cfg.Logging.Level)
		return b.String()
	}); err != nil {
		fail(err)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) {
	cfg := config.DefaultConfig()
	if err := cfg.Save("."); err != nil {
		fail(err)
	}
	fmt.Println("Wrote .pwh/config.json")
}
