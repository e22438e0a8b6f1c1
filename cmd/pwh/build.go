package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/export"
	"pwh/internal/partspec"
)

var buildCompress bool

var buildCmd = &cobra.Command{
	Use:   "build <manifest.toml>",
	Short: "Generate every part a build manifest names",
	Long: `Load a TOML build manifest, resolve each named part spec and write the
geometry bundles to the manifest's output directory.

Examples:
  pwh build parts.toml
  pwh build parts.toml --compress`,
	Args: cobra.ExactArgs(1),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildCompress, "compress", false,
		"zstd compress the bundles regardless of the manifest setting")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	manifest, err := partspec.LoadManifest(args[0])
	if err != nil {
		fail(err)
	}
	specs, err := manifest.LoadParts()
	if err != nil {
		fail(err)
	}

	writer := &export.Writer{
		Dir:      manifest.Build.Output,
		Compress: manifest.Build.Compress || buildCompress,
	}

	cfg := loadConfig()
	logger := newLogger(cfg)

	written := make([]string, 0, len(specs))
	for _, spec := range specs {
		resolved, err := spec.Resolve()
		if err != nil {
			fail(err)
		}
		bundle, err := export.NewBundle(resolved.Name, resolved.Program, resolved.Assembly)
		if err != nil {
			fail(err)
		}
		path, err := writer.Write(bundle)
		if err != nil {
			fail(err)
		}
		logger.Info("Wrote part bundle", map[string]interface{}{
			"part": resolved.Name,
			"path": path,
		})
		written = append(written, path)
	}

	result := map[string]interface{}{"parts": len(written), "files": written}
	if err := printResult(resolveFormat(cfg), result, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Built %d parts\n", len(written))
		for _, path := range written {
			fmt.Fprintf(&b, "  %s\n", path)
		}
		return strings.TrimRight(b.String(), "\n")
	}); err != nil {
		fail(err)
	}
}
