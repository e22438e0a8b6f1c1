package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/export"
	"pwh/internal/geometry"
	"pwh/internal/partspec"
)

var (
	exportOutDir   string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export <spec.yaml>",
	Short: "Resolve one part spec and write its bundle",
	Long: `Resolve a YAML part spec and write the geometry bundle for the kernel to
realize.

Examples:
  pwh export drive-sprocket.yaml
  pwh export drive-sprocket.yaml --out parts --compress`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out", "", "Output directory (default: the config export dir)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "zstd compress the bundle")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	spec, err := partspec.Load(args[0])
	if err != nil {
		fail(err)
	}
	resolved, err := spec.Resolve()
	if err != nil {
		fail(err)
	}

	cfg := loadConfig()
	dir := exportOutDir
	if dir == "" {
		dir = cfg.Export.Dir
	}

	writer := &export.Writer{Dir: dir, Compress: exportCompress || cfg.Export.Compress}
	bundle, err := export.NewBundle(resolved.Name, resolved.Program, resolved.Assembly)
	if err != nil {
		fail(err)
	}
	path, err := writer.Write(bundle)
	if err != nil {
		fail(err)
	}

	result := map[string]interface{}{"part": resolved.Name, "path": path}
	if err := printResult(resolveFormat(cfg), result, func() string {
		return "Wrote " + path
	}); err != nil {
		fail(err)
	}
}

// exportProgram writes a single program bundle to an explicit path, used by
// the generator commands' --export flag
func exportProgram(path, name string, program *geometry.Program) error {
	return exportBundle(path, name, program, nil)
}

// exportAssembly writes a single assembly bundle to an explicit path
func exportAssembly(path, name string, assembly *geometry.Assembly) error {
	return exportBundle(path, name, nil, assembly)
}

func exportBundle(path, name string, program *geometry.Program, assembly *geometry.Assembly) error {
	// The file is named after the requested path, not the generator
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".zst")
	if trimmed := strings.TrimSuffix(base, ".json"); trimmed != "" {
		name = trimmed
	}

	bundle, err := export.NewBundle(name, program, assembly)
	if err != nil {
		return err
	}
	writer := &export.Writer{
		Dir:      filepath.Dir(path),
		Compress: strings.HasSuffix(path, ".zst"),
	}
	_, err = writer.Write(bundle)
	return err
}
