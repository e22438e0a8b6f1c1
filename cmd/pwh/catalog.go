package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/bearing"
	"pwh/internal/catalog"
	"pwh/internal/fastener"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the standard parts catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the embedded standards tables into the catalog",
	Long: `Import the embedded fastener and bearing standards tables into the
catalog database. Each source table is checksummed, so re-running the import
only touches tables whose content changed. Reindexed datasheet tables are
imported separately with 'pwh reindex --import-family'.`,
	Args: cobra.NoArgs,
	Run:  runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the part families in the catalog",
	Args:  cobra.NoArgs,
	Run:   runCatalogList,
}

var catalogSizesCmd = &cobra.Command{
	Use:   "sizes <family>",
	Short: "List the sizes stored for a family",
	Args:  cobra.ExactArgs(1),
	Run:   runCatalogSizes,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <family> <size>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(2),
	Run:   runCatalogShow,
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSizesCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

// openCatalog opens the configured catalog database
func openCatalog() (*catalog.Store, func() error) {
	cfg := loadConfig()
	store, err := catalog.Open(cfg.Catalog.Path, newLogger(cfg))
	if err != nil {
		fail(err)
	}
	return store, store.Close
}

// importedSource is the per-table outcome reported by catalog import
type importedSource struct {
	Family   string `json:"family"`
	Source   string `json:"source"`
	Records  int    `json:"records"`
	Imported bool   `json:"imported"`
}

func runCatalogImport(cmd *cobra.Command, args []string) {
	store, closeStore := openCatalog()
	defer closeStore()

	var results []importedSource
	importTable := func(family, name string, raw []byte, sizeColumn int) {
		imported, records, err := store.ImportCSV(family, name, raw, sizeColumn)
		if err != nil {
			fail(err)
		}
		results = append(results, importedSource{
			Family: family, Source: name, Records: records, Imported: imported,
		})
	}

	for _, src := range fastener.EmbeddedSources() {
		importTable(src.Family, src.Name, src.Raw, 0)
	}
	bearingName, bearingRaw := bearing.EmbeddedSource()
	importTable("bearing", bearingName, bearingRaw, 1)

	if err := printResult(resolveFormat(loadConfig()), map[string]interface{}{"sources": results}, func() string {
		lines := make([]string, len(results))
		for i, r := range results {
			state := "imported"
			if !r.Imported {
				state = "unchanged"
			}
			lines[i] = fmt.Sprintf("%-14s %-50s %3d records, %s", r.Family, r.Source, r.Records, state)
		}
		return strings.Join(lines, "\n")
	}); err != nil {
		fail(err)
	}
}

func runCatalogList(cmd *cobra.Command, args []string) {
	store, closeStore := openCatalog()
	defer closeStore()

	families, err := store.Families()
	if err != nil {
		fail(err)
	}

	result := map[string]interface{}{"families": families}
	if err := printResult(resolveFormat(loadConfig()), result, func() string {
		if len(families) == 0 {
			return "catalog is empty, run 'pwh catalog import' or 'pwh reindex --import-family'"
		}
		return strings.Join(families, "\n")
	}); err != nil {
		fail(err)
	}
}

func runCatalogSizes(cmd *cobra.Command, args []string) {
	store, closeStore := openCatalog()
	defer closeStore()

	all, err := store.Sizes(args[0])
	if err != nil {
		fail(err)
	}

	result := map[string]interface{}{"family": args[0], "sizes": all}
	if err := printResult(resolveFormat(loadConfig()), result, func() string {
		return args[0] + ": " + strings.Join(all, ", ")
	}); err != nil {
		fail(err)
	}
}

func runCatalogShow(cmd *cobra.Command, args []string) {
	store, closeStore := openCatalog()
	defer closeStore()

	part, err := store.Lookup(args[0], args[1])
	if err != nil {
		fail(err)
	}

	if err := printResult(resolveFormat(loadConfig()), part, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", part.Family, part.Size)
		fmt.Fprintf(&b, "  Fields:   %s\n", strings.Join(part.Fields, ", "))
		fmt.Fprintf(&b, "  Source:   %s\n", part.Source)
		fmt.Fprintf(&b, "  Imported: %s", part.ImportedAt)
		return b.String()
	}); err != nil {
		fail(err)
	}
}
