package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pwh/internal/catalog"
	"pwh/internal/errors"
	"pwh/internal/reindex"
)

var reindexFamily string

var reindexCmd = &cobra.Command{
	Use:   "reindex <table-file>",
	Short: "Normalize a raw standards table",
	Long: `Normalize a semi-structured standards table, as copied from a datasheet,
into comma separated records keyed by a synthesized size designator.

Sections are separated by blank lines; within a section each field is listed
column-wise for all records. A malformed section is reported and skipped,
the remaining sections still produce records. Pass "-" to read stdin.

Examples:
  pwh reindex bearing_table.txt
  pwh reindex bearing_table.txt --import-family bearing
  cat table.txt | pwh reindex -`,
	Args: cobra.ExactArgs(1),
	Run:  runReindex,
}

func init() {
	reindexCmd.Flags().StringVar(&reindexFamily, "import-family", "",
		"Import the normalized records into the catalog under this family")
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) {
	var raw []byte
	var err error
	sourceName := args[0]
	if args[0] == "-" {
		raw, err = io.ReadAll(os.Stdin)
		sourceName = "stdin"
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		fail(errors.Wrap(errors.InternalError, "reading table", err))
	}

	result, err := reindex.Reindex(strings.NewReader(string(raw)))
	if err != nil {
		fail(err)
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	for _, failure := range result.Failures {
		logger.Warn("Skipped malformed table section", map[string]interface{}{
			"section": failure.Section,
			"length":  failure.Length,
			"period":  failure.Period,
			"reason":  failure.Reason,
		})
	}

	if reindexFamily != "" && len(result.Records) > 0 {
		store, err := catalog.Open(cfg.Catalog.Path, logger)
		if err != nil {
			fail(err)
		}
		defer store.Close()
		if _, err := store.Import(reindexFamily, sourceName, raw, result.Records); err != nil {
			fail(err)
		}
	}

	if err := printResult(resolveFormat(cfg), result, func() string {
		lines := make([]string, len(result.Records))
		for i, record := range result.Records {
			lines[i] = record.String()
		}
		return strings.Join(lines, "\n")
	}); err != nil {
		fail(err)
	}

	// Every section failed: nothing was produced, so the run itself failed
	if len(result.Records) == 0 && len(result.Failures) > 0 {
		fail(fmt.Errorf("all %d sections were malformed", len(result.Failures)))
	}
}
