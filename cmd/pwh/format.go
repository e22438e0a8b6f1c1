package main

import (
	"fmt"
	"os"

	"pwh/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// printResult renders a command result. JSON output is deterministic so
// identical parameters produce identical bytes; text output is produced by
// the caller-provided function.
func printResult(format OutputFormat, result interface{}, text func() string) error {
	switch format {
	case FormatJSON:
		data, err := output.DeterministicEncodeIndented(result, "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case FormatText, "":
		fmt.Println(text())
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// fail prints the error and exits non-zero
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// mm formats a dimension in millimeters for text output
func mm(f float64) string {
	return output.FormatFloat(f) + "mm"
}
