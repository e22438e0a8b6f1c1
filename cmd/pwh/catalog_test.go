package main

import (
	"strings"
	"testing"

	"pwh/internal/errors"
)

func TestCatalogSubcommands(t *testing.T) {
	for _, name := range []string{"import", "list", "sizes", "show"} {
		found := false
		for _, sub := range catalogCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("catalog has no %q subcommand", name)
		}
	}
}

// Every suggested-fix command printed with an error must resolve to a real
// command, otherwise the error message sends users to a dead end.
func TestSuggestedFixCommandsResolve(t *testing.T) {
	for code, fixes := range errors.ErrorActions {
		for _, fix := range fixes {
			if fix.Type != errors.RunCommand {
				continue
			}
			args := strings.Fields(fix.Command)
			if len(args) == 0 || args[0] != "pwh" {
				t.Errorf("%s: suggested command %q does not invoke pwh", code, fix.Command)
				continue
			}
			if _, rest, err := rootCmd.Find(args[1:]); err != nil || len(rest) > 0 {
				t.Errorf("%s: suggested command %q does not resolve (err %v, unconsumed %v)",
					code, fix.Command, err, rest)
			}
		}
	}
}
