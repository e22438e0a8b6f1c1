package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := Newf(SizeNotFound, "size %q is not valid", "M99")
	if !strings.Contains(err.Error(), "[SIZE_NOT_FOUND]") {
		t.Errorf("Error() = %q, want the code in brackets", err.Error())
	}
	if !strings.Contains(err.Error(), `"M99"`) {
		t.Errorf("Error() = %q, want the formatted message", err.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(CatalogUnavailable, "catalog open failed", cause)

	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Error() = %q, want the cause included", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"warehouse error", New(SpecInvalid, "x"), SpecInvalid},
		{"plain error", stderrors.New("x"), InternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithDetails(t *testing.T) {
	err := New(SizeNotFound, "x").WithDetails(map[string]interface{}{
		"validSizes": []string{"M6-1"},
	})
	details, ok := err.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("details type = %T", err.Details)
	}
	if _, ok := details["validSizes"]; !ok {
		t.Error("details lost")
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(SizeNotFound, "x")
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("size errors carry no suggested fixes")
	}
	if err.SuggestedFixes[0].Command == "" {
		t.Error("suggested fix names no command")
	}

	// Suggested commands carry no flags; the CLI tests verify each one
	// resolves to a registered command
	if fixes := GetSuggestedFixes(TypeNotFound); len(fixes) == 0 || fixes[0].Command != "pwh catalog list" {
		t.Errorf("TYPE_NOT_FOUND fixes = %v, want pwh catalog list", fixes)
	}
	if fixes := GetSuggestedFixes(CatalogUnavailable); len(fixes) == 0 || fixes[0].Command != "pwh catalog import" {
		t.Errorf("CATALOG_UNAVAILABLE fixes = %v, want pwh catalog import", fixes)
	}

	if fixes := GetSuggestedFixes(InvalidArgument); fixes != nil {
		t.Errorf("unexpected fixes for INVALID_ARGUMENT: %v", fixes)
	}
}
