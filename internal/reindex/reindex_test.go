package reindex

import (
	"strings"
	"testing"

	"pwh/internal/errors"
)

func TestSingleRecordSection(t *testing.T) {
	result, err := Reindex(strings.NewReader("6\n1\n4033\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	if got := result.Records[0].String(); got != "M6-1-4033,6,1,4033" {
		t.Errorf("record = %q, want %q", got, "M6-1-4033,6,1,4033")
	}
}

func TestMultiRecordSection(t *testing.T) {
	// Two records sharing their leading dimension: the column-wise layout is
	// f0 f0 f1 f1 f2 f2
	input := "6\n6\n19\n22\n6\n7\n"
	result, err := Reindex(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	want := []string{"M6-19-6,6,19,6", "M6-22-7,6,22,7"}
	if len(result.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(result.Records), len(want))
	}
	for i, record := range result.Records {
		if record.String() != want[i] {
			t.Errorf("record %d = %q, want %q", i, record.String(), want[i])
		}
	}
}

func TestMultipleSections(t *testing.T) {
	input := "6\n1\n4033\n\n8\n1.25\n5544\n"
	result, err := Reindex(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Records[1].Size != "M8-1.25-5544" {
		t.Errorf("second record size = %q, want M8-1.25-5544", result.Records[1].Size)
	}
}

func TestMalformedSectionsAreSkipped(t *testing.T) {
	tests := []struct {
		name    string
		section string
		reason  string
	}{
		{"all identical", "5\n5\n5\n5\n", "record count undetectable"},
		{"non divisible", "6\n6\n19\n22\n7\n", "not a multiple"},
		{"too few fields", "6\n1\n", "at least 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A good section after the bad one must still come through
			input := tt.section + "\n8\n1.25\n5544\n"
			result, err := Reindex(strings.NewReader(input))
			if err != nil {
				t.Fatal(err)
			}
			if len(result.Failures) != 1 {
				t.Fatalf("got %d failures, want 1", len(result.Failures))
			}
			failure := result.Failures[0]
			if failure.Section != 0 {
				t.Errorf("failure section = %d, want 0", failure.Section)
			}
			if !strings.Contains(failure.Reason, tt.reason) {
				t.Errorf("failure reason %q does not mention %q", failure.Reason, tt.reason)
			}
			if errors.CodeOf(failure.Err()) != errors.MalformedTable {
				t.Errorf("failure code = %v, want MALFORMED_TABLE", errors.CodeOf(failure.Err()))
			}
			if len(result.Records) != 1 || result.Records[0].Size != "M8-1.25-5544" {
				t.Errorf("good section not recovered: %v", result.Records)
			}
		})
	}
}

func TestBlankLineHandling(t *testing.T) {
	// Leading, repeated and trailing blank lines produce no empty sections
	input := "\n\n6\n1\n4033\n\n\n\n8\n1.25\n5544\n\n"
	result, err := Reindex(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 2 || len(result.Failures) != 0 {
		t.Errorf("got %d records and %d failures, want 2 and 0",
			len(result.Records), len(result.Failures))
	}
}

func TestDetectPeriod(t *testing.T) {
	tests := []struct {
		name    string
		section []string
		want    int
	}{
		{"single record", []string{"6", "1", "4033"}, 1},
		{"two records", []string{"6", "6", "19", "22", "6", "7"}, 2},
		{"all identical", []string{"5", "5", "5"}, 0},
		{"single line", []string{"5"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectPeriod(tt.section); got != tt.want {
				t.Errorf("detectPeriod(%v) = %d, want %d", tt.section, got, tt.want)
			}
		})
	}
}
