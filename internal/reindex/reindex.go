// Package reindex normalizes semi-structured standards tables, as copied
// from datasheet PDFs, into comma separated records keyed by a synthesized
// size designator.
//
// The input is organized into blank-line-delimited sections. Within a
// section each field is listed column-wise: the values of the first field
// for every record in the section, then the values of the second field, and
// so on. Since sections group parts sharing their leading dimension, the
// record count is detected as the length of the run of identical lines at
// the start of the section. The section is then chunked by that count and
// transposed to reassemble one record per part.
package reindex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pwh/internal/errors"
)

// Record is one normalized table row: a synthesized M{f0}-{f1}-{f2} size
// designator followed by every field
type Record struct {
	Size   string   `json:"size"`
	Fields []string `json:"fields"`
}

// String renders the record the way the catalog csv expects it
func (r Record) String() string {
	return r.Size + "," + strings.Join(r.Fields, ",")
}

// SectionError describes a section that could not be normalized. Remaining
// sections are still processed.
type SectionError struct {
	// Section is the zero-based index of the failed section
	Section int `json:"section"`
	// Period is the detected record count, zero if detection failed
	Period int `json:"period"`
	// Length is the section's line count
	Length int    `json:"length"`
	Reason string `json:"reason"`
}

// Err converts the failure to a MalformedTable error
func (e SectionError) Err() error {
	return errors.Newf(errors.MalformedTable,
		"section %d (%d lines, period %d): %s", e.Section, e.Length, e.Period, e.Reason)
}

// Result holds the normalized records plus any per-section failures
type Result struct {
	Records  []Record       `json:"records"`
	Failures []SectionError `json:"failures,omitempty"`
}

// Reindex normalizes a raw table read from r. A malformed section is
// recorded as a failure and skipped; only a read error aborts the whole run.
func Reindex(r io.Reader) (*Result, error) {
	sections, err := splitSections(r)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "reading table", err)
	}

	result := &Result{Records: []Record{}}
	for index, section := range sections {
		records, serr := reindexSection(section)
		if serr != nil {
			serr.Section = index
			serr.Length = len(section)
			result.Failures = append(result.Failures, *serr)
			continue
		}
		result.Records = append(result.Records, records...)
	}
	return result, nil
}

// splitSections reads lines and groups them on blank lines, dropping empty
// sections the way repeated blank lines produce them
func splitSections(r io.Reader) ([][]string, error) {
	var sections [][]string
	var group []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			group = append(group, line)
		} else if len(group) > 0 {
			sections = append(sections, group)
			group = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(group) > 0 {
		sections = append(sections, group)
	}
	return sections, nil
}

// reindexSection detects the record count, chunks, transposes and formats
// one section
func reindexSection(section []string) ([]Record, *SectionError) {
	period := detectPeriod(section)
	if period == 0 {
		return nil, &SectionError{Reason: "every line is identical, record count undetectable"}
	}
	if len(section)%period != 0 {
		return nil, &SectionError{
			Period: period,
			Reason: fmt.Sprintf("line count %d is not a multiple of the record count", len(section)),
		}
	}

	fieldCount := len(section) / period
	if fieldCount < 3 {
		return nil, &SectionError{
			Period: period,
			Reason: fmt.Sprintf("records have %d fields, at least 3 needed for a size designator", fieldCount),
		}
	}

	// Chunk into field groups of one line per record, then transpose so
	// each record collects one value from every group
	records := make([]Record, period)
	for rec := 0; rec < period; rec++ {
		fields := make([]string, fieldCount)
		for f := 0; f < fieldCount; f++ {
			fields[f] = strings.TrimRight(section[f*period+rec], "\r\n")
		}
		records[rec] = Record{
			Size:   fmt.Sprintf("M%s-%s-%s", fields[0], fields[1], fields[2]),
			Fields: fields,
		}
	}
	return records, nil
}

// detectPeriod returns the length of the run of identical lines at the start
// of the section, which is the number of records. Zero means the whole
// section is one repeated value and the count is ambiguous.
func detectPeriod(section []string) int {
	for i := 1; i < len(section); i++ {
		if section[i] != section[0] {
			return i
		}
	}
	return 0
}
