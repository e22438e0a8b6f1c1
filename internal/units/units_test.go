package units

import (
	"math"
	"testing"

	"pwh/internal/errors"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"plain decimal", "6.6", 6.6, false},
		{"integer", "24", 24, false},
		{"quotient", "11.9/2", 5.95, false},
		{"padded", " 5.5 ", 5.5, false},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
		{"zero denominator", "5/0", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetric(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !almostEqual(got, tt.want) {
				t.Errorf("ParseMetric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseImperial(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"fraction", "5/16", (5.0 / 16.0) * Inch, false},
		{"decimal", "0.375", 0.375 * Inch, false},
		{"mixed number", "1 1/2", 1.5 * Inch, false},
		{"empty", "", 0, true},
		{"three fields", "1 1 1/2", 0, true},
		{"garbage", "x/y", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImperial(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseImperial(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !almostEqual(got, tt.want) {
				t.Errorf("ParseImperial(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeMetricSize(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		wantMajor float64
		wantPitch float64
		wantErr   bool
	}{
		{"M6", "M6-1", 6, 1, false},
		{"M8 fine", "M8-1.25", 8, 1.25, false},
		{"missing prefix", "6-1", 0, 0, true},
		{"missing pitch", "M6", 0, 0, true},
		{"bad diameter", "Mx-1", 0, 0, true},
		{"negative pitch", "M6--1", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, pitch, err := DecodeMetricSize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeMetricSize(%q) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if tt.wantErr {
				if errors.CodeOf(err) != errors.SizeNotFound {
					t.Errorf("error code = %v, want SIZE_NOT_FOUND", errors.CodeOf(err))
				}
				return
			}
			if !almostEqual(major, tt.wantMajor) || !almostEqual(pitch, tt.wantPitch) {
				t.Errorf("DecodeMetricSize(%q) = (%v, %v), want (%v, %v)",
					tt.size, major, pitch, tt.wantMajor, tt.wantPitch)
			}
		})
	}
}

func TestDecodeImperialSize(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		wantMajor float64
		wantPitch float64
		wantErr   bool
	}{
		{"numbered", "#8-32", 0.164 * Inch, Inch / 32, false},
		{"fraction", "5/16-18", (5.0 / 16.0) * Inch, Inch / 18, false},
		{"unknown number", "#7-32", 0, 0, true},
		{"no tpi", "#8", 0, 0, true},
		{"zero tpi", "#8-0", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, pitch, err := DecodeImperialSize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeImperialSize(%q) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err == nil && (!almostEqual(major, tt.wantMajor) || !almostEqual(pitch, tt.wantPitch)) {
				t.Errorf("DecodeImperialSize(%q) = (%v, %v), want (%v, %v)",
					tt.size, major, pitch, tt.wantMajor, tt.wantPitch)
			}
		})
	}
}
