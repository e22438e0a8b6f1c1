package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"passthrough", 1.5, 1.5},
		{"six places", 1.1234564, 1.123456},
		{"rounds up", 1.1234567, 1.123457},
		{"negative", -0.0000004, 0},
		{"integer", 42, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundFloat(tt.input); got != tt.want {
				t.Errorf("RoundFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"trims zeros", 1.5, "1.5"},
		{"integer", 42, "42"},
		{"six places", 0.1234567, "0.123457"},
		{"zero", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.input); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeterministicEncode(t *testing.T) {
	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	type payload struct {
		Name   string  `json:"name"`
		Points []point `json:"points"`
		Radius float64 `json:"radius,omitempty"`
	}

	v := payload{Name: "p", Points: []point{{X: 1.00000009, Y: 2}}, Radius: 5}
	a, err := DeterministicEncode(v)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeterministicEncode(v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs encoded differently")
	}
	if strings.Contains(string(a), "1.00000009") {
		t.Error("float not rounded before encoding")
	}
	if bytes.HasSuffix(a, []byte("\n")) {
		t.Error("trailing newline not stripped")
	}
}

func TestDeterministicEncodeEmptySlices(t *testing.T) {
	type payload struct {
		Holes []float64 `json:"holes"`
	}

	data, err := DeterministicEncode(payload{})
	if err != nil {
		t.Fatal(err)
	}
	// A zero-length hole pattern is data, not absence
	if !strings.Contains(string(data), `"holes":[]`) {
		t.Errorf("nil slice encoded as %s, want an empty array", data)
	}
}

func TestDeterministicEncodeOmitEmpty(t *testing.T) {
	type payload struct {
		Kept    string  `json:"kept"`
		Skipped float64 `json:"skipped,omitempty"`
	}

	data, err := DeterministicEncode(payload{Kept: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "skipped") {
		t.Errorf("omitempty zero field encoded: %s", data)
	}
}

func TestDeterministicEncodeOmitEmptyInt(t *testing.T) {
	type payload struct {
		Op    string `json:"op"`
		Count int    `json:"count,omitempty"`
	}

	data, err := DeterministicEncode(payload{Op: "circle"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "count") {
		t.Errorf("omitempty zero int encoded: %s", data)
	}

	data, err = DeterministicEncode(payload{Op: "polarArray", Count: 16})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"count":16`) {
		t.Errorf("non-zero int missing: %s", data)
	}
}

func TestDeterministicEncodeIndented(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	data, err := DeterministicEncodeIndented(payload{Name: "p"}, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("output not indented: %s", data)
	}
}
