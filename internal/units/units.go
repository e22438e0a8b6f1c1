// Package units holds the measurement conventions shared by the part
// generators. All dimensions are millimeters unless a name says otherwise.
package units

import (
	"strconv"
	"strings"

	"pwh/internal/errors"
)

const (
	// MM is the base unit
	MM = 1.0
	// Inch in millimeters
	Inch = 25.4 * MM
)

// imperialNumberedSizes maps imperial "#" screw sizes to major diameters.
var imperialNumberedSizes = map[string]float64{
	"#0000": 0.0210 * Inch,
	"#000":  0.0340 * Inch,
	"#00":   0.0470 * Inch,
	"#0":    0.0600 * Inch,
	"#1":    0.0730 * Inch,
	"#2":    0.0860 * Inch,
	"#3":    0.0990 * Inch,
	"#4":    0.1120 * Inch,
	"#5":    0.1250 * Inch,
	"#6":    0.1380 * Inch,
	"#8":    0.1640 * Inch,
	"#10":   0.1900 * Inch,
	"#12":   0.2160 * Inch,
}

// ParseMetric converts a metric measurement to millimeters. Standards tables
// occasionally express a value as a quotient ("11.9/2"), so a single division
// is accepted; anything else must be a plain decimal.
func ParseMetric(measure string) (float64, error) {
	measure = strings.TrimSpace(measure)
	if measure == "" {
		return 0, errors.New(errors.InvalidArgument, "empty metric measurement")
	}

	if num, den, ok := strings.Cut(measure, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid measurement", measure)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid measurement", measure)
		}
		return n / d, nil
	}

	value, err := strconv.ParseFloat(measure, 64)
	if err != nil {
		return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid measurement", measure)
	}
	return value, nil
}

// ParseImperial converts an imperial measurement, possibly a fraction
// ("5/16") or a mixed number ("1 1/2"), to millimeters.
func ParseImperial(measure string) (float64, error) {
	fields := strings.Fields(measure)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid measurement", measure)
	}

	var total float64
	for _, field := range fields {
		part, err := ParseMetric(field) // same decimal-or-quotient grammar
		if err != nil {
			return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid measurement", measure)
		}
		total += part
	}
	return total * Inch, nil
}

// DecodeMetricSize extracts the major diameter and thread pitch (both in
// millimeters) from a metric size such as "M6-1" or "M8-1.25".
func DecodeMetricSize(size string) (major, pitch float64, err error) {
	if !strings.HasPrefix(size, "M") {
		return 0, 0, errors.Newf(errors.SizeNotFound, "metric size %q must start with M", size)
	}
	diameter, pitchStr, ok := strings.Cut(size[1:], "-")
	if !ok {
		return 0, 0, errors.Newf(errors.SizeNotFound, "metric size %q must be M{diameter}-{pitch}", size)
	}

	major, err = strconv.ParseFloat(diameter, 64)
	if err != nil || major <= 0 {
		return 0, 0, errors.Newf(errors.SizeNotFound, "invalid diameter in %q", size)
	}
	pitch, err = strconv.ParseFloat(pitchStr, 64)
	if err != nil || pitch <= 0 {
		return 0, 0, errors.Newf(errors.SizeNotFound, "invalid pitch in %q", size)
	}
	return major, pitch, nil
}

// DecodeImperialSize extracts the major diameter and thread pitch (both in
// millimeters) from an imperial size such as "#8-32" or "5/16-18".
func DecodeImperialSize(size string) (major, pitch float64, err error) {
	diameter, tpi, ok := strings.Cut(size, "-")
	if !ok {
		return 0, 0, errors.Newf(errors.SizeNotFound, "imperial size %q must be {diameter}-{tpi}", size)
	}

	if strings.HasPrefix(diameter, "#") {
		major, ok = imperialNumberedSizes[diameter]
		if !ok {
			return 0, 0, errors.Newf(errors.SizeNotFound, "unknown numbered size %q", diameter)
		}
	} else {
		major, err = ParseImperial(diameter)
		if err != nil {
			return 0, 0, err
		}
	}

	threads, err := strconv.ParseFloat(tpi, 64)
	if err != nil || threads <= 0 {
		return 0, 0, errors.Newf(errors.SizeNotFound, "invalid threads-per-inch in %q", size)
	}
	return major, Inch / threads, nil
}
