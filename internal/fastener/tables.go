package fastener

import (
	"embed"
	"encoding/csv"
	"sort"

	"pwh/internal/errors"
	"pwh/internal/units"
)

//go:embed data/*.csv
var tableFS embed.FS

// table is a standards table: size designator to named dimensions in mm
type table map[string]map[string]float64

// readTable parses an embedded csv parameter file. The first column holds the
// size designator; remaining columns are dimensions in the given measurement
// system (plain mm for metric, possibly fractional inches for imperial).
func readTable(filename, measurementSystem string) table {
	f, err := tableFS.Open("data/" + filename)
	if err != nil {
		panic("missing standards table " + filename)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) < 2 {
		panic("malformed standards table " + filename)
	}

	header := rows[0]
	parsed := make(table, len(rows)-1)
	for _, row := range rows[1:] {
		dims := make(map[string]float64, len(row)-1)
		for col := 1; col < len(row); col++ {
			var value float64
			var perr error
			if measurementSystem == "imperial" {
				value, perr = units.ParseImperial(row[col])
			} else {
				value, perr = units.ParseMetric(row[col])
			}
			if perr != nil {
				panic("bad value in standards table " + filename + ": " + row[col])
			}
			dims[header[col]] = value
		}
		parsed[row[0]] = dims
	}
	return parsed
}

var (
	metricSocketHeadCap   = readTable("metric_socket_head_cap_screw_parameters.csv", "metric")
	imperialSocketHeadCap = readTable("imperial_socket_head_cap_screw_parameters.csv", "imperial")
	metricButtonHeadCap   = readTable("metric_button_head_cap_screw_parameters.csv", "metric")
	imperialButtonHeadCap = readTable("imperial_button_head_cap_screw_parameters.csv", "imperial")
	metricHex             = readTable("metric_hex_parameters.csv", "metric")
	imperialHex           = readTable("imperial_hex_parameters.csv", "imperial")
	metricSetScrew        = readTable("metric_set_screw_parameters.csv", "metric")
	imperialSetScrew      = readTable("imperial_set_screw_parameters.csv", "imperial")

	metricClearanceHoles   = readTable("metric_clearance_hole_sizes.csv", "metric")
	imperialClearanceHoles = readTable("imperial_clearance_hole_sizes.csv", "imperial")
	metricTapHoles         = readTable("metric_tap_hole_sizes.csv", "metric")
	imperialTapHoles       = readTable("imperial_tap_hole_sizes.csv", "imperial")
)

// EmbeddedSource is one embedded standards table, offered raw so the catalog
// can index it
type EmbeddedSource struct {
	// Family is the catalog family the table belongs to; metric and
	// imperial variants of a table share one family
	Family string
	// Name is the embedded file name, used as the catalog source key
	Name string
	// Raw is the csv file content
	Raw []byte
}

// EmbeddedSources returns every embedded standards table with its catalog family
func EmbeddedSources() []EmbeddedSource {
	files := []struct{ family, name string }{
		{string(SocketHeadCap), "metric_socket_head_cap_screw_parameters.csv"},
		{string(SocketHeadCap), "imperial_socket_head_cap_screw_parameters.csv"},
		{string(ButtonHeadCap), "metric_button_head_cap_screw_parameters.csv"},
		{string(ButtonHeadCap), "imperial_button_head_cap_screw_parameters.csv"},
		{"hex", "metric_hex_parameters.csv"},
		{"hex", "imperial_hex_parameters.csv"},
		{string(SetScrew), "metric_set_screw_parameters.csv"},
		{string(SetScrew), "imperial_set_screw_parameters.csv"},
		{"clearanceHole", "metric_clearance_hole_sizes.csv"},
		{"clearanceHole", "imperial_clearance_hole_sizes.csv"},
		{"tapHole", "metric_tap_hole_sizes.csv"},
		{"tapHole", "imperial_tap_hole_sizes.csv"},
	}
	sources := make([]EmbeddedSource, 0, len(files))
	for _, f := range files {
		raw, err := tableFS.ReadFile("data/" + f.name)
		if err != nil {
			panic("missing standards table " + f.name)
		}
		sources = append(sources, EmbeddedSource{Family: f.family, Name: f.name, Raw: raw})
	}
	return sources
}

// sizes returns the sorted size designators of a metric and imperial table pair
func sizes(metric, imperial table) []string {
	all := make([]string, 0, len(metric)+len(imperial))
	for size := range metric {
		all = append(all, size)
	}
	for size := range imperial {
		all = append(all, size)
	}
	sort.Strings(all)
	return all
}

// lookupSize finds a size designator in the metric or imperial table and
// decodes its thread diameter and pitch. Metric sizes follow the
// M{diameter}-{pitch} convention; imperial sizes are {major}-{tpi} where
// major is a number size, fraction or decimal inches.
func lookupSize(size string, metric, imperial table) (dims map[string]float64, major, pitch float64, err error) {
	if dims, ok := metric[size]; ok {
		major, pitch, err = units.DecodeMetricSize(size)
		return dims, major, pitch, err
	}
	if dims, ok := imperial[size]; ok {
		major, pitch, err = units.DecodeImperialSize(size)
		return dims, major, pitch, err
	}
	return nil, 0, 0, errors.Newf(errors.SizeNotFound,
		"size %q is not a standard size", size).
		WithDetails(map[string]interface{}{"validSizes": sizes(metric, imperial)})
}

// threadSize strips the pitch from a size designator: M6-1 becomes M6,
// 1/4-20 becomes 1/4. Clearance and tap hole tables are keyed this way since
// the hole size does not depend on the pitch.
func threadSize(size string) string {
	for i := 0; i < len(size); i++ {
		if size[i] == '-' {
			return size[:i]
		}
	}
	return size
}

// holeDiameter looks up a drill diameter by thread size and column (a fit for
// clearance holes, a material hardness for tap holes)
func holeDiameter(size, column string, metric, imperial table) (float64, error) {
	key := threadSize(size)
	tbl := imperial
	if len(size) > 0 && size[0] == 'M' {
		tbl = metric
	}
	dims, ok := tbl[key]
	if !ok {
		return 0, errors.Newf(errors.SizeNotFound, "no hole data for size %q", size)
	}
	diameter, ok := dims[column]
	if !ok {
		valid := make([]string, 0, len(dims))
		for name := range dims {
			valid = append(valid, name)
		}
		sort.Strings(valid)
		return 0, errors.Newf(errors.InvalidArgument, "%q is not a valid selection", column).
			WithDetails(map[string]interface{}{"valid": valid})
	}
	return diameter, nil
}
