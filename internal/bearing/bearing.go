// Package bearing generates deep groove ball bearings from standard size
// designators. Sizes follow the M{bore}-{outer}-{width} convention, so a
// skateboard 608 bearing is M8-22-7. The roller geometry is derived from the
// race land diameters rather than tabulated: the balls must fit between the
// inner and outer race with room for the cage.
package bearing

import (
	"embed"
	"encoding/csv"
	"math"
	"sort"
	"strconv"

	"pwh/internal/errors"
	"pwh/internal/geometry"
)

//go:embed data/deep_groove_ball_bearing_parameters.csv
var tableFS embed.FS

// EmbeddedSource returns the embedded bearing parameter table so the catalog
// can index it. The csv keys rows by type then size.
func EmbeddedSource() (name string, raw []byte) {
	name = "deep_groove_ball_bearing_parameters.csv"
	raw, err := tableFS.ReadFile("data/" + name)
	if err != nil {
		panic("missing bearing standards table")
	}
	return name, raw
}

// dims are the tabulated dimensions of one bearing size: bore d, outer
// diameter D, width B, inner race land d1, outer race land D1, fillet r
type dims struct {
	d, D, B, d1, D1, r float64
}

// bearingData maps type -> size -> dimensions
var bearingData = readBearingTable()

func readBearingTable() map[string]map[string]dims {
	f, err := tableFS.Open("data/deep_groove_ball_bearing_parameters.csv")
	if err != nil {
		panic("missing bearing standards table")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) < 2 {
		panic("malformed bearing standards table")
	}

	data := make(map[string]map[string]dims)
	for _, row := range rows[1:] {
		values := make([]float64, 6)
		for i := range values {
			v, err := strconv.ParseFloat(row[i+2], 64)
			if err != nil {
				panic("bad value in bearing standards table: " + row[i+2])
			}
			values[i] = v
		}
		if data[row[0]] == nil {
			data[row[0]] = make(map[string]dims)
		}
		data[row[0]][row[1]] = dims{
			d: values[0], D: values[1], B: values[2],
			d1: values[3], D1: values[4], r: values[5],
		}
	}
	return data
}

// Types returns the available bearing type designators
func Types() []string {
	types := make([]string, 0, len(bearingData))
	for t := range bearingData {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Sizes returns the standard sizes for a bearing type
func Sizes(bearingType string) ([]string, error) {
	table, ok := bearingData[bearingType]
	if !ok {
		return nil, errors.Newf(errors.TypeNotFound, "bearing type %q is not valid", bearingType).
			WithDetails(map[string]interface{}{"validTypes": Types()})
	}
	all := make([]string, 0, len(table))
	for size := range table {
		all = append(all, size)
	}
	sort.Strings(all)
	return all, nil
}

// Bearing is a standard deep groove ball bearing with derived roller geometry
type Bearing struct {
	Size   string `json:"size"`
	Type   string `json:"type"`
	Capped bool   `json:"capped"`

	BoreDiameter  float64 `json:"boreDiameter"`
	OuterDiameter float64 `json:"outerDiameter"`
	Width         float64 `json:"width"`
	// InnerRaceDiameter and OuterRaceDiameter are the land diameters the
	// balls run between
	InnerRaceDiameter float64 `json:"innerRaceDiameter"`
	OuterRaceDiameter float64 `json:"outerRaceDiameter"`
	FilletRadius      float64 `json:"filletRadius"`

	RollerDiameter   float64 `json:"rollerDiameter"`
	RaceCenterRadius float64 `json:"raceCenterRadius"`
	RollerCount      int     `json:"rollerCount"`
}

// New resolves a standard bearing from its size and type designators.
// Capped bearings render sealing caps instead of the individual balls.
func New(size, bearingType string, capped bool) (*Bearing, error) {
	table, ok := bearingData[bearingType]
	if !ok {
		return nil, errors.Newf(errors.TypeNotFound, "bearing type %q is not valid", bearingType).
			WithDetails(map[string]interface{}{"validTypes": Types()})
	}
	dim, ok := table[size]
	if !ok {
		valid, _ := Sizes(bearingType)
		return nil, errors.Newf(errors.SizeNotFound, "bearing size %q is not valid", size).
			WithDetails(map[string]interface{}{"validSizes": valid})
	}

	b := &Bearing{
		Size:              size,
		Type:              bearingType,
		Capped:            capped,
		BoreDiameter:      dim.d,
		OuterDiameter:     dim.D,
		Width:             dim.B,
		InnerRaceDiameter: dim.d1,
		OuterRaceDiameter: dim.D1,
		FilletRadius:      dim.r,
	}
	b.RollerDiameter = 0.625 * (dim.D1 - dim.d1)
	b.RaceCenterRadius = (dim.D1 + dim.d1) / 4
	b.RollerCount = int(1.8 * math.Pi * b.RaceCenterRadius / b.RollerDiameter)
	return b, nil
}

// RollerLocations returns the ball centers, evenly spaced around the race
// center circle at half the bearing width
func (b *Bearing) RollerLocations() []geometry.Vector {
	locations := make([]geometry.Vector, b.RollerCount)
	for i := range locations {
		angle := 360 * float64(i) / float64(b.RollerCount)
		locations[i] = geometry.XY(b.RaceCenterRadius, 0).RotateZ(angle).Add(geometry.Vector{Z: b.Width / 2})
	}
	return locations
}

// InnerRaceProgram revolves the inner race ring section
func (b *Bearing) InnerRaceProgram() *geometry.Program {
	return raceProgram(b.BoreDiameter, b.InnerRaceDiameter, b.Width, b.FilletRadius)
}

// OuterRaceProgram revolves the outer race ring section
func (b *Bearing) OuterRaceProgram() *geometry.Program {
	return raceProgram(b.OuterRaceDiameter, b.OuterDiameter, b.Width, b.FilletRadius)
}

// raceProgram builds a rectangular ring section between the two diameters
// and revolves it about the bearing axis
func raceProgram(innerDiameter, outerDiameter, width, fillet float64) *geometry.Program {
	center := (innerDiameter + outerDiameter) / 4
	thickness := (outerDiameter - innerDiameter) / 2

	builder := geometry.NewBuilder("XZ")
	builder.MoveTo(geometry.XY(center, width/2)).
		Rect(thickness, width).
		Fillet(fillet).
		Revolve()
	return builder.Program()
}

// RollerProgram builds a single ball
func (b *Bearing) RollerProgram() *geometry.Program {
	builder := geometry.NewBuilder("XZ")
	builder.MoveTo(geometry.Vector{}).
		Circle(b.RollerDiameter / 2).
		Revolve()
	return builder.Program()
}

// CapProgram builds one sealing cap, a thin annular disc spanning the gap
// between the races
func (b *Bearing) CapProgram() *geometry.Program {
	builder := geometry.NewBuilder("XY")
	builder.MoveTo(geometry.Vector{Z: b.Width / 20}).
		Circle(b.OuterRaceDiameter / 2).
		Circle(b.InnerRaceDiameter / 2).
		Extrude(b.Width / 20)
	return builder.Program()
}

// Assembly builds the complete bearing: races plus either caps or balls
func (b *Bearing) Assembly() *geometry.Assembly {
	assembly := geometry.NewAssembly("bearing-" + b.Size)
	assembly.Add("outerRace", geometry.At(geometry.Vector{}), b.OuterRaceProgram())
	assembly.Add("innerRace", geometry.At(geometry.Vector{}), b.InnerRaceProgram())

	if b.Capped {
		assembly.Add("capBottom", geometry.At(geometry.Vector{}), b.CapProgram())
		top := b.CapProgram()
		top.Instructions = append(top.Instructions,
			geometry.Instruction{Op: geometry.OpRotate, Points: []geometry.Vector{{X: 1}}, Values: []float64{180}})
		assembly.Add("capTop", geometry.At(geometry.Vector{Z: b.Width}), top)
		return assembly
	}

	for _, location := range b.RollerLocations() {
		assembly.Add("", geometry.At(location), b.RollerProgram())
	}
	return assembly
}
