// Package gridfinity generates weighted Gridfinity baseplates on the 42mm
// grid popularized by Zack Freedman. Each grid cell gets the standard socket
// profile cut into the top face and, unless disabled, magnet/bolt holes and
// tire weight pockets underneath.
package gridfinity

import (
	"math"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/units"
)

const (
	// BoxWidth is the Gridfinity cell pitch
	BoxWidth = 42 * units.MM
	// boxSubWidth is the x,y width of the socket profile cut from each cell
	boxSubWidth  = 42.71 * units.MM
	cornerRadius = 4 * units.MM
	// GridHeight is the overall baseplate height
	GridHeight = 5 * units.MM

	// Socket profile stack: bottom chamfer, straight wall, top chamfer
	baseChamferHeight = 0.985 / math.Sqrt2 * units.MM
	straightHeight    = 1.8 * units.MM
	topChamferHeight  = GridHeight - baseChamferHeight - straightHeight

	// Magnet/bolt hole pattern: four holes per cell, 26mm apart
	holeOffset           = 26.0 / 2 * units.MM
	boltHoleDiameter     = 3.5 * units.MM
	boltHoleHeight       = 2.5 * units.MM
	counterboreHeight    = 2.4 * units.MM
	counterboreDiameter  = 6.5 * units.MM
	countersinkChamferHt = 3.54 / math.Sqrt2 * units.MM

	// Tire weight pocket underneath each cell
	weightSquare     = 21.4 * units.MM
	weightHeight     = 5.0 * units.MM
	weightTabD       = 8.5 * units.MM
	weightTabSlotW   = (38.37 - 8.5) * units.MM
	weightTabHeight  = 2.0 * units.MM
	weightBaseExtraH = 7.4 * units.MM
)

// Config describes a baseplate
type Config struct {
	// XGridNumber and YGridNumber are the cell counts along each axis
	XGridNumber int `json:"xGridNumber"`
	YGridNumber int `json:"yGridNumber"`
	// DisableHoles omits the magnet/bolt holes, including the counterbore
	// and countersink
	DisableHoles bool `json:"disableHoles"`
	// DisableWeights omits the tire weight cutouts. The part keeps its full
	// thickness either way.
	DisableWeights bool `json:"disableWeights"`
}

// DefaultConfig returns a 3x3 weighted baseplate
func DefaultConfig() Config {
	return Config{XGridNumber: 3, YGridNumber: 3}
}

// Validate checks the configuration constraints
func (c Config) Validate() error {
	if c.XGridNumber < 1 {
		return errors.Newf(errors.InvalidArgument, "xGridNumber %d must be at least 1", c.XGridNumber)
	}
	if c.YGridNumber < 1 {
		return errors.Newf(errors.InvalidArgument, "yGridNumber %d must be at least 1", c.YGridNumber)
	}
	return nil
}

// Grid is a solved baseplate
type Grid struct {
	Config
}

// New validates the configuration and returns the baseplate generator
func New(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Grid{Config: cfg}, nil
}

// ChamferHeights returns the socket profile heights from the cell floor up:
// bottom chamfer, straight wall, top chamfer
func ChamferHeights() (bottom, straight, top float64) {
	return baseChamferHeight, straightHeight, topChamferHeight
}

// CellCenters returns the center of every grid cell. The first cell is at
// the origin and the grid extends in +x and +y.
func (g *Grid) CellCenters() []geometry.Vector {
	centers := make([]geometry.Vector, 0, g.XGridNumber*g.YGridNumber)
	for x := 0; x < g.XGridNumber; x++ {
		for y := 0; y < g.YGridNumber; y++ {
			centers = append(centers, geometry.XY(float64(x)*BoxWidth, float64(y)*BoxWidth))
		}
	}
	return centers
}

// HoleCenters returns the magnet/bolt hole locations, four per cell offset
// 13mm from the cell center along both axes
func (g *Grid) HoleCenters() []geometry.Vector {
	holes := make([]geometry.Vector, 0, 4*g.XGridNumber*g.YGridNumber)
	for _, cell := range g.CellCenters() {
		for _, i := range []float64{1, -1} {
			for _, j := range []float64{1, -1} {
				holes = append(holes, cell.Add(geometry.XY(holeOffset*i, holeOffset*j)))
			}
		}
	}
	return holes
}

// center returns the midpoint of the whole plate
func (g *Grid) center() geometry.Vector {
	return geometry.XY(
		BoxWidth*float64(g.XGridNumber-1)/2,
		BoxWidth*float64(g.YGridNumber-1)/2,
	)
}

// FilenameSuffix names the generated variant the way the print files are
// labelled: nothing for the full plate, then "_noholes", "_noweight" or both
func (g *Grid) FilenameSuffix() string {
	suffix := ""
	if g.DisableHoles {
		suffix += "_noholes"
	}
	if g.DisableWeights {
		suffix += "_noweight"
	}
	return suffix
}

// socketTool cuts one cell's socket profile: a tapered top chamfer, straight
// walls and a tapered bottom chamfer, flipped to cut downward from the top
// face
func socketTool(b *geometry.Builder, at geometry.Vector) {
	b.MoveTo(at).
		Rect(boxSubWidth, boxSubWidth).
		Fillet(cornerRadius).
		Extrude(topChamferHeight * math.Sqrt2).
		Extrude(straightHeight).
		Extrude(baseChamferHeight * math.Sqrt2).
		Rotate(geometry.Vector{X: 1}, 180).
		Translate(geometry.Vector{Z: GridHeight})
}

// Program builds the baseplate: the plate body minus the socket grid, on top
// of the extra-height weighted base with its holes and weight pockets
func (g *Grid) Program() *geometry.Program {
	center := g.center()
	b := geometry.NewBuilder("XY")

	// Upper plate with the socket grid cut from the top face
	b.MoveTo(center).
		Rect(float64(g.XGridNumber)*BoxWidth, float64(g.YGridNumber)*BoxWidth).
		Fillet(cornerRadius).
		Extrude(GridHeight)
	for _, cell := range g.CellCenters() {
		b.Cut()
		socketTool(b, cell)
	}

	// Lower weighted base
	b.Union().
		MoveTo(center.Add(geometry.Vector{Z: -weightBaseExtraH})).
		Rect(float64(g.XGridNumber)*BoxWidth, float64(g.YGridNumber)*BoxWidth).
		Fillet(cornerRadius).
		Extrude(weightBaseExtraH)

	if !g.DisableHoles {
		for _, hole := range g.HoleCenters() {
			b.Cut().
				MoveTo(hole).
				Circle(boltHoleDiameter / 2).
				Extrude(-boltHoleHeight - counterboreHeight)
			b.Cut().
				MoveTo(hole).
				Circle(counterboreDiameter / 2).
				Extrude(-counterboreHeight)
			b.Cut().
				MoveTo(hole.Add(geometry.Vector{Z: -weightBaseExtraH})).
				Circle(boltHoleDiameter / 2).
				Extrude(countersinkChamferHt * math.Sqrt2).
				Chamfer(countersinkChamferHt, countersinkChamferHt)
		}
	}

	if !g.DisableWeights {
		for _, cell := range g.CellCenters() {
			base := cell.Add(geometry.Vector{Z: -weightBaseExtraH})
			// Cross shaped tab slots then the square weight pocket. The slots
			// are drawn at the origin so the rotation happens about their
			// own center, then moved into place.
			for _, angle := range []float64{0, 90} {
				b.Cut().
					MoveTo(geometry.Vector{}).
					Rect(weightTabSlotW+weightTabD, weightTabD).
					Fillet(weightTabD / 2).
					Extrude(weightTabHeight).
					Rotate(geometry.Vector{Z: 1}, angle).
					Translate(base)
			}
			b.Cut().
				MoveTo(base).
				Rect(weightSquare, weightSquare).
				Extrude(weightHeight)
		}
	}

	return b.Program()
}
