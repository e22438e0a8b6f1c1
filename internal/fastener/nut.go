package fastener

import (
	"math"

	"pwh/internal/errors"
	"pwh/internal/geometry"
)

// NutKind identifies a nut style
type NutKind string

const (
	HexNut    NutKind = "hex"
	SquareNut NutKind = "square"
)

// Nut is a standard threaded nut with all dimensions resolved. Hex and
// square nuts share the same across-flats widths and thicknesses.
type Nut struct {
	Kind NutKind `json:"kind"`
	Size string  `json:"size"`

	ThreadDiameter float64 `json:"threadDiameter"`
	ThreadPitch    float64 `json:"threadPitch"`
	// Width is the distance across the flats
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NutSizes returns the standard sizes available for nuts
func NutSizes() []string {
	return sizes(metricHex, imperialHex)
}

// NewNut resolves a standard nut from its kind and size designator
func NewNut(kind NutKind, size string) (*Nut, error) {
	if kind != HexNut && kind != SquareNut {
		return nil, errors.Newf(errors.TypeNotFound, "unknown nut kind %q", kind).
			WithDetails(map[string]interface{}{"validKinds": []NutKind{HexNut, SquareNut}})
	}

	dims, major, pitch, err := lookupSize(size, metricHex, imperialHex)
	if err != nil {
		return nil, err
	}
	return &Nut{
		Kind:           kind,
		Size:           size,
		ThreadDiameter: major,
		ThreadPitch:    pitch,
		Width:          dims["Width"],
		Height:         dims["NutHeight"],
	}, nil
}

// Thread returns the nut's internal thread parameters
func (n *Nut) Thread() Thread {
	return NewThread(n.ThreadDiameter, n.ThreadPitch, n.Height)
}

// Program renders the nut body with the thread hole cut through
func (n *Nut) Program() *geometry.Program {
	socketRadius := n.Thread().InternalSocketRadius()

	b := geometry.NewBuilder("XY")
	switch n.Kind {
	case SquareNut:
		b.MoveTo(geometry.Vector{}).
			Rect(n.Width, n.Width).
			Extrude(n.Height)
	default:
		hexDiameter := n.Width / math.Cos(math.Pi/6)
		chamfer := (hexDiameter - n.Width) / 2
		b.MoveTo(geometry.Vector{}).
			Circle(hexDiameter / 2).
			Extrude(n.Height).
			Chamfer(chamfer/2, chamfer)
		b.Intersect().
			MoveTo(geometry.Vector{}).
			Polygon(6, hexDiameter).
			Extrude(n.Height)
	}
	b.Cut().
		MoveTo(geometry.Vector{}).
		Circle(socketRadius).
		Extrude(n.Height)
	return b.Program()
}
