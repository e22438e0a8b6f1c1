// Package fastener generates standard threaded fasteners (socket head cap
// screws, button head cap screws, hex bolts, set screws, hex and square nuts)
// from size designators looked up in embedded standards tables.
//
// Sizes follow the usual conventions: metric "M{diameter}-{pitch}" such as
// M6-1, imperial "{major}-{tpi}" such as #8-32 or 1/4-20. All returned
// dimensions are millimeters.
package fastener

import (
	"math"

	"pwh/internal/errors"
	"pwh/internal/geometry"
)

// Kind identifies a screw style
type Kind string

const (
	SocketHeadCap Kind = "socketHeadCap"
	ButtonHeadCap Kind = "buttonHeadCap"
	HexBolt       Kind = "hexBolt"
	SetScrew      Kind = "setScrew"
)

// Fit selects a clearance hole class
type Fit string

const (
	Close  Fit = "Close"
	Medium Fit = "Medium"
	Loose  Fit = "Loose"
)

// Material selects a tap hole class: Soft covers aluminum, brass and
// plastics, Hard covers steel, stainless and iron
type Material string

const (
	Soft Material = "Soft"
	Hard Material = "Hard"
)

// Screw is a standard threaded fastener with all dimensions resolved
type Screw struct {
	Kind   Kind    `json:"kind"`
	Size   string  `json:"size"`
	Length float64 `json:"length"`

	ThreadDiameter float64 `json:"threadDiameter"`
	ThreadPitch    float64 `json:"threadPitch"`
	// ThreadLength and BodyLength split Length: screws longer than the
	// standard's maximum thread length get an unthreaded body under the head
	ThreadLength float64 `json:"threadLength"`
	BodyLength   float64 `json:"bodyLength"`

	// HeadDiameter and HeadHeight size round heads; HeadWidth is the
	// across-flats width of hex heads. SocketSize is the across-flats width
	// of the hex drive. Unused dimensions are zero.
	HeadDiameter float64 `json:"headDiameter,omitempty"`
	HeadHeight   float64 `json:"headHeight,omitempty"`
	HeadWidth    float64 `json:"headWidth,omitempty"`
	SocketSize   float64 `json:"socketSize,omitempty"`
	SocketDepth  float64 `json:"socketDepth,omitempty"`
}

// screwTables returns the metric and imperial parameter tables for a kind
func screwTables(kind Kind) (metric, imperial table, err error) {
	switch kind {
	case SocketHeadCap:
		return metricSocketHeadCap, imperialSocketHeadCap, nil
	case ButtonHeadCap:
		return metricButtonHeadCap, imperialButtonHeadCap, nil
	case HexBolt:
		return metricHex, imperialHex, nil
	case SetScrew:
		return metricSetScrew, imperialSetScrew, nil
	default:
		return nil, nil, errors.Newf(errors.TypeNotFound, "unknown screw kind %q", kind).
			WithDetails(map[string]interface{}{
				"validKinds": []Kind{SocketHeadCap, ButtonHeadCap, HexBolt, SetScrew},
			})
	}
}

// Sizes returns the standard sizes available for a screw kind
func Sizes(kind Kind) ([]string, error) {
	metric, imperial, err := screwTables(kind)
	if err != nil {
		return nil, err
	}
	return sizes(metric, imperial), nil
}

// NewScrew resolves a standard screw from its kind, size designator and
// overall length
func NewScrew(kind Kind, size string, length float64) (*Screw, error) {
	metric, imperial, err := screwTables(kind)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, errors.Newf(errors.InvalidArgument, "length %g must be positive", length)
	}

	dims, major, pitch, err := lookupSize(size, metric, imperial)
	if err != nil {
		return nil, err
	}

	s := &Screw{
		Kind:           kind,
		Size:           size,
		Length:         length,
		ThreadDiameter: major,
		ThreadPitch:    pitch,
		HeadDiameter:   dims["HeadDiameter"],
		HeadHeight:     dims["HeadHeight"],
		HeadWidth:      dims["Width"],
		SocketSize:     dims["SocketSize"],
		SocketDepth:    dims["SocketDepth"],
	}
	if kind == HexBolt {
		s.HeadHeight = dims["Height"]
	}

	maxThreadLength, ok := dims["MaxThreadLength"]
	if !ok || maxThreadLength > length {
		maxThreadLength = length
	}
	s.BodyLength = math.Max(0, length-maxThreadLength)
	s.ThreadLength = length - s.BodyLength
	return s, nil
}

// ClearanceHoleDiameter returns the drill diameter for a free-passage hole
func (s *Screw) ClearanceHoleDiameter(fit Fit) (float64, error) {
	return holeDiameter(s.Size, string(fit), metricClearanceHoles, imperialClearanceHoles)
}

// TapHoleDiameter returns the drill diameter for a hole to be threaded
func (s *Screw) TapHoleDiameter(material Material) (float64, error) {
	return holeDiameter(s.Size, string(material), metricTapHoles, imperialTapHoles)
}

// Thread returns the screw's thread parameters
func (s *Screw) Thread() Thread {
	return NewThread(s.ThreadDiameter, s.ThreadPitch, s.ThreadLength)
}

// HeadProgram renders the screw head sitting on the XY plane, or nil for
// headless kinds
func (s *Screw) HeadProgram() *geometry.Program {
	switch s.Kind {
	case SocketHeadCap:
		return s.socketHead()
	case ButtonHeadCap:
		return s.buttonHead()
	case HexBolt:
		return s.hexHead()
	default:
		return nil
	}
}

// Program renders the whole screw with the head (if any) above z=0 and the
// shank hanging below
func (s *Screw) Program() *geometry.Program {
	if s.Kind == SetScrew {
		return s.setScrewProgram()
	}
	b := geometry.NewBuilder("XY")
	b.Program().Instructions = append(b.Program().Instructions, s.HeadProgram().Instructions...)
	b.Union()
	s.Thread().Shank(b, s.BodyLength)
	return b.Program()
}

// socketHead is a cylinder with a hex socket cut into the top face
func (s *Screw) socketHead() *geometry.Program {
	b := geometry.NewBuilder("XY")
	b.MoveTo(geometry.Vector{}).
		Circle(s.HeadDiameter / 2).
		Extrude(s.HeadHeight)
	b.Cut().
		MoveTo(geometry.Vector{Z: s.HeadHeight - s.SocketDepth}).
		Polygon(6, s.SocketSize/math.Cos(math.Pi/6)).
		Extrude(s.SocketDepth)
	b.Fillet(s.HeadDiameter / 40)
	return b.Program()
}

// buttonHead is a spline dome revolved about the screw axis with a hex
// socket cut into it
func (s *Screw) buttonHead() *geometry.Program {
	b := geometry.NewBuilder("XZ")
	b.MoveTo(geometry.Vector{}).
		LineTo(geometry.XY(s.HeadDiameter/2, 0)).
		Spline(geometry.XY(0, s.HeadHeight)).
		Close().
		Revolve()
	b.Cut().
		MoveTo(geometry.Vector{Z: s.HeadHeight - s.SocketDepth}).
		Polygon(6, s.SocketSize/math.Cos(math.Pi/6)).
		Extrude(s.SocketDepth)
	b.Fillet(s.HeadDiameter / 40)
	return b.Program()
}

// hexHead is a chamfered hexagonal prism. The chamfer is made by rounding a
// containing cylinder and intersecting with the hex prism.
func (s *Screw) hexHead() *geometry.Program {
	// Distance across the tips of the hex
	hexDiameter := s.HeadWidth / math.Cos(math.Pi/6)
	chamfer := (hexDiameter - s.HeadWidth) / 2

	b := geometry.NewBuilder("XY")
	b.MoveTo(geometry.Vector{}).
		Circle(hexDiameter / 2).
		Extrude(s.HeadHeight).
		Chamfer(chamfer/2, chamfer)
	b.Intersect().
		MoveTo(geometry.Vector{}).
		Polygon(6, hexDiameter).
		Extrude(s.HeadHeight)
	return b.Program()
}

// setScrewProgram is a headless threaded cylinder with a hex socket in one
// end and a chamfer on the other
func (s *Screw) setScrewProgram() *geometry.Program {
	chamfer := s.ThreadDiameter / 4
	thread := NewThread(s.ThreadDiameter, s.ThreadPitch, s.Length-chamfer)
	core := thread.ExternalCoreRadius()

	b := geometry.NewBuilder("XY")
	b.MoveTo(geometry.Vector{}).
		Circle(core).
		Extrude(s.Length)
	b.Cut().
		MoveTo(geometry.Vector{}).
		Polygon(6, s.SocketSize/math.Cos(math.Pi/6)).
		Extrude(s.SocketDepth)
	b.Chamfer(chamfer, chamfer)
	b.Union().
		MoveTo(geometry.Vector{}).
		Circle(thread.MajorDiameter / 2).
		Extrude(thread.Length)
	return b.Program()
}
