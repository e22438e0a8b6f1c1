// Package drafting annotates manufacturing drawings with dimension lines:
// a line between two points carrying arrow heads at either end and a text
// label at the midpoint.
package drafting

import (
	"pwh/internal/errors"
	"pwh/internal/geometry"
)

// Draft holds the default annotation sizes, all in drawing units
type Draft struct {
	FontSize      float64 `json:"fontSize"`
	ArrowDiameter float64 `json:"arrowDiameter"`
	ArrowLength   float64 `json:"arrowLength"`
}

// NewDraft returns drafting defaults suitable for metric drawings
func NewDraft() Draft {
	return Draft{FontSize: 8, ArrowDiameter: 1, ArrowLength: 3}
}

// monospaceAdvance approximates the rendered width of one label character as
// a fraction of the font size. Real text metrics live in the kernel; this
// estimate only drives the fits-on-the-line check and gap placement.
const monospaceAdvance = 0.6

// DimensionLine is a solved annotation: where along the line (as fractions
// of its length) the arrows end and the label gap begins
type DimensionLine struct {
	Label  string          `json:"label"`
	Start  geometry.Vector `json:"start"`
	End    geometry.Vector `json:"end"`
	Length float64         `json:"length"`
	// Arrows records whether each end carries an arrow head
	Arrows [2]bool `json:"arrows"`
	// Controls are the fractional positions of the start arrow tail, label
	// gap start, label gap end and end arrow tail
	Controls [4]float64 `json:"controls"`
}

// DimensionLine lays out a dimension annotation from start to end. Arrow
// heads may be suppressed per end for dimensions running off the drawing.
func (d Draft) DimensionLine(label string, start, end geometry.Vector, arrows [2]bool) (*DimensionLine, error) {
	length := end.Sub(start).Length()
	if length <= 0 {
		return nil, errors.New(errors.InvalidArgument, "dimension start and end must differ")
	}
	if label == "" {
		return nil, errors.New(errors.InvalidArgument, "dimension label must not be empty")
	}

	labelLength := monospaceAdvance * d.FontSize * float64(len(label))
	controls := [4]float64{
		0,
		0.5 - (labelLength/2)/length,
		0.5 + (labelLength/2)/length,
		1,
	}
	if arrows[0] {
		controls[0] = d.ArrowLength / length
	}
	if arrows[1] {
		controls[3] = 1 - d.ArrowLength/length
	}
	if controls[0] > controls[1] || controls[2] > controls[3] {
		return nil, errors.Newf(errors.InvalidArgument,
			"label %q is too large for given dimension", label)
	}

	return &DimensionLine{
		Label:    label,
		Start:    start,
		End:      end,
		Length:   length,
		Arrows:   arrows,
		Controls: controls,
	}, nil
}

// PositionAt returns the point the given fraction of the way along the line
func (dl *DimensionLine) PositionAt(t float64) geometry.Vector {
	return dl.End.Sub(dl.Start).Scale(t).Add(dl.Start)
}

// arrowRadii are the loft sections of an arrow head from tip to tail: a
// near-zero tip, a waist at 40% and the full tail radius
func (d Draft) arrowRadii() [3]float64 {
	radius := d.ArrowDiameter / 2
	return [3]float64{0.0001, 0.4 * radius, radius}
}

// arrowProgram lofts an arrow head along the line between the tip and tail
// fractions, approximated as splined circles
func (d Draft) arrowProgram(dl *DimensionLine, tip, tail float64) *geometry.Program {
	radii := d.arrowRadii()
	positions := [3]geometry.Vector{
		dl.PositionAt(tip),
		dl.PositionAt((tip + tail) / 2),
		dl.PositionAt(tail),
	}

	b := geometry.NewBuilder("XY")
	for i, radius := range radii {
		if i > 0 {
			b.Union()
		}
		b.MoveTo(positions[i]).Circle(radius)
	}
	b.ConsolidateWires()
	return b.Program()
}

// segmentProgram draws the visible line between two fractional positions
func (d Draft) segmentProgram(dl *DimensionLine, from, to float64) *geometry.Program {
	b := geometry.NewBuilder("XY")
	b.MoveTo(dl.PositionAt(from)).LineTo(dl.PositionAt(to))
	return b.Program()
}

// Assembly composes the annotation: optional arrows, the two line segments
// flanking the label gap, and the label itself as a named child for the
// kernel's text renderer.
func (d Draft) Assembly(dl *DimensionLine) *geometry.Assembly {
	assembly := geometry.NewAssembly(dl.Label + "_dimension_line")

	if dl.Arrows[0] {
		assembly.Add("start_arrow", geometry.At(geometry.Vector{}), d.arrowProgram(dl, 0, dl.Controls[0]))
	}
	assembly.Add("start_line", geometry.At(geometry.Vector{}), d.segmentProgram(dl, dl.Controls[0], dl.Controls[1]))
	assembly.Add("label", geometry.At(dl.PositionAt(0.5)), labelProgram(dl.Label, d.FontSize))
	assembly.Add("end_line", geometry.At(geometry.Vector{}), d.segmentProgram(dl, dl.Controls[2], dl.Controls[3]))
	if dl.Arrows[1] {
		assembly.Add("end_arrow", geometry.At(geometry.Vector{}), d.arrowProgram(dl, 1, dl.Controls[3]))
	}
	return assembly
}

// labelProgram stands in for the kernel's text call: a workplane carrying
// the label extruded to a twentieth of the font size
func labelProgram(label string, fontSize float64) *geometry.Program {
	b := geometry.NewBuilder("XY")
	b.MoveTo(geometry.Vector{}).
		Rect(monospaceAdvance*fontSize*float64(len(label)), fontSize).
		Extrude(fontSize / 20)
	return b.Program()
}
