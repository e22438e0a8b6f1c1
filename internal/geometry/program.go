package geometry

// OpCode identifies a workplane operation understood by the external kernel.
type OpCode string

const (
	OpWorkplane        OpCode = "workplane"
	OpMoveTo           OpCode = "moveTo"
	OpLineTo           OpCode = "lineTo"
	OpRadiusArc        OpCode = "radiusArc"
	OpThreePointArc    OpCode = "threePointArc"
	OpSpline           OpCode = "spline"
	OpCircle           OpCode = "circle"
	OpRect             OpCode = "rect"
	OpPolygon          OpCode = "polygon"
	OpPolarArray       OpCode = "polarArray"
	OpMirrorX          OpCode = "mirrorX"
	OpMirrorY          OpCode = "mirrorY"
	OpConsolidateWires OpCode = "consolidateWires"
	OpClose            OpCode = "close"
	OpExtrude          OpCode = "extrude"
	OpRevolve          OpCode = "revolve"
	OpCutThruAll       OpCode = "cutThruAll"
	OpChamfer          OpCode = "chamfer"
	OpFillet           OpCode = "fillet"
	OpShell            OpCode = "shell"
	OpTranslate        OpCode = "translate"
	OpRotate           OpCode = "rotate"
	OpUnion            OpCode = "union"
	OpCut              OpCode = "cut"
	OpIntersect        OpCode = "intersect"
)

// Instruction is a single kernel call. Only the fields an operation needs
// are populated; unused fields are omitted from the encoding.
type Instruction struct {
	Op     OpCode   `json:"op"`
	Plane  string   `json:"plane,omitempty"`
	Points []Vector `json:"points,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Count  int      `json:"count,omitempty"`
}

// Program is the ordered sequence of kernel calls that realizes a part.
// A program is recomputed fresh on each generator invocation; identical
// parameters always produce an identical program.
type Program struct {
	Instructions []Instruction `json:"instructions"`
}

// Kernel realizes geometry programs. It is the opaque external collaborator:
// everything from boolean solids to STEP/DXF export lives behind it.
type Kernel interface {
	Realize(p *Program) error
}

// Builder accumulates instructions in kernel call order.
type Builder struct {
	program Program
}

// NewBuilder starts a program on the named workplane ("XY", "XZ", "YZ").
func NewBuilder(plane string) *Builder {
	b := &Builder{}
	b.emit(Instruction{Op: OpWorkplane, Plane: plane})
	return b
}

func (b *Builder) emit(inst Instruction) *Builder {
	b.program.Instructions = append(b.program.Instructions, inst)
	return b
}

// Program returns the accumulated program.
func (b *Builder) Program() *Program {
	return &b.program
}

// MoveTo moves the 2D pen to p without drawing
func (b *Builder) MoveTo(p Vector) *Builder {
	return b.emit(Instruction{Op: OpMoveTo, Points: []Vector{p}})
}

// LineTo draws a line from the pen to p
func (b *Builder) LineTo(p Vector) *Builder {
	return b.emit(Instruction{Op: OpLineTo, Points: []Vector{p}})
}

// RadiusArc draws an arc of the given signed radius from the pen to end
func (b *Builder) RadiusArc(end Vector, radius float64) *Builder {
	return b.emit(Instruction{Op: OpRadiusArc, Points: []Vector{end}, Values: []float64{radius}})
}

// ThreePointArc draws an arc through mid ending at end
func (b *Builder) ThreePointArc(mid, end Vector) *Builder {
	return b.emit(Instruction{Op: OpThreePointArc, Points: []Vector{mid, end}})
}

// Spline draws a spline through the given points
func (b *Builder) Spline(points ...Vector) *Builder {
	return b.emit(Instruction{Op: OpSpline, Points: points})
}

// Circle draws a circle of the given radius centered on the pen
func (b *Builder) Circle(radius float64) *Builder {
	return b.emit(Instruction{Op: OpCircle, Values: []float64{radius}})
}

// Rect draws a width x height rectangle centered on the pen
func (b *Builder) Rect(width, height float64) *Builder {
	return b.emit(Instruction{Op: OpRect, Values: []float64{width, height}})
}

// Polygon draws a regular polygon given its number of sides and the diameter
// of its circumscribed circle
func (b *Builder) Polygon(sides int, diameter float64) *Builder {
	return b.emit(Instruction{Op: OpPolygon, Count: sides, Values: []float64{diameter}})
}

// PolarArray repeats the pending feature count times around a circle of the
// given radius, starting at startAngle degrees and sweeping sweep degrees.
func (b *Builder) PolarArray(radius, startAngle, sweep float64, count int) *Builder {
	return b.emit(Instruction{Op: OpPolarArray, Count: count, Values: []float64{radius, startAngle, sweep}})
}

// MirrorX mirrors pending wires about the x-axis
func (b *Builder) MirrorX() *Builder {
	return b.emit(Instruction{Op: OpMirrorX})
}

// MirrorY mirrors pending wires about the y-axis
func (b *Builder) MirrorY() *Builder {
	return b.emit(Instruction{Op: OpMirrorY})
}

// ConsolidateWires joins pending edges into closed wires
func (b *Builder) ConsolidateWires() *Builder {
	return b.emit(Instruction{Op: OpConsolidateWires})
}

// Close closes the pending wire back to its start point
func (b *Builder) Close() *Builder {
	return b.emit(Instruction{Op: OpClose})
}

// Extrude extrudes pending wires by distance
func (b *Builder) Extrude(distance float64) *Builder {
	return b.emit(Instruction{Op: OpExtrude, Values: []float64{distance}})
}

// Revolve revolves pending wires about the y-axis
func (b *Builder) Revolve() *Builder {
	return b.emit(Instruction{Op: OpRevolve})
}

// CutThruAll cuts pending wires through the whole solid
func (b *Builder) CutThruAll() *Builder {
	return b.emit(Instruction{Op: OpCutThruAll})
}

// Chamfer chamfers the selected edges with the given leg lengths
func (b *Builder) Chamfer(length, length2 float64) *Builder {
	return b.emit(Instruction{Op: OpChamfer, Values: []float64{length, length2}})
}

// Fillet fillets the selected edges with the given radius
func (b *Builder) Fillet(radius float64) *Builder {
	return b.emit(Instruction{Op: OpFillet, Values: []float64{radius}})
}

// Translate moves the solid by v
func (b *Builder) Translate(v Vector) *Builder {
	return b.emit(Instruction{Op: OpTranslate, Points: []Vector{v}})
}

// Rotate rotates the solid by angle degrees about the axis through the origin
func (b *Builder) Rotate(axis Vector, angle float64) *Builder {
	return b.emit(Instruction{Op: OpRotate, Points: []Vector{axis}, Values: []float64{angle}})
}

// Union fuses the solid built after this instruction into the solid before it
func (b *Builder) Union() *Builder {
	return b.emit(Instruction{Op: OpUnion})
}

// Cut subtracts the solid built after this instruction from the solid before it
func (b *Builder) Cut() *Builder {
	return b.emit(Instruction{Op: OpCut})
}

// Intersect intersects the solid built after this instruction with the solid
// before it
func (b *Builder) Intersect() *Builder {
	return b.emit(Instruction{Op: OpIntersect})
}
