package fastener

import (
	"math"

	"pwh/internal/geometry"
)

// Thread holds the parameters of an ISO 60 degree thread form. The radii
// follow the fundamental triangle height h, see
// https://en.wikipedia.org/wiki/ISO_metric_screw_thread
type Thread struct {
	// MajorDiameter is the nominal thread diameter
	MajorDiameter float64
	// Pitch is the axial distance between crests
	Pitch float64
	// Length is the threaded length
	Length float64
	// Angle is the full thread angle in degrees, 60 for ISO threads
	Angle float64
}

// NewThread returns an ISO thread of the given dimensions
func NewThread(majorDiameter, pitch, length float64) Thread {
	return Thread{MajorDiameter: majorDiameter, Pitch: pitch, Length: length, Angle: 60}
}

// HParameter is the height of the fundamental thread triangle
func (t Thread) HParameter() float64 {
	return (t.Pitch / 2) / math.Tan(t.Angle/2*math.Pi/180)
}

// MinRadius is the radius at the thread root
func (t Thread) MinRadius() float64 {
	return (t.MajorDiameter - 2*(5.0/8.0)*t.HParameter()) / 2
}

// ExternalRadius is the pitch radius of an external thread
func (t Thread) ExternalRadius() float64 {
	return t.MinRadius() - t.HParameter()/4
}

// InternalRadius is the pitch radius of an internal thread
func (t Thread) InternalRadius() float64 {
	return t.MinRadius() + 3*t.HParameter()/4
}

// ExternalCoreRadius is the radius of the solid core inside a hollow
// external thread, as used by set screws
func (t Thread) ExternalCoreRadius() float64 {
	return t.MajorDiameter/2 - 7*t.HParameter()/8
}

// InternalSocketRadius is the radius of the hole an internal thread object
// is placed into
func (t Thread) InternalSocketRadius() float64 {
	return t.MajorDiameter/2 + 3*t.HParameter()/4
}

// ExternalProfile returns the control points of one external thread form in
// the radius/axial plane, from the root at z=0 up one pitch. The flanks rise
// at half the thread angle; the crest is flattened to p/8 and the root
// rounded toward the pitch-radius centerline, per the ISO profile diagram.
// X is the radius, Z the axial position.
func (t Thread) ExternalProfile() []geometry.Vector {
	h := t.HParameter()
	minR := t.MinRadius()
	threadR := t.ExternalRadius()
	majorR := t.MajorDiameter / 2
	p := t.Pitch
	return []geometry.Vector{
		{X: threadR / 2},
		{X: minR - h/12},
		{X: minR, Z: p / 8},
		{X: majorR, Z: 7 * p / 16},
		{X: majorR, Z: 9 * p / 16},
		{X: minR, Z: 7 * p / 8},
		{X: minR - h/12, Z: p},
		{X: threadR / 2, Z: p},
	}
}

// InternalProfile returns the control points of one internal thread form in
// the radius/axial plane. The internal form is the external one with crest
// and root exchanged: the flat sits at the minor radius and the rounded
// crest reaches the major radius.
func (t Thread) InternalProfile() []geometry.Vector {
	minR := t.MinRadius()
	threadR := t.InternalRadius()
	majorR := t.MajorDiameter / 2
	p := t.Pitch
	return []geometry.Vector{
		{X: threadR / 2},
		{X: minR},
		{X: minR, Z: p / 8},
		{X: majorR, Z: 7 * p / 16},
		{X: majorR, Z: 9 * p / 16},
		{X: minR, Z: 7 * p / 8},
		{X: minR, Z: p},
		{X: threadR / 2, Z: p},
	}
}

// externalProgram renders the thread as a cylinder at the major diameter.
// The helical thread form itself belongs to the kernel; a plain cylinder is
// the documented simple mode and keeps programs small.
func (t Thread) externalProgram(b *geometry.Builder) {
	b.MoveTo(geometry.Vector{}).
		Circle(t.MajorDiameter / 2).
		Extrude(t.Length)
}

// Shank renders the threaded section below an unthreaded body, hanging under
// z=0 where the screw head sits. The body is adjacent to the head, the thread
// runs to the tip.
func (t Thread) Shank(b *geometry.Builder, bodyLength float64) {
	t.externalProgram(b)
	b.Translate(geometry.Vector{Z: -t.Length - bodyLength})
	if bodyLength > 0 {
		b.Union().
			MoveTo(geometry.Vector{}).
			Circle(t.MajorDiameter / 2).
			Extrude(bodyLength)
		b.Translate(geometry.Vector{Z: -bodyLength})
	}
}
