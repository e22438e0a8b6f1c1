// Package sprocket generates the dimensions and profile coordinates of chain
// sprockets. Given a chain pitch, a number of teeth and other optional
// parameters, it computes the derived radii, the tooth outline control
// points, the mounting bolt pattern, and the geometry program that realizes
// the part. The defaults suit a standard bicycle chain.
package sprocket

import (
	"math"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/units"
)

// Config holds every recognized sprocket parameter. Zero values for the
// optional bolt-circle and bore fields mean the feature is omitted.
type Config struct {
	// NumTeeth is the number of teeth on the perimeter of the sprocket
	NumTeeth int `json:"numTeeth"`
	// ChainPitch is the distance between the centers of two adjacent rollers
	ChainPitch float64 `json:"chainPitch"`
	// RollerDiameter is the size of the cylindrical rollers within the chain
	RollerDiameter float64 `json:"rollerDiameter"`
	// Clearance is the gap between the chain's rollers and the sprocket's teeth
	Clearance float64 `json:"clearance"`
	// Thickness of the sprocket
	Thickness float64 `json:"thickness"`
	// BoltCircleDiameter of the mounting bolt hole pattern, 0 for none
	BoltCircleDiameter float64 `json:"boltCircleDiameter"`
	// NumMountBolts is the number of bolt holes, 0 for none
	NumMountBolts int `json:"numMountBolts"`
	// MountBoltDiameter is the size of the mounting bolt holes
	MountBoltDiameter float64 `json:"mountBoltDiameter"`
	// BoreDiameter is the size of the central hole, 0 for none
	BoreDiameter float64 `json:"boreDiameter"`
}

// DefaultConfig returns parameters for a standard bicycle chain sprocket
func DefaultConfig() Config {
	return Config{
		ChainPitch:     (1.0 / 2.0) * units.Inch,
		RollerDiameter: (5.0 / 16.0) * units.Inch,
		Thickness:      0.084 * units.Inch,
	}
}

// Validate checks the configuration constraints
func (c Config) Validate() error {
	if c.NumTeeth < 3 {
		return errors.Newf(errors.InvalidArgument, "numTeeth %d must be at least 3", c.NumTeeth)
	}
	if c.ChainPitch <= 0 {
		return errors.Newf(errors.InvalidArgument, "chainPitch %g must be positive", c.ChainPitch)
	}
	if c.RollerDiameter <= 0 {
		return errors.Newf(errors.InvalidArgument, "rollerDiameter %g must be positive", c.RollerDiameter)
	}
	if c.RollerDiameter >= c.ChainPitch {
		return errors.Newf(errors.InvalidArgument,
			"rollerDiameter %g is too large for chainPitch %g", c.RollerDiameter, c.ChainPitch)
	}
	if c.Thickness <= 0 {
		return errors.Newf(errors.InvalidArgument, "thickness %g must be positive", c.Thickness)
	}
	if c.Clearance < 0 {
		return errors.Newf(errors.InvalidArgument, "clearance %g must not be negative", c.Clearance)
	}
	if c.NumMountBolts < 0 {
		return errors.Newf(errors.InvalidArgument, "numMountBolts %d must not be negative", c.NumMountBolts)
	}
	if c.BoltCircleDiameter < 0 || c.MountBoltDiameter < 0 || c.BoreDiameter < 0 {
		return errors.New(errors.InvalidArgument, "bolt circle, mount bolt and bore diameters must not be negative")
	}
	return nil
}

// Sprocket is a validated sprocket with its derived dimensions. Every field
// is a pure function of the Config; construction never mutates shared state
// so Sprockets may be built concurrently.
type Sprocket struct {
	Config
}

// New validates the configuration and returns the sprocket
func New(cfg Config, sink geometry.Sink) (*Sprocket, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sprocket{Config: cfg}
	geometry.Emit(sink, "sprocket", s.Program())
	return s, nil
}

// PitchRadius returns the radius of the circle formed by the center of the
// chain rollers: chainPitch / (2*sin(pi/numTeeth)).
func PitchRadius(numTeeth int, chainPitch float64) float64 {
	return chainPitch / (2 * math.Sin(math.Pi/float64(numTeeth)))
}

// PitchCircumference returns the circumference at the pitch radius
func PitchCircumference(numTeeth int, chainPitch float64) float64 {
	return 2 * math.Pi * PitchRadius(numTeeth, chainPitch)
}

// PitchRadius of this sprocket
func (s *Sprocket) PitchRadius() float64 {
	return PitchRadius(s.NumTeeth, s.ChainPitch)
}

// PitchCircumference of this sprocket
func (s *Sprocket) PitchCircumference() float64 {
	return PitchCircumference(s.NumTeeth, s.ChainPitch)
}

// FlatTeeth reports whether the rollers are small enough that a circular
// "flat" section bridges the roller slots. With larger rollers the teeth
// come to spiked tips instead.
func (s *Sprocket) FlatTeeth() bool {
	return s.toothOutline().Flat
}

// OuterRadius returns the distance from the sprocket center to the tip of
// the teeth.
func (s *Sprocket) OuterRadius() float64 {
	pitchRad := s.PitchRadius()
	if s.FlatTeeth() {
		return pitchRad + s.RollerDiameter/4
	}
	return math.Sqrt(pitchRad*pitchRad-(s.ChainPitch/2)*(s.ChainPitch/2)) +
		math.Sqrt((s.ChainPitch-s.RollerDiameter/2)*(s.ChainPitch-s.RollerDiameter/2)-
			(s.ChainPitch/2)*(s.ChainPitch/2))
}

// ToothOutline holds the control points of a single tooth profile. The
// profile is symmetric about the x-axis; the mirrored points complete it.
type ToothOutline struct {
	// Flat indicates a flat-topped tooth (outer arc) rather than a spiked one
	Flat bool `json:"flat"`
	// Start is the bottom of the roller arc
	Start geometry.Vector `json:"start"`
	// Tangent is where the roller arc transitions to the top half of the tooth
	Tangent geometry.Vector `json:"tangent"`
	// Outer is the intersection of the tooth arc and the outer radius arc.
	// Only meaningful for flat teeth.
	Outer geometry.Vector `json:"outer"`
	// Spike is the tooth tip when there is no flat section
	Spike geometry.Vector `json:"spike"`
	// RollerRadius is the roller arc radius (roller/2 plus clearance)
	RollerRadius float64 `json:"rollerRadius"`
	// OuterRadius of the flat section arc
	OuterRadius float64 `json:"outerRadius"`
}

// Tooth computes the single-tooth outline control points for this sprocket
func (s *Sprocket) Tooth() ToothOutline {
	return s.toothOutline()
}

func (s *Sprocket) toothOutline() ToothOutline {
	rollerRad := s.RollerDiameter/2 + s.Clearance
	toothAngle := 360 / float64(s.NumTeeth)
	halfToothRad := toothAngle / 2 * math.Pi / 180
	pitchRad := PitchRadius(s.NumTeeth, s.ChainPitch)
	outerRad := pitchRad + rollerRad/2

	intersect := outerIntersectAngle(pitchRad, outerRad, s.ChainPitch-rollerRad, halfToothRad)

	// Bottom of the roller arc
	start := geometry.XY(pitchRad-rollerRad, 0).RotateZ(toothAngle / 2)
	// Where the roller arc transitions to the top half of the tooth
	tangent := geometry.XY(0, -rollerRad).RotateZ(-toothAngle / 2).
		Add(geometry.XY(pitchRad, 0).RotateZ(toothAngle / 2))
	// The intersection point of the tooth and the outer radius
	outer := geometry.XY(outerRad*math.Cos(intersect), outerRad*math.Sin(intersect))
	// The location of the tip of the spike if there is no flat section
	spike := geometry.XY(
		math.Sqrt(pitchRad*pitchRad-(s.ChainPitch/2)*(s.ChainPitch/2))+
			math.Sqrt((s.ChainPitch-rollerRad)*(s.ChainPitch-rollerRad)-(s.ChainPitch/2)*(s.ChainPitch/2)),
		0)

	return ToothOutline{
		Flat:         outer.Y > 0,
		Start:        start,
		Tangent:      tangent,
		Outer:        outer,
		Spike:        spike,
		RollerRadius: rollerRad,
		OuterRadius:  outerRad,
	}
}

// outerIntersectAngle solves for the angle at which the tooth arc (radius
// toothArcRad centered on the roller tangent point) intersects the outer
// edge arc of radius outerRad. c and s below are the projections of the
// roller center at half a tooth of rotation.
func outerIntersectAngle(pitchRad, outerRad, toothArcRad, halfToothRad float64) float64 {
	c := pitchRad * math.Cos(halfToothRad)
	cSq := c * c
	sin := pitchRad * math.Sin(halfToothRad)
	r2 := outerRad * outerRad
	l2 := toothArcRad * toothArcRad

	radicand := r2*r2*r2*(-cSq) +
		2*r2*r2*l2*cSq +
		2*r2*r2*cSq*cSq +
		2*r2*r2*cSq*sin*sin -
		r2*l2*l2*cSq +
		2*r2*l2*cSq*cSq +
		2*r2*l2*cSq*sin*sin -
		r2*cSq*cSq*cSq -
		2*r2*cSq*cSq*sin*sin -
		r2*cSq*sin*sin*sin*sin

	numerator := outerRad*outerRad*outerRad*(-sin) +
		math.Sqrt(radicand) +
		outerRad*l2*sin -
		outerRad*cSq*sin -
		outerRad*sin*sin*sin

	denominator := 2 * (r2*cSq + r2*sin*sin)

	return math.Asin(numerator / denominator)
}

// BoltHoleCenters returns the centers of the mounting bolt holes. The list
// is empty when any of the bolt pattern parameters is zero; a zero is the
// "feature omitted" sentinel, not an error.
func (s *Sprocket) BoltHoleCenters() []geometry.Vector {
	centers := []geometry.Vector{}
	if s.BoltCircleDiameter == 0 || s.NumMountBolts == 0 || s.MountBoltDiameter == 0 {
		return centers
	}
	for i := 0; i < s.NumMountBolts; i++ {
		angle := 360 * float64(i) / float64(s.NumMountBolts)
		centers = append(centers, geometry.XY(s.BoltCircleDiameter/2, 0).RotateZ(angle))
	}
	return centers
}

// toothProgram draws a single tooth wire centered on the origin
func (s *Sprocket) toothProgram(b *geometry.Builder) {
	tooth := s.toothOutline()
	pitchRad := s.PitchRadius()

	b.MoveTo(tooth.Start)
	b.RadiusArc(tooth.Tangent, -tooth.RollerRadius)
	if tooth.Flat {
		b.RadiusArc(tooth.Outer, s.ChainPitch-tooth.RollerRadius)
		b.RadiusArc(tooth.Outer.FlipY(), tooth.OuterRadius)
		b.RadiusArc(tooth.Tangent.FlipY(), s.ChainPitch-tooth.RollerRadius)
	} else {
		b.RadiusArc(tooth.Spike, s.ChainPitch-tooth.RollerRadius)
		b.RadiusArc(tooth.Tangent.FlipY(), s.ChainPitch-tooth.RollerRadius)
	}
	b.RadiusArc(tooth.Start.FlipY(), -tooth.RollerRadius)
	b.ConsolidateWires()
	b.Translate(geometry.XY(-pitchRad, 0))
	b.Rotate(geometry.Vector{Z: 1}, 90)
}

// Program returns the kernel call sequence that realizes the sprocket
func (s *Sprocket) Program() *geometry.Program {
	b := geometry.NewBuilder("XY")
	b.PolarArray(s.PitchRadius(), 0, 360, s.NumTeeth)
	s.toothProgram(b)
	b.ConsolidateWires()
	// Align for sprocket rotation calculations
	b.Rotate(geometry.Vector{Z: 1}, 90)
	b.Extrude(s.Thickness)
	b.Translate(geometry.Vector{Z: -s.Thickness / 2})

	if s.FlatTeeth() {
		b.Chamfer(s.Thickness*0.25, s.Thickness*0.5)
	}

	for _, center := range s.BoltHoleCenters() {
		b.MoveTo(center)
		b.Circle(s.MountBoltDiameter / 2)
	}
	if len(s.BoltHoleCenters()) > 0 {
		b.CutThruAll()
	}

	if s.BoreDiameter != 0 {
		b.MoveTo(geometry.XY(0, 0))
		b.Circle(s.BoreDiameter / 2)
		b.CutThruAll()
	}

	return b.Program()
}
