// Package chain solves the path of a roller chain wrapped around a set of
// sprockets: entry and exit angles, segment lengths, roller coordinates and
// the rotation each sprocket needs for its teeth to mesh with the chain.
//
// The chain is solved perfectly tight. As it wraps back around to the first
// link it will either overlap or gap that link; callers control this by
// moving the sprocket centers until the length is near a whole number of
// links.
package chain

import (
	"math"
	"strconv"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/sprocket"
	"pwh/internal/units"
)

// chainAngles tuple indices for sprocket entry and exit angles
const (
	entry = 0
	exit  = 1
)

// Config describes the sprocket layout and chain hardware
type Config struct {
	// SpktTeeth is the number of teeth on each sprocket the chain wraps
	SpktTeeth []int `json:"spktTeeth"`
	// SpktLocations are the sprocket center locations
	SpktLocations []geometry.Vector `json:"spktLocations"`
	// PositiveChainWrap is the wrap direction per sprocket: true for counter
	// clockwise viewed from positive Z
	PositiveChainWrap []bool `json:"positiveChainWrap"`
	// ChainPitch is the distance between two adjacent pins in a single link
	ChainPitch float64 `json:"chainPitch"`
	// RollerDiameter is the size of the cylindrical rollers within the chain
	RollerDiameter float64 `json:"rollerDiameter"`
	// RollerLength is the distance between the inner link plates
	RollerLength float64 `json:"rollerLength"`
	// LinkPlateThickness is the thickness of both inner and outer link plates
	LinkPlateThickness float64 `json:"linkPlateThickness"`
	// SpktNormal is the direction of the sprocket axes, only used for two
	// sprocket configurations (three or more define their own plane)
	SpktNormal geometry.Vector `json:"spktNormal"`
}

// DefaultConfig returns parameters for a standard bicycle chain
func DefaultConfig() Config {
	return Config{
		ChainPitch:         (1.0 / 2.0) * units.Inch,
		RollerDiameter:     (5.0 / 16.0) * units.Inch,
		RollerLength:       (3.0 / 32.0) * units.Inch,
		LinkPlateThickness: 1.0 * units.MM,
		SpktNormal:         geometry.Vector{Z: 1},
	}
}

// Validate checks the configuration constraints
func (c Config) Validate() error {
	if len(c.SpktTeeth) != len(c.SpktLocations) || len(c.SpktTeeth) != len(c.PositiveChainWrap) {
		return errors.New(errors.InvalidArgument,
			"length of spktTeeth, spktLocations, positiveChainWrap not equal")
	}
	if len(c.SpktTeeth) < 2 {
		return errors.New(errors.InvalidArgument, "at least two sprockets are required")
	}
	for _, teeth := range c.SpktTeeth {
		if teeth < 3 {
			return errors.Newf(errors.InvalidArgument, "sprocket teeth %d must be at least 3", teeth)
		}
	}
	if c.ChainPitch <= 0 {
		return errors.Newf(errors.InvalidArgument, "chainPitch %g must be positive", c.ChainPitch)
	}
	if c.RollerDiameter >= c.ChainPitch {
		return errors.Newf(errors.InvalidArgument,
			"rollerDiameter %g is too large for chainPitch %g", c.RollerDiameter, c.ChainPitch)
	}
	seen := make(map[geometry.Vector]bool)
	for _, loc := range c.SpktLocations {
		if seen[loc] {
			return errors.New(errors.InvalidArgument, "at least two sprockets are in the same location")
		}
		seen[loc] = true
	}
	return nil
}

// Chain is a solved chain path
type Chain struct {
	Config

	numSpkts int
	plane    geometry.Plane
	spktLocs []geometry.Vector // sprocket centers in chain-plane coordinates

	chainAngles     [][2]float64
	arcAngles       []float64
	segmentLengths  []float64
	segmentSums     []float64
	chainLength     float64
	numRollers      int
	rollerLocs      []geometry.Vector // roller centers in chain-plane coordinates
	initialRotation []float64

	// Gapped is set when the chain length is more than half a link from a
	// whole number of links, leaving a visible gap at the closing link
	Gapped bool
}

// New validates the configuration and solves the chain path
func New(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chain{Config: cfg, numSpkts: len(cfg.SpktTeeth)}

	xDir := cfg.SpktLocations[1].Sub(cfg.SpktLocations[0]).Normalized()
	normal := cfg.SpktNormal
	if c.numSpkts > 2 {
		normal = xDir.Cross(cfg.SpktLocations[2].Sub(cfg.SpktLocations[0]).Normalized())
	}
	c.plane = geometry.NewPlane(geometry.Vector{}, xDir, normal)

	c.spktLocs = make([]geometry.Vector, c.numSpkts)
	for i, loc := range cfg.SpktLocations {
		c.spktLocs[i] = c.plane.ToLocal(loc)
	}

	c.calcEntryExitAngles()
	c.calcSegmentLengths()
	c.calcRollerLocations()
	return c, nil
}

// PitchRadii returns the pitch radius of each sprocket
func (c *Chain) PitchRadii() []float64 {
	radii := make([]float64, c.numSpkts)
	for i, teeth := range c.SpktTeeth {
		radii[i] = sprocket.PitchRadius(teeth, c.ChainPitch)
	}
	return radii
}

// ChainLinks returns the length of the chain in links
func (c *Chain) ChainLinks() float64 {
	return c.chainLength / c.ChainPitch
}

// NumRollers returns the number of link rollers in the entire chain
func (c *Chain) NumRollers() int {
	return c.numRollers
}

// ChainAngles returns the chain entry and exit angles in degrees per sprocket
func (c *Chain) ChainAngles() [][2]float64 {
	return c.chainAngles
}

// SpktInitialRotation returns the angle in degrees to rotate each sprocket
// so its teeth align with the gaps in the chain
func (c *Chain) SpktInitialRotation() []float64 {
	return c.initialRotation
}

// ChainPlane returns the plane defined by the sprocket locations
func (c *Chain) ChainPlane() geometry.Plane {
	return c.plane
}

// RollerLocations returns the world coordinates of each roller center
func (c *Chain) RollerLocations() []geometry.Vector {
	world := make([]geometry.Vector, len(c.rollerLocs))
	for i, loc := range c.rollerLocs {
		world[i] = c.plane.FromLocal(loc)
	}
	return world
}

// spktSeparations returns the center distance from each sprocket to the next
func (c *Chain) spktSeparations() []float64 {
	sep := make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		sep[s] = c.spktLocs[(s+1)%c.numSpkts].Sub(c.spktLocs[s]).Length()
	}
	return sep
}

// calcEntryExitAngles determines the angle the chain enters and departs each
// sprocket:
//  1. the base angle between adjacent sprocket centers
//  2. the extra angle from different sized sprockets: asin((Rn±Rn+1)/separation)
//  3. the wrap directions of the pair pick the sign
func (c *Chain) calcEntryExitAngles() {
	sep := c.spktSeparations()
	radii := c.PitchRadii()

	baseAngles := make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		next := (s + 1) % c.numSpkts
		baseAngles[s] = 90 + degrees(math.Atan2(
			c.spktLocs[s].Y-c.spktLocs[next].Y,
			c.spktLocs[s].X-c.spktLocs[next].X,
		))
	}

	exitAngles := make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		next := (s + 1) % c.numSpkts
		switch {
		case c.PositiveChainWrap[s] && c.PositiveChainWrap[next]:
			exitAngles[s] = baseAngles[s] - 90 + degrees(math.Asin((radii[s]-radii[next])/sep[s]))
		case c.PositiveChainWrap[s] && !c.PositiveChainWrap[next]:
			exitAngles[s] = baseAngles[s] - 90 + degrees(math.Asin((radii[s]+radii[next])/sep[s]))
		case !c.PositiveChainWrap[s] && c.PositiveChainWrap[next]:
			exitAngles[s] = baseAngles[s] + 90 - degrees(math.Asin((radii[s]+radii[next])/sep[s]))
		default:
			exitAngles[s] = baseAngles[s] + 90 - degrees(math.Asin((radii[s]-radii[next])/sep[s]))
		}
	}

	// The entry angle of a sprocket is the exit angle of the previous
	// sprocket, flipped when the wrap direction changes
	c.chainAngles = make([][2]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		prev := ((s-1)%c.numSpkts + c.numSpkts) % c.numSpkts
		entryAngle := exitAngles[prev]
		if c.PositiveChainWrap[s] != c.PositiveChainWrap[prev] {
			entryAngle += 180
		}
		c.chainAngles[s] = [2]float64{entryAngle, exitAngles[s]}
	}
}

// calcSegmentLengths determines the length of the chain between and in
// contact with the sprockets
func (c *Chain) calcSegmentLengths() {
	sep := c.spktSeparations()
	radii := c.PitchRadii()

	// Straight spans between sprocket pairs
	lineLengths := make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		next := (s + 1) % c.numSpkts
		if c.PositiveChainWrap[s] == c.PositiveChainWrap[next] {
			lineLengths[s] = math.Sqrt(sep[s]*sep[s] - (radii[s]-radii[next])*(radii[s]-radii[next]))
		} else {
			lineLengths[s] = math.Sqrt(sep[s]*sep[s] - (radii[s]+radii[next])*(radii[s]+radii[next]))
		}
	}

	// Arcs where the chain is in contact with each sprocket
	c.arcAngles = make([]float64, c.numSpkts)
	arcLengths := make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		if c.PositiveChainWrap[s] {
			c.arcAngles[s] = math.Mod(c.chainAngles[s][exit]-c.chainAngles[s][entry]+360, 360)
		} else {
			c.arcAngles[s] = math.Mod(c.chainAngles[s][entry]-c.chainAngles[s][exit]+360, 360)
		}
		arcLengths[s] = math.Abs(c.arcAngles[s] * 2 * math.Pi * radii[s] / 360)
	}

	c.segmentLengths = interleave(arcLengths, lineLengths)
	c.segmentSums = mixSums(arcLengths, lineLengths)
	c.chainLength = c.segmentSums[len(c.segmentSums)-1]

	links := c.chainLength / c.ChainPitch
	// The user needs to reposition the sprockets to achieve a near integer
	// number of links
	c.Gapped = links-math.Floor(links) > 0.5

	// Round down to whole rollers - should be close to an integer to avoid
	// gaps in the chain and positioning errors
	c.numRollers = int(math.Floor(c.chainLength / c.ChainPitch))
}

// calcRollerLocations walks each roller along the segments and records its
// plane-local location plus the rotation needed to mesh each sprocket
func (c *Chain) calcRollerLocations() {
	radii := c.PitchRadii()

	// The 2D points where the chain enters and exits the sprockets
	entryExit := make([][2]geometry.Vector, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		entryExit[s] = [2]geometry.Vector{
			c.spktLocs[s].Add(geometry.XY(0, radii[s]).RotateZ(c.chainAngles[s][entry])),
			c.spktLocs[s].Add(geometry.XY(0, radii[s]).RotateZ(c.chainAngles[s][exit])),
		}
	}

	c.rollerLocs = c.rollerLocs[:0]
	var rollerAnglesPerSpkt [][2]float64 // (sprocket index, angle)
	for i := 0; i < c.numRollers; i++ {
		distance := math.Mod(float64(i)*c.ChainPitch, c.chainLength)
		segment := findSegment(distance, c.segmentSums)
		spkt := segment / 2
		alongSegment := 1 - (c.segmentSums[segment]-distance)/c.segmentLengths[segment]

		if segment%2 == 0 { // on a sprocket
			var rollerAngle float64
			if c.PositiveChainWrap[spkt] {
				rollerAngle = c.chainAngles[spkt][entry] + c.arcAngles[spkt]*alongSegment
			} else {
				rollerAngle = c.chainAngles[spkt][entry] - c.arcAngles[spkt]*alongSegment
			}
			c.rollerLocs = append(c.rollerLocs,
				c.spktLocs[spkt].Add(geometry.XY(0, radii[spkt]).RotateZ(rollerAngle)))
			rollerAnglesPerSpkt = append(rollerAnglesPerSpkt, [2]float64{float64(spkt), rollerAngle})
		} else { // between two sprockets
			next := (spkt + 1) % c.numSpkts
			c.rollerLocs = append(c.rollerLocs,
				entryExit[next][0].Sub(entryExit[spkt][1]).Scale(alongSegment).Add(entryExit[spkt][1]))
		}
	}

	// The first roller angle on each sprocket fixes its initial rotation:
	// half a tooth past that roller puts the teeth between the rollers
	c.initialRotation = make([]float64, c.numSpkts)
	for s := 0; s < c.numSpkts; s++ {
		for _, pair := range rollerAnglesPerSpkt {
			if int(pair[0]) == s {
				c.initialRotation[s] = pair[1] + 180/float64(c.SpktTeeth[s])
				break
			}
		}
	}
}

// Assembly builds the chain of alternating inner and outer links, placed and
// rotated at each roller location. Unnamed children keep the kernel's UUID
// naming; links are named link0..linkN.
func (c *Chain) Assembly() *geometry.Assembly {
	assembly := geometry.NewAssembly("chain_links")

	for i := 0; i < c.numRollers; i++ {
		next := c.rollerLocs[(i+1)%c.numRollers]
		// The bend in the chain at this roller
		bend := degrees(math.Atan2(next.Y-c.rollerLocs[i].Y, next.X-c.rollerLocs[i].X))

		link := MakeLink(c.ChainPitch, c.LinkPlateThickness, i%2 == 0, c.RollerLength, c.RollerDiameter)
		link.Instructions = append(link.Instructions, geometry.Instruction{
			Op:     geometry.OpRotate,
			Points: []geometry.Vector{{Z: 1}},
			Values: []float64{bend},
		})
		assembly.Add("link"+strconv.Itoa(i), geometry.At(c.plane.FromLocal(c.rollerLocs[i])), link)
	}
	return assembly
}

// Transmission builds the chain wrapped around the given sprockets, each
// rotated into mesh and translated to its configured center.
func (c *Chain) Transmission(spkts []*sprocket.Sprocket) (*geometry.Assembly, error) {
	if len(spkts) != c.numSpkts {
		return nil, errors.Newf(errors.InvalidArgument,
			"transmission requires %d sprockets, got %d", c.numSpkts, len(spkts))
	}

	transmission := geometry.NewAssembly("transmission")
	for i, spkt := range spkts {
		program := spkt.Program()
		program.Instructions = append(program.Instructions, geometry.Instruction{
			Op:     geometry.OpRotate,
			Points: []geometry.Vector{c.SpktNormal},
			Values: []float64{c.initialRotation[i]},
		})
		transmission.Add("spkt"+strconv.Itoa(i), geometry.At(c.SpktLocations[i]), program)
	}
	transmission.AddAssembly(geometry.At(geometry.Vector{}), c.Assembly())
	return transmission, nil
}

func degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// mixSums returns the running sum of two interleaved slices:
// mixSums([1,2,3,4],[3,4,1,2]) == [1,4,6,10,13,14,18,20]
func mixSums(a, b []float64) []float64 {
	sums := []float64{a[0], a[0] + b[0]}
	for i := 1; i < len(a); i++ {
		sums = append(sums, sums[len(sums)-1]+a[i])
		sums = append(sums, sums[len(sums)-1]+b[i])
	}
	return sums
}

// interleave merges two equal sized slices alternating their elements:
// interleave([1,2,3,4],[3,4,1,2]) == [1,3,2,4,3,1,4,2]
func interleave(a, b []float64) []float64 {
	merged := make([]float64, 2*len(a))
	for i := range a {
		merged[2*i] = a[i]
		merged[2*i+1] = b[i]
	}
	return merged
}

// findSegment returns the first index in sums whose value exceeds distance
func findSegment(distance float64, sums []float64) int {
	for i, sum := range sums {
		if distance < sum {
			return i
		}
	}
	return len(sums) - 1
}
