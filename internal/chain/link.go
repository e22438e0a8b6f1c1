package chain

import (
	"math"

	"pwh/internal/geometry"
	"pwh/internal/units"
)

// LinkPlateProfile holds the control points of the dog boned link plate
// outline. All dimensions scale linearly with the chain pitch relative to a
// standard 0.5 inch bicycle chain.
type LinkPlateProfile struct {
	// Neck is the half height of the plate at its narrow middle
	Neck float64
	// PlateRadius is the radius of the circular ends around each pin
	PlateRadius float64
	// NeckRadius is the radius of the concave arc joining end to neck
	NeckRadius float64
	// TangentPoint is where the end circle meets the neck arc, in the
	// quadrant x > 0, y > 0 relative to the plate center
	TangentPoint geometry.Vector
}

// PlateProfile computes the link plate outline control points for a chain of
// the given pitch. The neck radius follows from requiring the neck arc to be
// tangent to both the end circle and the flat of the neck.
func PlateProfile(chainPitch float64) LinkPlateProfile {
	plateScale := chainPitch / (0.5 * units.Inch)
	neck := plateScale * 4.5 * units.MM / 2
	plateRadius := plateScale * 8.5 * units.MM / 2
	neckRadius := (math.Pow(chainPitch/2, 2) + neck*neck - plateRadius*plateRadius) /
		(2*plateRadius - 2*neck)

	plateCenter := geometry.XY(chainPitch/2, 0)
	intersectionAngle := degrees(math.Atan2(neck+neckRadius, chainPitch/2))
	tangent := geometry.XY(plateRadius, 0).RotateZ(180 - intersectionAngle).Add(plateCenter)

	return LinkPlateProfile{
		Neck:         neck,
		PlateRadius:  plateRadius,
		NeckRadius:   neckRadius,
		TangentPoint: tangent,
	}
}

// linkPlate draws one dog boned plate centered on the origin and extrudes it
// symmetrically to the given thickness. Outer plates get a stub pin on each
// end standing in for the press fit roller pins.
func linkPlate(b *geometry.Builder, chainPitch, thickness float64, inner bool) {
	profile := PlateProfile(chainPitch)

	// One quadrant of the outline, mirrored twice to close it
	b.MoveTo(geometry.XY(chainPitch/2+profile.PlateRadius, 0)).
		ThreePointArc(geometry.XY(chainPitch/2, profile.PlateRadius), profile.TangentPoint).
		RadiusArc(geometry.XY(0, profile.Neck), profile.NeckRadius).
		MirrorX().
		MirrorY().
		Extrude(thickness)

	if !inner {
		for _, x := range []float64{-chainPitch / 2, chainPitch / 2} {
			b.MoveTo(geometry.XY(x, 0)).
				Circle(profile.PlateRadius / 4).
				Extrude(thickness / 3)
		}
	}
}

// roller draws a single chain roller centered on the origin
func roller(b *geometry.Builder, rollerDiameter, rollerLength float64) {
	b.MoveTo(geometry.Vector{}).
		Circle(rollerDiameter / 2).
		Extrude(rollerLength)
}

// MakeLink creates a roller chain link pair, either inner or outer. Inner
// links include the rollers while outer links carry stub pins. The link spans
// from the origin to (chainPitch, 0) so a chain is assembled by placing one
// link at every roller location.
func MakeLink(chainPitch, plateThickness float64, inner bool, rollerLength, rollerDiameter float64) *geometry.Program {
	b := geometry.NewBuilder("XY")

	if inner {
		linkPlate(b, chainPitch, plateThickness, true)
		b.Translate(geometry.Vector{X: chainPitch / 2, Z: (rollerLength + plateThickness) / 2})

		b.Union()
		linkPlate(b, chainPitch, plateThickness, true)
		b.Translate(geometry.Vector{X: chainPitch / 2, Z: -(rollerLength + plateThickness) / 2})

		b.Union()
		roller(b, rollerDiameter, rollerLength)
		b.Union()
		roller(b, rollerDiameter, rollerLength)
		b.Translate(geometry.Vector{X: chainPitch})
	} else {
		linkPlate(b, chainPitch, plateThickness, false)
		b.Translate(geometry.Vector{X: chainPitch / 2, Z: (rollerLength + 3*plateThickness) / 2})

		b.Union()
		linkPlate(b, chainPitch, plateThickness, false)
		b.Translate(geometry.Vector{X: chainPitch / 2, Z: (rollerLength + 3*plateThickness) / 2})
		b.Rotate(geometry.Vector{X: 1}, 180)
	}

	return b.Program()
}
