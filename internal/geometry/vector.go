// Package geometry provides the vector math and the ordered operation lists
// ("geometry programs") that the part generators hand to an external CAD
// kernel. Programs are pure data: building one performs no geometric work.
package geometry

import (
	"math"

	"pwh/internal/errors"
)

// Vector is a point or direction in 3D space. 2D profile points leave Z at 0.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// XY constructs a vector on the XY plane
func XY(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + other
func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other
func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled by s
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and other
func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of v and other
func (v Vector) Cross(other Vector) Vector {
	return Vector{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the euclidean length of v
func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// RotateX rotates v by angle degrees about the x-axis
func (v Vector) RotateX(angle float64) Vector {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vector{
		v.X,
		v.Y*cos - v.Z*sin,
		v.Y*sin + v.Z*cos,
	}
}

// RotateY rotates v by angle degrees about the y-axis
func (v Vector) RotateY(angle float64) Vector {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vector{
		v.X*cos + v.Z*sin,
		v.Y,
		-v.X*sin + v.Z*cos,
	}
}

// RotateZ rotates v by angle degrees about the z-axis
func (v Vector) RotateZ(angle float64) Vector {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vector{
		v.X*cos - v.Y*sin,
		v.X*sin + v.Y*cos,
		v.Z,
	}
}

// FlipY reflects v across the XZ plane
func (v Vector) FlipY() Vector {
	return Vector{v.X, -v.Y, v.Z}
}

// OnPlane maps a 2D point on the XY plane into 3D space on the given plane
// at the offset.
func (v Vector) OnPlane(plane string, offset float64) (Vector, error) {
	switch plane {
	case "XY":
		return Vector{v.X, v.Y, offset}, nil
	case "XZ":
		return Vector{v.X, offset, v.Y}, nil
	case "YZ":
		return Vector{offset, v.X, v.Y}, nil
	default:
		return Vector{}, errors.Newf(errors.InvalidArgument, "plane %q must be one of: XY,XZ,YZ", plane)
	}
}

// Plane is a coordinate frame used to solve 2D problems in a 3D scene: the
// chain solver works in the plane defined by the sprocket centers and maps
// results back out.
type Plane struct {
	Origin Vector `json:"origin"`
	XDir   Vector `json:"xDir"`
	Normal Vector `json:"normal"`
}

// NewPlane builds a plane from an origin, an x direction, and a normal. The
// directions are normalized; the y direction is derived.
func NewPlane(origin, xDir, normal Vector) Plane {
	return Plane{Origin: origin, XDir: xDir.Normalized(), Normal: normal.Normalized()}
}

func (p Plane) yDir() Vector {
	return p.Normal.Cross(p.XDir)
}

// ToLocal converts a world coordinate to plane-local coordinates
func (p Plane) ToLocal(world Vector) Vector {
	rel := world.Sub(p.Origin)
	return Vector{rel.Dot(p.XDir), rel.Dot(p.yDir()), rel.Dot(p.Normal)}
}

// FromLocal converts plane-local coordinates back to world coordinates
func (p Plane) FromLocal(local Vector) Vector {
	return p.Origin.
		Add(p.XDir.Scale(local.X)).
		Add(p.yDir().Scale(local.Y)).
		Add(p.Normal.Scale(local.Z))
}
