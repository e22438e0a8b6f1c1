package geometry

import (
	"github.com/google/uuid"
)

// Location positions a child within an assembly: a translation plus a
// rotation of angle degrees about the axis through the new position.
type Location struct {
	Position Vector  `json:"position"`
	Axis     Vector  `json:"axis"`
	Angle    float64 `json:"angle"`
}

// At returns a pure-translation location
func At(position Vector) Location {
	return Location{Position: position, Axis: Vector{Z: 1}}
}

// Child is a named, positioned member of an assembly
type Child struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Program  *Program `json:"program,omitempty"`
	Assembly *Assembly `json:"assembly,omitempty"`
}

// Assembly is a named tree of programs. It mirrors the external kernel's
// assembly object, which is how multi-part results (chain links wrapped
// around sprockets) are expressed.
type Assembly struct {
	Name     string   `json:"name"`
	Children []*Child `json:"children"`
}

// NewAssembly creates an empty assembly. An empty name is replaced with a
// generated UUID, matching the kernel's behavior for anonymous assemblies.
func NewAssembly(name string) *Assembly {
	if name == "" {
		name = uuid.NewString()
	}
	return &Assembly{Name: name}
}

// Add appends a program child. An empty name is replaced with a UUID.
func (a *Assembly) Add(name string, loc Location, p *Program) {
	if name == "" {
		name = uuid.NewString()
	}
	a.Children = append(a.Children, &Child{Name: name, Location: loc, Program: p})
}

// AddAssembly appends a sub-assembly child
func (a *Assembly) AddAssembly(loc Location, sub *Assembly) {
	a.Children = append(a.Children, &Child{Name: sub.Name, Location: loc, Assembly: sub})
}
