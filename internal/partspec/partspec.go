// Package partspec loads declarative part specifications. A spec is a small
// YAML document naming a generator kind and its parameters; a build manifest
// is a TOML file listing the specs to generate together with output options.
package partspec

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"pwh/internal/bearing"
	"pwh/internal/chain"
	"pwh/internal/errors"
	"pwh/internal/fastener"
	"pwh/internal/geometry"
	"pwh/internal/gridfinity"
	"pwh/internal/joints"
	"pwh/internal/sprocket"
)

// Spec describes one part to generate
type Spec struct {
	Name string `yaml:"name" json:"name"`
	Kind string `yaml:"kind" json:"kind"`
	// Params are generator specific and validated by the generator itself
	Params map[string]interface{} `yaml:"params" json:"params"`
}

// Parse decodes a YAML part spec
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.SpecInvalid, "part spec is not valid YAML", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Load reads and decodes a YAML part spec file
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.SpecInvalid, "cannot read part spec "+path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.SpecInvalid, "invalid part spec "+path, err)
	}
	return spec, nil
}

// Kinds returns the generator kinds a spec may name
func Kinds() []string {
	return []string{"sprocket", "chain", "screw", "nut", "bearing", "fingerJoint", "gridfinity"}
}

// Validate checks the spec shape; parameter values are checked by the
// generator during Resolve
func (s *Spec) Validate() error {
	if s.Name == "" {
		return errors.New(errors.SpecInvalid, "part spec needs a name")
	}
	if s.Kind == "" {
		return errors.New(errors.SpecInvalid, "part spec needs a kind")
	}
	for _, kind := range Kinds() {
		if s.Kind == kind {
			return nil
		}
	}
	return errors.Newf(errors.SpecInvalid, "unknown part kind %q", s.Kind).
		WithDetails(map[string]interface{}{"validKinds": Kinds()})
}

// decodeParams maps the loose YAML parameters onto a generator config via
// its json field names
func (s *Spec) decodeParams(into interface{}) error {
	raw, err := json.Marshal(s.Params)
	if err != nil {
		return errors.Wrap(errors.SpecInvalid, "invalid parameters for "+s.Name, err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return errors.Wrap(errors.SpecInvalid, "invalid parameters for "+s.Name, err)
	}
	return nil
}

// Result is a resolved spec: exactly one of Program or Assembly is set
type Result struct {
	Name     string
	Program  *geometry.Program
	Assembly *geometry.Assembly
}

// Resolve runs the named generator with the spec's parameters
func (s *Spec) Resolve() (*Result, error) {
	switch s.Kind {
	case "sprocket":
		cfg := sprocket.DefaultConfig()
		if err := s.decodeParams(&cfg); err != nil {
			return nil, err
		}
		part, err := sprocket.New(cfg, nil)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Program: part.Program()}, nil

	case "chain":
		cfg := chain.DefaultConfig()
		if err := s.decodeParams(&cfg); err != nil {
			return nil, err
		}
		solved, err := chain.New(cfg)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Assembly: solved.Assembly()}, nil

	case "screw":
		var params struct {
			Kind   fastener.Kind `json:"kind"`
			Size   string        `json:"size"`
			Length float64       `json:"length"`
		}
		if err := s.decodeParams(&params); err != nil {
			return nil, err
		}
		screw, err := fastener.NewScrew(params.Kind, params.Size, params.Length)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Program: screw.Program()}, nil

	case "nut":
		var params struct {
			Kind fastener.NutKind `json:"kind"`
			Size string           `json:"size"`
		}
		if err := s.decodeParams(&params); err != nil {
			return nil, err
		}
		nut, err := fastener.NewNut(params.Kind, params.Size)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Program: nut.Program()}, nil

	case "bearing":
		params := struct {
			Size   string `json:"size"`
			Type   string `json:"type"`
			Capped bool   `json:"capped"`
		}{Type: "SKT", Capped: true}
		if err := s.decodeParams(&params); err != nil {
			return nil, err
		}
		brg, err := bearing.New(params.Size, params.Type, params.Capped)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Assembly: brg.Assembly()}, nil

	case "fingerJoint":
		var cfg joints.Config
		if err := s.decodeParams(&cfg); err != nil {
			return nil, err
		}
		layout, err := joints.NewLayout(cfg)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Program: layout.PanelProgram(true)}, nil

	case "gridfinity":
		cfg := gridfinity.DefaultConfig()
		if err := s.decodeParams(&cfg); err != nil {
			return nil, err
		}
		grid, err := gridfinity.New(cfg)
		if err != nil {
			return nil, err
		}
		return &Result{Name: s.Name, Program: grid.Program()}, nil

	default:
		return nil, errors.Newf(errors.SpecInvalid, "unknown part kind %q", s.Kind)
	}
}
