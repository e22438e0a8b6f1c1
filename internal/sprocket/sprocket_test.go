package sprocket

import (
	"bytes"
	"math"
	"testing"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/output"
	"pwh/internal/units"
)

func TestPitchRadius(t *testing.T) {
	pitch := 0.5 * units.Inch
	tests := []struct {
		teeth int
	}{
		{3}, {10}, {16}, {32}, {200},
	}
	for _, tt := range tests {
		t.Run("teeth", func(t *testing.T) {
			want := pitch / (2 * math.Sin(math.Pi/float64(tt.teeth)))
			got := PitchRadius(tt.teeth, pitch)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("PitchRadius(%d, %v) = %v, want %v", tt.teeth, pitch, got, want)
			}
		})
	}
}

func TestPitchRadiusGrowsWithTeeth(t *testing.T) {
	pitch := 12.7
	previous := 0.0
	for _, teeth := range []int{3, 4, 5, 10, 16, 32, 64, 200} {
		radius := PitchRadius(teeth, pitch)
		if radius <= previous {
			t.Fatalf("pitch radius %v for %d teeth not larger than %v", radius, teeth, previous)
		}
		previous = radius
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"minimum teeth", func(c *Config) { c.NumTeeth = 3 }, true},
		{"too few teeth", func(c *Config) { c.NumTeeth = 2 }, false},
		{"zero pitch", func(c *Config) { c.ChainPitch = 0 }, false},
		{"roller too large", func(c *Config) { c.RollerDiameter = c.ChainPitch }, false},
		{"negative bore", func(c *Config) { c.BoreDiameter = -1 }, false},
		{"zero bore is omitted feature", func(c *Config) { c.BoreDiameter = 0 }, true},
		{"negative bolt count", func(c *Config) { c.NumMountBolts = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && errors.CodeOf(err) != errors.InvalidArgument {
				t.Errorf("error code = %v, want INVALID_ARGUMENT", errors.CodeOf(err))
			}
		})
	}
}

func TestBoltHoleCentersZeroSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTeeth = 32
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	centers := s.BoltHoleCenters()
	if centers == nil {
		t.Fatal("BoltHoleCenters() = nil, want empty slice")
	}
	if len(centers) != 0 {
		t.Fatalf("BoltHoleCenters() has %d entries, want 0 with no bolt parameters", len(centers))
	}
}

func TestBoltHoleCenters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTeeth = 32
	cfg.BoltCircleDiameter = 40
	cfg.NumMountBolts = 4
	cfg.MountBoltDiameter = 5
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	centers := s.BoltHoleCenters()
	if len(centers) != 4 {
		t.Fatalf("BoltHoleCenters() has %d entries, want 4", len(centers))
	}
	for i, center := range centers {
		radius := math.Hypot(center.X, center.Y)
		if math.Abs(radius-20) > 1e-9 {
			t.Errorf("bolt hole %d at radius %v, want 20", i, radius)
		}
	}
}

func TestProgramDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTeeth = 16
	cfg.BoreDiameter = 10

	first, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	a, err := output.DeterministicEncode(first.Program())
	if err != nil {
		t.Fatal(err)
	}
	b, err := output.DeterministicEncode(second.Program())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical configs produced different programs")
	}
}

func TestOuterRadiusExceedsPitchRadius(t *testing.T) {
	for _, teeth := range []int{3, 10, 16, 32} {
		cfg := DefaultConfig()
		cfg.NumTeeth = teeth
		s, err := New(cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		if s.OuterRadius() <= s.PitchRadius() {
			t.Errorf("teeth=%d: outer radius %v not larger than pitch radius %v",
				teeth, s.OuterRadius(), s.PitchRadius())
		}
	}
}

func TestNewEmitsToSink(t *testing.T) {
	var gotName string
	var gotProgram *geometry.Program
	sink := geometry.SinkFunc{
		Programs: func(name string, program *geometry.Program) {
			gotName = name
			gotProgram = program
		},
	}

	cfg := DefaultConfig()
	cfg.NumTeeth = 16
	if _, err := New(cfg, sink); err != nil {
		t.Fatal(err)
	}
	if gotName != "sprocket" {
		t.Errorf("sink received name %q, want \"sprocket\"", gotName)
	}
	if gotProgram == nil || len(gotProgram.Instructions) == 0 {
		t.Error("sink received no program")
	}
}
