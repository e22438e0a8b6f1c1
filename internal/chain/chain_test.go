package chain

import (
	"math"
	"testing"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/sprocket"
	"pwh/internal/units"
)

func twoSprocketConfig() Config {
	cfg := DefaultConfig()
	cfg.SpktTeeth = []int{32, 10}
	cfg.SpktLocations = []geometry.Vector{{}, {X: 150}}
	cfg.PositiveChainWrap = []bool{true, true}
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"two sprockets", func(c *Config) {}, true},
		{"one sprocket", func(c *Config) {
			c.SpktTeeth = c.SpktTeeth[:1]
			c.SpktLocations = c.SpktLocations[:1]
			c.PositiveChainWrap = c.PositiveChainWrap[:1]
		}, false},
		{"mismatched lengths", func(c *Config) { c.SpktTeeth = append(c.SpktTeeth, 16) }, false},
		{"too few teeth", func(c *Config) { c.SpktTeeth[1] = 2 }, false},
		{"duplicate location", func(c *Config) { c.SpktLocations[1] = c.SpktLocations[0] }, false},
		{"roller too large", func(c *Config) { c.RollerDiameter = c.ChainPitch }, false},
		{"zero pitch", func(c *Config) { c.ChainPitch = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := twoSprocketConfig()
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

func TestTwoSprocketSolve(t *testing.T) {
	solved, err := New(twoSprocketConfig())
	if err != nil {
		t.Fatal(err)
	}

	links := solved.ChainLinks()
	if links <= 0 {
		t.Fatalf("ChainLinks() = %v, want positive", links)
	}
	if solved.NumRollers() != int(math.Floor(links)) {
		t.Errorf("NumRollers() = %d, want floor(%v)", solved.NumRollers(), links)
	}
	if got := len(solved.RollerLocations()); got != solved.NumRollers() {
		t.Errorf("len(RollerLocations()) = %d, want %d", got, solved.NumRollers())
	}
	if len(solved.ChainAngles()) != 2 || len(solved.SpktInitialRotation()) != 2 {
		t.Error("per-sprocket derived values missing")
	}

	wantGap := links-math.Floor(links) > 0.5
	if solved.Gapped != wantGap {
		t.Errorf("Gapped = %v, want %v for %v links", solved.Gapped, wantGap, links)
	}
}

func TestEqualSprocketsChainLength(t *testing.T) {
	// Two identical sprockets wrapped the same way: the chain is two straight
	// spans of the center distance plus one full pitch circumference.
	cfg := DefaultConfig()
	cfg.SpktTeeth = []int{16, 16}
	cfg.SpktLocations = []geometry.Vector{{}, {X: 127}}
	cfg.PositiveChainWrap = []bool{true, true}

	solved, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := 2*127 + sprocket.PitchCircumference(16, cfg.ChainPitch)
	got := solved.ChainLinks() * cfg.ChainPitch
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("chain length = %v, want %v", got, want)
	}
}

func TestRollersSitOnPitchCircle(t *testing.T) {
	cfg := twoSprocketConfig()
	solved, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	radii := solved.PitchRadii()
	tolerance := 1e-6
	onCircle := 0
	for _, roller := range solved.RollerLocations() {
		for s, center := range cfg.SpktLocations {
			distance := roller.Sub(center).Length()
			if math.Abs(distance-radii[s]) < tolerance {
				onCircle++
				break
			}
		}
	}
	if onCircle == 0 {
		t.Error("no rollers on any sprocket pitch circle")
	}
}

func TestInitialRotationIncludesHalfTooth(t *testing.T) {
	cfg := twoSprocketConfig()
	solved, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	radii := solved.PitchRadii()
	rollers := solved.RollerLocations()
	for s, rotation := range solved.SpktInitialRotation() {
		// Subtracting the half tooth offset must land on the angle of a
		// roller sitting on this sprocket's pitch circle
		target := rotation - 180/float64(cfg.SpktTeeth[s])
		matched := false
		for _, roller := range rollers {
			rel := roller.Sub(cfg.SpktLocations[s])
			if math.Abs(rel.Length()-radii[s]) > 1e-6 {
				continue
			}
			angle := math.Atan2(-rel.X, rel.Y) * 180 / math.Pi
			delta := math.Mod(target-angle+720, 360)
			if delta < 1e-6 || delta > 360-1e-6 {
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("sprocket %d rotation %v does not align with any roller", s, rotation)
		}
	}
}

func TestInterleave(t *testing.T) {
	got := interleave([]float64{1, 2, 3, 4}, []float64{3, 4, 1, 2})
	want := []float64{1, 3, 2, 4, 3, 1, 4, 2}
	if len(got) != len(want) {
		t.Fatalf("interleave length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interleave[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMixSums(t *testing.T) {
	got := mixSums([]float64{1, 2, 3, 4}, []float64{3, 4, 1, 2})
	want := []float64{1, 4, 6, 10, 13, 14, 18, 20}
	if len(got) != len(want) {
		t.Fatalf("mixSums length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mixSums[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindSegment(t *testing.T) {
	sums := []float64{1, 4, 6, 10}
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 0},
		{0.5, 0},
		{1, 1},
		{5, 2},
		{9.9, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := findSegment(tt.distance, sums); got != tt.want {
			t.Errorf("findSegment(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestPlateProfileScales(t *testing.T) {
	standard := PlateProfile(0.5 * units.Inch)
	double := PlateProfile(units.Inch)

	if math.Abs(double.PlateRadius-2*standard.PlateRadius) > 1e-9 {
		t.Errorf("plate radius does not scale with pitch: %v vs %v",
			double.PlateRadius, standard.PlateRadius)
	}
	if standard.Neck >= standard.PlateRadius {
		t.Error("neck must be narrower than the plate ends")
	}
	if standard.NeckRadius <= 0 {
		t.Errorf("neck radius = %v, want positive", standard.NeckRadius)
	}
}

func TestMakeLink(t *testing.T) {
	inner := MakeLink(12.7, 1, true, 2.38, 7.94)
	outer := MakeLink(12.7, 1, false, 2.38, 7.94)
	if len(inner.Instructions) == 0 || len(outer.Instructions) == 0 {
		t.Fatal("links produced empty programs")
	}
}

func TestTransmission(t *testing.T) {
	cfg := twoSprocketConfig()
	solved, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var spkts []*sprocket.Sprocket
	for _, teeth := range cfg.SpktTeeth {
		scfg := sprocket.DefaultConfig()
		scfg.NumTeeth = teeth
		spkt, err := sprocket.New(scfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		spkts = append(spkts, spkt)
	}

	transmission, err := solved.Transmission(spkts)
	if err != nil {
		t.Fatal(err)
	}
	// Two sprockets plus the chain sub-assembly
	if len(transmission.Children) != 3 {
		t.Fatalf("transmission has %d children, want 3", len(transmission.Children))
	}

	if _, err := solved.Transmission(spkts[:1]); err == nil {
		t.Error("Transmission with wrong sprocket count did not fail")
	}
}
