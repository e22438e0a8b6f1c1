package fastener

import (
	"math"
	"testing"

	"pwh/internal/errors"
	"pwh/internal/units"
)

func TestNewScrewMetric(t *testing.T) {
	screw, err := NewScrew(SocketHeadCap, "M6-1", 20)
	if err != nil {
		t.Fatal(err)
	}

	if screw.ThreadDiameter != 6 || screw.ThreadPitch != 1 {
		t.Errorf("thread = %v x %v, want 6 x 1", screw.ThreadDiameter, screw.ThreadPitch)
	}
	if screw.HeadDiameter != 10 || screw.HeadHeight != 6 {
		t.Errorf("head = %v x %v, want 10 x 6", screw.HeadDiameter, screw.HeadHeight)
	}
	if screw.SocketSize != 5 || screw.SocketDepth != 3 {
		t.Errorf("socket = %v x %v, want 5 x 3", screw.SocketSize, screw.SocketDepth)
	}
	// Max thread length for M6 is 24, so a 20mm screw is fully threaded
	if screw.BodyLength != 0 || screw.ThreadLength != 20 {
		t.Errorf("split = body %v + thread %v, want 0 + 20", screw.BodyLength, screw.ThreadLength)
	}
}

func TestNewScrewThreadBodySplit(t *testing.T) {
	screw, err := NewScrew(SocketHeadCap, "M6-1", 30)
	if err != nil {
		t.Fatal(err)
	}
	if screw.BodyLength != 6 || screw.ThreadLength != 24 {
		t.Errorf("split = body %v + thread %v, want 6 + 24", screw.BodyLength, screw.ThreadLength)
	}
}

func TestNewScrewImperial(t *testing.T) {
	screw, err := NewScrew(SocketHeadCap, "#8-32", 12)
	if err != nil {
		t.Fatal(err)
	}

	wantMajor := 0.164 * units.Inch
	wantPitch := units.Inch / 32
	if math.Abs(screw.ThreadDiameter-wantMajor) > 1e-9 {
		t.Errorf("major = %v, want %v", screw.ThreadDiameter, wantMajor)
	}
	if math.Abs(screw.ThreadPitch-wantPitch) > 1e-9 {
		t.Errorf("pitch = %v, want %v", screw.ThreadPitch, wantPitch)
	}
	// Imperial tables carry fractional values converted to mm
	if screw.SocketSize <= 0 {
		t.Errorf("socket size = %v, want positive", screw.SocketSize)
	}
}

func TestNewScrewErrors(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		size     string
		length   float64
		wantCode errors.ErrorCode
	}{
		{"unknown size", SocketHeadCap, "M7-1", 20, errors.SizeNotFound},
		{"unknown kind", Kind("flangeHead"), "M6-1", 20, errors.TypeNotFound},
		{"zero length", SocketHeadCap, "M6-1", 0, errors.InvalidArgument},
		{"imperial size in metric form", SocketHeadCap, "M6", 20, errors.SizeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScrew(tt.kind, tt.size, tt.length)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.CodeOf(err) != tt.wantCode {
				t.Errorf("error code = %v, want %v", errors.CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestHoleDiameters(t *testing.T) {
	screw, err := NewScrew(SocketHeadCap, "M6-1", 20)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		get  func() (float64, error)
		want float64
	}{
		{"close fit", func() (float64, error) { return screw.ClearanceHoleDiameter(Close) }, 6.4},
		{"medium fit", func() (float64, error) { return screw.ClearanceHoleDiameter(Medium) }, 6.6},
		{"loose fit", func() (float64, error) { return screw.ClearanceHoleDiameter(Loose) }, 7},
		{"soft tap", func() (float64, error) { return screw.TapHoleDiameter(Soft) }, 5},
		{"hard tap", func() (float64, error) { return screw.TapHoleDiameter(Hard) }, 5.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get()
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("= %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := screw.ClearanceHoleDiameter(Fit("Sloppy")); errors.CodeOf(err) != errors.InvalidArgument {
		t.Errorf("bad fit error code = %v, want INVALID_ARGUMENT", errors.CodeOf(err))
	}
}

func TestThreadGeometry(t *testing.T) {
	thread := NewThread(6, 1, 20)

	wantH := 0.5 / math.Tan(math.Pi/6)
	if math.Abs(thread.HParameter()-wantH) > 1e-9 {
		t.Errorf("h = %v, want %v", thread.HParameter(), wantH)
	}

	wantMin := (6 - 2*(5.0/8.0)*wantH) / 2
	if math.Abs(thread.MinRadius()-wantMin) > 1e-9 {
		t.Errorf("min radius = %v, want %v", thread.MinRadius(), wantMin)
	}

	if thread.ExternalRadius() >= thread.MinRadius() {
		t.Error("external pitch radius must sit inside the root radius")
	}
	if thread.InternalRadius() <= thread.MinRadius() {
		t.Error("internal pitch radius must sit outside the root radius")
	}
	if thread.InternalSocketRadius() <= 3 {
		t.Error("internal socket radius must exceed the major radius")
	}
}

func TestThreadProfiles(t *testing.T) {
	thread := NewThread(6, 1, 20)
	h := thread.HParameter()
	minR := thread.MinRadius()

	external := thread.ExternalProfile()
	if len(external) != 8 {
		t.Fatalf("external profile has %d points, want 8", len(external))
	}
	// The flattened crest spans p/8 at the major radius, centered on p/2
	for _, i := range []int{3, 4} {
		if math.Abs(external[i].X-3) > 1e-9 {
			t.Errorf("external crest point %d at radius %v, want 3", i, external[i].X)
		}
	}
	if math.Abs(external[3].Z-7.0/16) > 1e-9 || math.Abs(external[4].Z-9.0/16) > 1e-9 {
		t.Errorf("external crest spans z %v..%v, want 0.4375..0.5625", external[3].Z, external[4].Z)
	}
	// Root anchors sit just inside the minor radius
	if math.Abs(external[1].X-(minR-h/12)) > 1e-9 {
		t.Errorf("external root anchor at %v, want %v", external[1].X, minR-h/12)
	}
	// The profile closes: first and last point at the same radius, one pitch apart
	first, last := external[0], external[len(external)-1]
	if first.X != last.X || math.Abs(last.Z-first.Z-1) > 1e-9 {
		t.Errorf("external profile does not span one pitch: %v .. %v", first, last)
	}

	internal := thread.InternalProfile()
	if len(internal) != 8 {
		t.Fatalf("internal profile has %d points, want 8", len(internal))
	}
	// Internal root is flat at the minor radius, no rounding anchor inside it
	if math.Abs(internal[1].X-minR) > 1e-9 || math.Abs(internal[6].X-minR) > 1e-9 {
		t.Errorf("internal root at %v/%v, want %v", internal[1].X, internal[6].X, minR)
	}
	if internal[0].X != thread.InternalRadius()/2 {
		t.Errorf("internal profile starts at %v, want half the pitch radius", internal[0].X)
	}
	for i := 1; i < len(internal); i++ {
		if internal[i].Z < internal[i-1].Z {
			t.Fatalf("internal profile z not monotonic at point %d", i)
		}
	}
}

func TestNewNut(t *testing.T) {
	nut, err := NewNut(HexNut, "M6-1")
	if err != nil {
		t.Fatal(err)
	}
	if nut.Width != 10 || nut.Height != 5.2 {
		t.Errorf("nut = %v across flats x %v, want 10 x 5.2", nut.Width, nut.Height)
	}

	if _, err := NewNut(NutKind("wing"), "M6-1"); errors.CodeOf(err) != errors.TypeNotFound {
		t.Errorf("bad kind error code = %v, want TYPE_NOT_FOUND", errors.CodeOf(err))
	}
	if _, err := NewNut(HexNut, "M7-1"); errors.CodeOf(err) != errors.SizeNotFound {
		t.Errorf("bad size error code = %v, want SIZE_NOT_FOUND", errors.CodeOf(err))
	}
}

func TestSizes(t *testing.T) {
	all, err := Sizes(SocketHeadCap)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("no sizes listed")
	}
	found := map[string]bool{}
	for _, size := range all {
		found[size] = true
	}
	for _, want := range []string{"M6-1", "#8-32", "1/4-20"} {
		if !found[want] {
			t.Errorf("size list missing %s", want)
		}
	}
}

func TestScrewPrograms(t *testing.T) {
	kinds := []Kind{SocketHeadCap, ButtonHeadCap, HexBolt, SetScrew}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			screw, err := NewScrew(kind, "M6-1", 16)
			if err != nil {
				t.Fatal(err)
			}
			program := screw.Program()
			if program == nil || len(program.Instructions) == 0 {
				t.Fatal("empty program")
			}
			head := screw.HeadProgram()
			if kind == SetScrew {
				if head != nil {
					t.Error("set screws have no head")
				}
			} else if head == nil || len(head.Instructions) == 0 {
				t.Error("empty head program")
			}
		})
	}
}
