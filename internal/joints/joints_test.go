package joints

import (
	"math"
	"testing"

	"pwh/internal/errors"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name      string
		edge      float64
		target    float64
		wantCount int
	}{
		{"exact odd fit", 100, 10, 9},
		{"even rounds down", 80, 12, 7},
		{"tiny target", 100, 1, 99},
		{"minimum of three", 10, 9, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewLayout(Config{
				EdgeLength:        tt.edge,
				MaterialThickness: 3,
				TargetFingerWidth: tt.target,
			})
			if err != nil {
				t.Fatal(err)
			}
			if layout.FingerCount != tt.wantCount {
				t.Errorf("FingerCount = %d, want %d", layout.FingerCount, tt.wantCount)
			}
			wantWidth := tt.edge / float64(tt.wantCount)
			if math.Abs(layout.FingerWidth-wantWidth) > 1e-9 {
				t.Errorf("FingerWidth = %v, want %v", layout.FingerWidth, wantWidth)
			}
			// Odd count means one more finger than socket
			if len(layout.Fingers) != (tt.wantCount+1)/2 {
				t.Errorf("len(Fingers) = %d, want %d", len(layout.Fingers), (tt.wantCount+1)/2)
			}
			if len(layout.Sockets) != tt.wantCount/2 {
				t.Errorf("len(Sockets) = %d, want %d", len(layout.Sockets), tt.wantCount/2)
			}
		})
	}
}

func TestLayoutSpans(t *testing.T) {
	layout, err := NewLayout(Config{
		EdgeLength:        100,
		MaterialThickness: 3,
		TargetFingerWidth: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Without kerf the intervals tile the edge exactly
	width := 100.0 / 9
	for i, finger := range layout.Fingers {
		wantStart := float64(2*i) * width
		if math.Abs(finger.Start-wantStart) > 1e-9 || math.Abs(finger.Width()-width) > 1e-9 {
			t.Errorf("finger %d = [%v, %v], want start %v width %v",
				i, finger.Start, finger.End, wantStart, width)
		}
	}
	last := layout.Fingers[len(layout.Fingers)-1]
	if math.Abs(last.End-100) > 1e-9 {
		t.Errorf("last finger ends at %v, want 100", last.End)
	}
}

func TestKerfCompensation(t *testing.T) {
	layout, err := NewLayout(Config{
		EdgeLength:        100,
		MaterialThickness: 3,
		TargetFingerWidth: 10,
		KerfWidth:         0.2,
	})
	if err != nil {
		t.Fatal(err)
	}

	width := 100.0 / 9
	inner := layout.Fingers[1]
	if math.Abs(inner.Width()-(width+0.2)) > 1e-9 {
		t.Errorf("interior finger width = %v, want %v", inner.Width(), width+0.2)
	}
	// Edge-adjacent flanks are clamped to the edge
	first := layout.Fingers[0]
	if first.Start != 0 {
		t.Errorf("first finger starts at %v, want 0", first.Start)
	}
	if math.Abs(first.Width()-(width+0.1)) > 1e-9 {
		t.Errorf("first finger width = %v, want %v", first.Width(), width+0.1)
	}
}

func TestNewLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero edge", Config{MaterialThickness: 3, TargetFingerWidth: 10}},
		{"zero thickness", Config{EdgeLength: 100, TargetFingerWidth: 10}},
		{"zero target", Config{EdgeLength: 100, MaterialThickness: 3}},
		{"target exceeds edge", Config{EdgeLength: 10, MaterialThickness: 3, TargetFingerWidth: 20}},
		{"negative kerf", Config{EdgeLength: 100, MaterialThickness: 3, TargetFingerWidth: 10, KerfWidth: -1}},
		{"kerf swallows finger", Config{EdgeLength: 100, MaterialThickness: 3, TargetFingerWidth: 10, KerfWidth: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.CodeOf(err) != errors.InvalidArgument {
				t.Errorf("error code = %v, want INVALID_ARGUMENT", errors.CodeOf(err))
			}
		})
	}
}

func TestPanelProgram(t *testing.T) {
	layout, err := NewLayout(Config{
		EdgeLength:        100,
		MaterialThickness: 3,
		TargetFingerWidth: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	fingers := layout.PanelProgram(true)
	sockets := layout.PanelProgram(false)
	if len(fingers.Instructions) == 0 || len(sockets.Instructions) == 0 {
		t.Fatal("panel programs are empty")
	}
	// The fingers side carries one more tab, so its program is longer
	if len(fingers.Instructions) <= len(sockets.Instructions) {
		t.Error("fingers side should render more tabs than the sockets side")
	}
}
