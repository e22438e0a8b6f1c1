// Package joints computes finger joint layouts for box edges cut from sheet
// material. An edge is divided into an odd number of alternating fingers and
// sockets so both corners of one panel end in fingers and the mating panel
// ends in sockets, letting the two interlock.
package joints

import (
	"math"

	"pwh/internal/errors"
	"pwh/internal/geometry"
)

// Config describes one jointed edge
type Config struct {
	// EdgeLength is the length of the edge being jointed
	EdgeLength float64 `json:"edgeLength"`
	// MaterialThickness is the sheet thickness, which sets the finger depth
	MaterialThickness float64 `json:"materialThickness"`
	// TargetFingerWidth is the desired finger width; the actual width is
	// adjusted so a whole odd number of fingers spans the edge
	TargetFingerWidth float64 `json:"targetFingerWidth"`
	// KerfWidth compensates for material removed by the cutter. Fingers are
	// widened and sockets narrowed by half the kerf on each flank.
	KerfWidth float64 `json:"kerfWidth"`
}

// Validate checks the configuration constraints
func (c Config) Validate() error {
	if c.EdgeLength <= 0 {
		return errors.Newf(errors.InvalidArgument, "edgeLength %g must be positive", c.EdgeLength)
	}
	if c.MaterialThickness <= 0 {
		return errors.Newf(errors.InvalidArgument, "materialThickness %g must be positive", c.MaterialThickness)
	}
	if c.TargetFingerWidth <= 0 {
		return errors.Newf(errors.InvalidArgument, "targetFingerWidth %g must be positive", c.TargetFingerWidth)
	}
	if c.TargetFingerWidth >= c.EdgeLength {
		return errors.Newf(errors.InvalidArgument,
			"targetFingerWidth %g must be less than edgeLength %g", c.TargetFingerWidth, c.EdgeLength)
	}
	if c.KerfWidth < 0 {
		return errors.Newf(errors.InvalidArgument, "kerfWidth %g must not be negative", c.KerfWidth)
	}
	return nil
}

// Span is a finger or socket interval along the edge, measured from the
// edge start
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width returns the span width
func (s Span) Width() float64 {
	return s.End - s.Start
}

// Layout is the solved finger arrangement for both mating panels
type Layout struct {
	Config

	// FingerCount is the odd total of alternating intervals along the edge
	FingerCount int `json:"fingerCount"`
	// FingerWidth is the adjusted width before kerf compensation
	FingerWidth float64 `json:"fingerWidth"`
	// Fingers are the material tabs left on the panel that starts and ends
	// with a finger
	Fingers []Span `json:"fingers"`
	// Sockets are the tabs on the mating panel, offset half a cycle
	Sockets []Span `json:"sockets"`
}

// NewLayout divides the edge into alternating fingers and sockets. The count
// is the odd number nearest edgeLength/targetFingerWidth so the pattern is
// symmetric about the edge midpoint.
func NewLayout(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	count := int(math.Round(cfg.EdgeLength / cfg.TargetFingerWidth))
	if count%2 == 0 {
		count--
	}
	if count < 3 {
		count = 3
	}
	width := cfg.EdgeLength / float64(count)

	if cfg.KerfWidth >= width {
		return nil, errors.Newf(errors.InvalidArgument,
			"kerfWidth %g must be less than the finger width %g", cfg.KerfWidth, width)
	}

	layout := &Layout{Config: cfg, FingerCount: count, FingerWidth: width}
	for i := 0; i < count; i++ {
		span := Span{Start: float64(i) * width, End: float64(i+1) * width}
		// Kerf compensation widens a tab on both flanks, except at the edge
		// ends where there is no mating flank
		grown := Span{
			Start: math.Max(0, span.Start-cfg.KerfWidth/2),
			End:   math.Min(cfg.EdgeLength, span.End+cfg.KerfWidth/2),
		}
		if i%2 == 0 {
			layout.Fingers = append(layout.Fingers, grown)
		} else {
			layout.Sockets = append(layout.Sockets, grown)
		}
	}
	return layout, nil
}

// PanelProgram renders the tabs of one side of the joint as solid fingers of
// the material thickness, laid along the x axis. The fingers side starts at
// the edge origin; the sockets side is the complementary set.
func (l *Layout) PanelProgram(fingersSide bool) *geometry.Program {
	spans := l.Fingers
	if !fingersSide {
		spans = l.Sockets
	}

	b := geometry.NewBuilder("XY")
	for i, span := range spans {
		if i > 0 {
			b.Union()
		}
		b.MoveTo(geometry.XY(span.Start+span.Width()/2, l.MaterialThickness/2)).
			Rect(span.Width(), l.MaterialThickness).
			Extrude(l.MaterialThickness)
	}
	return b.Program()
}
