package render

import (
	"context"
	"fmt"

	"github.com/san-kum/recaman/internal/recaman"
)

// ProgressFunc is called after every encoded frame.
type ProgressFunc func(done, total int)

// Animator sweeps each circle from 0 to 180 degrees, one frame per
// DegreeSkip degrees, keeping finished circles on screen.
type Animator struct {
	Figure     Figure
	Style      Style
	Circles    []recaman.Circle
	DegreeSkip int
	Progress   ProgressFunc
}

// Run encodes every frame into enc. It stops between frames when ctx is
// done. enc is not closed.
func (a *Animator) Run(ctx context.Context, enc FrameEncoder) (int, error) {
	frames := recaman.Frames(len(a.Circles), a.DegreeSkip)
	base := NewRasterCanvas(a.Figure, a.Style)
	frame := NewRasterCanvas(a.Figure, a.Style)

	current := -1
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("animation interrupted at frame %d: %w", i, err)
		}

		c := a.Circles[f.Circle]
		if f.Circle != current {
			if current >= 0 {
				prev := a.Circles[current]
				t1, t2 := recaman.Span(prev)
				base.DrawArc(prev, t1, t2)
			}
			current = f.Circle
		}

		// outside the current arc the frame already matches base
		box := a.Figure.ArcBounds(c)
		frame.CopyFrom(base, box)
		t1, t2 := recaman.Sweep(c, float64(f.Degree))
		frame.DrawArc(c, t1, t2)

		if err := enc.Encode(frame.Image(), box); err != nil {
			return i, fmt.Errorf("encode frame %d: %w", i, err)
		}
		if a.Progress != nil {
			a.Progress(i+1, len(frames))
		}
	}
	return len(frames), nil
}
