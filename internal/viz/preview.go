package viz

import (
	"math"

	"github.com/san-kum/recaman/internal/recaman"
)

// Viewport maps sequence coordinates onto the dots of a canvas with equal
// aspect, centered vertically.
type Viewport struct {
	minX    float64
	scale   float64
	originY float64
}

func NewViewport(c *Canvas, seq []int, circles []recaman.Circle) Viewport {
	w, h := c.Dots()
	const margin = 1.0
	xRange := float64(recaman.MaxTerm(seq)) + 2*margin
	yRange := float64(recaman.MaxDiameter(circles)) + 2*margin
	scale := math.Min(float64(w-1)/xRange, float64(h-1)/yRange)
	return Viewport{
		minX:    -margin,
		scale:   scale,
		originY: float64(h-1) / 2,
	}
}

// Arc draws the part of circle between theta1 and theta2.
func (v Viewport) Arc(c *Canvas, circle recaman.Circle, theta1, theta2 float64) {
	cx := (circle.Center - v.minX) * v.scale
	c.DrawArc(cx, v.originY, circle.Radius()*v.scale, theta1, theta2)
}

// PreviewCanvas draws every circle of seq on a w x h cell canvas.
func PreviewCanvas(seq []int, circles []recaman.Circle, w, h int) *Canvas {
	c := NewCanvas(w, h)
	vp := NewViewport(c, seq, circles)
	for _, circle := range circles {
		t1, t2 := recaman.Span(circle)
		vp.Arc(c, circle, t1, t2)
	}
	return c
}

func Preview(seq []int, circles []recaman.Circle, w, h int) string {
	return PreviewCanvas(seq, circles, w, h).String()
}
