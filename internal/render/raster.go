package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/recaman/internal/recaman"
)

const (
	// maximum pixel length of one flattened arc segment
	segmentLength = 1.5
	minSegments   = 4
	maxSegments   = 4096
)

// RasterCanvas strokes arcs of a Figure into an RGBA image.
type RasterCanvas struct {
	fig    Figure
	style  Style
	img    *image.RGBA
	raster *vector.Rasterizer
}

func NewRasterCanvas(fig Figure, style Style) *RasterCanvas {
	rc := &RasterCanvas{
		fig:    fig,
		style:  style,
		img:    image.NewRGBA(fig.Bounds()),
		raster: vector.NewRasterizer(0, 0),
	}
	rc.Clear()
	return rc
}

func (rc *RasterCanvas) Image() *image.RGBA {
	return rc.img
}

// Clear fills the canvas with the background color.
func (rc *RasterCanvas) Clear() {
	draw.Draw(rc.img, rc.img.Bounds(), image.NewUniform(rc.style.Background), image.Point{}, draw.Src)
}

// CopyFrom replaces the pixels of rect with those of src.
func (rc *RasterCanvas) CopyFrom(src *RasterCanvas, rect image.Rectangle) {
	draw.Draw(rc.img, rect, src.img, rect.Min, draw.Src)
}

// DrawCircles strokes the full semicircle of every circle.
func (rc *RasterCanvas) DrawCircles(circles []recaman.Circle) {
	for _, c := range circles {
		t1, t2 := recaman.Span(c)
		rc.DrawArc(c, t1, t2)
	}
}

// DrawArc strokes the part of c between theta1 and theta2 (degrees,
// counter-clockwise, y up). The stroke is filled as a ring sector: the
// outer edge runs forward and the inner edge back.
func (rc *RasterCanvas) DrawArc(c recaman.Circle, theta1, theta2 float64) {
	if theta2 <= theta1 {
		return
	}
	box := rc.fig.ArcBounds(c)
	if box.Empty() {
		return
	}

	cx, cy := rc.fig.Pixel(c.Center, 0)
	r := c.Radius() * rc.fig.Scale
	hw := rc.fig.LineWidth / 2
	outer := r + hw
	inner := math.Max(r-hw, 0)

	a1 := theta1 * math.Pi / 180
	a2 := theta2 * math.Pi / 180
	n := int(math.Ceil((a2 - a1) * outer / segmentLength))
	n = max(minSegments, min(n, maxSegments))

	rc.raster.Reset(box.Dx(), box.Dy())
	rc.raster.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	point := func(radius, a float64) (float32, float32) {
		// y is flipped: counter-clockwise in world space is clockwise on screen
		x := clamp(cx+radius*math.Cos(a)-ox, 0, float64(box.Dx()))
		y := clamp(cy-radius*math.Sin(a)-oy, 0, float64(box.Dy()))
		return float32(x), float32(y)
	}

	rc.raster.MoveTo(point(outer, a1))
	for i := 1; i <= n; i++ {
		rc.raster.LineTo(point(outer, a1+(a2-a1)*float64(i)/float64(n)))
	}
	for i := n; i >= 0; i-- {
		rc.raster.LineTo(point(inner, a1+(a2-a1)*float64(i)/float64(n)))
	}
	rc.raster.ClosePath()
	rc.raster.Draw(rc.img, box, image.NewUniform(rc.style.Stroke), image.Point{})
}

// WritePNG renders the circles of fig as a PNG image.
func WritePNG(w io.Writer, fig Figure, style Style, circles []recaman.Circle) error {
	rc := NewRasterCanvas(fig, style)
	rc.DrawCircles(circles)
	return png.Encode(w, rc.img)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
