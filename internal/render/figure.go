package render

import (
	"image"
	"math"

	"github.com/san-kum/recaman/internal/recaman"
)

const (
	// FigureWidth is the figure width in inches; pixels scale with dpi.
	FigureWidth = 6.4
	// PlotMargin pads the axes on every side, in sequence units.
	PlotMargin = 1.0

	pointsPerInch = 72.0
	minLineWidth  = 1.0
)

// Figure holds the world bounds of a plot and its pixel geometry. The x axis
// spans the sequence values and the y axis the largest semicircle, with
// equal aspect.
type Figure struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Width      int
	Height     int
	Scale      float64 // pixels per sequence unit
	LineWidth  float64 // stroke width in pixels
}

// NewFigure sizes a figure for seq and its circles at dpi. lineWidth is in
// points, as in print units.
func NewFigure(seq []int, circles []recaman.Circle, dpi int, lineWidth float64) Figure {
	half := float64(recaman.MaxDiameter(circles))/2 + PlotMargin
	f := Figure{
		MinX: -PlotMargin,
		MaxX: float64(recaman.MaxTerm(seq)) + PlotMargin,
		MinY: -half,
		MaxY: half,
	}

	f.Width = int(math.Round(FigureWidth * float64(dpi)))
	if f.Width < 1 {
		f.Width = 1
	}
	f.Scale = float64(f.Width) / (f.MaxX - f.MinX)
	f.Height = int(math.Ceil((f.MaxY - f.MinY) * f.Scale))
	if f.Height < 1 {
		f.Height = 1
	}

	f.LineWidth = lineWidth * float64(dpi) / pointsPerInch
	if f.LineWidth < minLineWidth {
		f.LineWidth = minLineWidth
	}
	return f
}

func (f Figure) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Pixel converts sequence coordinates to pixel coordinates (y down).
func (f Figure) Pixel(x, y float64) (px, py float64) {
	return (x - f.MinX) * f.Scale, (f.MaxY - y) * f.Scale
}

// ArcBounds returns the pixel rectangle covering the semicircle of c,
// stroke included, clipped to the figure.
func (f Figure) ArcBounds(c recaman.Circle) image.Rectangle {
	r := c.Radius()
	top, bottom := r, 0.0
	if c.Quadrant == recaman.Below {
		top, bottom = 0, -r
	}
	x0, y0 := f.Pixel(c.Left(), top)
	x1, y1 := f.Pixel(c.Right(), bottom)
	pad := f.LineWidth + 1
	rect := image.Rect(
		int(math.Floor(x0-pad)), int(math.Floor(y0-pad)),
		int(math.Ceil(x1+pad)), int(math.Ceil(y1+pad)),
	)
	return rect.Intersect(f.Bounds())
}
