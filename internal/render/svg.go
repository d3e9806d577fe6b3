package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/recaman/internal/recaman"
)

// CirclesToSVG renders the circles of fig as an SVG document, one path per
// circle.
func CirclesToSVG(fig Figure, style Style, circles []recaman.Circle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke="%s" stroke-width="%.3f">
`, fig.Width, fig.Height, fig.Width, fig.Height, Hex(style.Background), Hex(style.Stroke), fig.LineWidth))

	for _, c := range circles {
		t1, t2 := recaman.Span(c)
		sb.WriteString(`<path d="`)
		sb.WriteString(arcPath(fig, c, t1, t2))
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG writes the SVG rendering of circles to w.
func WriteSVG(w io.Writer, fig Figure, style Style, circles []recaman.Circle) error {
	_, err := io.WriteString(w, CirclesToSVG(fig, style, circles))
	return err
}

// arcPath builds the path data of the arc of c from theta1 to theta2.
// Angles grow counter-clockwise on screen, which is SVG sweep-flag 0.
func arcPath(fig Figure, c recaman.Circle, theta1, theta2 float64) string {
	r := c.Radius()
	a1 := theta1 * math.Pi / 180
	a2 := theta2 * math.Pi / 180
	x1, y1 := fig.Pixel(c.Center+r*math.Cos(a1), r*math.Sin(a1))
	x2, y2 := fig.Pixel(c.Center+r*math.Cos(a2), r*math.Sin(a2))
	large := 0
	if theta2-theta1 > 180 {
		large = 1
	}
	rp := r * fig.Scale
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f", x1, y1, rp, rp, large, x2, y2)
}
