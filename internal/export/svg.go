// Package export writes terminal previews to files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/recaman/internal/render"
	"github.com/san-kum/recaman/internal/viz"
)

// CanvasToSVG draws every lit dot of a Braille canvas as an SVG circle, scale
// pixels per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, style render.Style) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Dots()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, render.Hex(style.Background), render.Hex(style.Stroke))

	r := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteCanvasSVG writes CanvasToSVG output to path.
func WriteCanvasSVG(path string, canvas *viz.Canvas, scale float64, style render.Style) error {
	return render.WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, CanvasToSVG(canvas, scale, style))
		return err
	})
}
