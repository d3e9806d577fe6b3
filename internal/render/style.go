package render

import (
	"fmt"
	"image/color"
)

// Style sets the colors of a plot.
type Style struct {
	Background color.RGBA
	Stroke     color.RGBA
}

var DefaultStyle = Style{
	Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
	Stroke:     color.RGBA{0x00, 0x00, 0x00, 0xff},
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb or #rgb.
func ParseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: bad color %q: %w", s, err)
	}
	return c, nil
}

// palette interpolates n colors from background to stroke for GIF frames.
func (s Style) palette(n int) color.Palette {
	p := make(color.Palette, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		p[i] = color.RGBA{
			R: lerp8(s.Background.R, s.Stroke.R, t),
			G: lerp8(s.Background.G, s.Stroke.G, t),
			B: lerp8(s.Background.B, s.Stroke.B, t),
			A: 0xff,
		}
	}
	return p
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
