package viz

import (
	"image"
	"image/color"
	"math"
	"strings"
)

const brailleBlank = 0x2800

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells. Dot coordinates run from (0, 0) at the
// top left to (2*Width-1, 4*Height-1).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) {
	return c.Width * 2, c.Height * 4
}

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawArc plots the arc of radius r around (cx, cy) from theta1 to theta2,
// in degrees counter-clockwise with y pointing up. Coordinates are in dots.
func (c *Canvas) DrawArc(cx, cy, r, theta1, theta2 float64) {
	if theta2 < theta1 {
		return
	}
	a1 := theta1 * math.Pi / 180
	a2 := theta2 * math.Pi / 180
	// roughly one dot per step
	n := int(math.Ceil((a2 - a1) * r))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := a1 + (a2-a1)*float64(i)/float64(n)
		c.Set(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy-r*math.Sin(a))))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Image renders the dots as square blocks of size px on a background.
func (c *Canvas) Image(px int, fg, bg color.Color) *image.RGBA {
	w, h := c.Dots()
	img := image.NewRGBA(image.Rect(0, 0, w*px, h*px))
	for y := 0; y < h*px; y++ {
		for x := 0; x < w*px; x++ {
			if c.IsSet(x/px, y/px) {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, bg)
			}
		}
	}
	return img
}
