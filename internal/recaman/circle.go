package recaman

import "fmt"

// Quadrant tells whether a semicircle opens above or below the axis.
type Quadrant int

const (
	Below Quadrant = iota
	Above
)

func (q Quadrant) String() string {
	if q == Above {
		return "above"
	}
	return "below"
}

// Direction tells whether the step that produced a circle moved right
// (to a larger term) or left.
type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Circle describes the semicircle joining two adjacent terms.
type Circle struct {
	Quadrant  Quadrant
	Center    float64
	Diameter  int
	Direction Direction
}

func (c Circle) Radius() float64 {
	return float64(c.Diameter) / 2
}

// Left returns the x coordinate of the leftmost point of the circle.
func (c Circle) Left() float64 {
	return c.Center - c.Radius()
}

// Right returns the x coordinate of the rightmost point of the circle.
func (c Circle) Right() float64 {
	return c.Center + c.Radius()
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(center=%g, d=%d, %s, %s)", c.Center, c.Diameter, c.Quadrant, c.Direction)
}

// Circles maps every adjacent pair of seq onto a Circle. Sequences shorter
// than two terms yield an empty slice.
func Circles(seq []int) []Circle {
	if len(seq) < 2 {
		return []Circle{}
	}
	circles := make([]Circle, 0, len(seq)-1)
	prev := seq[0]
	for idx, curr := range seq[1:] {
		// |curr-prev| is idx+1; adding the terms first overflows near MaxInt
		c := Circle{
			Quadrant:  Below,
			Center:    float64(prev) + float64(curr-prev)/2,
			Diameter:  idx + 1,
			Direction: Left,
		}
		if idx%2 == 1 {
			c.Quadrant = Above
		}
		if curr-prev > 0 {
			c.Direction = Right
		}
		circles = append(circles, c)
		prev = curr
	}
	return circles
}

// Plot generates n terms from start and maps them onto circles. It fails
// with ErrInsufficientSequence when no circle can be drawn.
func Plot(n, start int) ([]int, []Circle, error) {
	seq, err := Generate(n, start)
	if err != nil {
		return nil, nil, err
	}
	circles := Circles(seq)
	if len(circles) == 0 {
		return seq, nil, fmt.Errorf("%w: %d terms", ErrInsufficientSequence, len(seq))
	}
	return seq, circles, nil
}

// MaxDiameter returns the largest diameter among circles.
func MaxDiameter(circles []Circle) int {
	m := 0
	for _, c := range circles {
		if c.Diameter > m {
			m = c.Diameter
		}
	}
	return m
}
