package recaman

// Frame identifies one animation step: the circle being drawn and how many
// degrees of it are visible.
type Frame struct {
	Circle int
	Degree int
}

// Sweep returns the counter-clockwise start and end angles, in degrees with
// y pointing up, of circle c after deg degrees of it have been drawn.
// Rightward arcs grow from their left end, leftward arcs from their right end.
func Sweep(c Circle, deg float64) (theta1, theta2 float64) {
	if deg < 0 {
		deg = 0
	}
	if deg > 180 {
		deg = 180
	}
	switch {
	case c.Quadrant == Below && c.Direction == Right:
		return 180, 180 + deg
	case c.Quadrant == Below:
		return 360 - deg, 360
	case c.Direction == Right:
		return 180 - deg, 180
	default:
		return 0, deg
	}
}

// Span returns the angles of the fully drawn semicircle.
func Span(c Circle) (theta1, theta2 float64) {
	return Sweep(c, 180)
}

// Frames enumerates the animation frames for count circles. Each circle
// gets 0, skip, 2*skip, ... below 180 and then a closing 180 frame.
func Frames(count, skip int) []Frame {
	if skip < 1 {
		skip = 1
	}
	if count <= 0 {
		return nil
	}
	perCircle := (179+skip)/skip + 1
	frames := make([]Frame, 0, count*perCircle)
	for i := 0; i < count; i++ {
		for deg := 0; deg < 180; deg += skip {
			frames = append(frames, Frame{Circle: i, Degree: deg})
		}
		frames = append(frames, Frame{Circle: i, Degree: 180})
	}
	return frames
}
