// Package recaman generates the Recamán sequence and maps it onto the
// semicircles used to draw it.
//
// The package is split into three small pieces:
//
//   - [Generate]: the first N terms of the sequence from a start value
//   - [Circles]: one [Circle] per adjacent pair of terms
//   - [Sweep] and [Frames]: arc angles for animating each semicircle
//
// # Example
//
//	seq, _ := recaman.Generate(10, 0)
//	circles := recaman.Circles(seq)
//	for _, c := range circles {
//		t1, t2 := recaman.Span(c)
//		draw(c.Center, c.Radius(), t1, t2)
//	}
//
// Everything here is a pure function of its inputs; no package state is kept
// between calls.
package recaman
