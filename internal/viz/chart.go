package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Chart plots the sequence values as an ASCII line chart.
func Chart(seq []int, width, height int) string {
	if len(seq) == 0 {
		return ""
	}
	data := make([]float64, len(seq))
	for i, v := range seq {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("recaman sequence, %d terms from %d", len(seq), seq[0])),
	)
}
