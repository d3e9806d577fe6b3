package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/recaman/internal/recaman"
)

type ExportData struct {
	Run      *RunMetadata   `json:"run,omitempty"`
	Count    int            `json:"count"`
	Start    int            `json:"start"`
	Sequence []int          `json:"sequence"`
	Circles  []ExportCircle `json:"circles"`
}

type ExportCircle struct {
	Quadrant  string  `json:"quadrant"`
	Center    float64 `json:"center"`
	Diameter  int     `json:"diameter"`
	Direction string  `json:"direction"`
}

// NewExportData bundles a sequence and its circles for JSON output. meta
// may be nil for sequences that were never saved.
func NewExportData(meta *RunMetadata, start int, seq []int) ExportData {
	circles := recaman.Circles(seq)
	data := ExportData{
		Run:      meta,
		Count:    len(seq),
		Start:    start,
		Sequence: seq,
		Circles:  make([]ExportCircle, len(circles)),
	}
	for i, c := range circles {
		data.Circles[i] = ExportCircle{
			Quadrant:  c.Quadrant.String(),
			Center:    c.Center,
			Diameter:  c.Diameter,
			Direction: c.Direction.String(),
		}
	}
	return data
}

func ExportJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
