package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/recaman/internal/config"
	"github.com/san-kum/recaman/internal/recaman"
)

const (
	metadataFile = "metadata.json"
	sequenceFile = "sequence.csv"
)

// Store keeps one directory per render run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string    `json:"id"`
	Count         int       `json:"count"`
	Start         int       `json:"start"`
	Timestamp     time.Time `json:"timestamp"`
	Format        string    `json:"format"`
	DPI           int       `json:"dpi"`
	LineWidth     float64   `json:"line_width"`
	PlotPath      string    `json:"plot_path,omitempty"`
	AnimationPath string    `json:"animation_path,omitempty"`
	Circles       int       `json:"circles"`
	MaxTerm       int       `json:"max_term"`
}

// Save records a run: its settings, output paths and the sequence itself.
func (s *Store) Save(cfg *config.Config, seq []int, plotPath, animPath string) (string, error) {
	runID := fmt.Sprintf("recaman_%d_start_%d_%s", cfg.Count, cfg.Start, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	circles := recaman.Circles(seq)
	meta := RunMetadata{
		ID:            runID,
		Count:         cfg.Count,
		Start:         cfg.Start,
		Timestamp:     time.Now(),
		Format:        cfg.Plot.Format,
		DPI:           cfg.Plot.DPI,
		LineWidth:     cfg.Plot.LineWidth,
		PlotPath:      plotPath,
		AnimationPath: animPath,
		Circles:       len(circles),
		MaxTerm:       recaman.MaxTerm(seq),
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, sequenceFile), func(w io.Writer) error {
		return WriteCSV(w, seq)
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// writeFile creates path and closes it after write, keeping the close error
// when write succeeded.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// WriteCSV writes one row per term. Rows after the first also describe the
// circle that ends at that term.
func WriteCSV(out io.Writer, seq []int) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"index", "term", "center", "diameter", "quadrant", "direction"}); err != nil {
		return err
	}

	circles := recaman.Circles(seq)
	for i, v := range seq {
		row := []string{strconv.Itoa(i), strconv.Itoa(v), "", "", "", ""}
		if i > 0 {
			c := circles[i-1]
			row[2] = strconv.FormatFloat(c.Center, 'f', -1, 64)
			row[3] = strconv.Itoa(c.Diameter)
			row[4] = c.Quadrant.String()
			row[5] = c.Direction.String()
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSequence reads back the terms saved with a run.
func (s *Store) LoadSequence(runID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, sequenceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []int{}, nil
	}

	seq := make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad term %q: %w", runID, record[1], err)
		}
		seq = append(seq, v)
	}
	return seq, nil
}
