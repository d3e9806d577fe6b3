package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/recaman/internal/config"
	"github.com/san-kum/recaman/internal/recaman"
)

func testConfig(n, start int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Count = n
	cfg.Start = start
	return cfg
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	seq, _ := recaman.Generate(10, 0)
	runID, err := st.Save(testConfig(10, 0), seq, "plots/recaman_10_start_0.png", "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "recaman_10_start_0_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Count != 10 || meta.Start != 0 {
		t.Errorf("expected count 10 start 0, got %d %d", meta.Count, meta.Start)
	}
	if meta.Circles != 9 {
		t.Errorf("expected 9 circles, got %d", meta.Circles)
	}
	if meta.MaxTerm != 21 {
		t.Errorf("expected max term 21, got %d", meta.MaxTerm)
	}
	if meta.PlotPath != "plots/recaman_10_start_0.png" || meta.AnimationPath != "" {
		t.Errorf("unexpected paths %q %q", meta.PlotPath, meta.AnimationPath)
	}

	loaded, err := st.LoadSequence(runID)
	if err != nil {
		t.Fatalf("load sequence failed: %v", err)
	}
	if len(loaded) != len(seq) {
		t.Fatalf("expected %d terms, got %d", len(seq), len(loaded))
	}
	for i := range seq {
		if loaded[i] != seq[i] {
			t.Errorf("term %d: expected %d, got %d", i, seq[i], loaded[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	seq, _ := recaman.Generate(3, 0)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(testConfig(3, 0), seq, "", ""); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "broken"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if len(runs) == 2 && runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest run first")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(testConfig(1, 0), []int{0}, "", "")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "sequence.csv")); os.IsNotExist(err) {
		t.Error("sequence.csv not created")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []int{0, 1, 3}); err != nil {
		t.Fatal(err)
	}
	expected := "index,term,center,diameter,quadrant,direction\n" +
		"0,0,,,,\n" +
		"1,1,0.5,1,below,right\n" +
		"2,3,2,2,above,right\n"
	if buf.String() != expected {
		t.Errorf("unexpected csv:\n%s", buf.String())
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	data := NewExportData(nil, 0, []int{0, 1, 3, 6, 2})
	if err := ExportJSON(&buf, data); err != nil {
		t.Fatal(err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Run != nil {
		t.Error("expected no run metadata")
	}
	if decoded.Count != 5 || len(decoded.Circles) != 4 {
		t.Errorf("expected 5 terms and 4 circles, got %d and %d", decoded.Count, len(decoded.Circles))
	}
	last := decoded.Circles[3]
	if last.Direction != "left" || last.Quadrant != "above" || last.Center != 4 {
		t.Errorf("unexpected last circle %+v", last)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.txt")
	err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "42\n")
		return err
	})
	if err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "42\n" {
		t.Errorf("read back %q, %v", data, err)
	}

	errWrite := errors.New("write failed")
	err = writeFile(filepath.Join(dir, "bad.txt"), func(io.Writer) error { return errWrite })
	if !errors.Is(err, errWrite) {
		t.Errorf("expected write error, got %v", err)
	}

	if err := writeFile(filepath.Join(dir, "missing", "x.txt"), func(io.Writer) error { return nil }); err == nil {
		t.Error("expected error creating file in missing directory")
	}
}

func TestSave_UnwritableDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "runs")
	if err := os.WriteFile(base, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}
	seq, _ := recaman.Generate(5, 0)
	if _, err := New(base).Save(testConfig(5, 0), seq, "", ""); err == nil {
		t.Error("expected error when the history path is a file")
	}
}
