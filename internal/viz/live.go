package viz

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/recaman/internal/recaman"
	"github.com/san-kum/recaman/internal/render"
)

// DefaultRecordFile is where the live view saves its GIF recording.
const DefaultRecordFile = "recaman_live.gif"

const (
	recordDotPx  = 3
	maxSpeed     = 64
	progressBarW = 30
)

type TickMsg time.Time

// LiveModel sweeps the circles of a sequence on a Braille canvas, a few
// animation frames per tick.
type LiveModel struct {
	seq      []int
	circles  []recaman.Circle
	frames   []recaman.Frame
	pos      int
	speed    int
	interval time.Duration
	running  bool
	canvas   *Canvas
	viewport Viewport

	recordPath string
	recording  bool
	recFile    *os.File
	recorder   *render.GIFEncoder
	status     string
}

// NewLiveModel builds the model for a w x h cell canvas. fps sets the tick
// rate and skip the degrees advanced per animation frame.
func NewLiveModel(seq []int, circles []recaman.Circle, w, h, skip, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	c := NewCanvas(w, h)
	return LiveModel{
		seq:      seq,
		circles:  circles,
		frames:   recaman.Frames(len(circles), skip),
		speed:    1,
		interval: time.Second / time.Duration(fps),
		running:  true,
		canvas:   c,
		viewport: NewViewport(c, seq, circles),

		recordPath: DefaultRecordFile,
	}
}

// RecordTo sets the GIF file written by the g key.
func (m LiveModel) RecordTo(path string) LiveModel {
	if path != "" {
		m.recordPath = path
	}
	return m
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

// Done reports whether every frame has been drawn.
func (m LiveModel) Done() bool {
	return m.pos >= len(m.frames)
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.advance()
			if m.recording {
				m.captureFrame()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// advance draws the next speed frames.
func (m *LiveModel) advance() {
	for k := 0; k < m.speed && !m.Done(); k++ {
		f := m.frames[m.pos]
		c := m.circles[f.Circle]
		t1, t2 := recaman.Sweep(c, float64(f.Degree))
		m.viewport.Arc(m.canvas, c, t1, t2)
		m.pos++
	}
}

func (m *LiveModel) restart() {
	m.canvas.Clear()
	m.pos = 0
	m.running = true
}

func (m *LiveModel) startRecording() {
	f, err := os.Create(m.recordPath)
	if err != nil {
		m.status = "record failed: " + err.Error()
		return
	}
	m.recFile = f
	m.recorder = render.NewGIFEncoder(f, liveStyle(), int(time.Second/m.interval))
	m.recording = true
	m.status = "recording"
}

func (m *LiveModel) captureFrame() {
	style := liveStyle()
	img := m.canvas.Image(recordDotPx, style.Stroke, style.Background)
	if err := m.recorder.Encode(img, img.Bounds()); err != nil {
		m.status = "record failed: " + err.Error()
	}
}

func (m *LiveModel) stopRecording() {
	n := m.recorder.Frames()
	err := m.recorder.Close()
	if cerr := m.recFile.Close(); err == nil {
		err = cerr
	}
	m.recording = false
	m.recorder, m.recFile = nil, nil
	if err != nil {
		m.status = "record failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", m.recordPath, n)
}

// liveStyle maps the current theme onto render colors.
func liveStyle() render.Style {
	style := render.Style{
		Background: color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
		Stroke:     color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
	if c, err := render.ParseHex(string(CurrentTheme.Primary)); err == nil {
		style.Stroke = c
	}
	return style
}

func (m LiveModel) View() string {
	start := 0
	if len(m.seq) > 0 {
		start = m.seq[0]
	}
	var s strings.Builder
	s.WriteString(TitleStyle().Render(fmt.Sprintf("RECAMÁN  %d terms from %d", len(m.seq), start)) + "\n")
	s.WriteString(CanvasStyle().Render(m.canvas.String()) + "\n")

	state := "RUNNING"
	switch {
	case m.Done():
		state = "DONE"
	case !m.running:
		state = "PAUSED"
	}
	if m.recording {
		state += "  ● REC"
	}

	circle, degree := 0, 0
	if m.pos > 0 {
		f := m.frames[m.pos-1]
		circle, degree = f.Circle+1, f.Degree
	}
	progress := 1.0
	if len(m.frames) > 0 {
		progress = float64(m.pos) / float64(len(m.frames))
	}

	s.WriteString(Fields(
		"State", state,
		"Circle", fmt.Sprintf("%d/%d", circle, len(m.circles)),
		"Degree", degree,
		"Speed", fmt.Sprintf("x%d", m.speed),
		"Theme", CurrentTheme.Name,
	))
	s.WriteString(ProgressBar(progress, progressBarW) + "\n")
	if m.status != "" {
		s.WriteString(ValueStyle().Render(m.status) + "\n")
	}
	s.WriteString(HelpStyle().Render("SP:Pause R:Restart +/-:Speed T:Theme G:Record Q:Quit"))
	return lipgloss.NewStyle().Padding(0, 1).Render(s.String())
}
