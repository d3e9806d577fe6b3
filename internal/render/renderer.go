package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/san-kum/recaman/internal/config"
	"github.com/san-kum/recaman/internal/recaman"
)

const (
	PlotsDir      = "plots"
	AnimationsDir = "animations"
)

// Renderer writes the plot and animation files for one configuration.
type Renderer struct {
	cfg    *config.Config
	style  Style
	logger *zap.Logger
}

func NewRenderer(cfg *config.Config, style Style, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{cfg: cfg, style: style, logger: logger}
}

// SavePlot writes the static plot and returns its path.
func (r *Renderer) SavePlot(seq []int, circles []recaman.Circle) (string, error) {
	if len(circles) == 0 {
		return "", recaman.ErrInsufficientSequence
	}
	path, err := OutputPath(r.cfg.OutDir, PlotsDir, r.cfg.PlotFile())
	if err != nil {
		return "", err
	}

	fig := NewFigure(seq, circles, r.cfg.Plot.DPI, r.cfg.Plot.LineWidth)
	r.logger.Debug("rendering plot",
		zap.String("path", path),
		zap.String("format", r.cfg.Plot.Format),
		zap.Int("width", fig.Width),
		zap.Int("height", fig.Height),
		zap.Int("circles", len(circles)),
	)

	err = WriteFile(path, func(w io.Writer) error {
		if r.cfg.Plot.Format == "svg" {
			return WriteSVG(w, fig, r.style, circles)
		}
		return WritePNG(w, fig, r.style, circles)
	})
	if err != nil {
		return "", fmt.Errorf("save plot: %w", err)
	}
	return path, nil
}

// SaveAnimation writes the sweep animation and returns its path.
func (r *Renderer) SaveAnimation(ctx context.Context, seq []int, circles []recaman.Circle, progress ProgressFunc) (string, error) {
	if len(circles) == 0 {
		return "", recaman.ErrInsufficientSequence
	}
	anim := r.cfg.Animation
	path, err := OutputPath(r.cfg.OutDir, AnimationsDir, r.cfg.AnimationFile())
	if err != nil {
		return "", err
	}

	a := &Animator{
		Figure:     NewFigure(seq, circles, anim.DPI, r.cfg.Plot.LineWidth),
		Style:      r.style,
		Circles:    circles,
		DegreeSkip: anim.DegreeSkip,
		Progress:   progress,
	}
	r.logger.Debug("rendering animation",
		zap.String("path", path),
		zap.String("format", anim.Format),
		zap.Int("fps", anim.FPS),
		zap.Int("degree_skip", anim.DegreeSkip),
	)

	var n int
	if anim.Format == "gif" {
		err = WriteFile(path, func(w io.Writer) error {
			enc := NewGIFEncoder(w, r.style, anim.FPS)
			var runErr error
			n, runErr = a.Run(ctx, enc)
			if runErr != nil {
				return runErr
			}
			return enc.Close()
		})
	} else {
		enc, encErr := NewFFmpegEncoder(ctx, path, anim.FPS)
		if encErr != nil {
			return "", encErr
		}
		var runErr error
		n, runErr = a.Run(ctx, enc)
		err = errors.Join(runErr, enc.Close())
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("save animation: %w", err)
	}
	r.logger.Debug("animation written", zap.String("path", path), zap.Int("frames", n))
	return path, nil
}

// OutputPath joins base, dir and name, creating base/dir when missing.
func OutputPath(base, dir, name string) (string, error) {
	dirPath := filepath.Join(base, dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dirPath, name), nil
}

// WriteFile creates path, hands it to write and closes it, reporting the
// first error.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
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
