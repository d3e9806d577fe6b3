package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/gif"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/recaman/internal/config"
	"github.com/san-kum/recaman/internal/recaman"
)

type recordingEncoder struct {
	dirty  []image.Rectangle
	closed bool
	fail   int
}

func (e *recordingEncoder) Encode(_ *image.RGBA, dirty image.Rectangle) error {
	if e.fail > 0 && len(e.dirty)+1 == e.fail {
		return errors.New("disk full")
	}
	e.dirty = append(e.dirty, dirty)
	return nil
}

func (e *recordingEncoder) Close() error {
	e.closed = true
	return nil
}

var _ = Describe("Animator", func() {
	var (
		seq     []int
		circles []recaman.Circle
		anim    *Animator
	)

	BeforeEach(func() {
		seq = []int{0, 1, 3, 6}
		circles = recaman.Circles(seq)
		anim = &Animator{
			Figure:     NewFigure(seq, circles, 20, 0.2),
			Style:      DefaultStyle,
			Circles:    circles,
			DegreeSkip: 90,
		}
	})

	It("emits one frame per sweep step", func() {
		enc := &recordingEncoder{}
		var last, total int
		anim.Progress = func(done, n int) { last, total = done, n }

		n, err := anim.Run(context.Background(), enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(9))
		Expect(enc.dirty).To(HaveLen(9))
		Expect(last).To(Equal(9))
		Expect(total).To(Equal(9))
		Expect(enc.closed).To(BeFalse())

		for i, d := range enc.dirty {
			Expect(d).To(Equal(anim.Figure.ArcBounds(circles[i/3])))
		}
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		n, err := anim.Run(ctx, &recordingEncoder{})
		Expect(err).To(MatchError(context.Canceled))
		Expect(n).To(Equal(0))
	})

	It("reports encoder failures with the frame index", func() {
		n, err := anim.Run(context.Background(), &recordingEncoder{fail: 4})
		Expect(err).To(MatchError(ContainSubstring("encode frame 3")))
		Expect(n).To(Equal(3))
	})

	It("leaves every finished circle on the last frame", func() {
		var buf bytes.Buffer
		enc := NewGIFEncoder(&buf, DefaultStyle, 50)
		_, err := anim.Run(context.Background(), enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(enc.Frames()).To(Equal(9))
		Expect(enc.Close()).To(Succeed())

		g, err := gif.DecodeAll(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Image).To(HaveLen(9))
		Expect(g.Delay[0]).To(Equal(2))
		Expect(g.Config.Width).To(Equal(anim.Figure.Width))
		Expect(g.Config.Height).To(Equal(anim.Figure.Height))
		Expect(g.Image[0].Bounds()).To(Equal(anim.Figure.Bounds()))
		Expect(g.Image[8].Bounds()).To(Equal(anim.Figure.ArcBounds(circles[2])))
	})
})

var _ = Describe("GIFEncoder", func() {
	It("caps the frame rate at the GIF delay resolution", func() {
		Expect(NewGIFEncoder(nil, DefaultStyle, 240).delay).To(Equal(1))
		Expect(NewGIFEncoder(nil, DefaultStyle, 25).delay).To(Equal(4))
		Expect(NewGIFEncoder(nil, DefaultStyle, 0).delay).To(Equal(1))
	})

	It("writes nothing without frames", func() {
		var buf bytes.Buffer
		Expect(NewGIFEncoder(&buf, DefaultStyle, 30).Close()).To(Succeed())
		Expect(buf.Len()).To(Equal(0))
	})
})

var _ = Describe("Renderer", func() {
	var (
		cfg     *config.Config
		seq     []int
		circles []recaman.Circle
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.OutDir = GinkgoT().TempDir()
		cfg.Count = 4
		cfg.Plot.DPI = 30
		seq, circles, _ = recaman.Plot(cfg.Count, cfg.Start)
	})

	It("saves a PNG plot under plots/", func() {
		path, err := NewRenderer(cfg, DefaultStyle, nil).SavePlot(seq, circles)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(cfg.OutDir, "plots", "recaman_4_start_0.png")))
		Expect(path).To(BeAnExistingFile())
	})

	It("saves an SVG plot when asked", func() {
		cfg.Plot.Format = "svg"
		path, err := NewRenderer(cfg, DefaultStyle, nil).SavePlot(seq, circles)
		Expect(err).NotTo(HaveOccurred())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<svg"))
	})

	It("saves a GIF animation under animations/", func() {
		cfg.Animation.Format = "gif"
		cfg.Animation.DPI = 20
		cfg.Animation.DegreeSkip = 60
		cfg.Animation.FPS = 20

		path, err := NewRenderer(cfg, DefaultStyle, nil).SaveAnimation(context.Background(), seq, circles, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(cfg.OutDir, "animations", "recaman_4_start_0.gif")))

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		g, err := gif.DecodeAll(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Image).To(HaveLen(len(recaman.Frames(len(circles), 60))))
	})

	It("removes the animation file when interrupted", func() {
		cfg.Animation.Format = "gif"
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewRenderer(cfg, DefaultStyle, nil).SaveAnimation(ctx, seq, circles, nil)
		Expect(err).To(MatchError(context.Canceled))
		Expect(filepath.Join(cfg.OutDir, "animations", "recaman_4_start_0.gif")).NotTo(BeAnExistingFile())
	})

	It("refuses to render without circles", func() {
		_, err := NewRenderer(cfg, DefaultStyle, nil).SavePlot([]int{0}, nil)
		Expect(err).To(MatchError(recaman.ErrInsufficientSequence))

		_, err = NewRenderer(cfg, DefaultStyle, nil).SaveAnimation(context.Background(), []int{0}, nil, nil)
		Expect(err).To(MatchError(recaman.ErrInsufficientSequence))
	})
})
