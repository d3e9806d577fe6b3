package render

import (
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/recaman/internal/recaman"
)

var _ = Describe("Figure", func() {
	var (
		seq     []int
		circles []recaman.Circle
		fig     Figure
	)

	BeforeEach(func() {
		seq = []int{0, 1, 3, 6}
		circles = recaman.Circles(seq)
		fig = NewFigure(seq, circles, 100, 0.2)
	})

	It("pads the sequence range by the margin", func() {
		Expect(fig.MinX).To(Equal(-1.0))
		Expect(fig.MaxX).To(Equal(7.0))
		Expect(fig.MinY).To(Equal(-2.5))
		Expect(fig.MaxY).To(Equal(2.5))
	})

	It("keeps equal aspect at the requested dpi", func() {
		Expect(fig.Width).To(Equal(640))
		Expect(fig.Scale).To(Equal(80.0))
		Expect(fig.Height).To(Equal(400))
		Expect(fig.Bounds()).To(Equal(image.Rect(0, 0, 640, 400)))
	})

	It("converts line width from points and keeps it visible", func() {
		Expect(fig.LineWidth).To(Equal(1.0))
		wide := NewFigure(seq, circles, 144, 2)
		Expect(wide.LineWidth).To(BeNumerically("~", 4.0, 1e-9))
	})

	It("maps the origin with y pointing down", func() {
		px, py := fig.Pixel(0, 0)
		Expect(px).To(Equal(80.0))
		Expect(py).To(Equal(200.0))

		_, top := fig.Pixel(0, fig.MaxY)
		Expect(top).To(Equal(0.0))
	})

	It("bounds each arc on its own side of the axis", func() {
		below := fig.ArcBounds(circles[0])
		above := fig.ArcBounds(circles[1])
		Expect(below.Empty()).To(BeFalse())
		Expect(below.Min.Y).To(BeNumerically("<", 200))
		Expect(below.Max.Y).To(BeNumerically(">", 240))
		Expect(above.Max.Y).To(BeNumerically("<=", 202))
		Expect(above.Min.Y).To(BeNumerically("<", 120))
		for _, c := range circles {
			Expect(fig.ArcBounds(c).In(fig.Bounds())).To(BeTrue())
		}
	})
})
