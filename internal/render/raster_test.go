package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/recaman/internal/recaman"
)

func darkNear(img interface {
	At(x, y int) color.Color
}, x, y, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r, _, _, _ := img.At(x+dx, y+dy).RGBA()
			if r < 0xc000 {
				return true
			}
		}
	}
	return false
}

var _ = Describe("Raster output", func() {
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

	It("writes a decodable PNG with arcs on a white background", func() {
		var buf bytes.Buffer
		Expect(WritePNG(&buf, fig, DefaultStyle, circles)).To(Succeed())

		img, err := png.Decode(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(640))
		Expect(img.Bounds().Dy()).To(Equal(400))

		// bottom of the first semicircle: center 0.5, radius 0.5
		Expect(darkNear(img, 120, 240, 2)).To(BeTrue())
		// top of the second: center 2, radius 1
		Expect(darkNear(img, 240, 120, 2)).To(BeTrue())
		// nothing above the first circle
		Expect(darkNear(img, 120, 160, 2)).To(BeFalse())

		r, g, b, _ := img.At(5, 5).RGBA()
		Expect([]uint32{r, g, b}).To(Equal([]uint32{0xffff, 0xffff, 0xffff}))
	})

	It("draws nothing for an empty sweep", func() {
		rc := NewRasterCanvas(fig, DefaultStyle)
		rc.DrawArc(circles[0], 180, 180)
		Expect(darkNear(rc.Image(), 120, 240, 3)).To(BeFalse())
	})

	It("draws only the swept part of an arc", func() {
		rc := NewRasterCanvas(fig, DefaultStyle)
		// circle 1 is above and rightward: the sweep grows from its left end
		t1, t2 := recaman.Sweep(circles[1], 90)
		rc.DrawArc(circles[1], t1, t2)
		img := rc.Image()
		left, _ := fig.Pixel(circles[1].Center-0.7071, 0.7071)
		right, _ := fig.Pixel(circles[1].Center+0.7071, 0.7071)
		_, y := fig.Pixel(0, 0.7071)
		Expect(darkNear(img, int(left), int(y), 2)).To(BeTrue())
		Expect(darkNear(img, int(right), int(y), 2)).To(BeFalse())
	})
})

var _ = Describe("SVG output", func() {
	It("writes one path per circle", func() {
		seq := []int{0, 1, 3, 6, 2}
		circles := recaman.Circles(seq)
		fig := NewFigure(seq, circles, 100, 0.2)

		var buf bytes.Buffer
		Expect(WriteSVG(&buf, fig, DefaultStyle, circles)).To(Succeed())
		out := buf.String()

		Expect(strings.Count(out, "<path")).To(Equal(4))
		Expect(out).To(HavePrefix(`<?xml version="1.0"`))
		Expect(out).To(ContainSubstring(`stroke="#000000"`))
		Expect(out).To(ContainSubstring(`fill="#ffffff"`))
		Expect(out).To(HaveSuffix("</svg>\n"))
	})

	It("sweeps counter-clockwise between the two terms", func() {
		seq := []int{0, 1, 3, 6}
		circles := recaman.Circles(seq)
		fig := NewFigure(seq, circles, 100, 0.2)

		t1, t2 := recaman.Span(circles[0])
		Expect(arcPath(fig, circles[0], t1, t2)).To(Equal("M80.00,200.00 A40.00,40.00 0 0 0 160.00,200.00"))

		t1, t2 = recaman.Span(circles[1])
		Expect(arcPath(fig, circles[1], t1, t2)).To(Equal("M320.00,200.00 A80.00,80.00 0 0 0 160.00,200.00"))
	})
})

var _ = Describe("Style", func() {
	It("round trips hex colors", func() {
		c, err := ParseHex("#1f77b4")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(color.RGBA{0x1f, 0x77, 0xb4, 0xff}))
		Expect(Hex(c)).To(Equal("#1f77b4"))
	})

	It("expands short hex colors", func() {
		c, err := ParseHex("#fff")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(color.RGBA{0xff, 0xff, 0xff, 0xff}))
	})

	It("rejects malformed colors", func() {
		_, err := ParseHex("blue")
		Expect(err).To(HaveOccurred())
	})

	It("builds a palette from background to stroke", func() {
		p := DefaultStyle.palette(16)
		Expect(p).To(HaveLen(16))
		Expect(p[0]).To(Equal(DefaultStyle.Background))
		Expect(p[15]).To(Equal(DefaultStyle.Stroke))
	})
})
