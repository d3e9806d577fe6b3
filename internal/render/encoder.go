package render

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os/exec"
	"strconv"
)

// ErrFFmpegNotFound is returned when MP4 output is requested and no ffmpeg
// binary is on PATH.
var ErrFFmpegNotFound = errors.New("render: ffmpeg not found in PATH")

// gifColors is the palette size used for GIF frames.
const gifColors = 16

// FrameEncoder consumes animation frames. dirty is the part of frame that
// changed since the previous call; encoders may ignore it.
type FrameEncoder interface {
	Encode(frame *image.RGBA, dirty image.Rectangle) error
	Close() error
}

// GIFEncoder collects frames and writes an animated GIF on Close. After the
// first frame only the dirty rectangle is stored, drawn over the previous
// frame.
type GIFEncoder struct {
	w       io.Writer
	palette color.Palette
	anim    gif.GIF
	delay   int
}

// NewGIFEncoder writes to w at fps frames per second. GIF delays are in
// hundredths of a second, so rates above 100 fps play at 100.
func NewGIFEncoder(w io.Writer, style Style, fps int) *GIFEncoder {
	delay := 1
	if fps > 0 {
		delay = max(1, int(math.Round(100/float64(fps))))
	}
	return &GIFEncoder{w: w, delay: delay, palette: style.palette(gifColors)}
}

func (e *GIFEncoder) Encode(frame *image.RGBA, dirty image.Rectangle) error {
	if len(e.anim.Image) == 0 {
		b := frame.Bounds()
		e.anim.Config = image.Config{Width: b.Dx(), Height: b.Dy()}
		dirty = b
	}
	if dirty.Empty() {
		dirty = image.Rect(0, 0, 1, 1).Add(frame.Bounds().Min)
	}
	p := image.NewPaletted(dirty, e.palette)
	draw.Draw(p, dirty, frame, dirty.Min, draw.Src)
	e.anim.Image = append(e.anim.Image, p)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	e.anim.Disposal = append(e.anim.Disposal, gif.DisposalNone)
	return nil
}

func (e *GIFEncoder) Frames() int {
	return len(e.anim.Image)
}

func (e *GIFEncoder) Close() error {
	if len(e.anim.Image) == 0 {
		return nil
	}
	e.anim.Config.ColorModel = e.palette
	return gif.EncodeAll(e.w, &e.anim)
}

// FFmpegEncoder pipes PNG frames into an ffmpeg process producing an H.264
// MP4 file.
type FFmpegEncoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	buf   *bufio.Writer
	enc   png.Encoder
}

func NewFFmpegEncoder(ctx context.Context, path string, fps int) (*FFmpegEncoder, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrFFmpegNotFound
	}
	cmd := exec.CommandContext(ctx, bin,
		"-y", "-loglevel", "error",
		"-f", "image2pipe", "-framerate", strconv.Itoa(fps), "-i", "-",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2:color=white",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		path,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("render: start ffmpeg: %w", err)
	}
	return &FFmpegEncoder{
		cmd:   cmd,
		stdin: stdin,
		buf:   bufio.NewWriterSize(stdin, 1<<20),
		enc:   png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

func (e *FFmpegEncoder) Encode(frame *image.RGBA, _ image.Rectangle) error {
	return e.enc.Encode(e.buf, frame)
}

// Close flushes the remaining frames and waits for ffmpeg to exit.
func (e *FFmpegEncoder) Close() error {
	flushErr := e.buf.Flush()
	closeErr := e.stdin.Close()
	waitErr := e.cmd.Wait()
	if waitErr != nil {
		return fmt.Errorf("render: ffmpeg: %w", waitErr)
	}
	return errors.Join(flushErr, closeErr)
}
