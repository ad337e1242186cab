package render

import (
	"image"
	"time"
)

const (
	// Size is the edge length of a frame in pixels. Frames are always
	// square: Size columns by Size rows.
	Size = 256

	// AnimationFrames is the number of frames rendered for a program that
	// references the T coordinate.
	AnimationFrames = 256

	// FrameInterval is the nominal display interval of every frame of an
	// animation (25 fps).
	FrameInterval = 40 * time.Millisecond
)

// Pixel is one RGB8 color value.
type Pixel struct {
	R, G, B uint8
}

// Frame is one complete rendered image: a row-major Size×Size grid of pixels
// (row 0 at the top, columns left to right) plus its nominal display
// interval. The interval is identical for every frame of a given render.
type Frame struct {
	Pix      []Pixel
	Interval time.Duration
}

// newFrame allocates a zeroed frame with the standard interval.
func newFrame() Frame {
	return Frame{
		Pix:      make([]Pixel, Size*Size),
		Interval: FrameInterval,
	}
}

// At returns the pixel at column x, row y.
func (f *Frame) At(x, y int) Pixel {
	return f.Pix[y*Size+x]
}

// Image converts the frame to an NRGBA image with full opacity.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for i, p := range f.Pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = 0xff
	}
	return img
}

// RGBA returns the frame as a flat RGBA byte slice (4 bytes per pixel,
// alpha 255), the layout expected by framebuffer-style consumers such as
// ebiten's WritePixels.
func (f *Frame) RGBA() []byte {
	buf := make([]byte, len(f.Pix)*4)
	for i, p := range f.Pix {
		o := i * 4
		buf[o+0] = p.R
		buf[o+1] = p.G
		buf[o+2] = p.B
		buf[o+3] = 0xff
	}
	return buf
}

// Result is an ordered sequence of frames: exactly one for a still program,
// exactly AnimationFrames for a program that references T.
type Result struct {
	Frames []Frame
}

// Animated reports whether the result holds more than one frame.
func (r *Result) Animated() bool {
	return len(r.Frames) > 1
}

// normalize maps an index in [0, n) onto the normalized coordinate range
// [-1, 1]: index 0 maps to -1 and index n-1 maps to +1.
func normalize(i, n int) float64 {
	return -1 + 2*float64(i)/float64(n-1)
}
