// Command fxyt renders an FXYT program to an image file.
//
// Programs that reference the T coordinate produce an animated GIF; all
// other programs produce a single PNG frame.
//
// Usage:
//
//	fxyt [flags] "program"
//	fxyt [flags] -f program.fxyt
//
// Examples:
//
//	fxyt "sin(X * 3) * cos(Y * 3)"         # still image -> output.png
//	fxyt -o waves.gif "sin(X * 6 + T * 3)" # animation   -> waves.gif
//	fxyt -scale 3 "X * Y"                  # 768x768 output
package main

import (
	"flag"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/fxyt-lang/fxyt"
	"github.com/fxyt-lang/fxyt/pkg/render"
)

func main() {
	var (
		output      = flag.String("o", "", "output file (default output.png or output.gif)")
		programFile = flag.String("f", "", "read the program from a file instead of the command line")
		scale       = flag.Int("scale", 1, "integer upscale factor (nearest neighbor)")
		parallel    = flag.Int("parallel", 0, "row-rendering goroutines (0 = all CPUs)")
		verbose     = flag.Bool("v", false, "enable debug logging to stderr")
	)
	flag.Parse()

	program, err := readProgram(*programFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	opts := []render.Option{
		render.WithParallelism(*parallel),
		render.WithDebug(*verbose),
	}

	result, err := fxyt.Render(program, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	path := *output
	if path == "" {
		if result.Animated() {
			path = "output.gif"
		} else {
			path = "output.png"
		}
	}

	if err := writeResult(path, result, *scale); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readProgram returns the program text from the file or from the first
// command-line argument.
func readProgram(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: please pass the FXYT program as a command line argument.")
		fmt.Fprintln(os.Stderr, `For example: fxyt "sin(X * 3) * cos(Y * 3)".`)
		fmt.Fprintln(os.Stderr, `Programs that use T render as animated GIFs: fxyt "X * Y + T".`)
		return "", fmt.Errorf("no program given")
	}
	return flag.Arg(0), nil
}

// writeResult encodes the render result to path: PNG for a still frame, GIF
// for an animation.
func writeResult(path string, result *render.Result, scale int) error {
	if scale < 1 {
		scale = 1
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if result.Animated() {
		return gif.EncodeAll(out, buildGIF(result, scale))
	}
	return png.Encode(out, scaleNRGBA(result.Frames[0].Image(), scale))
}

// buildGIF assembles all frames into an animated GIF using the renderer's
// fixed 256-color palette. The per-frame delay is the frame interval in
// hundredths of a second.
func buildGIF(result *render.Result, scale int) *gif.GIF {
	palette := render.Palette()
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(result.Frames)),
		Delay: make([]int, 0, len(result.Frames)),
	}

	for i := range result.Frames {
		frame := &result.Frames[i]
		img := image.NewPaletted(image.Rect(0, 0, render.Size, render.Size), palette)
		for j, p := range frame.Pix {
			// The palette index of a color-mapped pixel is its red channel.
			img.Pix[j] = p.R
		}

		if scale > 1 {
			dst := image.NewPaletted(image.Rect(0, 0, render.Size*scale, render.Size*scale), palette)
			xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
			img = dst
		}

		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, int(frame.Interval/(10*time.Millisecond)))
	}

	return out
}

// scaleNRGBA upscales a still frame by an integer factor with hard pixel
// edges.
func scaleNRGBA(img *image.NRGBA, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
