//go:build wasip1

// Command fxyt-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: the FXYT program text on stdin → GIF bytes on stdout. Errors are
// written to stderr and exit with code 1. A single still frame is encoded as
// a one-frame GIF so the output format is uniform.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o fxyt.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo -n 'sin(X * 3) * cos(Y * 3)' | wasmtime fxyt.wasm > out.gif
package main

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/fxyt-lang/fxyt"
	"github.com/fxyt-lang/fxyt/pkg/render"
)

func main() {
	program, err := io.ReadAll(os.Stdin)
	if err != nil {
		fail(err)
	}

	// WASM runtimes are commonly single-threaded; render serially.
	result, err := fxyt.Render(string(program), render.WithParallelism(1))
	if err != nil {
		fail(err)
	}

	palette := render.Palette()
	out := &gif.GIF{}
	for i := range result.Frames {
		frame := &result.Frames[i]
		img := image.NewPaletted(image.Rect(0, 0, render.Size, render.Size), palette)
		for j, p := range frame.Pix {
			img.Pix[j] = p.R
		}
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, int(frame.Interval/(10*time.Millisecond)))
	}

	if err := gif.EncodeAll(os.Stdout, out); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
