// Command fxyt-view renders an FXYT program and plays it in a window.
//
// Still programs show a static 256×256 image; programs that use T loop
// through all 256 animation frames at the nominal frame interval.
//
// Keys: space pauses and resumes, R restarts from the first frame,
// Escape quits.
//
// Usage:
//
//	fxyt-view "sin(X * 6 + T * 3)"
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/fxyt-lang/fxyt"
	"github.com/fxyt-lang/fxyt/pkg/render"
)

// Game plays a rendered result frame by frame.
type Game struct {
	result  *render.Result
	canvas  *ebiten.Image // reused 256×256 bitmap canvas
	frame   int
	paused  bool
	nextAt  time.Time
	refresh bool // canvas must be rewritten on the next draw
}

func newGame(result *render.Result) *Game {
	return &Game{
		result:  result,
		nextAt:  time.Now(),
		refresh: true,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.nextAt = time.Now()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.frame = 0
		g.refresh = true
		g.nextAt = time.Now()
	}

	if g.paused || !g.result.Animated() {
		return nil
	}

	// Advance frames on the wall clock so playback speed is independent of
	// the display refresh rate.
	now := time.Now()
	for !now.Before(g.nextAt) {
		g.frame = (g.frame + 1) % len(g.result.Frames)
		g.nextAt = g.nextAt.Add(g.result.Frames[g.frame].Interval)
		g.refresh = true
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(render.Size, render.Size)
		g.refresh = true
	}

	if g.refresh {
		g.canvas.WritePixels(g.result.Frames[g.frame].RGBA())
		g.refresh = false
	}

	screen.DrawImage(g.canvas, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.Size, render.Size
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: please pass the FXYT program as a command line argument.")
		fmt.Fprintln(os.Stderr, `For example: fxyt-view "sin(X * 6 + T * 3)".`)
		os.Exit(2)
	}

	result, err := fxyt.Render(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(render.Size*2, render.Size*2)
	ebiten.SetWindowTitle("fxyt-view")
	if err := ebiten.RunGame(newGame(result)); err != nil {
		log.Fatal(err)
	}
}
