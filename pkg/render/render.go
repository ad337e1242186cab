// Package render orchestrates turning FXYT program text into frames.
//
// A render compiles the program (optionally through an LRU cache), decides
// the frame count — one still frame, or [AnimationFrames] frames when the
// program references the T coordinate — and then evaluates the program once
// per (frame, row, column) with normalized coordinates, mapping each
// resulting scalar through the fixed color map.
//
// Rendering is deterministic: repeated renders of the same program produce
// byte-identical frames, with or without parallelism. The first error at any
// phase (lexing, parsing, or the evaluation of any single pixel) aborts the
// whole render; no partial image is returned.
//
// # Example
//
//	result, err := render.New().Render("sin(X * 3) * cos(Y * 3)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := result.Frames[0].Image()
package render

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fxyt-lang/fxyt/pkg/cache"
	"github.com/fxyt-lang/fxyt/pkg/evaluator"
	"github.com/fxyt-lang/fxyt/pkg/parser"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Options configures a Renderer.
type Options struct {
	// Parallelism is the number of goroutines used to evaluate pixel rows.
	// 0 selects runtime.GOMAXPROCS(0); 1 renders serially. Parallelism is a
	// performance option only: output is identical at any setting.
	Parallelism int
	// Caching enables compilation caching keyed by program text.
	Caching bool
	// CacheSize sets the maximum number of cached programs. Only used when
	// Caching is true and no explicit Cache is provided. Defaults to 64.
	CacheSize int
	// Cache is a custom compilation cache. If non-nil, Caching is implicitly
	// enabled.
	Cache *cache.Cache
	// Logger for structured logging. The renderer is silent by default.
	Logger *slog.Logger
	// Debug enables debug logging. When no Logger is supplied, a debug-level
	// text handler writing to stderr is installed instead of the silent
	// default.
	Debug bool
}

// Option configures a Renderer.
type Option func(*Options)

// WithParallelism sets the number of row-rendering goroutines.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

// WithCaching enables or disables compilation caching.
func WithCaching(enable bool) Option {
	return func(o *Options) { o.Caching = enable }
}

// WithCacheSize sets the compilation cache capacity.
func WithCacheSize(size int) Option {
	return func(o *Options) { o.CacheSize = size }
}

// WithCache supplies a custom compilation cache.
func WithCache(c *cache.Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// WithLogger sets the logger used by the renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithDebug enables or disables debug logging.
func WithDebug(enable bool) Option {
	return func(o *Options) { o.Debug = enable }
}

// Renderer renders FXYT programs into frames. A Renderer is immutable after
// creation and safe for concurrent use by multiple goroutines.
type Renderer struct {
	opts   Options
	logger *slog.Logger
	cache  *cache.Cache // non-nil when caching is enabled
}

// New creates a new Renderer with the given options.
func New(opts ...Option) *Renderer {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		if options.Debug {
			options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		} else {
			options.Logger = newNopLogger()
		}
	}

	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		c = cache.New(options.CacheSize)
	}

	return &Renderer{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Render is a convenience function that renders a program with a default
// Renderer.
func Render(program string) (*Result, error) {
	return New().Render(program)
}

// Render compiles and renders the given program text.
func (r *Renderer) Render(program string) (*Result, error) {
	return r.RenderContext(context.Background(), program)
}

// RenderContext is like Render but honors cancellation between frames and
// rows. A render either completes deterministically or fails on the first
// error encountered.
func (r *Renderer) RenderContext(ctx context.Context, program string) (*Result, error) {
	expr, err := r.compile(program)
	if err != nil {
		return nil, err
	}
	return r.RenderExpression(ctx, expr)
}

// RenderExpression renders an already-compiled program. Callers that render
// the same program repeatedly can compile once and reuse the Expression.
func (r *Renderer) RenderExpression(ctx context.Context, expr *types.Expression) (*Result, error) {
	// The frame count is a static property of the AST, fixed here before any
	// pixel is evaluated.
	frameCount := 1
	if expr.UsesTime() {
		frameCount = AnimationFrames
	}

	workers := r.opts.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	r.logger.Debug("render start",
		slog.String("program", expr.Source()),
		slog.Int("frames", frameCount),
		slog.Int("workers", workers))

	result := &Result{Frames: make([]Frame, frameCount)}
	for f := 0; f < frameCount; f++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := 0.0
		if frameCount > 1 {
			t = normalize(f, frameCount)
		}

		frame, err := r.renderFrame(ctx, expr, t, workers)
		if err != nil {
			return nil, err
		}
		result.Frames[f] = frame
	}

	r.logger.Debug("render done",
		slog.Int("frames", frameCount),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// renderFrame evaluates one full frame at time coordinate t.
// Rows are partitioned into disjoint bands, so parallel workers never touch
// the same pixel and no synchronization beyond the group wait is needed.
func (r *Renderer) renderFrame(ctx context.Context, expr *types.Expression, t float64, workers int) (Frame, error) {
	frame := newFrame()
	ast := expr.AST()

	if workers == 1 {
		if err := renderRows(ctx, ast, frame.Pix, 0, Size, t); err != nil {
			return Frame{}, err
		}
		return frame, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	band := (Size + workers - 1) / workers
	for y0 := 0; y0 < Size; y0 += band {
		y0, y1 := y0, min(y0+band, Size)
		g.Go(func() error {
			return renderRows(gctx, ast, frame.Pix, y0, y1, t)
		})
	}
	if err := g.Wait(); err != nil {
		return Frame{}, err
	}
	return frame, nil
}

// renderRows evaluates rows [y0, y1) of one frame into pix.
func renderRows(ctx context.Context, ast *types.ASTNode, pix []Pixel, y0, y1 int, t float64) error {
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ny := normalize(y, Size)
		for x := 0; x < Size; x++ {
			v, err := evaluator.Eval(ast, evaluator.Context{
				X: normalize(x, Size),
				Y: ny,
				T: t,
			})
			if err != nil {
				return err
			}
			pix[y*Size+x] = ColorMap(v)
		}
	}
	return nil
}

// compile parses the program, going through the cache when enabled.
func (r *Renderer) compile(program string) (*types.Expression, error) {
	if r.cache != nil {
		return r.cache.GetOrCompile(program, func() (*types.Expression, error) {
			return parser.Parse(program)
		})
	}
	return parser.Parse(program)
}
