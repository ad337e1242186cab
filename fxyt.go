// Package fxyt renders still images and short animations from FXYT programs.
//
// An FXYT program is a single arithmetic expression over the normalized
// coordinates X, Y and T, each in [-1, 1]. The program is evaluated once per
// pixel (and, when it references T, once per pixel per frame) to a scalar
// that a fixed color map turns into an RGB8 pixel. Programs that use T
// render as 256-frame animations; programs that do not render as one still
// 256×256 frame.
//
// # Quick Start
//
//	// Render in one call
//	result, err := fxyt.Render("sin(X * 3) * cos(Y * 3)")
//
//	// Compile once, render many times
//	expr, err := fxyt.Compile("X * Y + T")
//	r := render.New(render.WithCaching(true))
//	result1, _ := r.RenderExpression(ctx, expr)
//
// # Language
//
// Operators, low to high precedence: conditional (test ? a : b,
// right-associative), comparison (= != < <= > >=, yielding 1 or 0),
// additive (+ -), multiplicative (* / %), unary minus, exponentiation (^,
// right-associative). Built-in functions include sin, cos, tan, abs, sqrt,
// floor, ceil, exp, log, atan, min, max, pow and atan2.
//
// Division or remainder by zero and out-of-domain function arguments fail
// the render; the untaken branch of a conditional is never evaluated, so it
// may guard such operations.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/fxyt-lang/fxyt/pkg/parser
//   - Evaluator: github.com/fxyt-lang/fxyt/pkg/evaluator
//   - Renderer: github.com/fxyt-lang/fxyt/pkg/render
//   - Functions: github.com/fxyt-lang/fxyt/pkg/functions
package fxyt

import (
	"fmt"

	"github.com/fxyt-lang/fxyt/pkg/parser"
	"github.com/fxyt-lang/fxyt/pkg/render"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Version returns the current version of the FXYT renderer.
func Version() string {
	return "v0.1.0-dev"
}

// Compile compiles an FXYT program for repeated rendering.
//
// The compiled expression can be rendered multiple times and is safe for
// concurrent use.
func Compile(program string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(program, opts...)
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies safe initialization of global variables.
func MustCompile(program string) *types.Expression {
	expr, err := Compile(program)
	if err != nil {
		panic(fmt.Sprintf("fxyt: Compile(%q): %v", program, err))
	}
	return expr
}

// Render is a convenience function that compiles and renders a program in a
// single call, with default renderer options.
//
// For repeated renders, create a [render.Renderer] once and reuse it.
func Render(program string, opts ...render.Option) (*render.Result, error) {
	return render.New(opts...).Render(program)
}
