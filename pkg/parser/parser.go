// Package parser implements the FXYT lexer and parser.
//
// The parser is a hand-written recursive descent parser with one routine per
// precedence level. It consumes the token stream produced by the Lexer and
// builds an immutable Abstract Syntax Tree with detailed, fail-fast error
// reporting: the first lexical or grammatical error aborts the parse with a
// source position, and no partial AST is ever returned.
//
// # Grammar
//
//	expression     → conditional
//	conditional    → comparison [ "?" conditional ":" conditional ]
//	comparison     → additive { ("=" | "!=" | "<" | "<=" | ">" | ">=") additive }
//	additive       → multiplicative { ("+" | "-") multiplicative }
//	multiplicative → unary { ("*" | "/" | "%") unary }
//	unary          → "-" unary | power
//	power          → primary [ "^" unary ]
//	primary        → number | coordinate | "(" expression ")" | name "(" args ")"
//
// # Example
//
//	expr, err := parser.Parse("sin(X * 3.14) > Y ? 1 : 0 - T")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast := expr.AST()
package parser

import (
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Parse parses an FXYT program and returns the compiled Expression.
//
// The function tokenizes the input, builds an AST, validates function names
// and arities against the built-in table, and requires the whole input to be
// consumed. If parsing fails, it returns a structured *types.Error with
// position information.
func Parse(program string) (*types.Expression, error) {
	p := NewParser(program)
	return p.Parse()
}

// Compile is an alias for Parse, provided for API consistency.
func Compile(program string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(program, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits grammar recursion depth to prevent stack overflow on
	// pathologically nested input.
	MaxDepth int
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
