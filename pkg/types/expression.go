// Package types defines the core type system for FXYT.
//
// This package contains type definitions for:
//   - Expression: Compiled FXYT programs
//   - ASTNode: Abstract Syntax Tree nodes
//   - Coord, OpType: coordinate and operator tags
//   - Error: Structured errors with codes
package types

// Expression represents a compiled FXYT program.
//
// An Expression can be evaluated any number of times with different
// coordinates by passing its AST to the evaluator. It is safe for concurrent
// use by multiple goroutines.
type Expression struct {
	ast      *ASTNode
	source   string
	arena    *NodeArena // keeps arena-allocated nodes reachable
	usesTime bool
}

// NewExpression creates a new Expression from a parsed AST.
// The arena holding the nodes is retained so that node pointers stay valid
// for the lifetime of the Expression.
func NewExpression(ast *ASTNode, source string, arena *NodeArena) *Expression {
	return &Expression{
		ast:      ast,
		source:   source,
		arena:    arena,
		usesTime: ast.References(CoordT),
	}
}

// AST returns the Abstract Syntax Tree of the program.
func (e *Expression) AST() *ASTNode {
	return e.ast
}

// Source returns the original source text of the program.
func (e *Expression) Source() string {
	return e.source
}

// UsesTime reports whether the program references the T coordinate anywhere
// in its tree. Programs that use T render as a 256-frame animation; programs
// that do not render as a single still frame. The scan is done once at
// compile time.
func (e *Expression) UsesTime() bool {
	return e.usesTime
}

// String returns a string representation of the expression.
func (e *Expression) String() string {
	return e.source
}
