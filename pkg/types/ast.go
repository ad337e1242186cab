package types

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types. The set is closed: the evaluator matches exhaustively on it.
const (
	NodeNumber    NodeType = "number"    // Numeric literal
	NodeCoord     NodeType = "coord"     // X, Y or T
	NodeUnary     NodeType = "unary"     // Unary minus
	NodeBinary    NodeType = "binary"    // + - * / % ^ and comparisons
	NodeCall      NodeType = "call"      // Built-in function call
	NodeCondition NodeType = "condition" // test ? consequent : alternate
)

// Coord names one of the three coordinates a program may reference.
// X and Y vary per pixel, T varies per frame.
type Coord uint8

const (
	CoordX Coord = iota
	CoordY
	CoordT
)

// String returns the source spelling of the coordinate.
func (c Coord) String() string {
	switch c {
	case CoordX:
		return "X"
	case CoordY:
		return "Y"
	case CoordT:
		return "T"
	default:
		return "(invalid)"
	}
}

// OpType identifies a unary or binary operator.
type OpType uint8

const (
	OpNone OpType = iota
	OpAdd         // +
	OpSub         // - (binary and unary)
	OpMul         // *
	OpDiv         // /
	OpMod         // %
	OpPow         // ^
	OpEq          // =
	OpNeq         // !=
	OpLt          // <
	OpLte         // <=
	OpGt          // >
	OpGte         // >=
)

// String returns the source spelling of the operator.
func (op OpType) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	default:
		return "(none)"
	}
}

// ASTNode represents a node in the Abstract Syntax Tree.
//
// A node exclusively owns its children: the AST is a tree, built once by the
// parser and immutable thereafter. It carries no per-evaluation state and is
// safe to evaluate concurrently from multiple goroutines.
type ASTNode struct {
	Type     NodeType
	Position int

	NumValue float64 // NodeNumber
	Coord    Coord   // NodeCoord
	Op       OpType  // NodeUnary, NodeBinary
	Name     string  // NodeCall

	LHS       *ASTNode   // Binary left operand; unary operand; conditional test
	RHS       *ASTNode   // Binary right operand; conditional consequent
	Otherwise *ASTNode   // Conditional alternate
	Arguments []*ASTNode // Call arguments, in source order
}

// References reports whether the subtree rooted at n contains a reference to
// the given coordinate. The renderer uses References(CoordT) once per render
// to fix the frame count before any pixel is evaluated.
func (n *ASTNode) References(c Coord) bool {
	if n == nil {
		return false
	}
	if n.Type == NodeCoord && n.Coord == c {
		return true
	}
	if n.LHS.References(c) || n.RHS.References(c) || n.Otherwise.References(c) {
		return true
	}
	for _, arg := range n.Arguments {
		if arg.References(c) {
			return true
		}
	}
	return false
}

// String returns a string representation of the node type.
func (n *ASTNode) String() string {
	return string(n.Type)
}

// arenaChunkSize is the number of ASTNode values pre-allocated per arena chunk.
// Most programs fit in a single chunk.
const arenaChunkSize = 64

// NodeArena is a bump-pointer allocator for ASTNode values.
//
// Instead of allocating each node individually on the heap, the arena
// pre-allocates fixed-size chunks of ASTNode structs and returns pointers into
// them. A typical program (< 64 nodes) requires only a single chunk
// allocation.
//
// The arena must stay alive as long as any pointer returned by Alloc is
// reachable; attaching it to the [Expression] achieves this.
//
// NodeArena is not thread-safe. Each parser owns its own arena and the arena
// is never shared across goroutines.
type NodeArena struct {
	chunks [][]ASTNode
	pos    int // next free index in the last chunk
}

// NewNodeArena allocates an arena pre-warmed with one initial chunk.
func NewNodeArena() *NodeArena {
	return &NodeArena{
		chunks: [][]ASTNode{make([]ASTNode, arenaChunkSize)},
		pos:    0,
	}
}

// Alloc returns a pointer to a zero-valued ASTNode inside the arena, with
// Type and Position set. All other fields remain at their zero values and
// must be filled by the caller.
func (a *NodeArena) Alloc(nodeType NodeType, position int) *ASTNode {
	if a.pos >= arenaChunkSize {
		a.chunks = append(a.chunks, make([]ASTNode, arenaChunkSize))
		a.pos = 0
	}
	n := &a.chunks[len(a.chunks)-1][a.pos]
	a.pos++
	n.Type = nodeType
	n.Position = position
	return n
}
