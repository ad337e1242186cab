// Package evaluator implements per-pixel evaluation of compiled FXYT
// programs.
//
// The evaluator receives the Abstract Syntax Tree produced by the parser and
// a [Context] holding the normalized coordinates of one pixel, and reduces
// the tree to a single finite float64.
//
// Eval is a pure function: it has no observable side effects, keeps no state
// between calls, and is safe to call concurrently with different contexts
// against the same AST. This purity is what makes per-pixel rendering
// embarrassingly parallel.
//
// # Example
//
//	expr, _ := parser.Parse("X * Y")
//	v, err := evaluator.Eval(expr.AST(), evaluator.Context{X: 0.5, Y: -0.5})
//	// v == -0.25
package evaluator

import (
	"fmt"
	"math"

	"github.com/fxyt-lang/fxyt/pkg/functions"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Eval evaluates the subtree rooted at node with the given coordinate
// context and returns the resulting scalar.
//
// Numeric semantics: standard IEEE-754 arithmetic for + - * /; % is the
// floating-point remainder; ^ is exponentiation via math.Pow; comparisons
// yield 1.0 for true and 0.0 for false. Division or remainder by exactly
// zero fails with a division-by-zero error, and a division or exponentiation
// that produces a non-finite value fails with a domain error, so every
// successful evaluation returns a finite float64.
//
// Evaluation fails on the first error encountered during the tree walk; the
// branch of a conditional not selected by its test is never evaluated.
func Eval(node *types.ASTNode, ctx Context) (float64, error) {
	switch node.Type {
	case types.NodeNumber:
		return node.NumValue, nil

	case types.NodeCoord:
		switch node.Coord {
		case types.CoordX:
			return ctx.X, nil
		case types.CoordY:
			return ctx.Y, nil
		default:
			return ctx.T, nil
		}

	case types.NodeUnary:
		operand, err := Eval(node.LHS, ctx)
		if err != nil {
			return 0, err
		}
		return -operand, nil

	case types.NodeBinary:
		return evalBinary(node, ctx)

	case types.NodeCall:
		return evalCall(node, ctx)

	case types.NodeCondition:
		test, err := Eval(node.LHS, ctx)
		if err != nil {
			return 0, err
		}
		// Short-circuit: only the selected branch is evaluated, so the other
		// branch may contain operations that would fail.
		if test != 0 {
			return Eval(node.RHS, ctx)
		}
		return Eval(node.Otherwise, ctx)

	default:
		return 0, &types.Error{
			Code:     types.ErrDomain,
			Message:  fmt.Sprintf("Invalid AST node type %q", node.Type),
			Position: node.Position,
		}
	}
}

// evalBinary evaluates a binary operator node. Both operands are evaluated
// (left first) before the operator is applied.
func evalBinary(node *types.ASTNode, ctx Context) (float64, error) {
	left, err := Eval(node.LHS, ctx)
	if err != nil {
		return 0, err
	}
	right, err := Eval(node.RHS, ctx)
	if err != nil {
		return 0, err
	}

	switch node.Op {
	case types.OpAdd:
		return left + right, nil
	case types.OpSub:
		return left - right, nil
	case types.OpMul:
		return left * right, nil
	case types.OpDiv:
		if right == 0 {
			return 0, divisionByZero(node, "Division by zero")
		}
		// A denormal divisor can overflow the quotient to infinity even
		// though it is not zero.
		result := left / right
		if math.IsNaN(result) || math.IsInf(result, 0) {
			return 0, &types.Error{
				Code:     types.ErrDomain,
				Message:  fmt.Sprintf("Operator /: non-finite result for %v / %v", left, right),
				Position: node.Position,
			}
		}
		return result, nil
	case types.OpMod:
		if right == 0 {
			return 0, divisionByZero(node, "Remainder by zero")
		}
		return math.Mod(left, right), nil
	case types.OpPow:
		result := math.Pow(left, right)
		if math.IsNaN(result) || math.IsInf(result, 0) {
			return 0, &types.Error{
				Code:     types.ErrDomain,
				Message:  fmt.Sprintf("Operator ^: non-finite result for %v ^ %v", left, right),
				Position: node.Position,
			}
		}
		return result, nil
	case types.OpEq:
		return boolToFloat(left == right), nil
	case types.OpNeq:
		return boolToFloat(left != right), nil
	case types.OpLt:
		return boolToFloat(left < right), nil
	case types.OpLte:
		return boolToFloat(left <= right), nil
	case types.OpGt:
		return boolToFloat(left > right), nil
	case types.OpGte:
		return boolToFloat(left >= right), nil
	default:
		return 0, &types.Error{
			Code:     types.ErrDomain,
			Message:  fmt.Sprintf("Invalid binary operator %q", node.Op),
			Position: node.Position,
		}
	}
}

// evalCall evaluates a function call node: arguments left to right, then
// dispatch to the built-in table.
func evalCall(node *types.ASTNode, ctx Context) (float64, error) {
	// Calls have at most two arguments for every built-in; a small stack
	// buffer avoids a per-call heap allocation.
	var buf [4]float64
	args := buf[:0]
	for _, arg := range node.Arguments {
		v, err := Eval(arg, ctx)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}

	result, err := functions.Call(node.Name, args)
	if err != nil {
		// Stamp the call site position onto registry errors.
		if e, ok := err.(*types.Error); ok && e.Position < 0 {
			stamped := *e
			stamped.Position = node.Position
			return 0, &stamped
		}
		return 0, err
	}
	return result, nil
}

func divisionByZero(node *types.ASTNode, message string) error {
	return &types.Error{
		Code:     types.ErrDivisionByZero,
		Message:  message,
		Position: node.Position,
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
