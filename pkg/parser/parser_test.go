package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fxyt-lang/fxyt/pkg/parser"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Helper functions

func parse(t *testing.T, program string) *types.Expression {
	t.Helper()

	expr, err := parser.Parse(program)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", program, err)
	}
	return expr
}

func parseErrCode(t *testing.T, program string) types.ErrorCode {
	t.Helper()

	_, err := parser.Parse(program)
	if err == nil {
		t.Fatalf("expected %q to fail to parse", program)
	}

	var ferr *types.Error
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *types.Error for %q, got %T: %v", program, err, err)
	}
	return ferr.Code
}

// AST shape tests

func TestParseLiteral(t *testing.T) {
	ast := parse(t, "3.25").AST()
	if ast.Type != types.NodeNumber || ast.NumValue != 3.25 {
		t.Fatalf("got %+v, want number 3.25", ast)
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		program string
		coord   types.Coord
	}{
		{"X", types.CoordX},
		{"x", types.CoordX},
		{"Y", types.CoordY},
		{"t", types.CoordT},
	}

	for _, tt := range tests {
		ast := parse(t, tt.program).AST()
		if ast.Type != types.NodeCoord || ast.Coord != tt.coord {
			t.Errorf("%q: got %+v, want coordinate %s", tt.program, ast, tt.coord)
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	ast := parse(t, "1 + 2 * 3").AST()
	if ast.Type != types.NodeBinary || ast.Op != types.OpAdd {
		t.Fatalf("root: got %v %v, want binary +", ast.Type, ast.Op)
	}
	if ast.RHS.Type != types.NodeBinary || ast.RHS.Op != types.OpMul {
		t.Fatalf("rhs: got %v %v, want binary *", ast.RHS.Type, ast.RHS.Op)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 must parse as (1 - 2) - 3.
	ast := parse(t, "1 - 2 - 3").AST()
	if ast.Op != types.OpSub || ast.LHS.Op != types.OpSub {
		t.Fatalf("got %+v, want left-deep subtraction", ast)
	}
	if ast.RHS.NumValue != 3 {
		t.Fatalf("rhs: got %v, want 3", ast.RHS.NumValue)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 must parse as 2 ^ (3 ^ 2).
	ast := parse(t, "2 ^ 3 ^ 2").AST()
	if ast.Op != types.OpPow {
		t.Fatalf("root: got %v, want ^", ast.Op)
	}
	if ast.RHS.Op != types.OpPow {
		t.Fatalf("rhs: got %v, want ^", ast.RHS.Op)
	}
	if ast.LHS.NumValue != 2 {
		t.Fatalf("lhs: got %v, want 2", ast.LHS.NumValue)
	}
}

func TestParseUnaryBindsLooserThanPower(t *testing.T) {
	// -2 ^ 2 must parse as -(2 ^ 2).
	ast := parse(t, "-2 ^ 2").AST()
	if ast.Type != types.NodeUnary {
		t.Fatalf("root: got %v, want unary", ast.Type)
	}
	if ast.LHS.Type != types.NodeBinary || ast.LHS.Op != types.OpPow {
		t.Fatalf("operand: got %+v, want binary ^", ast.LHS)
	}
}

func TestParseConditional(t *testing.T) {
	ast := parse(t, "X < Y ? 1 : 0").AST()
	if ast.Type != types.NodeCondition {
		t.Fatalf("root: got %v, want condition", ast.Type)
	}
	if ast.LHS.Type != types.NodeBinary || ast.LHS.Op != types.OpLt {
		t.Fatalf("test: got %+v, want binary <", ast.LHS)
	}
	if ast.RHS.NumValue != 1 || ast.Otherwise.NumValue != 0 {
		t.Fatalf("branches: got %v / %v, want 1 / 0", ast.RHS.NumValue, ast.Otherwise.NumValue)
	}
}

func TestParseConditionalRightAssociative(t *testing.T) {
	// X ? 1 : Y ? 2 : 3 must parse as X ? 1 : (Y ? 2 : 3).
	ast := parse(t, "X ? 1 : Y ? 2 : 3").AST()
	if ast.Type != types.NodeCondition {
		t.Fatalf("root: got %v, want condition", ast.Type)
	}
	if ast.Otherwise.Type != types.NodeCondition {
		t.Fatalf("alternate: got %v, want nested condition", ast.Otherwise.Type)
	}
}

func TestParseCall(t *testing.T) {
	ast := parse(t, "min(X, Y + 1)").AST()
	if ast.Type != types.NodeCall || ast.Name != "min" {
		t.Fatalf("got %+v, want call to min", ast)
	}
	if len(ast.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(ast.Arguments))
	}
	if ast.Arguments[1].Type != types.NodeBinary {
		t.Fatalf("second argument: got %v, want binary", ast.Arguments[1].Type)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	ast := parse(t, "(1 + 2) * 3").AST()
	if ast.Op != types.OpMul || ast.LHS.Op != types.OpAdd {
		t.Fatalf("got %+v, want (+) under (*)", ast)
	}
}

func TestParseNestedCalls(t *testing.T) {
	parse(t, "max(abs(X), sqrt(abs(Y)))")
	parse(t, "sin(cos(tan(T)))")
	parse(t, "atan2(Y, X) / 3.14159")
}

func TestUsesTime(t *testing.T) {
	tests := []struct {
		program string
		want    bool
	}{
		{"X * Y", false},
		{"T", true},
		{"sin(X + cos(T))", true},
		{"X < Y ? 1 : T", true},
		{"1 + 2", false},
	}

	for _, tt := range tests {
		if got := parse(t, tt.program).UsesTime(); got != tt.want {
			t.Errorf("%q: UsesTime() = %v, want %v", tt.program, got, tt.want)
		}
	}
}

// Error tests

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		program string
		code    types.ErrorCode
	}{
		{"trailing operator", "1 +", types.ErrUnexpectedEnd},
		{"empty program", "", types.ErrUnexpectedEnd},
		{"unclosed paren", "(1 + 2", types.ErrUnexpectedEnd},
		{"missing ternary alternate", "X ? 1 :", types.ErrUnexpectedEnd},
		{"unclosed call", "min(1, 2", types.ErrUnexpectedEnd},
		{"double operator", "1 + + 2", types.ErrUnexpectedToken},
		{"trailing tokens", "1 2", types.ErrUnexpectedToken},
		{"lone close paren", ")", types.ErrUnexpectedToken},
		{"name without call", "sin 1", types.ErrUnexpectedToken},
		{"missing comma", "min(1 2)", types.ErrUnexpectedToken},
		{"trailing comma", "min(1, 2,)", types.ErrUnexpectedToken},
		{"lone comma argument", "sin(,)", types.ErrUnexpectedToken},
		{"missing ternary colon", "X ? 1 2", types.ErrUnexpectedToken},
		{"unknown function", "foo(1)", types.ErrUnknownFunction},
		{"too few arguments", "min(1)", types.ErrArityMismatch},
		{"too many arguments", "abs(1, 2)", types.ErrArityMismatch},
		{"no arguments", "sin()", types.ErrArityMismatch},
		{"invalid character", "1 + $", types.ErrUnexpectedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := parseErrCode(t, tt.program); code != tt.code {
				t.Errorf("%q: got code %s, want %s", tt.program, code, tt.code)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("1 + foo(2)")
	var ferr *types.Error
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *types.Error, got %T", err)
	}
	if ferr.Code != types.ErrUnknownFunction {
		t.Fatalf("got code %s, want %s", ferr.Code, types.ErrUnknownFunction)
	}
	if ferr.Position != 4 {
		t.Errorf("got position %d, want 4", ferr.Position)
	}
	if ferr.Token != "foo" {
		t.Errorf("got token %q, want %q", ferr.Token, "foo")
	}
}

func TestParseMaxDepth(t *testing.T) {
	// All right-recursive forms must hit the limit, not just parentheses.
	deep := []struct {
		name    string
		program string
	}{
		{"parentheses", "((((((((1))))))))"},
		{"ternary chain", strings.Repeat("0 ? 1 : ", 8) + "2"},
		{"unary chain", strings.Repeat("-", 8) + "1"},
		{"exponent chain", strings.Repeat("2 ^ -", 8) + "1"},
	}

	for _, tt := range deep {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.Compile(tt.program, parser.WithMaxDepth(5)); err == nil {
				t.Fatalf("expected depth error for %q", tt.program)
			}
			if _, err := parser.Compile(tt.program, parser.WithMaxDepth(50)); err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.program, err)
			}
		})
	}
}
