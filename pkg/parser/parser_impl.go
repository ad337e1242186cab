package parser

import (
	"fmt"
	"strconv"

	"github.com/fxyt-lang/fxyt/pkg/functions"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

// Parser implements a recursive descent parser for FXYT programs.
// Each precedence level of the grammar is one parsing routine; the only
// shared state between them is the cursor into the token stream.
type Parser struct {
	lexer   *Lexer
	current Token
	arena   *types.NodeArena
	opts    CompileOptions
	depth   int
}

// NewParser creates a new parser for the given input string.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		lexer: NewLexer(input),
		arena: types.NewNodeArena(),
		opts:  options,
	}

	// Read the first token
	p.advance()

	return p
}

// Parse parses the entire program and returns the compiled Expression.
// After the top-level expression, the next token must be EOF; trailing
// tokens are rejected.
func (p *Parser) Parse() (*types.Expression, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current.Type == TokenError {
		return nil, p.lexer.Error()
	}
	if p.current.Type != TokenEOF {
		return nil, p.error(types.ErrUnexpectedToken,
			fmt.Sprintf("Unexpected trailing token %q after expression", p.current.Value))
	}

	return types.NewExpression(node, p.lexer.input, p.arena), nil
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.lexer.Next()
}

// expect checks that the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	switch p.current.Type {
	case tt:
		p.advance()
		return nil
	case TokenError:
		return p.lexer.Error()
	case TokenEOF:
		return p.eofError(fmt.Sprintf("expected %s", tt.String()))
	default:
		return p.error(types.ErrUnexpectedToken,
			fmt.Sprintf("Expected %s but got %s", tt.String(), p.current.Type.String()))
	}
}

// error creates a parser error at the current token.
func (p *Parser) error(code types.ErrorCode, message string) error {
	return &types.Error{
		Code:     code,
		Message:  message,
		Position: p.current.Position,
		Token:    p.current.Value,
	}
}

// eofError creates an unexpected-end-of-input error.
func (p *Parser) eofError(expected string) error {
	return &types.Error{
		Code:     types.ErrUnexpectedEnd,
		Message:  fmt.Sprintf("Unexpected end of input, %s", expected),
		Position: p.current.Position,
	}
}

// enter tracks one level of recursive descent and enforces MaxDepth.
// Every routine that recurses other than through parseExpression must
// call it too, or deeply right-nested programs would bypass the limit.
func (p *Parser) enter() error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return p.error(types.ErrUnexpectedToken, "Expression nested too deeply")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseExpression parses a full expression (the lowest-precedence level).
func (p *Parser) parseExpression() (*types.ASTNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseConditional()
}

// parseConditional parses the ternary operator:
//
//	test ? consequent : alternate
//
// Right-associative; the lowest-precedence operator in the language.
func (p *Parser) parseConditional() (*types.ASTNode, error) {
	test, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenCondition {
		return test, nil
	}

	node := p.arena.Alloc(types.NodeCondition, p.current.Position)
	p.advance()

	consequent, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	alternate, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	node.LHS = test
	node.RHS = consequent
	node.Otherwise = alternate
	return node, nil
}

// parseComparison parses equality and relational operators, left-associative.
// Comparisons evaluate to 1.0 (true) or 0.0 (false) so they compose with
// arithmetic.
func (p *Parser) parseComparison() (*types.ASTNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op types.OpType
		switch p.current.Type {
		case TokenEqual:
			op = types.OpEq
		case TokenNotEqual:
			op = types.OpNeq
		case TokenLess:
			op = types.OpLt
		case TokenLessEqual:
			op = types.OpLte
		case TokenGreater:
			op = types.OpGt
		case TokenGreaterEqual:
			op = types.OpGte
		default:
			return left, nil
		}

		node := p.arena.Alloc(types.NodeBinary, p.current.Position)
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		node.Op = op
		node.LHS = left
		node.RHS = right
		left = node
	}
}

// parseAdditive parses + and -, left-associative.
func (p *Parser) parseAdditive() (*types.ASTNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op types.OpType
		switch p.current.Type {
		case TokenPlus:
			op = types.OpAdd
		case TokenMinus:
			op = types.OpSub
		default:
			return left, nil
		}

		node := p.arena.Alloc(types.NodeBinary, p.current.Position)
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		node.Op = op
		node.LHS = left
		node.RHS = right
		left = node
	}
}

// parseMultiplicative parses *, / and %, left-associative.
func (p *Parser) parseMultiplicative() (*types.ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		var op types.OpType
		switch p.current.Type {
		case TokenMult:
			op = types.OpMul
		case TokenDiv:
			op = types.OpDiv
		case TokenMod:
			op = types.OpMod
		default:
			return left, nil
		}

		node := p.arena.Alloc(types.NodeBinary, p.current.Position)
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node.Op = op
		node.LHS = left
		node.RHS = right
		left = node
	}
}

// parseUnary parses unary minus. Exponentiation binds tighter, so
// -2^2 parses as -(2^2).
func (p *Parser) parseUnary() (*types.ASTNode, error) {
	if p.current.Type != TokenMinus {
		return p.parsePower()
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	node := p.arena.Alloc(types.NodeUnary, p.current.Position)
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	node.Op = types.OpSub
	node.LHS = operand
	return node, nil
}

// parsePower parses the exponentiation operator ^, right-associative.
// The exponent is parsed at the unary level so that 2^-3 is valid.
func (p *Parser) parsePower() (*types.ASTNode, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenPow {
		return base, nil
	}

	node := p.arena.Alloc(types.NodeBinary, p.current.Position)
	p.advance()
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	node.Op = types.OpPow
	node.LHS = base
	node.RHS = exponent
	return node, nil
}

// parsePrimary parses the highest-precedence forms: number literals,
// coordinates, parenthesized expressions and function calls.
func (p *Parser) parsePrimary() (*types.ASTNode, error) {
	switch p.current.Type {
	case TokenNumber:
		return p.parseNumber()
	case TokenCoord:
		return p.parseCoord()
	case TokenParenOpen:
		p.advance()
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenParenClose); err != nil {
			return nil, err
		}
		return node, nil
	case TokenName:
		return p.parseCall()
	case TokenEOF:
		return nil, p.eofError("expected an expression")
	case TokenError:
		return nil, p.lexer.Error()
	default:
		return nil, p.error(types.ErrUnexpectedToken,
			fmt.Sprintf("Unexpected token %q, expected an expression", p.current.Value))
	}
}

// parseNumber parses a numeric literal token into a NodeNumber.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	value, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		return nil, p.error(types.ErrUnexpectedToken,
			fmt.Sprintf("Invalid number literal %q", p.current.Value))
	}

	node := p.arena.Alloc(types.NodeNumber, p.current.Position)
	node.NumValue = value
	p.advance()
	return node, nil
}

// parseCoord parses a coordinate token into a NodeCoord.
func (p *Parser) parseCoord() (*types.ASTNode, error) {
	node := p.arena.Alloc(types.NodeCoord, p.current.Position)
	switch p.current.Value {
	case "X", "x":
		node.Coord = types.CoordX
	case "Y", "y":
		node.Coord = types.CoordY
	case "T", "t":
		node.Coord = types.CoordT
	}
	p.advance()
	return node, nil
}

// parseCall parses a built-in function call: name(arg, arg, ...).
// The name is validated against the function table and the argument count
// against the function's arity, both at parse time.
func (p *Parser) parseCall() (*types.ASTNode, error) {
	name := p.current.Value
	position := p.current.Position
	p.advance()

	switch p.current.Type {
	case TokenParenOpen:
	case TokenError:
		return nil, p.lexer.Error()
	case TokenEOF:
		return nil, p.eofError(fmt.Sprintf("expected ( after function name %q", name))
	default:
		return nil, p.error(types.ErrUnexpectedToken,
			fmt.Sprintf("Expected ( after function name %q", name))
	}

	def, ok := functions.Lookup(name)
	if !ok {
		return nil, &types.Error{
			Code:     types.ErrUnknownFunction,
			Message:  fmt.Sprintf("Unknown function %q", name),
			Position: position,
			Token:    name,
		}
	}
	p.advance()

	node := p.arena.Alloc(types.NodeCall, position)
	node.Name = name

	// Each comma must be followed by another argument; a trailing comma
	// before the closing paren is rejected.
	if p.current.Type != TokenParenClose {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			node.Arguments = append(node.Arguments, arg)

			if p.current.Type != TokenComma {
				break
			}
			p.advance()
		}
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	if len(node.Arguments) != def.Arity {
		return nil, &types.Error{
			Code:     types.ErrArityMismatch,
			Message:  fmt.Sprintf("Function %q expects %d argument(s), got %d", name, def.Arity, len(node.Arguments)),
			Position: position,
			Token:    name,
		}
	}

	return node, nil
}
