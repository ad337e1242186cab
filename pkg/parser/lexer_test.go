package parser_test

import (
	"errors"
	"testing"

	"github.com/fxyt-lang/fxyt/pkg/parser"
	"github.com/fxyt-lang/fxyt/pkg/types"
)

type lexerTestCase struct {
	name      string
	input     string
	expected  []parser.Token
	expectErr bool
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := parser.NewLexer(tt.input)

			for i, want := range tt.expected {
				got := l.Next()
				if got != want {
					t.Fatalf("token %d: got %+v, want %+v", i, got, want)
				}
			}

			last := l.Next()
			if tt.expectErr {
				if last.Type != parser.TokenError {
					t.Fatalf("expected error token, got %+v", last)
				}
				if l.Error() == nil {
					t.Fatal("expected lexer error, got nil")
				}
				return
			}

			if last.Type != parser.TokenEOF {
				t.Fatalf("expected EOF, got %+v", last)
			}
			// EOF is sticky.
			if again := l.Next(); again.Type != parser.TokenEOF {
				t.Fatalf("expected repeated EOF, got %+v", again)
			}
			if l.Error() != nil {
				t.Fatalf("unexpected lexer error: %v", l.Error())
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "integer",
			input: "123",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "123", Position: 0},
			},
		},
		{
			name:  "zero",
			input: "0",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "0", Position: 0},
			},
		},
		{
			name:  "decimal",
			input: "3.14",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "3.14", Position: 0},
			},
		},
		{
			name:  "leading whitespace",
			input: "  \t42",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "42", Position: 3},
			},
		},
	})
}

func TestLexerCoordinates(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "upper case",
			input: "X Y T",
			expected: []parser.Token{
				{Type: parser.TokenCoord, Value: "X", Position: 0},
				{Type: parser.TokenCoord, Value: "Y", Position: 2},
				{Type: parser.TokenCoord, Value: "T", Position: 4},
			},
		},
		{
			name:  "lower case",
			input: "x*y",
			expected: []parser.Token{
				{Type: parser.TokenCoord, Value: "x", Position: 0},
				{Type: parser.TokenMult, Value: "*", Position: 1},
				{Type: parser.TokenCoord, Value: "y", Position: 2},
			},
		},
		{
			name:  "multi-letter name",
			input: "sqrt",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "sqrt", Position: 0},
			},
		},
	})
}

func TestLexerOperators(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "arithmetic",
			input: "+ - * / % ^",
			expected: []parser.Token{
				{Type: parser.TokenPlus, Value: "+", Position: 0},
				{Type: parser.TokenMinus, Value: "-", Position: 2},
				{Type: parser.TokenMult, Value: "*", Position: 4},
				{Type: parser.TokenDiv, Value: "/", Position: 6},
				{Type: parser.TokenMod, Value: "%", Position: 8},
				{Type: parser.TokenPow, Value: "^", Position: 10},
			},
		},
		{
			name:  "comparisons",
			input: "= != < <= > >=",
			expected: []parser.Token{
				{Type: parser.TokenEqual, Value: "=", Position: 0},
				{Type: parser.TokenNotEqual, Value: "!=", Position: 2},
				{Type: parser.TokenLess, Value: "<", Position: 5},
				{Type: parser.TokenLessEqual, Value: "<=", Position: 7},
				{Type: parser.TokenGreater, Value: ">", Position: 10},
				{Type: parser.TokenGreaterEqual, Value: ">=", Position: 12},
			},
		},
		{
			name:  "two-char not split by whitespace",
			input: "<=>",
			expected: []parser.Token{
				{Type: parser.TokenLessEqual, Value: "<=", Position: 0},
				{Type: parser.TokenGreater, Value: ">", Position: 2},
			},
		},
		{
			name:  "punctuation",
			input: "(,)?:",
			expected: []parser.Token{
				{Type: parser.TokenParenOpen, Value: "(", Position: 0},
				{Type: parser.TokenComma, Value: ",", Position: 1},
				{Type: parser.TokenParenClose, Value: ")", Position: 2},
				{Type: parser.TokenCondition, Value: "?", Position: 3},
				{Type: parser.TokenColon, Value: ":", Position: 4},
			},
		},
	})
}

func TestLexerCall(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:  "call with two arguments",
			input: "min(X, 0.5)",
			expected: []parser.Token{
				{Type: parser.TokenName, Value: "min", Position: 0},
				{Type: parser.TokenParenOpen, Value: "(", Position: 3},
				{Type: parser.TokenCoord, Value: "X", Position: 4},
				{Type: parser.TokenComma, Value: ",", Position: 5},
				{Type: parser.TokenNumber, Value: "0.5", Position: 7},
				{Type: parser.TokenParenClose, Value: ")", Position: 10},
			},
		},
	})
}

func TestLexerErrors(t *testing.T) {
	runLexerTests(t, []lexerTestCase{
		{
			name:      "invalid character",
			input:     "#",
			expectErr: true,
		},
		{
			name:  "invalid character after valid token",
			input: "1 @",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "1", Position: 0},
			},
			expectErr: true,
		},
		{
			name:      "bare exclamation mark",
			input:     "!",
			expectErr: true,
		},
	})
}

func TestLexerErrorDetails(t *testing.T) {
	l := parser.NewLexer("X @ Y")
	l.Next() // X

	tok := l.Next()
	if tok.Type != parser.TokenError {
		t.Fatalf("expected error token, got %+v", tok)
	}

	var ferr *types.Error
	if !errors.As(l.Error(), &ferr) {
		t.Fatalf("expected *types.Error, got %T", l.Error())
	}
	if ferr.Code != types.ErrUnexpectedChar {
		t.Errorf("got code %s, want %s", ferr.Code, types.ErrUnexpectedChar)
	}
	if ferr.Position != 2 {
		t.Errorf("got position %d, want 2", ferr.Position)
	}
}

func TestLexerEmptyInput(t *testing.T) {
	l := parser.NewLexer("")
	if tok := l.Next(); tok.Type != parser.TokenEOF {
		t.Fatalf("expected EOF on empty input, got %+v", tok)
	}
}
