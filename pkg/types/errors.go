package types

import "fmt"

// ErrorCode classifies an FXYT error by phase and reason.
type ErrorCode string

// Error codes, partitioned by pipeline phase.
const (
	// S01xx: Lexer errors
	ErrUnexpectedChar ErrorCode = "S0101"
	ErrUnexpectedEnd  ErrorCode = "S0104"

	// S02xx: Parser errors
	ErrUnexpectedToken ErrorCode = "S0201"

	// T0xxx: Arity errors
	ErrArityMismatch ErrorCode = "T0410"

	// U0xxx: Name resolution errors
	ErrUnknownFunction ErrorCode = "U1002"

	// D0xxx: Evaluation errors
	ErrDivisionByZero ErrorCode = "D1006"
	ErrDomain         ErrorCode = "D3060"
)

// Error represents a structured FXYT error. Every failure of the pipeline —
// lexing, parsing or per-pixel evaluation — surfaces as an *Error; the Code
// identifies the phase and reason, the Position (where meaningful) points
// into the program source.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new FXYT error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}
