package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrSyntax matches every *ParseError.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupported matches every *UnsupportedError.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrTooDeep is wrapped by the ParseError raised when nesting exceeds the depth limit.
	ErrTooDeep = errors.New("nesting too deep")
	// ErrParserReused is returned when Parse is called twice on one SelectParser.
	ErrParserReused = errors.New("select parser already used")
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
	Err     error // optional cause, e.g. ErrTooDeep
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether target is ErrSyntax.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

// Unwrap returns the cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports a construct the routing parser recognizes but
// does not handle, such as set operations or derived tables.
type UnsupportedError struct {
	Pos       Position
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Construct)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected %s, expected %s"
	ErrUnexpectedInExpr   = "unexpected %s in expression"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrUnterminatedBlock  = "unterminated block comment"
	ErrIllegalCharacter   = "illegal character %q"
	ErrUnbalancedParens   = "unbalanced parentheses"
	ErrTrailingTokens     = "unexpected %s after end of statement"
	ErrTooManyQualifiers  = "too many name qualifiers in %q"
)

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("illegal input %q", tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}
