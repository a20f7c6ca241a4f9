// Package spi provides Service Provider Interface types for dialect
// hooks to interact with the parser without circular dependencies.
package spi

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// ParserOps exposes parser operations to dialect hooks.
// This interface allows dialect-specific code to interact with the parser
// without creating circular dependencies.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token

	// Consumption
	NextToken()
	Check(types ...token.TokenType) bool
	Match(types ...token.TokenType) bool
	MatchWord(word string) bool
	Expect(t token.TokenType) error
	ExpectWord(word string) error
	SkipParens() error

	// Sub-parsers
	ParseExpression() (core.Expr, error)
	ParameterIndex() int

	// Error handling
	Errorf(format string, args ...any) error
	Unsupported(construct string) error
	Position() token.Position
}

// SelectExtension is the dialect capability seam of the SELECT parser.
type SelectExtension interface {
	// SupportsDistinctOn reports whether DISTINCT ON (...) is accepted.
	SupportsDistinctOn() bool

	// CustomizeSelect runs after the ORDER BY list has been parsed and may
	// consume trailing dialect clauses (LIMIT, FOR UPDATE, ...) into ctx.
	CustomizeSelect(p ParserOps, ctx *core.SelectContext) error
}

// ClauseHandler parses one trailing clause into ctx.
// Called AFTER the clause keyword has been consumed.
type ClauseHandler func(p ParserOps, ctx *core.SelectContext) error

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::
)
