// Package dialect provides SQL dialect configuration for the SELECT parser.
//
// This file contains operator definitions that form the "toolbox" of
// reusable operator configurations. These can be composed into any dialect.
package dialect

import (
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// OperatorDef defines an infix operator.
type OperatorDef struct {
	Token      token.TokenType
	Precedence int
	Symbol     string // lexer symbol for dialect-only operators, empty for builtins
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: spi.PrecedenceOr},
	{Token: token.AND, Precedence: spi.PrecedenceAnd},

	// Comparison operators
	{Token: token.EQ, Precedence: spi.PrecedenceComparison},
	{Token: token.NE, Precedence: spi.PrecedenceComparison},
	{Token: token.LT, Precedence: spi.PrecedenceComparison},
	{Token: token.GT, Precedence: spi.PrecedenceComparison},
	{Token: token.LE, Precedence: spi.PrecedenceComparison},
	{Token: token.GE, Precedence: spi.PrecedenceComparison},
	{Token: token.LIKE, Precedence: spi.PrecedenceComparison},
	{Token: token.IN, Precedence: spi.PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: spi.PrecedenceComparison},
	{Token: token.IS, Precedence: spi.PrecedenceComparison},
	{Token: token.NOT, Precedence: spi.PrecedenceComparison}, // NOT IN, NOT LIKE, NOT BETWEEN

	// Arithmetic operators
	{Token: token.PLUS, Precedence: spi.PrecedenceAddition},
	{Token: token.MINUS, Precedence: spi.PrecedenceAddition},
	{Token: token.DPIPE, Precedence: spi.PrecedenceAddition}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Token: token.STAR, Precedence: spi.PrecedenceMultiply},
	{Token: token.SLASH, Precedence: spi.PrecedenceMultiply},
	{Token: token.PERCENT, Precedence: spi.PrecedenceMultiply},
}

// PostgresOperators contains PostgreSQL operator extensions.
var PostgresOperators = []OperatorDef{
	{Token: Ilike, Precedence: spi.PrecedenceComparison},
	{Token: DoubleColon, Precedence: spi.PrecedencePostfix, Symbol: "::"},
}
