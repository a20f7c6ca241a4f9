package parser

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// Expression precedence parsing using Pratt parser with dialect-aware precedence.
//
// Precedence levels (from spi package):
//
//	PrecedenceNone       = 0
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3
//	PrecedenceComparison = 4  (=, !=, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (-, +, NOT)
//	PrecedencePostfix    = 8  (::)
//
// The parser uses dialect.Precedence() to look up operator precedence, so
// dialects can add operators (ILIKE, ::) without touching this file.

// parseExpression parses an expression using precedence climbing.
func (p *ExprParser) parseExpression() (core.Expr, error) {
	return p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing with dialect-aware precedence.
func (p *ExprParser) parseExpressionWithPrecedence(minPrecedence int) (core.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	// Parse prefix (unary operators and primary expressions)
	left, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}

	// Parse infix operators while their precedence is >= minPrecedence
	for {
		prec := p.infixPrecedence()
		if prec == spi.PrecedenceNone || prec < minPrecedence {
			return left, nil
		}
		left, err = p.parseInfixExpr(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// parsePrefixExpr parses prefix expressions (unary operators and primary expressions).
func (p *ExprParser) parsePrefixExpr() (core.Expr, error) {
	start := p.Token()

	switch start.Type {
	case TOKEN_NOT:
		p.NextToken()
		if p.Check(TOKEN_EXISTS) {
			return p.parseExists(start.Pos, true)
		}
		expr, err := p.parseExpressionWithPrecedence(spi.PrecedenceNot)
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: token.NOT, Expr: expr, Span: p.spanFrom(start.Pos)}, nil

	case TOKEN_MINUS, TOKEN_PLUS:
		p.NextToken()
		expr, err := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: start.Type, Expr: expr, Span: p.spanFrom(start.Pos)}, nil

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the current token as an infix operator.
// Returns 0 if the token is not an infix operator.
func (p *ExprParser) infixPrecedence() int {
	tok := p.Token()
	if tok.Type == TOKEN_NOT {
		// NOT is infix only as NOT IN, NOT BETWEEN, NOT LIKE, NOT ILIKE
		switch next := p.Peek().Type; next {
		case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE:
		default:
			if next != dialect.Ilike || p.dialect.Precedence(dialect.Ilike) == 0 {
				return spi.PrecedenceNone
			}
		}
	}
	return p.dialect.Precedence(tok.Type)
}

// parseInfixExpr parses an infix expression given the left operand and current precedence.
func (p *ExprParser) parseInfixExpr(left core.Expr, prec int) (core.Expr, error) {
	op := p.Token()

	switch op.Type {
	case TOKEN_NOT:
		// NOT IN, NOT BETWEEN, NOT LIKE, NOT ILIKE
		p.NextToken()
		return p.parsePredicate(left, true)
	case TOKEN_IS:
		return p.parseIsExpr(left)
	case TOKEN_IN, TOKEN_BETWEEN, TOKEN_LIKE, dialect.Ilike:
		return p.parsePredicate(left, false)
	case dialect.DoubleColon:
		p.NextToken()
		typeName, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		return &core.CastExpr{Expr: left, TypeName: typeName, Span: p.spanFrom(left.Pos())}, nil
	}

	// Standard binary operators
	p.NextToken()

	// Parse right operand with higher precedence (left-associative)
	right, err := p.parseExpressionWithPrecedence(prec + 1)
	if err != nil {
		return nil, err
	}
	return &core.BinaryExpr{Left: left, Op: op.Type, Right: right, Span: p.spanFrom(left.Pos())}, nil
}

// parsePredicate parses IN, BETWEEN, LIKE and ILIKE after an optional NOT.
func (p *ExprParser) parsePredicate(left core.Expr, not bool) (core.Expr, error) {
	op := p.Token()
	p.NextToken()

	switch op.Type {
	case TOKEN_IN:
		return p.parseInExpr(left, not)
	case TOKEN_BETWEEN:
		return p.parseBetweenExpr(left, not)
	case TOKEN_LIKE, dialect.Ilike:
		pattern, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
		if err != nil {
			return nil, err
		}
		return &core.LikeExpr{Expr: left, Not: not, Op: op.Type, Pattern: pattern, Span: p.spanFrom(left.Pos())}, nil
	}
	return nil, &ParseError{Pos: op.Pos, Message: "expected IN, BETWEEN or LIKE after NOT"}
}

// parseIsExpr parses IS [NOT] NULL / TRUE / FALSE.
func (p *ExprParser) parseIsExpr(left core.Expr) (core.Expr, error) {
	p.NextToken() // consume IS
	not := p.Match(TOKEN_NOT)

	switch {
	case p.Match(TOKEN_NULL):
		return &core.IsNullExpr{Expr: left, Not: not, Span: p.spanFrom(left.Pos())}, nil
	case p.Match(TOKEN_TRUE):
		return &core.IsBoolExpr{Expr: left, Not: not, Value: true, Span: p.spanFrom(left.Pos())}, nil
	case p.Match(TOKEN_FALSE):
		return &core.IsBoolExpr{Expr: left, Not: not, Value: false, Span: p.spanFrom(left.Pos())}, nil
	}
	return nil, p.Errorf(ErrUnexpectedToken, describe(p.Token()), "NULL, TRUE or FALSE")
}

// parseInExpr parses the list or subquery after IN.
//
//	in_expr → IN '(' (select | expr {',' expr}) ')'
func (p *ExprParser) parseInExpr(left core.Expr, not bool) (core.Expr, error) {
	if !p.Check(TOKEN_LPAREN) {
		return nil, p.Errorf(ErrUnexpectedToken, describe(p.Token()), token.LPAREN)
	}
	if p.startsSubquery() {
		sub, err := p.parseSubquery()
		if err != nil {
			return nil, err
		}
		return &core.InExpr{Expr: left, Not: not, Subquery: sub, Span: p.spanFrom(left.Pos())}, nil
	}

	p.NextToken() // consume (
	var values []core.Expr
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if !p.Match(TOKEN_COMMA) {
			break
		}
	}
	if err := p.Expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &core.InExpr{Expr: left, Not: not, Values: values, Span: p.spanFrom(left.Pos())}, nil
}

// parseBetweenExpr parses low AND high after BETWEEN.
func (p *ExprParser) parseBetweenExpr(left core.Expr, not bool) (core.Expr, error) {
	// Bounds bind tighter than AND so the separator is not read as a conjunction
	low, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
	if err != nil {
		return nil, err
	}
	if err := p.Expect(TOKEN_AND); err != nil {
		return nil, err
	}
	high, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
	if err != nil {
		return nil, err
	}
	return &core.BetweenExpr{Expr: left, Not: not, Low: low, High: high, Span: p.spanFrom(left.Pos())}, nil
}

// parseTypeName reads a type name such as INT, VARCHAR(20) or NUMERIC(10, 2)
// and returns its source text.
func (p *ExprParser) parseTypeName() (string, error) {
	start := p.Token()
	if start.Type != TOKEN_IDENT && !token.IsKeyword(start.Type) {
		return "", p.Errorf(ErrUnexpectedToken, describe(start), "type name")
	}
	p.NextToken()
	// Multi-word types: DOUBLE PRECISION, CHARACTER VARYING
	for p.Check(TOKEN_IDENT) && p.isTypeWord(p.Token()) {
		p.NextToken()
	}
	if p.Check(TOKEN_LPAREN) {
		if err := p.SkipParens(); err != nil {
			return "", err
		}
	}
	return p.textFrom(start.Pos), nil
}

// isTypeWord reports whether tok continues a multi-word type name.
func (p *ExprParser) isTypeWord(tok Token) bool {
	return tok.Is("precision") || tok.Is("varying")
}
