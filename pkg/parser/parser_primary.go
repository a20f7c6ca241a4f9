package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// Primary expressions:
//
//	primary      → literal | PARAM | '*' | name_expr | func_call
//	             | '(' expr ')' | '(' select ')' | CASE ... END
//	             | CAST '(' expr AS type ')' | EXISTS '(' select ')'
//	name_expr    → ident ['.' ident ['.' ident]] | ident '.' '*'
//	func_call    → ident '(' [DISTINCT | ALL] ['*' | expr {',' expr}] ')'
//	               [FILTER '(' ... ')'] [WITHIN GROUP '(' ... ')'] [OVER (ident | '(' ... ')')]

// parsePrimary parses primary expressions.
func (p *ExprParser) parsePrimary() (core.Expr, error) {
	tok := p.Token()

	switch tok.Type {
	case TOKEN_NUMBER:
		p.NextToken()
		return &core.Literal{Type: core.LiteralNumber, Value: tok.Literal, Span: tok.Span()}, nil

	case TOKEN_STRING:
		p.NextToken()
		return &core.Literal{Type: core.LiteralString, Value: unquoteString(tok.Literal), Span: tok.Span()}, nil

	case TOKEN_TRUE, TOKEN_FALSE:
		p.NextToken()
		return &core.Literal{Type: core.LiteralBool, Value: strings.ToLower(tok.Literal), Span: tok.Span()}, nil

	case TOKEN_NULL:
		p.NextToken()
		return &core.Literal{Type: core.LiteralNull, Value: "NULL", Span: tok.Span()}, nil

	case TOKEN_PARAM:
		p.NextToken()
		ph := &core.Placeholder{Index: p.params, Span: tok.Span()}
		p.params++
		return ph, nil

	case TOKEN_STAR:
		p.NextToken()
		return &core.StarExpr{Span: tok.Span()}, nil

	case TOKEN_LPAREN:
		if p.startsSubquery() {
			return p.parseSubquery()
		}
		p.NextToken()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.Expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &core.ParenExpr{Expr: inner, Span: p.spanFrom(tok.Pos)}, nil

	case TOKEN_CASE:
		return p.parseCase()

	case TOKEN_CAST:
		return p.parseCast()

	case TOKEN_EXISTS:
		return p.parseExists(tok.Pos, false)

	case TOKEN_IDENT:
		if p.isTypedLiteral() {
			p.NextToken() // DATE, TIME, TIMESTAMP, INTERVAL
			lit := p.Token()
			p.NextToken()
			return &core.Literal{Type: core.LiteralString, Value: unquoteString(lit.Literal), Span: p.spanFrom(tok.Pos)}, nil
		}
		return p.parseNameExpr()

	case TOKEN_LEFT, TOKEN_RIGHT:
		// LEFT(s, n) and RIGHT(s, n) are functions
		if p.Peek().Type == TOKEN_LPAREN {
			return p.parseFuncCall()
		}
	}

	return nil, p.Errorf(ErrUnexpectedInExpr, describe(tok))
}

// isTypedLiteral reports whether the cursor is on DATE '...' and friends.
func (p *ExprParser) isTypedLiteral() bool {
	tok := p.Token()
	if p.Peek().Type != TOKEN_STRING || p.dialect.IsQuoted(tok.Literal) {
		return false
	}
	return tok.Is("date") || tok.Is("time") || tok.Is("timestamp") || tok.Is("interval")
}

// parseNameExpr parses a column reference, a qualified star or a function call.
func (p *ExprParser) parseNameExpr() (core.Expr, error) {
	first := p.Token()
	if p.Peek().Type == TOKEN_LPAREN {
		return p.parseFuncCall()
	}

	parts := []Token{first}
	p.NextToken()
	for p.Check(TOKEN_DOT) {
		p.NextToken()
		if p.Check(TOKEN_STAR) {
			p.NextToken()
			owner := parts[len(parts)-1]
			return &core.StarExpr{Table: p.name(owner), Owner: &owner, Span: p.spanFrom(first.Pos)}, nil
		}
		part := p.Token()
		if part.Type != TOKEN_IDENT && !token.IsKeyword(part.Type) {
			return nil, p.Errorf(ErrUnexpectedToken, describe(part), "identifier")
		}
		parts = append(parts, part)
		p.NextToken()
	}

	ref := &core.ColumnRef{Span: p.spanFrom(first.Pos)}
	switch len(parts) {
	case 1:
		ref.Column = p.name(parts[0])
	case 2:
		owner := parts[0]
		ref.Table = p.name(owner)
		ref.Owner = &owner
		ref.Column = p.name(parts[1])
	case 3:
		owner := parts[1]
		ref.Schema = p.name(parts[0])
		ref.Table = p.name(owner)
		ref.Owner = &owner
		ref.Column = p.name(parts[2])
	default:
		return nil, &ParseError{Pos: first.Pos, Message: fmt.Sprintf(ErrTooManyQualifiers, p.textFrom(first.Pos))}
	}
	return ref, nil
}

// parseFuncCall parses a function call. The cursor is on the function name.
func (p *ExprParser) parseFuncCall() (core.Expr, error) {
	nameTok := p.Token()
	p.NextToken() // name
	p.NextToken() // (

	fn := &core.FuncCall{Name: strings.ToUpper(p.name(nameTok))}

	switch {
	case p.Match(TOKEN_RPAREN):
	case p.Check(TOKEN_STAR) && p.Peek().Type == TOKEN_RPAREN:
		fn.Star = true
		p.NextToken()
		p.NextToken()
	default:
		if p.Match(TOKEN_DISTINCT) {
			fn.Distinct = true
		} else {
			p.Match(TOKEN_ALL)
		}
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			fn.Args = append(fn.Args, arg)
			if !p.Match(TOKEN_COMMA) {
				break
			}
		}
		// In-call clauses (ORDER BY, SEPARATOR, FROM, USING) are skipped
		if err := p.skipToCloseParen(); err != nil {
			return nil, err
		}
		if err := p.Expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}

	if p.isWord(p.Token(), "filter") && p.Peek().Type == TOKEN_LPAREN {
		p.NextToken()
		if err := p.SkipParens(); err != nil {
			return nil, err
		}
	}
	if p.isWord(p.Token(), "within") && p.Peek().Type == TOKEN_GROUP {
		p.NextToken()
		p.NextToken()
		if err := p.SkipParens(); err != nil {
			return nil, err
		}
	}
	if p.isWord(p.Token(), "over") && (p.Peek().Type == TOKEN_LPAREN || p.Peek().Type == TOKEN_IDENT) {
		p.NextToken()
		fn.Over = true
		if p.Check(TOKEN_LPAREN) {
			if err := p.SkipParens(); err != nil {
				return nil, err
			}
		} else {
			p.NextToken() // named window
		}
	}

	fn.Span = p.spanFrom(nameTok.Pos)
	return fn, nil
}

// skipToCloseParen advances to the ')' closing the current group.
func (p *ExprParser) skipToCloseParen() error {
	start := p.Token()
	for depth := 0; ; {
		switch p.Token().Type {
		case TOKEN_EOF:
			return &ParseError{Pos: start.Pos, Message: ErrUnbalancedParens}
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			if depth == 0 {
				return nil
			}
			depth--
		case TOKEN_PARAM:
			p.params++
		}
		p.NextToken()
	}
}

// parseCase parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *ExprParser) parseCase() (core.Expr, error) {
	start := p.Token()
	p.NextToken() // CASE

	c := &core.CaseExpr{}
	if !p.Check(TOKEN_WHEN) {
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}

	for p.Match(TOKEN_WHEN) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.Expect(TOKEN_THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, core.WhenClause{Condition: cond, Result: result})
	}
	if len(c.Whens) == 0 {
		return nil, p.Errorf(ErrUnexpectedToken, describe(p.Token()), token.WHEN)
	}

	if p.Match(TOKEN_ELSE) {
		elseExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Else = elseExpr
	}
	if err := p.Expect(TOKEN_END); err != nil {
		return nil, err
	}

	c.Span = p.spanFrom(start.Pos)
	return c, nil
}

// parseCast parses CAST(expr AS type).
func (p *ExprParser) parseCast() (core.Expr, error) {
	start := p.Token()
	p.NextToken() // CAST
	if err := p.Expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.Expect(TOKEN_AS); err != nil {
		return nil, err
	}
	typeName, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if err := p.Expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return &core.CastExpr{Expr: expr, TypeName: typeName, Span: p.spanFrom(start.Pos)}, nil
}

// parseExists parses EXISTS (subquery). The cursor is on EXISTS.
func (p *ExprParser) parseExists(start Position, not bool) (core.Expr, error) {
	p.NextToken() // EXISTS
	if !p.startsSubquery() {
		return nil, p.Errorf(ErrUnexpectedToken, describe(p.Token()), "subquery")
	}
	sub, err := p.parseSubquery()
	if err != nil {
		return nil, err
	}
	return &core.ExistsExpr{Not: not, Subquery: sub, Span: p.spanFrom(start)}, nil
}

// startsSubquery reports whether the cursor is on '(' opening a query.
func (p *ExprParser) startsSubquery() bool {
	if !p.Check(TOKEN_LPAREN) {
		return false
	}
	for n := 1; ; n++ {
		switch p.peekN(n).Type {
		case TOKEN_LPAREN:
			continue
		case TOKEN_SELECT, TOKEN_WITH:
			return true
		default:
			return false
		}
	}
}

// parseSubquery skips a parenthesized query.
func (p *ExprParser) parseSubquery() (*core.SubqueryExpr, error) {
	start := p.Token()
	if err := p.SkipParens(); err != nil {
		return nil, err
	}
	return &core.SubqueryExpr{Span: p.spanFrom(start.Pos)}, nil
}

// unquoteString strips the quotes of a string literal and collapses
// doubled quote characters.
func unquoteString(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	q := lit[:1]
	return strings.ReplaceAll(lit[1:len(lit)-1], q+q, q)
}
