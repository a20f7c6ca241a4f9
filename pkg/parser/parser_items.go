package parser

import (
	"strconv"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
)

// Select list, alias, ORDER BY and join introducers:
//
//	select_item   → '*' | ident '.' '*' | expr [[AS] alias]
//	alias         → ident | string          (after AS)
//	              | ident                   (bare, when not reserved)
//	order_by      → ORDER BY order_item {',' order_item}
//	order_item    → expr [ASC | DESC] [NULLS (FIRST | LAST)]
//	join          → ',' | [NATURAL] [INNER | CROSS | (LEFT | RIGHT | FULL) [OUTER]] JOIN
//	              | STRAIGHT_JOIN

// ParseSelectItem parses one projection of the select list. index is the
// 1-based position of the item.
func (p *ExprParser) ParseSelectItem(index int) (core.SelectItem, error) {
	start := p.Token()
	item := core.SelectItem{Index: index}

	expr, err := p.parseExpression()
	if err != nil {
		return item, err
	}
	item.Expression = p.textFrom(start.Pos)

	switch e := expr.(type) {
	case *core.StarExpr:
		item.Star = true
		if e.Owner != nil {
			owner := e.Table
			item.Owner = &owner
		}
		return item, nil
	case *core.ColumnRef:
		if e.IsQualified() {
			owner := e.Table
			item.Owner = &owner
		}
	case *core.FuncCall:
		if !e.Over && p.dialect.IsAggregate(e.Name) {
			item.Aggregate = e.Name
		}
	}

	alias, err := p.ParseAlias()
	if err != nil {
		return item, err
	}
	item.Alias = alias
	return item, nil
}

// ParseAlias parses an optional alias: AS followed by an identifier or
// string, or a bare identifier that the dialect does not reserve.
// Returns nil when no alias follows.
func (p *ExprParser) ParseAlias() (*string, error) {
	if p.Match(TOKEN_AS) {
		tok := p.Token()
		switch tok.Type {
		case TOKEN_IDENT:
			p.NextToken()
			alias := p.name(tok)
			return &alias, nil
		case TOKEN_STRING:
			p.NextToken()
			alias := unquoteString(tok.Literal)
			return &alias, nil
		}
		return nil, p.Errorf(ErrUnexpectedToken, describe(tok), "alias")
	}

	if tok := p.Token(); p.isAliasCandidate(tok) {
		p.NextToken()
		alias := p.name(tok)
		return &alias, nil
	}
	return nil, nil
}

// ParseOrderBy parses an ORDER BY list. Returns nil when the cursor is not
// on ORDER BY.
func (p *ExprParser) ParseOrderBy() ([]core.OrderByItem, error) {
	if !p.Check(TOKEN_ORDER) || p.Peek().Type != TOKEN_BY {
		return nil, nil
	}
	p.NextToken() // ORDER
	p.NextToken() // BY

	var items []core.OrderByItem
	for {
		item, err := p.parseOrderByItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.Match(TOKEN_COMMA) {
			return items, nil
		}
	}
}

func (p *ExprParser) parseOrderByItem() (core.OrderByItem, error) {
	start := p.Token()
	item := core.OrderByItem{Direction: core.Asc}

	expr, err := p.parseExpression()
	if err != nil {
		return item, err
	}
	item.Expression = p.textFrom(start.Pos)

	switch e := expr.(type) {
	case *core.ColumnRef:
		name := e.Column
		item.Name = &name
		if e.IsQualified() {
			owner := e.Table
			item.Owner = &owner
		}
	case *core.Literal:
		if e.Type == core.LiteralNumber {
			if n, err := strconv.Atoi(e.Value); err == nil && n > 0 {
				item.Index = n
			}
		}
	}

	item.Direction = p.parseDirection()

	if p.Match(TOKEN_NULLS) {
		var first bool
		switch {
		case p.MatchWord("first"):
			first = true
		case p.MatchWord("last"):
		default:
			return item, p.Errorf(ErrUnexpectedToken, describe(p.Token()), "FIRST or LAST")
		}
		item.NullsFirst = &first
	}
	return item, nil
}

// parseDirection consumes an optional ASC or DESC.
func (p *ExprParser) parseDirection() core.OrderDirection {
	if p.Match(TOKEN_DESC) {
		return core.Desc
	}
	p.Match(TOKEN_ASC)
	return core.Asc
}

// ParseJoin consumes a join introducer. ok is false, with nothing
// consumed, when the cursor is not on one.
func (p *ExprParser) ParseJoin() (kind string, ok bool, err error) {
	if p.Match(TOKEN_COMMA) {
		return dialect.JoinComma, true, nil
	}

	natural := p.Match(TOKEN_NATURAL)
	kind, ok, err = p.parseJoinType()
	if err != nil {
		return "", false, err
	}
	if !ok {
		if natural {
			return "", false, p.Errorf(ErrUnexpectedToken, describe(p.Token()), "JOIN")
		}
		return "", false, nil
	}
	if natural {
		kind = "NATURAL " + kind
	}
	return kind, true, nil
}

func (p *ExprParser) parseJoinType() (string, bool, error) {
	if p.Match(TOKEN_JOIN) {
		return dialect.JoinInner, true, nil
	}

	def, ok := p.dialect.JoinTypeDef(p.Token().Type)
	if !ok {
		return "", false, nil
	}
	p.NextToken()
	if def.Standalone {
		return def.Type, true, nil
	}
	if def.OptionalToken != 0 {
		p.Match(def.OptionalToken)
	}
	if err := p.Expect(TOKEN_JOIN); err != nil {
		return "", false, err
	}
	return def.Type, true, nil
}
