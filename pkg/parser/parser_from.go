package parser

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// FROM clause grammar:
//
//	from         → FROM table_source joins
//	joins        → {join table_source joins [join_spec]}
//	table_source → '(' ... ')'                    (unsupported: derived table)
//	             | [schema '.'] table [[AS] alias] [index_hint...]
//	join_spec    → ON expr | USING '(' column {',' column} ')'
//	index_hint   → (USE | FORCE | IGNORE) (INDEX | KEY) [FOR (JOIN | ORDER BY | GROUP BY)] '(' ... ')'
//
// The joined side reads its own chain before its join_spec, so each ON or
// USING binds to the nearest pending join:
//
//	t1 JOIN t2 JOIN t3 ON t2.a = t3.b ON t1.a = t2.b
//
// Comma-separated sources bind loosest and stay in the outermost chain,
// so long comma lists do not consume depth.

// from parses the FROM clause and its join chain.
func (s *SelectParser) from() error {
	p := s.exprs
	if !p.Match(TOKEN_FROM) {
		return nil
	}
	if err := s.tableSource(""); err != nil {
		return err
	}
	return s.joins(false)
}

// joins parses the join chain following a table source. A nested chain
// stops at a comma and leaves it to the outermost chain.
func (s *SelectParser) joins(nested bool) error {
	p := s.exprs
	for {
		if nested && p.Check(TOKEN_COMMA) {
			return nil
		}
		kind, ok, err := p.ParseJoin()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if kind == dialect.JoinComma {
			if err := s.tableSource(kind); err != nil {
				return err
			}
			continue
		}
		if err := s.joinedSource(kind); err != nil {
			return err
		}
		if err := s.joinSpec(); err != nil {
			return err
		}
	}
}

// joinedSource parses the right side of a join together with any joins
// nested under it.
func (s *SelectParser) joinedSource(kind string) error {
	p := s.exprs
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	if err := s.tableSource(kind); err != nil {
		return err
	}
	return s.joins(true)
}

// tableSource parses one table reference. join is the join kind that
// introduced it, empty for the first table.
func (s *SelectParser) tableSource(join string) error {
	p := s.exprs
	tok := p.Token()

	if tok.Type == TOKEN_LPAREN {
		return p.Unsupported("derived table")
	}
	if tok.Type != TOKEN_IDENT {
		return p.Errorf(ErrUnexpectedToken, describe(tok), "table name")
	}
	p.NextToken()

	if p.Match(TOKEN_DOT) {
		table := p.Token()
		if err := p.Expect(TOKEN_IDENT); err != nil {
			return err
		}
		if _, err := p.ParseAlias(); err != nil {
			return err
		}
		s.diagnose(core.DiagSchemaQualified, core.SeverityWarning, tok.Pos,
			"schema-qualified table %s.%s not routed", p.name(tok), p.name(table))
		return s.skipIndexHints()
	}

	alias, err := p.ParseAlias()
	if err != nil {
		return err
	}

	name := p.name(tok)
	s.ctx.AddToken(tok, name)
	s.ctx.AddTable(core.TableRef{
		Literal: tok.Literal,
		Name:    name,
		Alias:   alias,
		Join:    join,
	})
	return s.skipIndexHints()
}

// skipIndexHints consumes MySQL index hints after a table reference.
func (s *SelectParser) skipIndexHints() error {
	p := s.exprs
	for isIndexHint(p.Token(), p.Peek()) {
		p.NextToken() // USE, FORCE, IGNORE
		p.NextToken() // INDEX, KEY
		if p.Match(token.FOR) {
			switch {
			case p.Match(TOKEN_JOIN):
			case p.Match(TOKEN_ORDER, TOKEN_GROUP):
				if err := p.Expect(TOKEN_BY); err != nil {
					return err
				}
			default:
				return p.Errorf(ErrUnexpectedToken, describe(p.Token()), "JOIN, ORDER BY or GROUP BY")
			}
		}
		if err := p.SkipParens(); err != nil {
			return err
		}
	}
	return nil
}

func isIndexHint(tok, next Token) bool {
	if tok.Type != TOKEN_IDENT || next.Type != TOKEN_IDENT {
		return false
	}
	return (tok.Is("use") || tok.Is("force") || tok.Is("ignore")) && (next.Is("index") || next.Is("key"))
}

// joinSpec parses an optional ON predicate or USING column list.
func (s *SelectParser) joinSpec() error {
	p := s.exprs
	switch tok := p.Token(); tok.Type {
	case TOKEN_ON:
		p.NextToken()
		expr, err := p.ParseExpression()
		if err != nil {
			return err
		}
		s.collectJoinTokens(expr)
	case TOKEN_USING:
		p.NextToken()
		if err := p.SkipParens(); err != nil {
			return err
		}
		s.diagnose(core.DiagJoinUsing, core.SeverityInfo, tok.Pos,
			"USING %s carries no table qualifiers", p.textFrom(tok.Pos))
	}
	return nil
}

// collectJoinTokens adds a rewrite token for every qualified column in a
// comparison of the ON predicate whose owner names a registered table.
// Owners that are aliases are left alone.
func (s *SelectParser) collectJoinTokens(expr core.Expr) {
	switch e := expr.(type) {
	case *core.ParenExpr:
		s.collectJoinTokens(e.Expr)
	case *core.BinaryExpr:
		switch {
		case e.Op == token.AND || e.Op == token.OR:
			s.collectJoinTokens(e.Left)
			s.collectJoinTokens(e.Right)
		case token.IsComparison(e.Op):
			s.addOwnerToken(e.Left)
			s.addOwnerToken(e.Right)
		}
	}
}

func (s *SelectParser) addOwnerToken(operand core.Expr) {
	ref, ok := operand.(*core.ColumnRef)
	if !ok || !ref.IsQualified() {
		return
	}
	t, ok := s.ctx.FindTableByName(ref.Table)
	if !ok {
		return
	}
	s.ctx.AddToken(*ref.Owner, t.Name)
}
