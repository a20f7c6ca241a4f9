package parser

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
)

// Grouping:
//
//	group_by → GROUP BY group_item {',' group_item} {WITH | ROLLUP}
//	group_item → expr [ASC | DESC]
//	having   → HAVING expr

// groupBy parses GROUP BY. Only plain column references become items.
func (s *SelectParser) groupBy() error {
	p := s.exprs
	if !p.Check(TOKEN_GROUP) || p.Peek().Type != TOKEN_BY {
		return nil
	}
	p.NextToken() // GROUP
	p.NextToken() // BY

	for {
		start := p.Token()
		expr, err := p.ParseExpression()
		if err != nil {
			return err
		}
		text := p.textFrom(start.Pos)
		dir := p.parseDirection()

		if ref, ok := expr.(*core.ColumnRef); ok {
			item := core.GroupByItem{Column: ref.Column, Direction: dir}
			if ref.IsQualified() {
				owner := ref.Table
				item.Owner = &owner
			}
			s.ctx.GroupBy = append(s.ctx.GroupBy, item)
		} else {
			s.diagnose(core.DiagGroupByExpression, core.SeverityWarning, start.Pos,
				"GROUP BY expression %s not tracked", text)
		}

		if !p.Match(TOKEN_COMMA) {
			break
		}
	}

	// MySQL WITH ROLLUP
	for p.Match(TOKEN_WITH) || p.MatchWord("rollup") {
	}
	return nil
}

// having parses and discards HAVING.
func (s *SelectParser) having() error {
	p := s.exprs
	if !p.Check(TOKEN_HAVING) {
		return nil
	}
	kw := p.Token()
	p.NextToken()
	if _, err := p.ParseExpression(); err != nil {
		return err
	}
	s.diagnose(core.DiagHaving, core.SeverityWarning, kw.Pos,
		"HAVING predicate %s not evaluated during merge", p.textFrom(kw.Pos))
	return nil
}
