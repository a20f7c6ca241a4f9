package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/spi"
)

// SelectParser builds the routing context of one SELECT statement.
//
// Parse order:
//
//	query → ORDER BY (top level only) → dialect extension
//
// A SelectParser is single-use: the context it builds is returned by the
// first call to Parse.
type SelectParser struct {
	exprs *ExprParser
	ext   spi.SelectExtension
	ctx   *core.SelectContext
	used  bool
}

// NewSelectParser returns a parser reading from exprs. A nil ext uses the
// extension of the expression parser's dialect.
func NewSelectParser(exprs *ExprParser, ext spi.SelectExtension) *SelectParser {
	if ext == nil {
		ext = exprs.Dialect().Extension()
	}
	return &SelectParser{
		exprs: exprs,
		ext:   ext,
		ctx:   core.NewSelectContext(exprs.SQL()),
	}
}

// Parse parses the statement and returns its routing context. No partial
// context is returned on error.
func (s *SelectParser) Parse() (*core.SelectContext, error) {
	if s.used {
		return nil, ErrParserReused
	}
	s.used = true

	if err := s.exprs.Err(); err != nil {
		return nil, err
	}
	if err := s.query(); err != nil {
		return nil, err
	}

	orderBy, err := s.exprs.ParseOrderBy()
	if err != nil {
		return nil, err
	}
	s.ctx.OrderBy = append(s.ctx.OrderBy, orderBy...)

	if err := s.ext.CustomizeSelect(s.exprs, s.ctx); err != nil {
		return nil, err
	}
	return s.ctx, nil
}

// query parses one query body, possibly wrapped in parentheses.
//
//	query → '(' query ')' query_rest
//	      | SELECT [hint] distinct select_list [from] [where] [group_by] [having] query_rest
func (s *SelectParser) query() error {
	p := s.exprs
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	if p.Match(TOKEN_LPAREN) {
		if err := s.query(); err != nil {
			return err
		}
		if err := p.Expect(TOKEN_RPAREN); err != nil {
			return err
		}
		return s.queryRest()
	}

	if err := p.Expect(TOKEN_SELECT); err != nil {
		return err
	}
	p.Match(TOKEN_COMMENT)

	steps := []func() error{
		s.distinct,
		s.selectList,
		s.from,
		s.where,
		s.groupBy,
		s.having,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return s.queryRest()
}

// queryRest rejects set operations after a query body.
func (s *SelectParser) queryRest() error {
	p := s.exprs
	if p.Check(TOKEN_UNION, TOKEN_EXCEPT, TOKEN_INTERSECT, dialect.SetMinus) {
		return p.Unsupported(strings.ToUpper(p.Token().Literal) + " set operation")
	}
	return nil
}

// distinct parses the set quantifier.
//
//	distinct → [DISTINCT [ON '(' ... ')'] | DISTINCTROW | UNION | ALL]
func (s *SelectParser) distinct() error {
	p := s.exprs
	tok := p.Token()

	switch tok.Type {
	case TOKEN_DISTINCT, TOKEN_DISTINCTROW:
		p.NextToken()
		s.ctx.Distinct = true
		if s.ext.SupportsDistinctOn() && p.Check(TOKEN_ON) {
			on := p.Token()
			p.NextToken()
			if err := p.SkipParens(); err != nil {
				return err
			}
			s.diagnose(core.DiagDistinctOnDiscarded, core.SeverityWarning, on.Pos,
				"DISTINCT ON list %s ignored", p.textFrom(on.Pos))
		}
	case TOKEN_UNION:
		p.NextToken()
		s.ctx.Distinct = true
		s.diagnose(core.DiagSetQuantifierUnion, core.SeverityInfo, tok.Pos,
			"UNION after SELECT read as DISTINCT")
	case TOKEN_ALL:
		p.NextToken()
	}
	return nil
}

// selectList parses the comma-separated projections.
func (s *SelectParser) selectList() error {
	p := s.exprs
	for index := 1; ; index++ {
		item, err := p.ParseSelectItem(index)
		if err != nil {
			return err
		}
		if item.Star {
			s.ctx.ContainsStar = true
		}
		s.ctx.Items = append(s.ctx.Items, item)
		s.ctx.SelectListEnd = p.last.End()

		if !p.Match(TOKEN_COMMA) {
			return nil
		}
	}
}

// where parses the WHERE clause into sharding conditions.
func (s *SelectParser) where() error {
	p := s.exprs
	if !p.Check(TOKEN_WHERE) {
		return nil
	}
	kw := p.Token()
	p.NextToken()

	if len(s.ctx.Tables) == 0 {
		// Nothing to route on; keep the statement well-formed. Placeholders
		// here still take positions in the bind order.
		if _, err := p.ParseExpression(); err != nil {
			return err
		}
		s.ctx.ParameterIndex = p.ParameterIndex()
		s.diagnose(core.DiagWhereWithoutTables, core.SeverityInfo, kw.Pos,
			"WHERE clause without routable tables ignored")
		return nil
	}

	cond, err := p.ParseWhere(s.ctx)
	if err != nil {
		return err
	}
	if cond != nil {
		s.ctx.Conditions = append(s.ctx.Conditions, cond)
	}
	s.ctx.ParameterIndex = p.ParameterIndex()
	return nil
}

// diagnose records a construct that was consumed without being interpreted.
func (s *SelectParser) diagnose(kind core.DiagnosticKind, sev core.Severity, at Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.ctx.AddDiagnostic(core.Diagnostic{
		Kind:     kind,
		Severity: sev,
		Offset:   at.Offset,
		Message:  msg,
	})
	s.exprs.debug("construct dropped",
		"kind", string(kind),
		"line", at.Line,
		"column", at.Column,
		"message", msg,
	)
}
