package parser

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/spi"
)

// ParseSelect parses a complete SELECT statement: the query, an optional
// trailing ';' and nothing else.
func ParseSelect(sql string, d *dialect.Dialect, opts ...Option) (*core.SelectContext, error) {
	return ParseSelectWithExtension(sql, d, nil, opts...)
}

// ParseSelectWithExtension is ParseSelect with an explicit select
// extension replacing the dialect's own.
func ParseSelectWithExtension(sql string, d *dialect.Dialect, ext spi.SelectExtension, opts ...Option) (*core.SelectContext, error) {
	exprs := NewExprParser(sql, d, opts...)
	ctx, err := NewSelectParser(exprs, ext).Parse()
	if err != nil {
		return nil, err
	}

	exprs.Match(TOKEN_SEMICOLON)
	if tok := exprs.Token(); tok.Type != TOKEN_EOF {
		if name, ok := dialect.IsKnownClause(tok.Type); ok {
			return nil, exprs.Errorf("%s is not supported in %s dialect", name, exprs.Dialect().Name)
		}
		return nil, exprs.Errorf(ErrTrailingTokens, describe(tok))
	}
	return ctx, nil
}
