// Package dialect provides SQL dialect configuration for the SELECT parser.
//
// This file contains stateless clause handlers that form the "toolbox" of
// reusable parsing logic. These handlers accept spi.ParserOps and record
// what they read into the select context.
package dialect

import (
	"strconv"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// ---------- Trailing Clause Handlers ----------
// These are stateless functions that can be composed into any dialect.
// The leading keyword has already been consumed when these are called.

// LimitOpts configures the LIMIT handler.
type LimitOpts struct {
	AllowComma bool // LIMIT offset, count (MySQL)
	AllowAll   bool // LIMIT ALL (PostgreSQL)
}

// Limit returns a LIMIT handler.
func Limit(opts LimitOpts) spi.ClauseHandler {
	return func(p spi.ParserOps, ctx *core.SelectContext) error {
		limit := ensureLimit(ctx)

		if opts.AllowAll && p.Match(token.ALL) {
			ctx.ParameterIndex = p.ParameterIndex()
			return nil
		}

		first, err := ParseLimitValue(p)
		if err != nil {
			return err
		}
		if opts.AllowComma && p.Match(token.COMMA) {
			count, err := ParseLimitValue(p)
			if err != nil {
				return err
			}
			limit.Offset = first
			limit.RowCount = count
		} else {
			limit.RowCount = first
		}

		ctx.ParameterIndex = p.ParameterIndex()
		return nil
	}
}

// ParseOffset handles OFFSET n [ROW | ROWS].
// The OFFSET keyword has already been consumed.
func ParseOffset(p spi.ParserOps, ctx *core.SelectContext) error {
	v, err := ParseLimitValue(p)
	if err != nil {
		return err
	}
	if !p.MatchWord("ROW") {
		p.MatchWord("ROWS")
	}
	ensureLimit(ctx).Offset = v
	ctx.ParameterIndex = p.ParameterIndex()
	return nil
}

// ParseFetch handles FETCH {FIRST | NEXT} [n] {ROW | ROWS} {ONLY | WITH TIES}.
// The FETCH keyword has already been consumed. A missing count means one row.
func ParseFetch(p spi.ParserOps, ctx *core.SelectContext) error {
	if !p.MatchWord("FIRST") && !p.MatchWord("NEXT") {
		return p.Errorf("expected FIRST or NEXT after FETCH")
	}

	count := &core.LimitValue{Value: 1}
	if !p.Token().Is("ROW") && !p.Token().Is("ROWS") {
		v, err := ParseLimitValue(p)
		if err != nil {
			return err
		}
		count = v
	}

	if !p.MatchWord("ROW") && !p.MatchWord("ROWS") {
		return p.Errorf("expected ROW or ROWS in FETCH clause")
	}

	switch {
	case p.MatchWord("ONLY"):
	case p.Match(token.WITH):
		if err := p.ExpectWord("TIES"); err != nil {
			return err
		}
	default:
		return p.Errorf("expected ONLY or WITH TIES")
	}

	ensureLimit(ctx).RowCount = count
	ctx.ParameterIndex = p.ParameterIndex()
	return nil
}

// ParseForUpdate handles FOR {UPDATE | SHARE} [OF table, ...] [NOWAIT | SKIP LOCKED].
// The FOR keyword has already been consumed.
func ParseForUpdate(p spi.ParserOps, ctx *core.SelectContext) error {
	switch {
	case p.MatchWord("UPDATE"):
		ctx.Lock = "FOR UPDATE"
	case p.MatchWord("SHARE"):
		ctx.Lock = "FOR SHARE"
	default:
		return p.Errorf("expected UPDATE or SHARE after FOR")
	}

	if p.MatchWord("OF") {
		for {
			if err := p.Expect(token.IDENT); err != nil {
				return err
			}
			if !p.Match(token.COMMA) {
				break
			}
		}
	}

	switch {
	case p.MatchWord("NOWAIT"):
	case p.MatchWord("SKIP"):
		if err := p.ExpectWord("LOCKED"); err != nil {
			return err
		}
	}
	return nil
}

// ParseLockInShareMode handles MySQL's LOCK IN SHARE MODE.
// The LOCK keyword has already been consumed.
func ParseLockInShareMode(p spi.ParserOps, ctx *core.SelectContext) error {
	if err := p.Expect(token.IN); err != nil {
		return err
	}
	if err := p.ExpectWord("SHARE"); err != nil {
		return err
	}
	if err := p.ExpectWord("MODE"); err != nil {
		return err
	}
	ctx.Lock = "LOCK IN SHARE MODE"
	return nil
}

// ParseLimitValue reads a row count: an integer literal or a placeholder.
func ParseLimitValue(p spi.ParserOps) (*core.LimitValue, error) {
	if !p.Check(token.NUMBER, token.PARAM) {
		return nil, p.Errorf("expected row count, got %q", p.Token().Literal)
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *core.Placeholder:
		idx := e.Index
		return &core.LimitValue{Param: &idx}, nil
	case *core.Literal:
		if e.Type == core.LiteralNumber {
			n, err := strconv.ParseInt(e.Value, 10, 64)
			if err == nil && n >= 0 {
				return &core.LimitValue{Value: n}, nil
			}
		}
	}
	return nil, p.Errorf("row count must be a non-negative integer or a placeholder")
}

func ensureLimit(ctx *core.SelectContext) *core.Limit {
	if ctx.Limit == nil {
		ctx.Limit = &core.Limit{}
	}
	return ctx.Limit
}
