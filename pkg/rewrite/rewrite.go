// Package rewrite substitutes physical shard-table names into SQL text at
// the rewrite tokens recorded by the parser.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
)

// Resolver maps a logical table name to its physical name.
// ok is false when the table is not sharded and must be left as written.
type Resolver func(name string) (physical string, ok bool)

// Map returns a Resolver backed by a logical→physical map.
// Lookups try the exact name first, then a case-insensitive match.
func Map(tables map[string]string) Resolver {
	folded := make(map[string]string, len(tables))
	for logical, physical := range tables {
		folded[strings.ToLower(logical)] = physical
	}
	return func(name string) (string, bool) {
		if physical, ok := tables[name]; ok {
			return physical, true
		}
		physical, ok := folded[strings.ToLower(name)]
		return physical, ok
	}
}

// SpanError reports a rewrite token that does not match the SQL text.
type SpanError struct {
	Token core.RewriteToken
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("rewrite token %q at offset %d does not match the statement text", e.Token.Literal, e.Token.Offset)
}

// Apply replaces every resolved token of sql with its physical name.
//
// Tokens are applied in offset order regardless of the order given.
// Quoted literals keep their quoting style, with the quotes taken from d
// (nil uses the default dialect). Overlapping or out-of-range tokens fail
// with a *SpanError.
func Apply(sql string, tokens []core.RewriteToken, resolve Resolver, d *dialect.Dialect) (string, error) {
	if d == nil {
		d = dialect.Default()
	}

	ctx := core.SelectContext{Tokens: tokens}
	sorted := ctx.SortedTokens()

	var b strings.Builder
	b.Grow(len(sql))
	last, prevEnd := 0, 0
	for _, tok := range sorted {
		if tok.Offset < prevEnd || tok.End() > len(sql) || sql[tok.Offset:tok.End()] != tok.Literal {
			return "", &SpanError{Token: tok}
		}
		prevEnd = tok.End()

		physical, ok := resolve(tok.Name)
		if !ok {
			continue
		}
		b.WriteString(sql[last:tok.Offset])
		if d.IsQuoted(tok.Literal) {
			b.WriteString(d.QuoteIdentifier(physical))
		} else {
			b.WriteString(physical)
		}
		last = tok.End()
	}
	b.WriteString(sql[last:])
	return b.String(), nil
}
