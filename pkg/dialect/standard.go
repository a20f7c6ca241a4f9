// Package dialect provides SQL dialect configuration for the SELECT parser.
//
// This file contains pre-built ClauseDef definitions - the "menu items" that
// dialects can compose from. Each ClauseDef bundles a token, handler and name.
package dialect

import (
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// --- Standard Clause Definitions ---

var (
	// StandardLimit is LIMIT n.
	StandardLimit = ClauseDef{Token: token.LIMIT, Handler: Limit(LimitOpts{}), Name: "LIMIT"}

	// StandardOffset is OFFSET n [ROW | ROWS].
	StandardOffset = ClauseDef{Token: token.OFFSET, Handler: ParseOffset, Name: "OFFSET"}

	// StandardFetch is FETCH FIRST n ROWS ONLY (SQL:2008).
	StandardFetch = ClauseDef{Token: token.FETCH, Handler: ParseFetch, Name: "FETCH"}

	// StandardForUpdate is FOR UPDATE / FOR SHARE.
	StandardForUpdate = ClauseDef{Token: token.FOR, Handler: ParseForUpdate, Name: "FOR"}
)

// StandardTailClauses is the ANSI set of clauses accepted after ORDER BY.
var StandardTailClauses = []ClauseDef{
	StandardLimit,
	StandardOffset,
	StandardFetch,
	StandardForUpdate,
}

// StandardAggregates lists aggregate functions shared by every dialect.
var StandardAggregates = []string{
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	"EVERY", "ANY_VALUE",
}

// StandardReservedWords are words never read as bare aliases, on top of the
// builtin keyword tokens (which the lexer never returns as identifiers).
var StandardReservedWords = []string{
	"window", "qualify", "returning", "into", "values", "set",
}
