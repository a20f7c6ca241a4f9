package dialect

import "github.com/leapstack-labs/shardsql/pkg/core"

// ANSI is the default SQL-standard dialect.
// This is registered automatically when the package is loaded.
var ANSI = NewDialect("ansi").
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	PlaceholderStyle(core.PlaceholderQuestion).
	Aggregates(StandardAggregates...).
	WithReservedWords(StandardReservedWords...).
	AddKeyword("minus", SetMinus).
	Operators(ANSIOperators).
	JoinTypes(ANSIJoinTypes).
	Clauses(StandardTailClauses...).
	Build()

func init() {
	// Register the builtin ANSI dialect and set it as default
	Register(ANSI)
	SetDefault(ANSI)
}
