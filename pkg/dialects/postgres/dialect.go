// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies,
// so routing code can depend on it without a database connection.
package postgres

import (
	"github.com/leapstack-labs/shardsql/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words that the
// lexer does not already treat as keywords.
var postgresReservedWords = []string{
	"user", "table", "index", "any", "array", "asymmetric", "authorization",
	"binary", "both", "check", "collate", "column", "constraint", "create",
	"current_catalog", "current_date", "current_role", "current_schema",
	"current_time", "current_timestamp", "current_user", "default",
	"deferrable", "do", "foreign", "freeze", "grant", "initially", "into",
	"isnull", "lateral", "leading", "localtime", "localtimestamp", "notnull",
	"only", "overlaps", "placing", "primary", "references", "returning",
	"session_user", "similar", "some", "symmetric", "to", "trailing",
	"unique", "variadic", "verbose", "window",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(Config).
	WithReservedWords(postgresReservedWords...).
	AddKeyword("ilike", dialect.Ilike).
	Operators(dialect.ANSIOperators, dialect.PostgresOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	Clauses(
		dialect.ClauseDef{Token: dialect.StandardLimit.Token, Handler: dialect.Limit(dialect.LimitOpts{AllowAll: true}), Name: "LIMIT"},
		dialect.StandardOffset,
		dialect.StandardFetch,
		dialect.StandardForUpdate,
	).
	Build()
