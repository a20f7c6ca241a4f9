// Package mysql provides the MySQL SQL dialect definition.
//
// MySQL quotes identifiers with backticks, reads double-quoted text as
// strings, accepts "#" line comments and LIMIT offset, count.
package mysql

import (
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

func init() {
	dialect.Register(MySQL)
}

var mysqlReservedWords = []string{
	"force", "use", "ignore", "index", "key", "partition", "window",
	"procedure", "into", "high_priority", "sql_calc_found_rows",
	"sql_no_cache", "sql_cache", "sql_small_result", "sql_big_result",
	"sql_buffer_result",
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	WithReservedWords(mysqlReservedWords...).
	AddKeyword("lock", dialect.Lock).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes, dialect.MySQLJoinTypes).
	Clauses(
		dialect.ClauseDef{Token: token.LIMIT, Handler: dialect.Limit(dialect.LimitOpts{AllowComma: true}), Name: "LIMIT"},
		dialect.StandardOffset,
		dialect.StandardForUpdate,
		dialect.ClauseDef{Token: dialect.Lock, Handler: dialect.ParseLockInShareMode, Name: "LOCK"},
	).
	Build()
