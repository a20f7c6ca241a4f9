package dialect

import "github.com/leapstack-labs/shardsql/pkg/token"

// Dialect keywords shared by the built-in dialects. They are lexed as
// keywords only in dialects that register them with Builder.AddKeyword.
var (
	// SetMinus is the MINUS set operator (Oracle, MariaDB).
	SetMinus = token.Register("MINUS")
	// Lock starts MySQL's LOCK IN SHARE MODE.
	Lock = token.Register("LOCK")
	// Ilike is PostgreSQL's case-insensitive LIKE.
	Ilike = token.Register("ILIKE")
	// DoubleColon is PostgreSQL's cast operator.
	DoubleColon = token.Register("::")
)
