package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no handler functions.
//
// The runtime behavior (clause handlers, join types, the select extension)
// lives in pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("public" for Postgres)
	DefaultSchema string

	// Placeholder defines how query parameters are written
	Placeholder PlaceholderStyle

	// HashComments enables MySQL-style "# comment" line comments.
	HashComments bool

	// SupportsDistinctOn enables SELECT DISTINCT ON (...) (PostgreSQL).
	SupportsDistinctOn bool

	// Aggregates lists aggregate function names (SUM, COUNT, ...).
	Aggregates []string

	// ReservedWords lists words that cannot be used as bare aliases.
	ReservedWords []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison.
	NormCaseInsensitive
)

// String returns the strategy name.
func (n NormalizationStrategy) String() string {
	switch n {
	case NormLowercase:
		return "lowercase"
	case NormUppercase:
		return "uppercase"
	case NormCaseSensitive:
		return "case-sensitive"
	case NormCaseInsensitive:
		return "case-insensitive"
	default:
		return "unknown"
	}
}

// PlaceholderStyle defines how query parameters are written.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `
	QuoteEnd      string                // End quote character (usually same as Quote)
	Escape        string                // Escape sequence inside quotes: "", ``
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
