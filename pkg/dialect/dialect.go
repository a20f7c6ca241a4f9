// Package dialect provides SQL dialect configuration for the SELECT parser.
//
// This package contains the public contract for dialect definitions: identifier
// quoting and case folding, reserved words, aggregate functions, join types,
// and the select extension that handles trailing clauses. Concrete dialect
// implementations are registered from pkg/dialects/*/ packages.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClauseDef binds a trailing clause keyword to its handler.
type ClauseDef struct {
	Token   token.TokenType   // The trigger token for this clause (e.g., token.LIMIT)
	Handler spi.ClauseHandler // Handler function to parse the clause
	Name    string            // Clause name for error messages (e.g., "LIMIT")
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("public" for Postgres)
	Placeholder   core.PlaceholderStyle // How query parameters are written

	hashComments bool
	distinctOn   bool

	aggregates    map[string]struct{} // upper-cased function names
	reservedWords map[string]struct{} // lower-cased words

	// Parsing behavior
	symbols    map[string]token.TokenType // Custom operators: "::" -> DoubleColon
	dynamicKw  map[string]token.TokenType // Custom keywords: "lock" -> Lock
	precedence map[token.TokenType]int    // Operator precedence for expressions
	joinTypes  map[token.TokenType]JoinTypeDef
	clauses    []ClauseDef
	extension  spi.SelectExtension
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	aggregates := make([]string, 0, len(d.aggregates))
	for f := range d.aggregates {
		aggregates = append(aggregates, f)
	}
	reserved := make([]string, 0, len(d.reservedWords))
	for w := range d.reservedWords {
		reserved = append(reserved, w)
	}

	return &core.DialectConfig{
		Name:               d.Name,
		Identifiers:        d.Identifiers,
		DefaultSchema:      d.DefaultSchema,
		Placeholder:        d.Placeholder,
		HashComments:       d.hashComments,
		SupportsDistinctOn: d.distinctOn,
		Aggregates:         aggregates,
		ReservedWords:      reserved,
	}
}

// NormalizeName folds an unquoted identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return cases.Upper(language.Und).String(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return cases.Lower(language.Und).String(name)
	default: // NormCaseSensitive
		return name
	}
}

// NormalizeIdentifier returns the exact name of an identifier literal as
// written in SQL. Quoted identifiers lose their quotes and keep their case;
// unquoted identifiers are folded with NormalizeName.
func (d *Dialect) NormalizeIdentifier(literal string) string {
	if name, ok := d.Unquote(literal); ok {
		return name
	}
	return d.NormalizeName(literal)
}

// IsQuoted reports whether literal is wrapped in the dialect's identifier quotes.
func (d *Dialect) IsQuoted(literal string) bool {
	q, qe := d.Identifiers.Quote, d.Identifiers.QuoteEnd
	return q != "" && len(literal) >= len(q)+len(qe) &&
		strings.HasPrefix(literal, q) && strings.HasSuffix(literal, qe)
}

// Unquote strips identifier quotes and resolves escaped quote characters.
// ok is false when literal is not quoted.
func (d *Dialect) Unquote(literal string) (string, bool) {
	if !d.IsQuoted(literal) {
		return literal, false
	}
	inner := literal[len(d.Identifiers.Quote) : len(literal)-len(d.Identifiers.QuoteEnd)]
	if d.Identifiers.Escape != "" {
		inner = strings.ReplaceAll(inner, d.Identifiers.Escape, d.Identifiers.QuoteEnd)
	}
	return inner, true
}

// IsAggregate returns true if the function is an aggregate function.
func (d *Dialect) IsAggregate(name string) bool {
	_, ok := d.aggregates[strings.ToUpper(name)]
	return ok
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word cannot be used as a bare identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// HashComments reports whether "#" starts a line comment.
func (d *Dialect) HashComments() bool {
	return d.hashComments
}

// ---------- Parsing Behavior Methods ----------

// Symbols returns the custom operator symbols for the lexer.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// LookupKeyword returns the dialect keyword token for a word.
func (d *Dialect) LookupKeyword(name string) (token.TokenType, bool) {
	t, ok := d.dynamicKw[strings.ToLower(name)]
	return t, ok
}

// Precedence returns the infix precedence of t, or 0 when t is not an operator.
func (d *Dialect) Precedence(t token.TokenType) int {
	return d.precedence[t]
}

// JoinTypeDef returns the join type triggered by t.
func (d *Dialect) JoinTypeDef(t token.TokenType) (JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// Clauses returns the trailing clause definitions in declaration order.
func (d *Dialect) Clauses() []ClauseDef {
	return d.clauses
}

// Extension returns the select extension of the dialect.
func (d *Dialect) Extension() spi.SelectExtension {
	if d.extension == nil {
		return BaseExtension{}
	}
	return d.extension
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			aggregates:    make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
			symbols:       make(map[string]token.TokenType),
			dynamicKw:     make(map[string]token.TokenType),
			precedence:    make(map[token.TokenType]int),
			joinTypes:     make(map[token.TokenType]JoinTypeDef),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name)
	b.dialect.Identifiers = cfg.Identifiers
	b.dialect.DefaultSchema = cfg.DefaultSchema
	b.dialect.Placeholder = cfg.Placeholder
	b.dialect.hashComments = cfg.HashComments
	b.dialect.distinctOn = cfg.SupportsDistinctOn
	return b.Aggregates(cfg.Aggregates...).WithReservedWords(cfg.ReservedWords...)
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// Aggregates registers aggregate function names.
func (b *Builder) Aggregates(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.aggregates[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// WithReservedWords registers words that cannot be used as bare identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are written.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// HashComments enables "#" line comments.
func (b *Builder) HashComments() *Builder {
	b.dialect.hashComments = true
	return b
}

// DistinctOn enables SELECT DISTINCT ON (...).
func (b *Builder) DistinctOn() *Builder {
	b.dialect.distinctOn = true
	return b
}

// AddOperator registers a custom operator symbol for the lexer.
func (b *Builder) AddOperator(symbol string, t token.TokenType) *Builder {
	b.dialect.symbols[symbol] = t
	return b
}

// AddKeyword registers a dynamic keyword for the lexer. Dialect keywords
// are reserved: they are never read as bare aliases.
func (b *Builder) AddKeyword(name string, t token.TokenType) *Builder {
	b.dialect.dynamicKw[strings.ToLower(name)] = t
	b.dialect.reservedWords[strings.ToLower(name)] = struct{}{}
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// AddJoinType registers a dialect-specific join type.
func (b *Builder) AddJoinType(def JoinTypeDef) *Builder {
	b.dialect.joinTypes[def.Token] = def
	return b
}

// Clauses sets the trailing clauses handled by the default select extension.
func (b *Builder) Clauses(defs ...ClauseDef) *Builder {
	b.dialect.clauses = append([]ClauseDef(nil), defs...)
	for _, def := range defs {
		recordClause(def.Token, def.Name)
	}
	return b
}

// Extension replaces the default clause-driven select extension.
func (b *Builder) Extension(ext spi.SelectExtension) *Builder {
	b.dialect.extension = ext
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer.
func (b *Builder) Operators(sets ...[]OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
			if op.Symbol != "" {
				b.dialect.symbols[op.Symbol] = op.Token
			}
		}
	}
	return b
}

// JoinTypes adds join type definitions in bulk.
func (b *Builder) JoinTypes(sets ...[]JoinTypeDef) *Builder {
	for _, set := range sets {
		for _, jt := range set {
			b.dialect.joinTypes[jt.Token] = jt
		}
	}
	return b
}

// Build finalizes the dialect.
func (b *Builder) Build() *Dialect {
	d := b.dialect
	if d.extension == nil && (d.distinctOn || len(d.clauses) > 0) {
		d.extension = newClauseExtension(d.distinctOn, d.clauses)
	}
	return d
}
