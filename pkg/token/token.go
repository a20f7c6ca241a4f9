// Package token defines the token types for SQL parsing.
//
// Core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific keywords are registered dynamically via Register().
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT   // identifier, quoted or bare
	NUMBER  // 123, 45.67, 1e10
	STRING  // 'hello'
	PARAM   // ? or $1
	COMMENT // optimizer hint /*+ ... */ or executable comment /*! ... */

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	// Keywords (alphabetical)
	ALL
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CROSS
	DESC
	DISTINCT
	DISTINCTROW
	ELSE
	END
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FOR
	FROM
	FULL
	GROUP
	HAVING
	IN
	INNER
	INTERSECT
	IS
	JOIN
	LEFT
	LIKE
	LIMIT
	NATURAL
	NOT
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	RIGHT
	SELECT
	STRAIGHT_JOIN
	THEN
	TRUE
	UNION
	USING
	WHEN
	WHERE
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:   "IDENT",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	PARAM:   "PARAM",
	COMMENT: "COMMENT",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":           ALL,
	"and":           AND,
	"as":            AS,
	"asc":           ASC,
	"between":       BETWEEN,
	"by":            BY,
	"case":          CASE,
	"cast":          CAST,
	"cross":         CROSS,
	"desc":          DESC,
	"distinct":      DISTINCT,
	"distinctrow":   DISTINCTROW,
	"else":          ELSE,
	"end":           END,
	"except":        EXCEPT,
	"exists":        EXISTS,
	"false":         FALSE,
	"fetch":         FETCH,
	"for":           FOR,
	"from":          FROM,
	"full":          FULL,
	"group":         GROUP,
	"having":        HAVING,
	"in":            IN,
	"inner":         INNER,
	"intersect":     INTERSECT,
	"is":            IS,
	"join":          JOIN,
	"left":          LEFT,
	"like":          LIKE,
	"limit":         LIMIT,
	"natural":       NATURAL,
	"not":           NOT,
	"null":          NULL,
	"nulls":         NULLS,
	"offset":        OFFSET,
	"on":            ON,
	"or":            OR,
	"order":         ORDER,
	"outer":         OUTER,
	"right":         RIGHT,
	"select":        SELECT,
	"straight_join": STRAIGHT_JOIN,
	"then":          THEN,
	"true":          TRUE,
	"union":         UNION,
	"using":         USING,
	"when":          WHEN,
	"where":         WHERE,
	"with":          WITH,
}

func init() {
	for word, t := range keywords {
		tokenNames[t] = strings.ToUpper(word)
	}
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a builtin keyword, the keyword token type is returned.
// Otherwise, IDENT is returned. Dynamic keywords are resolved separately
// with LookupDynamicKeyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= SEMICOLON
}

// IsComparison returns true for the binary comparison operators.
func IsComparison(t TokenType) bool {
	switch t {
	case EQ, NE, LT, GT, LE, GE:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
//
// Literal is the exact source text of the token, quotes included, so
// that sql[Pos.Offset:End()] == Literal always holds.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// End returns the byte offset immediately after the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Literal)
}

// Is reports whether the token's literal equals word, ignoring case.
// Used for soft keywords (ROLLUP, LOCK, SHARE) that are not reserved.
func (t Token) Is(word string) bool {
	return strings.EqualFold(t.Literal, word)
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	end := t.Pos
	end.Offset = t.End()
	end.Column += len(t.Literal)
	return Span{Start: t.Pos, End: end}
}
