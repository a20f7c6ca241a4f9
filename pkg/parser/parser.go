// Package parser turns a SQL SELECT statement into a routing context for a
// sharding middleware.
//
// # Usage
//
//	ctx, err := parser.ParseSelect("SELECT a FROM t WHERE id = ?", dialect.ANSI)
//	if err != nil {
//	    // handle error
//	}
//	for _, tok := range ctx.SortedTokens() {
//	    // tok.Offset, tok.Literal locate a table name in the original SQL
//	}
//
// Use the dialect registry to get a dialect by name:
//
//	d, ok := dialect.Get("mysql")
//	ctx, err := parser.ParseSelect(sql, d)
//
// # Grammar Overview
//
// The parser is recursive descent over a token stream. It reads enough of
// the statement to route it, not to execute it:
//
//	statement     → query [order_by] [dialect_tail] [;]
//	query         → '(' query ')' query_rest
//	              | SELECT [hint] [DISTINCT [ON (...)] | ALL] select_list
//	                [FROM table_source {join table_source [ON expr | USING (...)]}]
//	                [WHERE expr] [GROUP BY group_list [WITH ROLLUP]] [HAVING expr]
//	                query_rest
//	query_rest    → ε                 (UNION, EXCEPT, INTERSECT, MINUS are unsupported)
//	table_source  → table [[AS] alias] | schema.table [[AS] alias] | '(' ... ')' (unsupported)
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// ExprParser is the token cursor and expression parser shared by the
// SELECT parser and dialect hooks. It implements spi.ParserOps.
type ExprParser struct {
	sql     string
	dialect *dialect.Dialect
	logger  *slog.Logger

	tokens []Token
	pos    int   // index of the current token
	last   Token // last consumed token
	lexErr error

	params   int // placeholders consumed so far
	depth    int
	maxDepth int
}

var _ spi.ParserOps = (*ExprParser)(nil)

// NewExprParser tokenizes sql and returns a cursor on its first token.
// A nil dialect uses the default dialect. Lexical errors are reported by
// the first parse call.
func NewExprParser(sql string, d *dialect.Dialect, opts ...Option) *ExprParser {
	if d == nil {
		d = dialect.Default()
	}
	o := buildOptions(opts)

	raw, lexErr := Tokenize(sql, d)

	// Only a hint directly after SELECT is meaningful to the grammar
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.Type == TOKEN_COMMENT && (len(tokens) == 0 || tokens[len(tokens)-1].Type != TOKEN_SELECT) {
			continue
		}
		tokens = append(tokens, tok)
	}

	return &ExprParser{
		sql:      sql,
		dialect:  d,
		logger:   o.logger,
		tokens:   tokens,
		lexErr:   lexErr,
		maxDepth: o.maxDepth,
	}
}

// Dialect returns the parser's dialect.
func (p *ExprParser) Dialect() *dialect.Dialect {
	return p.dialect
}

// SQL returns the text being parsed.
func (p *ExprParser) SQL() string {
	return p.sql
}

// Err returns the first lexical error of the input.
func (p *ExprParser) Err() error {
	return p.lexErr
}

// ---------- spi.ParserOps Implementation ----------

// Token returns the current token (implements spi.ParserOps).
func (p *ExprParser) Token() token.Token {
	return p.tokens[p.pos]
}

// Peek returns the lookahead token (implements spi.ParserOps).
func (p *ExprParser) Peek() token.Token {
	return p.peekN(1)
}

// peekN returns the token n positions ahead, or EOF.
func (p *ExprParser) peekN(n int) Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// NextToken advances to the next token (implements spi.ParserOps).
// The cursor stays on EOF once reached.
func (p *ExprParser) NextToken() {
	p.last = p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// Check returns true if the current token is any of the given types (implements spi.ParserOps).
func (p *ExprParser) Check(types ...token.TokenType) bool {
	cur := p.Token().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// Match consumes the current token if it is any of the given types (implements spi.ParserOps).
func (p *ExprParser) Match(types ...token.TokenType) bool {
	if p.Check(types...) {
		p.NextToken()
		return true
	}
	return false
}

// MatchWord consumes the current token if it is the unquoted word, ignoring
// case. Used for soft keywords such as ROLLUP, ROWS or SHARE.
func (p *ExprParser) MatchWord(word string) bool {
	if p.isWord(p.Token(), word) {
		p.NextToken()
		return true
	}
	return false
}

// isWord reports whether tok is word written as a keyword or bare identifier.
func (p *ExprParser) isWord(tok Token, word string) bool {
	if tok.Type == TOKEN_STRING || tok.Type == TOKEN_EOF {
		return false
	}
	return tok.Is(word)
}

// Expect consumes the current token if it matches, otherwise returns an error (implements spi.ParserOps).
func (p *ExprParser) Expect(t token.TokenType) error {
	if p.Check(t) {
		p.NextToken()
		return nil
	}
	return p.Errorf(ErrUnexpectedToken, describe(p.Token()), t)
}

// ExpectWord consumes the given soft keyword or returns an error (implements spi.ParserOps).
func (p *ExprParser) ExpectWord(word string) error {
	if p.MatchWord(word) {
		return nil
	}
	return p.Errorf(ErrUnexpectedToken, describe(p.Token()), strings.ToUpper(word))
}

// SkipParens consumes a balanced parenthesized group starting at the
// current '(' (implements spi.ParserOps). Placeholders inside the group
// still advance the parameter index.
func (p *ExprParser) SkipParens() error {
	open := p.Token()
	if err := p.Expect(TOKEN_LPAREN); err != nil {
		return err
	}
	for depth := 1; depth > 0; {
		switch p.Token().Type {
		case TOKEN_EOF:
			return &ParseError{Pos: open.Pos, Message: ErrUnbalancedParens}
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		case TOKEN_PARAM:
			p.params++
		}
		p.NextToken()
	}
	return nil
}

// ParseExpression parses an expression (implements spi.ParserOps).
func (p *ExprParser) ParseExpression() (core.Expr, error) {
	return p.parseExpression()
}

// ParameterIndex returns the number of placeholders consumed so far (implements spi.ParserOps).
func (p *ExprParser) ParameterIndex() int {
	return p.params
}

// Errorf returns a syntax error at the current token (implements spi.ParserOps).
func (p *ExprParser) Errorf(format string, args ...any) error {
	return &ParseError{Pos: p.Token().Pos, Message: fmt.Sprintf(format, args...)}
}

// Unsupported returns an UnsupportedError at the current token (implements spi.ParserOps).
func (p *ExprParser) Unsupported(construct string) error {
	return &UnsupportedError{Pos: p.Token().Pos, Construct: construct}
}

// Position returns the current token's position (implements spi.ParserOps).
func (p *ExprParser) Position() token.Position {
	return p.Token().Pos
}

// ---------- Helpers ----------

// enter increments the nesting depth; callers must defer leave.
func (p *ExprParser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &ParseError{
			Pos:     p.Token().Pos,
			Message: fmt.Sprintf("nesting exceeds %d levels", p.maxDepth),
			Err:     ErrTooDeep,
		}
	}
	return nil
}

func (p *ExprParser) leave() {
	p.depth--
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *ExprParser) spanFrom(start Position) token.Span {
	return token.Span{Start: start, End: p.last.Span().End}
}

// textFrom returns the source text from start to the end of the last consumed token.
func (p *ExprParser) textFrom(start Position) string {
	end := p.last.End()
	if end < start.Offset {
		return ""
	}
	return p.sql[start.Offset:end]
}

// name returns the normalized name of an identifier token.
func (p *ExprParser) name(tok Token) string {
	return p.dialect.NormalizeIdentifier(tok.Literal)
}

// isAliasCandidate reports whether tok can be read as a bare alias.
func (p *ExprParser) isAliasCandidate(tok Token) bool {
	if tok.Type != TOKEN_IDENT {
		return false
	}
	if p.dialect.IsQuoted(tok.Literal) {
		return true
	}
	return !p.dialect.IsReservedWord(tok.Literal)
}

// debug logs a dropped construct.
func (p *ExprParser) debug(msg string, args ...any) {
	p.logger.Debug(msg, args...)
}
