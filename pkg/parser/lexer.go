package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// Lexer tokenizes SQL input.
//
// Every token carries its exact source text and absolute start offset,
// so input[tok.Pos.Offset:tok.End()] == tok.Literal for every token.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect

	// Comments collected during lexing. Optimizer hints are returned as
	// COMMENT tokens instead.
	Comments []*token.Comment

	// Errors reported for ILLEGAL tokens, in input order.
	Errors []*ParseError
}

// NewLexer creates a new dialect-aware Lexer for the given input.
// A nil dialect uses the default dialect.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	if d == nil {
		d = dialect.Default()
	}
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	if l.atEOF() {
		return Token{Type: TOKEN_EOF, Pos: pos}
	}

	// Optimizer hints and executable comments reach the parser
	if l.ch == '/' && l.peekChar() == '*' && l.pos+2 < len(l.input) {
		if c := l.input[l.pos+2]; c == '+' || c == '!' {
			return l.readHint(pos)
		}
	}
	if l.ch == '/' && l.peekChar() == '*' {
		// Closed block comments were skipped above
		return l.illegal(pos, len(l.input), ErrUnterminatedBlock)
	}

	// Check dialect-specific symbols first (longest match)
	if tok, ok := l.matchDialectSymbol(pos); ok {
		return tok
	}

	// Dialect identifier quotes win over string quotes (ANSI "x" vs MySQL "x")
	if q := l.dialect.Identifiers.Quote; q != "" && l.ch == q[0] {
		return l.readQuoted(pos, TOKEN_IDENT, l.dialect.Identifiers.QuoteEnd[0], ErrUnterminatedIdent)
	}

	switch l.ch {
	case '+':
		return l.single(pos, TOKEN_PLUS)
	case '-':
		return l.single(pos, TOKEN_MINUS)
	case '*':
		return l.single(pos, TOKEN_STAR)
	case '/':
		return l.single(pos, TOKEN_SLASH)
	case '%':
		return l.single(pos, TOKEN_MOD)
	case '=':
		return l.single(pos, TOKEN_EQ)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(pos, TOKEN_LE)
		case '>':
			return l.double(pos, TOKEN_NE)
		default:
			return l.single(pos, TOKEN_LT)
		}
	case '>':
		if l.peekChar() == '=' {
			return l.double(pos, TOKEN_GE)
		}
		return l.single(pos, TOKEN_GT)
	case '!':
		if l.peekChar() == '=' {
			return l.double(pos, TOKEN_NE)
		}
	case '|':
		if l.peekChar() == '|' {
			return l.double(pos, TOKEN_DPIPE)
		}
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(pos)
		}
		return l.single(pos, TOKEN_DOT)
	case ',':
		return l.single(pos, TOKEN_COMMA)
	case '(':
		return l.single(pos, TOKEN_LPAREN)
	case ')':
		return l.single(pos, TOKEN_RPAREN)
	case ';':
		return l.single(pos, TOKEN_SEMICOLON)
	case '?':
		return l.single(pos, TOKEN_PARAM)
	case '$':
		if isDigit(l.peekChar()) {
			return l.readDollarParam(pos)
		}
	case '\'':
		return l.readQuoted(pos, TOKEN_STRING, '\'', ErrUnterminatedString)
	case '"':
		// Only reached when " does not quote identifiers (MySQL)
		return l.readQuoted(pos, TOKEN_STRING, '"', ErrUnterminatedString)
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			return l.readWord(pos)
		case isDigit(l.ch):
			return l.readNumber(pos)
		}
	}

	return l.illegal(pos, l.pos+1, fmt.Sprintf(ErrIllegalCharacter, l.ch))
}

// single consumes one character as a token of type t.
func (l *Lexer) single(pos Position, t TokenType) Token {
	lit := l.input[l.pos : l.pos+1]
	l.readChar()
	return Token{Type: t, Literal: lit, Pos: pos}
}

// double consumes two characters as a token of type t.
func (l *Lexer) double(pos Position, t TokenType) Token {
	lit := l.input[l.pos : l.pos+2]
	l.readChar()
	l.readChar()
	return Token{Type: t, Literal: lit, Pos: pos}
}

// illegal consumes input up to end and reports it.
func (l *Lexer) illegal(pos Position, end int, msg string) Token {
	for l.pos < end && !l.atEOF() {
		l.readChar()
	}
	l.Errors = append(l.Errors, &ParseError{Pos: pos, Message: msg})
	return Token{Type: TOKEN_ILLEGAL, Literal: l.input[pos.Offset:l.pos], Pos: pos}
}

// matchDialectSymbol checks if the current position matches a dialect-specific symbol.
// Returns the longest matching symbol (e.g., "::" before ":").
func (l *Lexer) matchDialectSymbol(pos Position) (Token, bool) {
	symbols := l.dialect.Symbols()
	if len(symbols) == 0 {
		return Token{}, false
	}

	remaining := l.input[l.pos:]

	// Find all matching symbols
	var matches []string
	for sym := range symbols {
		if strings.HasPrefix(remaining, sym) {
			matches = append(matches, sym)
		}
	}

	if len(matches) == 0 {
		return Token{}, false
	}

	// Sort by length descending (longest match first)
	sort.Slice(matches, func(i, j int) bool {
		return len(matches[i]) > len(matches[j])
	})

	symbol := matches[0]

	// Consume the symbol characters
	for range symbol {
		l.readChar()
	}

	return Token{Type: symbols[symbol], Literal: symbol, Pos: pos}, true
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		switch {
		case l.ch == '-' && l.peekChar() == '-':
			l.collectLineComment()
		case l.ch == '#' && l.dialect.HashComments():
			l.collectLineComment()
		case l.ch == '/' && l.peekChar() == '*' && !l.atHint():
			if !l.collectBlockComment() {
				return
			}
		default:
			return
		}
	}
}

// atHint reports whether the current block comment is a /*+ or /*! hint.
func (l *Lexer) atHint() bool {
	if l.pos+2 >= len(l.input) {
		return false
	}
	c := l.input[l.pos+2]
	return c == '+' || c == '!'
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	// Consume until end of line
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment. It returns false, leaving
// the comment unconsumed, when the comment is never closed.
func (l *Lexer) collectBlockComment() bool {
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		return false
	}
	startPos := l.currentPos()
	startOffset := l.pos
	stop := l.pos + 2 + end + 2
	for l.pos < stop {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
	return true
}

// readHint reads a /*+ ... */ or /*! ... */ comment as a COMMENT token.
func (l *Lexer) readHint(pos Position) Token {
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		return l.illegal(pos, len(l.input), ErrUnterminatedBlock)
	}
	stop := l.pos + 2 + end + 2
	for l.pos < stop {
		l.readChar()
	}
	return Token{Type: TOKEN_COMMENT, Literal: l.input[pos.Offset:l.pos], Pos: pos}
}

// readQuoted reads a quoted string or identifier. A doubled closing quote
// is an escaped quote:
//
//	'it''s'  "col""name"  `a``b`
func (l *Lexer) readQuoted(pos Position, t TokenType, closing byte, unterminated string) Token {
	l.readChar() // skip opening quote

	for !l.atEOF() {
		if l.ch == closing {
			if l.peekChar() == closing {
				l.readChar() // skip first quote
				l.readChar() // skip second quote
				continue
			}
			l.readChar() // skip closing quote
			return Token{Type: t, Literal: l.input[pos.Offset:l.pos], Pos: pos}
		}
		l.readChar()
	}
	return l.illegal(pos, len(l.input), unterminated)
}

// readWord reads an identifier or keyword.
func (l *Lexer) readWord(pos Position) Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	lower := strings.ToLower(lit)

	// Check builtin keywords first, then the dialect's own keywords
	t := token.LookupIdent(lower)
	if t == TOKEN_IDENT {
		if dynTok, ok := l.dialect.LookupKeyword(lower); ok {
			t = dynTok
		}
	}
	return Token{Type: t, Literal: lit, Pos: pos}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return Token{Type: TOKEN_NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// exponentFollows reports whether the e/E under the cursor starts an exponent.
func (l *Lexer) exponentFollows() bool {
	next := l.peekChar()
	if isDigit(next) {
		return true
	}
	if (next == '+' || next == '-') && l.readPos+1 < len(l.input) {
		return isDigit(l.input[l.readPos+1])
	}
	return false
}

// readDollarParam reads a $n placeholder.
func (l *Lexer) readDollarParam(pos Position) Token {
	start := l.pos
	l.readChar() // skip '$'
	for isDigit(l.ch) {
		l.readChar()
	}
	return Token{Type: TOKEN_PARAM, Literal: l.input[start:l.pos], Pos: pos}
}

// isLetter returns true if ch is a letter. Bytes of multi-byte UTF-8
// sequences are treated as letters so non-ASCII identifiers stay whole.
func isLetter(ch byte) bool {
	return ch >= 0x80 || unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with EOF.
// The first lexical error, if any, is returned alongside the tokens.
func Tokenize(input string, d *dialect.Dialect) ([]Token, error) {
	l := NewLexer(input, d)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	if len(l.Errors) > 0 {
		return tokens, l.Errors[0]
	}
	return tokens, nil
}
