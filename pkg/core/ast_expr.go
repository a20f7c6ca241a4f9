package core

import "github.com/leapstack-labs/shardsql/pkg/token"

// ---------- Expression Types ----------

// ColumnRef represents a column reference (possibly qualified).
// Schema, Table and Column hold normalized names.
type ColumnRef struct {
	Schema string
	Table  string
	Column string

	// Owner is the raw token of the table qualifier, nil when unqualified.
	Owner *token.Token
	Span  token.Span
}

func (*ColumnRef) exprNode() {}

// Pos implements Node.
func (c *ColumnRef) Pos() token.Position { return c.Span.Start }

// End implements Node.
func (c *ColumnRef) End() token.Position { return c.Span.End }

// IsQualified reports whether the column has a table qualifier.
func (c *ColumnRef) IsQualified() bool { return c.Owner != nil }

// Literal represents a literal value.
type Literal struct {
	Type  LiteralType
	Value string // unquoted value
	Span  token.Span
}

func (*Literal) exprNode() {}

// Pos implements Node.
func (l *Literal) Pos() token.Position { return l.Span.Start }

// End implements Node.
func (l *Literal) End() token.Position { return l.Span.End }

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for SQL literal value types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Placeholder represents a bind parameter (? or $n).
type Placeholder struct {
	// Index is the 0-based position of the placeholder among all
	// placeholders consumed so far in the statement.
	Index int
	Span  token.Span
}

func (*Placeholder) exprNode() {}

// Pos implements Node.
func (p *Placeholder) Pos() token.Position { return p.Span.Start }

// End implements Node.
func (p *Placeholder) End() token.Position { return p.Span.End }

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
	Span  token.Span
}

func (*BinaryExpr) exprNode() {}

// Pos implements Node.
func (b *BinaryExpr) Pos() token.Position { return b.Span.Start }

// End implements Node.
func (b *BinaryExpr) End() token.Position { return b.Span.End }

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
	Span token.Span
}

func (*UnaryExpr) exprNode() {}

// Pos implements Node.
func (u *UnaryExpr) Pos() token.Position { return u.Span.Start }

// End implements Node.
func (u *UnaryExpr) End() token.Position { return u.Span.End }

// FuncCall represents a function call.
type FuncCall struct {
	Name     string // upper-cased
	Distinct bool
	Args     []Expr
	Star     bool // COUNT(*)
	Over     bool // window function; the OVER (...) clause is skipped
	Span     token.Span
}

func (*FuncCall) exprNode() {}

// Pos implements Node.
func (f *FuncCall) Pos() token.Position { return f.Span.Start }

// End implements Node.
func (f *FuncCall) End() token.Position { return f.Span.End }

// CaseExpr represents a CASE expression.
type CaseExpr struct {
	Operand Expr // nil for searched CASE
	Whens   []WhenClause
	Else    Expr
	Span    token.Span
}

func (*CaseExpr) exprNode() {}

// Pos implements Node.
func (c *CaseExpr) Pos() token.Position { return c.Span.Start }

// End implements Node.
func (c *CaseExpr) End() token.Position { return c.Span.End }

// WhenClause represents a WHEN clause in CASE expression.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// CastExpr represents CAST(expr AS type) or expr::type.
type CastExpr struct {
	Expr     Expr
	TypeName string
	Span     token.Span
}

func (*CastExpr) exprNode() {}

// Pos implements Node.
func (c *CastExpr) Pos() token.Position { return c.Span.Start }

// End implements Node.
func (c *CastExpr) End() token.Position { return c.Span.End }

// InExpr represents an IN expression.
type InExpr struct {
	Expr     Expr
	Not      bool
	Values   []Expr
	Subquery *SubqueryExpr // set instead of Values for IN (SELECT ...)
	Span     token.Span
}

func (*InExpr) exprNode() {}

// Pos implements Node.
func (i *InExpr) Pos() token.Position { return i.Span.Start }

// End implements Node.
func (i *InExpr) End() token.Position { return i.Span.End }

// BetweenExpr represents a BETWEEN expression.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
	Span token.Span
}

func (*BetweenExpr) exprNode() {}

// Pos implements Node.
func (b *BetweenExpr) Pos() token.Position { return b.Span.Start }

// End implements Node.
func (b *BetweenExpr) End() token.Position { return b.Span.End }

// IsNullExpr represents an IS [NOT] NULL expression.
type IsNullExpr struct {
	Expr Expr
	Not  bool
	Span token.Span
}

func (*IsNullExpr) exprNode() {}

// Pos implements Node.
func (i *IsNullExpr) Pos() token.Position { return i.Span.Start }

// End implements Node.
func (i *IsNullExpr) End() token.Position { return i.Span.End }

// IsBoolExpr represents an IS [NOT] TRUE/FALSE expression.
type IsBoolExpr struct {
	Expr  Expr
	Not   bool
	Value bool
	Span  token.Span
}

func (*IsBoolExpr) exprNode() {}

// Pos implements Node.
func (i *IsBoolExpr) Pos() token.Position { return i.Span.Start }

// End implements Node.
func (i *IsBoolExpr) End() token.Position { return i.Span.End }

// LikeExpr represents a LIKE or ILIKE expression.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Op      token.TokenType
	Pattern Expr
	Span    token.Span
}

func (*LikeExpr) exprNode() {}

// Pos implements Node.
func (l *LikeExpr) Pos() token.Position { return l.Span.Start }

// End implements Node.
func (l *LikeExpr) End() token.Position { return l.Span.End }

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
	Span token.Span
}

func (*ParenExpr) exprNode() {}

// Pos implements Node.
func (p *ParenExpr) Pos() token.Position { return p.Span.Start }

// End implements Node.
func (p *ParenExpr) End() token.Position { return p.Span.End }

// StarExpr represents * or table.* in a select list.
type StarExpr struct {
	Table string       // normalized qualifier, empty for bare *
	Owner *token.Token // raw qualifier token, nil for bare *
	Span  token.Span
}

func (*StarExpr) exprNode() {}

// Pos implements Node.
func (s *StarExpr) Pos() token.Position { return s.Span.Start }

// End implements Node.
func (s *StarExpr) End() token.Position { return s.Span.End }

// SubqueryExpr represents a parenthesized subquery used as an expression.
// Its tokens are skipped, not parsed.
type SubqueryExpr struct {
	Span token.Span
}

func (*SubqueryExpr) exprNode() {}

// Pos implements Node.
func (s *SubqueryExpr) Pos() token.Position { return s.Span.Start }

// End implements Node.
func (s *SubqueryExpr) End() token.Position { return s.Span.End }

// ExistsExpr represents an [NOT] EXISTS (subquery) expression.
type ExistsExpr struct {
	Not      bool
	Subquery *SubqueryExpr
	Span     token.Span
}

func (*ExistsExpr) exprNode() {}

// Pos implements Node.
func (e *ExistsExpr) Pos() token.Position { return e.Span.Start }

// End implements Node.
func (e *ExistsExpr) End() token.Position { return e.Span.End }
