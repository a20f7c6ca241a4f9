package core

import "github.com/leapstack-labs/shardsql/pkg/token"

// Node is the base interface for all expression nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Text returns the source text covered by n.
// Returns "" when n carries no valid range within sql.
func Text(sql string, n Node) string {
	if n == nil {
		return ""
	}
	start, end := n.Pos().Offset, n.End().Offset
	if start < 0 || end > len(sql) || start >= end {
		return ""
	}
	return sql[start:end]
}
