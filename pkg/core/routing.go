package core

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/token"
)

// SelectContext is the routing context built while parsing one SELECT
// statement. It is handed to the shard router and the result merger.
type SelectContext struct {
	// SQL is the original statement text. Rewrite token offsets index into it.
	SQL string `json:"-" yaml:"-"`

	Distinct     bool `json:"distinct" yaml:"distinct"`
	ContainsStar bool `json:"contains_star" yaml:"contains_star"`

	Items      []SelectItem        `json:"items" yaml:"items"`
	Tables     []TableRef          `json:"tables" yaml:"tables"`
	Conditions []*ConditionContext `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	GroupBy    []GroupByItem       `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	OrderBy    []OrderByItem       `json:"order_by,omitempty" yaml:"order_by,omitempty"`

	// Tokens are appended in discovery order, which is not offset order.
	// Use SortedTokens before substituting text.
	Tokens []RewriteToken `json:"tokens" yaml:"tokens"`

	// SelectListEnd is the byte offset immediately after the last select-list token.
	SelectListEnd int `json:"select_list_end" yaml:"select_list_end"`

	// ParameterIndex is the number of placeholders consumed so far.
	ParameterIndex int `json:"parameter_index" yaml:"parameter_index"`

	Limit *Limit `json:"limit,omitempty" yaml:"limit,omitempty"`
	Lock  string `json:"lock,omitempty" yaml:"lock,omitempty"` // FOR UPDATE, FOR SHARE, LOCK IN SHARE MODE

	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewSelectContext returns an empty context for sql.
func NewSelectContext(sql string) *SelectContext {
	return &SelectContext{SQL: sql}
}

// AddTable appends a table reference.
func (c *SelectContext) AddTable(t TableRef) {
	c.Tables = append(c.Tables, t)
}

// AddToken appends a rewrite token for tok, the raw occurrence of table name.
func (c *SelectContext) AddToken(tok token.Token, name string) {
	c.Tokens = append(c.Tokens, RewriteToken{
		Offset:  tok.Pos.Offset,
		Literal: tok.Literal,
		Name:    name,
	})
}

// AddDiagnostic records a construct that was accepted but not interpreted.
func (c *SelectContext) AddDiagnostic(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// FindTable returns the table whose name or alias equals name. Exact
// matches win over case-insensitive ones, and names win over aliases.
func (c *SelectContext) FindTable(name string) (TableRef, bool) {
	if t, ok := c.FindTableByName(name); ok {
		return t, true
	}
	for _, t := range c.Tables {
		if t.Alias != nil && *t.Alias == name {
			return t, true
		}
	}
	for _, t := range c.Tables {
		if t.Alias != nil && strings.EqualFold(*t.Alias, name) {
			return t, true
		}
	}
	return TableRef{}, false
}

// FindTableByName returns the table whose name equals name, preferring an
// exact match over a case-insensitive one. Aliases are not considered.
func (c *SelectContext) FindTableByName(name string) (TableRef, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	for _, t := range c.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return TableRef{}, false
}

// TableNames returns the distinct table names in declaration order.
func (c *SelectContext) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		if !slices.Contains(names, t.Name) {
			names = append(names, t.Name)
		}
	}
	return names
}

// SortedTokens returns a copy of the rewrite tokens ordered by offset.
func (c *SelectContext) SortedTokens() []RewriteToken {
	sorted := slices.Clone(c.Tokens)
	slices.SortStableFunc(sorted, func(a, b RewriteToken) int {
		return a.Offset - b.Offset
	})
	return sorted
}

// DropDiagnosticsBelow removes diagnostics less severe than minimum.
func (c *SelectContext) DropDiagnosticsBelow(minimum Severity) {
	c.Diagnostics = slices.DeleteFunc(c.Diagnostics, func(d Diagnostic) bool {
		return d.Severity > minimum
	})
}

// Condition returns the WHERE condition context, or nil when none was built.
func (c *SelectContext) Condition() *ConditionContext {
	if len(c.Conditions) == 0 {
		return nil
	}
	return c.Conditions[0]
}

// TableRef is one table occurrence in FROM or JOIN.
type TableRef struct {
	Literal string  `json:"literal" yaml:"literal"` // raw text, quotes included
	Name    string  `json:"name" yaml:"name"`       // normalized name
	Alias   *string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Join    string  `json:"join,omitempty" yaml:"join,omitempty"` // how the table was joined, empty for the first
}

// RewriteToken marks an occurrence of a logical table name in the SQL text.
// SQL[Offset:Offset+len(Literal)] == Literal always holds.
type RewriteToken struct {
	Offset  int    `json:"offset" yaml:"offset"`
	Literal string `json:"literal" yaml:"literal"`
	Name    string `json:"name" yaml:"name"` // normalized table name
}

// End returns the offset immediately after the token.
func (t RewriteToken) End() int {
	return t.Offset + len(t.Literal)
}

// OrderDirection is the sort direction of a GROUP BY or ORDER BY item.
type OrderDirection string

// Sort directions.
const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)

// GroupByItem is one column of a GROUP BY list.
type GroupByItem struct {
	Owner     *string        `json:"owner,omitempty" yaml:"owner,omitempty"`
	Column    string         `json:"column" yaml:"column"`
	Direction OrderDirection `json:"direction" yaml:"direction"`
}

// OrderByItem is one entry of the top-level ORDER BY list.
type OrderByItem struct {
	Owner *string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Name  *string `json:"name,omitempty" yaml:"name,omitempty"`

	// Index is the 1-based select-list position for ORDER BY 2, otherwise 0.
	Index int `json:"index,omitempty" yaml:"index,omitempty"`

	// Expression is the raw source text of the sort key.
	Expression string         `json:"expression" yaml:"expression"`
	Direction  OrderDirection `json:"direction" yaml:"direction"`
	NullsFirst *bool          `json:"nulls_first,omitempty" yaml:"nulls_first,omitempty"`
}

// SelectItem is one projection of the select list.
type SelectItem struct {
	Index      int     `json:"index" yaml:"index"` // 1-based
	Expression string  `json:"expression" yaml:"expression"`
	Alias      *string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Star       bool    `json:"star,omitempty" yaml:"star,omitempty"`
	Owner      *string `json:"owner,omitempty" yaml:"owner,omitempty"`

	// Aggregate is the upper-cased function name when the whole item is an
	// aggregate call (COUNT, SUM, ...), otherwise empty.
	Aggregate string `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
}

// Limit holds the pagination of a statement.
type Limit struct {
	Offset   *LimitValue `json:"offset,omitempty" yaml:"offset,omitempty"`
	RowCount *LimitValue `json:"row_count,omitempty" yaml:"row_count,omitempty"`
}

// LimitValue is either a literal count or a placeholder.
type LimitValue struct {
	Value int64 `json:"value" yaml:"value"`
	Param *int  `json:"param,omitempty" yaml:"param,omitempty"` // 0-based placeholder index
}

// IsParam reports whether the value is bound through a placeholder.
func (v *LimitValue) IsParam() bool {
	return v != nil && v.Param != nil
}

// DiagnosticKind names a construct that was parsed but deliberately not
// interpreted.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagGroupByExpression   DiagnosticKind = "group-by-expression"
	DiagHaving              DiagnosticKind = "having"
	DiagSchemaQualified     DiagnosticKind = "schema-qualified-table"
	DiagJoinUsing           DiagnosticKind = "join-using"
	DiagWhereWithoutTables  DiagnosticKind = "where-without-tables"
	DiagSetQuantifierUnion  DiagnosticKind = "union-as-distinct"
	DiagDistinctOnDiscarded DiagnosticKind = "distinct-on"
)

// Diagnostic reports a silently dropped construct.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Offset   int            `json:"offset" yaml:"offset"`
	Message  string         `json:"message" yaml:"message"`
}
