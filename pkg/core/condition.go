package core

import "strings"

// ConditionOperator is the comparison a sharding condition was built from.
type ConditionOperator string

// Condition operators.
const (
	OpEqual   ConditionOperator = "="
	OpIn      ConditionOperator = "IN"
	OpBetween ConditionOperator = "BETWEEN"
)

// ConditionContext holds the sharding conditions found in a WHERE clause.
// Only predicates connected by AND at the top level are collected.
type ConditionContext struct {
	Conditions []*Condition `json:"conditions" yaml:"conditions"`
}

// Add appends a condition.
func (c *ConditionContext) Add(cond *Condition) {
	c.Conditions = append(c.Conditions, cond)
}

// Find returns the first condition on table.column, ignoring case.
func (c *ConditionContext) Find(table, column string) (*Condition, bool) {
	for _, cond := range c.Conditions {
		if strings.EqualFold(cond.Column.Table, table) && strings.EqualFold(cond.Column.Name, column) {
			return cond, true
		}
	}
	return nil, false
}

// IsEmpty reports whether no condition was collected.
func (c *ConditionContext) IsEmpty() bool {
	return c == nil || len(c.Conditions) == 0
}

// Column identifies a column of a registered table.
type Column struct {
	Table string `json:"table" yaml:"table"` // normalized table name, never an alias
	Name  string `json:"name" yaml:"name"`
}

// Condition is one sharding predicate: column = v, column IN (v...) or
// column BETWEEN v AND v.
type Condition struct {
	Column   Column            `json:"column" yaml:"column"`
	Operator ConditionOperator `json:"operator" yaml:"operator"`
	Values   []ConditionValue  `json:"values" yaml:"values"`
}

// ConditionValue is a literal or a placeholder reference.
type ConditionValue struct {
	Literal *string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Param   *int    `json:"param,omitempty" yaml:"param,omitempty"` // 0-based placeholder index
}

// Resolve returns the value, substituting placeholders from params.
// ok is false when a placeholder has no bound parameter.
func (v ConditionValue) Resolve(params []any) (any, bool) {
	if v.Param != nil {
		if *v.Param < 0 || *v.Param >= len(params) {
			return nil, false
		}
		return params[*v.Param], true
	}
	if v.Literal != nil {
		return *v.Literal, true
	}
	return nil, false
}
