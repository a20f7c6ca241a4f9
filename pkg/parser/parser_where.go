package parser

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// ParseWhere parses the WHERE predicate (the WHERE keyword has already been
// consumed) and extracts sharding conditions on the tables of ctx.
//
// Collected predicates, when connected to the root by AND only:
//
//	column = value       value = column
//	column IN (value, ...)
//	column BETWEEN value AND value
//
// where value is a literal or a placeholder. Returns nil when nothing was
// collected.
func (p *ExprParser) ParseWhere(ctx *core.SelectContext) (*core.ConditionContext, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	conds := &core.ConditionContext{}
	p.collectConditions(expr, ctx, conds)
	if conds.IsEmpty() {
		return nil, nil
	}
	return conds, nil
}

// collectConditions walks the AND spine of expr.
func (p *ExprParser) collectConditions(expr core.Expr, ctx *core.SelectContext, out *core.ConditionContext) {
	switch e := expr.(type) {
	case *core.ParenExpr:
		p.collectConditions(e.Expr, ctx, out)

	case *core.BinaryExpr:
		switch e.Op {
		case token.AND:
			p.collectConditions(e.Left, ctx, out)
			p.collectConditions(e.Right, ctx, out)
		case token.EQ:
			colExpr, valExpr := e.Left, e.Right
			if _, ok := colExpr.(*core.ColumnRef); !ok {
				colExpr, valExpr = valExpr, colExpr
			}
			p.addCondition(out, ctx, colExpr, core.OpEqual, valExpr)
		}

	case *core.InExpr:
		if !e.Not && e.Subquery == nil {
			p.addCondition(out, ctx, e.Expr, core.OpIn, e.Values...)
		}

	case *core.BetweenExpr:
		if !e.Not {
			p.addCondition(out, ctx, e.Expr, core.OpBetween, e.Low, e.High)
		}
	}
}

// addCondition records col op values when col resolves to a table and
// every value is a literal or placeholder.
func (p *ExprParser) addCondition(out *core.ConditionContext, ctx *core.SelectContext, col core.Expr, op core.ConditionOperator, values ...core.Expr) {
	ref, ok := col.(*core.ColumnRef)
	if !ok {
		return
	}
	column, ok := resolveColumn(ref, ctx)
	if !ok {
		return
	}

	cond := &core.Condition{Column: column, Operator: op}
	for _, v := range values {
		cv, ok := conditionValue(v)
		if !ok {
			return
		}
		cond.Values = append(cond.Values, cv)
	}
	out.Add(cond)
}

// resolveColumn maps a column reference to a registered table. Qualified
// references resolve by table name or alias; unqualified ones resolve only
// when exactly one table is registered.
func resolveColumn(ref *core.ColumnRef, ctx *core.SelectContext) (core.Column, bool) {
	if ref.IsQualified() {
		t, ok := ctx.FindTable(ref.Table)
		if !ok {
			return core.Column{}, false
		}
		return core.Column{Table: t.Name, Name: ref.Column}, true
	}
	names := ctx.TableNames()
	if len(names) != 1 {
		return core.Column{}, false
	}
	return core.Column{Table: names[0], Name: ref.Column}, true
}

// conditionValue converts a literal or placeholder. NULL is not a value.
func conditionValue(expr core.Expr) (core.ConditionValue, bool) {
	switch e := expr.(type) {
	case *core.Placeholder:
		idx := e.Index
		return core.ConditionValue{Param: &idx}, true
	case *core.Literal:
		if e.Type == core.LiteralNull {
			return core.ConditionValue{}, false
		}
		v := e.Value
		return core.ConditionValue{Literal: &v}, true
	case *core.UnaryExpr:
		if lit, ok := e.Expr.(*core.Literal); ok && e.Op == token.MINUS && lit.Type == core.LiteralNumber {
			v := "-" + lit.Value
			return core.ConditionValue{Literal: &v}, true
		}
	}
	return core.ConditionValue{}, false
}
