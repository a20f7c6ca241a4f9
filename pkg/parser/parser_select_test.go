package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/shardsql/internal/testutil"
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/parser"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

// parseANSI parses sql with the builtin dialect and fails the test on error.
func parseANSI(t *testing.T, sql string) *core.SelectContext {
	t.Helper()
	ctx, err := parser.ParseSelect(sql, dialect.ANSI, parser.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err, sql)
	requireTokensMatch(t, ctx)
	return ctx
}

// requireTokensMatch checks that every rewrite token addresses its literal.
func requireTokensMatch(t *testing.T, ctx *core.SelectContext) {
	t.Helper()
	for _, tok := range ctx.Tokens {
		require.LessOrEqual(t, tok.End(), len(ctx.SQL))
		require.Equal(t, tok.Literal, ctx.SQL[tok.Offset:tok.End()], "token at %d", tok.Offset)
	}
}

func diagnosticKinds(ctx *core.SelectContext) []core.DiagnosticKind {
	var kinds []core.DiagnosticKind
	for _, d := range ctx.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

// ---------- Tables and Tokens ----------

func TestParseSelect_SingleTable(t *testing.T) {
	sql := "SELECT a FROM orders o"
	ctx := parseANSI(t, sql)

	assert.Equal(t, sql, ctx.SQL)
	assert.Equal(t, []core.TableRef{
		{Literal: "orders", Name: "orders", Alias: strPtr("o")},
	}, ctx.Tables)
	assert.Equal(t, []core.RewriteToken{
		{Offset: 14, Literal: "orders", Name: "orders"},
	}, ctx.Tokens)
	assert.Equal(t, []core.SelectItem{
		{Index: 1, Expression: "a"},
	}, ctx.Items)
	assert.Equal(t, 8, ctx.SelectListEnd)
	assert.False(t, ctx.ContainsStar)
	assert.False(t, ctx.Distinct)
	assert.Empty(t, ctx.Conditions)
	assert.Nil(t, ctx.Limit)
}

func TestParseSelect_AliasForms(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		alias *string
	}{
		{name: "bare alias", sql: "SELECT * FROM orders o", alias: strPtr("o")},
		{name: "as alias", sql: "SELECT * FROM orders AS o", alias: strPtr("o")},
		{name: "quoted alias keeps case", sql: `SELECT * FROM orders "O"`, alias: strPtr("O")},
		{name: "no alias before where", sql: "SELECT * FROM orders WHERE id = 1", alias: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)
			require.Len(t, ctx.Tables, 1)
			assert.Equal(t, tt.alias, ctx.Tables[0].Alias)
		})
	}
}

func TestParseSelect_ReservedWordIsNotAlias(t *testing.T) {
	// "window" is left over and rejected as trailing input
	_, err := parser.ParseSelect("SELECT * FROM orders window", dialect.ANSI)
	require.ErrorIs(t, err, parser.ErrSyntax)
	assert.Contains(t, err.Error(), `unexpected "window" after end of statement`)
}

func TestParseSelect_Joins(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		wantJoin   string
		wantTokens []core.RewriteToken
	}{
		{
			name:     "inner join with table owners",
			sql:      "SELECT * FROM t1 JOIN t2 ON t1.id = t2.t1_id",
			wantJoin: dialect.JoinInner,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 22, Literal: "t2", Name: "t2"},
				{Offset: 28, Literal: "t1", Name: "t1"},
				{Offset: 36, Literal: "t2", Name: "t2"},
			},
		},
		{
			name:     "alias owners are not tokens",
			sql:      "SELECT * FROM t1 a LEFT OUTER JOIN t2 b ON a.id = b.id",
			wantJoin: dialect.JoinLeft,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 35, Literal: "t2", Name: "t2"},
			},
		},
		{
			name:     "mixed owners",
			sql:      "SELECT * FROM t1 a RIGHT JOIN t2 ON a.id = t2.id",
			wantJoin: dialect.JoinRight,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 30, Literal: "t2", Name: "t2"},
				{Offset: 43, Literal: "t2", Name: "t2"},
			},
		},
		{
			name:     "owners under AND and parentheses",
			sql:      "SELECT * FROM t1 INNER JOIN t2 ON (t1.a = t2.a AND t1.b > 0)",
			wantJoin: dialect.JoinInner,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 28, Literal: "t2", Name: "t2"},
				{Offset: 35, Literal: "t1", Name: "t1"},
				{Offset: 42, Literal: "t2", Name: "t2"},
				{Offset: 51, Literal: "t1", Name: "t1"},
			},
		},
		{
			name:     "owner case differs from table",
			sql:      "SELECT * FROM Orders JOIN items ON ORDERS.id = items.oid",
			wantJoin: dialect.JoinInner,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "Orders", Name: "orders"},
				{Offset: 26, Literal: "items", Name: "items"},
				{Offset: 35, Literal: "ORDERS", Name: "orders"},
				{Offset: 47, Literal: "items", Name: "items"},
			},
		},
		{
			name:     "cross join",
			sql:      "SELECT * FROM t1 CROSS JOIN t2",
			wantJoin: dialect.JoinCross,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 28, Literal: "t2", Name: "t2"},
			},
		},
		{
			name:     "comma join",
			sql:      "SELECT * FROM t1, t2",
			wantJoin: dialect.JoinComma,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 18, Literal: "t2", Name: "t2"},
			},
		},
		{
			name:     "natural join",
			sql:      "SELECT * FROM t1 NATURAL JOIN t2",
			wantJoin: "NATURAL " + dialect.JoinInner,
			wantTokens: []core.RewriteToken{
				{Offset: 14, Literal: "t1", Name: "t1"},
				{Offset: 30, Literal: "t2", Name: "t2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)
			require.Len(t, ctx.Tables, 2)
			assert.Empty(t, ctx.Tables[0].Join)
			assert.Equal(t, tt.wantJoin, ctx.Tables[1].Join)
			assert.Equal(t, tt.wantTokens, ctx.SortedTokens())
		})
	}
}

func TestParseSelect_JoinChain(t *testing.T) {
	sql := "SELECT * FROM a JOIN b ON a.id = b.id LEFT JOIN c ON b.id = c.id, d"
	ctx := parseANSI(t, sql)

	assert.Equal(t, []string{"a", "b", "c", "d"}, ctx.TableNames())
	assert.Len(t, ctx.Tokens, 8)
	assert.Equal(t, ",", ctx.Tables[3].Join)
}

func TestParseSelect_NestedJoins(t *testing.T) {
	tok := func(offset int, name string) core.RewriteToken {
		return core.RewriteToken{Offset: offset, Literal: name, Name: name}
	}

	tests := []struct {
		name       string
		sql        string
		wantJoins  []string
		wantTokens []core.RewriteToken
	}{
		{
			name:      "each ON binds to the nearest join",
			sql:       "SELECT a FROM t1 JOIN t2 JOIN t3 ON t2.a = t3.b ON t1.a = t2.b",
			wantJoins: []string{"", dialect.JoinInner, dialect.JoinInner},
			wantTokens: []core.RewriteToken{
				tok(14, "t1"), tok(22, "t2"), tok(30, "t3"),
				tok(36, "t2"), tok(43, "t3"),
				tok(51, "t1"), tok(58, "t2"),
			},
		},
		{
			name:      "inner USING then outer ON",
			sql:       "SELECT * FROM t1 LEFT JOIN t2 JOIN t3 USING (id) ON t1.a = t2.b",
			wantJoins: []string{"", dialect.JoinLeft, dialect.JoinInner},
			wantTokens: []core.RewriteToken{
				tok(14, "t1"), tok(27, "t2"), tok(35, "t3"),
				tok(52, "t1"), tok(59, "t2"),
			},
		},
		{
			name:      "comma closes the nested chain",
			sql:       "SELECT * FROM t1 JOIN t2 JOIN t3 ON t2.a = t3.b ON t1.a = t2.b, t4 JOIN t5 ON t4.x = t5.y",
			wantJoins: []string{"", dialect.JoinInner, dialect.JoinInner, dialect.JoinComma, dialect.JoinInner},
			wantTokens: []core.RewriteToken{
				tok(14, "t1"), tok(22, "t2"), tok(30, "t3"),
				tok(36, "t2"), tok(43, "t3"),
				tok(51, "t1"), tok(58, "t2"),
				tok(64, "t4"), tok(72, "t5"),
				tok(78, "t4"), tok(85, "t5"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)

			joins := make([]string, 0, len(ctx.Tables))
			for _, table := range ctx.Tables {
				joins = append(joins, table.Join)
			}
			assert.Equal(t, tt.wantJoins, joins)
			assert.Equal(t, tt.wantTokens, ctx.Tokens)
		})
	}
}

func TestParseSelect_NestedJoinErrors(t *testing.T) {
	t.Run("ON without a pending join", func(t *testing.T) {
		_, err := parser.ParseSelect("SELECT a FROM t1 JOIN t2 ON t1.a = t2.b ON t1.c = t2.d", dialect.ANSI)
		require.ErrorIs(t, err, parser.ErrSyntax)
		assert.Contains(t, err.Error(), `unexpected "ON" after end of statement`)
	})

	t.Run("ON after a comma source", func(t *testing.T) {
		_, err := parser.ParseSelect("SELECT a FROM t1, t2 ON t1.a = t2.b", dialect.ANSI)
		require.ErrorIs(t, err, parser.ErrSyntax)
	})
}

func TestParseSelect_JoinUsing(t *testing.T) {
	ctx := parseANSI(t, "SELECT * FROM t1 JOIN t2 USING (id, region)")

	assert.Len(t, ctx.Tables, 2)
	assert.Len(t, ctx.Tokens, 2)
	assert.Equal(t, []core.DiagnosticKind{core.DiagJoinUsing}, diagnosticKinds(ctx))
	assert.Contains(t, ctx.Diagnostics[0].Message, "USING (id, region)")
}

func TestParseSelect_SchemaQualifiedTable(t *testing.T) {
	sql := "SELECT * FROM sales.orders o WHERE o.id = 1"
	ctx := parseANSI(t, sql)

	assert.Empty(t, ctx.Tables)
	assert.Empty(t, ctx.Tokens)
	require.Len(t, ctx.Diagnostics, 2)
	assert.Equal(t, core.DiagSchemaQualified, ctx.Diagnostics[0].Kind)
	assert.Equal(t, core.SeverityWarning, ctx.Diagnostics[0].Severity)
	assert.Equal(t, strings.Index(sql, "sales"), ctx.Diagnostics[0].Offset)
	assert.Equal(t, core.DiagWhereWithoutTables, ctx.Diagnostics[1].Kind)
}

func TestParseSelect_QuotedIdentifiers(t *testing.T) {
	sql := `SELECT * FROM "Order Items" WHERE "Order Items".id = 7`
	ctx := parseANSI(t, sql)

	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, `"Order Items"`, ctx.Tables[0].Literal)
	assert.Equal(t, "Order Items", ctx.Tables[0].Name)
	assert.Equal(t, []core.RewriteToken{
		{Offset: 14, Literal: `"Order Items"`, Name: "Order Items"},
	}, ctx.Tokens)

	cond := ctx.Condition()
	require.NotNil(t, cond)
	_, ok := cond.Find("Order Items", "id")
	assert.True(t, ok)
}

func TestParseSelect_UnquotedNamesFold(t *testing.T) {
	ctx := parseANSI(t, "SELECT * FROM Orders")

	require.Len(t, ctx.Tables, 1)
	assert.Equal(t, "Orders", ctx.Tables[0].Literal)
	assert.Equal(t, "orders", ctx.Tables[0].Name)
}

func TestParseSelect_NoFrom(t *testing.T) {
	ctx := parseANSI(t, "SELECT 1, now()")

	assert.Empty(t, ctx.Tables)
	assert.Empty(t, ctx.Tokens)
	assert.Len(t, ctx.Items, 2)
}

// ---------- Select List ----------

func TestParseSelect_Items(t *testing.T) {
	sql := "SELECT a + b AS total, UPPER(name) n, t.*, 'x' AS \"Label\" FROM t"
	ctx := parseANSI(t, sql)

	assert.Equal(t, []core.SelectItem{
		{Index: 1, Expression: "a + b", Alias: strPtr("total")},
		{Index: 2, Expression: "UPPER(name)", Alias: strPtr("n")},
		{Index: 3, Expression: "t.*", Star: true, Owner: strPtr("t")},
		{Index: 4, Expression: "'x'", Alias: strPtr("Label")},
	}, ctx.Items)
	assert.True(t, ctx.ContainsStar)
	assert.Equal(t, strings.Index(sql, " FROM"), ctx.SelectListEnd)
}

func TestParseSelect_Star(t *testing.T) {
	ctx := parseANSI(t, "SELECT * FROM t")

	require.Len(t, ctx.Items, 1)
	assert.True(t, ctx.Items[0].Star)
	assert.Nil(t, ctx.Items[0].Owner)
	assert.True(t, ctx.ContainsStar)
}

func TestParseSelect_QualifiedColumnOwner(t *testing.T) {
	ctx := parseANSI(t, "SELECT o.id, o.amount AS amt FROM orders o")

	require.Len(t, ctx.Items, 2)
	assert.Equal(t, strPtr("o"), ctx.Items[0].Owner)
	assert.Equal(t, strPtr("o"), ctx.Items[1].Owner)
	assert.Equal(t, strPtr("amt"), ctx.Items[1].Alias)
}

func TestParseSelect_Aggregates(t *testing.T) {
	ctx := parseANSI(t, "SELECT COUNT(*), sum(x) AS s, avg(DISTINCT y), upper(z), SUM(x) OVER (PARTITION BY y) FROM t")

	var got []string
	for _, item := range ctx.Items {
		got = append(got, item.Aggregate)
	}
	assert.Equal(t, []string{"COUNT", "SUM", "AVG", "", ""}, got)
}

func TestParseSelect_SetQuantifier(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		distinct bool
		diags    []core.DiagnosticKind
	}{
		{name: "none", sql: "SELECT a FROM t"},
		{name: "distinct", sql: "SELECT DISTINCT a FROM t", distinct: true},
		{name: "distinctrow", sql: "SELECT DISTINCTROW a FROM t", distinct: true},
		{name: "all", sql: "SELECT ALL a FROM t"},
		{
			name:     "union read as distinct",
			sql:      "SELECT UNION a FROM t",
			distinct: true,
			diags:    []core.DiagnosticKind{core.DiagSetQuantifierUnion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)
			assert.Equal(t, tt.distinct, ctx.Distinct)
			assert.Equal(t, tt.diags, diagnosticKinds(ctx))
			require.Len(t, ctx.Items, 1)
			assert.Equal(t, "a", ctx.Items[0].Expression)
		})
	}
}

func TestParseSelect_DistinctOnRejectedWithoutSupport(t *testing.T) {
	_, err := parser.ParseSelect("SELECT DISTINCT ON (a) a FROM t", dialect.ANSI)
	require.ErrorIs(t, err, parser.ErrSyntax)
}

func TestParseSelect_Hints(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{name: "optimizer hint after select", sql: "SELECT /*+ MAX_EXECUTION_TIME(1000) */ a FROM t"},
		{name: "executable comment after select", sql: "SELECT /*! SQL_NO_CACHE */ a FROM t"},
		{name: "hint elsewhere is dropped", sql: "SELECT a /*+ ignored */ FROM t"},
		{name: "plain comments", sql: "SELECT a -- first\nFROM /* the table */ t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)
			require.Len(t, ctx.Items, 1)
			assert.Equal(t, "a", ctx.Items[0].Expression)
			assert.Equal(t, []string{"t"}, ctx.TableNames())
		})
	}
}

// ---------- Grouping and Ordering ----------

func TestParseSelect_GroupBy(t *testing.T) {
	ctx := parseANSI(t, "SELECT a, b, COUNT(*) FROM t GROUP BY a DESC, t.b")

	assert.Equal(t, []core.GroupByItem{
		{Column: "a", Direction: core.Desc},
		{Owner: strPtr("t"), Column: "b", Direction: core.Asc},
	}, ctx.GroupBy)
	assert.Empty(t, ctx.Diagnostics)
}

func TestParseSelect_GroupByExpression(t *testing.T) {
	sql := "SELECT COUNT(*) FROM t GROUP BY a, a + 1"
	ctx := parseANSI(t, sql)

	assert.Equal(t, []core.GroupByItem{{Column: "a", Direction: core.Asc}}, ctx.GroupBy)
	require.Len(t, ctx.Diagnostics, 1)
	assert.Equal(t, core.DiagGroupByExpression, ctx.Diagnostics[0].Kind)
	assert.Equal(t, strings.LastIndex(sql, "a + 1"), ctx.Diagnostics[0].Offset)
}

func TestParseSelect_Having(t *testing.T) {
	ctx := parseANSI(t, "SELECT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1 ORDER BY a")

	assert.Len(t, ctx.GroupBy, 1)
	assert.Len(t, ctx.OrderBy, 1)
	assert.Equal(t, []core.DiagnosticKind{core.DiagHaving}, diagnosticKinds(ctx))
}

func TestParseSelect_OrderBy(t *testing.T) {
	ctx := parseANSI(t, "SELECT a, b FROM t ORDER BY t.a DESC, 2, b NULLS FIRST, lower(c) ASC NULLS LAST")

	assert.Equal(t, []core.OrderByItem{
		{Owner: strPtr("t"), Name: strPtr("a"), Expression: "t.a", Direction: core.Desc},
		{Index: 2, Expression: "2", Direction: core.Asc},
		{Name: strPtr("b"), Expression: "b", Direction: core.Asc, NullsFirst: boolPtr(true)},
		{Expression: "lower(c)", Direction: core.Asc, NullsFirst: boolPtr(false)},
	}, ctx.OrderBy)
}

func TestParseSelect_OrderByBeforeLimit(t *testing.T) {
	ctx := parseANSI(t, "SELECT a FROM t ORDER BY a LIMIT 10 OFFSET 20")

	require.Len(t, ctx.OrderBy, 1)
	require.NotNil(t, ctx.Limit)
	assert.Equal(t, &core.LimitValue{Value: 10}, ctx.Limit.RowCount)
	assert.Equal(t, &core.LimitValue{Value: 20}, ctx.Limit.Offset)
}

// ---------- WHERE Conditions ----------

func TestParseSelect_WhereConditions(t *testing.T) {
	col := func(table, name string) core.Column { return core.Column{Table: table, Name: name} }
	lit := func(v string) core.ConditionValue { return core.ConditionValue{Literal: strPtr(v)} }
	param := func(i int) core.ConditionValue { return core.ConditionValue{Param: intPtr(i)} }

	tests := []struct {
		name       string
		sql        string
		want       []*core.Condition
		wantParams int
	}{
		{
			name:       "equality with placeholder",
			sql:        "SELECT * FROM orders WHERE user_id = ?",
			want:       []*core.Condition{{Column: col("orders", "user_id"), Operator: core.OpEqual, Values: []core.ConditionValue{param(0)}}},
			wantParams: 1,
		},
		{
			name: "value on the left",
			sql:  "SELECT * FROM orders WHERE 42 = user_id",
			want: []*core.Condition{{Column: col("orders", "user_id"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("42")}}},
		},
		{
			name:       "in list",
			sql:        "SELECT * FROM orders WHERE user_id IN (1, 2, ?)",
			want:       []*core.Condition{{Column: col("orders", "user_id"), Operator: core.OpIn, Values: []core.ConditionValue{lit("1"), lit("2"), param(0)}}},
			wantParams: 1,
		},
		{
			name:       "between",
			sql:        "SELECT * FROM orders WHERE created BETWEEN ? AND ?",
			want:       []*core.Condition{{Column: col("orders", "created"), Operator: core.OpBetween, Values: []core.ConditionValue{param(0), param(1)}}},
			wantParams: 2,
		},
		{
			name: "and chain with parentheses",
			sql:  "SELECT * FROM orders WHERE (a = 1 AND b = 'it''s') AND c IS NULL",
			want: []*core.Condition{
				{Column: col("orders", "a"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("1")}},
				{Column: col("orders", "b"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("it's")}},
			},
		},
		{
			name: "negative number",
			sql:  "SELECT * FROM orders WHERE a = -5",
			want: []*core.Condition{{Column: col("orders", "a"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("-5")}}},
		},
		{name: "or is not collected", sql: "SELECT * FROM orders WHERE a = 1 OR b = 2"},
		{name: "not in is not collected", sql: "SELECT * FROM orders WHERE a NOT IN (1, 2)"},
		{name: "not between is not collected", sql: "SELECT * FROM orders WHERE a NOT BETWEEN 1 AND 2"},
		{name: "null is not a value", sql: "SELECT * FROM orders WHERE a = NULL"},
		{name: "expression is not a value", sql: "SELECT * FROM orders WHERE a = b + 1"},
		{name: "column to column", sql: "SELECT * FROM t1, t2 WHERE t1.id = t2.id"},
		{name: "in subquery", sql: "SELECT * FROM orders WHERE id IN (SELECT id FROM archived UNION SELECT id FROM purged)"},
		{
			name: "qualified by alias resolves to table",
			sql:  "SELECT * FROM orders o JOIN items i ON o.id = i.order_id WHERE user_id = 1 AND o.user_id = 2 AND i.sku = 'x'",
			want: []*core.Condition{
				{Column: col("orders", "user_id"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("2")}},
				{Column: col("items", "sku"), Operator: core.OpEqual, Values: []core.ConditionValue{lit("x")}},
			},
		},
		{
			name: "placeholders in select list and subqueries keep numbering",
			sql:  "SELECT ?, a FROM t WHERE id IN (SELECT x FROM u WHERE y = ?) AND k = ?",
			want: []*core.Condition{
				{Column: col("t", "k"), Operator: core.OpEqual, Values: []core.ConditionValue{param(2)}},
			},
			wantParams: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := parseANSI(t, tt.sql)
			if tt.want == nil {
				assert.Empty(t, ctx.Conditions)
			} else {
				require.Len(t, ctx.Conditions, 1)
				assert.Equal(t, tt.want, ctx.Conditions[0].Conditions)
			}
			assert.Equal(t, tt.wantParams, ctx.ParameterIndex)
		})
	}
}

func TestParseSelect_WhereWithoutTables(t *testing.T) {
	ctx := parseANSI(t, "SELECT 1 WHERE 1 = 1")

	assert.Empty(t, ctx.Conditions)
	assert.Equal(t, []core.DiagnosticKind{core.DiagWhereWithoutTables}, diagnosticKinds(ctx))
	assert.Equal(t, core.SeverityInfo, ctx.Diagnostics[0].Severity)

	t.Run("placeholders keep their bind positions", func(t *testing.T) {
		ctx := parseANSI(t, "SELECT 1 WHERE a = ? LIMIT ?")

		assert.Empty(t, ctx.Conditions)
		assert.Equal(t, []core.DiagnosticKind{core.DiagWhereWithoutTables}, diagnosticKinds(ctx))
		require.NotNil(t, ctx.Limit)
		assert.Equal(t, &core.LimitValue{Param: intPtr(1)}, ctx.Limit.RowCount)
		assert.Equal(t, 2, ctx.ParameterIndex)
	})

	t.Run("parameter index counts ignored placeholders", func(t *testing.T) {
		ctx := parseANSI(t, "SELECT ? WHERE a = ?")
		assert.Equal(t, 2, ctx.ParameterIndex)
	})
}

// ---------- Unsupported Constructs ----------

func TestParseSelect_Unsupported(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		at        string
		construct string
	}{
		{name: "union", sql: "SELECT a FROM t UNION SELECT a FROM u", at: "UNION", construct: "UNION set operation"},
		{name: "union all", sql: "SELECT a FROM t UNION ALL SELECT a FROM u", at: "UNION", construct: "UNION set operation"},
		{name: "except", sql: "SELECT a FROM t EXCEPT SELECT a FROM u", at: "EXCEPT", construct: "EXCEPT set operation"},
		{name: "intersect", sql: "SELECT a FROM t WHERE x = 1 INTERSECT SELECT a FROM u", at: "INTERSECT", construct: "INTERSECT set operation"},
		{name: "minus", sql: "SELECT a FROM t minus SELECT a FROM u", at: "minus", construct: "MINUS set operation"},
		{name: "parenthesized union", sql: "(SELECT a FROM t) UNION (SELECT a FROM u)", at: "UNION", construct: "UNION set operation"},
		{name: "derived table", sql: "SELECT * FROM (SELECT a FROM t) x", at: "(SELECT", construct: "derived table"},
		{name: "derived table in join", sql: "SELECT * FROM t JOIN (SELECT 1) s ON t.a = s.a", at: "(SELECT", construct: "derived table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := parser.ParseSelect(tt.sql, dialect.ANSI)
			require.Error(t, err)
			assert.Nil(t, ctx)
			assert.ErrorIs(t, err, parser.ErrUnsupported)
			assert.NotErrorIs(t, err, parser.ErrSyntax)

			var uerr *parser.UnsupportedError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.construct, uerr.Construct)
			assert.Equal(t, strings.Index(tt.sql, tt.at), uerr.Pos.Offset)
		})
	}
}

func TestParseSelect_ParenthesizedQuery(t *testing.T) {
	ctx := parseANSI(t, "((SELECT a FROM t WHERE id = 1)) ORDER BY a")

	assert.Equal(t, []string{"t"}, ctx.TableNames())
	assert.Len(t, ctx.OrderBy, 1)
	assert.NotNil(t, ctx.Condition())
}

// ---------- Errors ----------

func TestParseSelect_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantMsg string
	}{
		{name: "empty", sql: "", wantMsg: "unexpected end of input, expected SELECT"},
		{name: "not a select", sql: "DELETE FROM t", wantMsg: `unexpected "DELETE", expected SELECT`},
		{name: "empty select list", sql: "SELECT FROM t", wantMsg: `unexpected "FROM" in expression`},
		{name: "trailing comma", sql: "SELECT a, FROM t", wantMsg: `unexpected "FROM" in expression`},
		{name: "missing table", sql: "SELECT a FROM", wantMsg: "expected table name"},
		{name: "missing predicate", sql: "SELECT a FROM t WHERE", wantMsg: "end of input"},
		{name: "unterminated string", sql: "SELECT 'abc FROM t", wantMsg: "unterminated string literal"},
		{name: "unterminated comment", sql: "SELECT a FROM t /* open", wantMsg: "unterminated block comment"},
		{name: "unbalanced call", sql: "SELECT count(a FROM t", wantMsg: "unbalanced parentheses"},
		{name: "illegal character", sql: "SELECT @a FROM t", wantMsg: "illegal character"},
		{name: "trailing tokens", sql: "SELECT a FROM t b c", wantMsg: `unexpected "c" after end of statement`},
		{name: "second statement", sql: "SELECT a FROM t; SELECT b FROM u", wantMsg: "after end of statement"},
		{name: "too many qualifiers", sql: "SELECT a.b.c.d FROM t", wantMsg: "too many name qualifiers"},
		{name: "nulls without position", sql: "SELECT a FROM t ORDER BY a NULLS", wantMsg: "expected FIRST or LAST"},
		{name: "limit needs a count", sql: "SELECT a FROM t LIMIT x", wantMsg: "expected row count"},
		{name: "duplicate limit", sql: "SELECT a FROM t LIMIT 1 LIMIT 2", wantMsg: "duplicate LIMIT clause"},
		{name: "fractional limit", sql: "SELECT a FROM t LIMIT 1.5", wantMsg: "non-negative integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := parser.ParseSelect(tt.sql, dialect.ANSI)
			require.Error(t, err)
			assert.Nil(t, ctx)
			assert.ErrorIs(t, err, parser.ErrSyntax)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var perr *parser.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Positive(t, perr.Pos.Line)
		})
	}
}

func TestParseSelect_ErrorPosition(t *testing.T) {
	sql := "SELECT a\nFROM t\nWHERE a = = 1"
	_, err := parser.ParseSelect(sql, dialect.ANSI)
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Pos.Line)
	assert.Equal(t, 11, perr.Pos.Column)
	assert.Equal(t, strings.LastIndex(sql, "="), perr.Pos.Offset)
	assert.Equal(t, `parse error at line 3, column 11: unexpected "=" in expression`, err.Error())
}

func TestParseSelect_TrailingSemicolon(t *testing.T) {
	ctx := parseANSI(t, "SELECT a FROM t;")
	assert.Equal(t, []string{"t"}, ctx.TableNames())
}

func TestParseSelect_QualifyLeftOver(t *testing.T) {
	_, err := parser.ParseSelect("SELECT a FROM t QUALIFY a = 1", dialect.ANSI)
	require.ErrorIs(t, err, parser.ErrSyntax)
}

func TestParseSelect_DepthLimit(t *testing.T) {
	t.Run("nested queries", func(t *testing.T) {
		sql := strings.Repeat("(", 200) + "SELECT a FROM t" + strings.Repeat(")", 200)
		_, err := parser.ParseSelect(sql, dialect.ANSI)
		require.ErrorIs(t, err, parser.ErrTooDeep)
		assert.ErrorIs(t, err, parser.ErrSyntax)
	})

	t.Run("nested expressions", func(t *testing.T) {
		sql := "SELECT " + strings.Repeat("(", 200) + "1" + strings.Repeat(")", 200)
		_, err := parser.ParseSelect(sql, dialect.ANSI)
		require.ErrorIs(t, err, parser.ErrTooDeep)
	})

	t.Run("custom limit", func(t *testing.T) {
		sql := "(((SELECT a FROM t)))"
		_, err := parser.ParseSelect(sql, dialect.ANSI, parser.WithMaxDepth(10))
		require.NoError(t, err)

		_, err = parser.ParseSelect(sql, dialect.ANSI, parser.WithMaxDepth(3))
		require.ErrorIs(t, err, parser.ErrTooDeep)
	})

	t.Run("joins nested without ON count toward depth", func(t *testing.T) {
		sql := "SELECT * FROM t0" + strings.Repeat(" CROSS JOIN t", 20)
		_, err := parser.ParseSelect(sql, dialect.ANSI, parser.WithMaxDepth(5))
		require.ErrorIs(t, err, parser.ErrTooDeep)
	})

	t.Run("joins closed by ON are not nesting", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("SELECT * FROM t0")
		for i := 1; i < 300; i++ {
			b.WriteString(" JOIN t ON t.a = t0.a")
		}
		ctx, err := parser.ParseSelect(b.String(), dialect.ANSI)
		require.NoError(t, err)
		assert.Len(t, ctx.Tables, 300)
	})

	t.Run("long join chains are not nesting", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("SELECT * FROM t0")
		for i := 1; i < 300; i++ {
			b.WriteString(", t")
			b.WriteString(strings.Repeat("x", i%5+1))
		}
		ctx, err := parser.ParseSelect(b.String(), dialect.ANSI)
		require.NoError(t, err)
		assert.Len(t, ctx.Tables, 300)
	})
}

// ---------- Parser Lifecycle ----------

func TestSelectParser_SingleUse(t *testing.T) {
	exprs := parser.NewExprParser("SELECT a FROM t", dialect.ANSI)
	sp := parser.NewSelectParser(exprs, nil)

	ctx, err := sp.Parse()
	require.NoError(t, err)
	require.NotNil(t, ctx)

	ctx, err = sp.Parse()
	assert.Nil(t, ctx)
	assert.ErrorIs(t, err, parser.ErrParserReused)
}

func TestParseSelect_Idempotent(t *testing.T) {
	sql := "SELECT o.id, COUNT(*) FROM orders o JOIN items ON o.id = items.oid WHERE o.user_id = ? GROUP BY o.id ORDER BY 2 DESC LIMIT 5"

	first, err := parser.ParseSelect(sql, dialect.ANSI)
	require.NoError(t, err)
	second, err := parser.ParseSelect(sql, dialect.ANSI)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseSelect_NilDialectUsesDefault(t *testing.T) {
	ctx, err := parser.ParseSelect("SELECT a FROM Orders", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, ctx.TableNames())
}

func TestParseSelect_LogsDroppedConstructs(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()

	_, err := parser.ParseSelect("SELECT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1", dialect.ANSI,
		parser.WithLogger(logger))
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "construct dropped")
	assert.Contains(t, out, "kind=having")
}

// ---------- Extensions ----------

// routeHintExtension accepts DISTINCT ON and a trailing "ROUTE TO <shard>".
type routeHintExtension struct {
	shard string
}

func (e *routeHintExtension) SupportsDistinctOn() bool { return true }

func (e *routeHintExtension) CustomizeSelect(p spi.ParserOps, _ *core.SelectContext) error {
	if !p.MatchWord("route") {
		return nil
	}
	if err := p.ExpectWord("to"); err != nil {
		return err
	}
	tok := p.Token()
	if err := p.Expect(token.IDENT); err != nil {
		return err
	}
	e.shard = tok.Literal
	return nil
}

func TestParseSelectWithExtension(t *testing.T) {
	ext := &routeHintExtension{}
	ctx, err := parser.ParseSelectWithExtension("SELECT DISTINCT ON (a) a, b FROM t ORDER BY a ROUTE TO shard_3", dialect.ANSI, ext)
	require.NoError(t, err)

	assert.True(t, ctx.Distinct)
	assert.Len(t, ctx.Items, 2)
	assert.Len(t, ctx.OrderBy, 1)
	assert.Equal(t, "shard_3", ext.shard)
	assert.Equal(t, []core.DiagnosticKind{core.DiagDistinctOnDiscarded}, diagnosticKinds(ctx))
}
