package commands

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/shardsql/internal/cli/output"
	"github.com/leapstack-labs/shardsql/pkg/core"
)

// renderParseResults writes results in the renderer's mode. A single result
// is written as an object, several as a list.
func renderParseResults(r *output.Renderer, results []ParseResult) error {
	var v any = results
	if len(results) == 1 {
		v = results[0]
	}
	if handled, err := r.Structured(v); handled || err != nil {
		return err
	}

	for i, res := range results {
		if i > 0 {
			r.Println("")
		}
		renderParseText(r, res)
	}
	return nil
}

func renderParseText(r *output.Renderer, res ParseResult) {
	r.Header(1, res.Source)

	if res.Error != "" {
		label := "error"
		if res.Unsupported {
			label = "unsupported"
		}
		r.Println(r.Styles().Error.Render(label + ": " + res.Error))
		return
	}
	renderContextText(r, res.Context)
}

// renderContextText writes a routing context as key/value lines followed by
// one table per non-empty section.
func renderContextText(r *output.Renderer, ctx *core.SelectContext) {
	r.KeyValue("distinct", ctx.Distinct)
	r.KeyValue("star", ctx.ContainsStar)
	r.KeyValue("select list end", ctx.SelectListEnd)
	r.KeyValue("parameters", ctx.ParameterIndex)
	if ctx.Limit != nil {
		r.KeyValue("limit", formatLimit(ctx.Limit))
	}
	if ctx.Lock != "" {
		r.KeyValue("lock", ctx.Lock)
	}
	r.Println("")

	if len(ctx.Tables) > 0 {
		rows := make([]table.Row, 0, len(ctx.Tables))
		for _, t := range ctx.Tables {
			rows = append(rows, table.Row{t.Name, t.Literal, deref(t.Alias), t.Join})
		}
		section(r, "Tables", table.Row{"name", "literal", "alias", "join"}, rows)
	}

	if len(ctx.Tokens) > 0 {
		tokens := ctx.SortedTokens()
		rows := make([]table.Row, 0, len(tokens))
		for _, tok := range tokens {
			rows = append(rows, table.Row{tok.Offset, tok.Literal, tok.Name})
		}
		section(r, "Rewrite tokens", table.Row{"offset", "literal", "table"}, rows)
	}

	if len(ctx.Items) > 0 {
		rows := make([]table.Row, 0, len(ctx.Items))
		for _, item := range ctx.Items {
			rows = append(rows, table.Row{item.Index, item.Expression, deref(item.Alias), deref(item.Owner), item.Aggregate})
		}
		section(r, "Items", table.Row{"#", "expression", "alias", "owner", "aggregate"}, rows)
	}

	if cond := ctx.Condition(); !cond.IsEmpty() {
		rows := make([]table.Row, 0, len(cond.Conditions))
		for _, c := range cond.Conditions {
			rows = append(rows, table.Row{c.Column.Table + "." + c.Column.Name, c.Operator, formatValues(c.Values)})
		}
		section(r, "Conditions", table.Row{"column", "operator", "values"}, rows)
	}

	if len(ctx.GroupBy) > 0 {
		rows := make([]table.Row, 0, len(ctx.GroupBy))
		for _, g := range ctx.GroupBy {
			rows = append(rows, table.Row{deref(g.Owner), g.Column, g.Direction})
		}
		section(r, "Group by", table.Row{"owner", "column", "direction"}, rows)
	}

	if len(ctx.OrderBy) > 0 {
		rows := make([]table.Row, 0, len(ctx.OrderBy))
		for _, o := range ctx.OrderBy {
			index := ""
			if o.Index > 0 {
				index = strconv.Itoa(o.Index)
			}
			rows = append(rows, table.Row{o.Expression, index, o.Direction, formatNulls(o.NullsFirst)})
		}
		section(r, "Order by", table.Row{"expression", "index", "direction", "nulls"}, rows)
	}

	if len(ctx.Diagnostics) > 0 {
		styles := r.Styles()
		r.Header(2, "Diagnostics")
		for _, d := range ctx.Diagnostics {
			r.Printf("  %s  %s at %d: %s\n",
				severityStyle(styles, d.Severity).Render(d.Severity.String()),
				d.Kind, d.Offset, d.Message)
		}
		r.Println("")
	}
}

func section(r *output.Renderer, title string, header table.Row, rows []table.Row) {
	r.Header(2, title)
	r.Table(header, rows)
	r.Println("")
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatParam(index int) string {
	return "?" + strconv.Itoa(index)
}

func formatValues(values []core.ConditionValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v.Param != nil {
			parts = append(parts, formatParam(*v.Param))
			continue
		}
		parts = append(parts, strconv.Quote(deref(v.Literal)))
	}
	return strings.Join(parts, ", ")
}

func formatLimitValue(v *core.LimitValue) string {
	if v.IsParam() {
		return formatParam(*v.Param)
	}
	return strconv.FormatInt(v.Value, 10)
}

func formatLimit(l *core.Limit) string {
	var parts []string
	if l.Offset != nil {
		parts = append(parts, "offset "+formatLimitValue(l.Offset))
	}
	if l.RowCount != nil {
		parts = append(parts, "rows "+formatLimitValue(l.RowCount))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, ", ")
}

func formatNulls(first *bool) string {
	switch {
	case first == nil:
		return ""
	case *first:
		return "first"
	default:
		return "last"
	}
}
