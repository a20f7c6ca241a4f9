package commands

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/spf13/cobra"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name          string   `json:"name" yaml:"name"`
	Quote         string   `json:"quote" yaml:"quote"`
	Normalization string   `json:"normalization" yaml:"normalization"`
	Placeholder   string   `json:"placeholder" yaml:"placeholder"`
	DefaultSchema string   `json:"default_schema,omitempty" yaml:"default_schema,omitempty"`
	DistinctOn    bool     `json:"distinct_on" yaml:"distinct_on"`
	HashComments  bool     `json:"hash_comments" yaml:"hash_comments"`
	Aggregates    []string `json:"aggregates" yaml:"aggregates"`
	Current       bool     `json:"current" yaml:"current"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		Long: `List the registered SQL dialects with their identifier quoting,
case normalization and placeholder style. The dialect selected by
--dialect or configuration is marked as current.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	infos := listDialects(cmdCtx.Dialect)

	if handled, err := r.Structured(infos); handled || err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		current := ""
		if info.Current {
			current = "*"
		}
		rows = append(rows, table.Row{
			current, info.Name, info.Quote, info.Normalization, info.Placeholder,
			info.DefaultSchema, yesNo(info.DistinctOn), yesNo(info.HashComments),
		})
	}

	r.Header(1, "Dialects")
	r.Table(table.Row{"", "name", "quote", "identifiers", "placeholder", "schema", "distinct on", "# comments"}, rows)
	return nil
}

// listDialects describes every registered dialect, sorted by name.
func listDialects(current *dialect.Dialect) []DialectInfo {
	names := dialect.List()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		cfg := d.Config()
		aggregates := slices.Clone(cfg.Aggregates)
		slices.Sort(aggregates)

		infos = append(infos, DialectInfo{
			Name:          d.Name,
			Quote:         cfg.Identifiers.Quote + cfg.Identifiers.QuoteEnd,
			Normalization: cfg.Identifiers.Normalization.String(),
			Placeholder:   d.FormatPlaceholder(1),
			DefaultSchema: cfg.DefaultSchema,
			DistinctOn:    cfg.SupportsDistinctOn,
			HashComments:  cfg.HashComments,
			Aggregates:    aggregates,
			Current:       d == current,
		})
	}
	return infos
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
