package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/rewrite"
	"github.com/spf13/cobra"
)

// RewriteOptions holds options for the rewrite command.
type RewriteOptions struct {
	Query string
}

// RewriteResult is the outcome of rewriting one statement.
type RewriteResult struct {
	SQL       string            `json:"sql" yaml:"sql"`
	Rewritten string            `json:"rewritten" yaml:"rewritten"`
	Tables    map[string]string `json:"tables" yaml:"tables"` // substitutions actually applied
}

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand() *cobra.Command {
	opts := &RewriteOptions{}

	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Replace logical table names with physical ones",
		Long: `Parse a SELECT statement and substitute every occurrence of a logical
table name (in FROM, JOIN and as a column owner) with its physical name.

Mappings come from the "tables" section of shardsql.yaml, SHARDSQL_TABLES
(orders=orders_1,items=items_1) and --table flags, in increasing precedence.
Tables without a mapping are left untouched.`,
		Example: `  # Route orders to shard 3
  shardsql rewrite -t orders=orders_3 -q "SELECT o.id FROM orders o WHERE o.user_id = ?"

  # Rewrite a file using mappings from shardsql.yaml
  shardsql rewrite query.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL statement to rewrite instead of a file")
	cmd.Flags().StringSliceP("table", "t", nil, "Table mapping logical=physical (repeatable)")

	return cmd
}

func runRewrite(cmd *cobra.Command, args []string, opts *RewriteOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	inputs, err := collectInputs(cmd, args, opts.Query)
	if err != nil {
		return err
	}
	results, err := parseAll(cmd, cmdCtx, inputs)
	if err != nil {
		return err
	}
	res := results[0]
	if res.Error != "" {
		return fmt.Errorf("failed to parse %s: %s", res.Source, res.Error)
	}

	if len(cmdCtx.Cfg.Tables) == 0 {
		r.Warning("no table mappings configured; statement is unchanged")
	}

	result, err := rewriteStatement(cmdCtx, res)
	if err != nil {
		return err
	}

	if handled, err := r.Structured(result); handled || err != nil {
		return err
	}
	r.Println(result.Rewritten)
	return nil
}

func rewriteStatement(cmdCtx *CommandContext, res ParseResult) (*RewriteResult, error) {
	ctx := res.Context
	resolve := rewrite.Map(cmdCtx.Cfg.Tables)

	rewritten, err := rewrite.Apply(ctx.SQL, ctx.Tokens, resolve, cmdCtx.Dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", res.Source, err)
	}

	applied := make(map[string]string)
	for _, tok := range ctx.Tokens {
		if physical, ok := resolve(tok.Name); ok {
			applied[tok.Name] = physical
		}
	}

	cmdCtx.Logger.Debug("rewrote statement",
		"source", res.Source,
		"tokens", len(ctx.Tokens),
		"tables", len(applied))

	return &RewriteResult{
		SQL:       strings.TrimSpace(ctx.SQL),
		Rewritten: strings.TrimSpace(rewritten),
		Tables:    applied,
	}, nil
}
