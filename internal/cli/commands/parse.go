package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Query string
}

// ParseResult is the outcome of parsing one input.
type ParseResult struct {
	Source      string              `json:"source" yaml:"source"`
	Context     *core.SelectContext `json:"context,omitempty" yaml:"context,omitempty"`
	Error       string              `json:"error,omitempty" yaml:"error,omitempty"`
	Unsupported bool                `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`
}

// sqlInput is one statement source.
type sqlInput struct {
	name string
	sql  string
	path string // read lazily when set
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse SELECT statements into routing contexts",
		Long: `Parse SELECT statements and print their routing context: tables,
rewrite tokens, select items, sharding conditions, grouping, ordering,
pagination and any constructs that were accepted but not interpreted.

Each file holds one statement. With no files the statement is read from
stdin. Several files are parsed in parallel and reported in order.`,
		Example: `  # Parse a statement given inline
  shardsql parse -q "SELECT * FROM orders o WHERE o.user_id = ?"

  # Parse files with the MySQL dialect as YAML
  shardsql parse -d mysql -o yaml queries/*.sql

  # Parse from stdin
  echo "SELECT 1" | shardsql parse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL statement to parse instead of files")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd, args, opts.Query)
	if err != nil {
		return err
	}

	results, err := parseAll(cmd, cmdCtx, inputs)
	if err != nil {
		return err
	}

	if err := renderParseResults(cmdCtx.Renderer, results); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to parse", failed, len(results))
	}
	return nil
}

// collectInputs resolves the statement sources: the query flag, stdin or files.
func collectInputs(cmd *cobra.Command, args []string, query string) ([]sqlInput, error) {
	if query != "" {
		if len(args) > 0 {
			return nil, errors.New("--query cannot be combined with file arguments")
		}
		return []sqlInput{{name: "<query>", sql: query}}, nil
	}

	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []sqlInput{{name: "<stdin>", sql: string(b)}}, nil
	}

	inputs := make([]sqlInput, len(args))
	for i, path := range args {
		inputs[i] = sqlInput{name: path, path: path}
	}
	return inputs, nil
}

// parseAll parses inputs concurrently. Parse failures are recorded per
// result; only I/O failures abort the run.
func parseAll(cmd *cobra.Command, cmdCtx *CommandContext, inputs []sqlInput) ([]ParseResult, error) {
	results := make([]ParseResult, len(inputs))
	parseOpts := cmdCtx.ParseOptions()

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			sql := in.sql
			if in.path != "" {
				b, err := os.ReadFile(in.path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", in.path, err)
				}
				sql = string(b)
			}

			cmdCtx.Logger.Debug("parsing statement", "source", in.name, "dialect", cmdCtx.Dialect.Name)
			results[i] = parseOne(in.name, sql, cmdCtx, parseOpts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseOne(source, sql string, cmdCtx *CommandContext, opts []parser.Option) ParseResult {
	ctx, err := parser.ParseSelect(sql, cmdCtx.Dialect, opts...)
	if err != nil {
		return ParseResult{
			Source:      source,
			Error:       err.Error(),
			Unsupported: errors.Is(err, parser.ErrUnsupported),
		}
	}
	ctx.DropDiagnosticsBelow(cmdCtx.MinSeverity)
	return ParseResult{Source: source, Context: ctx}
}
