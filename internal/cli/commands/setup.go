package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/shardsql/internal/cli/output"
	"github.com/leapstack-labs/shardsql/internal/config"
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/dialect"
	"github.com/leapstack-labs/shardsql/pkg/parser"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Dialect  *dialect.Dialect
	Renderer *output.Renderer

	// MinSeverity is the least severe diagnostic kept in parse results.
	MinSeverity core.Severity
}

// NewCommandContext resolves the configured dialect and builds a renderer
// for cmd's output streams.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	minSeverity, err := cfg.Severity()
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Dialect:  d,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),

		MinSeverity: minSeverity,
	}, nil
}

// ParseOptions returns the parser options derived from the configuration.
func (c *CommandContext) ParseOptions() []parser.Option {
	opts := []parser.Option{parser.WithLogger(c.Logger)}
	if c.Cfg.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.Cfg.MaxDepth))
	}
	return opts
}

// SetDialect switches the dialect used by later parses.
func (c *CommandContext) SetDialect(name string) error {
	d, err := dialect.Lookup(name)
	if err != nil {
		return fmt.Errorf("failed to switch dialect: %w", err)
	}
	c.Dialect = d
	return nil
}
