// Package config loads shardsql configuration.
//
// Values are layered, lowest to highest precedence: built-in defaults, a
// shardsql.yaml file, SHARDSQL_ environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/shardsql/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect     string            `koanf:"dialect"`
	MaxDepth    int               `koanf:"max_depth"`
	LogLevel    string            `koanf:"log_level"`
	Verbose     bool              `koanf:"verbose"`
	Output      string            `koanf:"output"`
	Tables      map[string]string `koanf:"tables"` // logical -> physical, used by rewrite
	HistoryFile string            `koanf:"history_file"`
	MinSeverity string            `koanf:"min_severity"` // least severe diagnostic reported

	// ConfigFile is the file the configuration was read from, empty when none.
	ConfigFile string `koanf:"-"`
}

// Level returns the slog level for LogLevel. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Severity returns the parsed MinSeverity.
func (c *Config) Severity() (core.Severity, error) {
	sev, ok := core.ParseSeverity(strings.TrimSpace(c.MinSeverity))
	if !ok {
		return sev, fmt.Errorf("invalid min_severity %q (want error, warning, info or hint)", c.MinSeverity)
	}
	return sev, nil
}
