package config

import "github.com/leapstack-labs/shardsql/pkg/parser"

// ConfigFileName is the name of the config file.
const ConfigFileName = "shardsql.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "shardsql.yml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SHARDSQL_"

// Default configuration values
const (
	DefaultDialect     = "ansi"
	DefaultMaxDepth    = parser.DefaultMaxDepth
	DefaultLogLevel    = "warn"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=json
	DefaultHistoryFile = ".shardsql_history"
	DefaultMinSeverity = "hint" // report every diagnostic
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Dialect:     DefaultDialect,
		MaxDepth:    DefaultMaxDepth,
		LogLevel:    DefaultLogLevel,
		Output:      DefaultOutput,
		Tables:      map[string]string{},
		HistoryFile: DefaultHistoryFile,
		MinSeverity: DefaultMinSeverity,
	}
}

func defaultValues() map[string]any {
	return map[string]any{
		"dialect":      DefaultDialect,
		"max_depth":    DefaultMaxDepth,
		"log_level":    DefaultLogLevel,
		"verbose":      false,
		"output":       DefaultOutput,
		"history_file": DefaultHistoryFile,
		"min_severity": DefaultMinSeverity,
	}
}
