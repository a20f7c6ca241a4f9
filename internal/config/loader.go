package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// findConfigFile returns the config file in dir, or "" when there is none.
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if path := findConfigFile(dir); path != "" {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration from defaults, file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// An empty cfgFile searches the working directory and its parents.
// Only flags that were explicitly set override lower layers. The "table"
// flag (logical=physical pairs) is merged into the "tables" map.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = findConfigUpward(cwd)
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Load environment variables (SHARDSQL_ prefix)
	// Transform: SHARDSQL_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				tablePairsHook,
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Tables == nil {
		cfg.Tables = map[string]string{}
	}
	cfg.ConfigFile = cfgFile

	return &cfg, nil
}

// flagKey maps explicitly set flags onto config keys.
func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		// Only load flags that were explicitly set
		if !f.Changed || f.Name == "config" {
			return "", nil
		}

		val := posflag.FlagVal(flags, f)

		// --table orders=orders_1 feeds the tables map. Malformed pairs are
		// passed through untouched so decoding reports them.
		if f.Name == "table" {
			if pairs, ok := val.([]string); ok {
				if tables, err := ParseTablePairs(pairs); err == nil {
					m := make(map[string]any, len(tables))
					for logical, physical := range tables {
						m[logical] = physical
					}
					return "tables", m
				}
			}
			return "tables", val
		}

		// Transform kebab-case to snake_case for config keys
		return strings.ReplaceAll(f.Name, "-", "_"), val
	}
}

// ParseTablePairs parses logical=physical pairs.
func ParseTablePairs(pairs []string) (map[string]string, error) {
	tables := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		logical, physical, ok := strings.Cut(pair, "=")
		logical, physical = strings.TrimSpace(logical), strings.TrimSpace(physical)
		if !ok || logical == "" || physical == "" {
			return nil, fmt.Errorf("invalid table mapping %q: expected logical=physical", pair)
		}
		tables[logical] = physical
	}
	return tables, nil
}

// tablePairsHook decodes "a=b,c=d" strings and ["a=b"] slices into
// map[string]string, the forms the tables map takes in env vars and flags.
func tablePairsHook(_, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(map[string]string{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ParseTablePairs(strings.Split(v, ","))
	case []string:
		return ParseTablePairs(v)
	case []any:
		pairs := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("invalid table mapping %v: expected logical=physical", item)
			}
			pairs = append(pairs, s)
		}
		return ParseTablePairs(pairs)
	}
	return data, nil
}
