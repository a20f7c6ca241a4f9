// Package mysql provides the MySQL SQL dialect definition.
package mysql

import "github.com/leapstack-labs/shardsql/pkg/core"

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive, // table names follow lower_case_table_names=0
	},
	HashComments: true,

	Aggregates: []string{
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV", "STDDEV_POP", "STDDEV_SAMP", "STD",
		"VARIANCE", "VAR_POP", "VAR_SAMP",
		"GROUP_CONCAT", "JSON_ARRAYAGG", "JSON_OBJECTAGG",
		"BIT_AND", "BIT_OR", "BIT_XOR",
		"ANY_VALUE",
	},
}
