// Package core defines the shared language of the shardsql system.
//
// This package contains:
//   - The routing context produced by the SELECT parser (SelectContext,
//     TableRef, RewriteToken, GroupByItem, OrderByItem, ConditionContext)
//   - Expression nodes built by the expression parser
//   - Dialect configuration data (DialectConfig, IdentifierConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
