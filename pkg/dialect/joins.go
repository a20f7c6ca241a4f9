// Package dialect provides SQL dialect configuration for the SELECT parser.
//
// This file contains join type definitions that form the "toolbox" of
// reusable join configurations. These can be composed into any dialect.
package dialect

import (
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// JoinTypeDef defines a dialect-specific join type.
type JoinTypeDef struct {
	Token         token.TokenType // The trigger token for this join type
	Type          string          // Join kind recorded on the table (e.g., "LEFT")
	OptionalToken token.TokenType // Optional modifier token (OUTER) - 0 means none
	Standalone    bool            // true if the trigger replaces JOIN (STRAIGHT_JOIN)
}

// Join kinds recorded on core.TableRef.Join.
const (
	JoinComma    = ","
	JoinInner    = "INNER"
	JoinLeft     = "LEFT"
	JoinRight    = "RIGHT"
	JoinFull     = "FULL"
	JoinCross    = "CROSS"
	JoinStraight = "STRAIGHT"
)

// ANSIJoinTypes contains standard SQL join types.
var ANSIJoinTypes = []JoinTypeDef{
	{Token: token.INNER, Type: JoinInner},
	{Token: token.LEFT, Type: JoinLeft, OptionalToken: token.OUTER},
	{Token: token.RIGHT, Type: JoinRight, OptionalToken: token.OUTER},
	{Token: token.FULL, Type: JoinFull, OptionalToken: token.OUTER},
	{Token: token.CROSS, Type: JoinCross},
}

// MySQLJoinTypes contains MySQL join extensions.
var MySQLJoinTypes = []JoinTypeDef{
	{Token: token.STRAIGHT_JOIN, Type: JoinStraight, Standalone: true},
}
