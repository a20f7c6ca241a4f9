package dialect

import (
	"github.com/leapstack-labs/shardsql/pkg/core"
	"github.com/leapstack-labs/shardsql/pkg/spi"
	"github.com/leapstack-labs/shardsql/pkg/token"
)

// BaseExtension accepts no dialect syntax: no DISTINCT ON and no trailing
// clauses after ORDER BY.
type BaseExtension struct{}

// SupportsDistinctOn implements spi.SelectExtension.
func (BaseExtension) SupportsDistinctOn() bool { return false }

// CustomizeSelect implements spi.SelectExtension.
func (BaseExtension) CustomizeSelect(spi.ParserOps, *core.SelectContext) error { return nil }

// clauseExtension dispatches trailing clauses to the handlers declared with
// Builder.Clauses. Clauses may appear in any order, each at most once.
type clauseExtension struct {
	distinctOn bool
	handlers   map[token.TokenType]ClauseDef
}

func newClauseExtension(distinctOn bool, defs []ClauseDef) *clauseExtension {
	handlers := make(map[token.TokenType]ClauseDef, len(defs))
	for _, def := range defs {
		handlers[def.Token] = def
	}
	return &clauseExtension{distinctOn: distinctOn, handlers: handlers}
}

func (e *clauseExtension) SupportsDistinctOn() bool { return e.distinctOn }

func (e *clauseExtension) CustomizeSelect(p spi.ParserOps, ctx *core.SelectContext) error {
	seen := make(map[token.TokenType]bool)
	for {
		def, ok := e.handlers[p.Token().Type]
		if !ok {
			return nil
		}
		if seen[def.Token] {
			return p.Errorf("duplicate %s clause", def.Name)
		}
		seen[def.Token] = true

		p.NextToken()
		if err := def.Handler(p, ctx); err != nil {
			return err
		}
	}
}
