package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/shardsql/pkg/token"
)

// Dialect registry
var (
	dialectsMu     sync.RWMutex
	dialects       = make(map[string]*Dialect)
	defaultDialect *Dialect
)

// Global clause registry - tracks ALL tokens that act as trailing clauses in
// ANY registered dialect. Used purely for generating helpful error messages.
var (
	knownClauses = make(map[token.TokenType]string)
	clausesMu    sync.RWMutex
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// UnknownDialectError is returned by Lookup for a name nobody registered.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Lookup returns a dialect by name, or the default dialect when name is empty.
func Lookup(name string) (*Dialect, error) {
	if name == "" {
		if d := Default(); d != nil {
			return d, nil
		}
		return nil, ErrDialectRequired
	}
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, &UnknownDialectError{Name: name, Available: List()}
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// SetDefault sets the dialect returned by Default.
func SetDefault(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	defaultDialect = d
}

// Default returns the default dialect.
func Default() *Dialect {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	return defaultDialect
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// recordClause registers a token as a clause keyword.
// Called automatically by Builder.Clauses().
func recordClause(t token.TokenType, name string) {
	clausesMu.Lock()
	defer clausesMu.Unlock()
	knownClauses[t] = name
}

// IsKnownClause returns true if ANY registered dialect uses this token as a clause.
// Returns the clause name for error messages.
func IsKnownClause(t token.TokenType) (string, bool) {
	clausesMu.RLock()
	defer clausesMu.RUnlock()
	name, ok := knownClauses[t]
	return name, ok
}
