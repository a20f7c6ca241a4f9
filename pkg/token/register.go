package token

import (
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex

	// nextTokenID tracks the next available dynamic token ID.
	nextTokenID = maxBuiltin

	// dynamicTokens maps registered dynamic tokens to their names.
	dynamicTokens = make(map[TokenType]string)

	// dynamicKeywords maps lowercase keyword names to their token types.
	dynamicKeywords = make(map[string]TokenType)
)

// Register registers a new dynamic token with the given name and returns its
// type. Registering the same name twice (case-insensitively) returns the
// same type.
//
// Dialects use this for dialect-specific keywords such as LOCK or MINUS.
func Register(name string) TokenType {
	key := strings.ToLower(name)

	registryMu.Lock()
	defer registryMu.Unlock()

	if t, ok := dynamicKeywords[key]; ok {
		return t
	}
	nextTokenID++
	t := nextTokenID
	dynamicTokens[t] = name
	dynamicKeywords[key] = t
	return t
}

func getDynamicName(t TokenType) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

// LookupDynamicKeyword returns the token type for a dynamic keyword.
// Returns IDENT and false if the keyword is not registered.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if tok, ok := dynamicKeywords[strings.ToLower(name)]; ok {
		return tok, true
	}
	return IDENT, false
}
