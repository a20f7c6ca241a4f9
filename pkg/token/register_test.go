package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIdempotent(t *testing.T) {
	// Register same name twice
	id1 := Register("TEST_IDEMPOTENT")
	id2 := Register("TEST_IDEMPOTENT")

	assert.Equal(t, id1, id2, "same name should return same ID")
}

func TestRegisterDifferentNames(t *testing.T) {
	id1 := Register("TEST_NAME_A")
	id2 := Register("TEST_NAME_B")

	assert.NotEqual(t, id1, id2, "different names should return different IDs")
}

func TestRegisterConcurrent(t *testing.T) {
	const numGoroutines = 100
	var wg sync.WaitGroup
	ids := make([]TokenType, numGoroutines)

	// Register same name concurrently
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ids[idx] = Register("TEST_CONCURRENT")
		}(i)
	}
	wg.Wait()

	// All should have the same ID
	for i := 1; i < numGoroutines; i++ {
		require.Equal(t, ids[0], ids[i], "concurrent registration should return same ID")
	}
}

func TestLookupDynamicKeyword(t *testing.T) {
	name := "TEST_LOOKUP"
	expectedID := Register(name)

	gotID, ok := LookupDynamicKeyword(name)
	require.True(t, ok, "registered keyword should be found")
	assert.Equal(t, expectedID, gotID)

	gotID, ok = LookupDynamicKeyword("test_lookup")
	require.True(t, ok, "lookup should ignore case")
	assert.Equal(t, expectedID, gotID)

	_, ok = LookupDynamicKeyword("NONEXISTENT_KEYWORD_12345")
	assert.False(t, ok, "unregistered keyword should not be found")
}

func TestRegisterCaseInsensitive(t *testing.T) {
	upper := Register("TEST_MIXED_CASE")
	lower := Register("test_mixed_case")

	assert.Equal(t, upper, lower)
	assert.Equal(t, "TEST_MIXED_CASE", upper.String(), "first registration keeps its spelling")
}

func TestGetDynamicName(t *testing.T) {
	name := "TEST_GET_DYNAMIC_NAME"
	id := Register(name)

	gotName, ok := getDynamicName(id)
	require.True(t, ok)
	assert.Equal(t, name, gotName)

	// Non-existent dynamic token
	_, ok = getDynamicName(TokenType(99999))
	assert.False(t, ok)
}
