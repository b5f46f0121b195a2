package caching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCodeCache(t *testing.T) {
	cache, err := NewCache()
	require.NoError(t, err)

	cache.Add(1, "abcdef")
	cache.Add(2, "ghijkl")

	code, ok := cache.TableIDToCode(1)
	require.True(t, ok)
	assert.Equal(t, "abcdef", code)

	id, ok := cache.TableCodeToID("ghijkl")
	require.True(t, ok)
	assert.Equal(t, uint64(2), id)

	_, ok = cache.TableIDToCode(99)
	assert.False(t, ok)
	_, ok = cache.TableCodeToID("nosuch")
	assert.False(t, ok)
}
