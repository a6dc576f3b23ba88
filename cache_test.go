package riffle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheResolve(t *testing.T) {
	cache, err := NewCache(8)
	require.NoError(t, err)

	cs := &ChangeSet{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "b", To: "a"}},
	}
	first, err := cache.Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, first.Order())
	require.Equal(t, 1, cache.Len())

	// A reordered but equivalent change-set hits the same entry.
	same := &ChangeSet{
		Nodes: []Node{{ID: "b"}, {ID: "a"}},
		Edges: []Edge{{From: "b", To: "a"}},
	}
	second, err := cache.Resolve(same)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, cache.Len())
}

func TestCacheReturnsPrivateCopies(t *testing.T) {
	cache, err := NewCache(8)
	require.NoError(t, err)

	cs := &ChangeSet{Nodes: []Node{{ID: "a"}, {ID: "b"}}}
	first, err := cache.Resolve(cs)
	require.NoError(t, err)
	first.Entries[0].IDs[0] = "mutated"

	second, err := cache.Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, second.Order())
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	cache, err := NewCache(8)
	require.NoError(t, err)

	bad := &ChangeSet{Nodes: []Node{{ID: "a"}, {ID: "a"}}}
	_, err = cache.Resolve(bad)
	require.True(t, IsDuplicateNode(err))
	require.Equal(t, 0, cache.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		_, err := cache.Resolve(&ChangeSet{Nodes: []Node{{ID: id}}})
		require.NoError(t, err)
	}
	require.Equal(t, 2, cache.Len())

	cache.Purge()
	require.Equal(t, 0, cache.Len())
}
