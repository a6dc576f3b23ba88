package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphEdges(t *testing.T) {
	g := New([]string{"b", "a", "c"})
	require.Equal(t, 3, g.Len())
	require.Equal(t, []string{"a", "b", "c"}, g.IDs())

	g.AddEdge("c", "a")
	g.AddEdge("c", "b")
	g.AddEdge("c", "a") // duplicate collapses
	require.Equal(t, []string{"a", "b"}, g.Out("c"))
	require.Equal(t, 2, g.OutDegree("c"))
	require.Equal(t, []string{"c"}, g.In("a"))
	require.Empty(t, g.Out("a"))

	// Edges to unknown vertices are dropped.
	g.AddEdge("c", "zzz")
	g.AddEdge("zzz", "a")
	require.Equal(t, 2, g.OutDegree("c"))
	require.Equal(t, []string{"c"}, g.In("a"))
}

func TestStronglyConnectedComponents(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		edges    [][2]string
		expected [][]string
	}{
		{
			name:     "no edges",
			ids:      []string{"b", "a"},
			expected: [][]string{{"a"}, {"b"}},
		},
		{
			name:     "chain has no cycles",
			ids:      []string{"a", "b", "c"},
			edges:    [][2]string{{"c", "b"}, {"b", "a"}},
			expected: [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name:     "two-node cycle",
			ids:      []string{"x", "y"},
			edges:    [][2]string{{"x", "y"}, {"y", "x"}},
			expected: [][]string{{"x", "y"}},
		},
		{
			name: "cycle with a tail",
			ids:  []string{"a", "b", "c", "d"},
			edges: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"}, // cycle a-b-c
				{"d", "a"},
			},
			expected: [][]string{{"a", "b", "c"}, {"d"}},
		},
		{
			name: "two separate cycles",
			ids:  []string{"a", "b", "m", "n"},
			edges: [][2]string{
				{"a", "b"}, {"b", "a"},
				{"m", "n"}, {"n", "m"},
			},
			expected: [][]string{{"a", "b"}, {"m", "n"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.ids)
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			comps := g.StronglyConnectedComponents()
			require.ElementsMatch(t, tt.expected, comps)
		})
	}
}

func TestSCCDeterminism(t *testing.T) {
	build := func(ids []string) [][]string {
		g := New(ids)
		g.AddEdge("a", "b")
		g.AddEdge("b", "c")
		g.AddEdge("c", "a")
		g.AddEdge("d", "b")
		return g.StronglyConnectedComponents()
	}
	first := build([]string{"a", "b", "c", "d"})
	second := build([]string{"d", "c", "b", "a"})
	require.Equal(t, first, second)
}
