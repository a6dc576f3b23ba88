package riffle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLinearChain(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []Edge{{From: "B", To: "A"}, {From: "C", To: "B"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, res.Order())
	require.False(t, res.OverrideApplied)
	require.Empty(t, res.Diagnostics)
	for _, e := range res.Entries {
		require.False(t, e.Cyclic)
		require.Len(t, e.IDs, 1)
	}
}

func TestResolveCyclePair(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "X"}, {ID: "Y"}},
		Edges: []Edge{{From: "X", To: "Y"}, {From: "Y", To: "X"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	require.True(t, res.Entries[0].Cyclic)
	require.Equal(t, []string{"X", "Y"}, res.Entries[0].IDs)
	require.Empty(t, res.Diagnostics)
}

func TestResolveParentPrecedesChild(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "pkg/auth/token.go#Sign", Parent: "pkg/auth/token.go"},
			{ID: "pkg/auth/token.go"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"pkg/auth/token.go", "pkg/auth/token.go#Sign"}, res.Order())
}

func TestResolveOverrideIsVerbatim(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []Edge{{From: "B", To: "A"}},
		Order: []string{"C", "B", "A"},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "B", "A"}, res.Order())
	require.True(t, res.OverrideApplied)

	// B depends on A, and the override presents B first.
	require.Equal(t, []Diagnostic{
		{Kind: DiagnosticOverrideDependency, From: "B", To: "A"},
	}, res.Diagnostics)
}

func TestResolveUnknownEdgeEndpoint(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "A"}, {ID: "B"}},
		Edges: []Edge{{From: "A", To: "Z"}},
	}
	res, err := Resolve(cs)
	require.Error(t, err)
	require.Nil(t, res)
	require.True(t, IsUnknownReference(err))
	require.Contains(t, err.Error(), "Z")
}

func TestResolveEmptyChangeSet(t *testing.T) {
	res, err := Resolve(&ChangeSet{})
	require.NoError(t, err)
	require.Empty(t, res.Entries)
	require.Empty(t, res.Order())
}

func TestResolveSingleNode(t *testing.T) {
	res, err := Resolve(&ChangeSet{Nodes: []Node{{ID: "main.go"}}})
	require.NoError(t, err)
	require.Equal(t, []string{"main.go"}, res.Order())
}

func TestResolveLayerTieBreak(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "main.go", Layer: LayerEntryPoint},
			{ID: "util.go", Layer: LayerUtility},
			{ID: "schema.go", Layer: LayerDataStructure},
			{ID: "notes.txt"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"schema.go", "util.go", "main.go", "notes.txt"}, res.Order())
}

func TestResolveFanOutTieBreak(t *testing.T) {
	// b and d become ready together. d has no dependencies at all while b
	// has one, so d is presented first despite b sorting lower.
	cs := &ChangeSet{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []Edge{{From: "a", To: "c"}, {From: "a", To: "d"}, {From: "b", To: "c"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d", "b", "a"}, res.Order())
}

func TestResolveLexicographicTieBreak(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "zebra.go"}, {ID: "alpha.go"}, {ID: "mid.go"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.go", "mid.go", "zebra.go"}, res.Order())
}

func TestResolveCycleGroupPlacement(t *testing.T) {
	// x and y form a cycle that depends on w, and z depends into the
	// cycle. The group sits between its dependency and its dependent,
	// members ordered by their own dependency counts.
	cs := &ChangeSet{
		Nodes: []Node{{ID: "w"}, {ID: "x"}, {ID: "y"}, {ID: "z"}},
		Edges: []Edge{
			{From: "x", To: "y"},
			{From: "y", To: "x"},
			{From: "x", To: "w"},
			{From: "z", To: "x"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"w", "y", "x", "z"}, res.Order())
	require.Len(t, res.Entries, 3)
	require.False(t, res.Entries[0].Cyclic)
	require.True(t, res.Entries[1].Cyclic)
	require.Equal(t, []string{"y", "x"}, res.Entries[1].IDs)
	require.False(t, res.Entries[2].Cyclic)
	require.Empty(t, res.Diagnostics)
}

func TestResolveCycleGroupMemberOrder(t *testing.T) {
	// Ring of three with equal fan-out; the data-structure member leads,
	// the rest follow lexicographically.
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "m", Layer: LayerUtility},
			{ID: "k", Layer: LayerUtility},
			{ID: "z", Layer: LayerDataStructure},
		},
		Edges: []Edge{
			{From: "z", To: "m"},
			{From: "m", To: "k"},
			{From: "k", To: "z"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	require.True(t, res.Entries[0].Cyclic)
	require.Equal(t, []string{"z", "k", "m"}, res.Entries[0].IDs)
}

func TestResolveNestedDependencyOrdersSubtrees(t *testing.T) {
	// C sits inside P and depends on top-level T. The whole P subtree
	// must come after T even though P itself declares no edges.
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "P"},
			{ID: "C", Parent: "P"},
			{ID: "T"},
		},
		Edges: []Edge{{From: "C", To: "T"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"T", "P", "C"}, res.Order())
	require.Empty(t, res.Diagnostics)
}

func TestResolveDeepNesting(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "G", Parent: "C"},
			{ID: "P"},
			{ID: "C", Parent: "P"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"P", "C", "G"}, res.Order())
}

func TestResolveCycleAcrossSubtrees(t *testing.T) {
	// C1 lives inside P and participates in a cycle with top-level T.
	// The projected cycle groups P with T, and C1 follows the complete
	// group without raising diagnostics.
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "P"},
			{ID: "C1", Parent: "P"},
			{ID: "T"},
		},
		Edges: []Edge{
			{From: "C1", To: "T"},
			{From: "T", To: "C1"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	require.True(t, res.Entries[0].Cyclic)
	require.Equal(t, []string{"P", "T"}, res.Entries[0].IDs)
	require.Equal(t, []string{"C1"}, res.Entries[1].IDs)
	require.Empty(t, res.Diagnostics)
}

func TestResolveParentDependsOnOwnChild(t *testing.T) {
	// Containment already forces P before C. The edge cannot be honored
	// as an ordering constraint and produces no diagnostic.
	cs := &ChangeSet{
		Nodes: []Node{{ID: "P"}, {ID: "C", Parent: "P"}},
		Edges: []Edge{{From: "P", To: "C"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"P", "C"}, res.Order())
	require.Empty(t, res.Diagnostics)
}

func TestResolveOverridePartial(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		Edges: []Edge{{From: "B", To: "A"}, {From: "D", To: "C"}},
		Order: []string{"C", "A"},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "A", "B", "D"}, res.Order())
	require.True(t, res.OverrideApplied)
	require.Empty(t, res.Diagnostics)
}

func TestResolveOverrideNestingDiagnostic(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "P"}, {ID: "C", Parent: "P"}},
		Order: []string{"C", "P"},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"C", "P"}, res.Order())
	require.Equal(t, []Diagnostic{
		{Kind: DiagnosticOverrideNesting, From: "C", To: "P"},
	}, res.Diagnostics)
}

func TestResolveOverrideSplitsCycleGroup(t *testing.T) {
	// Naming one member of a cycle pulls it to the front. The remnant is
	// no longer presented as a group, and the mutual dependency raises no
	// diagnostic since neither order could satisfy it.
	cs := &ChangeSet{
		Nodes: []Node{{ID: "X"}, {ID: "Y"}},
		Edges: []Edge{{From: "X", To: "Y"}, {From: "Y", To: "X"}},
		Order: []string{"X"},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"X", "Y"}, res.Order())
	require.Len(t, res.Entries, 2)
	require.False(t, res.Entries[0].Cyclic)
	require.False(t, res.Entries[1].Cyclic)
	require.Empty(t, res.Diagnostics)
}

func TestResolveDuplicateEdgesTolerated(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "A"}, {ID: "B"}},
		Edges: []Edge{{From: "B", To: "A"}, {From: "B", To: "A"}, {From: "B", To: "A"}},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, res.Order())
}

func TestResolveRealisticChangeSet(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "cmd/app/main.go", Layer: LayerEntryPoint},
			{ID: "internal/server/server.go", Layer: LayerOrchestration},
			{ID: "internal/store/store.go", Layer: LayerDataAccess},
			{ID: "internal/store/store.go#Get", Parent: "internal/store/store.go"},
			{ID: "internal/schema/user.go", Layer: LayerDataStructure},
		},
		Edges: []Edge{
			{From: "cmd/app/main.go", To: "internal/server/server.go"},
			{From: "internal/server/server.go", To: "internal/store/store.go"},
			{From: "internal/store/store.go#Get", To: "internal/schema/user.go"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, []string{
		"internal/schema/user.go",
		"internal/store/store.go",
		"internal/store/store.go#Get",
		"internal/server/server.go",
		"cmd/app/main.go",
	}, res.Order())
	require.Empty(t, res.Diagnostics)
}

func TestResolveDeterministicUnderPermutation(t *testing.T) {
	base := &ChangeSet{
		Nodes: []Node{
			{ID: "cmd/app/main.go", Layer: LayerEntryPoint},
			{ID: "internal/server/server.go", Layer: LayerOrchestration},
			{ID: "internal/store/store.go", Layer: LayerDataAccess},
			{ID: "internal/store/store.go#Get", Parent: "internal/store/store.go"},
			{ID: "internal/schema/user.go", Layer: LayerDataStructure},
			{ID: "internal/util/retry.go", Layer: LayerUtility},
			{ID: "internal/util/clock.go", Layer: LayerUtility},
		},
		Edges: []Edge{
			{From: "cmd/app/main.go", To: "internal/server/server.go"},
			{From: "internal/server/server.go", To: "internal/store/store.go"},
			{From: "internal/store/store.go#Get", To: "internal/schema/user.go"},
			{From: "internal/server/server.go", To: "internal/util/retry.go"},
			{From: "internal/util/retry.go", To: "internal/util/clock.go"},
			{From: "internal/util/clock.go", To: "internal/util/retry.go"},
		},
	}
	want, err := Resolve(base)
	require.NoError(t, err)

	for seed := int64(1); seed <= 20; seed++ {
		shuffled := base.Clone()
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(shuffled.Nodes), func(i, j int) {
			shuffled.Nodes[i], shuffled.Nodes[j] = shuffled.Nodes[j], shuffled.Nodes[i]
		})
		rng.Shuffle(len(shuffled.Edges), func(i, j int) {
			shuffled.Edges[i], shuffled.Edges[j] = shuffled.Edges[j], shuffled.Edges[i]
		})
		got, err := Resolve(shuffled)
		require.NoError(t, err)
		require.Equal(t, want, got, "seed %d", seed)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	cs := &ChangeSet{
		Nodes: []Node{{ID: "b"}, {ID: "a"}, {ID: "c", Parent: "b"}},
		Edges: []Edge{{From: "b", To: "a"}, {From: "b", To: "a"}},
		Order: []string{"a"},
	}
	snapshot := cs.Clone()
	_, err := Resolve(cs)
	require.NoError(t, err)
	require.Equal(t, snapshot, cs)
}

func TestResolveDependencyPrecedenceHolds(t *testing.T) {
	// Every non-cyclic edge must be honored in a computed order,
	// whatever the shape of the input.
	cs := &ChangeSet{
		Nodes: []Node{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
			{ID: "f", Parent: "a"}, {ID: "g", Parent: "a"}, {ID: "h", Parent: "b"},
		},
		Edges: []Edge{
			{From: "a", To: "c"},
			{From: "b", To: "a"},
			{From: "f", To: "d"},
			{From: "h", To: "g"},
			{From: "d", To: "e"},
		},
	}
	res, err := Resolve(cs)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	pos := make(map[string]int)
	for i, id := range res.Order() {
		pos[id] = i
	}
	for _, e := range cs.Edges {
		require.Less(t, pos[e.To], pos[e.From], "edge %s -> %s", e.From, e.To)
	}
	for _, n := range cs.Nodes {
		if n.Parent != "" {
			require.Less(t, pos[n.Parent], pos[n.ID], "parent %s of %s", n.Parent, n.ID)
		}
	}
}
