// Package graph provides the directed-graph machinery used to compute
// dependency orderings: a graph over opaque string identifiers, strongly
// connected component decomposition, and a deterministic topological sort
// over the condensation.
//
// Determinism is the point. Adjacency is kept in sorted slices rather than
// maps, traversals visit identifiers in sorted order, and the topological
// sort breaks ties with a caller-supplied comparator, so the same graph
// always yields the same ordering.
package graph

import "sort"

// Graph is a directed graph over string identifiers. An edge (from, to)
// records that from depends on to. The vertex set is fixed at construction;
// edges referencing unknown identifiers are ignored, so callers should
// validate inputs first.
type Graph struct {
	ids []string
	out map[string][]string
	in  map[string][]string
}

// New creates a Graph containing the given identifiers and no edges.
// Identifiers are assumed unique.
func New(ids []string) *Graph {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return &Graph{
		ids: sorted,
		out: make(map[string][]string, len(ids)),
		in:  make(map[string][]string, len(ids)),
	}
}

// AddEdge records that from depends on to. Duplicate edges collapse to one.
// Edges with an endpoint outside the vertex set are dropped.
func (g *Graph) AddEdge(from, to string) {
	if !g.contains(from) || !g.contains(to) {
		return
	}
	g.out[from] = insertSorted(g.out[from], to)
	g.in[to] = insertSorted(g.in[to], from)
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.ids)
}

// IDs returns the vertex identifiers in sorted order. The returned slice
// is shared and must not be modified.
func (g *Graph) IDs() []string {
	return g.ids
}

// Out returns the identifiers that id depends on, in sorted order.
func (g *Graph) Out(id string) []string {
	return g.out[id]
}

// In returns the identifiers that depend on id, in sorted order.
func (g *Graph) In(id string) []string {
	return g.in[id]
}

// OutDegree returns the number of distinct identifiers that id depends on.
func (g *Graph) OutDegree(id string) int {
	return len(g.out[id])
}

func (g *Graph) contains(id string) bool {
	i := sort.SearchStrings(g.ids, id)
	return i < len(g.ids) && g.ids[i] == id
}

// insertSorted inserts s into the sorted slice list, keeping it sorted and
// free of duplicates.
func insertSorted(list []string, s string) []string {
	i := sort.SearchStrings(list, s)
	if i < len(list) && list[i] == s {
		return list
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}
