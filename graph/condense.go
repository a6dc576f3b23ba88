package graph

import (
	"fmt"
	"sort"
)

// Component is one strongly connected component of a graph. A component
// with more than one member is a cycle group: its members are mutually
// dependent and have no defined order relative to each other.
type Component struct {
	// Members holds the component's identifiers in sorted order.
	Members []string

	depCount int
}

// Cyclic reports whether the component is a cycle group.
func (c *Component) Cyclic() bool {
	return len(c.Members) > 1
}

// Lead returns the lexicographically smallest member, used as the
// component's representative identifier.
func (c *Component) Lead() string {
	return c.Members[0]
}

// DependencyCount returns the number of distinct components this component
// depends on in the condensation.
func (c *Component) DependencyCount() int {
	return c.depCount
}

// Condensation is the graph formed by collapsing each strongly connected
// component to a single vertex. It is acyclic by construction; Sort
// re-validates that property defensively.
type Condensation struct {
	comps []*Component
	index map[string]int
	deps  [][]int // deps[i]: components that comps[i] depends on
	users [][]int // users[i]: components that depend on comps[i]
}

// Condense computes the strongly connected components of g and collapses
// them into a Condensation.
func Condense(g *Graph) *Condensation {
	sccs := g.StronglyConnectedComponents()
	c := &Condensation{
		comps: make([]*Component, len(sccs)),
		index: make(map[string]int, g.Len()),
	}
	for i, members := range sccs {
		c.comps[i] = &Component{Members: members}
		for _, id := range members {
			c.index[id] = i
		}
	}

	depSets := make([]map[int]struct{}, len(sccs))
	for i := range depSets {
		depSets[i] = make(map[int]struct{})
	}
	for _, id := range g.IDs() {
		from := c.index[id]
		for _, to := range g.Out(id) {
			if target := c.index[to]; target != from {
				depSets[from][target] = struct{}{}
			}
		}
	}

	c.deps = make([][]int, len(sccs))
	c.users = make([][]int, len(sccs))
	for i, set := range depSets {
		deps := make([]int, 0, len(set))
		for d := range set {
			deps = append(deps, d)
		}
		sort.Ints(deps)
		c.deps[i] = deps
		c.comps[i].depCount = len(deps)
		for _, d := range deps {
			c.users[d] = append(c.users[d], i)
		}
	}
	for i := range c.users {
		sort.Ints(c.users[i])
	}
	return c
}

// Components returns the components in decomposition order.
func (c *Condensation) Components() []*Component {
	return c.comps
}

// Component returns the component containing id, or nil if id is not in
// the underlying graph.
func (c *Condensation) Component(id string) *Component {
	i, ok := c.index[id]
	if !ok {
		return nil
	}
	return c.comps[i]
}

// Sort returns the components in dependency order: every component appears
// after all components it depends on. When several components are ready at
// once, less picks which one is emitted first, so a total comparator makes
// the sort deterministic.
//
// Sort fails only if the condensation contains a cycle, which cannot happen
// for a condensation produced by Condense and indicates a defect here
// rather than bad input.
func (c *Condensation) Sort(less func(a, b *Component) bool) ([]*Component, error) {
	remaining := make([]int, len(c.comps))
	var ready []int
	for i := range c.comps {
		remaining[i] = len(c.deps[i])
		if remaining[i] == 0 {
			ready = append(ready, i)
		}
	}

	sorted := make([]*Component, 0, len(c.comps))
	for len(ready) > 0 {
		best := 0
		for j := 1; j < len(ready); j++ {
			if less(c.comps[ready[j]], c.comps[ready[best]]) {
				best = j
			}
		}
		i := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		sorted = append(sorted, c.comps[i])

		for _, u := range c.users[i] {
			remaining[u]--
			if remaining[u] == 0 {
				ready = append(ready, u)
			}
		}
	}

	if len(sorted) != len(c.comps) {
		return nil, fmt.Errorf("condensation is not acyclic: %d of %d components never became ready", len(c.comps)-len(sorted), len(c.comps))
	}
	return sorted, nil
}
