package graph

import "sort"

// StronglyConnectedComponents returns the strongly connected components of
// the graph using Tarjan's algorithm. Members of each component are sorted,
// and because roots are visited in sorted identifier order over sorted
// adjacency, the decomposition is deterministic.
func (g *Graph) StronglyConnectedComponents() [][]string {
	index := make(map[string]int, g.Len())
	low := make(map[string]int, g.Len())
	onStack := make(map[string]bool, g.Len())
	var stack []string
	var counter int
	var comps [][]string

	var connect func(v string)
	connect = func(v string) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Out(v) {
			if _, visited := index[w]; !visited {
				connect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}

		// v is the root of a component: pop the stack down to v.
		if low[v] == index[v] {
			var members []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				members = append(members, w)
				if w == v {
					break
				}
			}
			sort.Strings(members)
			comps = append(comps, members)
		}
	}

	for _, v := range g.ids {
		if _, visited := index[v]; !visited {
			connect(v)
		}
	}
	return comps
}
