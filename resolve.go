package riffle

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/riffle/graph"
)

// Resolve computes the presentation order for a change-set. It validates
// the input, orders each nesting level so that dependencies precede their
// dependents, groups mutually-dependent nodes into cyclic entries, and
// applies the order override when one is present. Resolve never mutates
// the change-set, and identical change-sets always resolve identically.
func Resolve(cs *ChangeSet) (*Resolution, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return newResolver(cs).resolve()
}

// resolver holds the derived indexes for one resolution pass. All slices
// are kept sorted so iteration order never depends on map traversal.
type resolver struct {
	cs       *ChangeSet
	nodes    map[string]Node
	parent   map[string]string
	children map[string][]string
	roots    []string
	edges    []Edge
	outDeg   map[string]int

	// levels retains the condensation computed for each nesting level,
	// keyed by parent ID ("" for the top level). Diagnostics consult it
	// to recognize pairs that share a cycle group.
	levels map[string]*graph.Condensation
}

func newResolver(cs *ChangeSet) *resolver {
	r := &resolver{
		cs:       cs,
		nodes:    make(map[string]Node, len(cs.Nodes)),
		parent:   make(map[string]string, len(cs.Nodes)),
		children: make(map[string][]string),
		outDeg:   make(map[string]int),
		levels:   make(map[string]*graph.Condensation),
	}
	for _, n := range cs.Nodes {
		r.nodes[n.ID] = n
		if n.Parent == "" {
			r.roots = append(r.roots, n.ID)
		} else {
			r.parent[n.ID] = n.Parent
			r.children[n.Parent] = append(r.children[n.Parent], n.ID)
		}
	}
	sort.Strings(r.roots)
	for _, kids := range r.children {
		sort.Strings(kids)
	}
	seen := make(map[Edge]struct{}, len(cs.Edges))
	for _, e := range cs.Edges {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		r.edges = append(r.edges, e)
	}
	sort.Slice(r.edges, func(i, j int) bool {
		if r.edges[i].From != r.edges[j].From {
			return r.edges[i].From < r.edges[j].From
		}
		return r.edges[i].To < r.edges[j].To
	})
	for _, e := range r.edges {
		r.outDeg[e.From]++
	}
	return r
}

func (r *resolver) resolve() (*Resolution, error) {
	entries, err := r.orderLevel("", r.roots)
	if err != nil {
		return nil, err
	}
	override := len(r.cs.Order) > 0
	if override {
		entries = r.applyOverride(entries)
	}
	res := &Resolution{Entries: entries, OverrideApplied: override}
	if res.Len() != len(r.cs.Nodes) {
		return nil, &ResolutionError{
			Err:    ErrInternalInvariant,
			Detail: fmt.Sprintf("resolved %d of %d nodes", res.Len(), len(r.cs.Nodes)),
		}
	}
	res.Diagnostics = r.diagnose(res.Entries)
	return res, nil
}

// orderLevel orders the direct children of parentID. Dependencies between
// deeper descendants are projected onto the siblings that contain them, so
// a subtree is placed after everything its members depend on. Each
// sibling's own subtree is emitted immediately after the sibling; for a
// cycle group, subtrees follow the complete group.
func (r *resolver) orderLevel(parentID string, siblings []string) ([]Entry, error) {
	if len(siblings) == 0 {
		return nil, nil
	}
	g := graph.New(siblings)
	for _, e := range r.edges {
		from := r.childUnder(parentID, e.From)
		to := r.childUnder(parentID, e.To)
		if from == "" || to == "" || from == to {
			continue
		}
		g.AddEdge(from, to)
	}
	cond := graph.Condense(g)
	r.levels[parentID] = cond
	sorted, err := cond.Sort(r.componentLess)
	if err != nil {
		return nil, &ResolutionError{Err: ErrInternalInvariant, Detail: err.Error()}
	}
	var entries []Entry
	for _, comp := range sorted {
		members := comp.Members
		if comp.Cyclic() {
			members = r.orderGroupMembers(members)
			entries = append(entries, Entry{IDs: members, Cyclic: true})
		} else {
			entries = append(entries, Entry{IDs: []string{members[0]}})
		}
		for _, m := range members {
			sub, err := r.orderLevel(m, r.children[m])
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
		}
	}
	return entries, nil
}

// componentLess ranks ready components during the topological sort: most
// foundational layer first, then fewer outgoing dependencies, then the
// lexicographically smallest member.
func (r *resolver) componentLess(a, b *graph.Component) bool {
	ra, rb := r.minRank(a), r.minRank(b)
	if ra != rb {
		return ra < rb
	}
	if a.DependencyCount() != b.DependencyCount() {
		return a.DependencyCount() < b.DependencyCount()
	}
	return a.Lead() < b.Lead()
}

func (r *resolver) minRank(c *graph.Component) int {
	rank := LayerUnknown.Rank()
	for _, id := range c.Members {
		if nr := r.nodes[id].Layer.Rank(); nr < rank {
			rank = nr
		}
	}
	return rank
}

// orderGroupMembers fixes the presentation order inside a cycle group.
// The same tie-break applies as between components, with a node's own
// distinct dependency count standing in for the component fan-out.
func (r *resolver) orderGroupMembers(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ra, rb := r.nodes[a].Layer.Rank(), r.nodes[b].Layer.Rank()
		if ra != rb {
			return ra < rb
		}
		if r.outDeg[a] != r.outDeg[b] {
			return r.outDeg[a] < r.outDeg[b]
		}
		return a < b
	})
	return out
}

// applyOverride rebuilds the entry sequence around an explicit order.
// Named nodes lead as singleton entries in exactly the order given; the
// computed entries follow, filtered down to the nodes the override left
// unnamed. A cycle group reduced to a single member loses its flag.
func (r *resolver) applyOverride(computed []Entry) []Entry {
	named := make(map[string]struct{}, len(r.cs.Order))
	for _, id := range r.cs.Order {
		named[id] = struct{}{}
	}
	entries := make([]Entry, 0, len(r.cs.Order)+len(computed))
	for _, id := range r.cs.Order {
		entries = append(entries, Entry{IDs: []string{id}})
	}
	for _, e := range computed {
		rest := make([]string, 0, len(e.IDs))
		for _, id := range e.IDs {
			if _, ok := named[id]; !ok {
				rest = append(rest, id)
			}
		}
		if len(rest) == 0 {
			continue
		}
		entries = append(entries, Entry{IDs: rest, Cyclic: e.Cyclic && len(rest) > 1})
	}
	return entries
}

// diagnose reports where the final sequence contradicts the change-set's
// declared structure. Pairs inside one entry or one cycle scope are
// exempt, as are edges between a node and its own ancestor, which
// containment already accounts for. A computed order never produces
// diagnostics; an override may.
func (r *resolver) diagnose(entries []Entry) []Diagnostic {
	pos := make(map[string]int, len(r.nodes))
	entryOf := make(map[string]int, len(r.nodes))
	i := 0
	for ei, e := range entries {
		for _, id := range e.IDs {
			pos[id] = i
			entryOf[id] = ei
			i++
		}
	}
	var diags []Diagnostic
	for _, e := range r.edges {
		if entryOf[e.From] == entryOf[e.To] {
			continue
		}
		if r.isAncestor(e.From, e.To) || r.isAncestor(e.To, e.From) {
			continue
		}
		if r.sameCycleScope(e.From, e.To) {
			continue
		}
		if pos[e.To] > pos[e.From] {
			diags = append(diags, Diagnostic{Kind: DiagnosticOverrideDependency, From: e.From, To: e.To})
		}
	}
	for _, id := range r.cs.NodeIDs() {
		p := r.parent[id]
		if p == "" {
			continue
		}
		if pos[id] < pos[p] {
			diags = append(diags, Diagnostic{Kind: DiagnosticOverrideNesting, From: id, To: p})
		}
	}
	return diags
}

// childUnder returns the ancestor of id (possibly id itself) that is a
// direct child of parentID, or "" when id is not inside that subtree.
func (r *resolver) childUnder(parentID, id string) string {
	cur := id
	for {
		p := r.parent[cur]
		if p == parentID {
			return cur
		}
		if p == "" {
			return ""
		}
		cur = p
	}
}

func (r *resolver) isAncestor(anc, id string) bool {
	for cur := r.parent[id]; cur != ""; cur = r.parent[cur] {
		if cur == anc {
			return true
		}
	}
	return false
}

// sameCycleScope reports whether two nodes project into one cyclic
// component at the level where their subtrees diverge. Members of such a
// pair have no defensible relative order, so no diagnostic applies.
func (r *resolver) sameCycleScope(a, b string) bool {
	p := r.commonParent(a, b)
	cond := r.levels[p]
	if cond == nil {
		return false
	}
	ca := r.childUnder(p, a)
	cb := r.childUnder(p, b)
	if ca == "" || cb == "" || ca == cb {
		return false
	}
	compA := cond.Component(ca)
	compB := cond.Component(cb)
	return compA != nil && compA == compB && compA.Cyclic()
}

// commonParent returns the deepest node containing both a and b, or ""
// when they share no ancestor.
func (r *resolver) commonParent(a, b string) string {
	anc := make(map[string]struct{})
	for cur := r.parent[a]; cur != ""; cur = r.parent[cur] {
		anc[cur] = struct{}{}
	}
	for cur := r.parent[b]; cur != ""; cur = r.parent[cur] {
		if _, ok := anc[cur]; ok {
			return cur
		}
	}
	return ""
}
