package riffle

import "sort"

// Node is one reviewable unit in a change-set. Depending on how the
// change-set was produced a node may be a file, a directory, or a single
// symbol inside a file.
type Node struct {
	// ID uniquely identifies the node within the change-set, e.g.
	// "internal/auth/token.go" or "internal/auth/token.go#Sign".
	ID string `yaml:"ID" json:"id"`

	// Parent names the node that structurally contains this one, if any.
	// A parent is always presented before its children.
	Parent string `yaml:"Parent,omitempty" json:"parent,omitempty"`

	// Layer hints at the node's architectural role. It participates only
	// in tie-breaking and is never a hard ordering constraint.
	Layer Layer `yaml:"Layer,omitempty" json:"layer,omitempty"`
}

// Edge records that From depends on To. A correct presentation shows To
// before From so the reader encounters definitions before their uses.
type Edge struct {
	From string `yaml:"From" json:"from"`
	To   string `yaml:"To" json:"to"`
}

// ChangeSet describes one review's worth of changes: the nodes under
// review, the dependency edges between them, and an optional explicit
// order that supersedes the computed one for the nodes it names.
type ChangeSet struct {
	Nodes []Node `yaml:"Nodes" json:"nodes"`
	Edges []Edge `yaml:"Edges,omitempty" json:"edges,omitempty"`

	// Order, when non-empty, fixes the relative presentation order of the
	// nodes it names. Nodes it does not name follow in computed order.
	Order []string `yaml:"Order,omitempty" json:"order,omitempty"`
}

// Validate checks the change-set's internal consistency. It returns a
// *ResolutionError identifying the first problem found: a duplicated or
// empty node ID, an edge or parent referencing an unknown node, a node
// that depends on or contains itself, or a malformed order override.
func (cs *ChangeSet) Validate() error {
	ids := make(map[string]struct{}, len(cs.Nodes))
	for _, n := range cs.Nodes {
		if n.ID == "" {
			return &ResolutionError{Err: ErrUnknownReference, Detail: "node with empty identifier"}
		}
		if _, dup := ids[n.ID]; dup {
			return &ResolutionError{Err: ErrDuplicateNode, NodeID: n.ID}
		}
		ids[n.ID] = struct{}{}
	}
	parents := make(map[string]string, len(cs.Nodes))
	for _, n := range cs.Nodes {
		if n.Parent == "" {
			continue
		}
		if _, ok := ids[n.Parent]; !ok {
			return &ResolutionError{
				Err:    ErrUnknownReference,
				NodeID: n.Parent,
				Detail: "parent of " + n.ID,
			}
		}
		parents[n.ID] = n.Parent
	}
	if err := validateNesting(cs.Nodes, parents); err != nil {
		return err
	}
	for _, e := range cs.Edges {
		if _, ok := ids[e.From]; !ok {
			return &ResolutionError{Err: ErrUnknownReference, NodeID: e.From, Edge: &Edge{From: e.From, To: e.To}}
		}
		if _, ok := ids[e.To]; !ok {
			return &ResolutionError{Err: ErrUnknownReference, NodeID: e.To, Edge: &Edge{From: e.From, To: e.To}}
		}
		if e.From == e.To {
			return &ResolutionError{Err: ErrSelfDependency, NodeID: e.From}
		}
	}
	named := make(map[string]struct{}, len(cs.Order))
	for _, id := range cs.Order {
		if _, ok := ids[id]; !ok {
			return &ResolutionError{Err: ErrInvalidOverride, NodeID: id, Detail: "override names unknown node"}
		}
		if _, dup := named[id]; dup {
			return &ResolutionError{Err: ErrInvalidOverride, NodeID: id, Detail: "override names node twice"}
		}
		named[id] = struct{}{}
	}
	return nil
}

// validateNesting rejects containment cycles. A node reachable from itself
// through parent links would contain itself, which is treated the same as
// depending on itself.
func validateNesting(nodes []Node, parents map[string]string) error {
	const (
		unvisited = 0
		walking   = 1
		done      = 2
	)
	state := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if state[n.ID] != unvisited {
			continue
		}
		var chain []string
		cur := n.ID
		for cur != "" && state[cur] == unvisited {
			state[cur] = walking
			chain = append(chain, cur)
			cur = parents[cur]
		}
		if cur != "" && state[cur] == walking {
			return &ResolutionError{Err: ErrSelfDependency, NodeID: cur, Detail: "node contains itself"}
		}
		for _, id := range chain {
			state[id] = done
		}
	}
	return nil
}

// Clone returns a deep copy of the change-set. The copy shares no slices
// with the original, so either side can be mutated independently.
func (cs *ChangeSet) Clone() *ChangeSet {
	if cs == nil {
		return nil
	}
	out := &ChangeSet{}
	if cs.Nodes != nil {
		out.Nodes = make([]Node, len(cs.Nodes))
		copy(out.Nodes, cs.Nodes)
	}
	if cs.Edges != nil {
		out.Edges = make([]Edge, len(cs.Edges))
		copy(out.Edges, cs.Edges)
	}
	if cs.Order != nil {
		out.Order = make([]string, len(cs.Order))
		copy(out.Order, cs.Order)
	}
	return out
}

// Node returns the node with the given ID, or nil if the change-set does
// not contain it.
func (cs *ChangeSet) Node(id string) *Node {
	for i := range cs.Nodes {
		if cs.Nodes[i].ID == id {
			return &cs.Nodes[i]
		}
	}
	return nil
}

// NodeIDs returns the IDs of all nodes in sorted order.
func (cs *ChangeSet) NodeIDs() []string {
	ids := make([]string, 0, len(cs.Nodes))
	for _, n := range cs.Nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}
