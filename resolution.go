package riffle

import "fmt"

// Entry is one element of a resolved order: a single node, or a cycle
// group whose members are mutually dependent and must be read together.
type Entry struct {
	// IDs holds the node identifiers in presentation order. A singleton
	// entry holds exactly one.
	IDs []string `yaml:"IDs" json:"ids"`

	// Cyclic marks a cycle group. Members of a cyclic entry depend on one
	// another, directly or transitively, so no linear order among them is
	// fully correct.
	Cyclic bool `yaml:"Cyclic,omitempty" json:"cyclic,omitempty"`
}

// DiagnosticKind identifies a class of non-fatal resolution finding.
type DiagnosticKind string

const (
	// DiagnosticOverrideDependency reports that the order override placed
	// a node before one of its dependencies.
	DiagnosticOverrideDependency DiagnosticKind = "override-contradicts-dependency"

	// DiagnosticOverrideNesting reports that the order override placed a
	// node before its parent.
	DiagnosticOverrideNesting DiagnosticKind = "override-contradicts-nesting"
)

// Diagnostic is a non-fatal finding attached to a successful resolution.
// Diagnostics surface places where an explicit override contradicts the
// change-set's declared structure. The override still wins.
type Diagnostic struct {
	Kind DiagnosticKind `yaml:"Kind" json:"kind"`

	// From is the node presented too early: the dependent, or the child.
	From string `yaml:"From" json:"from"`

	// To is the node From should have followed: its dependency, or its
	// parent.
	To string `yaml:"To" json:"to"`
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticOverrideDependency:
		return fmt.Sprintf("override places %s before its dependency %s", d.From, d.To)
	case DiagnosticOverrideNesting:
		return fmt.Sprintf("override places %s before its parent %s", d.From, d.To)
	}
	return fmt.Sprintf("%s: %s before %s", d.Kind, d.From, d.To)
}

// Resolution is the outcome of resolving a change-set: the ordered
// entries to present, plus any diagnostics raised along the way.
type Resolution struct {
	Entries []Entry `yaml:"Entries" json:"entries"`

	// Diagnostics lists the structural contradictions introduced by the
	// order override, if any. A resolution with diagnostics is still
	// usable; the override was honored as given.
	Diagnostics []Diagnostic `yaml:"Diagnostics,omitempty" json:"diagnostics,omitempty"`

	// OverrideApplied reports whether an order override shaped this
	// resolution.
	OverrideApplied bool `yaml:"OverrideApplied,omitempty" json:"override_applied,omitempty"`
}

// Order flattens the resolution into a plain sequence of node IDs.
func (r *Resolution) Order() []string {
	var out []string
	for _, e := range r.Entries {
		out = append(out, e.IDs...)
	}
	return out
}

// Len returns the number of nodes across all entries.
func (r *Resolution) Len() int {
	n := 0
	for _, e := range r.Entries {
		n += len(e.IDs)
	}
	return n
}

// Clone returns a deep copy of the resolution.
func (r *Resolution) Clone() *Resolution {
	if r == nil {
		return nil
	}
	out := &Resolution{OverrideApplied: r.OverrideApplied}
	if r.Entries != nil {
		out.Entries = make([]Entry, len(r.Entries))
		for i, e := range r.Entries {
			ids := make([]string, len(e.IDs))
			copy(ids, e.IDs)
			out.Entries[i] = Entry{IDs: ids, Cyclic: e.Cyclic}
		}
	}
	if r.Diagnostics != nil {
		out.Diagnostics = make([]Diagnostic, len(r.Diagnostics))
		copy(out.Diagnostics, r.Diagnostics)
	}
	return out
}
