// Package riffle computes the order in which the pieces of a code change
// should be reviewed. It takes a library-first approach: given a
// [ChangeSet] describing the changed nodes, the dependency edges between
// them, and optional layer hints, [Resolve] produces a deterministic
// reading order in which dependencies appear before their dependents and
// parents before their children.
//
// The core types are:
//
//   - [ChangeSet] describes the nodes, edges, and optional order override under review.
//   - [Resolution] is the resolved order: a sequence of [Entry] values plus diagnostics.
//   - [Entry] holds one node, or a cycle group whose members must be read together.
//   - [ResolutionError] explains a rejected change-set and wraps a sentinel error
//     such as [ErrDuplicateNode] or [ErrUnknownReference].
//
// # Quick Start
//
//	cs, _ := riffle.ParseFile("changeset.yaml")
//	res, err := riffle.Resolve(cs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, entry := range res.Entries {
//	    fmt.Println(entry.IDs, entry.Cyclic)
//	}
//
// Layer classification rules live in the
// [github.com/deepnoodle-ai/riffle/classify] package. Review-request
// parsing is in [github.com/deepnoodle-ai/riffle/request].
package riffle
