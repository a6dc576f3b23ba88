package riffle

import (
	"bytes"
	"encoding/hex"
	"sort"

	"lukechampine.com/blake3"
)

// Fingerprint returns a stable hex digest of the change-set's content.
// Nodes and edges are serialized in canonical order, so two change-sets
// that differ only in slice ordering share a fingerprint. The override
// sequence is order-significant and hashed verbatim.
func (cs *ChangeSet) Fingerprint() string {
	nodes := make([]Node, len(cs.Nodes))
	copy(nodes, cs.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]Edge, 0, len(cs.Edges))
	seen := make(map[Edge]struct{}, len(cs.Edges))
	for _, e := range cs.Edges {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	var buf bytes.Buffer
	for _, n := range nodes {
		buf.WriteString("n\x00")
		buf.WriteString(n.ID)
		buf.WriteString("\x00")
		buf.WriteString(n.Parent)
		buf.WriteString("\x00")
		buf.WriteString(string(n.Layer))
		buf.WriteString("\n")
	}
	for _, e := range edges {
		buf.WriteString("e\x00")
		buf.WriteString(e.From)
		buf.WriteString("\x00")
		buf.WriteString(e.To)
		buf.WriteString("\n")
	}
	for _, id := range cs.Order {
		buf.WriteString("o\x00")
		buf.WriteString(id)
		buf.WriteString("\n")
	}
	sum := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
