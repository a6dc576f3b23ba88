package riffle

import "strings"

// Layer classifies a node by its architectural role. Layers are advisory:
// the resolver uses them only to break ties between nodes that the
// dependency graph leaves unordered, presenting lower-ranked layers first.
// They never override a dependency edge.
type Layer string

// Layers in tie-break rank order. Foundational code ranks low and is
// presented early; tests and unclassified nodes rank high.
const (
	LayerDataStructure Layer = "data-structure"
	LayerConfig        Layer = "config"
	LayerUtility       Layer = "utility"
	LayerDataAccess    Layer = "data-access"
	LayerBusinessLogic Layer = "business-logic"
	LayerOrchestration Layer = "orchestration"
	LayerEntryPoint    Layer = "entry-point"
	LayerTest          Layer = "test"
	LayerUnknown       Layer = "unknown"
)

var layerRanks = map[Layer]int{
	LayerDataStructure: 0,
	LayerConfig:        1,
	LayerUtility:       2,
	LayerDataAccess:    3,
	LayerBusinessLogic: 4,
	LayerOrchestration: 5,
	LayerEntryPoint:    6,
	LayerTest:          7,
	LayerUnknown:       8,
}

// Rank returns the layer's position in the tie-break order. The empty
// string and unrecognized values rank with LayerUnknown.
func (l Layer) Rank() int {
	if r, ok := layerRanks[l]; ok {
		return r
	}
	return layerRanks[LayerUnknown]
}

// Valid reports whether l is one of the defined layers.
func (l Layer) Valid() bool {
	_, ok := layerRanks[l]
	return ok
}

// LayerFromString normalizes s into a Layer. Unrecognized values map to
// LayerUnknown rather than failing, since layers are hints.
func LayerFromString(s string) Layer {
	l := Layer(strings.ToLower(strings.TrimSpace(s)))
	if l.Valid() {
		return l
	}
	return LayerUnknown
}
