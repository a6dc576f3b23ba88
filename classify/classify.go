// Package classify assigns architectural layers to change-set nodes based
// on their identifiers.
//
// Most change-sets arrive without layer hints, since the tools that
// produce them know which files changed but not what role those files
// play. The classifier fills that gap with pattern rules: each rule maps
// a path pattern to a layer, and the first matching rule wins.
//
// # Rule Files
//
// Rules can be loaded from a YAML file:
//
//	Rules:
//	  - Pattern: "internal/billing/**"
//	    Layer: business-logic
//	  - Pattern: "**/*_gen.go"
//	    Layer: data-structure
//	Ignore:
//	  - "vendor/**"
//
// Patterns use doublestar syntax, so "**" crosses directory boundaries.
// Ignore patterns name paths the classifier leaves alone entirely.
//
// # Usage Example
//
//	c, err := classify.New(classify.Options{Rules: classify.DefaultRules()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := c.Apply(changeSet)
//	fmt.Printf("classified %d nodes\n", n)
package classify

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/deepnoodle-ai/riffle"
)

// Rule maps a path pattern to a layer. Patterns use doublestar syntax
// and match against the full node ID with "/" as the separator.
type Rule struct {
	Pattern string       `yaml:"Pattern" json:"pattern"`
	Layer   riffle.Layer `yaml:"Layer" json:"layer"`
}

// Options configures a Classifier.
type Options struct {
	// Rules are evaluated in order; the first match assigns the layer.
	Rules []Rule

	// Ignore lists glob patterns for node IDs the classifier must not
	// touch, such as vendored or generated trees.
	Ignore []string
}

// Classifier assigns layers to node IDs using an ordered rule list.
type Classifier struct {
	rules   []Rule
	ignores []glob.Glob
}

// New compiles the configured rules into a Classifier. Invalid patterns
// are rejected up front so a bad rule file fails loudly rather than
// silently matching nothing.
func New(opts Options) (*Classifier, error) {
	for _, r := range opts.Rules {
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, fmt.Errorf("invalid rule pattern: %q", r.Pattern)
		}
	}
	ignores := make([]glob.Glob, 0, len(opts.Ignore))
	for _, pattern := range opts.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		ignores = append(ignores, g)
	}
	return &Classifier{rules: opts.Rules, ignores: ignores}, nil
}

// Classify returns the layer for a node ID, or LayerUnknown when no rule
// matches or the ID is ignored. Symbol IDs like "pkg/file.go#Sign" are
// classified by their file part.
func (c *Classifier) Classify(id string) riffle.Layer {
	path := id
	if i := strings.Index(path, "#"); i >= 0 {
		path = path[:i]
	}
	for _, ig := range c.ignores {
		if ig.Match(path) {
			return riffle.LayerUnknown
		}
	}
	for _, r := range c.rules {
		if matched, err := doublestar.Match(r.Pattern, path); err == nil && matched {
			return r.Layer
		}
	}
	return riffle.LayerUnknown
}

// Apply fills in layers for nodes that have none. Explicit hints are
// never overwritten, so upstream tools can pin a layer and trust it to
// survive. Returns the number of nodes classified.
func (c *Classifier) Apply(cs *riffle.ChangeSet) int {
	classified := 0
	for i := range cs.Nodes {
		n := &cs.Nodes[i]
		if n.Layer != "" && n.Layer != riffle.LayerUnknown {
			continue
		}
		layer := c.Classify(n.ID)
		if layer == riffle.LayerUnknown {
			continue
		}
		n.Layer = layer
		classified++
	}
	return classified
}

// DefaultRules returns the built-in rule set for conventional Go project
// layouts. Projects with unusual layouts should load their own rules.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "**/*_test.go", Layer: riffle.LayerTest},
		{Pattern: "**/testdata/**", Layer: riffle.LayerTest},
		{Pattern: "cmd/**", Layer: riffle.LayerEntryPoint},
		{Pattern: "**/main.go", Layer: riffle.LayerEntryPoint},
		{Pattern: "**/schema/**", Layer: riffle.LayerDataStructure},
		{Pattern: "**/types/**", Layer: riffle.LayerDataStructure},
		{Pattern: "**/model/**", Layer: riffle.LayerDataStructure},
		{Pattern: "**/models/**", Layer: riffle.LayerDataStructure},
		{Pattern: "**/config/**", Layer: riffle.LayerConfig},
		{Pattern: "**/*.yaml", Layer: riffle.LayerConfig},
		{Pattern: "**/*.yml", Layer: riffle.LayerConfig},
		{Pattern: "**/*.json", Layer: riffle.LayerConfig},
		{Pattern: "**/*.toml", Layer: riffle.LayerConfig},
		{Pattern: "**/store/**", Layer: riffle.LayerDataAccess},
		{Pattern: "**/storage/**", Layer: riffle.LayerDataAccess},
		{Pattern: "**/repository/**", Layer: riffle.LayerDataAccess},
		{Pattern: "**/db/**", Layer: riffle.LayerDataAccess},
		{Pattern: "**/util/**", Layer: riffle.LayerUtility},
		{Pattern: "**/utils/**", Layer: riffle.LayerUtility},
		{Pattern: "**/helpers/**", Layer: riffle.LayerUtility},
		{Pattern: "**/server/**", Layer: riffle.LayerOrchestration},
		{Pattern: "**/service/**", Layer: riffle.LayerOrchestration},
		{Pattern: "**/worker/**", Layer: riffle.LayerOrchestration},
	}
}

// DefaultIgnores returns the ignore patterns applied by default: trees
// nobody reviews by hand.
func DefaultIgnores() []string {
	return []string{
		"vendor/**",
		"**/node_modules/**",
		"**/.git/**",
	}
}
