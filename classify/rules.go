package classify

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/deepnoodle-ai/riffle"
)

type rulesFile struct {
	Rules  []Rule   `yaml:"Rules"`
	Ignore []string `yaml:"Ignore,omitempty"`
}

// LoadFile builds a Classifier from a YAML rule file. Unknown fields are
// rejected. Layer values are normalized, so "Business-Logic" and
// "business-logic" mean the same thing.
func LoadFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Load builds a Classifier from YAML rule data.
func Load(data []byte) (*Classifier, error) {
	var rf rulesFile
	if err := yaml.UnmarshalWithOptions(data, &rf, yaml.Strict()); err != nil {
		return nil, err
	}
	for i := range rf.Rules {
		rf.Rules[i].Layer = riffle.LayerFromString(string(rf.Rules[i].Layer))
	}
	return New(Options{Rules: rf.Rules, Ignore: rf.Ignore})
}
