package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/riffle"
	"github.com/deepnoodle-ai/riffle/classify"
	"github.com/deepnoodle-ai/riffle/request"
)

// readFileContent reads from a file, or from stdin when the path is "-"
func readFileContent(filePath string) ([]byte, error) {
	if filePath == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %w", err)
		}
		return content, nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return content, nil
}

// loadChangeSet reads and parses a changeset document. Paths with a
// recognized extension parse by extension; stdin and everything else are
// sniffed as JSON or YAML.
func loadChangeSet(path string) (*riffle.ChangeSet, error) {
	if path != "-" {
		if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".json") {
			return riffle.ParseFile(path)
		}
	}
	data, err := readFileContent(path)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return riffle.ParseJSON(data)
	}
	return riffle.ParseYAML(data)
}

// resolveOptions carries the shared flags of commands that run a
// resolution.
type resolveOptions struct {
	Classify    bool
	RulesFile   string
	RequestFile string
}

// prepare applies classification and any review-request override to the
// changeset, in place.
func (o resolveOptions) prepare(cs *riffle.ChangeSet) error {
	if o.Classify || o.RulesFile != "" {
		classifier, err := newClassifier(o.RulesFile)
		if err != nil {
			return err
		}
		classifier.Apply(cs)
	}
	if o.RequestFile != "" {
		req, err := request.ParseFile(o.RequestFile)
		if err != nil {
			return fmt.Errorf("error parsing review request: %w", err)
		}
		req.ApplyTo(cs)
	}
	return nil
}

func newClassifier(rulesFile string) (*classify.Classifier, error) {
	if rulesFile != "" {
		classifier, err := classify.LoadFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("error loading rules file: %w", err)
		}
		return classifier, nil
	}
	return classify.New(classify.Options{
		Rules:  classify.DefaultRules(),
		Ignore: classify.DefaultIgnores(),
	})
}
