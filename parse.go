package riffle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ParseFile loads a ChangeSet from a file. The file extension is used to
// determine the document format (JSON or YAML).
func ParseFile(path string) (*ChangeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return ParseJSON(data)
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ParseYAML loads a ChangeSet from YAML. Unknown fields are rejected.
func ParseYAML(data []byte) (*ChangeSet, error) {
	var cs ChangeSet
	if err := yaml.UnmarshalWithOptions(data, &cs, yaml.Strict()); err != nil {
		return nil, err
	}
	return &cs, nil
}

// ParseJSON loads a ChangeSet from JSON
func ParseJSON(data []byte) (*ChangeSet, error) {
	var cs ChangeSet
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}
