package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSchema is the serialized form of a Schema. Levels are a list, not a
// map, because declaration order decides classifier precedence.
type fileSchema struct {
	RootName         string  `json:"root_name" yaml:"root_name"`
	SectionsField    string  `json:"sections_field,omitempty" yaml:"sections_field,omitempty"`
	DescriptionField string  `json:"description_field,omitempty" yaml:"description_field,omitempty"`
	Levels           []Level `json:"levels" yaml:"levels"`
}

// Parse builds a validated Schema from serialized JSON or YAML data.
func Parse(data []byte, format string) (*Schema, error) {
	var fs fileSchema
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot parse JSON schema: %v", err)}
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &fs); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("cannot parse YAML schema: %v", err)}
		}
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported schema format %q", format)}
	}
	return New(fs.RootName, fs.SectionsField, fs.DescriptionField, fs.Levels)
}

// LoadFile reads a schema description from a .json, .yaml or .yml file and
// returns the validated Schema.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read schema file: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Parse(data, format)
}
