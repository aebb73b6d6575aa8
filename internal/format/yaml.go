package format

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes YAML documents with two-space indentation
type YAMLFormatter struct {
	indent int
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{indent: 2}
}

// Format encodes data as a single YAML document
func (f *YAMLFormatter) Format(w io.Writer, data interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(f.indent)

	if err := enc.Encode(data); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
