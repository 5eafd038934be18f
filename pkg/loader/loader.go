package loader

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/machine"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML or JSON machine document and compiles it.
func Parse(data []byte) (*machine.Spec, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	def, err := doc.Definition()
	if err != nil {
		return nil, err
	}
	return machine.Compile(def)
}

// LoadFile reads and compiles the machine document at path.
// The file name (without extension) is used when the document has no name.
func LoadFile(path string) (*machine.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = nameFromPath(path)
	}
	def, err := doc.Definition()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	spec, err := machine.Compile(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Decode parses raw bytes into a Document without compiling it.
func Decode(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse machine document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty machine document")
	}
	return DecodeMap(raw)
}

// DecodeMap converts an already parsed document (e.g. a JSON request body) into a Document.
// Unknown keys are rejected so typos in field names fail loudly.
func DecodeMap(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "mapstructure",
		WeaklyTypedInput: true, // digits as symbols: `read_symbol: 3`
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid machine document: %w", err)
	}
	return &doc, nil
}

// Marshal renders def as a YAML document.
func Marshal(def machine.Definition) ([]byte, error) {
	out, err := yaml.Marshal(FromDefinition(def))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal machine: %w", err)
	}
	return out, nil
}
