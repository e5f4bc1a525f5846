package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"riveter/object"
)

// CurrentVersion is the definition file version this package reads.
const CurrentVersion = "1"

// LoadFile loads and parses a definition file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse definition YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// LoadDocument reads a single YAML document of arbitrary shape.
func LoadDocument(path string) (*object.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	obj, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return obj, nil
}

// ParseDocument decodes a YAML document whose root is a mapping. An empty
// document yields an empty object.
func ParseDocument(data []byte) (*object.Object, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	v, err := decodeNode(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	switch doc := v.(type) {
	case nil:
		return object.New(), nil
	case *object.Object:
		return doc, nil
	default:
		return nil, fmt.Errorf("document root must be a mapping, got %s", object.KindOf(v))
	}
}
