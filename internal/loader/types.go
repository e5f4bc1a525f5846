// Package loader reads entity definition files.
//
// A definition file declares named donors and a list of entities. Mappings
// decode into ordered objects, "!func NAME" scalars into FuncRef
// placeholders bound later against a FuncRegistry, and "!regexp PATTERN"
// scalars into compiled patterns.
package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"riveter/object"
)

// File is a parsed definition file.
type File struct {
	Version  string      `yaml:"version"`
	Donors   Donors      `yaml:"donors,omitempty"`
	Entities []EntityDef `yaml:"entities"`
}

// EntityDef declares one entity.
type EntityDef struct {
	Name string `yaml:"name"`
	// Extends names the parent entity. Empty for a root entity.
	Extends string `yaml:"extends,omitempty"`
	// Deep overrides the builder's default merge mode when set.
	Deep      *bool         `yaml:"deep,omitempty"`
	Init      *FuncRef      `yaml:"init,omitempty"`
	Statics   Body          `yaml:"statics,omitempty"`
	Prototype Body          `yaml:"prototype,omitempty"`
	Compose   StringOrArray `yaml:"compose,omitempty"`
	Mixin     StringOrArray `yaml:"mixin,omitempty"`
	Punch     StringOrArray `yaml:"punch,omitempty"`
}

// DonorNames returns the donors referenced by compose, mixin and punch, in
// that order, duplicates included.
func (d *EntityDef) DonorNames() []string {
	names := make([]string, 0, len(d.Compose)+len(d.Mixin)+len(d.Punch))
	names = append(names, d.Compose...)
	names = append(names, d.Mixin...)

	return append(names, d.Punch...)
}

// Donor is a named donor mapping.
type Donor struct {
	Name string
	Body *object.Object
}

// Donors keeps donors in document order.
type Donors []Donor

// Get returns the donor body registered under name.
func (d Donors) Get(name string) (*object.Object, bool) {
	for _, donor := range d {
		if donor.Name == name {
			return donor.Body, true
		}
	}

	return nil, false
}

// Names lists donor names in document order.
func (d Donors) Names() []string {
	names := make([]string, len(d))
	for i, donor := range d {
		names[i] = donor.Name
	}

	return names
}

// UnmarshalYAML decodes a mapping of donor name to donor mapping.
func (d *Donors) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: donors must be a mapping", node.Line)
	}

	out := make(Donors, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		if _, dup := out.Get(key.Value); dup {
			return fmt.Errorf("line %d: donor %q: %w", key.Line, key.Value, ErrDuplicateKey)
		}

		v, err := decodeNode(val)
		if err != nil {
			return fmt.Errorf("donor %q: %w", key.Value, err)
		}

		body, ok := v.(*object.Object)
		if !ok {
			return fmt.Errorf("line %d: donor %q must be a mapping", val.Line, key.Value)
		}

		out = append(out, Donor{Name: key.Value, Body: body})
	}

	*d = out

	return nil
}

// MarshalYAML encodes donors as an ordered mapping.
func (d Donors) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, donor := range d {
		val, err := Encode(donor.Body)
		if err != nil {
			return nil, fmt.Errorf("donor %q: %w", donor.Name, err)
		}

		node.Content = append(node.Content, scalarNode(donor.Name), val)
	}

	return node, nil
}

// Body is a mapping decoded into an ordered object.
type Body struct {
	*object.Object
}

// IsZero reports whether the body was absent from the document.
func (b Body) IsZero() bool {
	return b.Object == nil
}

// UnmarshalYAML decodes a mapping node.
func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeNode(node)
	if err != nil {
		return err
	}

	switch o := v.(type) {
	case nil:
		b.Object = nil
	case *object.Object:
		b.Object = o
	default:
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, object.KindOf(v))
	}

	return nil
}

// MarshalYAML encodes the body in slot order.
func (b Body) MarshalYAML() (any, error) {
	if b.Object == nil {
		return nil, nil
	}

	return Encode(b.Object)
}

// FuncRef names a function in a FuncRegistry.
type FuncRef struct {
	Name string
}

// UnmarshalYAML accepts "!func NAME" as well as a plain NAME scalar.
func (f *FuncRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Value == "" {
		return fmt.Errorf("line %d: function reference must be a non-empty scalar", node.Line)
	}

	f.Name = node.Value

	return nil
}

// MarshalYAML encodes the reference with its !func tag.
func (f FuncRef) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: funcTag, Value: f.Name}, nil
}

// String returns "!func NAME".
func (f FuncRef) String() string {
	return funcTag + " " + f.Name
}

// StringOrArray is a list that may be written as a single scalar.
type StringOrArray []string

// UnmarshalYAML accepts a single string or a sequence of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*s = StringOrArray{}
		} else {
			*s = StringOrArray{node.Value}
		}

		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// MarshalYAML writes a single element as a scalar.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty reports whether the list has no element.
func (s StringOrArray) IsEmpty() bool {
	return len(s) == 0
}
