package loader

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"riveter/object"
)

// FuncPlaceholder stands in for a bound function in encoded output.
const FuncPlaceholder = "<func>"

// Encode converts an object-model value into a YAML node. Objects are
// written with their own slots in slot order.
func Encode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *yaml.Node:
		return val, nil
	case FuncRef:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: funcTag, Value: val.Name}, nil
	case *regexp.Regexp:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: regexpTag, Value: val.String()}, nil
	case *object.Object:
		if val == nil {
			return Encode(nil)
		}

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

		for _, key := range val.Keys() {
			slot, _ := val.Own(key)

			child, err := Encode(slot)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			node.Content = append(node.Content, scalarNode(key), child)
		}

		return node, nil
	}

	if object.KindOf(v) == object.KindFunction {
		return scalarNode(FuncPlaceholder), nil
	}

	if seq, ok := object.AsSequence(v); ok {
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for i, item := range seq {
			child, err := Encode(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			node.Content = append(node.Content, child)
		}

		return node, nil
	}

	if obj, ok := object.AsObject(v); ok {
		return Encode(obj)
	}

	if s, ok := v.(fmt.Stringer); ok && object.KindOf(v) == object.KindOpaque {
		return scalarNode(s.String()), nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}

	return node, nil
}

// Marshal encodes v as a YAML document indented by two spaces.
func Marshal(v any) ([]byte, error) {
	node, err := Encode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
