package loader

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"riveter/merge"
	"riveter/object"
)

const (
	funcTag   = "!func"
	regexpTag = "!regexp"
	mergeTag  = "!!merge"
)

// Aliases are expanded on every reference. A document where nodes decoded
// through aliases make up more than allowedAliasRatio of all decoded nodes
// is rejected, as yaml.v3 does when decoding into Go values.
var (
	ErrExcessiveAliasing = errors.New("document contains excessive aliasing")
	ErrRecursiveAlias    = errors.New("anchor value contains itself")
	ErrDuplicateKey      = errors.New("mapping key already defined")
)

type decoder struct {
	decodeCount int
	aliasCount  int
	aliasDepth  int
	expanding   map[*yaml.Node]bool
}

// decodeNode converts a YAML node into object-model values: mappings become
// ordered *object.Object, sequences []any, scalars their tagged Go value.
func decodeNode(node *yaml.Node) (any, error) {
	return (&decoder{}).decode(node)
}

func (d *decoder) decode(node *yaml.Node) (any, error) {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}

	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, fmt.Errorf("line %d: %w", node.Line, ErrExcessiveAliasing)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return d.decode(node.Content[0])
	case yaml.AliasNode:
		return d.alias(node)
	case yaml.MappingNode:
		return d.mapping(node)
	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := d.decode(item)
			if err != nil {
				return nil, err
			}

			seq = append(seq, v)
		}

		return seq, nil
	case yaml.ScalarNode:
		return decodeScalar(node)
	case 0:
		return nil, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %v", node.Line, node.Kind)
	}
}

func (d *decoder) alias(node *yaml.Node) (any, error) {
	if d.expanding[node.Alias] {
		return nil, fmt.Errorf("line %d: anchor %q: %w", node.Line, node.Value, ErrRecursiveAlias)
	}

	if d.expanding == nil {
		d.expanding = map[*yaml.Node]bool{}
	}

	d.expanding[node.Alias] = true
	d.aliasDepth++

	defer func() {
		delete(d.expanding, node.Alias)
		d.aliasDepth--
	}()

	return d.decode(node.Alias)
}

// allowedAliasRatio mirrors yaml.v3: generous for small documents, down to
// one alias per ten nodes for large ones.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400_000:
		return 0.99
	case decodeCount >= 4_000_000:
		return 0.10
	default:
		return 0.10 + 0.89*(1-float64(decodeCount-400_000)/3_600_000)
	}
}

// mapping keeps document key order. Merge keys ("<<") only fill in keys the
// mapping does not set itself.
func (d *decoder) mapping(node *yaml.Node) (*object.Object, error) {
	obj := object.New()

	var merged []*object.Object

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		if key.ShortTag() == mergeTag {
			sources, err := d.mergeSources(val)
			if err != nil {
				return nil, err
			}

			merged = append(merged, sources...)

			continue
		}

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}

		if _, dup := obj.Own(key.Value); dup {
			return nil, fmt.Errorf("line %d: %q: %w", key.Line, key.Value, ErrDuplicateKey)
		}

		v, err := d.decode(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}

		obj.Set(key.Value, v)
	}

	if len(merged) > 0 {
		// Earlier merge sources take precedence over later ones.
		for i, j := 0, len(merged)-1; i < j; i, j = i+1, j-1 {
			merged[i], merged[j] = merged[j], merged[i]
		}

		merge.Defaults(obj, merge.Combine(merged...))
	}

	return obj, nil
}

func (d *decoder) mergeSources(val *yaml.Node) ([]*object.Object, error) {
	nodes := []*yaml.Node{val}
	if val.Kind == yaml.SequenceNode {
		nodes = val.Content
	}

	sources := make([]*object.Object, 0, len(nodes))

	for _, n := range nodes {
		v, err := d.decode(n)
		if err != nil {
			return nil, err
		}

		src, ok := v.(*object.Object)
		if !ok {
			return nil, fmt.Errorf("line %d: merge key value must be a mapping", n.Line)
		}

		sources = append(sources, src)
	}

	return sources, nil
}

func decodeScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case funcTag:
		if node.Value == "" {
			return nil, fmt.Errorf("line %d: %s needs a function name", node.Line, funcTag)
		}

		return FuncRef{Name: node.Value}, nil
	case regexpTag:
		re, err := regexp.Compile(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return re, nil
	case "!!null":
		return nil, nil
	case "!!str":
		return node.Value, nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return t, nil
	case "!!bool", "!!int", "!!float", "!!binary":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported tag %s", node.Line, node.Tag)
	}
}
