package merge

import (
	"riveter/object"
)

// Deep merges sources into dst and returns dst.
//
// Sequences are positionally replaced, never merged with what dst held:
// merging [1] over [1, 2] yields [1]. Mappings accumulate instead. A mapping
// dst only inherits through its prototype is copied into an own slot before
// being merged, so ancestors are never mutated.
func Deep(dst *object.Object, sources ...*object.Object) *object.Object {
	for _, src := range sources {
		if src == nil {
			continue
		}

		for key, val := range src.All() {
			deepAssign(dst, key, val)
		}
	}

	return dst
}

func deepAssign(dst *object.Object, key string, val any) {
	switch object.KindOf(val) {
	case object.KindSequence:
		seq, _ := object.AsSequence(val)
		dst.Set(key, copySequence(seq))
	case object.KindMapping:
		src, _ := object.AsObject(val)
		dst.Set(key, Deep(mergeTarget(dst, key), src))
	default:
		dst.Set(key, val)
	}
}

// mergeTarget returns the mapping a mapping value for key merges into.
func mergeTarget(dst *object.Object, key string) *object.Object {
	existing, owner, ok := dst.Lookup(key)
	if !ok {
		return object.New()
	}

	target, isMapping := object.AsObject(existing)
	if !isMapping || target == nil {
		return object.New()
	}

	if owner != dst {
		return Deep(object.NewWithProto(target.Proto()), target)
	}

	return target
}

func copySequence(seq []any) []any {
	out := make([]any, len(seq))
	for i, item := range seq {
		out[i] = copyValue(item)
	}

	return out
}

// copyValue returns a copy of v detached from any source container.
func copyValue(v any) any {
	switch object.KindOf(v) {
	case object.KindSequence:
		seq, _ := object.AsSequence(v)
		return copySequence(seq)
	case object.KindMapping:
		src, _ := object.AsObject(v)
		return Deep(object.New(), src)
	default:
		return v
	}
}
