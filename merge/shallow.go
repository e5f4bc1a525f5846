package merge

import (
	"riveter/object"
	"riveter/options"
)

// Shallow copies the own members of sources into dst under policy.
//
// With options.PolicyKeepExisting a key dst already resolves, whether owned
// or inherited, is left alone; keys filled from an earlier source count as
// existing for later ones. With options.PolicyOverwrite every key is
// assigned.
func Shallow(dst *object.Object, policy options.PolicyEnum, sources ...*object.Object) *object.Object {
	for _, src := range sources {
		if src == nil {
			continue
		}

		for key, val := range src.All() {
			if policy == options.PolicyKeepExisting {
				if _, _, exists := dst.Lookup(key); exists {
					continue
				}
			}

			dst.Set(key, val)
		}
	}

	return dst
}

// Extend assigns every own member of sources onto dst.
func Extend(dst *object.Object, sources ...*object.Object) *object.Object {
	return Shallow(dst, options.PolicyOverwrite, sources...)
}

// Defaults fills in the members dst does not resolve yet.
func Defaults(dst *object.Object, sources ...*object.Object) *object.Object {
	return Shallow(dst, options.PolicyKeepExisting, sources...)
}

// Combine flattens sources into a new object, later sources winning.
func Combine(sources ...*object.Object) *object.Object {
	return Extend(object.New(), sources...)
}
