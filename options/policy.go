// Package options holds the knobs shared by the merge and composition
// engines.
package options

// PolicyEnum decides who wins when a shallow merge meets a key the
// destination already resolves.
type PolicyEnum int

const (
	PolicyOverwrite    PolicyEnum = iota // last writer wins, destination members are replaced
	PolicyKeepExisting                   // destination members (own or inherited) are never replaced
)

// String returns the configuration spelling of the policy.
func (p PolicyEnum) String() string {
	switch p {
	case PolicyOverwrite:
		return "overwrite"
	case PolicyKeepExisting:
		return "keep"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts the spellings produced by String.
func ParsePolicy(s string) (PolicyEnum, bool) {
	switch s {
	case "overwrite":
		return PolicyOverwrite, true
	case "keep", "keep-existing":
		return PolicyKeepExisting, true
	default:
		return 0, false
	}
}

// Inherit configures inherits/extend.
type Inherit struct {
	// Deep merges mapping-valued members recursively instead of replacing
	// them wholesale, for both the shared members and the prototype.
	Deep bool
	// Name names the derived entity. Empty keeps the default.
	Name string
}

// Resolve folds opts into one value; later options win.
func Resolve(opts ...Inherit) Inherit {
	var out Inherit
	for _, o := range opts {
		out.Deep = o.Deep
		if o.Name != "" {
			out.Name = o.Name
		}
	}

	return out
}
