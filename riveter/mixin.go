package riveter

import (
	"fmt"

	"riveter/merge"
	"riveter/object"
	"riveter/options"
)

// Mixin combines donors, later donors winning, and fills in the members
// ctor's prototype does not resolve yet. It returns ctor.
func Mixin(ctor *Entity, donors ...*object.Object) (*Entity, error) {
	return blend(ctor, options.PolicyKeepExisting, donors)
}

// Punch combines donors, later donors winning, and assigns them over ctor's
// prototype. It returns ctor.
func Punch(ctor *Entity, donors ...*object.Object) (*Entity, error) {
	return blend(ctor, options.PolicyOverwrite, donors)
}

func blend(ctor *Entity, policy options.PolicyEnum, donors []*object.Object) (*Entity, error) {
	if ctor == nil {
		return nil, ErrNilEntity
	}

	for i, d := range donors {
		if d == nil {
			return nil, fmt.Errorf("donor %d is nil: %w", i, ErrInvalidDonor)
		}
	}

	Attach(ctor)
	merge.Shallow(ctor.proto, policy, merge.Combine(donors...))

	return ctor, nil
}
