package riveter

import (
	"fmt"

	"riveter/object"
	"riveter/options"
)

// Capability names an operation attachable to an entity.
type Capability string

const (
	CapExtend   Capability = "extend"
	CapCompose  Capability = "compose"
	CapInherits Capability = "inherits"
	CapMixin    Capability = "mixin"
	CapPunch    Capability = "punch"
)

// Capabilities lists every capability in attachment order.
var Capabilities = []Capability{CapExtend, CapCompose, CapInherits, CapMixin, CapPunch}

// Args carries the arguments of an attached operation. Which fields are read
// depends on the capability: Template for extend, Parent for inherits,
// Shared and Options for both, Donors for compose, mixin and punch.
type Args struct {
	Template any
	Parent   *Entity
	Shared   *object.Object
	Options  []options.Inherit
	Donors   []*object.Object
}

// Operation is an attached capability. The entity it is attached to is bound
// when the operation is created.
type Operation func(args Args) (*Entity, error)

// Attach installs a forwarder for every capability e does not own yet.
// Operations already present, including customised ones, are kept.
func Attach(e *Entity) {
	if e == nil {
		return
	}

	if e.ops == nil {
		e.ops = make(map[Capability]Operation, len(Capabilities))
	}

	for _, c := range Capabilities {
		if _, owned := e.ops[c]; owned {
			continue
		}

		e.ops[c] = forwarder(e, c)
	}
}

// Init attaches capabilities to every entity.
func Init(entities ...*Entity) {
	for _, e := range entities {
		Attach(e)
	}
}

func forwarder(e *Entity, c Capability) Operation {
	switch c {
	case CapExtend:
		return func(a Args) (*Entity, error) { return Extend(e, a.Template, a.Shared, a.Options...) }
	case CapCompose:
		return func(a Args) (*Entity, error) { return Compose(e, a.Donors...) }
	case CapInherits:
		return func(a Args) (*Entity, error) { return Inherits(e, a.Parent, a.Shared, a.Options...) }
	case CapMixin:
		return func(a Args) (*Entity, error) { return Mixin(e, a.Donors...) }
	case CapPunch:
		return func(a Args) (*Entity, error) { return Punch(e, a.Donors...) }
	default:
		panic("unknown capability: " + string(c))
	}
}

// HasOperation reports whether e owns an operation for c.
func (e *Entity) HasOperation(c Capability) bool {
	_, ok := e.ops[c]
	return ok
}

// Operation returns the operation attached for c.
func (e *Entity) Operation(c Capability) (Operation, bool) {
	op, ok := e.ops[c]
	return op, ok
}

// SetOperation replaces the operation for c. A nil op removes it, so the
// next Attach installs the default forwarder again.
func (e *Entity) SetOperation(c Capability, op Operation) {
	if op == nil {
		delete(e.ops, c)
		return
	}

	if e.ops == nil {
		e.ops = make(map[Capability]Operation, len(Capabilities))
	}

	e.ops[c] = op
}

func (e *Entity) invoke(c Capability, a Args) (*Entity, error) {
	op, ok := e.ops[c]
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", c, e, ErrNotAttached)
	}

	return op(a)
}

// Extend derives a subtype of e. props is the child template: an *Entity,
// an *object.Object whose own constructor slot becomes the child
// constructor, or nil.
func (e *Entity) Extend(props any, shared *object.Object, opts ...options.Inherit) (*Entity, error) {
	return e.invoke(CapExtend, Args{Template: props, Shared: shared, Options: opts})
}

// Inherits makes e a subtype of parent and returns e.
func (e *Entity) Inherits(parent *Entity, shared *object.Object, opts ...options.Inherit) (*Entity, error) {
	return e.invoke(CapInherits, Args{Parent: parent, Shared: shared, Options: opts})
}

// Compose derives a subtype of e blending donors.
func (e *Entity) Compose(donors ...*object.Object) (*Entity, error) {
	return e.invoke(CapCompose, Args{Donors: donors})
}

// Mixin blends donors into e's prototype without replacing existing members.
func (e *Entity) Mixin(donors ...*object.Object) (*Entity, error) {
	return e.invoke(CapMixin, Args{Donors: donors})
}

// Punch blends donors into e's prototype, replacing existing members.
func (e *Entity) Punch(donors ...*object.Object) (*Entity, error) {
	return e.invoke(CapPunch, Args{Donors: donors})
}
