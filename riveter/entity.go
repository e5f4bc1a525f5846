package riveter

import (
	"github.com/google/uuid"

	"riveter/object"
)

// Slot names with a meaning to the engine.
const (
	ConstructorKey = "constructor"
	PreInitKey     = "_preInit"
	PostInitKey    = "_postInit"
	MixinKey       = "mixin"
	SuperKey       = "__super"
	SuperProtoKey  = "__super__"
)

// Entity is a constructor with shared members and an instance template.
type Entity struct {
	id         string
	name       string
	body       object.Func
	statics    *object.Object
	proto      *object.Object
	super      *Entity
	superProto *object.Object
	ops        map[Capability]Operation
}

// NewEntity creates an entity running body on every construction. body may
// be nil. The prototype starts with a constructor slot pointing back at the
// entity.
func NewEntity(name string, body object.Func) *Entity {
	e := &Entity{
		id:      uuid.Must(uuid.NewV7()).String(),
		name:    name,
		body:    body,
		statics: object.New(),
		proto:   object.New(),
	}
	e.proto.Set(ConstructorKey, e)

	return e
}

// ID is a unique identifier, stable for the lifetime of the entity.
func (e *Entity) ID() string { return e.id }

// Name returns the name given at creation, possibly empty.
func (e *Entity) Name() string { return e.name }

// Statics is the shared-member space.
func (e *Entity) Statics() *object.Object { return e.statics }

// Prototype is the instance-template space.
func (e *Entity) Prototype() *object.Object { return e.proto }

// Super returns the parent entity set by inherits, or nil.
func (e *Entity) Super() *Entity { return e.super }

// SuperPrototype returns the parent's prototype as it was when inherits ran.
func (e *Entity) SuperPrototype() *object.Object { return e.superProto }

// Member resolves a shared member. The back-references are reachable
// under their conventional names __super and __super__.
func (e *Entity) Member(name string) any {
	switch name {
	case SuperKey:
		if e.super == nil {
			return nil
		}

		return e.super
	case SuperProtoKey:
		if e.superProto == nil {
			return nil
		}

		return e.superProto
	}

	return e.statics.Get(name)
}

// New constructs an instance: an object inheriting from the prototype,
// initialised by the constructor body.
func (e *Entity) New(args ...any) *object.Object {
	inst := object.NewWithProto(e.proto)
	e.Apply(inst, args...)

	return inst
}

// Apply runs the constructor body against an existing receiver.
func (e *Entity) Apply(this *object.Object, args ...any) {
	if e.body != nil {
		e.body(this, args...)
	}
}

// String returns the name, or <anonymous>.
func (e *Entity) String() string {
	if e.name == "" {
		return "<anonymous>"
	}

	return e.name
}

// Chain lists e and its ancestors, nearest first. An entity made to
// inherit from one of its own descendants is listed once.
func (e *Entity) Chain() []*Entity {
	var chain []*Entity

	seen := map[*Entity]struct{}{}
	for cur := e; cur != nil; cur = cur.super {
		if _, dup := seen[cur]; dup {
			break
		}

		seen[cur] = struct{}{}
		chain = append(chain, cur)
	}

	return chain
}
