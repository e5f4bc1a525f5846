package riveter

import (
	"fmt"

	"riveter/merge"
	"riveter/object"
	"riveter/options"
)

// Inherits wires child to parent and returns the child entity.
//
// child is an *Entity, a mapping whose own constructor slot (an *Entity or
// a function) becomes the child entity, or nil. Without a constructor slot
// a child whose body calls the parent body is created. The remaining
// template members are layered onto the new prototype.
//
// Shared members: the child keeps the ones it owns, shared wins over the
// parent for the rest. With Deep, parent then shared are deep-merged over
// the child instead.
//
// The child prototype is a new object inheriting from the parent prototype,
// so the parent body does not run. The template, then a constructor slot
// pointing at the child, are extended onto it (or deep-merged with Deep).
func Inherits(child any, parent *Entity, shared *object.Object, opts ...options.Inherit) (*Entity, error) {
	if parent == nil {
		return nil, ErrInvalidParent
	}

	opt := options.Resolve(opts...)

	ctor, template, err := resolveChild(child, parent, opt.Name)
	if err != nil {
		return nil, err
	}

	Attach(ctor)

	if opt.Deep {
		merge.Deep(ctor.statics, parent.statics, shared)
	} else {
		merge.Defaults(ctor.statics, merge.Combine(parent.statics, shared))
	}

	proto := object.NewWithProto(parent.proto)
	ctor.proto = proto

	self := object.New().With(ConstructorKey, ctor)
	if opt.Deep {
		merge.Deep(proto, template, self)
	} else {
		merge.Extend(proto, template, self)
	}

	ctor.super = parent
	ctor.superProto = parent.proto

	return ctor, nil
}

// Extend derives a subtype of ctor from props. It is Inherits with the
// first two arguments swapped.
func Extend(ctor *Entity, props any, shared *object.Object, opts ...options.Inherit) (*Entity, error) {
	return Inherits(props, ctor, shared, opts...)
}

// resolveChild picks the child entity and the template layered onto its
// new prototype.
func resolveChild(child any, parent *Entity, name string) (*Entity, *object.Object, error) {
	switch c := child.(type) {
	case nil:
		return defaultChild(parent, name), nil, nil
	case *Entity:
		if c == nil {
			return nil, nil, fmt.Errorf("nil entity: %w", ErrInvalidChild)
		}

		return c, c.proto, nil
	case *object.Object:
		if c == nil {
			return defaultChild(parent, name), nil, nil
		}

		v, ok := c.Own(ConstructorKey)
		if !ok {
			return defaultChild(parent, name), c, nil
		}

		if e, isEntity := v.(*Entity); isEntity && e != nil {
			return e, c, nil
		}

		if fn, isFunc := object.AsFunc(v); isFunc {
			return NewEntity(name, fn), c, nil
		}

		return nil, nil, fmt.Errorf("constructor slot holds %s: %w", object.KindOf(v), ErrInvalidChild)
	}

	if o, ok := object.AsObject(child); ok {
		return resolveChild(o, parent, name)
	}

	return nil, nil, fmt.Errorf("template of type %T: %w", child, ErrInvalidChild)
}

func defaultChild(parent *Entity, name string) *Entity {
	return NewEntity(name, func(this *object.Object, args ...any) any {
		parent.Apply(this, args...)
		return nil
	})
}
