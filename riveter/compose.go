package riveter

import (
	"fmt"

	"riveter/merge"
	"riveter/object"
	"riveter/options"
)

type stepKind int

const (
	stepPreInit stepKind = iota
	stepConstruct
	stepPostInit
)

type initStep struct {
	kind stepKind
	fn   object.Func
}

// initPipeline runs construction steps in order, each bound to the new
// instance with the full argument list.
type initPipeline []initStep

func (p initPipeline) run(this *object.Object, args ...any) {
	for _, step := range p {
		step.fn(this, args...)
	}
}

// Compose derives a subtype of ctor and blends donors into its prototype.
//
// A donor contributes its own _preInit and _postInit functions as
// construction hooks, and its mixin mapping (or the donor itself when it has
// none) as payload. The subtype constructor runs every pre hook, then the
// constructor found on ctor's prototype, then every post hook, hooks in
// donor order. Payloads are combined left to right, later donors winning,
// and only fill in members the subtype prototype does not resolve yet.
func Compose(ctor *Entity, donors ...*object.Object) (*Entity, error) {
	if ctor == nil {
		return nil, ErrNilEntity
	}

	pipeline, payloads, err := planComposition(ctor, donors)
	if err != nil {
		return nil, err
	}

	Attach(ctor)

	body := object.Func(func(this *object.Object, args ...any) any {
		pipeline.run(this, args...)
		return nil
	})

	res, err := ctor.Extend(object.New().With(ConstructorKey, body), nil, options.Inherit{Name: ctor.name})
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", ctor, err)
	}

	if res == nil {
		return nil, fmt.Errorf("compose %s: extend returned no entity: %w", ctor, ErrInvalidChild)
	}

	Attach(res)
	merge.Defaults(res.proto, merge.Combine(payloads...))

	return res, nil
}

func planComposition(ctor *Entity, donors []*object.Object) (initPipeline, []*object.Object, error) {
	var pre, post initPipeline

	payloads := make([]*object.Object, 0, len(donors))

	for i, d := range donors {
		if d == nil {
			return nil, nil, fmt.Errorf("donor %d is nil: %w", i, ErrInvalidDonor)
		}

		if step, ok, err := hookOf(d, PreInitKey, stepPreInit); err != nil {
			return nil, nil, fmt.Errorf("donor %d: %w", i, err)
		} else if ok {
			pre = append(pre, step)
		}

		if step, ok, err := hookOf(d, PostInitKey, stepPostInit); err != nil {
			return nil, nil, fmt.Errorf("donor %d: %w", i, err)
		} else if ok {
			post = append(post, step)
		}

		payload := d
		if v, ok := d.Own(MixinKey); ok && v != nil {
			nested, isMapping := object.AsObject(v)
			if !isMapping || nested == nil {
				return nil, nil, fmt.Errorf("donor %d: %s payload is %s: %w", i, MixinKey, object.KindOf(v), ErrInvalidDonor)
			}

			payload = nested
		}

		payloads = append(payloads, payload)
	}

	pipeline := make(initPipeline, 0, len(pre)+len(post)+1)
	pipeline = append(pipeline, pre...)
	pipeline = append(pipeline, initStep{kind: stepConstruct, fn: baseConstructor(ctor)})
	pipeline = append(pipeline, post...)

	return pipeline, payloads, nil
}

func hookOf(d *object.Object, key string, kind stepKind) (initStep, bool, error) {
	v, ok := d.Own(key)
	if !ok {
		return initStep{}, false, nil
	}

	fn, ok := object.AsFunc(v)
	if !ok {
		return initStep{}, false, fmt.Errorf("%s is %s: %w", key, object.KindOf(v), ErrInvalidDonor)
	}

	return initStep{kind: kind, fn: fn}, true, nil
}

// baseConstructor resolves the constructor on ctor's prototype at
// construction time, falling back to ctor itself.
func baseConstructor(ctor *Entity) object.Func {
	return func(this *object.Object, args ...any) any {
		switch c := ctor.proto.Get(ConstructorKey).(type) {
		case *Entity:
			if c != nil {
				c.Apply(this, args...)
				return nil
			}
		default:
			if fn, ok := object.AsFunc(c); ok {
				fn(this, args...)
				return nil
			}
		}

		ctor.Apply(this, args...)

		return nil
	}
}
