// Package build turns definition files into wired entities.
package build

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"riveter/internal/loader"
	"riveter/merge"
	"riveter/object"
	"riveter/options"
	"riveter/riveter"
)

// Builder creates the entities of a definition file.
type Builder struct {
	// Registry resolves !func references. loader.Builtins is used when nil.
	Registry *loader.FuncRegistry
	// Logger receives progress and warnings. Nothing is logged when nil.
	Logger *log.Logger
	// DefaultDeep is the merge mode of entities that do not set deep.
	DefaultDeep bool
}

// Result holds built entities in build order.
type Result struct {
	order    []string
	entities map[string]*riveter.Entity
}

// Entity returns the entity built for name.
func (r *Result) Entity(name string) (*riveter.Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Names lists entity names in build order, parents first.
func (r *Result) Names() []string {
	return append([]string(nil), r.order...)
}

// Len is the number of entities built.
func (r *Result) Len() int {
	return len(r.order)
}

func (r *Result) add(name string, e *riveter.Entity) {
	r.order = append(r.order, name)
	r.entities[name] = e
}

// Build validates f, binds its function references and creates every
// entity, parents first. Function references in f are replaced in place.
//
// A root entity gets its statics and prototype layered onto a fresh entity.
// A child is derived from its parent with Extend. Compose, mixin and punch
// donors are then applied in that order; compose yields a new entity that
// replaces the derived one under the same name.
func (b *Builder) Build(f *loader.File) (*Result, error) {
	logger := b.logger()
	registry := b.registry()

	diags := loader.Validate(f, registry)
	for _, w := range diags.Warnings {
		logger.Warn(w.Message, "code", w.Code, "entity", w.Entity, "path", w.Path)
	}

	if err := diags.Err(); err != nil {
		return nil, fmt.Errorf("invalid definition file: %w", err)
	}

	if err := bindFile(registry, f); err != nil {
		return nil, fmt.Errorf("failed to bind functions: %w", err)
	}

	order, err := sortEntities(f.Entities)
	if err != nil {
		return nil, err
	}

	res := &Result{entities: make(map[string]*riveter.Entity, len(order))}

	for _, i := range order {
		def := &f.Entities[i]

		e, err := b.buildEntity(registry, def, res, f.Donors)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", def.Name, err)
		}

		res.add(def.Name, e)
		logger.Debug("built entity", "name", def.Name, "id", e.ID(), "extends", def.Extends)
	}

	logger.Info("build complete", "entities", res.Len())

	return res, nil
}

func (b *Builder) buildEntity(registry *loader.FuncRegistry, def *loader.EntityDef, res *Result, donors loader.Donors) (*riveter.Entity, error) {
	deep := b.DefaultDeep
	if def.Deep != nil {
		deep = *def.Deep
	}

	var body object.Func

	if def.Init != nil {
		fn, err := registry.Resolve(*def.Init)
		if err != nil {
			return nil, err
		}

		body = fn
	}

	var (
		e   *riveter.Entity
		err error
	)

	if def.Extends == "" {
		e = riveter.NewEntity(def.Name, body)
		riveter.Init(e)
		layer(e.Statics(), def.Statics.Object, deep)
		layer(e.Prototype(), def.Prototype.Object, deep)
	} else {
		parent, ok := res.Entity(def.Extends)
		if !ok {
			return nil, fmt.Errorf("parent %s is not built", def.Extends)
		}

		template := merge.Combine(def.Prototype.Object)
		if body != nil {
			template.Set(riveter.ConstructorKey, body)
		}

		e, err = parent.Extend(template, def.Statics.Object, options.Inherit{Deep: deep, Name: def.Name})
		if err != nil {
			return nil, err
		}
	}

	steps := []struct {
		kind  string
		names loader.StringOrArray
		apply func(*riveter.Entity, ...*object.Object) (*riveter.Entity, error)
	}{
		{"compose", def.Compose, (*riveter.Entity).Compose},
		{"mixin", def.Mixin, (*riveter.Entity).Mixin},
		{"punch", def.Punch, (*riveter.Entity).Punch},
	}

	for _, step := range steps {
		if step.names.IsEmpty() {
			continue
		}

		bodies, err := lookupDonors(donors, step.names)
		if err != nil {
			return nil, err
		}

		if e, err = step.apply(e, bodies...); err != nil {
			return nil, fmt.Errorf("%s: %w", step.kind, err)
		}

		b.logger().Debug("applied donors", "entity", def.Name, "kind", step.kind, "donors", []string(step.names))
	}

	return e, nil
}

func layer(dst, src *object.Object, deep bool) {
	if deep {
		merge.Deep(dst, src)
	} else {
		merge.Extend(dst, src)
	}
}

func lookupDonors(donors loader.Donors, names loader.StringOrArray) ([]*object.Object, error) {
	bodies := make([]*object.Object, 0, len(names))

	for _, name := range names {
		body, ok := donors.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown donor %q", name)
		}

		bodies = append(bodies, body)
	}

	return bodies, nil
}

func bindFile(registry *loader.FuncRegistry, f *loader.File) error {
	for _, d := range f.Donors {
		if _, err := registry.Bind(d.Body); err != nil {
			return fmt.Errorf("donor %s: %w", d.Name, err)
		}
	}

	for i := range f.Entities {
		def := &f.Entities[i]

		if _, err := registry.Bind(def.Statics.Object); err != nil {
			return fmt.Errorf("entity %s statics: %w", def.Name, err)
		}

		if _, err := registry.Bind(def.Prototype.Object); err != nil {
			return fmt.Errorf("entity %s prototype: %w", def.Name, err)
		}
	}

	return nil
}

func (b *Builder) registry() *loader.FuncRegistry {
	if b.Registry != nil {
		return b.Registry
	}

	return loader.Builtins()
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}

	return log.New(io.Discard)
}
