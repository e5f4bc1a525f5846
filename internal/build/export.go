package build

import (
	"riveter/internal/loader"
	"riveter/object"
	"riveter/riveter"
)

// Export describes every built entity, in build order, as an object ready
// for YAML encoding. Each entry lists the entity's name, id, super and chain
// names, own statics and the flattened prototype, nearest definition winning.
func Export(r *Result) *object.Object {
	entries := make([]any, 0, r.Len())

	for _, name := range r.order {
		entries = append(entries, exportEntity(r.entities[name]))
	}

	return object.New().
		With("version", loader.CurrentVersion).
		With("entities", entries)
}

// ExportYAML encodes Export(r).
func ExportYAML(r *Result) ([]byte, error) {
	return loader.Marshal(Export(r))
}

func exportEntity(e *riveter.Entity) *object.Object {
	var super any
	if e.Super() != nil {
		super = e.Super().String()
	}

	chain := make([]any, 0, 4)
	for _, c := range e.Chain() {
		chain = append(chain, c.String())
	}

	return object.New().
		With("name", e.String()).
		With("id", e.ID()).
		With("super", super).
		With("chain", chain).
		With("statics", e.Statics()).
		With("prototype", flatten(e.Prototype()))
}

// flatten collects every member the prototype resolves, nearest level
// first.
func flatten(proto *object.Object) *object.Object {
	out := object.New()

	for _, level := range proto.Chain() {
		for key, val := range level.All() {
			if out.Has(key) {
				continue
			}

			out.Set(key, val)
		}
	}

	return out
}
