// Package object provides the dynamic value model the composition engine
// operates on: ordered slot maps with a prototype link, callable slots, and
// a kind classifier driving merge dispatch.
//
// An Object owns its slots. Reading a slot that the object does not own
// continues with its prototype, depth-first up the chain, so instances see
// the members of every ancestor template without copying them.
package object

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sort"
)

var (
	// ErrNotFound is returned when a member cannot be resolved on an object
	// or any of its prototypes.
	ErrNotFound = errors.New("member not found")
	// ErrNotCallable is returned when a resolved member is not a function.
	ErrNotCallable = errors.New("member is not callable")
)

// Func is a method, hook or constructor body. this is the receiver the
// function was invoked on.
type Func func(this *Object, args ...any) any

// Object is an ordered set of named slots with an optional prototype.
// Iteration follows insertion order. An Object is not safe for concurrent
// mutation.
type Object struct {
	proto *Object
	keys  []string
	slots map[string]any
}

// New returns an empty object without a prototype.
func New() *Object {
	return &Object{slots: make(map[string]any)}
}

// NewWithProto returns an empty object delegating unknown lookups to proto.
func NewWithProto(proto *Object) *Object {
	o := New()
	o.proto = proto

	return o
}

// From builds an object from m. Keys are inserted in sorted order so the
// result is deterministic; nested maps are converted as well.
func From(m map[string]any) *Object {
	o := New()
	for _, k := range sortedKeys(m) {
		v := m[k]
		if nested, ok := v.(map[string]any); ok {
			v = From(nested)
		}

		o.Set(k, v)
	}

	return o
}

// Proto returns the prototype, or nil.
func (o *Object) Proto() *Object {
	return o.proto
}

// SetProto replaces the prototype link.
func (o *Object) SetProto(proto *Object) {
	o.proto = proto
}

// Set assigns an own slot, appending the key when it is new.
func (o *Object) Set(key string, value any) {
	if o.slots == nil {
		o.slots = make(map[string]any)
	}

	if _, exists := o.slots[key]; !exists {
		o.keys = append(o.keys, key)
	}

	o.slots[key] = value
}

// With sets key and returns o, for building literals.
func (o *Object) With(key string, value any) *Object {
	o.Set(key, value)
	return o
}

// Own returns the value of an own slot.
func (o *Object) Own(key string) (any, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.slots[key]

	return v, ok
}

// Has reports whether o owns key.
func (o *Object) Has(key string) bool {
	_, ok := o.Own(key)
	return ok
}

// Lookup resolves key on o or the nearest prototype owning it, and reports
// that owner.
func (o *Object) Lookup(key string) (value any, owner *Object, ok bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, found := cur.slots[key]; found {
			return v, cur, true
		}
	}

	return nil, nil, false
}

// Get resolves key through the prototype chain; it returns nil when absent.
func (o *Object) Get(key string) any {
	v, _, _ := o.Lookup(key)
	return v
}

// Delete removes an own slot. Prototypes are untouched.
func (o *Object) Delete(key string) {
	if !o.Has(key) {
		return
	}

	delete(o.slots, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Keys returns the own keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	return slices.Clone(o.keys)
}

// Len returns the number of own slots.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.keys)
}

// All iterates over own slots in insertion order. Keys added while iterating
// are not visited.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range o.Keys() {
			v, ok := o.Own(k)
			if !ok {
				continue
			}

			if !yield(k, v) {
				return
			}
		}
	}
}

// Chain returns o followed by its prototypes, nearest first.
func (o *Object) Chain() []*Object {
	var chain []*Object
	for cur := o; cur != nil; cur = cur.proto {
		chain = append(chain, cur)
	}

	return chain
}

// Call resolves name through the chain and invokes it with o as receiver.
func (o *Object) Call(name string, args ...any) (any, error) {
	v, _, ok := o.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("call %q: %w", name, ErrNotFound)
	}

	fn, ok := AsFunc(v)
	if !ok {
		return nil, fmt.Errorf("call %q (%s): %w", name, KindOf(v), ErrNotCallable)
	}

	return fn(o, args...), nil
}

// AsFunc returns v as a Func. Plain function literals with the Func
// signature are accepted too.
func AsFunc(v any) (Func, bool) {
	switch fn := v.(type) {
	case Func:
		return fn, fn != nil
	case func(*Object, ...any) any:
		return fn, fn != nil
	}

	return nil, false
}

// Map returns the own slots as a plain map. Nested objects are kept as is.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, o.Len())
	for k, v := range o.All() {
		m[k] = v
	}

	return m
}

// AsObject returns v as an object when it is a mapping. *Object values are
// returned as is; string-keyed maps are converted with sorted keys.
func AsObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, true
	case map[string]any:
		return From(t), true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}

	sort.Strings(keys)

	o := New()
	for _, k := range keys {
		o.Set(k, rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
	}

	return o, true
}

// AsSequence returns the elements of a slice or array value.
func AsSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
