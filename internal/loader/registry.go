package loader

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"riveter/object"
)

// ErrUnknownFunc is returned when a FuncRef names no registered function.
var ErrUnknownFunc = errors.New("unknown function")

// FuncRegistry maps names to functions referenced from definition files.
// It is safe for concurrent use.
type FuncRegistry struct {
	mu    sync.RWMutex
	funcs map[string]object.Func
}

// NewFuncRegistry returns an empty registry.
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{funcs: map[string]object.Func{}}
}

// Register adds fn under name, replacing any previous registration.
func (r *FuncRegistry) Register(name string, fn object.Func) *FuncRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcs == nil {
		r.funcs = map[string]object.Func{}
	}

	r.funcs[name] = fn

	return r
}

// Get returns the function registered under name.
func (r *FuncRegistry) Get(name string) (object.Func, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]

	return fn, ok
}

// Has reports whether name is registered.
func (r *FuncRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names lists registered names, sorted.
func (r *FuncRegistry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.funcs))
}

// Resolve returns the function ref points at.
func (r *FuncRegistry) Resolve(ref FuncRef) (object.Func, error) {
	fn, ok := r.Get(ref.Name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", ref.Name, ErrUnknownFunc)
	}

	return fn, nil
}

// Bind replaces every FuncRef reachable from v with its function. Objects
// and sequences are updated in place; the bound value is returned.
func (r *FuncRegistry) Bind(v any) (any, error) {
	switch val := v.(type) {
	case FuncRef:
		return r.Resolve(val)
	case *FuncRef:
		if val == nil {
			return nil, nil
		}

		return r.Resolve(*val)
	case *object.Object:
		if val == nil {
			return val, nil
		}

		for _, key := range val.Keys() {
			slot, _ := val.Own(key)

			bound, err := r.Bind(slot)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			val.Set(key, bound)
		}

		return val, nil
	case []any:
		for i, item := range val {
			bound, err := r.Bind(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			val[i] = bound
		}

		return val, nil
	}

	return v, nil
}

// Builtins returns a registry preloaded with general-purpose functions:
//
//	noop      does nothing
//	self      returns the receiver
//	named     stores the first argument in the receiver's "name" slot
//	assign    merges mapping arguments into the receiver, left to right
//	describe  returns "<name>" from the receiver's name slot
func Builtins() *FuncRegistry {
	return NewFuncRegistry().
		Register("noop", func(*object.Object, ...any) any { return nil }).
		Register("self", func(this *object.Object, _ ...any) any { return this }).
		Register("named", func(this *object.Object, args ...any) any {
			if len(args) > 0 {
				this.Set("name", args[0])
			}

			return nil
		}).
		Register("assign", func(this *object.Object, args ...any) any {
			for _, arg := range args {
				if src, ok := object.AsObject(arg); ok && src != nil {
					for k, v := range src.All() {
						this.Set(k, v)
					}
				}
			}

			return nil
		}).
		Register("describe", func(this *object.Object, _ ...any) any {
			return fmt.Sprintf("<%v>", this.Get("name"))
		})
}
