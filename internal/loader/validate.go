package loader

import (
	"fmt"

	"riveter/internal/diagnostic"
	"riveter/internal/match"
	"riveter/object"
)

const maxSuggestions = 3

// Hook and payload slots checked on donors.
const (
	preInitKey  = "_preInit"
	postInitKey = "_postInit"
	mixinKey    = "mixin"
)

// Validate checks a definition file for structural errors: names, parent
// and donor references, inheritance cycles, donor shapes and, when funcs is
// not nil, function references.
func Validate(f *File, funcs *FuncRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "definition file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddWarning("unknown_version", fmt.Sprintf("version %q is not %q", f.Version, CurrentVersion), "", "version")
	}

	names := validateNames(res, f)
	donorNames := f.Donors.Names()

	for i := range f.Donors {
		validateDonor(res, &f.Donors[i])
	}

	for i := range f.Entities {
		def := &f.Entities[i]

		if def.Extends != "" {
			if _, ok := names[def.Extends]; !ok {
				res.AddError("unknown_parent", fmt.Sprintf("unknown parent %q", def.Extends), def.Name, "extends").
					Suggestions = match.Suggest(def.Extends, keys(names), maxSuggestions)
			}
		}

		for _, group := range []struct {
			field string
			refs  StringOrArray
		}{{"compose", def.Compose}, {"mixin", def.Mixin}, {"punch", def.Punch}} {
			for _, ref := range group.refs {
				if _, ok := f.Donors.Get(ref); !ok {
					res.AddError("unknown_donor", fmt.Sprintf("unknown donor %q", ref), def.Name, group.field).
						Suggestions = match.Suggest(ref, donorNames, maxSuggestions)
				}
			}
		}
	}

	validateCycles(res, f, names)

	if funcs != nil {
		validateFuncs(res, f, funcs)
	}

	return res
}

func validateNames(res *diagnostic.Diagnostics, f *File) map[string]*EntityDef {
	names := make(map[string]*EntityDef, len(f.Entities))

	for i := range f.Entities {
		def := &f.Entities[i]
		if def.Name == "" {
			res.AddError("missing_entity_name", "entity has no name", "", fmt.Sprintf("entities[%d]", i))
			continue
		}

		if _, dup := names[def.Name]; dup {
			res.AddError("duplicate_entity", fmt.Sprintf("duplicate entity %q", def.Name), def.Name, fmt.Sprintf("entities[%d]", i))
			continue
		}

		names[def.Name] = def
	}

	return names
}

func validateDonor(res *diagnostic.Diagnostics, d *Donor) {
	path := "donors." + d.Name

	for _, hook := range []string{preInitKey, postInitKey} {
		v, ok := d.Body.Own(hook)
		if !ok {
			continue
		}

		if _, isRef := v.(FuncRef); !isRef && object.KindOf(v) != object.KindFunction {
			res.AddError("invalid_hook", fmt.Sprintf("%s must be a function, got %s", hook, object.KindOf(v)), "", path+"."+hook)
		}
	}

	if v, ok := d.Body.Own(mixinKey); ok && v != nil {
		if _, isMapping := object.AsObject(v); !isMapping {
			res.AddError("invalid_mixin", fmt.Sprintf("%s must be a mapping, got %s", mixinKey, object.KindOf(v)), "", path+"."+mixinKey)
		}
	}
}

// validateCycles reports each entity whose extends chain loops back.
func validateCycles(res *diagnostic.Diagnostics, f *File, names map[string]*EntityDef) {
	for i := range f.Entities {
		def := &f.Entities[i]
		if def.Name == "" || names[def.Name] != def {
			continue
		}

		seen := map[string]struct{}{def.Name: {}}
		for cur := names[def.Extends]; cur != nil; cur = names[cur.Extends] {
			if cur == def {
				res.AddError("inheritance_cycle", fmt.Sprintf("entity %q inherits from itself", def.Name), def.Name, "extends")
				break
			}

			if _, loop := seen[cur.Name]; loop {
				break
			}

			seen[cur.Name] = struct{}{}
		}
	}
}

func validateFuncs(res *diagnostic.Diagnostics, f *File, funcs *FuncRegistry) {
	check := func(entity, path string, ref FuncRef) {
		if funcs.Has(ref.Name) {
			return
		}

		res.AddError("unknown_function", fmt.Sprintf("unknown function %q", ref.Name), entity, path).
			Suggestions = match.Suggest(ref.Name, funcs.Names(), maxSuggestions)
	}

	for i := range f.Donors {
		walkFuncRefs("donors."+f.Donors[i].Name, f.Donors[i].Body, func(path string, ref FuncRef) {
			check("", path, ref)
		})
	}

	for i := range f.Entities {
		def := &f.Entities[i]
		if def.Init != nil {
			check(def.Name, "init", *def.Init)
		}

		visit := func(path string, ref FuncRef) { check(def.Name, path, ref) }
		walkFuncRefs("statics", def.Statics.Object, visit)
		walkFuncRefs("prototype", def.Prototype.Object, visit)
	}
}

// walkFuncRefs calls visit for every FuncRef under v, depth first.
func walkFuncRefs(path string, v any, visit func(path string, ref FuncRef)) {
	switch val := v.(type) {
	case FuncRef:
		visit(path, val)
	case *object.Object:
		if val == nil {
			return
		}

		for key, slot := range val.All() {
			walkFuncRefs(path+"."+key, slot, visit)
		}
	case []any:
		for i, item := range val {
			walkFuncRefs(fmt.Sprintf("%s[%d]", path, i), item, visit)
		}
	}
}

func keys(m map[string]*EntityDef) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
