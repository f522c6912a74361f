package class

import (
	"reflect"
	"slices"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Statics returns the class-level properties visible on name: the parent's visible
// properties with the class's own declarations laid over them. Properties holding nil
// are left out. Unknown classes yield an empty map.
func (r *Registry) Statics(name string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.classes[name]
	if !ok {
		return map[string]any{}
	}
	return r.visibleStatics(info)
}

// StaticLookup returns the class-level property prop of name, or def when the class
// doesn't declare it itself.
//
// A property counts as declared on name when it is visible there and either name has
// no parent, the parent has no such property, or the parent's value differs. A
// property whose value equals the parent's is treated as inherited, even if name
// redeclares it with that same value.
func (r *Registry) StaticLookup(name, prop string, def any) any {
	return r.Static(name, prop).OrElse(def)
}

// Static is StaticLookup without a default.
func (r *Registry) Static(name, prop string) mo.Option[any] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.classes[name]
	if !ok {
		return mo.None[any]()
	}
	value, ok := r.visibleStatics(info)[prop]
	if !ok {
		return mo.None[any]()
	}
	if info.def.Parent == "" {
		return mo.Some(value)
	}
	parent, ok := r.classes[info.def.Parent]
	if !ok {
		return mo.Some(value)
	}
	inherited, ok := r.visibleStatics(parent)[prop]
	if !ok || !sameValue(inherited, value) {
		return mo.Some(value)
	}
	return mo.None[any]()
}

// visibleStatics merges statics from the root ancestor down to info. r.mu must be held.
func (r *Registry) visibleStatics(info *classInfo) map[string]any {
	var chain []map[string]any
	for c := info; c != nil; c = r.classes[c.def.Parent] {
		chain = append(chain, c.def.Statics)
	}
	slices.Reverse(chain)
	merged := lo.Assign(chain...)
	return lo.OmitBy(merged, func(_ string, v any) bool { return v == nil })
}

// sameValue compares with == when the dynamic type allows it and falls back to
// reflect.DeepEqual otherwise (slices, maps, structs holding them).
func sameValue(a, b any) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	defer func() {
		// comparable struct types can still hold incomparable interface values
		if recover() != nil {
			same = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}
