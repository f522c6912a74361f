package class

import (
	"maps"
	"reflect"
)

// RegisterOverride makes future Create calls for original construct replacement instead.
//
// It returns false, leaving the mapping unchanged, when replacement is not a defined
// class or interface. Unless force is set, it also returns false when the current
// singleton of original was not constructed as replacement or a subclass of it (see
// IsSubclassOf). Fetching that singleton may construct it, and it stays memoized
// either way. With force, any defined replacement is accepted.
//
// A later successful call for the same original overwrites the earlier mapping.
func (r *Registry) RegisterOverride(original, replacement string, force bool) bool {
	ok, reason := r.registerOverride(original, replacement, force)
	r.metrics.ObserveOverride(original, replacement, ok)

	ev := r.log.Debug().
		Str("class", original).
		Str("replacement", replacement).
		Bool("force", force)
	if !ok {
		ev.Str("reason", reason).Msg("override rejected")
		return false
	}
	ev.Msg("override registered")
	return true
}

func (r *Registry) registerOverride(original, replacement string, force bool) (bool, string) {
	if !r.Exists(replacement) {
		return false, "replacement not defined"
	}
	if !force {
		current, constructedAs, err := r.singleton(original)
		if err != nil {
			return false, "singleton of original failed: " + err.Error()
		}
		if !r.instanceOf(current, constructedAs, replacement) {
			return false, "current singleton is a " + constructedAs + ", not a " + replacement
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[replacement]; !ok {
		return false, "replacement not defined"
	}
	r.overrides[original] = replacement
	return true, ""
}

// ResolveOverride returns the replacement registered for name, or name itself.
// Overrides are not chained: only the mapping for name is consulted.
func (r *Registry) ResolveOverride(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if replacement, ok := r.overrides[name]; ok {
		return replacement
	}
	return name
}

// Overrides returns a snapshot of the override mapping.
func (r *Registry) Overrides() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.overrides)
}

// instanceOf reports whether v, constructed as class cls, is a target. The class name
// decides; a Go interface bound to target also accepts v by its dynamic type.
func (r *Registry) instanceOf(v any, cls, target string) bool {
	if r.IsSubclassOf(cls, target) {
		return true
	}
	r.mu.RLock()
	want, ok := r.classes[target]
	r.mu.RUnlock()
	return ok && want.def.Interface != nil && v != nil && reflect.TypeOf(v).Implements(want.def.Interface)
}
